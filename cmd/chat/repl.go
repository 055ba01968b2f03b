package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"linen-chatbot-be/pkg/faq"

	"github.com/fatih/color"
)

// repl holds the chips of the previous answer so ":n" can pick one.
type repl struct {
	engine  *faq.Engine
	out     io.Writer
	verbose bool
	chips   []string
}

func newREPL(engine *faq.Engine, out io.Writer, verbose bool) *repl {
	return &repl{engine: engine, out: out, verbose: verbose, chips: faq.QuickQuestions()}
}

// resolve turns ":n" into the n-th chip. Other input passes through trimmed.
func (r *repl) resolve(line string) (string, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, ":") {
		return line, nil
	}
	n, err := strconv.Atoi(strings.TrimPrefix(line, ":"))
	if err != nil || n < 1 || n > len(r.chips) {
		return "", fmt.Errorf("no suggestion %s, pick 1-%d", line, len(r.chips))
	}
	return r.chips[n-1], nil
}

func (r *repl) ask(query string) {
	resp := r.engine.Respond(query)
	r.chips = r.engine.RelatedQuestions(resp.Text, query)

	color.New(color.FgGreen).Fprintln(r.out, resp.Text)
	meta := fmt.Sprintf("source=%s score=%d topic=%s", resp.Source, resp.Score, faq.RelatedTopic(resp.Text, query))
	if resp.Record != nil {
		meta += " faq=" + resp.Record.ID
	}
	if r.verbose {
		meta += fmt.Sprintf(" tokens=%v", resp.Tokens)
	}
	color.New(color.FgHiBlack).Fprintln(r.out, meta)
	r.printChips()
}

func (r *repl) printChips() {
	for i, q := range r.chips {
		color.New(color.FgCyan).Fprintf(r.out, "  :%d ", i+1)
		fmt.Fprintln(r.out, q)
	}
}
