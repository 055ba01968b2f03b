package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"linen-chatbot-be/internal/constant"
	"linen-chatbot-be/pkg/faq"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:  "linen-chat",
		Usage: "Talk to the Aurora Linen FAQ bot from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "corpus",
				Aliases: []string{"c"},
				Usage:   "Directory of *.yaml corpus partitions (defaults to the built-in corpus)",
				Sources: cli.EnvVars("CHATBOT_CORPUS_DIR"),
			},
			&cli.StringFlag{
				Name:    "ask",
				Aliases: []string{"q"},
				Usage:   "Answer one question and exit",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Also show the normalised tokens of every query",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Bool("no-color") {
				color.NoColor = true
			}

			engine, err := loadEngine(c.String("corpus"))
			if err != nil {
				return err
			}

			r := newREPL(engine, c.Root().Writer, c.Bool("verbose"))
			if q := strings.TrimSpace(c.String("ask")); q != "" {
				r.ask(q)
				return nil
			}
			return loop(r)
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadEngine(dir string) (*faq.Engine, error) {
	if dir == "" {
		return faq.Default(), nil
	}
	corpus, err := faq.LoadCorpus(os.DirFS(dir), ".")
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	return faq.NewEngine(corpus), nil
}

func loop(r *repl) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          color.New(color.FgYellow).Sprint("you> "),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	color.New(color.Bold).Fprintln(r.out, constant.WelcomeMessage)
	r.printChips()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		query, err := r.resolve(line)
		if err != nil {
			color.New(color.FgRed).Fprintln(r.out, err)
			continue
		}
		switch query {
		case "":
			continue
		case "exit", "quit":
			return nil
		}
		r.ask(query)
	}
}
