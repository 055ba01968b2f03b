package faq

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var embeddedData embed.FS

// Record is a single question/answer pair of the FAQ corpus.
type Record struct {
	ID       string `yaml:"id" json:"id"`
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
	Category string `yaml:"category" json:"category"`
}

// partition mirrors one YAML file under data/.
type partition struct {
	Name    string   `yaml:"partition"`
	Records []Record `yaml:"records"`
}

// entry keeps the lowercased fields next to the record so scoring never
// lowercases the corpus more than once.
type entry struct {
	record   Record
	question string
	answer   string
	category string
}

// Corpus is the ordered, read-only FAQ collection. It has no writers after
// construction and is safe for concurrent use.
type Corpus struct {
	entries []entry
	byID    map[string]int
}

// NewCorpus builds a corpus from records in the given order.
func NewCorpus(records []Record) (*Corpus, error) {
	c := &Corpus{
		entries: make([]entry, 0, len(records)),
		byID:    make(map[string]int, len(records)),
	}
	for _, r := range records {
		if err := c.add(r); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Corpus) add(r Record) error {
	r.ID = strings.TrimSpace(r.ID)
	switch {
	case r.ID == "":
		return fmt.Errorf("record %q: empty id", r.Question)
	case strings.TrimSpace(r.Question) == "":
		return fmt.Errorf("record %s: empty question", r.ID)
	case strings.TrimSpace(r.Answer) == "":
		return fmt.Errorf("record %s: empty answer", r.ID)
	case strings.TrimSpace(r.Category) == "":
		return fmt.Errorf("record %s: empty category", r.ID)
	}
	if _, dup := c.byID[r.ID]; dup {
		return fmt.Errorf("record %s: duplicate id", r.ID)
	}

	c.byID[r.ID] = len(c.entries)
	c.entries = append(c.entries, entry{
		record:   r,
		question: strings.ToLower(r.Question),
		answer:   strings.ToLower(r.Answer),
		category: strings.ToLower(r.Category),
	})
	return nil
}

// LoadCorpus reads every *.yaml partition in dir and concatenates them in
// file-name order.
func LoadCorpus(fsys fs.FS, dir string) (*Corpus, error) {
	names, err := fs.Glob(fsys, path.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("list corpus partitions: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no corpus partitions in %s", dir)
	}
	sort.Strings(names)

	c := &Corpus{byID: make(map[string]int)}
	for _, name := range names {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read partition %s: %w", name, err)
		}

		var p partition
		if err := yaml.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("parse partition %s: %w", name, err)
		}
		for _, r := range p.Records {
			if err := c.add(r); err != nil {
				return nil, fmt.Errorf("partition %s: %w", name, err)
			}
		}
	}
	return c, nil
}

var (
	defaultCorpus     *Corpus
	defaultCorpusOnce sync.Once
)

// DefaultCorpus returns the embedded corpus, loaded on first use.
func DefaultCorpus() *Corpus {
	defaultCorpusOnce.Do(func() {
		c, err := LoadCorpus(embeddedData, "data")
		if err != nil {
			panic(fmt.Sprintf("faq: embedded corpus is invalid: %v", err))
		}
		defaultCorpus = c
	})
	return defaultCorpus
}

// Len returns the number of records.
func (c *Corpus) Len() int {
	return len(c.entries)
}

// Records returns a copy of all records in corpus order.
func (c *Corpus) Records() []Record {
	out := make([]Record, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.record
	}
	return out
}

// Find looks a record up by id.
func (c *Corpus) Find(id string) (Record, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Record{}, false
	}
	return c.entries[i].record, true
}

// Categories lists category labels in order of first appearance.
func (c *Corpus) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range c.entries {
		if !seen[e.record.Category] {
			seen[e.record.Category] = true
			out = append(out, e.record.Category)
		}
	}
	return out
}

// ByCategory returns the records whose category equals name, ignoring case.
func (c *Corpus) ByCategory(name string) []Record {
	name = strings.ToLower(strings.TrimSpace(name))
	var out []Record
	for _, e := range c.entries {
		if e.category == name {
			out = append(out, e.record)
		}
	}
	return out
}

// findQuestion returns the first record whose question contains phrase.
func (c *Corpus) findQuestion(phrase string) (Record, bool) {
	for _, e := range c.entries {
		if strings.Contains(e.question, phrase) {
			return e.record, true
		}
	}
	return Record{}, false
}
