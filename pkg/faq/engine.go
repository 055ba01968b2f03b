// Package faq answers storefront customer questions from a static FAQ corpus.
//
// A query first runs through a short chain of intent rules (greeting, contact,
// order status). Anything else is normalised into keywords, every corpus record
// is scored against it and the best record is used when it clears
// MinimumScore. The engine never fails: an unmatched query gets DefaultResponse.
package faq

import (
	"strings"
	"sync"
)

// Source tells which path of the engine produced a response.
type Source string

const (
	SourceGreeting    Source = "greeting"
	SourceContact     Source = "contact"
	SourceOrderStatus Source = "order_status"
	SourceFAQ         Source = "faq"
	SourceDefault     Source = "default"
)

// Response is the engine's answer together with how it was reached.
type Response struct {
	Text   string
	Source Source
	// Record is set when the text came from a corpus record.
	Record *Record
	// Score is the winning score for SourceFAQ responses.
	Score  int
	Tokens []string
}

// Engine matches queries against one corpus. It holds no mutable state.
type Engine struct {
	corpus   *Corpus
	rules    []intentRule
	tracking *Record
}

// NewEngine creates an engine over corpus.
func NewEngine(corpus *Corpus) *Engine {
	e := &Engine{
		corpus: corpus,
		rules:  defaultIntentRules(),
	}
	if rec, ok := corpus.findQuestion(trackingQuestion); ok {
		e.tracking = &rec
	}
	return e
}

// Corpus returns the corpus the engine answers from.
func (e *Engine) Corpus() *Corpus {
	return e.corpus
}

// Respond runs the full matching pipeline for one user message.
func (e *Engine) Respond(query string) Response {
	q := strings.ToLower(strings.TrimSpace(query))
	tokens := Normalize(query)

	for _, rule := range e.rules {
		if rule.matches(q) {
			resp := rule.respond(e, q)
			resp.Tokens = tokens
			return resp
		}
	}

	if best, ok := SelectBest(Score(query, tokens, e.corpus)); ok {
		rec := best.Record
		return Response{
			Text:   rec.Answer,
			Source: SourceFAQ,
			Record: &rec,
			Score:  best.Score,
			Tokens: tokens,
		}
	}

	return Response{Text: DefaultResponse, Source: SourceDefault, Tokens: tokens}
}

// BotResponse returns only the reply text for a user message.
func (e *Engine) BotResponse(query string) string {
	return e.Respond(query).Text
}

// RelatedQuestions proposes follow-ups for an answer given to query.
func (e *Engine) RelatedQuestions(answer, query string) []string {
	return RelatedQuestions(answer, query)
}

var (
	defaultEngine     *Engine
	defaultEngineOnce sync.Once
)

// Default returns the engine over the embedded corpus.
func Default() *Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine = NewEngine(DefaultCorpus())
	})
	return defaultEngine
}

// BotResponse answers a user message with the default engine.
func BotResponse(userMessage string) string {
	return Default().BotResponse(userMessage)
}
