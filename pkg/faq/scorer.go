package faq

import (
	"strings"
	"unicode/utf8"
)

// Scoring weights. Question hits must always outweigh answer hits, otherwise
// a record that merely mentions a common word in its answer can outrank the
// record whose question is actually about it.
const (
	PhraseMatchScore          = 150
	QuestionTechnicalScore    = 25
	QuestionKeywordScore      = 15
	AnswerTechnicalScore      = 5
	AnswerKeywordScore        = 1
	CategoryKeywordScore      = 5
	phraseMatchMinQueryLength = 6
)

var (
	questionTechnicalTerms = toSet("gsm", "tc", "thread", "cotton", "size", "return", "refund", "track")
	answerTechnicalTerms   = toSet("gsm", "tc", "thread", "cotton", "refund")
)

// ScoredCandidate pairs a record with its score for one scoring pass.
type ScoredCandidate struct {
	Record Record
	Score  int
}

// Score rates every corpus record against the query. The result is in corpus
// order. When there are no tokens, only queries longer than five characters
// are scored, and then only by phrase containment.
func Score(rawQuery string, tokens []string, corpus *Corpus) []ScoredCandidate {
	phrase := strings.ToLower(strings.TrimSpace(rawQuery))
	usePhrase := utf8.RuneCountInString(phrase) >= phraseMatchMinQueryLength

	if len(tokens) == 0 && !usePhrase {
		return nil
	}

	candidates := make([]ScoredCandidate, 0, corpus.Len())
	for _, e := range corpus.entries {
		candidates = append(candidates, ScoredCandidate{
			Record: e.record,
			Score:  scoreEntry(e, phrase, usePhrase, tokens),
		})
	}
	return candidates
}

func scoreEntry(e entry, phrase string, usePhrase bool, tokens []string) int {
	score := 0

	if usePhrase && strings.Contains(e.question, phrase) {
		score += PhraseMatchScore
	}

	for _, tok := range tokens {
		if strings.Contains(e.question, tok) {
			if _, ok := questionTechnicalTerms[tok]; ok {
				score += QuestionTechnicalScore
			} else {
				score += QuestionKeywordScore
			}
		}

		if strings.Contains(e.answer, tok) {
			if _, ok := answerTechnicalTerms[tok]; ok {
				score += AnswerTechnicalScore
			} else {
				score += AnswerKeywordScore
			}
		}

		if strings.Contains(e.category, tok) {
			score += CategoryKeywordScore
		}
	}

	return score
}
