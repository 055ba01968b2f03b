package faq

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// minTokenLength is the shortest token kept; anything of two runes or less is noise.
const minTokenLength = 3

// stopWords holds pronouns, articles, auxiliary verbs, wh-words and the
// connectives that carry no topic.
var stopWords = toSet(
	// articles
	"a", "an", "the",
	// pronouns
	"i", "me", "my", "mine", "we", "us", "our", "ours", "you", "your", "yours",
	"he", "him", "his", "she", "her", "hers", "it", "its", "they", "them",
	"their", "theirs", "this", "that", "these", "those",
	// auxiliaries
	"is", "am", "are", "was", "were", "be", "been", "being", "do", "does",
	"did", "have", "has", "had", "can", "could", "will", "would", "shall",
	"should", "may", "might", "must",
	// wh-words
	"what", "which", "who", "whom", "whose", "when", "where", "why", "how",
	// connectives
	"and", "or", "but", "if", "of", "to", "in", "on", "at", "by", "for",
	"with", "from", "about", "into",
)

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Normalize lowercases the query, splits it on whitespace and punctuation
// and drops stop-words and short tokens. Order and duplicates are kept.
func Normalize(query string) []string {
	fields := strings.FieldsFunc(strings.ToLower(strings.TrimSpace(query)), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) < minTokenLength {
			continue
		}
		if _, stop := stopWords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}
