package faq

import "strings"

// MaxSuggestions caps the follow-up chips returned for one answer.
const MaxSuggestions = 4

type suggestionBucket struct {
	topic     string
	keywords  []string
	questions []string
}

// suggestionBuckets are checked top to bottom; the first bucket whose
// keywords appear in the query or answer wins.
var suggestionBuckets = []suggestionBucket{
	{
		topic:    "products",
		keywords: []string{"product", "bedsheet", "sheet", "towel", "pillow", "duvet", "thread count", "gsm", "fabric", "cotton", "size"},
		questions: []string{
			"What sizes do your bedsheets come in?",
			"What is the difference between 300 TC and 400 TC?",
			"Are your towels 100% cotton?",
			"What GSM are your bath towels?",
		},
	},
	{
		topic:    "ordering",
		keywords: []string{"place an order", "place order", "how to order", "minimum order", "bulk", "buy", "purchase", "payment", "price", "quotation", "cash on delivery"},
		questions: []string{
			"What is the minimum order quantity for hotels?",
			"Do you offer bulk discounts?",
			"Which payment methods do you accept?",
			"Can I pay cash on delivery?",
		},
	},
	{
		topic:    "shipping",
		keywords: []string{"shipping", "ship", "delivery", "deliver", "courier"},
		questions: []string{
			"How long does delivery take?",
			"Do you ship internationally?",
			"How much does shipping cost?",
			"Which courier do you use?",
		},
	},
	{
		topic:    "tracking",
		keywords: []string{"track", "status"},
		questions: []string{
			"How do I track my order?",
			"Where can I see my order history?",
			"Can I change my delivery address after ordering?",
			"What happens if my order is delayed?",
		},
	},
	{
		topic:    "returns",
		keywords: []string{"return", "refund", "exchange", "damaged"},
		questions: []string{
			"What is your return policy?",
			"How long do refunds take?",
			"Can I exchange a product for a different size?",
			"What if my item arrives damaged?",
		},
	},
}

var defaultSuggestions = suggestionBucket{
	topic: "general",
	questions: []string{
		"How do I place an order?",
		"What are your shipping options?",
		"How do I track my order?",
		"What is your return policy?",
	},
}

// RelatedQuestions proposes follow-up questions for an answer. Exactly one
// topic bucket is used per call.
func RelatedQuestions(answer, query string) []string {
	return pickBucket(answer, query).suggestions()
}

// RelatedTopic reports which bucket RelatedQuestions would draw from.
func RelatedTopic(answer, query string) string {
	return pickBucket(answer, query).topic
}

func pickBucket(answer, query string) suggestionBucket {
	text := strings.ToLower(query) + "\n" + strings.ToLower(answer)
	for _, b := range suggestionBuckets {
		if containsAny(text, b.keywords...) {
			return b
		}
	}
	return defaultSuggestions
}

func (b suggestionBucket) suggestions() []string {
	n := len(b.questions)
	if n > MaxSuggestions {
		n = MaxSuggestions
	}
	out := make([]string, n)
	copy(out, b.questions[:n])
	return out
}
