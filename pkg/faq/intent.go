package faq

import (
	"regexp"
	"strings"
)

// trackingQuestion identifies the record used for tracking and status queries.
const trackingQuestion = "track my order"

var greetingPattern = regexp.MustCompile(`(?i)^(hi|hello|hey|greetings|good morning|good afternoon|good evening)[\s!.?,]*$`)

var contactKeywords = []string{"contact", "email", "phone", "call", "reach", "support"}

// intentRule is one step of the fallback chain. Rules are evaluated in order
// against the lowercased, trimmed query and the first match answers.
type intentRule struct {
	source  Source
	matches func(q string) bool
	respond func(e *Engine, q string) Response
}

func defaultIntentRules() []intentRule {
	return []intentRule{
		{
			source:  SourceGreeting,
			matches: greetingPattern.MatchString,
			respond: func(_ *Engine, _ string) Response {
				return Response{Text: GreetingResponse, Source: SourceGreeting}
			},
		},
		{
			source:  SourceContact,
			matches: isContactIntent,
			respond: func(_ *Engine, _ string) Response {
				return Response{Text: ContactResponse, Source: SourceContact}
			},
		},
		{
			source:  SourceOrderStatus,
			matches: isOrderIntent,
			respond: respondOrder,
		},
	}
}

func isContactIntent(q string) bool {
	return containsAny(q, contactKeywords...)
}

func isOrderIntent(q string) bool {
	switch {
	case strings.Contains(q, "order detail"):
		return true
	case strings.Contains(q, "get") && strings.Contains(q, "order") && !strings.Contains(q, "place"):
		return true
	case strings.Contains(q, "view") && strings.Contains(q, "order"):
		return true
	}
	return isTrackingIntent(q)
}

func isTrackingIntent(q string) bool {
	return containsAny(q, "track", "status")
}

// respondOrder answers tracking questions from the tracking FAQ when the
// corpus has one and falls back to the order details walkthrough.
func respondOrder(e *Engine, q string) Response {
	if isTrackingIntent(q) && e.tracking != nil {
		rec := *e.tracking
		return Response{Text: rec.Answer, Source: SourceOrderStatus, Record: &rec}
	}
	return Response{Text: OrderDetailsResponse, Source: SourceOrderStatus}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
