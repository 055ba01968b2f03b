package mailer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEscalationBody(t *testing.T) {
	esc := Escalation{
		TicketId: "3f2a9c1e-0000-4000-8000-000000000000",
		Name:     "Priya <Front Desk>",
		Email:    "priya@hotel.in",
		Message:  "Need 200 sheets",
		Transcript: []TranscriptLine{
			{Sender: "user", Text: "Do you do <b>bulk</b>?", At: time.Date(2026, 1, 2, 9, 30, 0, 0, time.UTC)},
			{Sender: "bot", Text: "Yes.", At: time.Date(2026, 1, 2, 9, 30, 1, 0, time.UTC)},
		},
	}

	body := EscalationBody(esc)

	assert.Contains(t, body, "Priya &lt;Front Desk&gt;")
	assert.Contains(t, body, "Do you do &lt;b&gt;bulk&lt;/b&gt;?")
	assert.Contains(t, body, "09:30:01")
	assert.Contains(t, body, "Need 200 sheets")
	assert.NotContains(t, body, "<b>bulk")
}

func TestReceiptBody(t *testing.T) {
	body := ReceiptBody(Escalation{TicketId: "3f2a9c1e-0000", Name: "Priya"})
	assert.Contains(t, body, "Hi Priya,")
	assert.Contains(t, body, "3F2A9C1E")
}
