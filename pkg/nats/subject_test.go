package nats

import (
	"testing"
	"time"

	"linen-chatbot-be/pkg/events"
)

func TestSubject(t *testing.T) {
	got := Subject(events.SupportEscalationRequested)
	if got != "events.SUPPORT_ESCALATION_REQUESTED" {
		t.Errorf("Subject() = %q", got)
	}
}

func TestRedeliveryDelay(t *testing.T) {
	tests := []struct {
		attempt uint64
		want    time.Duration
	}{
		{0, 2 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{4, 16 * time.Second},
		{MaxDeliver, 4*time.Minute + 16*time.Second},
		{20, 5 * time.Minute},
	}

	for _, tt := range tests {
		if got := RedeliveryDelay(tt.attempt); got != tt.want {
			t.Errorf("RedeliveryDelay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}
