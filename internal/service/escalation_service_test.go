package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"linen-chatbot-be/internal/constant"
	"linen-chatbot-be/internal/dto"
	"linen-chatbot-be/internal/pkg/mailer"
	"linen-chatbot-be/internal/repository/memory"
	"linen-chatbot-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var escalateRequest = &dto.EscalateRequest{Name: "Priya", Email: "priya@hotel.in", Message: "Bulk order for 40 rooms"}

func newEscalationFixture(t *testing.T) (*memory.SessionRepository, uuid.UUID) {
	t.Helper()
	sessions := memory.NewSessionRepository(time.Hour)
	chat := NewChatbotService(ChatbotDeps{Sessions: sessions})
	session, err := chat.CreateSession(context.Background())
	require.NoError(t, err)
	_, err = chat.SendMessage(context.Background(), session.Id, &dto.SendMessageRequest{Text: "Do you offer bulk pricing?"})
	require.NoError(t, err)
	return sessions, session.Id
}

func TestEscalationService_PublishesEvent(t *testing.T) {
	sessions, id := newEscalationFixture(t)
	bus := &fakeEventPublisher{}
	mail := &fakeMailer{}
	svc := NewEscalationService(EscalationDeps{Sessions: sessions, Publisher: bus, Mailer: mail, SupportEmail: "support@auroralinen.in"})

	res, err := svc.Escalate(context.Background(), id, escalateRequest)
	require.NoError(t, err)

	assert.Equal(t, constant.EscalationChannelNats, res.Channel)
	assert.NotEqual(t, uuid.Nil, res.TicketId)
	assert.Empty(t, mail.escalations)

	require.Len(t, bus.events, 1)
	e := bus.events[0]
	assert.Equal(t, events.SupportEscalationRequested, e.EventType())
	assert.Equal(t, res.TicketId.String(), events.String(e, "ticket_id"))
	assert.Equal(t, id.String(), events.String(e, "session_id"))

	esc := EscalationFromEvent(e)
	assert.Equal(t, "priya@hotel.in", esc.Email)
	require.Len(t, esc.Transcript, 3)
	assert.Equal(t, "Do you offer bulk pricing?", esc.Transcript[1].Text)

	session, _ := sessions.Get(id)
	last := session.Messages[len(session.Messages)-1]
	assert.Equal(t, fmt.Sprintf(constant.EscalationAcknowledgement, "priya@hotel.in"), last.Text)
	assert.Equal(t, constant.ChatMessageSenderBot, last.Sender)
}

func TestEscalationService_FallsBackToMail(t *testing.T) {
	sessions, id := newEscalationFixture(t)
	mail := &fakeMailer{}
	svc := NewEscalationService(EscalationDeps{
		Sessions:     sessions,
		Publisher:    &fakeEventPublisher{err: errBoom},
		Mailer:       mail,
		SupportEmail: "support@auroralinen.in",
	})

	res, err := svc.Escalate(context.Background(), id, escalateRequest)
	require.NoError(t, err)

	assert.Equal(t, constant.EscalationChannelEmail, res.Channel)
	assert.Equal(t, []string{"support@auroralinen.in"}, mail.escalations)
	require.Len(t, mail.receipts, 1)
	assert.Equal(t, res.TicketId.String(), mail.receipts[0].TicketId)
}

func TestEscalationService_Failures(t *testing.T) {
	tests := []struct {
		name    string
		deps    func(EscalationDeps) EscalationDeps
		wantErr error
	}{
		{
			name:    "no channel configured",
			deps:    func(d EscalationDeps) EscalationDeps { return d },
			wantErr: ErrEscalationUnavailable,
		},
		{
			name: "mail fails",
			deps: func(d EscalationDeps) EscalationDeps {
				d.Mailer = &fakeMailer{err: errBoom}
				return d
			},
			wantErr: errBoom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions, id := newEscalationFixture(t)
			svc := NewEscalationService(tt.deps(EscalationDeps{Sessions: sessions}))

			_, err := svc.Escalate(context.Background(), id, escalateRequest)
			assert.ErrorIs(t, err, tt.wantErr)

			session, _ := sessions.Get(id)
			assert.Len(t, session.Messages, 3)
		})
	}
}

func TestEscalationService_BusWithoutMailer(t *testing.T) {
	sessions, id := newEscalationFixture(t)
	bus := &fakeEventPublisher{}
	svc := NewEscalationService(EscalationDeps{Sessions: sessions, Publisher: bus})

	_, err := svc.Escalate(context.Background(), id, escalateRequest)
	assert.ErrorIs(t, err, ErrEscalationUnavailable)
	assert.Empty(t, bus.events)

	session, _ := sessions.Get(id)
	assert.Len(t, session.Messages, 3)
}

func TestEscalationService_UnknownSession(t *testing.T) {
	svc := NewEscalationService(EscalationDeps{
		Sessions: memory.NewSessionRepository(time.Hour),
		Mailer:   &fakeMailer{},
	})
	_, err := svc.Escalate(context.Background(), uuid.New(), escalateRequest)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestEscalationEvent_SurvivesTheWire(t *testing.T) {
	at := time.Date(2026, 5, 4, 8, 15, 0, 0, time.UTC)
	esc := mailer.Escalation{
		TicketId:   uuid.NewString(),
		Name:       "Arjun",
		Email:      "arjun@example.com",
		Transcript: []mailer.TranscriptLine{{Sender: "user", Text: "hello", At: at}},
	}

	raw, err := events.Marshal(EscalationEvent(uuid.New(), esc))
	require.NoError(t, err)
	decoded, err := events.Unmarshal(raw, "")
	require.NoError(t, err)

	assert.Equal(t, esc, EscalationFromEvent(decoded))
}
