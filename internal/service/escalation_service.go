package service

import (
	"context"
	"fmt"
	"time"

	"linen-chatbot-be/internal/constant"
	"linen-chatbot-be/internal/dto"
	"linen-chatbot-be/internal/entity"
	"linen-chatbot-be/internal/pkg/logger"
	"linen-chatbot-be/internal/pkg/mailer"
	"linen-chatbot-be/internal/pkg/metrics"
	"linen-chatbot-be/internal/repository/memory"
	"linen-chatbot-be/pkg/events"

	"github.com/google/uuid"
)

const publishTimeout = 5 * time.Second

type IEscalationService interface {
	Escalate(ctx context.Context, sessionId uuid.UUID, request *dto.EscalateRequest) (*dto.EscalateResponse, error)
}

// EventPublisher puts events on the bus.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// EscalationDeps may leave Publisher nil. Every route ends in mail, so without a Mailer escalation is unavailable.
type EscalationDeps struct {
	Sessions     *memory.SessionRepository
	Publisher    EventPublisher
	Mailer       mailer.IEmailService
	SupportEmail string
	Metrics      metrics.Recorder
	Logger       logger.ILogger
}

type escalationService struct {
	sessions     *memory.SessionRepository
	publisher    EventPublisher
	mailer       mailer.IEmailService
	supportEmail string
	metrics      metrics.Recorder
	logger       logger.ILogger
}

func NewEscalationService(deps EscalationDeps) IEscalationService {
	if deps.Metrics == nil {
		deps.Metrics = metrics.Nop{}
	}
	if deps.Logger == nil {
		deps.Logger = logger.NewNopLogger()
	}
	return &escalationService{
		sessions:     deps.Sessions,
		publisher:    deps.Publisher,
		mailer:       deps.Mailer,
		supportEmail: deps.SupportEmail,
		metrics:      deps.Metrics,
		logger:       deps.Logger,
	}
}

// Escalate hands the conversation to a person. The event bus is tried first and
// direct email is the fallback.
func (s *escalationService) Escalate(ctx context.Context, sessionId uuid.UUID, request *dto.EscalateRequest) (*dto.EscalateResponse, error) {
	session, ok := s.sessions.Get(sessionId)
	if !ok {
		return nil, ErrSessionNotFound
	}

	esc := mailer.Escalation{
		TicketId:   uuid.NewString(),
		Name:       request.Name,
		Email:      request.Email,
		Message:    request.Message,
		Transcript: transcriptOf(session),
	}

	channel, err := s.deliver(ctx, sessionId, esc)
	if err != nil {
		return nil, err
	}

	ack := entity.ChatMessage{
		Id:        uuid.New(),
		Text:      fmt.Sprintf(constant.EscalationAcknowledgement, request.Email),
		Sender:    constant.ChatMessageSenderBot,
		Timestamp: time.Now(),
	}
	_, _, _ = s.sessions.Update(sessionId, func(cur *entity.ChatSession) error {
		cur.Append(ack)
		return nil
	})

	s.metrics.IncEscalation(channel)
	s.logger.Info("ESCALATION", "Conversation escalated", map[string]interface{}{
		"session_id": sessionId.String(),
		"ticket_id":  esc.TicketId,
		"channel":    channel,
	})

	ticket, _ := uuid.Parse(esc.TicketId)
	return &dto.EscalateResponse{TicketId: ticket, Channel: channel}, nil
}

func (s *escalationService) deliver(ctx context.Context, sessionId uuid.UUID, esc mailer.Escalation) (string, error) {
	if s.mailer == nil {
		return "", ErrEscalationUnavailable
	}

	if s.publisher != nil {
		pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
		err := s.publisher.Publish(pubCtx, EscalationEvent(sessionId, esc))
		cancel()
		if err == nil {
			return constant.EscalationChannelNats, nil
		}
		s.logger.Warn("ESCALATION", "Event bus publish failed, mailing support directly", map[string]interface{}{"error": err.Error()})
	}

	if err := s.mailer.SendEscalation(s.supportEmail, esc); err != nil {
		return "", fmt.Errorf("mail escalation: %w", err)
	}
	if err := s.mailer.SendEscalationReceipt(esc); err != nil {
		s.logger.Warn("ESCALATION", "Failed to send receipt", map[string]interface{}{"error": err.Error()})
	}
	return constant.EscalationChannelEmail, nil
}

func transcriptOf(session *entity.ChatSession) []mailer.TranscriptLine {
	lines := make([]mailer.TranscriptLine, 0, len(session.Messages))
	for _, m := range session.Messages {
		lines = append(lines, mailer.TranscriptLine{Sender: m.Sender, Text: m.Text, At: m.Timestamp})
	}
	return lines
}

// EscalationEvent builds the SUPPORT_ESCALATION_REQUESTED event.
func EscalationEvent(sessionId uuid.UUID, esc mailer.Escalation) events.BaseEvent {
	transcript := make([]interface{}, 0, len(esc.Transcript))
	for _, l := range esc.Transcript {
		transcript = append(transcript, map[string]interface{}{
			"sender": l.Sender,
			"text":   l.Text,
			"at":     l.At.UTC().Format(time.RFC3339),
		})
	}

	return events.New(events.SupportEscalationRequested, map[string]interface{}{
		"ticket_id":  esc.TicketId,
		"session_id": sessionId.String(),
		"name":       esc.Name,
		"email":      esc.Email,
		"message":    esc.Message,
		"transcript": transcript,
	})
}

// EscalationFromEvent reverses EscalationEvent after a trip over the bus.
func EscalationFromEvent(e events.Event) mailer.Escalation {
	esc := mailer.Escalation{
		TicketId: events.String(e, "ticket_id"),
		Name:     events.String(e, "name"),
		Email:    events.String(e, "email"),
		Message:  events.String(e, "message"),
	}

	raw, _ := e.Payload()["transcript"].([]interface{})
	for _, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		sender, _ := m["sender"].(string)
		text, _ := m["text"].(string)
		atStr, _ := m["at"].(string)
		at, _ := time.Parse(time.RFC3339, atStr)
		esc.Transcript = append(esc.Transcript, mailer.TranscriptLine{Sender: sender, Text: text, At: at})
	}
	return esc
}
