package service

import (
	"context"
	"errors"
	"fmt"

	"linen-chatbot-be/internal/pkg/logger"
	"linen-chatbot-be/internal/pkg/mailer"
	"linen-chatbot-be/pkg/events"
	pktNats "linen-chatbot-be/pkg/nats"
)

// EventSubscriber attaches handlers to durable consumers on the bus.
type EventSubscriber interface {
	Subscribe(ctx context.Context, eventType, durableName string, handler pktNats.EventHandler) error
}

// NotificationService mails escalated chats to the support inbox and confirms receipt to the customer.
type NotificationService struct {
	subscriber   EventSubscriber
	mailer       mailer.IEmailService
	supportEmail string
	durable      string
	logger       logger.ILogger
}

func NewNotificationService(sub EventSubscriber, mail mailer.IEmailService, supportEmail, durable string, log logger.ILogger) *NotificationService {
	return &NotificationService{
		subscriber:   sub,
		mailer:       mail,
		supportEmail: supportEmail,
		durable:      durable,
		logger:       log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start(ctx context.Context) error {
	err := s.subscriber.Subscribe(ctx, events.SupportEscalationRequested, s.durable, s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start escalation subscriber", map[string]interface{}{"error": err.Error()})
		return err
	}
	s.logger.Info("NotificationService", "Listening for escalations", map[string]interface{}{"durable": s.durable})
	return nil
}

// handleEvent returns an error only when support was not reached, so the bus redelivers.
// A failed receipt is logged; retrying it would mail support twice.
func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	if event.EventType() != events.SupportEscalationRequested {
		s.logger.Warn("NotificationService", fmt.Sprintf("Ignoring event: %s", event.EventType()), nil)
		return nil
	}

	esc := EscalationFromEvent(event)
	if esc.TicketId == "" || esc.Email == "" {
		s.logger.Warn("NotificationService", "Escalation without ticket or email dropped", map[string]interface{}{"payload": event.Payload()})
		return nil
	}

	if s.mailer == nil {
		return errors.New("no mailer configured")
	}

	if err := s.mailer.SendEscalation(s.supportEmail, esc); err != nil {
		s.logger.Error("NotificationService", "Failed to mail support", map[string]interface{}{"error": err.Error(), "ticket_id": esc.TicketId})
		return err
	}
	if err := s.mailer.SendEscalationReceipt(esc); err != nil {
		s.logger.Warn("NotificationService", "Failed to mail receipt", map[string]interface{}{"error": err.Error(), "ticket_id": esc.TicketId})
	}

	s.logger.Info("NotificationService", "Escalation delivered", map[string]interface{}{"ticket_id": esc.TicketId})
	return nil
}
