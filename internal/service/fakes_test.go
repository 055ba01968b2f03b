package service

import (
	"context"
	"errors"
	"sync"

	"linen-chatbot-be/internal/entity"
	"linen-chatbot-be/internal/pkg/mailer"
	"linen-chatbot-be/internal/repository/cache"
	"linen-chatbot-be/internal/repository/specification"
	"linen-chatbot-be/pkg/events"
	pktNats "linen-chatbot-be/pkg/nats"
)

var errBoom = errors.New("boom")

type fakePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
	err      error
}

func (f *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, payload)
	return f.err
}

func (f *fakePublisher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.payloads)
}

type fakePopularity struct {
	mu   sync.Mutex
	hits map[string]int64
	err  error
}

func (f *fakePopularity) Increment(ctx context.Context, faqID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.hits == nil {
		f.hits = map[string]int64{}
	}
	f.hits[faqID]++
	return nil
}

func (f *fakePopularity) Top(ctx context.Context, n int) ([]cache.FAQHit, error) {
	return []cache.FAQHit{{ID: "prod-1", Hits: 9}, {ID: "gone-1", Hits: 4}, {ID: "ship-1", Hits: 2}}, f.err
}

type fakeEventPublisher struct {
	events []events.Event
	err    error
}

func (f *fakeEventPublisher) Publish(ctx context.Context, e events.Event) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, e)
	return nil
}

type fakeMailer struct {
	escalations []string
	receipts    []mailer.Escalation
	sent        []mailer.Escalation
	err         error
	receiptErr  error
}

func (f *fakeMailer) SendEscalation(toEmail string, esc mailer.Escalation) error {
	if f.err != nil {
		return f.err
	}
	f.escalations = append(f.escalations, toEmail)
	f.sent = append(f.sent, esc)
	return nil
}

func (f *fakeMailer) SendEscalationReceipt(esc mailer.Escalation) error {
	if f.receiptErr != nil {
		return f.receiptErr
	}
	f.receipts = append(f.receipts, esc)
	return nil
}

type fakeSubscriber struct {
	eventType string
	durable   string
	handler   pktNats.EventHandler
	err       error
}

func (f *fakeSubscriber) Subscribe(ctx context.Context, eventType, durableName string, handler pktNats.EventHandler) error {
	f.eventType = eventType
	f.durable = durableName
	f.handler = handler
	return f.err
}

type fakeInteractionRepo struct {
	mu      sync.Mutex
	created []*entity.ChatInteraction
	specs   []specification.Specification
	err     error
}

func (f *fakeInteractionRepo) Create(ctx context.Context, interaction *entity.ChatInteraction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, interaction)
	return nil
}

func (f *fakeInteractionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatInteraction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.specs = specs
	return f.created, f.err
}

func (f *fakeInteractionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.created)), f.err
}

func (f *fakeInteractionRepo) CountByOutcome(ctx context.Context) ([]entity.OutcomeCount, error) {
	return []entity.OutcomeCount{{Outcome: "faq", Count: 3}, {Outcome: "default", Count: 1}}, f.err
}

func (f *fakeInteractionRepo) stored() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}
