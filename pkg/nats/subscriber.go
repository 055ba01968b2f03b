package nats

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"linen-chatbot-be/pkg/events"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	// MaxDeliver caps redeliveries of a failing message.
	MaxDeliver = 8

	baseRedeliveryDelay = 2 * time.Second
	maxRedeliveryDelay  = 5 * time.Minute
)

// EventHandler is a function that processes an event.
type EventHandler func(ctx context.Context, event events.Event) error

// Subscriber handles listening for events from NATS.
type Subscriber struct {
	nc   *nats.Conn
	js   jetstream.JetStream
	subs []jetstream.ConsumeContext
}

// NewSubscriber opens its own connection to the bus.
func NewSubscriber(url string) (*Subscriber, error) {
	nc, js, err := connect(url)
	if err != nil {
		return nil, err
	}
	return &Subscriber{nc: nc, js: js}, nil
}

// Subscribe registers a handler on a durable consumer so nothing is lost across restarts.
// Undecodable messages are terminated. Handler errors are nak'd with a growing delay, up to MaxDeliver attempts.
func (s *Subscriber) Subscribe(ctx context.Context, eventType, durableName string, handler EventHandler) error {
	consumer, err := s.js.CreateOrUpdateConsumer(ctx, StreamName, jetstream.ConsumerConfig{
		Durable:       durableName,
		FilterSubject: Subject(eventType),
		AckPolicy:     jetstream.AckExplicitPolicy,
		MaxDeliver:    MaxDeliver,
	})
	if err != nil {
		return fmt.Errorf("failed to create consumer: %w", err)
	}

	cc, err := consumer.Consume(func(msg jetstream.Msg) {
		event, err := events.Unmarshal(msg.Data(), strings.TrimPrefix(msg.Subject(), subjectPrefix))
		if err != nil {
			log.Printf("Error decoding event on %s: %v", msg.Subject(), err)
			_ = msg.Term()
			return
		}

		if err := handler(ctx, event); err != nil {
			var attempt uint64 = 1
			if meta, metaErr := msg.Metadata(); metaErr == nil {
				attempt = meta.NumDelivered
			}
			log.Printf("Handler failed for event %s (delivery %d/%d): %v", msg.Subject(), attempt, MaxDeliver, err)
			_ = msg.NakWithDelay(RedeliveryDelay(attempt))
			return
		}

		_ = msg.Ack()
	})
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}
	s.subs = append(s.subs, cc)

	log.Printf("Subscribed to %s with durable %s", Subject(eventType), durableName)
	return nil
}

// RedeliveryDelay doubles from 2s per attempt and stops growing at 5m.
func RedeliveryDelay(attempt uint64) time.Duration {
	d := baseRedeliveryDelay
	for i := uint64(1); i < attempt; i++ {
		d *= 2
		if d >= maxRedeliveryDelay {
			return maxRedeliveryDelay
		}
	}
	return d
}

// Close stops every consumer and closes the connection.
func (s *Subscriber) Close() {
	for _, cc := range s.subs {
		cc.Stop()
	}
	if s.nc != nil {
		s.nc.Close()
	}
}
