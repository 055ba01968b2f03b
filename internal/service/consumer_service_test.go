package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"linen-chatbot-be/internal/dto"
	"linen-chatbot-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func interactionPayload(t *testing.T) []byte {
	t.Helper()
	raw, err := json.Marshal(dto.ChatInteractionMessage{
		SessionId:  "s-1",
		Query:      "cotton",
		Tokens:     []string{"cotton"},
		Outcome:    "faq",
		FaqId:      "prod-3",
		Score:      25,
		OccurredAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return raw
}

func TestConsumerService_StoresPublishedInteractions(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	defer pubSub.Close()

	repo := &fakeInteractionRepo{}
	consumer := NewConsumerService(pubSub, "chatbot.interactions", repo, logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService(pubSub, "chatbot.interactions")
	require.NoError(t, publisher.Publish(ctx, interactionPayload(t)))

	require.Eventually(t, func() bool { return repo.stored() == 1 }, time.Second, 5*time.Millisecond)

	got := repo.created[0]
	assert.Equal(t, "prod-3", got.FaqId)
	assert.Equal(t, []string{"cotton"}, got.Tokens)
	assert.Equal(t, 25, got.Score)
	assert.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), got.CreatedAt)
}

func TestConsumerService_ProcessMessage(t *testing.T) {
	tests := []struct {
		name      string
		payload   []byte
		repoErr   error
		wantAck   bool
		wantSaved int
	}{
		{name: "stored", payload: nil, wantAck: true, wantSaved: 1},
		{name: "bad json is dropped", payload: []byte("{not json"), wantAck: true},
		{name: "store failure is retried", payload: nil, repoErr: errBoom, wantAck: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := tt.payload
			if payload == nil {
				payload = interactionPayload(t)
			}
			repo := &fakeInteractionRepo{err: tt.repoErr}
			cs := &consumerService{repo: repo, logger: logger.NewNopLogger()}
			msg := message.NewMessage(watermill.NewUUID(), payload)

			cs.processMessage(context.Background(), msg)

			if tt.wantAck {
				assertClosed(t, msg.Acked())
			} else {
				assertClosed(t, msg.Nacked())
			}
			assert.Equal(t, tt.wantSaved, repo.stored())
		})
	}
}

func assertClosed(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	default:
		t.Fatal("expected channel to be closed")
	}
}
