package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"linen-chatbot-be/internal/entity"
	"linen-chatbot-be/internal/model"
	"linen-chatbot-be/internal/repository/implementation"
	"linen-chatbot-be/internal/repository/specification"
	"linen-chatbot-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatInteractionRepository(t *testing.T) {
	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn, false)
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(&model.ChatInteraction{}))

	ctx := context.Background()
	repo := implementation.NewChatInteractionRepository(gormDB)

	// unique session id so parallel runs against one database do not collide
	session := uuid.NewString()
	defer gormDB.Where("session_id = ?", session).Delete(&model.ChatInteraction{})

	base := time.Now().Add(-time.Minute).UTC().Truncate(time.Millisecond)
	rows := []*entity.ChatInteraction{
		{SessionId: session, Query: "cotton", Tokens: []string{"cotton"}, Outcome: "faq", FaqId: "prod-3", Score: 25, CreatedAt: base},
		{SessionId: session, Query: "zxqv", Tokens: []string{"zxqv"}, Outcome: "default", CreatedAt: base.Add(time.Second)},
		{SessionId: session, Query: "towels", Tokens: []string{"towels"}, Outcome: "faq", FaqId: "prod-7", Score: 165, CreatedAt: base.Add(2 * time.Second)},
	}
	for _, r := range rows {
		require.NoError(t, repo.Create(ctx, r))
		assert.NotEqual(t, uuid.Nil, r.Id)
	}

	mine := specification.Filter("session_id", session)

	t.Run("FindAll newest first", func(t *testing.T) {
		got, err := repo.FindAll(ctx, mine, specification.ByOutcome{Outcome: "faq"}, specification.NewestFirst{})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "prod-7", got[0].FaqId)
		assert.Equal(t, []string{"cotton"}, got[1].Tokens)
	})

	t.Run("Pagination", func(t *testing.T) {
		got, err := repo.FindAll(ctx, mine, specification.NewestFirst{}, specification.Pagination{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "default", got[0].Outcome)
	})

	t.Run("Count", func(t *testing.T) {
		n, err := repo.Count(ctx, mine)
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
	})

	t.Run("CountByOutcome", func(t *testing.T) {
		counts, err := repo.CountByOutcome(ctx)
		require.NoError(t, err)
		byOutcome := map[string]int64{}
		for _, c := range counts {
			byOutcome[c.Outcome] = c.Count
		}
		assert.GreaterOrEqual(t, byOutcome["faq"], int64(2))
		assert.GreaterOrEqual(t, byOutcome["default"], int64(1))
	})
}
