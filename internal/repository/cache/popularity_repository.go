// Package cache holds the Redis-backed chatbot counters.
package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const faqHitsKey = "chatbot:faq_hits"

// FAQHit is how often a FAQ record answered a user.
type FAQHit struct {
	ID   string
	Hits int64
}

// PopularityRepository counts FAQ hits in a Redis sorted set.
type PopularityRepository struct {
	rdb *redis.Client
	key string
}

func NewPopularityRepository(rdb *redis.Client) *PopularityRepository {
	return &PopularityRepository{rdb: rdb, key: faqHitsKey}
}

// Increment adds one hit for faqID.
func (r *PopularityRepository) Increment(ctx context.Context, faqID string) error {
	if err := r.rdb.ZIncrBy(ctx, r.key, 1, faqID).Err(); err != nil {
		return fmt.Errorf("redis zincrby: %w", err)
	}
	return nil
}

// Top returns the n most answered FAQ ids, highest first.
func (r *PopularityRepository) Top(ctx context.Context, n int) ([]FAQHit, error) {
	if n <= 0 {
		return []FAQHit{}, nil
	}

	zs, err := r.rdb.ZRevRangeWithScores(ctx, r.key, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis zrevrange: %w", err)
	}

	hits := make([]FAQHit, 0, len(zs))
	for _, z := range zs {
		id, ok := z.Member.(string)
		if !ok {
			continue
		}
		hits = append(hits, FAQHit{ID: id, Hits: int64(z.Score)})
	}
	return hits, nil
}

// Reset drops every counter.
func (r *PopularityRepository) Reset(ctx context.Context) error {
	if err := r.rdb.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("redis delete: %w", err)
	}
	return nil
}
