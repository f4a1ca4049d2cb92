package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"linkstash/model"

	"github.com/redis/go-redis/v9"
)

// QueryCache keeps hot derived reads (category counts) in Redis.
// Every miss or Redis failure falls through to the repository, so the
// cache is strictly optional.
type QueryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewQueryCache(redisURL string, ttl time.Duration) (*QueryCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &QueryCache{client: client, ttl: ttl}, nil
}

func categoryCountsKey(userID string) string {
	return fmt.Sprintf("category_counts:%s", userID)
}

// GetCategoryCounts returns the cached counts for a user. The second
// return value is false on a miss or any cache failure.
func (qc *QueryCache) GetCategoryCounts(ctx context.Context, userID string) (map[model.Category]int, bool) {
	data, err := qc.client.Get(ctx, categoryCountsKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("query cache read failed: %v", err)
		return nil, false
	}

	var counts map[model.Category]int
	if err := json.Unmarshal(data, &counts); err != nil {
		log.Printf("query cache decode failed: %v", err)
		return nil, false
	}
	return counts, true
}

func (qc *QueryCache) SetCategoryCounts(ctx context.Context, userID string, counts map[model.Category]int) {
	data, err := json.Marshal(counts)
	if err != nil {
		log.Printf("query cache encode failed: %v", err)
		return
	}
	if err := qc.client.Set(ctx, categoryCountsKey(userID), data, qc.ttl).Err(); err != nil {
		log.Printf("query cache write failed: %v", err)
	}
}

// InvalidateCategoryCounts drops the cached counts after an item
// mutation.
func (qc *QueryCache) InvalidateCategoryCounts(ctx context.Context, userID string) {
	if err := qc.client.Del(ctx, categoryCountsKey(userID)).Err(); err != nil && err != redis.Nil {
		log.Printf("query cache invalidate failed: %v", err)
	}
}
