package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/abhisek/quizbuddy/internal/logger"
	"github.com/abhisek/quizbuddy/internal/quizgen"
)

const redisKeyPrefix = "quizbuddy:gen:"

// Redis is a Cache shared by every process pointing at the same server.
// Freshness is enforced by the key expiry.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewRedis wraps client. A non-positive ttl uses DefaultTTL.
func NewRedis(client *redis.Client, ttl time.Duration, log *logger.Logger) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Redis{client: client, ttl: ttl, log: log}
}

// DialRedis connects to the server at url (redis://...) and checks it is
// reachable.
func DialRedis(ctx context.Context, url string, ttl time.Duration, log *logger.Logger) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedis(client, ttl, log), nil
}

// RedisKey is the key under which the batch of a pair is stored.
func RedisKey(category, topic string) string {
	return redisKeyPrefix + category + ":" + topic
}

// Get treats connection errors and undecodable values as misses.
func (r *Redis) Get(ctx context.Context, category, topic string) ([]quizgen.Question, bool) {
	data, err := r.client.Get(ctx, RedisKey(category, topic)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		r.log.Warn("cache read failed", "category", category, "topic", topic, "error", err)
		return nil, false
	}

	var batch []quizgen.Question
	if err := json.Unmarshal(data, &batch); err != nil || len(batch) == 0 {
		return nil, false
	}
	return batch, true
}

func (r *Redis) Put(ctx context.Context, category, topic string, batch []quizgen.Question) error {
	data, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("encode batch: %w", err)
	}
	if err := r.client.Set(ctx, RedisKey(category, topic), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("cache write: %w", err)
	}
	return nil
}

// Close releases the client connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}
