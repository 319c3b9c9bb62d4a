package redisstore

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"fxrates-etl/internal/application"

	"github.com/redis/go-redis/v9"
)

// StatusStore keeps the outcome of the latest run in a redis hash.
type StatusStore struct {
	Client *redis.Client
	Key    string
	TTL    time.Duration
}

var _ application.RunRecorder = (*StatusStore)(nil)

func New(client *redis.Client, key string, ttl time.Duration) *StatusStore {
	return &StatusStore{Client: client, Key: key, TTL: ttl}
}

// Record replaces the hash so fields from an older run never linger.
func (s *StatusStore) Record(ctx context.Context, r application.RunReport) error {
	fields := map[string]any{
		"run_id":      r.RunID,
		"status":      string(r.Status),
		"date":        r.Date,
		"base":        r.Base,
		"attempted":   strconv.Itoa(r.Attempted),
		"finished_at": r.FinishedAt.UTC().Format(time.RFC3339),
	}
	if r.Err != nil {
		fields["error"] = r.Err.Error()
	}
	_, err := s.Client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, s.Key)
		p.HSet(ctx, s.Key, fields)
		if s.TTL > 0 {
			p.Expire(ctx, s.Key, s.TTL)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("record run status: %w", err)
	}
	return nil
}

// Last reads back the stored hash; empty when nothing was recorded or the key expired.
func (s *StatusStore) Last(ctx context.Context) (map[string]string, error) {
	return s.Client.HGetAll(ctx, s.Key).Result()
}
