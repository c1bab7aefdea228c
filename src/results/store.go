package results

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	stageKeyPrefix = "results:stage:"
	runKeyPrefix   = "results:run:"
)

// ErrStageNotFound marks a stage whose results were never saved or have
// expired. Later stages depend on earlier ones, so callers should surface
// this to the operator.
var ErrStageNotFound = errors.New("stage results not found")

// RedisStore persists stage outputs so later pipeline stages and separate
// processes can pick up where earlier ones left off.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps an existing client. The client is shared with the
// answer cache and closed by its owner.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *RedisStore) SaveStage(ctx context.Context, stage string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s results: %w", stage, err)
	}

	if err := s.client.Set(ctx, stageKeyPrefix+stage, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save %s results: %w", stage, err)
	}

	return nil
}

func (s *RedisStore) LoadStage(ctx context.Context, stage string, into any) error {
	data, err := s.client.Get(ctx, stageKeyPrefix+stage).Result()
	if err == redis.Nil {
		return fmt.Errorf("%w: %s", ErrStageNotFound, stage)
	}
	if err != nil {
		return fmt.Errorf("failed to load %s results: %w", stage, err)
	}

	if err := json.Unmarshal([]byte(data), into); err != nil {
		return fmt.Errorf("failed to unmarshal %s results: %w", stage, err)
	}

	return nil
}

func (s *RedisStore) SaveRun(ctx context.Context, runID string, report any) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal run report: %w", err)
	}

	if err := s.client.Set(ctx, runKeyPrefix+runID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save run report: %w", err)
	}

	return nil
}

func (s *RedisStore) Close() error {
	return nil
}
