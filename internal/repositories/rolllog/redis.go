package rolllog

import (
	"context"
	"encoding/json"

	"github.com/animarpg/anima-api/internal/errors"
	"github.com/animarpg/anima-api/internal/pkg/clock"
	redisclient "github.com/animarpg/anima-api/internal/redis"
)

const (
	// Key pattern: roll_log:{actor_id}
	logKeyPrefix = "roll_log:"

	// Error messages
	errActorIDEmpty = "actor ID cannot be empty"
	errRollIDEmpty  = "roll ID cannot be empty"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for roll histories
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Append pushes the entry onto the head of the actor's list and trims the
// list to the newest MaxEntries, so the history is capped at the store.
func (r *redisRepository) Append(ctx context.Context, input AppendInput) (*AppendOutput, error) {
	if input.ActorID == "" {
		return nil, errors.InvalidArgument(errActorIDEmpty)
	}
	if input.Entry.RollID == "" {
		return nil, errors.InvalidArgument(errRollIDEmpty)
	}

	entry := input.Entry
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = r.clock.Now()
	}

	data, err := json.Marshal(&entry)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal roll entry")
	}

	key := r.buildKey(input.ActorID)
	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, MaxEntries-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to append roll entry")
	}

	return &AppendOutput{Entry: &entry}, nil
}

// List returns the retained entries, newest first
func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	if input.ActorID == "" {
		return nil, errors.InvalidArgument(errActorIDEmpty)
	}

	raw, err := r.client.LRange(ctx, r.buildKey(input.ActorID), 0, MaxEntries-1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read roll log")
	}

	entries := make([]Entry, 0, len(raw))
	for _, item := range raw {
		var e Entry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal roll entry")
		}
		entries = append(entries, e)
	}

	return &ListOutput{Entries: entries}, nil
}

// buildKey creates the Redis key for an actor's roll log
func (r *redisRepository) buildKey(actorID string) string {
	return logKeyPrefix + actorID
}
