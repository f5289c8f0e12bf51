package encounter

import (
	"context"
	"fmt"

	redis "github.com/redis/go-redis/v9"

	"github.com/animarpg/anima-api/internal/errors"
	redisclient "github.com/animarpg/anima-api/internal/redis"
)

const (
	// Key pattern: encounter:{encounter_id}:initiative:{character_id}
	initiativeKeyFormat = "encounter:%s:initiative:%s"

	errEncounterIDEmpty = "encounter ID cannot be empty"
	errCharacterIDEmpty = "character ID cannot be empty"
	errRollIDEmpty      = "roll ID cannot be empty"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
}

// NewRedisRepository creates a new Redis repository for encounter state
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{client: cfg.Client}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// ClaimInitiative claims the slot with SETNX, so concurrent rolls for
// the same character resolve to exactly one winner.
func (r *redisRepository) ClaimInitiative(ctx context.Context, input ClaimInitiativeInput) (*ClaimInitiativeOutput, error) {
	if input.EncounterID == "" {
		return nil, errors.InvalidArgument(errEncounterIDEmpty)
	}
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}
	if input.RollID == "" {
		return nil, errors.InvalidArgument(errRollIDEmpty)
	}

	key := fmt.Sprintf(initiativeKeyFormat, input.EncounterID, input.CharacterID)

	claimed, err := r.client.SetNX(ctx, key, input.RollID, 0).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to claim initiative slot")
	}
	if claimed {
		return &ClaimInitiativeOutput{Claimed: true}, nil
	}

	existing, err := r.client.Get(ctx, key).Result()
	if err != nil && err != redis.Nil {
		return nil, errors.Wrapf(err, "failed to read existing initiative claim")
	}

	return &ClaimInitiativeOutput{
		Claimed:        false,
		ExistingRollID: existing,
	}, nil
}
