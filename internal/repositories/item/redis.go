package item

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/animarpg/anima-api/internal/entities/anima"
	"github.com/animarpg/anima-api/internal/errors"
	redisclient "github.com/animarpg/anima-api/internal/redis"
)

const (
	itemKeyPrefix = "item:"

	errItemNil     = "item cannot be nil"
	errItemIDEmpty = "item ID cannot be empty"
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

// NewRedisRepository creates a new Redis repository for the item catalog
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{client: cfg.Client}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Put(ctx context.Context, input PutInput) (*PutOutput, error) {
	if input.Item == nil {
		return nil, errors.InvalidArgument(errItemNil)
	}
	if input.Item.ID == "" {
		return nil, errors.InvalidArgument(errItemIDEmpty)
	}

	data, err := json.Marshal(input.Item)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal item")
	}

	if err := r.client.Set(ctx, itemKeyPrefix+input.Item.ID, data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store item")
	}

	return &PutOutput{Item: input.Item}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errItemIDEmpty)
	}

	result, err := r.client.Get(ctx, itemKeyPrefix+input.ID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("item with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get item")
	}

	var it anima.Item
	if err := json.Unmarshal([]byte(result), &it); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal item")
	}

	return &GetOutput{Item: &it}, nil
}
