package character

import (
	"context"
	"encoding/json"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/animarpg/anima-api/internal/entities/anima"
	"github.com/animarpg/anima-api/internal/errors"
	"github.com/animarpg/anima-api/internal/pkg/clock"
	redisclient "github.com/animarpg/anima-api/internal/redis"
)

const (
	characterKeyPrefix = "character:"
	playerIndexPrefix  = "character:player:"

	// Error messages
	errCharacterNil     = "character cannot be nil"
	errCharacterIDEmpty = "character ID cannot be empty"
	errPlayerIDEmpty    = "player ID cannot be empty"
	errMutateFnNil      = "mutate function cannot be nil"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis character repository.
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed character repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Character == nil {
		return nil, errors.InvalidArgument(errCharacterNil)
	}
	if input.Character.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	key := characterKeyPrefix + input.Character.ID

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("character with ID %s already exists", input.Character.ID)
	}

	now := r.clock.Now().Unix()
	input.Character.CreatedAt = now
	input.Character.UpdatedAt = now

	data, err := json.Marshal(input.Character)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal character")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0) // characters never expire
	if input.Character.PlayerID != "" {
		pipe.SAdd(ctx, playerIndexPrefix+input.Character.PlayerID, input.Character.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create character")
	}

	return &CreateOutput{Character: input.Character}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	result, err := r.client.Get(ctx, characterKeyPrefix+input.ID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("character with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get character")
	}

	var c anima.Character
	if err := json.Unmarshal([]byte(result), &c); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal character")
	}

	return &GetOutput{Character: &c}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Character == nil {
		return nil, errors.InvalidArgument(errCharacterNil)
	}
	if input.Character.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	key := characterKeyPrefix + input.Character.ID

	existing, err := r.Get(ctx, GetInput{ID: input.Character.ID})
	if err != nil {
		return nil, err
	}

	input.Character.UpdatedAt = r.clock.Now().Unix()

	data, err := json.Marshal(input.Character)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal character")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	if existing.Character.PlayerID != input.Character.PlayerID {
		if existing.Character.PlayerID != "" {
			pipe.SRem(ctx, playerIndexPrefix+existing.Character.PlayerID, input.Character.ID)
		}
		if input.Character.PlayerID != "" {
			pipe.SAdd(ctx, playerIndexPrefix+input.Character.PlayerID, input.Character.ID)
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to update character")
	}

	return &UpdateOutput{Character: input.Character}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	getOutput, err := r.Get(ctx, GetInput(input))
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, characterKeyPrefix+input.ID)
	if getOutput.Character.PlayerID != "" {
		pipe.SRem(ctx, playerIndexPrefix+getOutput.Character.PlayerID, input.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete character")
	}

	return &DeleteOutput{}, nil
}

// Mutate applies fn under a WATCH on the character key. If another writer
// commits between the read and the EXEC, the transaction aborts and the
// conflict surfaces as Unavailable; the caller may retry. An error from
// fn aborts before any write, so validation failures leave the document
// untouched.
func (r *redisRepository) Mutate(ctx context.Context, input MutateInput) (*MutateOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}
	if input.Fn == nil {
		return nil, errors.InvalidArgument(errMutateFnNil)
	}

	key := characterKeyPrefix + input.ID
	var committed *anima.Character

	txn := func(tx *redis.Tx) error {
		result, err := tx.Get(ctx, key).Result()
		if err != nil {
			if err == redis.Nil {
				return errors.NotFoundf("character with ID %s not found", input.ID)
			}
			return errors.Wrapf(err, "failed to get character")
		}

		var c anima.Character
		if err := json.Unmarshal([]byte(result), &c); err != nil {
			return errors.Wrapf(err, "failed to unmarshal character")
		}

		if err := input.Fn(&c); err != nil {
			return err
		}

		c.UpdatedAt = r.clock.Now().Unix()
		data, err := json.Marshal(&c)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal character")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		if err != nil {
			return err
		}

		committed = &c
		return nil
	}

	if err := r.client.Watch(ctx, txn, key); err != nil {
		if err == redis.TxFailedErr {
			slog.WarnContext(ctx, "character mutation aborted by concurrent write",
				"character_id", input.ID)
			return nil, errors.Unavailablef("character %s was modified concurrently, retry", input.ID)
		}
		return nil, err
	}

	return &MutateOutput{Character: committed}, nil
}

func (r *redisRepository) ListByPlayerID(
	ctx context.Context,
	input ListByPlayerIDInput,
) (*ListByPlayerIDOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	indexKey := playerIndexPrefix + input.PlayerID
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read player index %s", indexKey)
	}

	characters := make([]*anima.Character, 0, len(ids))
	for _, id := range ids {
		getOutput, err := r.Get(ctx, GetInput{ID: id})
		if err != nil {
			// Clean up dangling index entries instead of failing the list.
			if errors.IsNotFound(err) {
				slog.WarnContext(ctx, "character not found, cleaning up index",
					"character_id", id,
					"index_key", indexKey)
				r.client.SRem(ctx, indexKey, id)
				continue
			}
			return nil, errors.Wrapf(err, "failed to get character %s", id)
		}
		characters = append(characters, getOutput.Character)
	}

	slog.DebugContext(ctx, "listed characters by player",
		"player_id", input.PlayerID,
		"count", len(characters))

	return &ListByPlayerIDOutput{Characters: characters}, nil
}
