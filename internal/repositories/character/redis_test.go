package character_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/animarpg/anima-api/internal/entities/anima"
	"github.com/animarpg/anima-api/internal/errors"
	"github.com/animarpg/anima-api/internal/pkg/clock"
	redisclient "github.com/animarpg/anima-api/internal/redis"
	"github.com/animarpg/anima-api/internal/repositories/character"
	"github.com/animarpg/anima-api/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	ctx     context.Context
	mr      *miniredis.Miniredis
	client  redisclient.Client
	clock   *clock.Fixed
	repo    character.Repository
	cleanup func()
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.client, s.mr, s.cleanup = testutils.CreateTestRedisClientWithServer(s.T())
	s.clock = clock.NewFixed(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	repo, err := character.NewRedis(&character.RedisConfig{
		Client: s.client,
		Clock:  s.clock,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) createTestCharacter(id string) *anima.Character {
	char := testutils.NewTestCharacter(id, "player-1")
	_, err := s.repo.Create(s.ctx, character.CreateInput{Character: char})
	s.Require().NoError(err)
	return char
}

func (s *RedisRepositoryTestSuite) TestCreateAndGet() {
	created := s.createTestCharacter("char-1")
	s.Equal(s.clock.Now().Unix(), created.CreatedAt)

	out, err := s.repo.Get(s.ctx, character.GetInput{ID: "char-1"})
	s.Require().NoError(err)
	s.Equal("char-1", out.Character.ID)
	s.Equal("player-1", out.Character.PlayerID)
	s.Equal(3, out.Character.Stats.Level)
	s.Len(out.Character.Params.Base, len(anima.BaseStats))
}

func (s *RedisRepositoryTestSuite) TestCreateDuplicateFails() {
	s.createTestCharacter("char-1")

	_, err := s.repo.Create(s.ctx, character.CreateInput{
		Character: testutils.NewTestCharacter("char-1", "player-2"),
	})
	s.Require().Error(err)
	s.True(errors.IsAlreadyExists(err))
}

func (s *RedisRepositoryTestSuite) TestGetNotFound() {
	_, err := s.repo.Get(s.ctx, character.GetInput{ID: "missing"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestUpdateReindexesOnOwnerChange() {
	char := s.createTestCharacter("char-1")

	char.PlayerID = "player-2"
	_, err := s.repo.Update(s.ctx, character.UpdateInput{Character: char})
	s.Require().NoError(err)

	oldList, err := s.repo.ListByPlayerID(s.ctx, character.ListByPlayerIDInput{PlayerID: "player-1"})
	s.Require().NoError(err)
	s.Empty(oldList.Characters)

	newList, err := s.repo.ListByPlayerID(s.ctx, character.ListByPlayerIDInput{PlayerID: "player-2"})
	s.Require().NoError(err)
	s.Len(newList.Characters, 1)
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	s.createTestCharacter("char-1")

	_, err := s.repo.Delete(s.ctx, character.DeleteInput{ID: "char-1"})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, character.GetInput{ID: "char-1"})
	s.True(errors.IsNotFound(err))

	list, err := s.repo.ListByPlayerID(s.ctx, character.ListByPlayerIDInput{PlayerID: "player-1"})
	s.Require().NoError(err)
	s.Empty(list.Characters)
}

func (s *RedisRepositoryTestSuite) TestMutateCommitsAtomically() {
	s.createTestCharacter("char-1")

	out, err := s.repo.Mutate(s.ctx, character.MutateInput{
		ID: "char-1",
		Fn: func(c *anima.Character) error {
			return c.SpendPoint(anima.GroupBase, "Forza")
		},
	})
	s.Require().NoError(err)
	s.Equal(1, out.Character.Params.Base[anima.StatForza].Base)
	s.Equal(1, out.Character.Stats.BasePointsAvailable)

	// Committed state matches the returned state.
	getOutput, err := s.repo.Get(s.ctx, character.GetInput{ID: "char-1"})
	s.Require().NoError(err)
	s.Equal(1, getOutput.Character.Params.Base[anima.StatForza].Base)
	s.Equal(1, getOutput.Character.Stats.BasePointsSpent)
}

func (s *RedisRepositoryTestSuite) TestMutateFnErrorWritesNothing() {
	s.createTestCharacter("char-1")

	_, err := s.repo.Mutate(s.ctx, character.MutateInput{
		ID: "char-1",
		Fn: func(c *anima.Character) error {
			c.Stats.Gold = 9999 // discarded by the abort
			return errors.InsufficientPoints("no points")
		},
	})
	s.Require().Error(err)
	s.True(errors.IsInsufficientPoints(err))

	getOutput, err := s.repo.Get(s.ctx, character.GetInput{ID: "char-1"})
	s.Require().NoError(err)
	s.Equal(50, getOutput.Character.Stats.Gold)
}

func (s *RedisRepositoryTestSuite) TestMutateConcurrentWriteAborts() {
	s.createTestCharacter("char-1")

	_, err := s.repo.Mutate(s.ctx, character.MutateInput{
		ID: "char-1",
		Fn: func(c *anima.Character) error {
			// Another writer touches the watched key before EXEC.
			s.Require().NoError(s.mr.Set("character:char-1", "{}"))
			return nil
		},
	})
	s.Require().Error(err)
	s.True(errors.IsUnavailable(err))
}

func (s *RedisRepositoryTestSuite) TestMutateMissingCharacter() {
	_, err := s.repo.Mutate(s.ctx, character.MutateInput{
		ID: "missing",
		Fn: func(c *anima.Character) error { return nil },
	})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestListCleansDanglingIndexEntries() {
	s.createTestCharacter("char-1")
	s.createTestCharacter("char-2")

	// Remove a document but leave its index entry behind.
	s.mr.Del("character:char-2")

	list, err := s.repo.ListByPlayerID(s.ctx, character.ListByPlayerIDInput{PlayerID: "player-1"})
	s.Require().NoError(err)
	s.Len(list.Characters, 1)
	s.Equal("char-1", list.Characters[0].ID)

	// The dangling entry was removed from the index.
	isMember, err := s.mr.SIsMember("character:player:player-1", "char-2")
	s.Require().NoError(err)
	s.False(isMember)
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
