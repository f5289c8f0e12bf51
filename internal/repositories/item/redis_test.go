package item_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/animarpg/anima-api/internal/entities/anima"
	"github.com/animarpg/anima-api/internal/errors"
	redisclient "github.com/animarpg/anima-api/internal/redis"
	"github.com/animarpg/anima-api/internal/repositories/item"
	"github.com/animarpg/anima-api/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	ctx     context.Context
	client  redisclient.Client
	repo    item.Repository
	cleanup func()
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.client, s.cleanup = testutils.CreateTestRedisClient(s.T())

	repo, err := item.NewRedisRepository(&item.Config{Client: s.client})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) TestPutAndGet() {
	potion := testutils.NewTestConsumable("potion-1")

	_, err := s.repo.Put(s.ctx, item.PutInput{Item: potion})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, item.GetInput{ID: "potion-1"})
	s.Require().NoError(err)
	s.Equal("Pozione Rossa", out.Item.Name)
	s.Equal(1, out.Item.BonusCreazione)
	s.Equal(2, out.Item.RegenDice(anima.RegenHP, 1))
	s.Equal(3, out.Item.RegenDice(anima.RegenHP, 7))
}

func (s *RedisRepositoryTestSuite) TestGetNotFound() {
	_, err := s.repo.Get(s.ctx, item.GetInput{ID: "missing"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestPutValidation() {
	_, err := s.repo.Put(s.ctx, item.PutInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Put(s.ctx, item.PutInput{Item: &anima.Item{}})
	s.True(errors.IsInvalidArgument(err))
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
