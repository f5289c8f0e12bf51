package consumable_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/animarpg/anima-api/internal/dice"
	"github.com/animarpg/anima-api/internal/entities/anima"
	"github.com/animarpg/anima-api/internal/errors"
	"github.com/animarpg/anima-api/internal/orchestrators/consumable"
	"github.com/animarpg/anima-api/internal/pkg/clock"
	"github.com/animarpg/anima-api/internal/pkg/idgen"
	redisclient "github.com/animarpg/anima-api/internal/redis"
	characterrepo "github.com/animarpg/anima-api/internal/repositories/character"
	itemrepo "github.com/animarpg/anima-api/internal/repositories/item"
	"github.com/animarpg/anima-api/internal/repositories/rolllog"
	"github.com/animarpg/anima-api/internal/testutils"
	"github.com/animarpg/anima-api/internal/types"
)

// scriptedSource replays fixed draws, then repeats the last one
type scriptedSource struct {
	draws []int
	pos   int
}

func (s *scriptedSource) Intn(n int) int {
	d := s.draws[s.pos]
	if s.pos < len(s.draws)-1 {
		s.pos++
	}
	if d >= n {
		d = n - 1
	}
	return d
}

type OrchestratorTestSuite struct {
	suite.Suite
	ctx     context.Context
	client  redisclient.Client
	chars   characterrepo.Repository
	items   itemrepo.Repository
	logs    rolllog.Repository
	cleanup func()

	owner types.Actor
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.client, s.cleanup = testutils.CreateTestRedisClient(s.T())

	chars, err := characterrepo.NewRedis(&characterrepo.RedisConfig{Client: s.client})
	s.Require().NoError(err)
	s.chars = chars

	items, err := itemrepo.NewRedisRepository(&itemrepo.Config{Client: s.client})
	s.Require().NoError(err)
	s.items = items

	logs, err := rolllog.NewRedisRepository(&rolllog.Config{
		Client: s.client,
		Clock:  clock.NewFixed(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
	})
	s.Require().NoError(err)
	s.logs = logs

	s.owner = types.Actor{PlayerID: "player-1", Role: types.RolePlayer}
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.cleanup()
}

// newService builds an orchestrator whose dice replay the given draws.
// Level 3 characters resolve a d6 soul die.
func (s *OrchestratorTestSuite) newService(draws ...int) consumable.Service {
	service, err := consumable.NewOrchestrator(&consumable.Config{
		CharacterRepo: s.chars,
		ItemRepo:      s.items,
		RollLogRepo:   s.logs,
		Roller:        dice.NewRollerWithSource(&scriptedSource{draws: draws}),
		IDGenerator:   idgen.NewSequential("roll"),
		Clock:         clock.NewFixed(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
		SoulDice:      anima.ParseSoulDice([]string{"", "d4", "d4", "d6", "d6", "d8"}),
	})
	s.Require().NoError(err)
	return service
}

func (s *OrchestratorTestSuite) seedCharacter(id string, inventory ...anima.InventoryEntry) *anima.Character {
	char := testutils.NewTestCharacter(id, "player-1")
	char.Inventory = inventory
	_, err := s.chars.Create(s.ctx, characterrepo.CreateInput{Character: char})
	s.Require().NoError(err)
	return char
}

func (s *OrchestratorTestSuite) seedItem(it *anima.Item) {
	_, err := s.items.Put(s.ctx, itemrepo.PutInput{Item: it})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TestUseCapsRegenAtTotal() {
	// Three d6 regen dice with +1 per die: draws 3,4,5 roll [4,5,6]+3 = 18.
	s.seedItem(&anima.Item{
		ID:             "potion-1",
		Name:           "Pozione Grande",
		Type:           "consumabile",
		BonusCreazione: 1,
		RegenHPDice:    map[anima.Bracket]int{1: 3},
	})
	s.seedCharacter("char-1",
		anima.InventoryEntry{ItemID: "potion-1"},
		anima.InventoryEntry{ItemID: "potion-1"},
	)

	out, err := s.newService(3, 4, 5).Use(s.ctx, &consumable.UseInput{
		Actor:       s.owner,
		CharacterID: "char-1",
		ItemID:      "potion-1",
	})
	s.Require().NoError(err)

	s.Equal(anima.RegenHP, out.Mode)
	s.Equal([]int{4, 5, 6}, out.Result.Rolls)
	s.Equal(18, out.Result.Total)

	// HP was 18/20: the 18 rolled capped to a gain of 2.
	s.Equal(2, out.Gained)
	s.Equal(20, out.Character.Stats.HPCurrent)

	// One unit consumed.
	s.Len(out.Character.Inventory, 1)

	// The regeneration roll was logged for the character.
	logOutput, err := s.logs.List(s.ctx, rolllog.ListInput{ActorID: "char-1"})
	s.Require().NoError(err)
	s.Require().Len(logOutput.Entries, 1)
	s.Equal(rolllog.KindConsumable, logOutput.Entries[0].Kind)
	s.Equal("3d6+3", logOutput.Entries[0].Expression)
}

func (s *OrchestratorTestSuite) TestUseManaMode() {
	s.seedItem(&anima.Item{
		ID:            "elixir-1",
		Name:          "Elisir",
		Type:          "consumabile",
		RegenManaDice: map[anima.Bracket]int{1: 1},
	})
	s.seedCharacter("char-1", anima.InventoryEntry{ItemID: "elixir-1"})

	out, err := s.newService(2).Use(s.ctx, &consumable.UseInput{
		Actor:       s.owner,
		CharacterID: "char-1",
		ItemID:      "elixir-1",
	})
	s.Require().NoError(err)
	s.Equal(anima.RegenMana, out.Mode)
	// Mana 10/12: the rolled 3 caps to a gain of 2.
	s.Equal(3, out.Result.Total)
	s.Equal(2, out.Gained)
	s.Equal(12, out.Character.Stats.ManaCurrent)
	s.Empty(out.Character.Inventory)
}

func (s *OrchestratorTestSuite) TestUseInertConsumesWithoutRolling() {
	s.seedItem(&anima.Item{ID: "trinket-1", Name: "Ninnolo", Type: "consumabile"})
	s.seedCharacter("char-1", anima.InventoryEntry{ItemID: "trinket-1"})

	out, err := s.newService(0).Use(s.ctx, &consumable.UseInput{
		Actor:       s.owner,
		CharacterID: "char-1",
		ItemID:      "trinket-1",
	})
	s.Require().NoError(err)

	s.Nil(out.Result)
	s.Nil(out.Entry)
	s.Equal(0, out.Gained)
	s.Empty(out.Character.Inventory)

	// Pools untouched, nothing logged.
	s.Equal(18, out.Character.Stats.HPCurrent)
	s.Equal(10, out.Character.Stats.ManaCurrent)
	logOutput, err := s.logs.List(s.ctx, rolllog.ListInput{ActorID: "char-1"})
	s.Require().NoError(err)
	s.Empty(logOutput.Entries)
}

func (s *OrchestratorTestSuite) TestUseAmbiguousModeRejected() {
	s.seedItem(&anima.Item{
		ID:            "dual-1",
		Name:          "Pozione Doppia",
		Type:          "consumabile",
		RegenHPDice:   map[anima.Bracket]int{1: 1},
		RegenManaDice: map[anima.Bracket]int{1: 1},
	})
	s.seedCharacter("char-1", anima.InventoryEntry{ItemID: "dual-1"})

	_, err := s.newService(0).Use(s.ctx, &consumable.UseInput{
		Actor:       s.owner,
		CharacterID: "char-1",
		ItemID:      "dual-1",
	})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	// An explicit mode resolves the ambiguity.
	out, err := s.newService(1).Use(s.ctx, &consumable.UseInput{
		Actor:       s.owner,
		CharacterID: "char-1",
		ItemID:      "dual-1",
		Mode:        anima.RegenMana,
	})
	s.Require().NoError(err)
	s.Equal(anima.RegenMana, out.Mode)
}

func (s *OrchestratorTestSuite) TestUseWrongModeRejected() {
	s.seedItem(&anima.Item{
		ID:          "potion-1",
		Name:        "Pozione",
		Type:        "consumabile",
		RegenHPDice: map[anima.Bracket]int{1: 2},
	})
	s.seedCharacter("char-1", anima.InventoryEntry{ItemID: "potion-1"})

	_, err := s.newService(0).Use(s.ctx, &consumable.UseInput{
		Actor:       s.owner,
		CharacterID: "char-1",
		ItemID:      "potion-1",
		Mode:        anima.RegenMana,
	})
	s.Require().Error(err)
	s.True(errors.IsInvalidMode(err))

	// Nothing was consumed by the failed use.
	getOutput, err := s.chars.Get(s.ctx, characterrepo.GetInput{ID: "char-1"})
	s.Require().NoError(err)
	s.Len(getOutput.Character.Inventory, 1)
}

func (s *OrchestratorTestSuite) TestUseBracketSelectsDice() {
	// Dice defined from bracket 4 up: a level 5 character rolls the
	// bracket 4 count with its own soul die.
	s.seedItem(&anima.Item{
		ID:          "late-1",
		Name:        "Pozione Superiore",
		Type:        "consumabile",
		RegenHPDice: map[anima.Bracket]int{4: 2, 10: 4},
	})

	char := testutils.NewTestCharacter("char-1", "player-1")
	char.Stats.Level = 5 // bracket 4
	char.Stats.HPCurrent = 1
	char.Inventory = []anima.InventoryEntry{{ItemID: "late-1"}}
	_, err := s.chars.Create(s.ctx, characterrepo.CreateInput{Character: char})
	s.Require().NoError(err)

	// Level 5 soul die is d8; draws 1,2 roll [2,3].
	out, err := s.newService(1, 2).Use(s.ctx, &consumable.UseInput{
		Actor:       s.owner,
		CharacterID: "char-1",
		ItemID:      "late-1",
	})
	s.Require().NoError(err)
	s.Equal("2d8", out.Entry.Expression)
	s.Equal(5, out.Result.Total)
	s.Equal(6, out.Character.Stats.HPCurrent)
}

func (s *OrchestratorTestSuite) TestUseDecrementsEquippedSlot() {
	s.seedItem(&anima.Item{
		ID:          "potion-1",
		Name:        "Pozione",
		Type:        "consumabile",
		RegenHPDice: map[anima.Bracket]int{1: 1},
	})

	char := testutils.NewTestCharacter("char-1", "player-1")
	char.Stats.HPCurrent = 1
	char.Inventory = []anima.InventoryEntry{
		{ItemID: "potion-1"},
		{ItemID: "potion-1"},
	}
	char.Equipped = map[string]*anima.EquippedItem{
		"belt": {ID: "potion-1", Name: "Pozione", Qty: 2},
	}
	_, err := s.chars.Create(s.ctx, characterrepo.CreateInput{Character: char})
	s.Require().NoError(err)

	out, err := s.newService(0).Use(s.ctx, &consumable.UseInput{
		Actor:       s.owner,
		CharacterID: "char-1",
		ItemID:      "potion-1",
		SlotKey:     "belt",
	})
	s.Require().NoError(err)

	s.Len(out.Character.Inventory, 1)
	s.Require().NotNil(out.Character.Equipped["belt"])
	s.Equal(1, out.Character.Equipped["belt"].Qty)

	// Using the last unit clears the slot.
	out, err = s.newService(0).Use(s.ctx, &consumable.UseInput{
		Actor:       s.owner,
		CharacterID: "char-1",
		ItemID:      "potion-1",
		SlotKey:     "belt",
	})
	s.Require().NoError(err)
	s.Empty(out.Character.Inventory)
	s.Nil(out.Character.Equipped["belt"])
}

func (s *OrchestratorTestSuite) TestUseMissingItemOrCharacter() {
	s.seedCharacter("char-1")

	_, err := s.newService(0).Use(s.ctx, &consumable.UseInput{
		Actor:       s.owner,
		CharacterID: "char-1",
		ItemID:      "missing",
	})
	s.True(errors.IsNotFound(err))

	_, err = s.newService(0).Use(s.ctx, &consumable.UseInput{
		Actor:       s.owner,
		CharacterID: "ghost",
		ItemID:      "missing",
	})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestUseNotInInventory() {
	s.seedItem(&anima.Item{
		ID:          "potion-1",
		Name:        "Pozione",
		Type:        "consumabile",
		RegenHPDice: map[anima.Bracket]int{1: 1},
	})
	s.seedCharacter("char-1")

	_, err := s.newService(0).Use(s.ctx, &consumable.UseInput{
		Actor:       s.owner,
		CharacterID: "char-1",
		ItemID:      "potion-1",
	})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
