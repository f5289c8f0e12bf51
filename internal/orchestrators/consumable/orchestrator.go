// Package consumable implements the consumable resolver: bracket and
// mode resolution, the soul die regeneration roll, and the atomic
// apply-and-consume transaction.
package consumable

//go:generate mockgen -destination=mock/mock_service.go -package=consumablemock github.com/animarpg/anima-api/internal/orchestrators/consumable Service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/animarpg/anima-api/internal/dice"
	"github.com/animarpg/anima-api/internal/entities/anima"
	"github.com/animarpg/anima-api/internal/errors"
	"github.com/animarpg/anima-api/internal/pkg/clock"
	"github.com/animarpg/anima-api/internal/pkg/idgen"
	characterrepo "github.com/animarpg/anima-api/internal/repositories/character"
	itemrepo "github.com/animarpg/anima-api/internal/repositories/item"
	"github.com/animarpg/anima-api/internal/repositories/rolllog"
)

// Service defines the interface for consumable operations
type Service interface {
	// Use resolves and applies one unit of a consumable
	Use(ctx context.Context, input *UseInput) (*UseOutput, error)
}

// Config holds the dependencies for the consumable orchestrator
type Config struct {
	CharacterRepo characterrepo.Repository
	ItemRepo      itemrepo.Repository
	RollLogRepo   rolllog.Repository
	Roller        *dice.Roller
	IDGenerator   idgen.Generator
	Clock         clock.Clock

	// SoulDice maps level to the soul die size used for regeneration
	SoulDice anima.SoulDice
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.ItemRepo == nil {
		vb.RequiredField("ItemRepo")
	}
	if c.RollLogRepo == nil {
		vb.RequiredField("RollLogRepo")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

type orchestrator struct {
	characterRepo characterrepo.Repository
	itemRepo      itemrepo.Repository
	rollLogRepo   rolllog.Repository
	roller        *dice.Roller
	idGen         idgen.Generator
	clock         clock.Clock
	soulDice      anima.SoulDice
}

// NewOrchestrator creates a new consumable orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		characterRepo: cfg.CharacterRepo,
		itemRepo:      cfg.ItemRepo,
		rollLogRepo:   cfg.RollLogRepo,
		roller:        cfg.Roller,
		idGen:         cfg.IDGenerator,
		clock:         cfg.Clock,
		soulDice:      cfg.SoulDice,
	}, nil
}

// Use resolves a consumable against the character's level bracket, rolls
// regeneration when the item defines dice there, and commits the pool
// gain together with the inventory decrement in one transaction. Inert
// items are consumed with no roll and no pool change.
func (o *orchestrator) Use(ctx context.Context, input *UseInput) (*UseOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}
	if input.ItemID == "" {
		return nil, errors.InvalidArgument("item ID is required")
	}

	getOutput, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
	if err != nil {
		return nil, err
	}
	char := getOutput.Character

	if !input.Actor.CanActFor(char.PlayerID) {
		return nil, errors.PermissionDeniedf("player %s cannot use items for character %s", input.Actor.PlayerID, char.ID)
	}

	itemOutput, err := o.itemRepo.Get(ctx, itemrepo.GetInput{ID: input.ItemID})
	if err != nil {
		return nil, err
	}
	it := itemOutput.Item

	bracket := anima.BracketForLevel(char.Stats.Level)

	mode, diceCount, err := resolveMode(it, bracket, input.Mode)
	if err != nil {
		return nil, err
	}

	if diceCount == 0 {
		return o.consumeInert(ctx, input, it, bracket)
	}

	formula := dice.Formula{
		Count:    diceCount,
		Faces:    o.soulDice.FacesForLevel(char.Stats.Level),
		Modifier: it.BonusCreazione * diceCount,
	}
	result, err := o.roller.Roll(formula)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll regeneration")
	}

	kind := anima.ResourceHP
	if mode == anima.RegenMana {
		kind = anima.ResourceMana
	}

	var gained int
	mutateOutput, err := o.characterRepo.Mutate(ctx, characterrepo.MutateInput{
		ID: input.CharacterID,
		Fn: func(c *anima.Character) error {
			if !input.Actor.CanActFor(c.PlayerID) {
				return errors.PermissionDeniedf("player %s cannot use items for character %s", input.Actor.PlayerID, c.ID)
			}
			pool, err := c.Resource(kind)
			if err != nil {
				return err
			}
			next := anima.CapGain(pool.Current, result.Total, pool.Total)
			gained = next - pool.Current
			pool.Current = next
			if err := c.SetResource(kind, pool); err != nil {
				return err
			}
			return c.ConsumeUnit(input.ItemID, input.SlotKey)
		},
	})
	if err != nil {
		return nil, err
	}

	entry, err := o.logRoll(ctx, input.CharacterID, rolllog.Entry{
		RollID:      o.idGen.Generate(),
		Kind:        rolllog.KindConsumable,
		Description: fmt.Sprintf("%s (%s)", it.Name, mode),
		Expression:  formula.String(),
		Rolls:       result.Rolls,
		Modifier:    formula.Modifier,
		Faces:       formula.Faces,
		Count:       formula.Count,
		Total:       result.Total,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Consumable used",
		"character_id", input.CharacterID,
		"item_id", input.ItemID,
		"mode", mode,
		"rolled", result.Total,
		"gained", gained,
	)

	return &UseOutput{
		Character: mutateOutput.Character,
		Mode:      mode,
		Result:    &result,
		Gained:    gained,
		Entry:     entry,
	}, nil
}

// resolveMode picks the regeneration mode and dice count for the item at
// the bracket. An item with dice for both pools needs an explicit mode;
// an explicit mode with no dice at this bracket is rejected; an item
// with no dice at all resolves to an inert consume.
func resolveMode(it *anima.Item, bracket anima.Bracket, requested anima.RegenMode) (anima.RegenMode, int, error) {
	hpDice := it.RegenDice(anima.RegenHP, bracket)
	manaDice := it.RegenDice(anima.RegenMana, bracket)

	if hpDice == 0 && manaDice == 0 {
		return "", 0, nil
	}

	switch requested {
	case anima.RegenHP:
		if hpDice == 0 {
			return "", 0, errors.InvalidModef("item %s has no HP regeneration at bracket %d", it.ID, bracket)
		}
		return anima.RegenHP, hpDice, nil
	case anima.RegenMana:
		if manaDice == 0 {
			return "", 0, errors.InvalidModef("item %s has no Mana regeneration at bracket %d", it.ID, bracket)
		}
		return anima.RegenMana, manaDice, nil
	case "":
		if hpDice > 0 && manaDice > 0 {
			return "", 0, errors.InvalidArgumentf("item %s regenerates both pools, mode is required", it.ID)
		}
		if hpDice > 0 {
			return anima.RegenHP, hpDice, nil
		}
		return anima.RegenMana, manaDice, nil
	default:
		return "", 0, errors.InvalidModef("unknown regeneration mode: %s", requested)
	}
}

// consumeInert removes one unit with no roll and no pool change
func (o *orchestrator) consumeInert(ctx context.Context, input *UseInput, it *anima.Item, bracket anima.Bracket) (*UseOutput, error) {
	mutateOutput, err := o.characterRepo.Mutate(ctx, characterrepo.MutateInput{
		ID: input.CharacterID,
		Fn: func(c *anima.Character) error {
			if !input.Actor.CanActFor(c.PlayerID) {
				return errors.PermissionDeniedf("player %s cannot use items for character %s", input.Actor.PlayerID, c.ID)
			}
			return c.ConsumeUnit(input.ItemID, input.SlotKey)
		},
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Inert consumable used",
		"character_id", input.CharacterID,
		"item_id", input.ItemID,
		"bracket", bracket,
		"item_name", it.Name,
	)

	return &UseOutput{Character: mutateOutput.Character}, nil
}

func (o *orchestrator) logRoll(ctx context.Context, actorID string, entry rolllog.Entry) (*rolllog.Entry, error) {
	entry.CreatedAt = o.clock.Now()
	appendOutput, err := o.rollLogRepo.Append(ctx, rolllog.AppendInput{
		ActorID: actorID,
		Entry:   entry,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to log roll")
	}
	return appendOutput.Entry, nil
}
