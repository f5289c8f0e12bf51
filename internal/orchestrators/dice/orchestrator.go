// Package dice implements the dice orchestrator: generic formula rolls,
// per-encounter initiative rolls, and the capped roll history.
package dice

//go:generate mockgen -destination=mock/mock_service.go -package=dicemock github.com/animarpg/anima-api/internal/orchestrators/dice Service

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
	"github.com/animarpg/anima-api/internal/repositories/encounter"
	"github.com/animarpg/anima-api/internal/repositories/rolllog"
)

// Service defines the interface for dice operations
type Service interface {
	// Roll performs a generic dice roll and logs it
	Roll(ctx context.Context, input *RollInput) (*RollOutput, error)

	// RollInitiative performs a character's once-per-encounter initiative roll
	RollInitiative(ctx context.Context, input *RollInitiativeInput) (*RollInitiativeOutput, error)

	// History returns the actor's retained roll log, newest first
	History(ctx context.Context, input *HistoryInput) (*HistoryOutput, error)
}

// Config holds the dependencies for the dice orchestrator
type Config struct {
	RollLogRepo   rolllog.Repository
	CharacterRepo characterrepo.Repository
	EncounterRepo encounter.Repository
	Roller        *dice.Roller
	IDGenerator   idgen.Generator
	Clock         clock.Clock

	// SoulDice maps level to the soul die size used for initiative
	SoulDice anima.SoulDice
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.RollLogRepo == nil {
		vb.RequiredField("RollLogRepo")
	}
	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.EncounterRepo == nil {
		vb.RequiredField("EncounterRepo")
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
	rollLogRepo   rolllog.Repository
	characterRepo characterrepo.Repository
	encounterRepo encounter.Repository
	roller        *dice.Roller
	idGen         idgen.Generator
	clock         clock.Clock
	soulDice      anima.SoulDice
}

// NewOrchestrator creates a new dice orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		rollLogRepo:   cfg.RollLogRepo,
		characterRepo: cfg.CharacterRepo,
		encounterRepo: cfg.EncounterRepo,
		roller:        cfg.Roller,
		idGen:         cfg.IDGenerator,
		clock:         cfg.Clock,
		soulDice:      cfg.SoulDice,
	}, nil
}

// Roll performs a single true roll, optionally with preview ticks for
// the reveal animation. Previews are never logged; only the committed
// result is.
func (o *orchestrator) Roll(ctx context.Context, input *RollInput) (*RollOutput, error) {
	if input.ActorID == "" {
		return nil, errors.InvalidArgument("actor ID is required")
	}

	var formula dice.Formula
	switch {
	case input.Notation != "":
		f, err := dice.Parse(input.Notation)
		if err != nil {
			return nil, err
		}
		formula = f
	case input.Formula != nil:
		formula = *input.Formula
		if err := formula.Validate(); err != nil {
			return nil, err
		}
	default:
		return nil, errors.InvalidArgument("dice notation or formula is required")
	}

	var previews []dice.Result
	if input.WithPreviews {
		p, err := o.roller.Preview(formula, dice.PreviewTicks)
		if err != nil {
			return nil, errors.Wrap(err, "failed to roll previews")
		}
		previews = p
	}

	result, err := o.roller.Roll(formula)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll dice")
	}

	entry, err := o.logRoll(ctx, input.ActorID, rolllog.Entry{
		RollID:      o.idGen.Generate(),
		Kind:        rolllog.KindGeneric,
		Description: input.Description,
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

	slog.Info("Dice rolled",
		"actor_id", input.ActorID,
		"expression", formula.String(),
		"total", result.Total,
		"roll_id", entry.RollID,
	)

	return &RollOutput{
		Entry:    entry,
		Result:   result,
		Previews: previews,
	}, nil
}

// RollInitiative rolls one soul die plus the character's Destrezza total.
// The encounter slot is claimed before rolling so a character can never
// hold two initiative results for the same encounter.
func (o *orchestrator) RollInitiative(ctx context.Context, input *RollInitiativeInput) (*RollInitiativeOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}
	if input.EncounterID == "" {
		return nil, errors.InvalidArgument("encounter ID is required")
	}

	getOutput, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
	if err != nil {
		return nil, err
	}
	char := getOutput.Character

	if !input.Actor.CanActFor(char.PlayerID) {
		return nil, errors.PermissionDeniedf("player %s cannot roll initiative for character %s", input.Actor.PlayerID, char.ID)
	}

	rollID := o.idGen.Generate()
	claimOutput, err := o.encounterRepo.ClaimInitiative(ctx, encounter.ClaimInitiativeInput{
		EncounterID: input.EncounterID,
		CharacterID: input.CharacterID,
		RollID:      rollID,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to claim initiative slot")
	}
	if !claimOutput.Claimed {
		return nil, errors.AlreadyExistsf("character %s already rolled initiative for encounter %s", input.CharacterID, input.EncounterID)
	}

	formula := dice.Formula{
		Count:    1,
		Faces:    o.soulDice.FacesForLevel(char.Stats.Level),
		Modifier: char.DestrezzaTot(),
	}
	result, err := o.roller.Roll(formula)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll initiative")
	}

	entry, err := o.logRoll(ctx, input.CharacterID, rolllog.Entry{
		RollID:      rollID,
		Kind:        rolllog.KindInitiative,
		Description: fmt.Sprintf("Initiative for encounter %s", input.EncounterID),
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

	slog.Info("Initiative rolled",
		"character_id", input.CharacterID,
		"encounter_id", input.EncounterID,
		"total", result.Total,
	)

	return &RollInitiativeOutput{
		Entry:  entry,
		Result: result,
		Total:  result.Total,
	}, nil
}

// History returns the actor's retained roll entries, newest first
func (o *orchestrator) History(ctx context.Context, input *HistoryInput) (*HistoryOutput, error) {
	if input.ActorID == "" {
		return nil, errors.InvalidArgument("actor ID is required")
	}

	listOutput, err := o.rollLogRepo.List(ctx, rolllog.ListInput{ActorID: input.ActorID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to read roll history")
	}

	return &HistoryOutput{Entries: listOutput.Entries}, nil
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
