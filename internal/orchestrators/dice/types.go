package dice

import (
	"github.com/animarpg/anima-api/internal/dice"
	"github.com/animarpg/anima-api/internal/repositories/rolllog"
	"github.com/animarpg/anima-api/internal/types"
)

// RollInput defines the request for a generic dice roll. Either Notation
// or Formula must be set; Notation wins when both are.
type RollInput struct {
	ActorID     string
	Notation    string
	Formula     *dice.Formula
	Description string

	// WithPreviews requests throwaway intermediate results for an
	// animated reveal
	WithPreviews bool
}

// RollOutput defines the response for a generic dice roll
type RollOutput struct {
	Entry    *rolllog.Entry
	Result   dice.Result
	Previews []dice.Result
}

// RollInitiativeInput defines the request for an initiative roll
type RollInitiativeInput struct {
	Actor       types.Actor
	CharacterID string
	EncounterID string
}

// RollInitiativeOutput defines the response for an initiative roll
type RollInitiativeOutput struct {
	Entry  *rolllog.Entry
	Result dice.Result
	Total  int
}

// HistoryInput defines the request for reading an actor's roll history
type HistoryInput struct {
	ActorID string
}

// HistoryOutput defines the response for reading an actor's roll history
type HistoryOutput struct {
	Entries []rolllog.Entry
}
