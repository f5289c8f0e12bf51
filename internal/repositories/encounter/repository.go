// Package encounter provides the repository interface and types for
// per-encounter state, currently just the initiative claim set
package encounter

import (
	"context"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=encountermock github.com/animarpg/anima-api/internal/repositories/encounter Repository

// ClaimInitiativeInput contains parameters for claiming a character's
// initiative slot in an encounter
type ClaimInitiativeInput struct {
	EncounterID string
	CharacterID string
	RollID      string
}

// ClaimInitiativeOutput contains the result of an initiative claim
type ClaimInitiativeOutput struct {
	// Claimed is false when this character already rolled initiative for
	// the encounter
	Claimed bool

	// ExistingRollID holds the roll that already claimed the slot when
	// Claimed is false
	ExistingRollID string
}

// Repository defines the interface for encounter state storage.
// ClaimInitiative is first-writer-wins: the claim either succeeds once
// or reports the roll that got there first.
type Repository interface {
	// ClaimInitiative atomically claims the character's initiative slot
	ClaimInitiative(ctx context.Context, input ClaimInitiativeInput) (*ClaimInitiativeOutput, error)
}
