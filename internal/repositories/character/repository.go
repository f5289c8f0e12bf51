// Package character provides the repository interface and types for
// character document storage
package character

import (
	"context"

	"github.com/animarpg/anima-api/internal/entities/anima"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=charactermock github.com/animarpg/anima-api/internal/repositories/character Repository

// MutateFn applies an in-memory mutation to a freshly read character.
// Returning an error aborts the transaction before any write.
type MutateFn func(c *anima.Character) error

// CreateInput contains parameters for creating a character
type CreateInput struct {
	Character *anima.Character
}

// CreateOutput contains the result of creating a character
type CreateOutput struct {
	Character *anima.Character
}

// GetInput contains parameters for retrieving a character
type GetInput struct {
	ID string
}

// GetOutput contains the result of retrieving a character
type GetOutput struct {
	Character *anima.Character
}

// UpdateInput contains parameters for replacing a character document
type UpdateInput struct {
	Character *anima.Character
}

// UpdateOutput contains the result of replacing a character document
type UpdateOutput struct {
	Character *anima.Character
}

// DeleteInput contains parameters for deleting a character
type DeleteInput struct {
	ID string
}

// DeleteOutput contains the result of deleting a character
type DeleteOutput struct{}

// MutateInput contains parameters for a transactional mutation
type MutateInput struct {
	ID string
	Fn MutateFn
}

// MutateOutput contains the character state as committed
type MutateOutput struct {
	Character *anima.Character
}

// ListByPlayerIDInput contains parameters for listing a player's characters
type ListByPlayerIDInput struct {
	PlayerID string
}

// ListByPlayerIDOutput contains the player's characters
type ListByPlayerIDOutput struct {
	Characters []*anima.Character
}

// Repository defines the interface for character storage operations.
// Mutate is the transactional boundary: multi-field invariants (ledger
// spend/refund, consumable consumption) go through it so partial effects
// are never observable.
type Repository interface {
	// Create stores a new character document
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a character by ID
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces a character document (last write wins)
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a character and its index entries
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// Mutate applies fn to the current document under optimistic
	// concurrency control and commits the result atomically. A concurrent
	// write aborts with Unavailable; an error from fn aborts with no write.
	Mutate(ctx context.Context, input MutateInput) (*MutateOutput, error)

	// ListByPlayerID lists all characters owned by a player
	ListByPlayerID(ctx context.Context, input ListByPlayerIDInput) (*ListByPlayerIDOutput, error)
}
