// Package rolllog provides the repository interface and types for the
// per-actor dice roll history
package rolllog

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=rolllogmock github.com/animarpg/anima-api/internal/repositories/rolllog Repository

// MaxEntries is how many log entries are retained per actor. Every append
// trims the history to the newest MaxEntries.
const MaxEntries = 20

// Roll kinds
const (
	KindGeneric    = "generic"
	KindInitiative = "initiative"
	KindConsumable = "consumable"
)

// Entry is one logged dice roll
type Entry struct {
	// Unique identifier for this roll
	RollID string

	// What kind of roll this was (e.g. "generic", "initiative", "consumable")
	Kind string

	// Human-readable description of the roll
	Description string

	// Dice notation that was rolled (e.g. "3d6+3")
	Expression string

	// Individual dice values that were rolled
	Rolls []int

	// Modifier applied to get the final total
	Modifier int

	// Die size rolled
	Faces int

	// Number of dice rolled
	Count int

	// Final result including the modifier
	Total int

	// When the roll happened
	CreatedAt time.Time
}

// AppendInput contains parameters for appending a roll to an actor's log
type AppendInput struct {
	ActorID string
	Entry   Entry
}

// AppendOutput contains the result of appending a roll
type AppendOutput struct {
	Entry *Entry
}

// ListInput contains parameters for reading an actor's log
type ListInput struct {
	ActorID string
}

// ListOutput contains the actor's log entries, newest first
type ListOutput struct {
	Entries []Entry
}

// Repository defines the interface for the append-only roll history.
// The log is capped: appends delete anything older than the newest
// MaxEntries entries.
type Repository interface {
	// Append records a roll and trims the history
	Append(ctx context.Context, input AppendInput) (*AppendOutput, error)

	// List returns the retained entries, newest first
	List(ctx context.Context, input ListInput) (*ListOutput, error)
}
