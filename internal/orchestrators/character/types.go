package character

import (
	"github.com/animarpg/anima-api/internal/entities/anima"
	"github.com/animarpg/anima-api/internal/types"
)

// CreateCharacterInput defines the request for creating a character
type CreateCharacterInput struct {
	Actor types.Actor

	// PlayerID is the owning player. Empty defaults to the actor; only a
	// DM may create a character for someone else.
	PlayerID string
	Name     string
	Level    int
}

// CreateCharacterOutput defines the response for creating a character
type CreateCharacterOutput struct {
	Character *anima.Character
}

// GetCharacterInput defines the request for retrieving a character
type GetCharacterInput struct {
	CharacterID string
}

// GetCharacterOutput defines the response for retrieving a character
type GetCharacterOutput struct {
	Character *anima.Character
}

// ListCharactersInput defines the request for listing a player's characters
type ListCharactersInput struct {
	PlayerID string
}

// ListCharactersOutput defines the response for listing a player's characters
type ListCharactersOutput struct {
	Characters []*anima.Character
}

// DeleteCharacterInput defines the request for deleting a character
type DeleteCharacterInput struct {
	Actor       types.Actor
	CharacterID string
}

// DeleteCharacterOutput defines the response for deleting a character
type DeleteCharacterOutput struct{}

// SpendPointInput defines the request for spending a progression point
type SpendPointInput struct {
	Actor       types.Actor
	CharacterID string
	Group       anima.StatGroup
	Stat        string
}

// SpendPointOutput defines the response for spending a progression point
type SpendPointOutput struct {
	Character *anima.Character
}

// RefundPointInput defines the request for refunding a progression point
type RefundPointInput struct {
	Actor       types.Actor
	CharacterID string
	Group       anima.StatGroup
	Stat        string
}

// RefundPointOutput defines the response for refunding a progression point
type RefundPointOutput struct {
	Character *anima.Character
}

// AdjustModifierInput defines the request for a freeform Mod column shift
type AdjustModifierInput struct {
	Actor       types.Actor
	CharacterID string
	Group       anima.StatGroup
	Stat        string
	Delta       int
}

// AdjustModifierOutput defines the response for a Mod column shift
type AdjustModifierOutput struct {
	Character *anima.Character
}

// AdjustResourceInput defines the request for a resource pool adjustment
type AdjustResourceInput struct {
	Actor       types.Actor
	CharacterID string
	Pool        anima.ResourceKind
	Delta       int
}

// AdjustResourceOutput defines the response for a resource pool adjustment
type AdjustResourceOutput struct {
	Character *anima.Character
	Pool      anima.Pool
}

// ResetResourcesInput defines the request for restoring both pools to full
type ResetResourcesInput struct {
	Actor       types.Actor
	CharacterID string
}

// ResetResourcesOutput defines the response for restoring both pools
type ResetResourcesOutput struct {
	Character *anima.Character
}

// AddItemInput defines the request for adding a non-stacking inventory entry
type AddItemInput struct {
	Actor       types.Actor
	CharacterID string
	Entry       anima.InventoryEntry
}

// AddItemOutput defines the response for adding an inventory entry
type AddItemOutput struct {
	Character *anima.Character
}

// AddStackableInput defines the request for adding units of a varie item
type AddStackableInput struct {
	Actor       types.Actor
	CharacterID string
	Entry       anima.InventoryEntry
	Qty         int
}

// AddStackableOutput defines the response for adding stackable units
type AddStackableOutput struct {
	Character *anima.Character
}

// RemoveItemUnitsInput defines the request for removing inventory units
type RemoveItemUnitsInput struct {
	Actor       types.Actor
	CharacterID string
	ItemKey     string
	Count       int
}

// RemoveItemUnitsOutput defines the response for removing inventory units
type RemoveItemUnitsOutput struct {
	Character *anima.Character
	Removed   int
}

// AggregateInventoryInput defines the request for the grouped inventory view
type AggregateInventoryInput struct {
	CharacterID string
}

// AggregateInventoryOutput defines the response for the grouped inventory view
type AggregateInventoryOutput struct {
	Lines []anima.AggregateLine
}

// AdjustGoldInput defines the request for a gold adjustment
type AdjustGoldInput struct {
	Actor       types.Actor
	CharacterID string
	Delta       int
}

// AdjustGoldOutput defines the response for a gold adjustment
type AdjustGoldOutput struct {
	Character *anima.Character
	Gold      int
}
