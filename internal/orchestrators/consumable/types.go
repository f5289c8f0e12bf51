package consumable

import (
	"github.com/animarpg/anima-api/internal/dice"
	"github.com/animarpg/anima-api/internal/entities/anima"
	"github.com/animarpg/anima-api/internal/repositories/rolllog"
	"github.com/animarpg/anima-api/internal/types"
)

// UseInput defines the request for using a consumable
type UseInput struct {
	Actor       types.Actor
	CharacterID string
	ItemID      string

	// SlotKey names the equipped slot holding the item, when used from a
	// slot. Empty when used straight from the inventory.
	SlotKey string

	// Mode selects which pool to regenerate. Required when the item
	// defines dice for both pools at the character's bracket.
	Mode anima.RegenMode
}

// UseOutput defines the response for using a consumable
type UseOutput struct {
	Character *anima.Character

	// Mode is the pool that was regenerated; empty for inert items
	Mode anima.RegenMode

	// Result is the regeneration roll; nil for inert items
	Result *dice.Result

	// Gained is the pool increase actually applied after capping
	Gained int

	// Entry is the logged roll; nil for inert items
	Entry *rolllog.Entry
}
