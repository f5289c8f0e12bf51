package anima

import (
	"github.com/animarpg/anima-api/internal/errors"
)

// Stats holds the flat character counters, including the two progression
// ledgers. JSON tags mirror the persisted document shape.
type Stats struct {
	Level                 int `json:"level"`
	HPCurrent             int `json:"hpCurrent"`
	HPTotal               int `json:"hpTotal"`
	ManaCurrent           int `json:"manaCurrent"`
	ManaTotal             int `json:"manaTotal"`
	BasePointsAvailable   int `json:"basePointsAvailable"`
	BasePointsSpent       int `json:"basePointsSpent"`
	CombatTokensAvailable int `json:"combatTokensAvailable"`
	CombatTokensSpent     int `json:"combatTokensSpent"`
	Gold                  int `json:"gold"`
}

// EquippedItem is an item occupying an equipment slot. Qty is set only
// for stackable consumables equipped in a slot.
type EquippedItem struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	Type string `json:"type,omitempty"`
	Qty  int    `json:"qty,omitempty"`
}

// Character is the unit of contention: one document per character, with
// all multi-field mutations applied through a single store transaction.
type Character struct {
	ID        string                   `json:"id"`
	PlayerID  string                   `json:"playerId"`
	Name      string                   `json:"name"`
	Stats     Stats                    `json:"stats"`
	Params    Params                   `json:"Parametri"`
	Inventory []InventoryEntry         `json:"inventory"`
	Equipped  map[string]*EquippedItem `json:"equipped,omitempty"`
	CreatedAt int64                    `json:"createdAt,omitempty"`
	UpdatedAt int64                    `json:"updatedAt,omitempty"`
}

// ResourceKind selects one of the two resource pools
type ResourceKind string

// Resource kinds
const (
	ResourceHP   ResourceKind = "hp"
	ResourceMana ResourceKind = "mana"
)

// Resource returns the named pool as a value view over Stats
func (c *Character) Resource(kind ResourceKind) (Pool, error) {
	switch kind {
	case ResourceHP:
		return Pool{Current: c.Stats.HPCurrent, Total: c.Stats.HPTotal}, nil
	case ResourceMana:
		return Pool{Current: c.Stats.ManaCurrent, Total: c.Stats.ManaTotal}, nil
	default:
		return Pool{}, errors.InvalidArgumentf("unknown resource: %s", kind)
	}
}

// SetResource writes a pool view back to Stats
func (c *Character) SetResource(kind ResourceKind, p Pool) error {
	switch kind {
	case ResourceHP:
		c.Stats.HPCurrent = p.Current
	case ResourceMana:
		c.Stats.ManaCurrent = p.Current
	default:
		return errors.InvalidArgumentf("unknown resource: %s", kind)
	}
	return nil
}

// SpendPoint moves one point from the group's ledger into the named
// stat's Base column. The counter decrement and the stat increment are a
// single in-memory mutation; callers persist the whole character in one
// store transaction so the two are never observed independently.
func (c *Character) SpendPoint(group StatGroup, name string) error {
	record, err := c.Params.Record(group, name)
	if err != nil {
		return err
	}

	switch group {
	case GroupBase:
		if c.Stats.BasePointsAvailable <= 0 {
			return errors.InsufficientPoints("no base points available")
		}
		if err := record.IncrementColumn(ColumnBase); err != nil {
			return err
		}
		c.Stats.BasePointsAvailable--
		c.Stats.BasePointsSpent++
	case GroupCombat:
		if c.Stats.CombatTokensAvailable <= 0 {
			return errors.InsufficientPoints("no combat tokens available")
		}
		if err := record.IncrementColumn(ColumnBase); err != nil {
			return err
		}
		c.Stats.CombatTokensAvailable--
		c.Stats.CombatTokensSpent++
	default:
		return errors.InvalidArgumentf("unknown stat group: %s", group)
	}
	return nil
}

// RefundPoint moves one point from the named stat's Base column back into
// the group's ledger. Fails with AtFloor when the stat is already at 0.
func (c *Character) RefundPoint(group StatGroup, name string) error {
	record, err := c.Params.Record(group, name)
	if err != nil {
		return err
	}

	if record.Base <= 0 {
		return errors.AtFloorf("%s base is already at 0", name)
	}

	if err := record.DecrementColumn(ColumnBase); err != nil {
		return err
	}

	switch group {
	case GroupBase:
		c.Stats.BasePointsAvailable++
		c.Stats.BasePointsSpent--
	case GroupCombat:
		c.Stats.CombatTokensAvailable++
		c.Stats.CombatTokensSpent--
	default:
		return errors.InvalidArgumentf("unknown stat group: %s", group)
	}
	return nil
}

// AdjustModifier shifts the named stat's Mod column by delta. Mod has no
// floor; it represents freeform GM or temporary adjustments and does not
// touch the ledgers.
func (c *Character) AdjustModifier(group StatGroup, name string, delta int) error {
	record, err := c.Params.Record(group, name)
	if err != nil {
		return err
	}
	record.Mod += delta
	record.Recompute()
	return nil
}

// DestrezzaTot returns the Destrezza total used as the initiative modifier
func (c *Character) DestrezzaTot() int {
	if r, ok := c.Params.Base[StatDestrezza]; ok {
		return r.Tot
	}
	return 0
}

// ConsumeUnit removes one unit of the keyed item from the inventory and
// keeps the equipped slot consistent: the slot is cleared when the item is
// fully removed, otherwise a stacked slot quantity is decremented.
func (c *Character) ConsumeUnit(itemKey, slotKey string) error {
	inv, removed := RemoveUnits(c.Inventory, itemKey, 1)
	if removed == 0 {
		return errors.NotFoundf("item %s not in inventory", itemKey)
	}
	c.Inventory = inv

	stillHeld := false
	for _, e := range c.Inventory {
		if e.Key() == itemKey {
			stillHeld = true
			break
		}
	}

	if slotKey == "" || c.Equipped == nil {
		return nil
	}
	slot, ok := c.Equipped[slotKey]
	if !ok || slot == nil {
		return nil
	}
	if !stillHeld {
		c.Equipped[slotKey] = nil
		return nil
	}
	if slot.Qty > 0 {
		slot.Qty--
		if slot.Qty == 0 {
			c.Equipped[slotKey] = nil
		}
	}
	return nil
}
