package anima

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// TypeVarie marks the miscellaneous item category. Varie entries stack by
// quantity; every other type represents one physical unit per occurrence.
const TypeVarie = "varie"

// InventoryEntry is one line of a character's inventory. It is either a
// bare reference to a shared catalog item (ItemID set, one physical unit)
// or an embedded object carrying its own fields, with Qty used only by
// stackable varie entries.
type InventoryEntry struct {
	ItemID string `json:"-"`

	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	Type string `json:"type,omitempty"`
	Qty  int    `json:"qty,omitempty"`
}

// Key returns the identity used for matching entries to items
func (e InventoryEntry) Key() string {
	if e.ItemID != "" {
		return e.ItemID
	}
	if e.ID != "" {
		return e.ID
	}
	return e.Name
}

// Stackable reports whether this entry carries a quantity
func (e InventoryEntry) Stackable() bool {
	return strings.EqualFold(e.Type, TypeVarie) && e.ItemID == ""
}

// Units returns how many physical units this entry represents
func (e InventoryEntry) Units() int {
	if e.Qty > 1 {
		return e.Qty
	}
	return 1
}

// MarshalJSON preserves the persisted document shape: catalog references
// are stored as plain strings, embedded entries as objects.
func (e InventoryEntry) MarshalJSON() ([]byte, error) {
	if e.ItemID != "" {
		return json.Marshal(e.ItemID)
	}
	type embedded InventoryEntry
	return json.Marshal(embedded(e))
}

// UnmarshalJSON accepts either a string catalog reference or an object
func (e *InventoryEntry) UnmarshalJSON(data []byte) error {
	var ref string
	if err := json.Unmarshal(data, &ref); err == nil {
		*e = InventoryEntry{ItemID: ref}
		return nil
	}
	type embedded InventoryEntry
	var obj embedded
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*e = InventoryEntry(obj)
	return nil
}

// AddUnique appends one non-stacking entry
func AddUnique(inv []InventoryEntry, entry InventoryEntry) []InventoryEntry {
	entry.Qty = 0
	return append(inv, entry)
}

// AddStackable adds qty units of a varie item, merging into an existing
// stack when one is present
func AddStackable(inv []InventoryEntry, entry InventoryEntry, qty int) []InventoryEntry {
	if qty < 1 {
		return inv
	}
	key := entry.Key()
	for i := range inv {
		if inv[i].Stackable() && inv[i].Key() == key {
			inv[i].Qty = inv[i].Units() + qty
			return inv
		}
	}
	entry.Type = TypeVarie
	entry.Qty = qty
	return append(inv, entry)
}

// RemoveUnits removes up to count units of the keyed item and reports how
// many were actually removed. Stacked quantities are decremented first,
// then repeated discrete entries are deleted. A stack is deleted rather
// than left at zero.
func RemoveUnits(inv []InventoryEntry, itemKey string, count int) ([]InventoryEntry, int) {
	if count <= 0 {
		return inv, 0
	}

	remaining := count

	// First pass: stacked entries.
	out := inv[:0:0]
	out = append(out, inv...)
	for i := 0; i < len(out) && remaining > 0; i++ {
		e := out[i]
		if !e.Stackable() || e.Key() != itemKey {
			continue
		}
		units := e.Units()
		switch {
		case units > remaining:
			out[i].Qty = units - remaining
			remaining = 0
		default:
			out = append(out[:i], out[i+1:]...)
			remaining -= units
			i--
		}
	}

	// Second pass: discrete entries, one unit each.
	for i := 0; i < len(out) && remaining > 0; i++ {
		if out[i].Stackable() || out[i].Key() != itemKey {
			continue
		}
		out = append(out[:i], out[i+1:]...)
		remaining--
		i--
	}

	return out, count - remaining
}

// AggregateLine is one row of the grouped inventory view
type AggregateLine struct {
	Key         string `json:"key"`
	DisplayName string `json:"displayName"`
	Type        string `json:"type"`
	Qty         int    `json:"qty"`
	Stackable   bool   `json:"stackable"`
}

// Aggregate builds the display view of an inventory: varie entries merge
// by key with summed quantities, while other entries are listed per
// physical unit with duplicates disambiguated as "Name (1)", "Name (2)". The
// catalogTypeOf lookup resolves the type of bare catalog references; it
// may be nil when the inventory holds only embedded entries.
func Aggregate(inv []InventoryEntry, catalogTypeOf func(itemID string) string) []AggregateLine {
	type instance struct {
		key  string
		name string
		typ  string
	}

	varie := make(map[string]*AggregateLine)
	var singles []instance

	for _, e := range inv {
		key := e.Key()
		if key == "" {
			continue
		}
		name := e.Name
		if name == "" {
			name = key
		}
		typ := strings.ToLower(e.Type)
		if typ == "" && e.ItemID != "" && catalogTypeOf != nil {
			typ = strings.ToLower(catalogTypeOf(e.ItemID))
		}

		if typ == TypeVarie {
			if line, ok := varie[key]; ok {
				line.Qty += e.Units()
			} else {
				varie[key] = &AggregateLine{
					Key:         key,
					DisplayName: name,
					Type:        TypeVarie,
					Qty:         e.Units(),
					Stackable:   true,
				}
			}
			continue
		}

		for u := 0; u < e.Units(); u++ {
			singles = append(singles, instance{key: key, name: name, typ: typ})
		}
	}

	sort.SliceStable(singles, func(i, j int) bool {
		return singles[i].name < singles[j].name
	})

	// Duplicates are counted by display name: two distinct catalog items
	// that share a name still need disambiguating.
	totals := make(map[string]int)
	for _, inst := range singles {
		totals[inst.name]++
	}

	lines := make([]AggregateLine, 0, len(singles)+len(varie))
	seen := make(map[string]int)
	for _, inst := range singles {
		seen[inst.name]++
		display := inst.name
		if totals[inst.name] > 1 {
			display = fmt.Sprintf("%s (%d)", inst.name, seen[inst.name])
		}
		lines = append(lines, AggregateLine{
			Key:         inst.key,
			DisplayName: display,
			Type:        inst.typ,
			Qty:         1,
		})
	}

	varieLines := make([]AggregateLine, 0, len(varie))
	for _, line := range varie {
		varieLines = append(varieLines, *line)
	}
	sort.Slice(varieLines, func(i, j int) bool {
		return varieLines[i].DisplayName < varieLines[j].DisplayName
	})

	return append(lines, varieLines...)
}
