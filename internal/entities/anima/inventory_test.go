package anima_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/animarpg/anima-api/internal/entities/anima"
)

func TestInventoryEntryJSONShapes(t *testing.T) {
	// Catalog references persist as plain strings.
	ref := anima.InventoryEntry{ItemID: "potion-1"}
	data, err := json.Marshal(ref)
	require.NoError(t, err)
	assert.JSONEq(t, `"potion-1"`, string(data))

	var back anima.InventoryEntry
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, "potion-1", back.ItemID)
	assert.Equal(t, "potion-1", back.Key())

	// Embedded entries persist as objects.
	obj := anima.InventoryEntry{ID: "rope-1", Name: "Corda", Type: "varie", Qty: 3}
	data, err = json.Marshal(obj)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"rope-1","name":"Corda","type":"varie","qty":3}`, string(data))

	var objBack anima.InventoryEntry
	require.NoError(t, json.Unmarshal(data, &objBack))
	assert.Equal(t, obj, objBack)
	assert.True(t, objBack.Stackable())
	assert.Equal(t, 3, objBack.Units())
}

func TestAddStackableMergesExistingStack(t *testing.T) {
	inv := []anima.InventoryEntry{}
	rope := anima.InventoryEntry{ID: "rope-1", Name: "Corda", Type: "varie"}

	inv = anima.AddStackable(inv, rope, 2)
	inv = anima.AddStackable(inv, rope, 3)

	require.Len(t, inv, 1)
	assert.Equal(t, 5, inv[0].Qty)
}

func TestRemoveUnitsStacksBeforeDiscretes(t *testing.T) {
	inv := []anima.InventoryEntry{
		{ID: "torch", Name: "Torcia", Type: "arma"},
		{ID: "torch", Name: "Torcia", Type: "varie", Qty: 2},
	}

	inv, removed := anima.RemoveUnits(inv, "torch", 3)
	assert.Equal(t, 3, removed)
	require.Len(t, inv, 0)

	inv = []anima.InventoryEntry{
		{ID: "torch", Name: "Torcia", Type: "arma"},
		{ID: "torch", Name: "Torcia", Type: "varie", Qty: 5},
	}
	inv, removed = anima.RemoveUnits(inv, "torch", 2)
	assert.Equal(t, 2, removed)
	require.Len(t, inv, 2)
	// The stack absorbed both removals; the discrete entry survives.
	assert.Equal(t, 3, inv[1].Qty)
	assert.Equal(t, "arma", inv[0].Type)
}

func TestRemoveUnitsMissingItem(t *testing.T) {
	inv := []anima.InventoryEntry{{ID: "sword", Name: "Spada"}}

	out, removed := anima.RemoveUnits(inv, "shield", 1)
	assert.Equal(t, 0, removed)
	assert.Equal(t, inv, out)
}

func TestRemoveUnitsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var inv []anima.InventoryEntry
		entries := rapid.IntRange(0, 8).Draw(t, "entries")
		for i := 0; i < entries; i++ {
			if rapid.Bool().Draw(t, "stackable") {
				inv = anima.AddStackable(inv, anima.InventoryEntry{
					ID:   "item",
					Name: "Oggetto",
					Type: anima.TypeVarie,
				}, rapid.IntRange(1, 5).Draw(t, "qty"))
			} else {
				inv = anima.AddUnique(inv, anima.InventoryEntry{ID: "item", Name: "Oggetto"})
			}
		}

		held := 0
		for _, e := range inv {
			held += e.Units()
		}

		count := rapid.IntRange(1, 12).Draw(t, "count")
		out, removed := anima.RemoveUnits(inv, "item", count)

		if removed > count {
			t.Fatalf("removed %d > requested %d", removed, count)
		}
		if removed > held {
			t.Fatalf("removed %d > held %d", removed, held)
		}

		left := 0
		for _, e := range out {
			if e.Stackable() && e.Qty <= 0 {
				t.Fatalf("stack left at qty %d", e.Qty)
			}
			left += e.Units()
		}
		if left != held-removed {
			t.Fatalf("units leaked: held %d, removed %d, left %d", held, removed, left)
		}
	})
}

func TestAggregateMixedInventory(t *testing.T) {
	inv := []anima.InventoryEntry{
		{ID: "sword-1", Name: "Sword", Type: "arma"},
		{ID: "rope-1", Name: "Rope", Type: "varie", Qty: 2},
		{ID: "sword-1", Name: "Sword", Type: "arma"},
		{ID: "rope-1", Name: "Rope", Type: "varie"},
	}

	lines := anima.Aggregate(inv, nil)
	require.Len(t, lines, 3)

	assert.Equal(t, "Sword (1)", lines[0].DisplayName)
	assert.Equal(t, "Sword (2)", lines[1].DisplayName)
	assert.Equal(t, 1, lines[0].Qty)

	assert.Equal(t, "Rope", lines[2].DisplayName)
	assert.Equal(t, 3, lines[2].Qty)
	assert.True(t, lines[2].Stackable)
}

func TestAggregateResolvesCatalogTypes(t *testing.T) {
	inv := []anima.InventoryEntry{
		{ItemID: "nails"},
		{ItemID: "nails"},
	}

	typeOf := func(itemID string) string { return anima.TypeVarie }

	lines := anima.Aggregate(inv, typeOf)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Qty)
	assert.True(t, lines[0].Stackable)
}

func TestAggregateUniqueNameNoSuffix(t *testing.T) {
	inv := []anima.InventoryEntry{
		{ID: "sword-1", Name: "Sword", Type: "arma"},
		{ID: "bow-1", Name: "Bow", Type: "arma"},
	}

	lines := anima.Aggregate(inv, nil)
	require.Len(t, lines, 2)
	assert.Equal(t, "Bow", lines[0].DisplayName)
	assert.Equal(t, "Sword", lines[1].DisplayName)
}
