// Package character implements the character orchestrator: progression
// point spend/refund, modifier and resource adjustments, and the
// inventory ledger. Every multi-field mutation goes through the
// repository's transactional Mutate so ledger invariants hold under
// concurrent writers.
package character

//go:generate mockgen -destination=mock/mock_service.go -package=charactermock github.com/animarpg/anima-api/internal/orchestrators/character Service

import (
	"context"
	"log/slog"

	"github.com/animarpg/anima-api/internal/entities/anima"
	"github.com/animarpg/anima-api/internal/errors"
	"github.com/animarpg/anima-api/internal/pkg/idgen"
	characterrepo "github.com/animarpg/anima-api/internal/repositories/character"
	itemrepo "github.com/animarpg/anima-api/internal/repositories/item"
	"github.com/animarpg/anima-api/internal/types"
)

// Service defines the interface for character operations
type Service interface {
	// Lifecycle
	CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error)
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)
	ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error)
	DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) (*DeleteCharacterOutput, error)

	// Progression ledgers
	SpendPoint(ctx context.Context, input *SpendPointInput) (*SpendPointOutput, error)
	RefundPoint(ctx context.Context, input *RefundPointInput) (*RefundPointOutput, error)
	AdjustModifier(ctx context.Context, input *AdjustModifierInput) (*AdjustModifierOutput, error)

	// Resource pools
	AdjustResource(ctx context.Context, input *AdjustResourceInput) (*AdjustResourceOutput, error)
	ResetResources(ctx context.Context, input *ResetResourcesInput) (*ResetResourcesOutput, error)

	// Inventory ledger
	AddItem(ctx context.Context, input *AddItemInput) (*AddItemOutput, error)
	AddStackable(ctx context.Context, input *AddStackableInput) (*AddStackableOutput, error)
	RemoveItemUnits(ctx context.Context, input *RemoveItemUnitsInput) (*RemoveItemUnitsOutput, error)
	AggregateInventory(ctx context.Context, input *AggregateInventoryInput) (*AggregateInventoryOutput, error)
	AdjustGold(ctx context.Context, input *AdjustGoldInput) (*AdjustGoldOutput, error)
}

// Config holds the dependencies for the character orchestrator
type Config struct {
	CharacterRepo characterrepo.Repository
	ItemRepo      itemrepo.Repository
	IDGenerator   idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.ItemRepo == nil {
		vb.RequiredField("ItemRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	characterRepo characterrepo.Repository
	itemRepo      itemrepo.Repository
	idGen         idgen.Generator
}

// NewOrchestrator creates a new character orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		characterRepo: cfg.CharacterRepo,
		itemRepo:      cfg.ItemRepo,
		idGen:         cfg.IDGenerator,
	}, nil
}

// authorize rejects actors that are neither the owner nor a DM. Called
// inside Mutate closures so a denial aborts before any write.
func (o *orchestrator) authorize(actor types.Actor, c *anima.Character) error {
	if actor.CanActFor(c.PlayerID) {
		return nil
	}
	return errors.PermissionDeniedf("player %s cannot modify character %s", actor.PlayerID, c.ID)
}

// CreateCharacter creates a new character with zeroed stat tables
func (o *orchestrator) CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error) {
	if input.Name == "" {
		return nil, errors.InvalidArgument("character name is required")
	}
	if input.Level < 1 {
		return nil, errors.InvalidArgument("level must be at least 1")
	}

	playerID := input.PlayerID
	if playerID == "" {
		playerID = input.Actor.PlayerID
	}
	if playerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}
	if playerID != input.Actor.PlayerID && !input.Actor.IsDM() {
		return nil, errors.PermissionDeniedf("player %s cannot create characters for player %s", input.Actor.PlayerID, playerID)
	}

	char := &anima.Character{
		ID:       o.idGen.Generate(),
		PlayerID: playerID,
		Name:     input.Name,
		Stats:    anima.Stats{Level: input.Level},
		Params:   anima.NewParams(),
	}

	createOutput, err := o.characterRepo.Create(ctx, characterrepo.CreateInput{Character: char})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create character")
	}

	slog.Info("Character created",
		"character_id", char.ID,
		"player_id", playerID,
		"level", input.Level,
	)

	return &CreateCharacterOutput{Character: createOutput.Character}, nil
}

// GetCharacter retrieves a character by ID
func (o *orchestrator) GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	getOutput, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
	if err != nil {
		return nil, err
	}

	return &GetCharacterOutput{Character: getOutput.Character}, nil
}

// ListCharacters lists all characters owned by a player
func (o *orchestrator) ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	listOutput, err := o.characterRepo.ListByPlayerID(ctx, characterrepo.ListByPlayerIDInput{PlayerID: input.PlayerID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list characters")
	}

	return &ListCharactersOutput{Characters: listOutput.Characters}, nil
}

// DeleteCharacter deletes a character after an ownership check
func (o *orchestrator) DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) (*DeleteCharacterOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	getOutput, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
	if err != nil {
		return nil, err
	}
	if err := o.authorize(input.Actor, getOutput.Character); err != nil {
		return nil, err
	}

	if _, err := o.characterRepo.Delete(ctx, characterrepo.DeleteInput{ID: input.CharacterID}); err != nil {
		return nil, errors.Wrap(err, "failed to delete character")
	}

	slog.Info("Character deleted",
		"character_id", input.CharacterID,
		"actor_id", input.Actor.PlayerID,
	)

	return &DeleteCharacterOutput{}, nil
}

// SpendPoint moves one point from the group's ledger into the named
// stat's Base column in a single transaction
func (o *orchestrator) SpendPoint(ctx context.Context, input *SpendPointInput) (*SpendPointOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}
	if input.Stat == "" {
		return nil, errors.InvalidArgument("stat name is required")
	}

	mutateOutput, err := o.characterRepo.Mutate(ctx, characterrepo.MutateInput{
		ID: input.CharacterID,
		Fn: func(c *anima.Character) error {
			if err := o.authorize(input.Actor, c); err != nil {
				return err
			}
			return c.SpendPoint(input.Group, input.Stat)
		},
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Progression point spent",
		"character_id", input.CharacterID,
		"group", input.Group,
		"stat", input.Stat,
	)

	return &SpendPointOutput{Character: mutateOutput.Character}, nil
}

// RefundPoint moves one point from the named stat's Base column back into
// the group's ledger in a single transaction
func (o *orchestrator) RefundPoint(ctx context.Context, input *RefundPointInput) (*RefundPointOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}
	if input.Stat == "" {
		return nil, errors.InvalidArgument("stat name is required")
	}

	mutateOutput, err := o.characterRepo.Mutate(ctx, characterrepo.MutateInput{
		ID: input.CharacterID,
		Fn: func(c *anima.Character) error {
			if err := o.authorize(input.Actor, c); err != nil {
				return err
			}
			return c.RefundPoint(input.Group, input.Stat)
		},
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Progression point refunded",
		"character_id", input.CharacterID,
		"group", input.Group,
		"stat", input.Stat,
	)

	return &RefundPointOutput{Character: mutateOutput.Character}, nil
}

// AdjustModifier shifts a stat's Mod column by delta without touching
// the ledgers
func (o *orchestrator) AdjustModifier(ctx context.Context, input *AdjustModifierInput) (*AdjustModifierOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}
	if input.Stat == "" {
		return nil, errors.InvalidArgument("stat name is required")
	}
	if input.Delta == 0 {
		return nil, errors.InvalidArgument("delta cannot be zero")
	}

	mutateOutput, err := o.characterRepo.Mutate(ctx, characterrepo.MutateInput{
		ID: input.CharacterID,
		Fn: func(c *anima.Character) error {
			if err := o.authorize(input.Actor, c); err != nil {
				return err
			}
			return c.AdjustModifier(input.Group, input.Stat, input.Delta)
		},
	})
	if err != nil {
		return nil, err
	}

	return &AdjustModifierOutput{Character: mutateOutput.Character}, nil
}

// AdjustResource applies a player +/- adjustment to a resource pool.
// Overflow past the total is allowed; the floor is 0.
func (o *orchestrator) AdjustResource(ctx context.Context, input *AdjustResourceInput) (*AdjustResourceOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}
	if input.Delta == 0 {
		return nil, errors.InvalidArgument("delta cannot be zero")
	}

	var pool anima.Pool
	mutateOutput, err := o.characterRepo.Mutate(ctx, characterrepo.MutateInput{
		ID: input.CharacterID,
		Fn: func(c *anima.Character) error {
			if err := o.authorize(input.Actor, c); err != nil {
				return err
			}
			p, err := c.Resource(input.Pool)
			if err != nil {
				return err
			}
			pool = p.Apply(input.Delta)
			return c.SetResource(input.Pool, pool)
		},
	})
	if err != nil {
		return nil, err
	}

	return &AdjustResourceOutput{
		Character: mutateOutput.Character,
		Pool:      pool,
	}, nil
}

// ResetResources restores both pools to their totals, discarding overflow
func (o *orchestrator) ResetResources(ctx context.Context, input *ResetResourcesInput) (*ResetResourcesOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	mutateOutput, err := o.characterRepo.Mutate(ctx, characterrepo.MutateInput{
		ID: input.CharacterID,
		Fn: func(c *anima.Character) error {
			if err := o.authorize(input.Actor, c); err != nil {
				return err
			}
			for _, kind := range []anima.ResourceKind{anima.ResourceHP, anima.ResourceMana} {
				p, err := c.Resource(kind)
				if err != nil {
					return err
				}
				if err := c.SetResource(kind, p.ResetToFull()); err != nil {
					return err
				}
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Resources reset to full",
		"character_id", input.CharacterID,
		"actor_id", input.Actor.PlayerID,
	)

	return &ResetResourcesOutput{Character: mutateOutput.Character}, nil
}

// AddItem appends one non-stacking inventory entry
func (o *orchestrator) AddItem(ctx context.Context, input *AddItemInput) (*AddItemOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}
	if input.Entry.Key() == "" {
		return nil, errors.InvalidArgument("inventory entry needs an item ID or a name")
	}

	mutateOutput, err := o.characterRepo.Mutate(ctx, characterrepo.MutateInput{
		ID: input.CharacterID,
		Fn: func(c *anima.Character) error {
			if err := o.authorize(input.Actor, c); err != nil {
				return err
			}
			c.Inventory = anima.AddUnique(c.Inventory, input.Entry)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return &AddItemOutput{Character: mutateOutput.Character}, nil
}

// AddStackable adds qty units of a varie item, merging into an existing
// stack when one is present
func (o *orchestrator) AddStackable(ctx context.Context, input *AddStackableInput) (*AddStackableOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}
	if input.Entry.Key() == "" {
		return nil, errors.InvalidArgument("inventory entry needs an item ID or a name")
	}
	if input.Qty < 1 {
		return nil, errors.InvalidArgument("quantity must be at least 1")
	}

	mutateOutput, err := o.characterRepo.Mutate(ctx, characterrepo.MutateInput{
		ID: input.CharacterID,
		Fn: func(c *anima.Character) error {
			if err := o.authorize(input.Actor, c); err != nil {
				return err
			}
			c.Inventory = anima.AddStackable(c.Inventory, input.Entry, input.Qty)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return &AddStackableOutput{Character: mutateOutput.Character}, nil
}

// RemoveItemUnits removes up to count units of the keyed item. Removing
// an item the character does not hold is NotFound.
func (o *orchestrator) RemoveItemUnits(ctx context.Context, input *RemoveItemUnitsInput) (*RemoveItemUnitsOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}
	if input.ItemKey == "" {
		return nil, errors.InvalidArgument("item key is required")
	}
	if input.Count < 1 {
		return nil, errors.InvalidArgument("count must be at least 1")
	}

	var removed int
	mutateOutput, err := o.characterRepo.Mutate(ctx, characterrepo.MutateInput{
		ID: input.CharacterID,
		Fn: func(c *anima.Character) error {
			if err := o.authorize(input.Actor, c); err != nil {
				return err
			}
			inv, n := anima.RemoveUnits(c.Inventory, input.ItemKey, input.Count)
			if n == 0 {
				return errors.NotFoundf("item %s not in inventory", input.ItemKey)
			}
			c.Inventory = inv
			removed = n
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return &RemoveItemUnitsOutput{
		Character: mutateOutput.Character,
		Removed:   removed,
	}, nil
}

// AggregateInventory builds the grouped inventory view. Catalog
// references are resolved through the item repository to classify
// stackable varie entries.
func (o *orchestrator) AggregateInventory(ctx context.Context, input *AggregateInventoryInput) (*AggregateInventoryOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	getOutput, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
	if err != nil {
		return nil, err
	}

	typeCache := make(map[string]string)
	typeOf := func(itemID string) string {
		if t, ok := typeCache[itemID]; ok {
			return t
		}
		itemOutput, err := o.itemRepo.Get(ctx, itemrepo.GetInput{ID: itemID})
		if err != nil {
			// Unknown catalog references aggregate as untyped singles.
			typeCache[itemID] = ""
			return ""
		}
		typeCache[itemID] = itemOutput.Item.Type
		return itemOutput.Item.Type
	}

	return &AggregateInventoryOutput{
		Lines: anima.Aggregate(getOutput.Character.Inventory, typeOf),
	}, nil
}

// AdjustGold shifts the character's gold by delta with a floor of 0
func (o *orchestrator) AdjustGold(ctx context.Context, input *AdjustGoldInput) (*AdjustGoldOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}
	if input.Delta == 0 {
		return nil, errors.InvalidArgument("delta cannot be zero")
	}

	var gold int
	mutateOutput, err := o.characterRepo.Mutate(ctx, characterrepo.MutateInput{
		ID: input.CharacterID,
		Fn: func(c *anima.Character) error {
			if err := o.authorize(input.Actor, c); err != nil {
				return err
			}
			c.Stats.Gold += input.Delta
			if c.Stats.Gold < 0 {
				c.Stats.Gold = 0
			}
			gold = c.Stats.Gold
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Gold adjusted",
		"character_id", input.CharacterID,
		"delta", input.Delta,
		"gold", gold,
	)

	return &AdjustGoldOutput{
		Character: mutateOutput.Character,
		Gold:      gold,
	}, nil
}
