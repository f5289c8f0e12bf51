package testutils

import (
	"github.com/animarpg/anima-api/internal/entities/anima"
)

// NewTestCharacter builds a level 3 character with full pools and a few
// progression points available. Tests mutate the returned value freely.
func NewTestCharacter(id, playerID string) *anima.Character {
	return &anima.Character{
		ID:       id,
		PlayerID: playerID,
		Name:     "Test Character",
		Stats: anima.Stats{
			Level:                 3,
			HPCurrent:             18,
			HPTotal:               20,
			ManaCurrent:           10,
			ManaTotal:             12,
			BasePointsAvailable:   2,
			CombatTokensAvailable: 2,
			Gold:                  50,
		},
		Params: anima.NewParams(),
	}
}

// NewTestConsumable builds a catalog consumable that regenerates HP with
// two soul dice at every bracket and a +1 per-die creation bonus
func NewTestConsumable(id string) *anima.Item {
	return &anima.Item{
		ID:             id,
		Name:           "Pozione Rossa",
		Type:           "consumabile",
		BonusCreazione: 1,
		RegenHPDice: map[anima.Bracket]int{
			1: 2, 4: 2, 7: 3, 10: 3,
		},
	}
}
