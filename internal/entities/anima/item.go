package anima

// Bracket is a level threshold selecting which tier of an item's effect
// applies. An item's values for a bracket apply from that level until the
// next bracket.
type Bracket int

// Brackets in ascending order
var Brackets = []Bracket{1, 4, 7, 10}

// BracketForLevel returns the largest bracket threshold not exceeding
// level. Levels below 1 resolve to the first bracket.
func BracketForLevel(level int) Bracket {
	active := Brackets[0]
	for _, b := range Brackets {
		if level >= int(b) {
			active = b
		}
	}
	return active
}

// RegenMode selects which pool a consumable regenerates
type RegenMode string

// Regeneration modes
const (
	RegenHP   RegenMode = "hp"
	RegenMana RegenMode = "mana"
)

// Item is read-only catalog reference data for a consumable or piece of
// equipment. Regeneration dice counts are keyed by bracket; a missing key
// means no regeneration at that tier. BonusCreazione is a flat per-die
// bonus applied once per die rolled.
type Item struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	BonusCreazione int             `json:"bonusCreazione,omitempty"`
	RegenHPDice    map[Bracket]int `json:"regenHpDice,omitempty"`
	RegenManaDice  map[Bracket]int `json:"regenManaDice,omitempty"`
}

// RegenDice returns the regeneration dice count for the given mode at the
// given bracket
func (i *Item) RegenDice(mode RegenMode, b Bracket) int {
	switch mode {
	case RegenHP:
		return i.RegenHPDice[b]
	case RegenMana:
		return i.RegenManaDice[b]
	default:
		return 0
	}
}

// Inert reports whether the item has no regeneration dice in either mode
// at the given bracket. Using an inert consumable only consumes it.
func (i *Item) Inert(b Bracket) bool {
	return i.RegenDice(RegenHP, b) == 0 && i.RegenDice(RegenMana, b) == 0
}
