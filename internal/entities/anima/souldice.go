package anima

import (
	"regexp"
	"strconv"
)

// Soul die fallback when the table is missing or malformed
const defaultSoulDieFaces = 10

var dieNotationRegex = regexp.MustCompile(`^[dD](\d+)$`)

// SoulDice maps character level to the level-dependent "Dado Anima" die
// size used for regeneration and initiative rolls. The table is injected
// configuration (game-design content), indexed directly by level, so
// index 0 is typically unused.
type SoulDice []int

// ParseSoulDice builds a table from die notation strings like "d6", "d8".
// Unparseable entries become 0 and fall through to the table fallback.
func ParseSoulDice(notations []string) SoulDice {
	table := make(SoulDice, len(notations))
	for i, n := range notations {
		if m := dieNotationRegex.FindStringSubmatch(n); m != nil {
			if faces, err := strconv.Atoi(m[1]); err == nil {
				table[i] = faces
			}
		}
	}
	return table
}

// FacesForLevel returns the soul die size for a level. Levels beyond the
// table fall back to the largest defined size; an empty or unmatched
// table falls back to d10.
func (s SoulDice) FacesForLevel(level int) int {
	if level >= 0 && level < len(s) && s[level] > 0 {
		return s[level]
	}
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] > 0 {
			return s[i]
		}
	}
	return defaultSoulDieFaces
}
