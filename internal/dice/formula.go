// Package dice implements dice formula parsing and rolling for soul die
// regeneration, initiative, and generic rolls.
package dice

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/animarpg/anima-api/internal/errors"
)

// Regex for dice notation like "2d6", "1d20+5", "3d8-2"
var notationRegex = regexp.MustCompile(`^(\d+)[dD](\d+)([+-]\d+)?$`)

// Formula is a dice specification: count dice of the given faces plus a
// flat modifier (which may be negative)
type Formula struct {
	Count    int `json:"count"`
	Faces    int `json:"faces"`
	Modifier int `json:"modifier"`
}

// Validate rejects non-positive count or faces. A malformed formula is a
// programming error with validated inputs, so this fails loudly before
// any roll happens.
func (f Formula) Validate() error {
	if f.Count <= 0 {
		return errors.InvalidFormulaf("dice count must be positive, got %d", f.Count)
	}
	if f.Faces <= 0 {
		return errors.InvalidFormulaf("die faces must be positive, got %d", f.Faces)
	}
	return nil
}

// String renders the formula in XdY+Z notation
func (f Formula) String() string {
	switch {
	case f.Modifier > 0:
		return fmt.Sprintf("%dd%d+%d", f.Count, f.Faces, f.Modifier)
	case f.Modifier < 0:
		return fmt.Sprintf("%dd%d%d", f.Count, f.Faces, f.Modifier)
	default:
		return fmt.Sprintf("%dd%d", f.Count, f.Faces)
	}
}

// Parse parses dice notation like "2d6" or "1d20+5" into a Formula
func Parse(notation string) (Formula, error) {
	m := notationRegex.FindStringSubmatch(notation)
	if m == nil {
		return Formula{}, errors.InvalidFormulaf("invalid dice notation: %s (expected format: XdY or XdY+Z)", notation)
	}

	count, err := strconv.Atoi(m[1])
	if err != nil {
		return Formula{}, errors.InvalidFormulaf("invalid dice count in notation: %s", notation)
	}
	faces, err := strconv.Atoi(m[2])
	if err != nil {
		return Formula{}, errors.InvalidFormulaf("invalid die faces in notation: %s", notation)
	}

	modifier := 0
	if m[3] != "" {
		modifier, err = strconv.Atoi(m[3])
		if err != nil {
			return Formula{}, errors.InvalidFormulaf("invalid modifier in notation: %s", notation)
		}
	}

	f := Formula{Count: count, Faces: faces, Modifier: modifier}
	if err := f.Validate(); err != nil {
		return Formula{}, err
	}
	return f, nil
}
