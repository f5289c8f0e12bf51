package dice

import (
	"math/rand"
)

// PreviewTicks is the number of throwaway randomized results produced for
// the animated reveal before a roll settles
const PreviewTicks = 20

// Source provides uniform random integers in [0, n). The default source
// is not seeded or reproducible; tests inject a deterministic one.
type Source interface {
	Intn(n int) int
}

type mathRandSource struct{}

func (mathRandSource) Intn(n int) int { return rand.Intn(n) } // #nosec G404 // game dice, not crypto

// Result is the outcome of a single roll
type Result struct {
	Rolls []int `json:"rolls"`
	Total int   `json:"total"`
}

// Roller rolls dice formulas against an injectable random source
type Roller struct {
	src Source
}

// NewRoller creates a roller drawing from the default random source
func NewRoller() *Roller {
	return &Roller{src: mathRandSource{}}
}

// NewRollerWithSource creates a roller drawing from the given source
func NewRollerWithSource(src Source) *Roller {
	return &Roller{src: src}
}

// Roll draws Count independent uniform integers in [1, Faces], sums them,
// and adds Modifier. Each invocation is an independent random draw.
func (r *Roller) Roll(f Formula) (Result, error) {
	if err := f.Validate(); err != nil {
		return Result{}, err
	}

	rolls := make([]int, f.Count)
	total := f.Modifier
	for i := range rolls {
		rolls[i] = r.src.Intn(f.Faces) + 1
		total += rolls[i]
	}
	return Result{Rolls: rolls, Total: total}, nil
}

// Preview produces ticks intermediate randomized results for an animated
// reveal. Previews are throwaway: they are never persisted and the
// committed total always comes from a separate, single call to Roll.
func (r *Roller) Preview(f Formula, ticks int) ([]Result, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if ticks <= 0 {
		ticks = PreviewTicks
	}

	previews := make([]Result, ticks)
	for i := range previews {
		res, err := r.Roll(f)
		if err != nil {
			return nil, err
		}
		previews[i] = res
	}
	return previews, nil
}
