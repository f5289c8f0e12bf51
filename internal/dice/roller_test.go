package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/animarpg/anima-api/internal/dice"
)

// scriptedSource replays fixed draws, then repeats the last one
type scriptedSource struct {
	draws []int
	pos   int
}

func (s *scriptedSource) Intn(n int) int {
	d := s.draws[s.pos]
	if s.pos < len(s.draws)-1 {
		s.pos++
	}
	if d >= n {
		d = n - 1
	}
	return d
}

func TestRollBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		f := dice.Formula{
			Count:    rapid.IntRange(1, 10).Draw(t, "count"),
			Faces:    rapid.IntRange(1, 20).Draw(t, "faces"),
			Modifier: rapid.IntRange(-10, 10).Draw(t, "modifier"),
		}

		result, err := dice.NewRoller().Roll(f)
		if err != nil {
			t.Fatalf("roll failed: %v", err)
		}

		if len(result.Rolls) != f.Count {
			t.Fatalf("expected %d rolls, got %d", f.Count, len(result.Rolls))
		}
		sum := f.Modifier
		for _, r := range result.Rolls {
			if r < 1 || r > f.Faces {
				t.Fatalf("roll %d outside [1, %d]", r, f.Faces)
			}
			sum += r
		}
		if result.Total != sum {
			t.Fatalf("total %d != sum %d", result.Total, sum)
		}
	})
}

func TestRollWithScriptedSource(t *testing.T) {
	// Draws 3, 4, 5 become die faces 4, 5, 6.
	roller := dice.NewRollerWithSource(&scriptedSource{draws: []int{3, 4, 5}})

	result, err := roller.Roll(dice.Formula{Count: 3, Faces: 6, Modifier: 3})
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5, 6}, result.Rolls)
	assert.Equal(t, 18, result.Total)
}

func TestRollValidatesFormula(t *testing.T) {
	_, err := dice.NewRoller().Roll(dice.Formula{Count: 0, Faces: 6})
	require.Error(t, err)
}

func TestPreviewCountAndIndependence(t *testing.T) {
	roller := dice.NewRoller()
	f := dice.Formula{Count: 2, Faces: 6}

	previews, err := roller.Preview(f, 0)
	require.NoError(t, err)
	assert.Len(t, previews, dice.PreviewTicks)

	previews, err = roller.Preview(f, 5)
	require.NoError(t, err)
	assert.Len(t, previews, 5)
	for _, p := range previews {
		assert.Len(t, p.Rolls, 2)
	}
}
