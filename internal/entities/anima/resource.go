package anima

// Pool tracks a current-vs-total resource (HP or Mana). Current may
// temporarily exceed Total to represent buffs; the excess renders as an
// overflow segment in the UI, which is a presentation concern only.
type Pool struct {
	Current int
	Total   int
}

// Apply adds delta to Current with a floor of 0 and no upper clamp.
// Player-driven adjustments are allowed to overflow past Total.
func (p Pool) Apply(delta int) Pool {
	p.Current += delta
	if p.Current < 0 {
		p.Current = 0
	}
	return p
}

// ResetToFull sets Current back to Total, discarding any overflow
func (p Pool) ResetToFull() Pool {
	p.Current = p.Total
	return p
}

// Overflow returns the amount Current exceeds Total by, if any
func (p Pool) Overflow() int {
	if p.Current > p.Total {
		return p.Current - p.Total
	}
	return 0
}

// CapGain applies a regeneration gain capped at total. Unlike Apply,
// consumable-driven regeneration never overflows: overflow is reserved
// for explicit buff effects. A zero or missing total disables the cap.
func CapGain(current, gain, total int) int {
	next := current + gain
	if total > 0 && next > total {
		return total
	}
	return next
}
