// Package anima implements the Anima character entities.
// These are data structs plus the arithmetic rules that keep them
// consistent (stat totals, point ledgers, resource pools). Persistence
// and coordination live in the repositories and orchestrators.
package anima

import (
	"github.com/animarpg/anima-api/internal/errors"
)

// StatGroup identifies which point ledger a stat draws from
type StatGroup string

// Stat groups
const (
	GroupBase   StatGroup = "base"
	GroupCombat StatGroup = "combat"
)

// BaseStat names, the closed set of Parametri.Base keys
type BaseStat string

// Base stats
const (
	StatFortuna      BaseStat = "Fortuna"
	StatDestrezza    BaseStat = "Destrezza"
	StatCostituzione BaseStat = "Costituzione"
	StatIntelligenza BaseStat = "Intelligenza"
	StatSaggezza     BaseStat = "Saggezza"
	StatForza        BaseStat = "Forza"
)

// BaseStats lists every base stat in display order
var BaseStats = []BaseStat{
	StatFortuna,
	StatDestrezza,
	StatCostituzione,
	StatIntelligenza,
	StatSaggezza,
	StatForza,
}

// CombatStat names, the closed set of Parametri.Combattimento keys
type CombatStat string

// Combat stats
const (
	StatAttacco        CombatStat = "Attacco"
	StatDifesa         CombatStat = "Difesa"
	StatSalute         CombatStat = "Salute"
	StatCritico        CombatStat = "Critico"
	StatRiduzioneDanni CombatStat = "RiduzioneDanni"
	StatDisciplina     CombatStat = "Disciplina"
	StatMira           CombatStat = "Mira"
)

// CombatStats lists every combat stat in display order
var CombatStats = []CombatStat{
	StatAttacco,
	StatDifesa,
	StatSalute,
	StatCritico,
	StatRiduzioneDanni,
	StatDisciplina,
	StatMira,
}

// Column identifies one mutable column of a stat record
type Column string

// Stat record columns. Tot is derived and never set directly.
const (
	ColumnBase  Column = "Base"
	ColumnAnima Column = "Anima"
	ColumnEquip Column = "Equip"
	ColumnMod   Column = "Mod"
)

// StatRecord holds the five components of a derived stat. Base-group
// records use Anima for the passive per-level bonus, combat-group records
// use Equip for the equipment bonus; the unused column stays zero.
// Tot is always Base + Anima + Equip + Mod and is recomputed after every
// column mutation.
type StatRecord struct {
	Base  int `json:"Base"`
	Anima int `json:"Anima"`
	Equip int `json:"Equip"`
	Mod   int `json:"Mod"`
	Tot   int `json:"Tot"`
}

// Recompute rederives Tot from the other columns
func (r *StatRecord) Recompute() {
	r.Tot = r.Base + r.Anima + r.Equip + r.Mod
}

// IncrementColumn adds 1 to the given column and recomputes Tot
func (r *StatRecord) IncrementColumn(col Column) error {
	return r.adjustColumn(col, 1)
}

// DecrementColumn subtracts 1 from the given column and recomputes Tot.
// The Base column has a floor of 0; Mod may go negative to represent
// penalties.
func (r *StatRecord) DecrementColumn(col Column) error {
	return r.adjustColumn(col, -1)
}

func (r *StatRecord) adjustColumn(col Column, delta int) error {
	switch col {
	case ColumnBase:
		if r.Base+delta < 0 {
			return errors.AtFloor("stat base is already at 0")
		}
		r.Base += delta
	case ColumnAnima:
		r.Anima += delta
	case ColumnEquip:
		r.Equip += delta
	case ColumnMod:
		r.Mod += delta
	default:
		return errors.InvalidArgumentf("unknown stat column: %s", col)
	}
	r.Recompute()
	return nil
}

// Params holds the full stat tables for a character, keyed by the closed
// stat name enumerations
type Params struct {
	Base   map[BaseStat]*StatRecord   `json:"Base"`
	Combat map[CombatStat]*StatRecord `json:"Combattimento"`
}

// NewParams creates zeroed stat tables with every known stat present
func NewParams() Params {
	p := Params{
		Base:   make(map[BaseStat]*StatRecord, len(BaseStats)),
		Combat: make(map[CombatStat]*StatRecord, len(CombatStats)),
	}
	for _, s := range BaseStats {
		p.Base[s] = &StatRecord{}
	}
	for _, s := range CombatStats {
		p.Combat[s] = &StatRecord{}
	}
	return p
}

// Record resolves a stat record by group and name. Unknown names are
// rejected so stringly-typed API input cannot create stats.
func (p *Params) Record(group StatGroup, name string) (*StatRecord, error) {
	switch group {
	case GroupBase:
		if r, ok := p.Base[BaseStat(name)]; ok {
			return r, nil
		}
		return nil, errors.InvalidArgumentf("unknown base stat: %s", name)
	case GroupCombat:
		if r, ok := p.Combat[CombatStat(name)]; ok {
			return r, nil
		}
		return nil, errors.InvalidArgumentf("unknown combat stat: %s", name)
	default:
		return nil, errors.InvalidArgumentf("unknown stat group: %s", group)
	}
}
