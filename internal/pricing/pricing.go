// Package pricing holds the unit price table used by the estimation pipeline.
package pricing

import (
	"math"

	"toiture-backend/internal/constants"
)

// Key identifies a unit price. Materials with sub-types carry one key per variant.
type Key string

const (
	BaseSheet             Key = "baseSheet"
	FinishMembraneGranule Key = "finishMembrane.granule"
	FinishMembraneWhite   Key = "finishMembrane.white"
	ProtectionBoard       Key = "protectionBoard"
	FlashingBond          Key = "flashingBond"
	Sealant               Key = "sealant"
	Primer                Key = "primer"
	Drain3in              Key = "drain.3in"
	Drain4in              Key = "drain.4in"
	Vent                  Key = "vent"
	MetalFlashing         Key = "metalFlashing"
	LaborHour             Key = "laborHour"
	AdminRate             Key = "adminRate"
)

// Table maps every key to a unit price.
type Table map[Key]float64

var defaults = Table{
	BaseSheet:             95.00,
	FinishMembraneGranule: 118.00,
	FinishMembraneWhite:   139.00,
	ProtectionBoard:       28.50,
	FlashingBond:          104.00,
	Sealant:               12.75,
	Primer:                86.00,
	Drain3in:              145.00,
	Drain4in:              168.00,
	Vent:                  64.00,
	MetalFlashing:         9.75,
	LaborHour:             65.00,
	AdminRate:             15.00,
}

// Defaults returns a copy of the built-in table.
func Defaults() Table {
	t := make(Table, len(defaults))
	for k, v := range defaults {
		t[k] = v
	}
	return t
}

// IsKey reports whether k belongs to the built-in table.
func IsKey(k Key) bool {
	_, ok := defaults[k]
	return ok
}

// Merge lays a sparse override set over the defaults.
// Unknown keys, negative values and NaN are ignored.
func Merge(overrides map[Key]float64) Table {
	return Defaults().With(overrides)
}

// With returns a copy of t with the valid entries applied.
func (t Table) With(entries map[Key]float64) Table {
	c := t.Clone()
	for k, v := range entries {
		if !IsKey(k) || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		c[k] = v
	}
	return c
}

// Sparse returns only the entries of t that differ from the defaults.
func Sparse(t Table) map[Key]float64 {
	out := make(map[Key]float64)
	for k, v := range t {
		if d, ok := defaults[k]; ok && d != v {
			out[k] = v
		}
	}
	return out
}

// Get returns the price for k, 0 when absent.
func (t Table) Get(k Key) float64 {
	return t[k]
}

// Clone returns an independent copy.
func (t Table) Clone() Table {
	c := make(Table, len(t))
	for k, v := range t {
		c[k] = v
	}
	return c
}

// MaterialKey selects the price key of a material, resolving its variant.
func MaterialKey(m constants.Material, finish constants.FinishType, drain constants.DrainSize) Key {
	switch m {
	case constants.FinishMembrane:
		if finish == constants.FinishWhite {
			return FinishMembraneWhite
		}
		return FinishMembraneGranule
	case constants.Drain:
		if drain == constants.Drain4in {
			return Drain4in
		}
		return Drain3in
	default:
		return Key(m)
	}
}

// FromStrings converts a persisted string-keyed map into overrides.
func FromStrings(in map[string]float64) map[Key]float64 {
	out := make(map[Key]float64, len(in))
	for k, v := range in {
		out[Key(k)] = v
	}
	return out
}

// ToStrings is the inverse of FromStrings.
func ToStrings(in map[Key]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[string(k)] = v
	}
	return out
}
