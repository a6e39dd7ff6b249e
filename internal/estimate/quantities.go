package estimate

import (
	"math"

	"toiture-backend/internal/constants"
)

// Geometry holds the measured areas in square feet.
type Geometry struct {
	RoofArea    float64 `json:"roofArea"`
	ParapetArea float64 `json:"parapetArea"`
}

// Normalize clamps invalid or negative areas to 0.
func (g Geometry) Normalize() Geometry {
	return Geometry{
		RoofArea:    nonNegative(g.RoofArea),
		ParapetArea: nonNegative(g.ParapetArea),
	}
}

func (g Geometry) TotalArea() float64 {
	n := g.Normalize()
	return n.RoofArea + n.ParapetArea
}

type areaBasis int

const (
	basisRoof areaBasis = iota
	basisRoofAndParapet
	basisParapet
)

type coverage struct {
	basis areaBasis
	unit  float64 // кв. футов на единицу
	waste float64
}

var coverages = map[constants.Material]coverage{
	constants.BaseSheet:       {basis: basisRoof, unit: 140, waste: 1.10},
	constants.FinishMembrane:  {basis: basisRoofAndParapet, unit: 78, waste: 1.10},
	constants.ProtectionBoard: {basis: basisRoof, unit: 32, waste: 1.10},
	constants.FlashingBond:    {basis: basisParapet, unit: 98, waste: 1.15},
}

func (c coverage) area(g Geometry) float64 {
	switch c.basis {
	case basisRoofAndParapet:
		return g.RoofArea + g.ParapetArea
	case basisParapet:
		return g.ParapetArea
	default:
		return g.RoofArea
	}
}

func (c coverage) count(g Geometry) int {
	a := c.area(g)
	if a <= 0 {
		return 0
	}
	return int(math.Ceil(a / c.unit * c.waste))
}

// DeriveQuantities returns the unit count of every area-derived material.
func DeriveQuantities(g Geometry) map[constants.Material]int {
	g = g.Normalize()
	out := make(map[constants.Material]int, len(coverages))
	for m, c := range coverages {
		out[m] = c.count(g)
	}
	return out
}
