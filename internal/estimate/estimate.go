// Package estimate derives quantities, labor hours and costs of a flat roof job.
package estimate

import (
	"toiture-backend/internal/constants"
	"toiture-backend/internal/pricing"
)

const (
	DefaultHeadcount     = 2
	DefaultProfitPercent = 15
)

// Estimate is the editable state of one calculation.
type Estimate struct {
	Geometry      Geometry                           `json:"geometry"`
	Complexity    Complexity                         `json:"complexity"`
	Finish        constants.FinishType               `json:"finishType"`
	Drain         constants.DrainSize                `json:"drainSize"`
	Headcount     float64                            `json:"headcount"`
	ProfitPercent float64                            `json:"profitPercent"`
	CustomTotal   float64                            `json:"customTotal"`
	Quantities    map[constants.Material]Tagged[int] `json:"quantities"`
	Hours         Tagged[float64]                    `json:"hours"`
}

// Result is everything derived from an Estimate.
type Result struct {
	Quantities map[constants.Material]int `json:"quantities"`
	TotalArea  float64                    `json:"totalArea"`
	Labor      LaborEstimate              `json:"labor"`
	Hours      float64                    `json:"hours"`
	Breakdown  Breakdown                  `json:"breakdown"`
	Summary    Summary                    `json:"summary"`
}

// New returns an empty estimate with every field derived.
func New() Estimate {
	e := Estimate{
		Complexity:    Medium,
		Finish:        constants.FinishGranule,
		Drain:         constants.Drain3in,
		Headcount:     DefaultHeadcount,
		ProfitPercent: DefaultProfitPercent,
		Quantities:    make(map[constants.Material]Tagged[int], len(constants.Materials)),
		Hours:         DerivedValue(0.0),
	}
	for _, m := range constants.Materials {
		e.Quantities[m] = DerivedValue(0)
	}
	return e
}

func (e Estimate) clone() Estimate {
	q := make(map[constants.Material]Tagged[int], len(e.Quantities))
	for k, v := range e.Quantities {
		q[k] = v
	}
	e.Quantities = q
	return e
}

// SetGeometry replaces the areas. A real change retags quantities and hours as derived.
func (e Estimate) SetGeometry(g Geometry) Estimate {
	g = g.Normalize()
	if g == e.Geometry.Normalize() {
		return e
	}
	e = e.clone()
	e.Geometry = g
	for m := range constants.AreaDerived {
		e.Quantities[m] = DerivedValue(e.Quantities[m].Value)
	}
	e.Hours = DerivedValue(e.Hours.Value)
	return e
}

// SetComplexity changes the difficulty. A real change retags hours as derived.
func (e Estimate) SetComplexity(c Complexity) Estimate {
	if c == e.Complexity {
		return e
	}
	e.Complexity = c
	e.Hours = DerivedValue(e.Hours.Value)
	return e
}

// SetQuantity records a user-entered count. Unknown materials are ignored.
func (e Estimate) SetQuantity(m constants.Material, n int) Estimate {
	if !constants.IsMaterial(m) {
		return e
	}
	if n < 0 {
		n = 0
	}
	e = e.clone()
	e.Quantities[m] = ManualValue(n)
	return e
}

// ClearQuantity hands the count back to the deriver.
func (e Estimate) ClearQuantity(m constants.Material) Estimate {
	if !constants.IsMaterial(m) {
		return e
	}
	e = e.clone()
	e.Quantities[m] = DerivedValue(e.Quantities[m].Value)
	return e
}

// SetHours records user-entered labor hours.
func (e Estimate) SetHours(h float64) Estimate {
	e.Hours = ManualValue(nonNegative(h))
	return e
}

func (e Estimate) ClearHours() Estimate {
	e.Hours = DerivedValue(e.Hours.Value)
	return e
}

// Recompute runs quantities, labor, cost and override in that order.
// Derived fields of the returned estimate are refreshed, manual ones are kept.
func Recompute(e Estimate, prices pricing.Table) (Estimate, Result) {
	e = e.clone()
	e.Geometry = e.Geometry.Normalize()
	if !validComplexity(e.Complexity) {
		e.Complexity = Medium
	}
	if !constants.FinishTypes[e.Finish] {
		e.Finish = constants.FinishGranule
	}
	if !constants.DrainSizes[e.Drain] {
		e.Drain = constants.Drain3in
	}

	derived := DeriveQuantities(e.Geometry)
	quantities := make(map[constants.Material]int, len(constants.Materials))
	for _, m := range constants.Materials {
		t, ok := e.Quantities[m]
		if !ok {
			t = DerivedValue(0)
		}
		if constants.AreaDerived[m] {
			t = t.Refresh(derived[m])
		}
		e.Quantities[m] = t
		quantities[m] = t.Value
	}

	area := e.Geometry.TotalArea()
	labor := EstimateLabor(area, e.Complexity)
	e.Hours = e.Hours.Refresh(labor.Hours)

	breakdown := Aggregate(CostInput{
		Quantities:    quantities,
		Prices:        prices,
		Finish:        e.Finish,
		Drain:         e.Drain,
		Hours:         e.Hours.Value,
		Headcount:     e.Headcount,
		ProfitPercent: e.ProfitPercent,
	})

	return e, Result{
		Quantities: quantities,
		TotalArea:  area,
		Labor:      labor,
		Hours:      e.Hours.Value,
		Breakdown:  breakdown,
		Summary:    ApplyOverride(breakdown, e.Hours.Value, area, e.CustomTotal),
	}
}

func validComplexity(c Complexity) bool {
	switch c {
	case Easy, Medium, Complex:
		return true
	}
	return false
}
