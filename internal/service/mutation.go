package service

import (
	"math"

	"toiture-backend/internal/constants"
	"toiture-backend/internal/estimate"
	"toiture-backend/internal/pricing"
)

// Mutation is one edit from the calculator form. Nil fields are left alone.
// A null quantity hands that material back to the deriver.
type Mutation struct {
	RoofArea      *estimate.Number            `json:"roofArea"`
	ParapetArea   *estimate.Number            `json:"parapetArea"`
	Complexity    *string                     `json:"complexity"`
	FinishType    *string                     `json:"finishType"`
	DrainSize     *string                     `json:"drainSize"`
	Headcount     *estimate.Number            `json:"headcount"`
	ProfitPercent *estimate.Number            `json:"profitPercent"`
	Quantities    map[string]*estimate.Number `json:"quantities"`
	Hours         *estimate.Number            `json:"hours"`
	ResetHours    bool                        `json:"resetHours"`
	UnitPrices    map[string]estimate.Number  `json:"unitPrices"`
	CustomTotal   *estimate.Number            `json:"customTotal"`
}

// apply always follows the same order: geometry, complexity, options, crew, profit,
// quantities, hours, prices, custom total. It returns the price entries that changed.
func (m Mutation) apply(e estimate.Estimate, prices pricing.Table) (estimate.Estimate, pricing.Table, map[pricing.Key]float64) {
	if m.RoofArea != nil || m.ParapetArea != nil {
		g := e.Geometry
		if m.RoofArea != nil {
			g.RoofArea = m.RoofArea.Float()
		}
		if m.ParapetArea != nil {
			g.ParapetArea = m.ParapetArea.Float()
		}
		e = e.SetGeometry(g)
	}

	if m.Complexity != nil {
		e = e.SetComplexity(estimate.ParseComplexity(*m.Complexity))
	}

	if m.FinishType != nil {
		if f := constants.FinishType(*m.FinishType); constants.FinishTypes[f] {
			e.Finish = f
		}
	}
	if m.DrainSize != nil {
		if d := constants.DrainSize(*m.DrainSize); constants.DrainSizes[d] {
			e.Drain = d
		}
	}

	if m.Headcount != nil {
		e.Headcount = math.Max(0, m.Headcount.Float())
	}
	if m.ProfitPercent != nil {
		e.ProfitPercent = m.ProfitPercent.Float()
	}

	for k, v := range m.Quantities {
		mat := constants.Material(k)
		if v == nil {
			e = e.ClearQuantity(mat)
			continue
		}
		e = e.SetQuantity(mat, int(math.Round(v.Float())))
	}

	if m.ResetHours {
		e = e.ClearHours()
	} else if m.Hours != nil {
		e = e.SetHours(m.Hours.Float())
	}

	var changed map[pricing.Key]float64
	if len(m.UnitPrices) > 0 {
		entries := make(map[pricing.Key]float64, len(m.UnitPrices))
		for k, v := range m.UnitPrices {
			entries[pricing.Key(k)] = v.Float()
		}
		next := prices.With(entries)
		for k := range entries {
			if cur, ok := next[k]; ok && cur != prices[k] {
				if changed == nil {
					changed = make(map[pricing.Key]float64)
				}
				changed[k] = cur
			}
		}
		prices = next
	}

	if m.CustomTotal != nil {
		e.CustomTotal = math.Max(0, m.CustomTotal.Float())
	}

	return e, prices, changed
}
