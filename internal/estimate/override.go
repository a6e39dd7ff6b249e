package estimate

import (
	"math"

	"toiture-backend/internal/constants"
)

// Summary is the figure shown to the client, with or without a custom total.
type Summary struct {
	OverrideActive   bool    `json:"overrideActive"`
	ComputedTotal    float64 `json:"computedTotal"`
	EffectiveTotal   float64 `json:"effectiveTotal"`
	ProfitDifference float64 `json:"profitDifference"`
	ProfitTotal      float64 `json:"profitTotal"`
	ProfitPercent    float64 `json:"profitPercent"`
	TPS              float64 `json:"tps"`
	TVQ              float64 `json:"tvq"`
	TotalWithTaxes   float64 `json:"totalWithTaxes"`
	PricePerArea     float64 `json:"pricePerArea"`
	WorkDays         float64 `json:"workDays"`
	ProfitPerDay     float64 `json:"profitPerDay"`
}

// ApplyOverride reconciles a negotiated total with the computed breakdown.
// customTotal <= 0 means no override.
func ApplyOverride(b Breakdown, hours, totalArea, customTotal float64) Summary {
	s := Summary{
		ComputedTotal:  b.Total,
		EffectiveTotal: b.Total,
		ProfitTotal:    b.Profit,
	}

	if custom := finite(customTotal); custom > 0 {
		s.OverrideActive = true
		s.EffectiveTotal = custom
		s.ProfitDifference = custom - b.Total
		s.ProfitTotal = b.Profit + s.ProfitDifference
	}

	if b.SubtotalExAdmin > 0 {
		s.ProfitPercent = s.ProfitTotal / b.SubtotalExAdmin * 100
	}

	s.TPS = s.EffectiveTotal * constants.TPSRate
	s.TVQ = s.EffectiveTotal * constants.TVQRate
	s.TotalWithTaxes = s.EffectiveTotal * constants.TaxMultiplier

	s.PricePerArea = s.EffectiveTotal / math.Max(nonNegative(totalArea), 1)
	s.WorkDays = nonNegative(hours) / constants.HoursPerWorkDay
	s.ProfitPerDay = s.ProfitTotal / math.Max(1, s.WorkDays)

	return s
}
