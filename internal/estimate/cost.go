package estimate

import (
	"toiture-backend/internal/constants"
	"toiture-backend/internal/pricing"
)

// CostInput is everything the aggregator needs. Missing values count as 0.
type CostInput struct {
	Quantities    map[constants.Material]int
	Prices        pricing.Table
	Finish        constants.FinishType
	Drain         constants.DrainSize
	Hours         float64
	Headcount     float64
	ProfitPercent float64
}

type Breakdown struct {
	MaterialCost       map[constants.Material]float64 `json:"perMaterialCost"`
	MaterialTotal      float64                        `json:"materialTotal"`
	LaborCost          float64                        `json:"laborCost"`
	AdministrationCost float64                        `json:"administrationCost"`
	SubtotalExAdmin    float64                        `json:"subtotalExAdmin"`
	Subtotal           float64                        `json:"subtotal"`
	Profit             float64                        `json:"profitAmount"`
	Total              float64                        `json:"total"`
}

// Aggregate prices the bill of materials and the crew time.
// Profit applies to the subtotal without administration.
func Aggregate(in CostInput) Breakdown {
	hours := nonNegative(in.Hours)
	headcount := nonNegative(in.Headcount)

	b := Breakdown{MaterialCost: make(map[constants.Material]float64, len(constants.Materials))}
	for _, m := range constants.Materials {
		qty := in.Quantities[m]
		if qty < 0 {
			qty = 0
		}
		unit := nonNegative(in.Prices.Get(pricing.MaterialKey(m, in.Finish, in.Drain)))
		cost := float64(qty) * unit
		b.MaterialCost[m] = cost
		b.MaterialTotal += cost
	}

	b.LaborCost = headcount * hours * nonNegative(in.Prices.Get(pricing.LaborHour))
	b.AdministrationCost = hours * nonNegative(in.Prices.Get(pricing.AdminRate))
	b.SubtotalExAdmin = b.MaterialTotal + b.LaborCost
	b.Subtotal = b.SubtotalExAdmin + b.AdministrationCost
	b.Profit = b.SubtotalExAdmin * finite(in.ProfitPercent) / 100
	b.Total = b.Subtotal + b.Profit

	return b
}
