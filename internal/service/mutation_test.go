package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toiture-backend/internal/constants"
	"toiture-backend/internal/estimate"
	"toiture-backend/internal/pricing"
)

func TestMutationDecodesFormInput(t *testing.T) {
	body := `{
		"roofArea": "245,5",
		"parapetArea": 32.4,
		"complexity": "Complexe",
		"finishType": "white",
		"drainSize": "12in",
		"headcount": "-2",
		"quantities": {"vent": "3", "baseSheet": null},
		"hours": "abc",
		"customTotal": "-100"
	}`

	var m Mutation
	require.NoError(t, json.Unmarshal([]byte(body), &m))

	base := estimate.New().SetQuantity(constants.BaseSheet, 50)
	e, prices, changed := m.apply(base, pricing.Defaults())

	assert.Equal(t, estimate.Geometry{RoofArea: 245.5, ParapetArea: 32.4}, e.Geometry)
	assert.Equal(t, estimate.Complex, e.Complexity)
	assert.Equal(t, constants.FinishWhite, e.Finish)
	assert.Equal(t, constants.Drain3in, e.Drain)
	assert.Zero(t, e.Headcount)
	assert.Equal(t, estimate.ManualValue(3), e.Quantities[constants.Vent])
	assert.Equal(t, estimate.Derived, e.Quantities[constants.BaseSheet].Source)
	assert.Equal(t, estimate.ManualValue(0.0), e.Hours)
	assert.Zero(t, e.CustomTotal)
	assert.Equal(t, pricing.Defaults(), prices)
	assert.Nil(t, changed)
}

func TestMutationResetHoursWins(t *testing.T) {
	hours := estimate.Number(8)
	e, _, _ := Mutation{Hours: &hours, ResetHours: true}.apply(estimate.New().SetHours(3), pricing.Defaults())

	assert.Equal(t, estimate.Derived, e.Hours.Source)
}

func TestMutationReportsChangedPrices(t *testing.T) {
	m := Mutation{UnitPrices: map[string]estimate.Number{"vent": 64, "primer": 90}}

	_, prices, changed := m.apply(estimate.New(), pricing.Defaults())

	assert.Equal(t, map[pricing.Key]float64{pricing.Primer: 90}, changed)
	assert.Equal(t, 90.0, prices[pricing.Primer])
}
