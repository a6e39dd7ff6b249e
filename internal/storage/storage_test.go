package storage

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toiture-backend/internal/constants"
	"toiture-backend/internal/estimate"
	"toiture-backend/internal/pricing"
)

func TestDraftKey(t *testing.T) {
	assert.Equal(t, "calculatorDraft", DraftKey(""))
	assert.Equal(t, "calculatorDraft:abc", DraftKey("abc"))
}

func TestDraftRestoresEstimate(t *testing.T) {
	prices := pricing.Defaults()
	prices[pricing.LaborHour] = 72

	e := estimate.New().
		SetGeometry(estimate.Geometry{RoofArea: 900, ParapetArea: 80}).
		SetComplexity(estimate.Complex).
		SetQuantity(constants.Vent, 4).
		SetHours(22)
	e.CustomTotal = 15000
	e, res := estimate.Recompute(e, prices)

	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	d := NewDraft(DraftKey("s1"), e, prices, res, &Prefill{SubmissionID: "s1"}, now)

	b, err := json.Marshal(d)
	require.NoError(t, err)

	var back Draft
	require.NoError(t, json.Unmarshal(b, &back))

	assert.Equal(t, e, back.Estimate())
	assert.Equal(t, prices, back.Prices())
	assert.Equal(t, map[string]float64{"laborHour": 72}, back.UnitPrices)
	assert.True(t, now.Equal(back.SavedAt))
	assert.Equal(t, "s1", back.PrefilledData.SubmissionID)
}

func TestSubmissionPatch(t *testing.T) {
	s := Submission{ID: "x", Status: constants.StatusNew}

	assert.True(t, SubmissionPatch{}.Empty())
	assert.Equal(t, s, SubmissionPatch{}.Apply(s))

	status := constants.StatusQuoted
	c := &Calculs{SavedAt: time.Unix(100, 0)}
	got := SubmissionPatch{Status: &status, Calculs: c}.Apply(s)

	assert.Equal(t, constants.StatusQuoted, got.Status)
	require.NotNil(t, got.Calculs)
	assert.Equal(t, c.SavedAt, got.Calculs.SavedAt)
}
