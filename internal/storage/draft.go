package storage

import (
	"time"

	"toiture-backend/internal/constants"
	"toiture-backend/internal/estimate"
	"toiture-backend/internal/pricing"
)

const draftKeyPrefix = "calculatorDraft"

// DraftKey returns the storage key of the draft for a submission, "" is the blank calculator.
func DraftKey(submissionID string) string {
	if submissionID == "" {
		return draftKeyPrefix
	}
	return draftKeyPrefix + ":" + submissionID
}

type DraftForm struct {
	Geometry      estimate.Geometry    `json:"geometry"`
	Complexity    estimate.Complexity  `json:"complexity"`
	Finish        constants.FinishType `json:"finishType"`
	Drain         constants.DrainSize  `json:"drainSize"`
	ProfitPercent float64              `json:"profitPercent"`
}

type DraftLabor struct {
	Hours     estimate.Tagged[float64] `json:"hours"`
	Headcount float64                  `json:"headcount"`
}

// Prefill: данные заявки, из которых был заполнен калькулятор.
type Prefill struct {
	SubmissionID string             `json:"submissionId"`
	Client       Client             `json:"client"`
	Superficie   Superficie         `json:"superficie"`
	Materiaux    map[string]float64 `json:"materiaux,omitempty"`
}

type Draft struct {
	Key           string                                      `json:"-"`
	FormData      DraftForm                                   `json:"formData"`
	Quantities    map[constants.Material]estimate.Tagged[int] `json:"quantities"`
	UnitPrices    map[string]float64                          `json:"unitPrices"`
	MainOeuvre    DraftLabor                                  `json:"mainOeuvre"`
	Results       estimate.Result                             `json:"results"`
	CustomTotal   float64                                     `json:"customTotal"`
	SavedAt       time.Time                                   `json:"savedAt"`
	PrefilledData *Prefill                                    `json:"prefilledData,omitempty"`
}

// NewDraft snapshots a calculator state. Only prices that differ from the defaults are kept.
func NewDraft(key string, e estimate.Estimate, prices pricing.Table, res estimate.Result, seed *Prefill, now time.Time) Draft {
	q := make(map[constants.Material]estimate.Tagged[int], len(e.Quantities))
	for k, v := range e.Quantities {
		q[k] = v
	}

	return Draft{
		Key: key,
		FormData: DraftForm{
			Geometry:      e.Geometry,
			Complexity:    e.Complexity,
			Finish:        e.Finish,
			Drain:         e.Drain,
			ProfitPercent: e.ProfitPercent,
		},
		Quantities:    q,
		UnitPrices:    pricing.ToStrings(pricing.Sparse(prices)),
		MainOeuvre:    DraftLabor{Hours: e.Hours, Headcount: e.Headcount},
		Results:       res,
		CustomTotal:   e.CustomTotal,
		SavedAt:       now.UTC(),
		PrefilledData: seed,
	}
}

// Estimate rebuilds the editable state stored in the draft.
func (d Draft) Estimate() estimate.Estimate {
	e := estimate.New()
	e.Geometry = d.FormData.Geometry
	e.Complexity = d.FormData.Complexity
	e.Finish = d.FormData.Finish
	e.Drain = d.FormData.Drain
	e.ProfitPercent = d.FormData.ProfitPercent
	e.Headcount = d.MainOeuvre.Headcount
	e.Hours = d.MainOeuvre.Hours
	e.CustomTotal = d.CustomTotal
	for k, v := range d.Quantities {
		if constants.IsMaterial(k) {
			e.Quantities[k] = v
		}
	}
	return e
}

// Prices lays the draft's price overrides over the defaults.
func (d Draft) Prices() pricing.Table {
	return pricing.Merge(pricing.FromStrings(d.UnitPrices))
}
