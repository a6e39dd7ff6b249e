package storage

import (
	"time"

	"toiture-backend/internal/estimate"
)

type Client struct {
	Nom       string `json:"nom" firestore:"nom"`
	Adresse   string `json:"adresse" firestore:"adresse"`
	Telephone string `json:"telephone" firestore:"telephone"`
}

// Superficie: площади в кв. футах.
type Superficie struct {
	Totale   float64 `json:"totale" firestore:"totale"`
	Parapets float64 `json:"parapets" firestore:"parapets"`
}

type Toiture struct {
	Superficie Superficie `json:"superficie" firestore:"superficie"`
}

type Submission struct {
	ID         string             `json:"id" firestore:"-"`
	Client     Client             `json:"client" firestore:"client"`
	Toiture    Toiture            `json:"toiture" firestore:"toiture"`
	Materiaux  map[string]float64 `json:"materiaux" firestore:"materiaux"`
	Status     string             `json:"status" firestore:"status"`
	CreatedAt  time.Time          `json:"createdAt" firestore:"createdAt"`
	PhotoCount int                `json:"photoCount" firestore:"photoCount"`
	Calculs    *Calculs           `json:"calculs,omitempty" firestore:"calculs,omitempty"`
}

// Calculs: результат калькулятора, сохраняемый вместе с заявкой.
type Calculs struct {
	Results          estimate.Result   `json:"results" firestore:"results"`
	CustomSubmission *estimate.Summary `json:"customSubmission,omitempty" firestore:"customSubmission,omitempty"`
	SavedAt          time.Time         `json:"savedAt" firestore:"savedAt"`
}

// SubmissionPatch: частичное обновление, nil поля не трогаем.
type SubmissionPatch struct {
	Status  *string  `json:"status,omitempty"`
	Calculs *Calculs `json:"calculs,omitempty"`
}

func (p SubmissionPatch) Empty() bool {
	return p.Status == nil && p.Calculs == nil
}

// Apply returns s with the patch laid over it.
func (p SubmissionPatch) Apply(s Submission) Submission {
	if p.Status != nil {
		s.Status = *p.Status
	}
	if p.Calculs != nil {
		c := *p.Calculs
		s.Calculs = &c
	}
	return s
}
