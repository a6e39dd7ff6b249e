package estimate

import (
	"math"
	"strings"
)

type Complexity string

const (
	Easy    Complexity = "easy"
	Medium  Complexity = "medium"
	Complex Complexity = "complex"
)

// ParseComplexity accepts the english and french names, defaulting to Medium.
func ParseComplexity(s string) Complexity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy", "facile", "simple":
		return Easy
	case "complex", "complexe", "difficile":
		return Complex
	default:
		return Medium
	}
}

type SizeCategory string

const (
	SizeSmall  SizeCategory = "small"
	SizeMedium SizeCategory = "medium"
	SizeLarge  SizeCategory = "large"
)

const (
	smallUpTo  = 1500.0
	mediumUpTo = 3000.0
)

type band struct {
	rate  float64 // кв. футов/ч
	coefs map[Complexity]float64
}

var bands = map[SizeCategory]band{
	SizeSmall:  {rate: 60, coefs: map[Complexity]float64{Easy: 0.81, Medium: 1.025, Complex: 1.4}},
	SizeMedium: {rate: 85, coefs: map[Complexity]float64{Easy: 0.9, Medium: 1.0, Complex: 1.2}},
	SizeLarge:  {rate: 110, coefs: map[Complexity]float64{Easy: 0.75, Medium: 0.9, Complex: 1.1}},
}

// Classify picks the size band of a total area.
func Classify(area float64) SizeCategory {
	switch {
	case area < smallUpTo:
		return SizeSmall
	case area < mediumUpTo:
		return SizeMedium
	default:
		return SizeLarge
	}
}

// LaborEstimate describes how the suggested hours were obtained.
type LaborEstimate struct {
	Hours            float64      `json:"hours"`
	SizeCategory     SizeCategory `json:"sizeCategory"`
	ProductivityRate float64      `json:"productivityRate"`
	Coefficient      float64      `json:"coefficient"`
}

// EstimateLabor suggests labor hours, rounded to one decimal.
func EstimateLabor(area float64, c Complexity) LaborEstimate {
	area = nonNegative(area)
	cat := Classify(area)
	b := bands[cat]

	coef, ok := b.coefs[c]
	if !ok {
		coef = b.coefs[Medium]
	}

	return LaborEstimate{
		Hours:            round1(area / b.rate * coef),
		SizeCategory:     cat,
		ProductivityRate: b.rate,
		Coefficient:      coef,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
