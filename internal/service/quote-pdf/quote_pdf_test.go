package quote_pdf

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toiture-backend/internal/storage"
)

func TestQuoteAmounts(t *testing.T) {
	a := QuoteAmounts(1000)

	assert.Equal(t, "1000.00", a.Subtotal.StringFixed(2))
	assert.Equal(t, "50.00", a.TPS.StringFixed(2))
	assert.Equal(t, "99.75", a.TVQ.StringFixed(2))
	assert.Equal(t, "1149.75", a.Total.StringFixed(2))
}

func TestQuoteAmountsNegativeIsZero(t *testing.T) {
	a := QuoteAmounts(-5)
	assert.True(t, a.Total.IsZero())
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0,00 $"},
		{"99.75", "99,75 $"},
		{"1149.75", "1 149,75 $"},
		{"1234567.891", "1 234 567,89 $"},
		{"-1500", "-1 500,00 $"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMoney(decimal.RequireFromString(tt.in)), tt.in)
	}
}

func TestGenerateQuote(t *testing.T) {
	s := NewQuoteService(Company{Name: "Toitures Laurentides", Phone: "450 555-0142", RBQ: "5678-1234-01"})

	result, err := s.GenerateQuote(Quote{
		Number:         "S-2026-0142",
		Date:           time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
		Client:         storage.Client{Nom: "Gagnon", Adresse: "12 rue Principale", Telephone: "514 555-0100"},
		RoofArea:       245.5,
		ParapetArea:    32.4,
		EffectiveTotal: 8450,
		Scope:          []string{"Réfection complète du toit plat", "  "},
		Notes:          "Accès par la ruelle.",
	})
	require.NoError(t, err)

	require.Greater(t, len(result), 4)
	assert.Equal(t, "%PDF-", string(result[:5]))
}

func TestGenerateQuoteDefaults(t *testing.T) {
	s := NewQuoteService(Company{})

	result, err := s.GenerateQuote(Quote{})
	require.NoError(t, err)
	assert.NotEmpty(t, result)
}

func TestScopeLinesFallsBackToDefault(t *testing.T) {
	assert.Equal(t, defaultScope, scopeLines(Quote{Scope: []string{"", " "}}))
	assert.Equal(t, []bilingual{{FR: "Drain neuf"}}, scopeLines(Quote{Scope: []string{"Drain neuf"}}))
}
