package quote_pdf

import (
	"strings"

	"github.com/shopspring/decimal"

	"toiture-backend/internal/constants"
)

// Amounts are the figures printed in the price table, rounded to the cent.
type Amounts struct {
	Subtotal decimal.Decimal
	TPS      decimal.Decimal
	TVQ      decimal.Decimal
	Total    decimal.Decimal
}

func QuoteAmounts(effectiveTotal float64) Amounts {
	base := decimal.NewFromFloat(effectiveTotal)
	if base.IsNegative() {
		base = decimal.Zero
	}

	return Amounts{
		Subtotal: base.Round(2),
		TPS:      base.Mul(decimal.NewFromFloat(constants.TPSRate)).Round(2),
		TVQ:      base.Mul(decimal.NewFromFloat(constants.TVQRate)).Round(2),
		Total:    base.Mul(decimal.NewFromFloat(constants.TaxMultiplier)).Round(2),
	}
}

// FormatMoney prints d the Québec way: "1 149,75 $".
func FormatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}

	out := b.String() + "," + frac + " $"
	if neg {
		out = "-" + out
	}
	return out
}
