package get

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"toiture-backend/internal/pricing"
)

type PriceProvider interface {
	Table() pricing.Table
}

// GetPrices answers with the effective table and the defaults it was built from.
func GetPrices(log *slog.Logger, provider PriceProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table := provider.Table()

		log.Debug("prices requested", slog.Int("overrides", len(pricing.Sparse(table))))

		render.JSON(w, r, map[string]any{
			"prices":    table,
			"defaults":  pricing.Defaults(),
			"overrides": pricing.Sparse(table),
		})
	}
}
