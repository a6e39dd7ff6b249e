package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"toiture-backend/internal/estimate"
	"toiture-backend/internal/pricing"
)

type PriceUpdater interface {
	Update(ctx context.Context, entries map[pricing.Key]float64) (pricing.Table, error)
	Reset(ctx context.Context) (pricing.Table, error)
}

// UpdatePrices applies the known keys of the body. Unknown keys are reported back, not applied.
func UpdatePrices(log *slog.Logger, updater PriceUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.prices.UpdatePrices"

		var req map[string]estimate.Number
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Données invalides", http.StatusBadRequest)
			return
		}

		entries := make(map[pricing.Key]float64, len(req))
		ignored := []string{}
		for k, v := range req {
			key := pricing.Key(k)
			if !pricing.IsKey(key) {
				ignored = append(ignored, k)
				continue
			}
			entries[key] = v.Float()
		}
		if len(entries) == 0 {
			http.Error(w, "Aucun prix reconnu", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		table, err := updater.Update(ctx, entries)
		if err != nil {
			log.Error("failed to update prices", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Échec de l'enregistrement des prix", http.StatusInternalServerError)
			return
		}

		log.Info("prices updated", slog.Int("entries", len(entries)))

		render.JSON(w, r, map[string]any{
			"prices":  table,
			"ignored": ignored,
		})
	}
}

func ResetPrices(log *slog.Logger, updater PriceUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.prices.ResetPrices"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		table, err := updater.Reset(ctx)
		if err != nil {
			log.Error("failed to reset prices", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Échec de la réinitialisation des prix", http.StatusInternalServerError)
			return
		}

		log.Info("prices reset to defaults")

		render.JSON(w, r, map[string]any{"prices": table})
	}
}
