package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"toiture-backend/http-server/calculator"
	"toiture-backend/internal/service"
)

type Mutator interface {
	Apply(ctx context.Context, id string, m service.Mutation) (service.Snapshot, error)
}

// UpdateCalculator applies one form edit and answers with the recomputed state.
func UpdateCalculator(log *slog.Logger, mutator Mutator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calculator.UpdateCalculator"

		id := calculator.ID(r)

		var req service.Mutation
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Données invalides", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		snap, err := mutator.Apply(ctx, id, req)
		if err != nil {
			code, msg := calculator.Status(err)
			log.Error("failed to apply calculator edit", slog.String("op", op), slog.String("id", id), slog.String("error", err.Error()))
			http.Error(w, msg, code)
			return
		}

		render.JSON(w, r, snap)
	}
}
