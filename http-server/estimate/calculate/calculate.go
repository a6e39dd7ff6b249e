package calculate

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"toiture-backend/internal/estimate"
	"toiture-backend/internal/pricing"
	"toiture-backend/internal/service"
)

type Calculator interface {
	Calculate(m service.Mutation) (estimate.Estimate, pricing.Table, estimate.Result)
}

type Response struct {
	Estimate   estimate.Estimate `json:"estimate"`
	UnitPrices pricing.Table     `json:"unitPrices"`
	Results    estimate.Result   `json:"results"`
}

// CalculateEstimate prices one form without opening a session. Prices sent here are not persisted.
func CalculateEstimate(log *slog.Logger, calc Calculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.estimate.CalculateEstimate"

		var req service.Mutation
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Données invalides", http.StatusBadRequest)
			return
		}

		e, prices, res := calc.Calculate(req)

		render.JSON(w, r, Response{
			Estimate:   e,
			UnitPrices: prices,
			Results:    res,
		})
	}
}
