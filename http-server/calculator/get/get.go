package get

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"toiture-backend/http-server/calculator"
	"toiture-backend/internal/service"
)

type StateProvider interface {
	State(id string) (service.Snapshot, error)
}

func GetCalculator(log *slog.Logger, provider StateProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calculator.GetCalculator"

		id := calculator.ID(r)

		snap, err := provider.State(id)
		if err != nil {
			code, msg := calculator.Status(err)
			log.Warn("calculator state unavailable", slog.String("op", op), slog.String("id", id), slog.String("error", err.Error()))
			http.Error(w, msg, code)
			return
		}

		render.JSON(w, r, snap)
	}
}
