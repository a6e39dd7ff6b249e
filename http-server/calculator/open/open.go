package open

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"toiture-backend/http-server/calculator"
	"toiture-backend/internal/service"
)

type Opener interface {
	Open(ctx context.Context, id string) (service.Snapshot, error)
	Reset(ctx context.Context, id string) (service.Snapshot, error)
}

// OpenCalculator starts a session, restoring the draft when one exists.
func OpenCalculator(log *slog.Logger, opener Opener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calculator.OpenCalculator"

		id := calculator.ID(r)

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		snap, err := opener.Open(ctx, id)
		if err != nil {
			code, msg := calculator.Status(err)
			log.Error("failed to open calculator", slog.String("op", op), slog.String("id", id), slog.String("error", err.Error()))
			http.Error(w, msg, code)
			return
		}

		render.JSON(w, r, snap)
	}
}

func ResetCalculator(log *slog.Logger, opener Opener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calculator.ResetCalculator"

		id := calculator.ID(r)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		snap, err := opener.Reset(ctx, id)
		if err != nil {
			code, msg := calculator.Status(err)
			log.Error("failed to reset calculator", slog.String("op", op), slog.String("id", id), slog.String("error", err.Error()))
			http.Error(w, msg, code)
			return
		}

		log.Info("calculator reset", slog.String("id", id))

		render.JSON(w, r, snap)
	}
}
