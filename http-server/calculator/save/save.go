package save

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"toiture-backend/http-server/calculator"
	"toiture-backend/internal/storage"
)

type Saver interface {
	Save(ctx context.Context, id string) (storage.Calculs, error)
	Close(id string) error
}

// SaveCalculator writes the results into the submission and marks it quoted.
func SaveCalculator(log *slog.Logger, saver Saver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calculator.SaveCalculator"

		id := calculator.ID(r)

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		calculs, err := saver.Save(ctx, id)
		if err != nil {
			code, msg := calculator.Status(err)
			log.Error("failed to save calculator", slog.String("op", op), slog.String("id", id), slog.String("error", err.Error()))
			render.Status(r, code)
			render.JSON(w, r, map[string]any{"success": false, "message": msg})
			return
		}

		log.Info("calculator saved", slog.String("id", id), slog.Bool("override", calculs.CustomSubmission != nil))

		render.JSON(w, r, map[string]any{
			"success": true,
			"calculs": calculs,
		})
	}
}

// CloseCalculator flushes the pending draft and ends the session.
func CloseCalculator(log *slog.Logger, saver Saver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calculator.CloseCalculator"

		id := calculator.ID(r)

		if err := saver.Close(id); err != nil {
			code, msg := calculator.Status(err)
			log.Warn("failed to close calculator", slog.String("op", op), slog.String("id", id), slog.String("error", err.Error()))
			http.Error(w, msg, code)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
