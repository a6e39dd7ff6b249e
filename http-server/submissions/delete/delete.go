package delete

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type SubmissionDeleter interface {
	DeleteSubmission(ctx context.Context, id string) error
}

// DeleteSubmission succeeds for an id that is already gone.
func DeleteSubmission(log *slog.Logger, deleter SubmissionDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.submissions.DeleteSubmission"

		id := chi.URLParam(r, "id")
		if id == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]any{"success": false, "message": "Identifiant manquant"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := deleter.DeleteSubmission(ctx, id); err != nil {
			log.Error("failed to delete submission", slog.String("op", op), slog.String("id", id), slog.String("error", err.Error()))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, map[string]any{"success": false, "message": "Échec de la suppression"})
			return
		}

		log.Info("submission deleted", slog.String("id", id))

		render.JSON(w, r, map[string]any{"success": true})
	}
}
