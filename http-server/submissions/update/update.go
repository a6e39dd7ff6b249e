package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"toiture-backend/internal/constants"
	"toiture-backend/internal/storage"
)

type SubmissionPatcher interface {
	PatchSubmission(ctx context.Context, id string, patch storage.SubmissionPatch) error
}

func UpdateSubmission(log *slog.Logger, patcher SubmissionPatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.submissions.UpdateSubmission"

		id := chi.URLParam(r, "id")
		if id == "" {
			fail(w, r, http.StatusBadRequest, "Identifiant manquant")
			return
		}

		var patch storage.SubmissionPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			log.Error("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			fail(w, r, http.StatusBadRequest, "Données invalides")
			return
		}
		if patch.Empty() {
			fail(w, r, http.StatusBadRequest, "Aucune modification")
			return
		}
		if patch.Status != nil && !constants.SubmissionStatuses[*patch.Status] {
			fail(w, r, http.StatusBadRequest, "Statut inconnu")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		err := patcher.PatchSubmission(ctx, id, patch)
		if errors.Is(err, storage.ErrSubmissionNotFound) {
			fail(w, r, http.StatusNotFound, "Demande introuvable")
			return
		}
		if err != nil {
			log.Error("failed to patch submission", slog.String("op", op), slog.String("id", id), slog.String("error", err.Error()))
			fail(w, r, http.StatusInternalServerError, "Échec de la mise à jour")
			return
		}

		log.Info("submission updated", slog.String("id", id))

		render.JSON(w, r, map[string]any{
			"success": true,
			"id":      id,
		})
	}
}

func fail(w http.ResponseWriter, r *http.Request, code int, message string) {
	render.Status(r, code)
	render.JSON(w, r, map[string]any{
		"success": false,
		"message": message,
	})
}
