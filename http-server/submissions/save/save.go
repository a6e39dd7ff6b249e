package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"

	"toiture-backend/internal/constants"
	"toiture-backend/internal/storage"
)

type SubmissionCreator interface {
	CreateSubmission(ctx context.Context, sub storage.Submission) (storage.Submission, error)
}

func SaveSubmission(log *slog.Logger, creator SubmissionCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.submissions.SaveSubmission"

		var req storage.Submission
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			fail(w, r, http.StatusBadRequest, "Données invalides")
			return
		}

		req.Client.Nom = strings.TrimSpace(req.Client.Nom)
		if req.Client.Nom == "" {
			fail(w, r, http.StatusBadRequest, "Le nom du client est requis")
			return
		}
		if req.Status != "" && !constants.SubmissionStatuses[req.Status] {
			fail(w, r, http.StatusBadRequest, "Statut inconnu")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		sub, err := creator.CreateSubmission(ctx, req)
		if err != nil {
			log.Error("failed to create submission", slog.String("op", op), slog.String("error", err.Error()))
			fail(w, r, http.StatusInternalServerError, "Impossible d'enregistrer la demande")
			return
		}

		log.Info("submission created", slog.String("id", sub.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"success":    true,
			"submission": sub,
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
