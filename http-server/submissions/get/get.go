package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"toiture-backend/internal/storage"
)

type SubmissionProvider interface {
	Submissions(ctx context.Context) ([]storage.Submission, error)
	Submission(ctx context.Context, id string) (storage.Submission, error)
}

func GetSubmissions(log *slog.Logger, provider SubmissionProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.submissions.GetSubmissions"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		subs, err := provider.Submissions(ctx)
		if err != nil {
			log.Error("failed to list submissions", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Impossible de charger les demandes", http.StatusInternalServerError)
			return
		}

		if subs == nil {
			subs = []storage.Submission{}
		}

		render.JSON(w, r, subs)
	}
}

func GetSubmission(log *slog.Logger, provider SubmissionProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.submissions.GetSubmission"

		id := chi.URLParam(r, "id")
		if id == "" {
			http.Error(w, "Identifiant manquant", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		sub, err := provider.Submission(ctx, id)
		if errors.Is(err, storage.ErrSubmissionNotFound) {
			http.Error(w, "Demande introuvable", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error("failed to get submission", slog.String("op", op), slog.String("id", id), slog.String("error", err.Error()))
			http.Error(w, "Impossible de charger la demande", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, sub)
	}
}
