// Package calculator holds what the calculator session handlers share.
package calculator

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"toiture-backend/internal/service"
	"toiture-backend/internal/storage"
)

// ID reads the session id from the route. The blank calculator is "_".
func ID(r *http.Request) string {
	id := chi.URLParam(r, "id")
	if id == "" {
		return service.BlankID
	}
	return id
}

// Status maps a calculator error to an HTTP status and a message for the user.
func Status(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound, "Calculateur non ouvert"
	case errors.Is(err, storage.ErrSubmissionNotFound):
		return http.StatusNotFound, "Demande introuvable"
	case errors.Is(err, service.ErrNoSubmission):
		return http.StatusConflict, "Aucune demande liée au calculateur"
	}
	return http.StatusInternalServerError, "Erreur du calculateur"
}
