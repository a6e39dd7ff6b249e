package update

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"toiture-backend/internal/constants"
	"toiture-backend/internal/storage"
)

type MockSubmissionPatcher struct {
	mock.Mock
}

func (m *MockSubmissionPatcher) PatchSubmission(ctx context.Context, id string, patch storage.SubmissionPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func request(id, body string) *http.Request {
	r := httptest.NewRequest(http.MethodPatch, "/api/submissions/"+id, strings.NewReader(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestUpdateSubmission_Status(t *testing.T) {
	patcher := new(MockSubmissionPatcher)
	patcher.On("PatchSubmission", mock.Anything, "abc", mock.MatchedBy(func(p storage.SubmissionPatch) bool {
		return p.Status != nil && *p.Status == constants.StatusScheduled && p.Calculs == nil
	})).Return(nil)

	rr := httptest.NewRecorder()
	UpdateSubmission(discard(), patcher).ServeHTTP(rr, request("abc", `{"status": "planifiee"}`))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success": true, "id": "abc"}`, rr.Body.String())
	patcher.AssertExpectations(t)
}

func TestUpdateSubmission_Rejected(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "broken JSON", body: `nope`},
		{name: "empty patch", body: `{}`},
		{name: "unknown status", body: `{"status": "perdue"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patcher := new(MockSubmissionPatcher)

			rr := httptest.NewRecorder()
			UpdateSubmission(discard(), patcher).ServeHTTP(rr, request("abc", tt.body))

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, rr.Body.String(), `"success":false`)
			patcher.AssertNotCalled(t, "PatchSubmission")
		})
	}
}

func TestUpdateSubmission_StoreErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not found", err: fmt.Errorf("wrap: %w", storage.ErrSubmissionNotFound), want: http.StatusNotFound},
		{name: "store error", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patcher := new(MockSubmissionPatcher)
			patcher.On("PatchSubmission", mock.Anything, "abc", mock.Anything).Return(tt.err)

			rr := httptest.NewRecorder()
			UpdateSubmission(discard(), patcher).ServeHTTP(rr, request("abc", `{"status": "annulee"}`))

			assert.Equal(t, tt.want, rr.Code)
			assert.Contains(t, rr.Body.String(), `"success":false`)
		})
	}
}
