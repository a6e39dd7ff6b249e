package save

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"toiture-backend/internal/estimate"
	"toiture-backend/internal/service"
	"toiture-backend/internal/storage"
)

type MockSaver struct {
	mock.Mock
}

func (m *MockSaver) Save(ctx context.Context, id string) (storage.Calculs, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(storage.Calculs), args.Error(1)
}

func (m *MockSaver) Close(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func request(method, id string) *http.Request {
	r := httptest.NewRequest(method, "/api/calculator/"+id+"/save", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestSaveCalculator(t *testing.T) {
	saver := new(MockSaver)
	saver.On("Save", mock.Anything, "abc").Return(storage.Calculs{
		CustomSubmission: &estimate.Summary{OverrideActive: true, EffectiveTotal: 9000},
	}, nil)

	rr := httptest.NewRecorder()
	SaveCalculator(discard(), saver).ServeHTTP(rr, request(http.MethodPost, "abc"))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"success":true`)
	assert.Contains(t, rr.Body.String(), `"customSubmission"`)
	saver.AssertExpectations(t)
}

func TestSaveCalculator_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "blank calculator", err: service.ErrNoSubmission, want: http.StatusConflict},
		{name: "store error", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saver := new(MockSaver)
			saver.On("Save", mock.Anything, "abc").Return(storage.Calculs{}, tt.err)

			rr := httptest.NewRecorder()
			SaveCalculator(discard(), saver).ServeHTTP(rr, request(http.MethodPost, "abc"))

			assert.Equal(t, tt.want, rr.Code)
			assert.Contains(t, rr.Body.String(), `"success":false`)
		})
	}
}

func TestCloseCalculator(t *testing.T) {
	saver := new(MockSaver)
	saver.On("Close", "abc").Return(nil)
	saver.On("Close", "gone").Return(service.ErrSessionNotFound)

	rr := httptest.NewRecorder()
	CloseCalculator(discard(), saver).ServeHTTP(rr, request(http.MethodDelete, "abc"))
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = httptest.NewRecorder()
	CloseCalculator(discard(), saver).ServeHTTP(rr, request(http.MethodDelete, "gone"))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
