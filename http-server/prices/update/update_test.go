package update

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"toiture-backend/internal/pricing"
)

type MockPriceUpdater struct {
	mock.Mock
}

func (m *MockPriceUpdater) Update(ctx context.Context, entries map[pricing.Key]float64) (pricing.Table, error) {
	args := m.Called(ctx, entries)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(pricing.Table), args.Error(1)
}

func (m *MockPriceUpdater) Reset(ctx context.Context) (pricing.Table, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(pricing.Table), args.Error(1)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestUpdatePrices(t *testing.T) {
	updater := new(MockPriceUpdater)
	updater.On("Update", mock.Anything, map[pricing.Key]float64{pricing.Vent: 42.5, pricing.LaborHour: 70}).
		Return(pricing.Defaults(), nil)

	body := `{"vent": "42,5", "laborHour": 70, "gutter": 5}`

	rr := httptest.NewRecorder()
	UpdatePrices(discard(), updater).ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/api/admin/prices", strings.NewReader(body)))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"ignored":["gutter"]`)
	updater.AssertExpectations(t)
}

func TestUpdatePrices_Rejected(t *testing.T) {
	for _, body := range []string{`{`, `{}`, `{"gutter": 5}`} {
		updater := new(MockPriceUpdater)

		rr := httptest.NewRecorder()
		UpdatePrices(discard(), updater).ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/api/admin/prices", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rr.Code, body)
		updater.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	}
}

func TestUpdatePrices_StoreError(t *testing.T) {
	updater := new(MockPriceUpdater)
	updater.On("Update", mock.Anything, mock.Anything).Return(nil, errors.New("disk full"))

	rr := httptest.NewRecorder()
	UpdatePrices(discard(), updater).ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/api/admin/prices", strings.NewReader(`{"vent": 1}`)))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestResetPrices(t *testing.T) {
	updater := new(MockPriceUpdater)
	updater.On("Reset", mock.Anything).Return(pricing.Defaults(), nil).Once()
	updater.On("Reset", mock.Anything).Return(nil, errors.New("boom")).Once()

	rr := httptest.NewRecorder()
	ResetPrices(discard(), updater).ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/admin/prices", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	ResetPrices(discard(), updater).ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/admin/prices", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
