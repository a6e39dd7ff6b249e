package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"toiture-backend/internal/config"
	"toiture-backend/internal/service"
	genexcel "toiture-backend/internal/service/generate-excel"
	quote_pdf "toiture-backend/internal/service/quote-pdf"
)

type MockPriceStorage struct {
	mock.Mock
}

func (m *MockPriceStorage) PriceOverrides(ctx context.Context) (map[string]float64, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(map[string]float64), args.Error(1)
}

func (m *MockPriceStorage) SavePriceOverrides(ctx context.Context, overrides map[string]float64) error {
	args := m.Called(ctx, overrides)
	return args.Error(0)
}

func testRouter(t *testing.T, store *MockPriceStorage) http.Handler {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	prices := service.NewPriceService(log, store)

	cfg := config.Config{AdminLogin: "admin", AdminPass: "secret"}
	cfg.CORS.AllowedOrigins = []string{"http://localhost:5173"}

	return routes(cfg, log, dependencies{
		prices:     prices,
		calculator: service.NewCalculatorService(log, nil, nil, prices, 0),
		excel:      genexcel.NewGenerateService(),
		quotes:     quote_pdf.NewQuoteService(quote_pdf.Company{}),
	})
}

func TestRoutesPrices(t *testing.T) {
	store := new(MockPriceStorage)
	router := testRouter(t, store)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/prices", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/api/admin/prices", strings.NewReader(`{"vent": 70}`)))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	store.AssertNotCalled(t, "SavePriceOverrides", mock.Anything, mock.Anything)

	store.On("SavePriceOverrides", mock.Anything, map[string]float64{"vent": 70}).Return(nil)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/prices", strings.NewReader(`{"vent": 70}`))
	req.SetBasicAuth("admin", "secret")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	store.AssertExpectations(t)
}

func TestRoutesCalculation(t *testing.T) {
	router := testRouter(t, new(MockPriceStorage))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/estimate/calculation", strings.NewReader(`{"roofArea": 245.5, "parapetArea": 32.4}`)))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"baseSheet":2,`)
}

func TestRoutesClosedCalculator(t *testing.T) {
	router := testRouter(t, new(MockPriceStorage))

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/calculator/_"},
		{http.MethodGet, "/api/report/excel/abc"},
		{http.MethodPost, "/api/report/quote/abc"},
	} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusNotFound, rr.Code, tc.path)
	}
}
