package get

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"toiture-backend/internal/pricing"
)

type MockPriceProvider struct {
	mock.Mock
}

func (m *MockPriceProvider) Table() pricing.Table {
	args := m.Called()
	return args.Get(0).(pricing.Table)
}

func TestGetPrices(t *testing.T) {
	table := pricing.Merge(map[pricing.Key]float64{pricing.Vent: 99})

	provider := new(MockPriceProvider)
	provider.On("Table").Return(table)

	rr := httptest.NewRecorder()
	GetPrices(slog.New(slog.NewTextHandler(io.Discard, nil)), provider).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/prices", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var got struct {
		Prices    map[string]float64 `json:"prices"`
		Defaults  map[string]float64 `json:"defaults"`
		Overrides map[string]float64 `json:"overrides"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))

	assert.Equal(t, 99.0, got.Prices[string(pricing.Vent)])
	assert.Equal(t, pricing.Defaults()[pricing.Vent], got.Defaults[string(pricing.Vent)])
	assert.Equal(t, map[string]float64{string(pricing.Vent): 99}, got.Overrides)
}
