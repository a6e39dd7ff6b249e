package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"toiture-backend/internal/pricing"
)

func TestPriceServiceLoad(t *testing.T) {
	st := new(MockPriceStorage)
	st.On("PriceOverrides", mock.Anything).Return(map[string]float64{"primer": 91, "unknown": 3}, nil)

	s := NewPriceService(discardLogger(), st)
	table, err := s.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 91.0, table[pricing.Primer])
	assert.Equal(t, 91.0, s.Table()[pricing.Primer])
	assert.Len(t, table, len(pricing.Defaults()))
}

func TestPriceServiceLoadErrorKeepsTable(t *testing.T) {
	st := new(MockPriceStorage)
	st.On("PriceOverrides", mock.Anything).Return(nil, errors.New("locked"))

	s := NewPriceService(discardLogger(), st)
	table, err := s.Load(context.Background())

	assert.Error(t, err)
	assert.Equal(t, pricing.Defaults(), table)
}

func TestPriceServiceUpdateStoresSparseSet(t *testing.T) {
	st := new(MockPriceStorage)
	st.On("SavePriceOverrides", mock.Anything, map[string]float64{"vent": 70}).Return(nil).Once()
	st.On("SavePriceOverrides", mock.Anything, map[string]float64{"vent": 70, "adminRate": 18}).Return(nil).Once()

	s := NewPriceService(discardLogger(), st)

	_, err := s.Update(context.Background(), map[pricing.Key]float64{pricing.Vent: 70})
	require.NoError(t, err)

	// значение по умолчанию в разреженный набор не попадает
	table, err := s.Update(context.Background(), map[pricing.Key]float64{pricing.AdminRate: 18, pricing.Primer: 86})
	require.NoError(t, err)

	assert.Equal(t, 18.0, table[pricing.AdminRate])
	st.AssertExpectations(t)
}

func TestPriceServiceUpdateFailure(t *testing.T) {
	st := new(MockPriceStorage)
	st.On("SavePriceOverrides", mock.Anything, mock.Anything).Return(errors.New("full"))

	s := NewPriceService(discardLogger(), st)
	table, err := s.Update(context.Background(), map[pricing.Key]float64{pricing.Vent: 70})

	assert.Error(t, err)
	assert.Equal(t, 64.0, table[pricing.Vent])
	assert.Equal(t, 64.0, s.Table()[pricing.Vent])
}

func TestPriceServiceReset(t *testing.T) {
	st := new(MockPriceStorage)
	st.On("SavePriceOverrides", mock.Anything, mock.Anything).Return(nil)

	s := NewPriceService(discardLogger(), st)
	_, err := s.Update(context.Background(), map[pricing.Key]float64{pricing.Vent: 70})
	require.NoError(t, err)

	table, err := s.Reset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, pricing.Defaults(), table)
	st.AssertCalled(t, "SavePriceOverrides", mock.Anything, map[string]float64{})
}
