package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toiture-backend/internal/estimate"
	"toiture-backend/internal/pricing"
	"toiture-backend/internal/storage"
)

func newTestStorage(t *testing.T) (*Storage, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	s, err := New(mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s, mr
}

func testDraft(key string, savedAt time.Time) storage.Draft {
	e, res := estimate.Recompute(estimate.New().SetGeometry(estimate.Geometry{RoofArea: 1800}), pricing.Defaults())
	return storage.NewDraft(key, e, pricing.Defaults(), res, nil, savedAt)
}

func TestPriceOverrides(t *testing.T) {
	s, mr := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SavePriceOverrides(ctx, map[string]float64{"laborHour": 68.5, "drain.4in": 180}))

	got, err := s.PriceOverrides(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"laborHour": 68.5, "drain.4in": 180}, got)
	assert.Equal(t, "68.5", mr.HGet(pricesKey, "laborHour"))

	require.NoError(t, s.SavePriceOverrides(ctx, nil))
	got, err = s.PriceOverrides(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDraftLifecycle(t *testing.T) {
	s, mr := newTestStorage(t)
	ctx := context.Background()
	key := storage.DraftKey("")

	_, err := s.Draft(ctx, key)
	assert.True(t, errors.Is(err, storage.ErrDraftNotFound))

	d := testDraft(key, time.Now())
	require.NoError(t, s.SaveDraft(ctx, d))
	assert.True(t, mr.Exists("toiture:calculatorDraft"))

	got, err := s.Draft(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, d.Estimate(), got.Estimate())

	require.NoError(t, s.DeleteDraft(ctx, key))
	_, err = s.Draft(ctx, key)
	assert.True(t, errors.Is(err, storage.ErrDraftNotFound))
}

func TestPurgeDrafts(t *testing.T) {
	s, mr := newTestStorage(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, s.SaveDraft(ctx, testDraft(storage.DraftKey("a"), now.Add(-48*time.Hour))))
	require.NoError(t, s.SaveDraft(ctx, testDraft(storage.DraftKey("b"), now)))
	require.NoError(t, mr.Set("toiture:calculatorDraft:broken", "{"))
	require.NoError(t, mr.Set("other:key", "x"))

	n, err := s.PurgeDrafts(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.False(t, mr.Exists("toiture:calculatorDraft:a"))
	assert.True(t, mr.Exists("toiture:calculatorDraft:b"))
	assert.True(t, mr.Exists("other:key"))
}
