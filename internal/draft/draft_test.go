package draft

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDebouncerRunsOnlyLast(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var got atomic.Int32
	for i := 1; i <= 5; i++ {
		v := int32(i)
		d.Trigger(func() { got.Store(v) })
		time.Sleep(5 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return got.Load() == 5 }, time.Second, 5*time.Millisecond)
	assert.False(t, d.Pending())
}

func TestDebouncerWaitsForIdle(t *testing.T) {
	d := NewDebouncer(80 * time.Millisecond)

	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })

	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, calls.Load())
	assert.True(t, d.Pending())

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestDebouncerCancel(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })

	assert.True(t, d.Cancel())
	assert.False(t, d.Cancel())

	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, calls.Load())
}

func TestDebouncerCancelWaitsForRunningSave(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)

	var started, done atomic.Bool
	d.Trigger(func() {
		started.Store(true)
		time.Sleep(150 * time.Millisecond)
		done.Store(true)
	})

	require.Eventually(t, started.Load, time.Second, 2*time.Millisecond)

	assert.False(t, d.Cancel())
	assert.True(t, done.Load())
}

func TestDebouncerFlushWaitsForRunningSave(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)

	var order []string
	var started atomic.Bool
	d.Trigger(func() {
		started.Store(true)
		time.Sleep(100 * time.Millisecond)
		order = append(order, "old")
	})

	require.Eventually(t, started.Load, time.Second, 2*time.Millisecond)

	d.Trigger(func() { order = append(order, "new") })
	assert.True(t, d.Flush())
	assert.Equal(t, []string{"old", "new"}, order)
}

func TestDebouncerFlush(t *testing.T) {
	d := NewDebouncer(time.Hour)

	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })

	assert.True(t, d.Flush())
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, d.Flush())
}

func TestNewDebouncerDefaultDelay(t *testing.T) {
	assert.Equal(t, DefaultDelay, NewDebouncer(0).delay)
}

type mockPurger struct {
	mock.Mock
}

func (m *mockPurger) PurgeDrafts(ctx context.Context, before time.Time) (int, error) {
	args := m.Called(ctx, before)
	return args.Int(0), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestJanitorRun(t *testing.T) {
	now := time.Date(2026, 5, 1, 3, 0, 0, 0, time.UTC)

	p := new(mockPurger)
	p.On("PurgeDrafts", mock.Anything, now.Add(-72*time.Hour)).Return(3, nil).Once()

	j, err := NewJanitor(discardLogger(), p, "", 72*time.Hour)
	require.NoError(t, err)
	j.now = func() time.Time { return now }

	assert.Equal(t, 3, j.Run(context.Background()))
	p.AssertExpectations(t)
}

func TestJanitorRunError(t *testing.T) {
	p := new(mockPurger)
	p.On("PurgeDrafts", mock.Anything, mock.Anything).Return(0, errors.New("disk full"))

	j, err := NewJanitor(discardLogger(), p, "@hourly", time.Hour)
	require.NoError(t, err)

	assert.Zero(t, j.Run(context.Background()))
}

func TestJanitorDisabledWithoutMaxAge(t *testing.T) {
	p := new(mockPurger)

	j, err := NewJanitor(discardLogger(), p, "", 0)
	require.NoError(t, err)

	assert.Zero(t, j.Run(context.Background()))
	p.AssertNotCalled(t, "PurgeDrafts", mock.Anything, mock.Anything)
}

func TestJanitorBadSpec(t *testing.T) {
	_, err := NewJanitor(discardLogger(), new(mockPurger), "every now and then", time.Hour)
	assert.Error(t, err)
}

func TestJanitorStartStop(t *testing.T) {
	j, err := NewJanitor(discardLogger(), new(mockPurger), "", time.Hour)
	require.NoError(t, err)

	j.Start()
	j.Stop()
}
