package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"toiture-backend/internal/pricing"
)

type PriceStorage interface {
	PriceOverrides(ctx context.Context) (map[string]float64, error)
	SavePriceOverrides(ctx context.Context, overrides map[string]float64) error
}

// PriceService holds the shop-wide price table: defaults plus persisted overrides.
type PriceService struct {
	log     *slog.Logger
	storage PriceStorage

	mu    sync.RWMutex
	table pricing.Table
}

func NewPriceService(log *slog.Logger, storage PriceStorage) *PriceService {
	return &PriceService{
		log:     log,
		storage: storage,
		table:   pricing.Defaults(),
	}
}

// Load rereads the overrides. On failure the current table stays in place.
func (s *PriceService) Load(ctx context.Context) (pricing.Table, error) {
	const op = "service.PriceService.Load"

	overrides, err := s.storage.PriceOverrides(ctx)
	if err != nil {
		return s.Table(), fmt.Errorf("%s: %w", op, err)
	}

	table := pricing.Merge(pricing.FromStrings(overrides))

	s.mu.Lock()
	s.table = table
	s.mu.Unlock()

	return table.Clone(), nil
}

func (s *PriceService) Table() pricing.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Clone()
}

// Update lays entries over the current table and persists the difference from the defaults.
func (s *PriceService) Update(ctx context.Context, entries map[pricing.Key]float64) (pricing.Table, error) {
	const op = "service.PriceService.Update"

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.table.With(entries)

	if err := s.storage.SavePriceOverrides(ctx, pricing.ToStrings(pricing.Sparse(next))); err != nil {
		return s.table.Clone(), fmt.Errorf("%s: %w", op, err)
	}

	s.table = next
	return next.Clone(), nil
}

// Reset drops every override.
func (s *PriceService) Reset(ctx context.Context) (pricing.Table, error) {
	const op = "service.PriceService.Reset"

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.SavePriceOverrides(ctx, map[string]float64{}); err != nil {
		return s.table.Clone(), fmt.Errorf("%s: %w", op, err)
	}

	s.table = pricing.Defaults()
	s.log.Info("price overrides reset")
	return s.table.Clone(), nil
}
