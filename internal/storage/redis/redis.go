// Package redis is the in-memory alternative to the sqlite local store.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"toiture-backend/internal/storage"
)

const (
	pricesKey   = "prices:overrides" // hash key -> price
	draftPrefix = "toiture:"         // toiture:calculatorDraft[:id]
	draftMatch  = draftPrefix + "calculatorDraft*"
	scanBatch   = 100
	pingTimeout = 3 * time.Second
)

type Storage struct {
	client *redis.Client
}

func New(addr, password string, db int) (*Storage, error) {
	const op = "storage.redis.New"

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	return &Storage{client: client}, nil
}

func (s *Storage) Close() error {
	return s.client.Close()
}

func draftKey(key string) string {
	return draftPrefix + key
}

func (s *Storage) PriceOverrides(ctx context.Context) (map[string]float64, error) {
	const op = "storage.redis.PriceOverrides"

	raw, err := s.client.HGetAll(ctx, pricesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make(map[string]float64, len(raw))
	for k, v := range raw {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			continue
		}
		out[k] = f
	}

	return out, nil
}

// SavePriceOverrides replaces the whole override set atomically.
func (s *Storage) SavePriceOverrides(ctx context.Context, overrides map[string]float64) error {
	const op = "storage.redis.SavePriceOverrides"

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, pricesKey)
		if len(overrides) > 0 {
			values := make(map[string]any, len(overrides))
			for k, v := range overrides {
				values[k] = strconv.FormatFloat(v, 'f', -1, 64)
			}
			pipe.HSet(ctx, pricesKey, values)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) Draft(ctx context.Context, key string) (storage.Draft, error) {
	const op = "storage.redis.Draft"

	data, err := s.client.Get(ctx, draftKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return storage.Draft{}, fmt.Errorf("%s: %s: %w", op, key, storage.ErrDraftNotFound)
	}
	if err != nil {
		return storage.Draft{}, fmt.Errorf("%s: %w", op, err)
	}

	var d storage.Draft
	if err := json.Unmarshal([]byte(data), &d); err != nil {
		return storage.Draft{}, fmt.Errorf("%s: failed to unmarshal draft: %w", op, err)
	}
	d.Key = key

	return d, nil
}

func (s *Storage) SaveDraft(ctx context.Context, d storage.Draft) error {
	const op = "storage.redis.SaveDraft"

	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("%s: failed to marshal draft: %w", op, err)
	}

	if err := s.client.Set(ctx, draftKey(d.Key), data, 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) DeleteDraft(ctx context.Context, key string) error {
	const op = "storage.redis.DeleteDraft"

	if err := s.client.Del(ctx, draftKey(key)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// PurgeDrafts scans every draft key and deletes those saved before the cutoff.
func (s *Storage) PurgeDrafts(ctx context.Context, before time.Time) (int, error) {
	const op = "storage.redis.PurgeDrafts"

	var (
		cursor uint64
		stale  []string
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, draftMatch, scanBatch).Result()
		if err != nil {
			return 0, fmt.Errorf("%s: scan: %w", op, err)
		}

		for _, k := range keys {
			data, err := s.client.Get(ctx, k).Result()
			if errors.Is(err, redis.Nil) {
				continue
			}
			if err != nil {
				return 0, fmt.Errorf("%s: %w", op, err)
			}

			var d storage.Draft
			// битый черновик тоже удаляем
			if err := json.Unmarshal([]byte(data), &d); err != nil || d.SavedAt.Before(before) {
				stale = append(stale, k)
			}
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	if len(stale) == 0 {
		return 0, nil
	}

	n, err := s.client.Del(ctx, stale...).Result()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return int(n), nil
}
