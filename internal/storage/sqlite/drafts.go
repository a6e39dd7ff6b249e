package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"toiture-backend/internal/storage"
)

func (s *Storage) Draft(ctx context.Context, key string) (storage.Draft, error) {
	const op = "storage.sqlite.Draft"

	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM drafts WHERE key = ?`, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Draft{}, fmt.Errorf("%s: %s: %w", op, key, storage.ErrDraftNotFound)
		}
		return storage.Draft{}, fmt.Errorf("%s: %w", op, err)
	}

	var d storage.Draft
	if err := json.Unmarshal([]byte(payload), &d); err != nil {
		return storage.Draft{}, fmt.Errorf("%s: decode: %w", op, err)
	}
	d.Key = key

	return d, nil
}

// SaveDraft overwrites the draft stored under d.Key.
func (s *Storage) SaveDraft(ctx context.Context, d storage.Draft) error {
	const op = "storage.sqlite.SaveDraft"

	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("%s: encode: %w", op, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO drafts (key, payload, saved_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at`,
		d.Key, string(payload), d.SavedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) DeleteDraft(ctx context.Context, key string) error {
	const op = "storage.sqlite.DeleteDraft"

	if _, err := s.db.ExecContext(ctx, `DELETE FROM drafts WHERE key = ?`, key); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// PurgeDrafts deletes drafts saved before the cutoff and returns how many went.
func (s *Storage) PurgeDrafts(ctx context.Context, before time.Time) (int, error) {
	const op = "storage.sqlite.PurgeDrafts"

	res, err := s.db.ExecContext(ctx, `DELETE FROM drafts WHERE saved_at < ?`, before.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return int(n), nil
}
