package sqlite

import (
	"context"
	"fmt"
)

func (s *Storage) PriceOverrides(ctx context.Context) (map[string]float64, error) {
	const op = "storage.sqlite.PriceOverrides"

	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM price_overrides`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := make(map[string]float64)
	for rows.Next() {
		var (
			key   string
			value float64
		)
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// SavePriceOverrides replaces the whole override set.
func (s *Storage) SavePriceOverrides(ctx context.Context, overrides map[string]float64) error {
	const op = "storage.sqlite.SavePriceOverrides"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", op, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM price_overrides`); err != nil {
		return fmt.Errorf("%s: clear: %w", op, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO price_overrides (key, value) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("%s: prepare: %w", op, err)
	}
	defer stmt.Close()

	for k, v := range overrides {
		if _, err := stmt.ExecContext(ctx, k, v); err != nil {
			return fmt.Errorf("%s: insert %s: %w", op, k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	return nil
}
