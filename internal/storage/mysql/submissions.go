package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"toiture-backend/internal/constants"
	"toiture-backend/internal/storage"
)

const submissionColumns = `id, client_nom, client_adresse, client_telephone, superficie_totale, superficie_parapets,
	materiaux, status, created_at, photo_count, calculs`

type scanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row scanner) (storage.Submission, error) {
	var (
		s         storage.Submission
		materiaux sql.NullString
		calculs   sql.NullString
	)

	err := row.Scan(&s.ID, &s.Client.Nom, &s.Client.Adresse, &s.Client.Telephone,
		&s.Toiture.Superficie.Totale, &s.Toiture.Superficie.Parapets,
		&materiaux, &s.Status, &s.CreatedAt, &s.PhotoCount, &calculs)
	if err != nil {
		return s, err
	}

	if materiaux.Valid && materiaux.String != "" {
		if err := json.Unmarshal([]byte(materiaux.String), &s.Materiaux); err != nil {
			return s, fmt.Errorf("materiaux: %w", err)
		}
	}
	if calculs.Valid && calculs.String != "" && calculs.String != "null" {
		var c storage.Calculs
		if err := json.Unmarshal([]byte(calculs.String), &c); err != nil {
			return s, fmt.Errorf("calculs: %w", err)
		}
		s.Calculs = &c
	}

	return s, nil
}

func nullJSON(v any, isNil bool) (sql.NullString, error) {
	if isNil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func (s *Storage) Submissions(ctx context.Context) ([]storage.Submission, error) {
	const op = "storage.mysql.Submissions"

	stmt := `SELECT ` + submissionColumns + ` FROM submissions ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения заявок: %w", op, err)
	}
	defer rows.Close()

	out := make([]storage.Submission, 0)
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, sub)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка сканирования строк: %w", op, err)
	}

	return out, nil
}

func (s *Storage) Submission(ctx context.Context, id string) (storage.Submission, error) {
	const op = "storage.mysql.Submission"

	stmt := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = ?`

	sub, err := scanSubmission(s.db.QueryRowContext(ctx, stmt, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Submission{}, fmt.Errorf("%s: id=%s: %w", op, id, storage.ErrSubmissionNotFound)
		}
		return storage.Submission{}, fmt.Errorf("%s: %w", op, err)
	}

	return sub, nil
}

// CreateSubmission inserts sub, or replaces the row with the same id.
func (s *Storage) CreateSubmission(ctx context.Context, sub storage.Submission) (storage.Submission, error) {
	const op = "storage.mysql.CreateSubmission"

	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if sub.Status == "" {
		sub.Status = constants.StatusNew
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}

	materiaux, err := nullJSON(sub.Materiaux, sub.Materiaux == nil)
	if err != nil {
		return storage.Submission{}, fmt.Errorf("%s: materiaux: %w", op, err)
	}
	calculs, err := nullJSON(sub.Calculs, sub.Calculs == nil)
	if err != nil {
		return storage.Submission{}, fmt.Errorf("%s: calculs: %w", op, err)
	}

	stmt := `REPLACE INTO submissions (` + submissionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = s.db.ExecContext(ctx, stmt, sub.ID, sub.Client.Nom, sub.Client.Adresse, sub.Client.Telephone,
		sub.Toiture.Superficie.Totale, sub.Toiture.Superficie.Parapets,
		materiaux, sub.Status, sub.CreatedAt, sub.PhotoCount, calculs)
	if err != nil {
		return storage.Submission{}, fmt.Errorf("%s: ошибка сохранения заявки: %w", op, err)
	}

	return sub, nil
}

func (s *Storage) PatchSubmission(ctx context.Context, id string, patch storage.SubmissionPatch) error {
	const op = "storage.mysql.PatchSubmission"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: старт транзакции: %w", op, err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM submissions WHERE id = ? FOR UPDATE`, id).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s: id=%s: %w", op, id, storage.ErrSubmissionNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if patch.Status != nil {
		if _, err := tx.ExecContext(ctx, `UPDATE submissions SET status = ? WHERE id = ?`, *patch.Status, id); err != nil {
			return fmt.Errorf("%s: ошибка обновления статуса: %w", op, err)
		}
	}

	if patch.Calculs != nil {
		calculs, err := nullJSON(patch.Calculs, false)
		if err != nil {
			return fmt.Errorf("%s: calculs: %w", op, err)
		}
		if _, err := tx.ExecContext(ctx, `UPDATE submissions SET calculs = ? WHERE id = ?`, calculs, id); err != nil {
			return fmt.Errorf("%s: ошибка обновления расчётов: %w", op, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: ошибка завершения транзакции: %w", op, err)
	}

	return nil
}

// DeleteSubmission succeeds when the row is already gone.
func (s *Storage) DeleteSubmission(ctx context.Context, id string) error {
	const op = "storage.mysql.DeleteSubmission"

	if _, err := s.db.ExecContext(ctx, `DELETE FROM submissions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("%s: ошибка удаления заявки: %w", op, err)
	}

	return nil
}
