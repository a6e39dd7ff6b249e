// Package sqlite is the on-disk store for price overrides and calculator drafts.
package sqlite

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"toiture-backend/internal/storage/migrations"
)

const memoryPath = ":memory:"

//go:embed migrations/*.sql
var migrationsFS embed.FS

type Storage struct {
	db *sql.DB
}

// New opens the database at path, sets pragmas and runs migrations.
func New(path string) (*Storage, error) {
	const op = "storage.sqlite.New"

	if path != memoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("%s: create dir: %w", op, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%s: open sqlite db: %w", op, err)
	}

	// у каждого соединения своя :memory: база
	if path == memoryPath {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA foreign_keys = ON;
		PRAGMA busy_timeout = 5000;
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: set sqlite pragmas: %w", op, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: ping sqlite db: %w", op, err)
	}

	if err := migrations.Up(db, migrations.DialectSQLite, migrationsFS); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}
