package migrations

import (
	"database/sql"
	"fmt"
	"io/fs"
	"sync"

	"github.com/pressly/goose/v3"
)

const (
	DialectMySQL  = "mysql"
	DialectSQLite = "sqlite3"

	dir = "migrations"
)

// goose держит диалект и FS глобально
var mu sync.Mutex

// Up runs the pending migrations stored under "migrations/" in fsys.
func Up(db *sql.DB, dialect string, fsys fs.FS) error {
	const op = "storage.migrations.Up"

	mu.Lock()
	defer mu.Unlock()

	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("%s: set goose dialect: %w", op, err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("%s: run goose up migrations: %w", op, err)
	}

	return nil
}
