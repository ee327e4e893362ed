package cache

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"todolist/internal/service"
)

const schema = `
	CREATE TABLE IF NOT EXISTS todos (
		position   INTEGER PRIMARY KEY,
		id         INTEGER NOT NULL,
		todo       TEXT NOT NULL,
		completed  INTEGER NOT NULL,
		user_id    INTEGER NOT NULL
	);
`

// SQLite is a Cache stored in a single SQLite table.
// Row order is kept in the position column so ids may repeat.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the cache database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("%w: failed to create cache directory: %v", service.ErrStorage, err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open cache: %v", service.ErrStorage, err)
	}
	// One connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: failed to initialize schema: %v", service.ErrStorage, err)
	}
	return &SQLite{db: db}, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// LoadAll returns the cached tasks in stored order.
func (s *SQLite) LoadAll(ctx context.Context) ([]service.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, todo, completed, user_id FROM todos ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("%w: load: %v", service.ErrStorage, err)
	}
	defer rows.Close()

	var tasks []service.Task
	for rows.Next() {
		var t service.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Completed, &t.OwnerID); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", service.ErrStorage, err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: load: %v", service.ErrStorage, err)
	}
	return tasks, nil
}

// ReplaceAll deletes every stored task and inserts tasks in one transaction.
func (s *SQLite) ReplaceAll(ctx context.Context, tasks []service.Task) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", service.ErrStorage, err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM todos`); err != nil {
		return fmt.Errorf("%w: clear: %v", service.ErrStorage, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO todos (position, id, todo, completed, user_id) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("%w: prepare: %v", service.ErrStorage, err)
	}
	defer stmt.Close()

	for i, t := range tasks {
		if _, err = stmt.ExecContext(ctx, i, t.ID, t.Title, t.Completed, t.OwnerID); err != nil {
			return fmt.Errorf("%w: insert task %d: %v", service.ErrStorage, t.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", service.ErrStorage, err)
	}
	return nil
}
