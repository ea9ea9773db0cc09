package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"notepad/internal/model"

	_ "modernc.org/sqlite"
)

const recentFileName = "recent.sqlite"

// maxRecentRows bounds the table; List callers usually ask for far fewer.
const maxRecentRows = 200

// Recent is the recent-files history, kept in a small SQLite db under Dir.
type Recent struct {
	Dir string
}

// DefaultRecent returns the history stored in the config dir.
func DefaultRecent() (Recent, error) {
	dir, err := ConfigDir()
	if err != nil {
		return Recent{}, err
	}
	return Recent{Dir: dir}, nil
}

func (r Recent) path() string {
	return filepath.Join(filepath.Clean(r.Dir), recentFileName)
}

func (r Recent) open(ctx context.Context) (*sql.DB, error) {
	if strings.TrimSpace(r.Dir) == "" {
		return nil, errors.New("recent: missing dir")
	}
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", r.path())
	if err != nil {
		return nil, err
	}
	// A TUI and a CLI invocation may touch the file at the same time.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateRecent(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateRecent(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS recent_files (
			path TEXT PRIMARY KEY,
			last_used_unixms INTEGER NOT NULL,
			opens INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE INDEX IF NOT EXISTS idx_recent_last_used ON recent_files(last_used_unixms DESC);`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// Touch records path as used at the given time. Relative paths are made absolute.
func (r Recent) Touch(ctx context.Context, path string, at time.Time) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("recent: empty path")
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	db, err := r.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO recent_files(path, last_used_unixms, opens) VALUES(?, ?, 1)
		ON CONFLICT(path) DO UPDATE SET last_used_unixms = excluded.last_used_unixms, opens = opens + 1`,
		path, at.UTC().UnixMilli()); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM recent_files WHERE path NOT IN (
			SELECT path FROM recent_files ORDER BY last_used_unixms DESC, path LIMIT ?
		)`, maxRecentRows); err != nil {
		return err
	}
	return tx.Commit()
}

// List returns up to limit entries, most recently used first. limit <= 0 means all.
func (r Recent) List(ctx context.Context, limit int) ([]model.RecentFile, error) {
	db, err := r.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if limit <= 0 {
		limit = maxRecentRows
	}
	rows, err := db.QueryContext(ctx, `
		SELECT path, last_used_unixms, opens FROM recent_files
		ORDER BY last_used_unixms DESC, path LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.RecentFile{}
	for rows.Next() {
		var (
			f  model.RecentFile
			ms int64
		)
		if err := rows.Scan(&f.Path, &ms, &f.Opens); err != nil {
			return nil, err
		}
		f.LastUsed = time.UnixMilli(ms).UTC()
		out = append(out, f)
	}
	return out, rows.Err()
}

// Forget removes path; it reports whether an entry existed.
func (r Recent) Forget(ctx context.Context, path string) (bool, error) {
	if abs, err := filepath.Abs(strings.TrimSpace(path)); err == nil {
		path = abs
	}
	db, err := r.open(ctx)
	if err != nil {
		return false, err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx, `DELETE FROM recent_files WHERE path = ?`, path)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r Recent) Clear(ctx context.Context) error {
	db, err := r.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	_, err = db.ExecContext(ctx, `DELETE FROM recent_files`)
	return err
}
