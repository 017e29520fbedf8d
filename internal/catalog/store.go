package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"kartoteka/internal/config"
)

// Store manages scan-run persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the catalog database. The catalog lock is
// taken non-blocking; a second concurrent opener gets an error rather than a
// hang.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(filepath.Join(cfg.Paths.CatalogDir, "catalog.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire catalog lock: %w", err)
	}
	if !ok {
		return nil, errors.New("catalog is locked by another kartoteka process")
	}

	dbPath := filepath.Join(cfg.Paths.CatalogDir, "catalog.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	return store, nil
}

// Close closes the database and releases the catalog lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var err error
	if s.db != nil {
		err = s.db.Close()
	}
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); err == nil {
			err = unlockErr
		}
	}
	return err
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// RecordRun persists a run and its file outcomes atomically.
func (s *Store) RecordRun(ctx context.Context, run Run, files []FileRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin run tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, data_root, started_at, finished_at, files, valid, warnings, invalid, skipped, datasets)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.DataRoot,
		run.StartedAt.Format(time.RFC3339Nano),
		run.FinishedAt.Format(time.RFC3339Nano),
		run.Files,
		run.Valid,
		run.Warnings,
		run.Invalid,
		run.Skipped,
		run.Datasets,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_files (run_id, category, path, name, type, size, status, detail)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare file insert: %w", err)
	}
	defer stmt.Close()

	for _, file := range files {
		if _, err := stmt.ExecContext(ctx,
			run.ID, file.Category, file.Path, file.Name, file.Type, file.Size, file.Status, file.Detail,
		); err != nil {
			return fmt.Errorf("insert file record %s: %w", file.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// LastRun returns the most recently finished run, or nil when the catalog is
// empty.
func (s *Store) LastRun(ctx context.Context) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, data_root, started_at, finished_at, files, valid, warnings, invalid, skipped, datasets
         FROM runs ORDER BY finished_at DESC, id DESC LIMIT 1`)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// History returns up to limit runs, newest first.
func (s *Store) History(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, data_root, started_at, finished_at, files, valid, warnings, invalid, skipped, datasets
         FROM runs ORDER BY finished_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// RunFiles returns the file outcomes for a run in scan order.
func (s *Store) RunFiles(ctx context.Context, runID string) ([]FileRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category, path, name, type, size, status, detail
         FROM run_files WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run files: %w", err)
	}
	defer rows.Close()

	var files []FileRecord
	for rows.Next() {
		var file FileRecord
		if err := rows.Scan(&file.Category, &file.Path, &file.Name, &file.Type, &file.Size, &file.Status, &file.Detail); err != nil {
			return nil, fmt.Errorf("scan file record: %w", err)
		}
		files = append(files, file)
	}
	return files, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var started, finished string
	if err := row.Scan(&run.ID, &run.DataRoot, &started, &finished,
		&run.Files, &run.Valid, &run.Warnings, &run.Invalid, &run.Skipped, &run.Datasets); err != nil {
		return nil, err
	}
	var err error
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return nil, fmt.Errorf("parse started_at: %w", err)
	}
	if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
		return nil, fmt.Errorf("parse finished_at: %w", err)
	}
	return &run, nil
}
