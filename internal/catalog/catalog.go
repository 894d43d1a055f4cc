package catalog

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/optode-data/scanmerge/internal/scan"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Run is one recorded merge invocation.
type Run struct {
	ID             string
	ScanID         string
	Systems        int
	MergedFrames   int
	MergedChannels int
	Drift          int
	Aligned        bool
	Diag           map[string]scan.SystemDiag

	// CreatedAt is a unix-nanosecond insertion timestamp, filled on
	// record when zero.
	CreatedAt int64
}

// Store persists merge runs to SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the catalog database at path and
// brings its schema up to date.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog database: %w", err)
	}
	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// migrateUp applies all pending embedded migrations. Already-current
// schemas are not an error.
func migrateUp(db *sql.DB) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load embedded migrations: %w", err)
	}
	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("prepare migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("prepare migrations: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun inserts one merge run. A missing ID is filled with a fresh
// UUID; the filled Run is returned.
func (s *Store) RecordRun(run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt == 0 {
		run.CreatedAt = time.Now().UnixNano()
	}
	diag, err := json.Marshal(run.Diag)
	if err != nil {
		return fmt.Errorf("encode run diagnostics: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO merge_runs (id, scan_id, systems, merged_frames, merged_channels, drift, aligned, diag, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.ScanID, run.Systems, run.MergedFrames, run.MergedChannels,
		run.Drift, run.Aligned, string(diag), run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert merge run: %w", err)
	}
	return nil
}

// Runs returns the most recent merge runs, newest first.
func (s *Store) Runs(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, scan_id, systems, merged_frames, merged_channels, drift, aligned, diag, created_at
		 FROM merge_runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query merge runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var diag string
		if err := rows.Scan(&run.ID, &run.ScanID, &run.Systems, &run.MergedFrames,
			&run.MergedChannels, &run.Drift, &run.Aligned, &diag, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan merge run: %w", err)
		}
		if diag != "" {
			if err := json.Unmarshal([]byte(diag), &run.Diag); err != nil {
				return nil, fmt.Errorf("decode run diagnostics: %w", err)
			}
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
