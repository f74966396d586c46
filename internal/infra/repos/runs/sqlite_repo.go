package runs

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/mmrzaf/mocker/internal/domain"
)

// Repository stores the run history.
type Repository interface {
	Init() error
	Create(run *domain.RunRecord) error
	Get(id string) (*domain.RunRecord, error)
	List(limit int, status domain.RunStatus) ([]*domain.RunRecord, error)
	Close() error
}

type SQLiteRepository struct {
	dbPath string
	db     *sql.DB
}

func NewSQLiteRepository(dbPath string) *SQLiteRepository {
	return &SQLiteRepository{dbPath: dbPath}
}

func (r *SQLiteRepository) Init() error {
	if dir := filepath.Dir(r.dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create runs db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", r.dbPath)
	if err != nil {
		return err
	}
	r.db = db

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		config_path TEXT NOT NULL,
		config_hash TEXT,
		run_hash TEXT,
		sink TEXT NOT NULL,
		seed INTEGER NOT NULL,
		row_count INTEGER NOT NULL,
		total_rows INTEGER NOT NULL,
		status TEXT NOT NULL,
		started_at TIMESTAMP NOT NULL,
		completed_at TIMESTAMP,
		stats TEXT,
		error TEXT
	)`

	_, err = r.db.Exec(createTableSQL)
	return err
}

func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

func (r *SQLiteRepository) Create(run *domain.RunRecord) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	var stats interface{}
	if len(run.Stats) > 0 {
		stats = string(run.Stats)
	}

	var completedAt interface{}
	if run.CompletedAt != nil {
		completedAt = run.CompletedAt.Format(time.RFC3339Nano)
	}

	query := `
		INSERT INTO runs (
			id, kind, config_path, config_hash, run_hash, sink,
			seed, row_count, total_rows, status, started_at, completed_at, stats, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		run.ID, string(run.Kind), run.ConfigPath, run.ConfigHash, run.RunHash, run.Sink,
		run.Seed, run.RowCount, run.TotalRows, string(run.Status),
		run.StartedAt.Format(time.RFC3339Nano), completedAt,
		stats, run.Error,
	)
	return err
}

const selectRuns = `
	SELECT id, kind, config_path, config_hash, run_hash, sink,
	       seed, row_count, total_rows, status, started_at, completed_at, stats, error
	FROM runs
`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(s scanner) (*domain.RunRecord, error) {
	var run domain.RunRecord
	var kind, status, startedAtStr string
	var configHash, runHash, completedAtStr, statsStr, errorStr sql.NullString

	err := s.Scan(
		&run.ID, &kind, &run.ConfigPath, &configHash, &runHash, &run.Sink,
		&run.Seed, &run.RowCount, &run.TotalRows, &status,
		&startedAtStr, &completedAtStr, &statsStr, &errorStr,
	)
	if err != nil {
		return nil, err
	}

	run.Kind = domain.RunKind(kind)
	run.Status = domain.RunStatus(status)
	run.ConfigHash = configHash.String
	run.RunHash = runHash.String
	run.StartedAt, _ = time.Parse(time.RFC3339Nano, startedAtStr)
	if completedAtStr.Valid {
		t, _ := time.Parse(time.RFC3339Nano, completedAtStr.String)
		run.CompletedAt = &t
	}
	if statsStr.Valid {
		run.Stats = json.RawMessage(statsStr.String)
	}
	run.Error = errorStr.String
	return &run, nil
}

func (r *SQLiteRepository) Get(id string) (*domain.RunRecord, error) {
	return scanRun(r.db.QueryRow(selectRuns+" WHERE id = ?", id))
}

func (r *SQLiteRepository) List(limit int, status domain.RunStatus) ([]*domain.RunRecord, error) {
	query := selectRuns

	args := make([]interface{}, 0)
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, string(status))
	}

	query += " ORDER BY started_at DESC"

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]*domain.RunRecord, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}
