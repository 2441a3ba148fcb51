package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nvandessel/auralie/internal/models"
)

// SQLiteResultStore implements ResultStore on a single SQLite database.
type SQLiteResultStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteResultStore opens (or creates) the database at dbPath.
func NewSQLiteResultStore(ctx context.Context, dbPath string) (*SQLiteResultStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite works best with single writer

	if err := InitSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &SQLiteResultStore{db: db, dbPath: dbPath}, nil
}

// Path returns the database file path.
func (s *SQLiteResultStore) Path() string { return s.dbPath }

// Save upserts result.
func (s *SQLiteResultStore) Save(ctx context.Context, result *models.SimulationResult) error {
	if err := ValidateResult(result); err != nil {
		return fmt.Errorf("invalid result: %w", err)
	}
	doc, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result %s: %w", result.ID, err)
	}
	summary, err := json.Marshal(result.Summarize())
	if err != nil {
		return fmt.Errorf("failed to encode summary %s: %w", result.ID, err)
	}
	var score sql.NullFloat64
	if result.Compatibility != nil {
		score = sql.NullFloat64{Float64: result.Compatibility.Score, Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO simulations (
			id, person1_id, person2_id, status, completed_days, score,
			start_time, updated_at, summary, document
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			completed_days = excluded.completed_days,
			score = excluded.score,
			updated_at = excluded.updated_at,
			summary = excluded.summary,
			document = excluded.document`,
		result.ID,
		result.Participants.Person1ID,
		result.Participants.Person2ID,
		string(result.Status),
		result.CompletedDays,
		score,
		result.StartTime.UTC().Format(time.RFC3339Nano),
		time.Now().UTC().Format(time.RFC3339Nano),
		string(summary),
		string(doc),
	)
	if err != nil {
		return fmt.Errorf("failed to save result %s: %w", result.ID, err)
	}
	return nil
}

// Get loads the result with id.
func (s *SQLiteResultStore) Get(ctx context.Context, id string) (*models.SimulationResult, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT document FROM simulations WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("result %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load result %s: %w", id, err)
	}
	var r models.SimulationResult
	if err := json.Unmarshal([]byte(doc), &r); err != nil {
		return nil, fmt.Errorf("failed to decode result %s: %w", id, err)
	}
	return &r, nil
}

// List returns the stored summaries, newest first.
func (s *SQLiteResultStore) List(ctx context.Context) ([]models.Summary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT summary FROM simulations`)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	defer rows.Close()

	var out []models.Summary
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		var sum models.Summary
		if err := json.Unmarshal([]byte(raw), &sum); err != nil {
			return nil, fmt.Errorf("failed to decode summary: %w", err)
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sortSummaries(out)
	return out, nil
}

// PairHistory returns the summaries of every simulation between the two
// profile IDs, in either order.
func (s *SQLiteResultStore) PairHistory(ctx context.Context, a, b string) ([]models.Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT summary FROM simulations
		WHERE (person1_id = ? AND person2_id = ?) OR (person1_id = ? AND person2_id = ?)`,
		a, b, b, a)
	if err != nil {
		return nil, fmt.Errorf("failed to query pair history: %w", err)
	}
	defer rows.Close()

	var out []models.Summary
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		var sum models.Summary
		if err := json.Unmarshal([]byte(raw), &sum); err != nil {
			return nil, fmt.Errorf("failed to decode summary: %w", err)
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sortSummaries(out)
	return out, nil
}

// Close closes the database.
func (s *SQLiteResultStore) Close() error {
	return s.db.Close()
}
