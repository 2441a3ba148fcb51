// Package store defines the storage interfaces for simulation results and
// participant profiles, with file, SQLite, Redis, and in-memory backends.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/nvandessel/auralie/internal/models"
)

// ErrNotFound is returned when a result or profile does not exist.
var ErrNotFound = errors.New("not found")

// ResultStore persists simulation results keyed by simulation ID.
// Save is an upsert: saving a partial result and later the completed one
// leaves only the latest under that ID.
type ResultStore interface {
	Save(ctx context.Context, result *models.SimulationResult) error
	Get(ctx context.Context, id string) (*models.SimulationResult, error)

	// List returns summaries ordered by start time, newest first.
	List(ctx context.Context) ([]models.Summary, error)

	Close() error
}

// ProfileStore looks up participant profiles by ID.
type ProfileStore interface {
	Get(ctx context.Context, id string) (*models.Profile, error)

	// List returns all profiles ordered by ID.
	List(ctx context.Context) ([]*models.Profile, error)
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Options selects and configures a result store backend.
type Options struct {
	Backend     string
	Dir         string
	SQLitePath  string
	RedisAddr   string
	RedisPrefix string
}

// Open creates the result store named by opts.Backend.
func Open(ctx context.Context, opts Options) (ResultStore, error) {
	switch opts.Backend {
	case BackendMemory:
		return NewMemoryResultStore(), nil
	case BackendFile, "":
		return NewFileResultStore(opts.Dir)
	case BackendSQLite:
		return NewSQLiteResultStore(ctx, opts.SQLitePath)
	case BackendRedis:
		return NewRedisResultStore(ctx, opts.RedisAddr, opts.RedisPrefix)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}

func sortSummaries(s []models.Summary) {
	sort.SliceStable(s, func(i, j int) bool {
		if !s[i].StartTime.Equal(s[j].StartTime) {
			return s[i].StartTime.After(s[j].StartTime)
		}
		return s[i].ID < s[j].ID
	})
}
