package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/nvandessel/auralie/internal/models"
)

// FileResultStore implements ResultStore as one indented JSON file per
// simulation under dir. Writes go through a temp file and rename so a
// crash never leaves a truncated result behind.
type FileResultStore struct {
	mu  sync.RWMutex
	dir string

	// LoadErrors records files List could not decode. They are skipped.
	LoadErrors []LoadError
}

// LoadError describes a result file that could not be read.
type LoadError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// NewFileResultStore creates a store rooted at dir, creating it if needed.
func NewFileResultStore(dir string) (*FileResultStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("result directory is required")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create result directory: %w", err)
	}
	return &FileResultStore{dir: dir}, nil
}

// Dir returns the directory results are written to.
func (s *FileResultStore) Dir() string { return s.dir }

func (s *FileResultStore) path(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", fmt.Errorf("invalid result id %q", id)
	}
	return filepath.Join(s.dir, id+".json"), nil
}

// Save writes result to <dir>/<id>.json.
func (s *FileResultStore) Save(ctx context.Context, result *models.SimulationResult) error {
	if err := ValidateResult(result); err != nil {
		return fmt.Errorf("invalid result: %w", err)
	}
	path, err := s.path(result.ID)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result %s: %w", result.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return writeFileAtomic(path, data)
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Get reads the result saved under id.
func (s *FileResultStore) Get(ctx context.Context, id string) (*models.SimulationResult, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	data, err := os.ReadFile(path)
	s.mu.RUnlock()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("result %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read result %s: %w", id, err)
	}
	var r models.SimulationResult
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode result %s: %w", id, err)
	}
	return &r, nil
}

// List decodes every result file in the directory. Malformed files are
// recorded in LoadErrors and skipped.
func (s *FileResultStore) List(ctx context.Context) ([]models.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read result directory: %w", err)
	}
	s.LoadErrors = s.LoadErrors[:0]
	out := make([]models.Summary, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") || strings.HasPrefix(name, ".") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(s.dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			s.LoadErrors = append(s.LoadErrors, LoadError{File: path, Error: err.Error()})
			continue
		}
		var r models.SimulationResult
		if err := json.Unmarshal(data, &r); err != nil {
			s.LoadErrors = append(s.LoadErrors, LoadError{File: path, Error: err.Error()})
			continue
		}
		out = append(out, r.Summarize())
	}
	sortSummaries(out)
	return out, nil
}

// Close is a no-op; every Save is already durable.
func (s *FileResultStore) Close() error { return nil }
