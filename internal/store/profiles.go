package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nvandessel/auralie/internal/models"
	"github.com/nvandessel/auralie/internal/sanitize"
)

var profileExts = []string{".yaml", ".yml", ".json"}

// DirProfileStore implements ProfileStore over a directory of profile
// files named <id>.yaml, <id>.yml, or <id>.json.
type DirProfileStore struct {
	dir string
}

// NewDirProfileStore creates a profile store rooted at dir. The directory
// is created on first Save.
func NewDirProfileStore(dir string) *DirProfileStore {
	return &DirProfileStore{dir: dir}
}

// Dir returns the profile directory.
func (s *DirProfileStore) Dir() string { return s.dir }

// Get loads the profile with id.
func (s *DirProfileStore) Get(ctx context.Context, id string) (*models.Profile, error) {
	if id == "" || strings.ContainsAny(id, `/\`) {
		return nil, fmt.Errorf("invalid profile id %q", id)
	}
	for _, ext := range profileExts {
		path := filepath.Join(s.dir, id+ext)
		p, err := readProfile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if p.ID == "" {
			p.ID = id
		}
		return p, nil
	}
	return nil, fmt.Errorf("profile %s: %w", id, ErrNotFound)
}

// List loads every profile file in the directory. A missing directory is
// an empty store; a malformed file is an error.
func (s *DirProfileStore) List(ctx context.Context) ([]*models.Profile, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile directory: %w", err)
	}

	seen := make(map[string]bool)
	var out []*models.Profile
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || !isProfileExt(ext) {
			continue
		}
		p, err := readProfile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			return nil, err
		}
		if p.ID == "" {
			p.ID = strings.TrimSuffix(e.Name(), ext)
		}
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Save sanitizes and validates p, then writes it as <dir>/<id>.yaml.
func (s *DirProfileStore) Save(ctx context.Context, p *models.Profile) (string, error) {
	cp := *p
	sanitize.Profile(&cp)
	cp.Normalize()
	if err := cp.Validate(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create profile directory: %w", err)
	}
	data, err := yaml.Marshal(&cp)
	if err != nil {
		return "", fmt.Errorf("failed to encode profile %s: %w", cp.ID, err)
	}
	path := filepath.Join(s.dir, cp.ID+".yaml")
	if err := writeFileAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}

func isProfileExt(ext string) bool {
	for _, e := range profileExts {
		if ext == e {
			return true
		}
	}
	return false
}

func readProfile(path string) (*models.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p models.Profile
	if filepath.Ext(path) == ".json" {
		err = json.Unmarshal(data, &p)
	} else {
		err = yaml.Unmarshal(data, &p)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	// Profile text ends up verbatim in agent system prompts.
	sanitize.Profile(&p)
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &p, nil
}
