// Package pathutil guards the file paths the CLI reads and writes on a
// user's behalf (simulation exports and imports).
package pathutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideAllowed is returned when a path resolves outside every
// allowed directory.
var ErrOutsideAllowed = errors.New("path is outside allowed directories")

// RedactPath reduces a path to .../<parent>/<basename> for error messages,
// e.g. "/home/ana/.auralie/simulations/x.json" becomes ".../simulations/x.json".
func RedactPath(path string) string {
	if path == "" {
		return ""
	}
	cleaned := filepath.Clean(path)
	base := filepath.Base(cleaned)
	parent := filepath.Base(filepath.Dir(cleaned))
	if parent == "." || parent == string(filepath.Separator) {
		return base
	}
	return ".../" + parent + "/" + base
}

// ValidatePath checks that path lies inside one of allowed after cleaning
// and symlink resolution. The target itself may not exist yet.
func ValidatePath(path string, allowed []string) error {
	switch {
	case path == "":
		return fmt.Errorf("invalid path: empty")
	case len(allowed) == 0:
		return fmt.Errorf("invalid path: no allowed directories configured")
	case strings.ContainsRune(path, '\x00'):
		return fmt.Errorf("invalid path: contains null byte")
	}

	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}
	// Resolve the parent so a symlinked directory inside an allowed root
	// cannot point somewhere else.
	dir, err := resolveExisting(filepath.Dir(abs))
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}
	resolved := filepath.Join(dir, filepath.Base(abs))

	for _, root := range allowed {
		rootAbs, err := filepath.Abs(filepath.Clean(root))
		if err != nil {
			continue
		}
		rootResolved, err := resolveExisting(rootAbs)
		if err != nil {
			continue
		}
		if within(resolved, rootResolved) {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrOutsideAllowed, RedactPath(abs))
}

// AllowedDataDirs returns the directories exports and imports may touch:
// the data home, the user's home directory, and the working directory.
// Empty or unresolvable entries are skipped.
func AllowedDataDirs(dataHome string) []string {
	var dirs []string
	if dataHome != "" {
		dirs = append(dirs, dataHome)
	}
	if h, err := os.UserHomeDir(); err == nil && h != "" {
		dirs = append(dirs, h)
	}
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	return dirs
}

// resolveExisting resolves symlinks on the deepest existing ancestor of
// dir and re-appends the missing tail.
func resolveExisting(dir string) (string, error) {
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		return resolved, nil
	}
	parent := filepath.Dir(dir)
	if parent == dir {
		return "", fmt.Errorf("cannot resolve %s", RedactPath(dir))
	}
	resolved, err := resolveExisting(parent)
	if err != nil {
		return "", err
	}
	return filepath.Join(resolved, filepath.Base(dir)), nil
}

func within(path, root string) bool {
	if path == root {
		return true
	}
	return strings.HasPrefix(path, strings.TrimSuffix(root, string(os.PathSeparator))+string(os.PathSeparator))
}
