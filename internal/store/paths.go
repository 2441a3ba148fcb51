package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeDir returns the per-user data directory.
// On Unix: ~/.auralie
// On Windows: %USERPROFILE%\.auralie
func HomeDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".auralie"), nil
}

// ResultsDir is where the file backend writes results under root.
func ResultsDir(root string) string {
	return filepath.Join(root, "simulations")
}

// ProfilesDir is where profile files live under root.
func ProfilesDir(root string) string {
	return filepath.Join(root, "profiles")
}

// SQLitePath is the default database location under root.
func SQLitePath(root string) string {
	return filepath.Join(root, "auralie.db")
}
