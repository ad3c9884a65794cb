package database

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

//go:embed migrations/*
var migrationsFS embed.FS

// MigrationsTempDir writes the embedded migrations of one db driver into a fresh temporary
// directory and returns its path, so that the binary does not need the sql files next to it.
//
// The caller removes the directory once the migration is done.
func MigrationsTempDir(driver string) (string, error) {
	entries, err := fs.ReadDir(migrationsFS, path.Join("migrations", driver))
	if err != nil {
		return "", fmt.Errorf("no migrations for driver %q: %w", driver, err)
	}

	tmpDir, err := os.MkdirTemp("", "thortx-migrations-*")
	if err != nil {
		return "", err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		content, err := migrationsFS.ReadFile(path.Join("migrations", driver, entry.Name()))
		if err != nil {
			os.RemoveAll(tmpDir)
			return "", err
		}

		dst := filepath.Join(tmpDir, entry.Name())
		if err := os.WriteFile(dst, content, 0600); err != nil {
			os.RemoveAll(tmpDir)
			return "", fmt.Errorf("failed to write %q: %w", dst, err)
		}
	}

	return tmpDir, nil
}
