package database_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sisu-network/thortx/config"
	"github.com/sisu-network/thortx/database"
	"github.com/stretchr/testify/require"
)

func TestMigrationsTempDir(t *testing.T) {
	t.Parallel()

	for _, driver := range []string{config.DbDriverMysql, config.DbDriverPostgres, config.DbDriverSqlite} {
		tmpDir, err := database.MigrationsTempDir(driver)
		require.Nil(t, err)
		defer os.RemoveAll(tmpDir)

		// go test runs in the package directory, so the sources are readable from disk.
		onDisk, err := os.ReadDir(filepath.Join("migrations", driver))
		require.Nil(t, err)
		require.NotEmpty(t, onDisk)

		for _, entry := range onDisk {
			expected, err := os.ReadFile(filepath.Join("migrations", driver, entry.Name()))
			require.Nil(t, err)

			actual, err := os.ReadFile(filepath.Join(tmpDir, entry.Name()))
			require.Nil(t, err)
			require.Equal(t, expected, actual, "contents differed for %s/%s", driver, entry.Name())
		}
	}

	_, err := database.MigrationsTempDir("oracle")
	require.NotNil(t, err)
}
