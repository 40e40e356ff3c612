package iocache

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/huangsam/protopair/schema"
	"github.com/stretchr/testify/assert"
)

// tableExists reports whether a table is present in the SQLite database.
func tableExists(t *testing.T, dbPath, tableName string) bool {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	assert.NoError(t, err, "Failed to open database")
	defer func() { _ = db.Close() }()

	var count int
	row := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", tableName)
	assert.NoError(t, row.Scan(&count))
	return count > 0
}

func TestMigrateResults(t *testing.T) {
	t.Run("migrate up to latest", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "results.db")

		err := MigrateResults(schema.SQLiteBackend, dbPath, -1)
		assert.NoError(t, err, "Migration to latest should not fail")

		assert.True(t, tableExists(t, dbPath, runsTable))
		assert.True(t, tableExists(t, dbPath, pairsTable))
		assert.True(t, tableExists(t, dbPath, "schema_migrations"))
	})

	t.Run("migrate up is idempotent", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "results.db")

		assert.NoError(t, MigrateResults(schema.SQLiteBackend, dbPath, -1))
		assert.NoError(t, MigrateResults(schema.SQLiteBackend, dbPath, -1))
	})

	t.Run("migrate to specific version", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "results.db")

		err := MigrateResults(schema.SQLiteBackend, dbPath, 1)
		assert.NoError(t, err, "Migration to version 1 should not fail")

		assert.True(t, tableExists(t, dbPath, runsTable))
		assert.True(t, tableExists(t, dbPath, pairsTable))
	})

	t.Run("roll back to version 0", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "results.db")

		assert.NoError(t, MigrateResults(schema.SQLiteBackend, dbPath, -1))
		assert.NoError(t, MigrateResults(schema.SQLiteBackend, dbPath, 0))

		assert.False(t, tableExists(t, dbPath, runsTable), "runs table should be dropped after rollback")
		assert.False(t, tableExists(t, dbPath, pairsTable), "pairs table should be dropped after rollback")
	})

	t.Run("none backend is rejected", func(t *testing.T) {
		err := MigrateResults(schema.NoneBackend, "", -1)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not supported")
	})

	t.Run("unsupported backend is rejected", func(t *testing.T) {
		err := MigrateResults("unsupported", "", -1)
		assert.Error(t, err)
	})
}
