package iocache

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/huangsam/protopair/schema"
	"github.com/stretchr/testify/assert"
)

func resetStoreState() {
	initOnce = sync.Once{}
	closeOnce = sync.Once{}
	Manager.transactions = nil
	Manager.results = nil
}

func TestInitStores(t *testing.T) {
	t.Run("sqlite setup", func(t *testing.T) {
		resetStoreState()
		defer resetStoreState()

		err := InitStores(schema.SQLiteBackend, ":memory:", "", "")
		assert.NoError(t, err, "Failed to initialize persistence")
		assert.NotNil(t, Manager.GetTransactionStore(), "Transaction store should not be nil")
		assert.Nil(t, Manager.GetResultsStore(), "Results store should stay disabled")

		CloseStores()
	})

	t.Run("idempotent setup", func(t *testing.T) {
		resetStoreState()
		defer resetStoreState()

		// Multiple initializations should be safe (sync.Once)
		assert.NoError(t, InitStores(schema.SQLiteBackend, ":memory:", "", ""))
		assert.NoError(t, InitStores(schema.SQLiteBackend, ":memory:", "", ""))

		// Multiple closes should be safe (sync.Once)
		CloseStores()
		CloseStores()
	})

	t.Run("both stores enabled", func(t *testing.T) {
		resetStoreState()
		defer resetStoreState()

		tmpDir := t.TempDir()
		cachePath := filepath.Join(tmpDir, "cache.db")
		resultsPath := filepath.Join(tmpDir, "results.db")

		err := InitStores(schema.SQLiteBackend, cachePath, schema.SQLiteBackend, resultsPath)
		assert.NoError(t, err)
		assert.NotNil(t, Manager.GetTransactionStore())
		assert.NotNil(t, Manager.GetResultsStore())

		CloseStores()
	})

	t.Run("none backend operations", func(t *testing.T) {
		store, err := NewCacheStore("test_table", schema.NoneBackend, "")
		assert.NoError(t, err, "Failed to create none backend store")

		// Get returns error (no data), Set is a no-op
		_, _, _, err = store.Get("test_key")
		assert.Equal(t, sql.ErrNoRows, err)

		assert.NoError(t, store.Set("test_key", []byte("test_value"), 1, 123456789))

		_, _, _, err = store.Get("test_key")
		assert.Error(t, err, "Expected error from Get after Set on none backend")

		assert.NoError(t, store.Close())
	})
}

// TestSQLiteBackendOperations tests the full lifecycle of SQLite backend operations.
func TestSQLiteBackendOperations(t *testing.T) {
	t.Run("set and get operations", func(t *testing.T) {
		store, err := NewCacheStore("test_table", schema.SQLiteBackend, ":memory:")
		assert.NoError(t, err, "Failed to create SQLite store")
		defer func() { _ = store.Close() }()

		err = store.Set("test_key", []byte("test_value_data"), 1, int64(1234567890))
		assert.NoError(t, err, "Set should not fail")

		value, version, timestamp, err := store.Get("test_key")
		assert.NoError(t, err, "Get should not fail")
		assert.Equal(t, "test_value_data", string(value))
		assert.Equal(t, 1, version)
		assert.Equal(t, int64(1234567890), timestamp)
	})

	t.Run("upsert behavior", func(t *testing.T) {
		store, err := NewCacheStore("test_table", schema.SQLiteBackend, ":memory:")
		assert.NoError(t, err, "Failed to create SQLite store")
		defer func() { _ = store.Close() }()

		assert.NoError(t, store.Set("upsert_key", []byte("initial_value"), 1, 1000))
		assert.NoError(t, store.Set("upsert_key", []byte("updated_value"), 2, 2000))

		value, version, timestamp, err := store.Get("upsert_key")
		assert.NoError(t, err, "Get after update should not fail")
		assert.Equal(t, "updated_value", string(value))
		assert.Equal(t, 2, version)
		assert.Equal(t, int64(2000), timestamp)
	})

	t.Run("get non-existent key", func(t *testing.T) {
		store, err := NewCacheStore("test_table", schema.SQLiteBackend, ":memory:")
		assert.NoError(t, err, "Failed to create SQLite store")
		defer func() { _ = store.Close() }()

		_, _, _, err = store.Get("non_existent_key")
		assert.Equal(t, sql.ErrNoRows, err)
	})
}

// TestGetPlaceholder tests the getPlaceholder method for different backends.
func TestGetPlaceholder(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		want    string
	}{
		{"SQLite backend", schema.SQLiteBackend, "?"},
		{"MySQL backend", schema.MySQLBackend, "?"},
		{"PostgreSQL backend", schema.PostgreSQLBackend, "$1"},
		{"None backend", schema.NoneBackend, "?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &CacheStoreImpl{backend: tt.backend}
			assert.Equal(t, tt.want, store.getPlaceholder())
		})
	}
}

// TestGetUpsertQuery tests the getUpsertQuery method for different backends.
func TestGetUpsertQuery(t *testing.T) {
	tests := []struct {
		name         string
		backend      schema.DatabaseBackend
		wantContains []string
	}{
		{"SQLite backend", schema.SQLiteBackend, []string{"INSERT OR REPLACE", "test_table"}},
		{"MySQL backend", schema.MySQLBackend, []string{"INSERT INTO", "ON DUPLICATE KEY UPDATE", "`test_table`"}},
		{"PostgreSQL backend", schema.PostgreSQLBackend, []string{"INSERT INTO", "ON CONFLICT", "DO UPDATE SET", `"test_table"`, "$1", "$2", "$3", "$4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &CacheStoreImpl{backend: tt.backend, tableName: "test_table"}
			got := store.getUpsertQuery()
			for _, want := range tt.wantContains {
				assert.Contains(t, got, want, "getUpsertQuery() should contain %q", want)
			}
		})
	}
}

// TestGetCreateTableQuery tests the getCreateTableQuery function for different backends.
func TestGetCreateTableQuery(t *testing.T) {
	tests := []struct {
		name         string
		backend      schema.DatabaseBackend
		wantContains []string
	}{
		{
			"SQLite backend", schema.SQLiteBackend,
			[]string{"CREATE TABLE IF NOT EXISTS", "test_table", "cache_key TEXT PRIMARY KEY", "cache_value BLOB", "cache_timestamp INTEGER"},
		},
		{
			"MySQL backend", schema.MySQLBackend,
			[]string{"CREATE TABLE IF NOT EXISTS", "`test_table`", "cache_key VARCHAR(255) PRIMARY KEY", "cache_value BLOB", "cache_timestamp BIGINT"},
		},
		{
			"PostgreSQL backend", schema.PostgreSQLBackend,
			[]string{"CREATE TABLE IF NOT EXISTS", `"test_table"`, "cache_key TEXT PRIMARY KEY", "cache_value BYTEA", "cache_timestamp BIGINT"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := getCreateTableQuery("test_table", tt.backend)
			for _, want := range tt.wantContains {
				assert.Contains(t, got, want, "getCreateTableQuery() should contain %q", want)
			}
		})
	}
}

// TestNewCacheStoreErrors tests error scenarios in NewCacheStore.
func TestNewCacheStoreErrors(t *testing.T) {
	t.Run("invalid table name", func(t *testing.T) {
		_, err := NewCacheStore("invalid-name", schema.SQLiteBackend, "")
		assert.Error(t, err)
	})

	t.Run("empty table name", func(t *testing.T) {
		_, err := NewCacheStore("", schema.SQLiteBackend, "")
		assert.Error(t, err)
	})

	t.Run("unsupported backend", func(t *testing.T) {
		_, err := NewCacheStore("test_table", "unsupported", "")
		assert.Error(t, err)
	})
}

// TestClearCache tests the ClearCache function.
func TestClearCache(t *testing.T) {
	t.Run("SQLite backend", func(t *testing.T) {
		tmpDir := t.TempDir()
		dbPath := filepath.Join(tmpDir, "test_clear.db")

		db, err := sql.Open("sqlite", dbPath)
		assert.NoError(t, err, "Failed to create database")
		_, err = db.Exec("CREATE TABLE test (id INTEGER PRIMARY KEY)")
		assert.NoError(t, err, "Failed to create table")
		assert.NoError(t, db.Close())

		assert.NoError(t, ClearCache(schema.SQLiteBackend, dbPath, ""))

		_, err = os.Stat(dbPath)
		assert.True(t, os.IsNotExist(err), "Database file should be removed after ClearCache")
	})

	t.Run("SQLite backend - non-existent file", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "non_existent.db")
		assert.NoError(t, ClearCache(schema.SQLiteBackend, dbPath, ""))
	})

	t.Run("NoneBackend", func(t *testing.T) {
		assert.NoError(t, ClearCache(schema.NoneBackend, "", ""))
	})

	t.Run("empty dbFilePath for SQLite", func(t *testing.T) {
		assert.Error(t, ClearCache(schema.SQLiteBackend, "", ""))
	})

	t.Run("unsupported backend", func(t *testing.T) {
		assert.Error(t, ClearCache("unsupported", "", ""))
	})
}

// TestClearResults tests the ClearResults function.
func TestClearResults(t *testing.T) {
	t.Run("SQLite backend", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "test_results.db")
		assert.NoError(t, os.WriteFile(dbPath, []byte{}, 0o644))

		assert.NoError(t, ClearResults(schema.SQLiteBackend, dbPath, ""))

		_, err := os.Stat(dbPath)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("NoneBackend", func(t *testing.T) {
		assert.NoError(t, ClearResults(schema.NoneBackend, "", ""))
	})

	t.Run("empty dbFilePath for SQLite", func(t *testing.T) {
		assert.Error(t, ClearResults(schema.SQLiteBackend, "", ""))
	})
}

// TestCacheStoreGetStatus tests the GetStatus method for different backends.
func TestCacheStoreGetStatus(t *testing.T) {
	t.Run("SQLite backend with data", func(t *testing.T) {
		store, err := NewCacheStore("test_status_table", schema.SQLiteBackend, ":memory:")
		assert.NoError(t, err, "Failed to create SQLite store")
		defer func() { _ = store.Close() }()

		for _, data := range []struct {
			key string
			ts  int64
		}{
			{"key1", 1000},
			{"key2", 2000},
			{"key3", 1500},
		} {
			assert.NoError(t, store.Set(data.key, []byte("value"), 1, data.ts))
		}

		status, err := store.GetStatus()
		assert.NoError(t, err, "GetStatus should not fail")
		assert.Equal(t, "sqlite", status.Backend)
		assert.True(t, status.Connected)
		assert.Equal(t, 3, status.TotalEntries)
		assert.Equal(t, time.Unix(2000, 0), status.LastEntryTime)
		assert.Equal(t, time.Unix(1000, 0), status.OldestEntryTime)
		assert.Greater(t, status.TableSizeBytes, int64(0))
	})

	t.Run("SQLite backend empty", func(t *testing.T) {
		store, err := NewCacheStore("test_empty_table", schema.SQLiteBackend, ":memory:")
		assert.NoError(t, err, "Failed to create SQLite store")
		defer func() { _ = store.Close() }()

		status, err := store.GetStatus()
		assert.NoError(t, err)
		assert.Equal(t, 0, status.TotalEntries)
		assert.True(t, status.LastEntryTime.IsZero())
		assert.True(t, status.OldestEntryTime.IsZero())
	})

	t.Run("None backend", func(t *testing.T) {
		store, err := NewCacheStore("test_none", schema.NoneBackend, "")
		assert.NoError(t, err)

		status, err := store.GetStatus()
		assert.NoError(t, err)
		assert.Equal(t, "none", status.Backend)
		assert.False(t, status.Connected)
		assert.Equal(t, 0, status.TotalEntries)
	})
}
