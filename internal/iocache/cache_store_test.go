package iocache

import (
	"bytes"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/huangsam/spans/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetOnce() {
	initOnce = sync.Once{}
	closeOnce = sync.Once{}
	Manager = &CacheStoreManager{}
}

func TestStores(t *testing.T) {
	t.Run("single setup", func(t *testing.T) {
		resetOnce()
		dir := t.TempDir()
		cachePath := filepath.Join(dir, "cache.db")
		historyPath := filepath.Join(dir, "history.db")

		err := InitStores(schema.SQLiteBackend, cachePath, schema.SQLiteBackend, historyPath)
		require.NoError(t, err)

		assert.NotNil(t, Manager.GetCacheStore())
		assert.NotNil(t, Manager.GetHistoryStore())

		CloseStores()

		_, err = os.Stat(cachePath)
		assert.NoError(t, err, "cache database should be created")
		_, err = os.Stat(historyPath)
		assert.NoError(t, err, "history database should be created")
	})

	t.Run("idempotent setup", func(t *testing.T) {
		resetOnce()
		cachePath := filepath.Join(t.TempDir(), "cache.db")

		err1 := InitStores(schema.SQLiteBackend, cachePath, "", "")
		err2 := InitStores(schema.SQLiteBackend, cachePath, "", "")
		assert.NoError(t, err1)
		assert.NoError(t, err2)
		assert.Nil(t, Manager.GetHistoryStore())

		CloseStores()
		CloseStores()
	})

	t.Run("none backend", func(t *testing.T) {
		resetOnce()
		require.NoError(t, InitStores(schema.NoneBackend, "", schema.NoneBackend, ""))

		store := Manager.GetCacheStore()
		require.NotNil(t, store)
		_, _, _, err := store.Get("missing")
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, store.Set("k", []byte("v"), 1, 0))

		CloseStores()
	})

	t.Run("bad backend", func(t *testing.T) {
		resetOnce()
		err := InitStores("oracle", "", "", "")
		assert.Error(t, err)
	})
}

func TestCacheStore_SQLite(t *testing.T) {
	store, err := NewCacheStore(passCacheTable, schema.SQLiteBackend, filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, _, _, err = store.Get("nope")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	now := time.Now().Unix()
	require.NoError(t, store.Set("key", []byte("first"), 1, now))
	require.NoError(t, store.Set("key", []byte("second"), 2, now+1))

	value, version, ts, err := store.Get("key")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), value)
	assert.Equal(t, 2, version)
	assert.Equal(t, now+1, ts)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 1, status.TotalEntries)
	assert.Equal(t, now+1, status.LastEntryTime.Unix())
	assert.Greater(t, status.TableSizeBytes, int64(0))
}

func TestCacheStore_InvalidTableName(t *testing.T) {
	tests := []string{"", "1abc", "drop table;", "a-b", "name with space"}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewCacheStore(name, schema.NoneBackend, "")
			assert.Error(t, err)
		})
	}
}

func TestClearCache(t *testing.T) {
	t.Run("sqlite removes file", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "cache.db")
		store, err := NewCacheStore(passCacheTable, schema.SQLiteBackend, dbPath)
		require.NoError(t, err)
		require.NoError(t, store.Close())

		require.NoError(t, ClearCache(schema.SQLiteBackend, dbPath, ""))
		_, err = os.Stat(dbPath)
		assert.True(t, os.IsNotExist(err))

		// Clearing twice is fine
		assert.NoError(t, ClearCache(schema.SQLiteBackend, dbPath, ""))
	})

	t.Run("sqlite needs path", func(t *testing.T) {
		assert.Error(t, ClearCache(schema.SQLiteBackend, "", ""))
	})

	t.Run("none is a no-op", func(t *testing.T) {
		assert.NoError(t, ClearHistory(schema.NoneBackend, "", ""))
	})

	t.Run("unsupported", func(t *testing.T) {
		assert.Error(t, ClearCache("oracle", "", ""))
	})
}

func TestSQLHelpers(t *testing.T) {
	assert.Equal(t, "`pass_cache`", quoteTableName("pass_cache", schema.MySQLBackend))
	assert.Equal(t, `"pass_cache"`, quoteTableName("pass_cache", schema.PostgreSQLBackend))

	assert.Equal(t, "SELECT a FROM t WHERE x = $1 AND y = $2", rebind(schema.PostgreSQLBackend, "SELECT a FROM t WHERE x = ? AND y = ?"))
	assert.Equal(t, "x = ?", rebind(schema.SQLiteBackend, "x = ?"))

	for backend, want := range map[schema.DatabaseBackend]string{
		schema.SQLiteBackend:     "sqlite",
		schema.MySQLBackend:      "mysql",
		schema.PostgreSQLBackend: "pgx",
	} {
		got, err := driverNameFor(backend)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := driverNameFor(schema.NoneBackend)
	assert.Error(t, err)
}

func TestPrintCacheStatus(t *testing.T) {
	var out bytes.Buffer
	PrintCacheStatus(&out, schema.CacheStatus{Backend: "sqlite", Connected: true, TotalEntries: 0, TableSizeBytes: 4096})
	assert.Equal(t, "Cache Backend: sqlite\nConnected: true\nTotal Entries: 0\nTable Size: 4096 bytes\n", out.String())
}
