package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "JWT_SECRET", "TOKEN_TTL", "STORE_DRIVER", "DATA_DIR"} {
		t.Setenv(key, "")
	}
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, 72*time.Hour, cfg.TokenTTL)
	assert.Equal(t, DriverFile, cfg.StoreDriver)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
}

func TestLoadRejectsBadSettings(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")

	t.Setenv("TOKEN_TTL", "three days")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("STORE_DRIVER", "redis")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("STORE_DRIVER", DriverPostgres)
	t.Setenv("POSTGRES_URL", "")
	_, err = Load()
	assert.Error(t, err)
}

func TestProductionNeedsSecret(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("TOKEN_TTL", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestInitDBFileDriver(t *testing.T) {
	dir := t.TempDir()
	db, err := InitDB(t.Context(), &Config{StoreDriver: DriverFile, DataDir: dir})
	require.NoError(t, err)
	defer db.CloseDB()
	require.NotNil(t, db.Snapshots)
	assert.Nil(t, db.Postgres)
	assert.Nil(t, db.Mongo)
}

func TestInitDBSQLiteDriver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db", "friendbook.db")
	db, err := InitDB(t.Context(), &Config{StoreDriver: DriverSQLite, SQLitePath: path})
	require.NoError(t, err)
	defer db.CloseDB()
	require.NotNil(t, db.SQLite)

	require.NoError(t, db.Snapshots.Save(t.Context(), "users", []byte(`[]`)))
	data, err := db.Snapshots.Load(t.Context(), "users")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}
