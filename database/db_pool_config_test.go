package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetPoolConfigFromEnv(t *testing.T) {
	t.Run("should fall back to the defaults", func(t *testing.T) {
		t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")
		t.Setenv("DB_CONN_MAX_LIFETIME", "")

		cfg := GetPoolConfigFromEnv()
		assert.Equal(t, int32(25), cfg.MaxOpenConns)
		assert.Equal(t, 4*time.Hour, cfg.ConnMaxLifetime)
		assert.Equal(t, int32(5), cfg.OrgMaxOpenConns)
		assert.Equal(t, 32, cfg.OrgCacheSize)
		assert.Equal(t, 10*time.Minute, cfg.OrgCloseGrace)
	})

	t.Run("should read the environment", func(t *testing.T) {
		t.Setenv("POSTGRES_DB", "partchain")
		t.Setenv("DB_MAX_OPEN_CONNS", "40")
		t.Setenv("DB_CONN_MAX_IDLE_TIME", "1m")
		t.Setenv("DB_ORG_CACHE_SIZE", "4")

		cfg := GetPoolConfigFromEnv()
		assert.Equal(t, "partchain", cfg.DBName)
		assert.Equal(t, int32(40), cfg.MaxOpenConns)
		assert.Equal(t, time.Minute, cfg.ConnMaxIdleTime)
		assert.Equal(t, 4, cfg.OrgCacheSize)
	})
}

func TestForDatabase(t *testing.T) {
	t.Run("should point to the organization database with a smaller pool", func(t *testing.T) {
		base := PoolConfig{DBName: "partchain", MaxOpenConns: 25, MinConns: 10}

		cfg := base.ForDatabase("lion", 5)
		assert.Equal(t, "lion", cfg.DBName)
		assert.Equal(t, int32(5), cfg.MaxOpenConns)
		assert.Equal(t, int32(5), cfg.MinConns)
		assert.Equal(t, "partchain", base.DBName)
	})
}
