package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		// Given: a config with only the log level
		path := writeConfig(t, "log-level: debug\n")

		// When: it is loaded
		conf, err := Load(path)

		// Then: every other value has its default
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "8080", conf.SocketPort)
		assert.Equal(t, 100*time.Millisecond, conf.Game.ActionDelay)
		assert.Equal(t, 5*time.Second, conf.Game.RemovalDelay)
		assert.True(t, conf.Auth.AllowGuests)
		assert.Equal(t, StatsDriverRedis, conf.Stats.Driver)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("Overrides", func(t *testing.T) {
		path := writeConfig(t, `
game:
  action-delay: 250ms
  seed: 42
stats:
  driver: sqlite
redis:
  host: cache
  port: "6380"
`)

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, 250*time.Millisecond, conf.Game.ActionDelay)
		assert.Equal(t, int64(42), conf.Game.Seed)
		assert.Equal(t, StatsDriverSQLite, conf.Stats.Driver)
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
	})

	t.Run("Unknown stats driver", func(t *testing.T) {
		_, err := Load(writeConfig(t, "stats:\n  driver: mongo\n"))

		assert.ErrorContains(t, err, "unknown stats driver")
	})

	t.Run("Postgres requires a dsn", func(t *testing.T) {
		_, err := Load(writeConfig(t, "stats:\n  driver: postgres\n"))

		assert.ErrorContains(t, err, "postgres.dsn")
	})

	t.Run("Missing file", func(t *testing.T) {
		assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "missing.yml")) })
	})
}
