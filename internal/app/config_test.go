package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("full config", func(t *testing.T) {
		path := writeConfig(t, `
[server]
port = ":8080"
enable_auth = true

[auth]
redis_url = "redis://localhost:6379/0"
session_ttl_hours = 12

[database]
dsn = "rodpenna.db"
migrations_dir = "./sql"

[grading]
demo = true
model = "gpt-4o-mini"

[export]
dir = "./exports"
every_hours = 6
`)

		config, err := LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, ":8080", config.Server.Port)
		assert.True(t, config.Server.EnableAuth)
		assert.Equal(t, 12, config.Auth.SessionTTLHours)
		assert.Equal(t, "./sql", config.Database.MigrationsDir)
		assert.True(t, config.Grading.Demo)
		assert.Equal(t, 6, config.Export.EveryHours)
	})

	t.Run("defaults fill the gaps", func(t *testing.T) {
		path := writeConfig(t, `
[server]
port = ":9999"

[database]
dsn = ":memory:"
`)

		config, err := LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "Authorization", config.Auth.TokenHeader)
		assert.Equal(t, "X-Username", config.Auth.UserHeader)
		assert.Equal(t, 24, config.Auth.SessionTTLHours)
		assert.Equal(t, 720, config.Auth.RememberTTLHours)
		assert.Equal(t, "./migrations", config.Database.MigrationsDir)
	})

	t.Run("missing port fails", func(t *testing.T) {
		path := writeConfig(t, `
[database]
dsn = ":memory:"
`)

		_, err := LoadConfig(path)
		assert.Error(t, err)
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		assert.Error(t, err)
	})
}
