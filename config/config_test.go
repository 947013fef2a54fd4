package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_TIMEZONE", "Asia/Jakarta")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "Asia/Jakarta", cfg.App.Timezone.String())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.App.AllowedOrigins)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.True(t, cfg.Scheduling.SlotHoldEnabled)
	assert.Equal(t, 100, cfg.Scheduling.PaginationMaxLimit)
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "JWT_SECRET=from-file\nDB_HOST=db\nDB_NAME=healthlink\nDB_USER=app\nDB_PASSWORD=pw\nPAGINATION_MAX_LIMIT=20\nSLOT_HOLD_ENABLED=false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.JWT.Secret)
	assert.Equal(t, 20, cfg.Scheduling.PaginationMaxLimit)
	assert.False(t, cfg.Scheduling.SlotHoldEnabled)
	assert.Equal(t, "pgx5://app:pw@db:5432/healthlink?sslmode=disable", cfg.DB.MigrateURL())
	assert.Contains(t, cfg.DB.DSN(), "dbname=healthlink")
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestLoad_RejectsUnknownTimezone(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_TIMEZONE", "Mars/Olympus")

	_, err := load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
