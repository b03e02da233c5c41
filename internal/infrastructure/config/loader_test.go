package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(content), 0o600))
	return dir
}

func TestLoad_DefaultsAndDurations(t *testing.T) {
	dir := writeConfig(t, Test, "database:\n  host: db\n")

	cfg, err := Load(Test, dir)

	require.NoError(t, err)
	assert.Equal(t, Test, cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 5*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, 4, cfg.Ingestion.Workers)
	assert.Equal(t, time.Second, cfg.Ingestion.RetryBaseDelay)
	assert.Equal(t, 5*time.Minute, cfg.Ingestion.ScanLockTTL)
	assert.Equal(t, 24*time.Hour, cfg.Ingestion.NotificationTTL)
	assert.Equal(t, "sms-ledger", cfg.Tracing.ServiceName)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
}

func TestLoad_FileValues(t *testing.T) {
	dir := writeConfig(t, Production, `
database:
  driver: mysql
  port: "3306"
ingestion:
  workers: 8
  scanLockTTL: 60
redis:
  enabled: true
  addr: redis:6379
`)

	cfg, err := Load(Production, dir)

	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "3306", cfg.Database.Port)
	assert.Equal(t, 8, cfg.Ingestion.Workers)
	assert.Equal(t, time.Minute, cfg.Ingestion.ScanLockTTL)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := writeConfig(t, Test, "database:\n  host: db\n")
	t.Setenv("SL_DB_PASSWORD", "secret")
	t.Setenv("SL_SERVER_PORT", "9090")
	t.Setenv("SL_INGESTION_WORKERS", "6")
	t.Setenv("SL_REDIS_ENABLED", "true")
	t.Setenv("SL_DB_RETRY_ATTEMPTS", "not-a-number")

	cfg, err := Load(Test, dir)

	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 6, cfg.Ingestion.Workers)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 3, cfg.Database.RetryAttempts)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown driver", "database:\n  driver: sqlite\n"},
		{"no workers", "ingestion:\n  workers: 0\n"},
		{"pubsub without project", "pubsub:\n  enabled: true\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeConfig(t, Test, tt.content)
			_, err := Load(Test, dir)
			assert.Error(t, err)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(Test, t.TempDir())
		assert.Error(t, err)
	})
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("SL_ENV", "")
	assert.Equal(t, Development, getEnvironment())

	t.Setenv("SL_ENV", "PRODUCTION")
	assert.Equal(t, Production, getEnvironment())
}
