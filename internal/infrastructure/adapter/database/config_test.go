package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/sms-ledger/internal/infrastructure/config"
)

func validConfig() *Config {
	return &Config{
		Driver:       DriverPostgres,
		Host:         "localhost",
		Port:         5432,
		Username:     "postgres",
		Password:     "secret",
		Database:     "sms_ledger",
		SSLMode:      "disable",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid postgres", func(c *Config) {}, false},
		{"valid mysql ignores ssl mode", func(c *Config) { c.Driver = DriverMySQL; c.SSLMode = "" }, false},
		{"missing host", func(c *Config) { c.Host = "" }, true},
		{"port out of range", func(c *Config) { c.Port = 70000 }, true},
		{"missing user", func(c *Config) { c.Username = "" }, true},
		{"missing database", func(c *Config) { c.Database = "" }, true},
		{"unknown driver", func(c *Config) { c.Driver = "sqlite" }, true},
		{"bad ssl mode", func(c *Config) { c.SSLMode = "sometimes" }, true},
		{"no connections", func(c *Config) { c.MaxOpenConns = 0 }, true},
		{"negative retries", func(c *Config) { c.RetryAttempts = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, "host=localhost port=5432 user=postgres password=secret dbname=sms_ledger sslmode=disable", cfg.DSN())

	cfg.Driver = DriverMySQL
	cfg.Port = 3306
	assert.Equal(t, "postgres:secret@tcp(localhost:3306)/sms_ledger?charset=utf8mb4&parseTime=True&loc=UTC", cfg.DSN())
}

func TestConfig_Dialector(t *testing.T) {
	cfg := validConfig()

	d, err := cfg.Dialector()
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	cfg.Driver = DriverMySQL
	d, err = cfg.Dialector()
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	cfg.Driver = "oracle"
	_, err = cfg.Dialector()
	assert.Error(t, err)
}

func TestFromAppConfig(t *testing.T) {
	app := &config.Config{
		Database: config.DatabaseConfig{
			Driver:        DriverMySQL,
			Host:          "db",
			Port:          "3306",
			RetryAttempts: 2,
			RetryDelay:    time.Second,
		},
		Logger:  config.LoggerConfig{Level: "warn"},
		Tracing: config.TracingConfig{Enabled: true},
	}

	cfg := FromAppConfig(app)

	assert.Equal(t, DriverMySQL, cfg.Driver)
	assert.Equal(t, 3306, cfg.Port)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, time.Second, cfg.RetryDelay)
	assert.True(t, cfg.Tracing)
	assert.Equal(t, 0, ParsePort("not-a-port"))
}
