package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "SL"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
	"../configs/.env",
}

// LoadConfig loads configuration from file based on the environment
func LoadConfig() (*Config, error) {
	if err := loadDotEnvFile(); err != nil {
		// A missing .env is normal outside local development
		fmt.Println("Warning: Could not load .env file:", err)
	}

	return Load(getEnvironment(), ConfigPaths...)
}

// Load reads the named environment file from the given directories and applies
// SL_ environment overrides
func Load(env string, paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")

	for _, path := range paths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env
	processDurations(&config)

	if err := validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// loadDotEnvFile attempts to load environment variables from .env files
func loadDotEnvFile() error {
	var lastError error

	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			lastError = err
			continue
		}
		return nil
	}

	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}
	return fmt.Errorf("no .env file found in search paths")
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 30)      // seconds, exports can be slow
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 10)   // seconds
	v.SetDefault("server.allowedOrigins", []string{"*"})

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 10)
	v.SetDefault("database.connMaxLifetime", 30) // minutes
	v.SetDefault("database.connMaxIdleTime", 15) // minutes
	v.SetDefault("database.queryTimeout", 5)     // seconds
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 1) // seconds

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.callerInfo", true)

	v.SetDefault("ingestion.workers", 4)
	v.SetDefault("ingestion.bufferSize", 1000)
	v.SetDefault("ingestion.maxRetries", 3)
	v.SetDefault("ingestion.retryBaseDelay", 1) // seconds
	v.SetDefault("ingestion.maxBodyLength", 4096)
	v.SetDefault("ingestion.maxSenderLength", 64)
	v.SetDefault("ingestion.timeZone", "Asia/Kolkata")
	v.SetDefault("ingestion.scanLockTTL", 300)      // seconds
	v.SetDefault("ingestion.notificationTTL", 1440) // minutes

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("pubsub.enabled", false)
	v.SetDefault("pubsub.topicId", "transactions")

	v.SetDefault("tracing.enabled", true)
	v.SetDefault("tracing.serviceName", "sms-ledger")
}

// getEnvironment determines the environment to use based on SL_ENV
func getEnvironment() string {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides ensures environment variables override config values.
// Secrets are only ever expected from the environment.
func processEnvOverrides(v *viper.Viper) {
	stringOverrides := map[string]string{
		"SL_DB_DRIVER":            "database.driver",
		"SL_DB_HOST":              "database.host",
		"SL_DB_PORT":              "database.port",
		"SL_DB_USERNAME":          "database.username",
		"SL_DB_PASSWORD":          "database.password",
		"SL_DB_NAME":              "database.database",
		"SL_DB_SSL_MODE":          "database.sslMode",
		"SL_SERVER_HOST":          "server.host",
		"SL_LOGGER_LEVEL":         "logger.level",
		"SL_INGESTION_TIME_ZONE":  "ingestion.timeZone",
		"SL_REDIS_ADDR":           "redis.addr",
		"SL_REDIS_PASSWORD":       "redis.password",
		"SL_PUBSUB_PROJECT_ID":    "pubsub.projectId",
		"SL_PUBSUB_TOPIC_ID":      "pubsub.topicId",
		"SL_PUBSUB_CREDENTIALS":   "pubsub.credentialsJson",
		"SL_REPORT_BUCKET":        "report.bucket",
		"SL_REPORT_CREDENTIALS":   "report.credentialsJson",
		"SL_TRACING_SERVICE_NAME": "tracing.serviceName",
	}
	for env, key := range stringOverrides {
		if value := os.Getenv(env); value != "" {
			v.Set(key, value)
		}
	}

	intOverrides := map[string]string{
		"SL_SERVER_PORT":                     "server.port",
		"SL_DB_MAX_OPEN_CONNS":               "database.maxOpenConns",
		"SL_DB_MAX_IDLE_CONNS":               "database.maxIdleConns",
		"SL_DB_CONN_MAX_LIFETIME_MINUTES":    "database.connMaxLifetime",
		"SL_DB_CONN_MAX_IDLE_TIME_MINUTES":   "database.connMaxIdleTime",
		"SL_DB_QUERY_TIMEOUT_SECONDS":        "database.queryTimeout",
		"SL_DB_RETRY_ATTEMPTS":               "database.retryAttempts",
		"SL_DB_RETRY_DELAY_SECONDS":          "database.retryDelay",
		"SL_INGESTION_WORKERS":               "ingestion.workers",
		"SL_INGESTION_BUFFER_SIZE":           "ingestion.bufferSize",
		"SL_INGESTION_MAX_RETRIES":           "ingestion.maxRetries",
		"SL_INGESTION_RETRY_DELAY_SECONDS":   "ingestion.retryBaseDelay",
		"SL_INGESTION_SCAN_LOCK_TTL_SECONDS": "ingestion.scanLockTTL",
		"SL_REDIS_DB":                        "redis.db",
	}
	for env, key := range intOverrides {
		if value, ok := getEnvInt(env); ok {
			v.Set(key, value)
		}
	}

	boolOverrides := map[string]string{
		"SL_REDIS_ENABLED":   "redis.enabled",
		"SL_PUBSUB_ENABLED":  "pubsub.enabled",
		"SL_TRACING_ENABLED": "tracing.enabled",
	}
	for env, key := range boolOverrides {
		if value, err := strconv.ParseBool(os.Getenv(env)); err == nil {
			v.Set(key, value)
		}
	}
}

// getEnvInt reads a non-negative integer environment variable
func getEnvInt(name string) (int, bool) {
	valStr := os.Getenv(name)
	if valStr == "" {
		return 0, false
	}

	val, err := strconv.Atoi(valStr)
	if err != nil || val < 0 {
		return 0, false
	}
	return val, true
}

// processDurations converts time.Duration fields from their raw values to actual durations
func processDurations(config *Config) {
	config.Server.ReadTimeout = time.Duration(config.Server.ReadTimeout) * time.Second
	config.Server.WriteTimeout = time.Duration(config.Server.WriteTimeout) * time.Second
	config.Server.IdleTimeout = time.Duration(config.Server.IdleTimeout) * time.Second
	config.Server.ReadHeaderTimeout = time.Duration(config.Server.ReadHeaderTimeout) * time.Second
	config.Server.ShutdownTimeout = time.Duration(config.Server.ShutdownTimeout) * time.Second

	config.Database.ConnMaxLifetime = time.Duration(config.Database.ConnMaxLifetime) * time.Minute
	config.Database.ConnMaxIdleTime = time.Duration(config.Database.ConnMaxIdleTime) * time.Minute
	config.Database.QueryTimeout = time.Duration(config.Database.QueryTimeout) * time.Second
	config.Database.RetryDelay = time.Duration(config.Database.RetryDelay) * time.Second

	config.Ingestion.RetryBaseDelay = time.Duration(config.Ingestion.RetryBaseDelay) * time.Second
	config.Ingestion.ScanLockTTL = time.Duration(config.Ingestion.ScanLockTTL) * time.Second
	config.Ingestion.NotificationTTL = time.Duration(config.Ingestion.NotificationTTL) * time.Minute
}

// validate rejects settings the application cannot start with
func validate(config *Config) error {
	switch config.Database.Driver {
	case "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported database driver %q", config.Database.Driver)
	}

	if config.Ingestion.Workers <= 0 {
		return fmt.Errorf("ingestion.workers must be positive, got %d", config.Ingestion.Workers)
	}
	if config.Ingestion.BufferSize < 0 {
		return fmt.Errorf("ingestion.bufferSize must not be negative, got %d", config.Ingestion.BufferSize)
	}
	if config.PubSub.Enabled && config.PubSub.ProjectID == "" {
		return fmt.Errorf("pubsub.projectId is required when pubsub is enabled")
	}
	return nil
}
