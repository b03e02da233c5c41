package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string          `mapstructure:"environment"`
	Server      ServerConfig    `mapstructure:"server"`
	Database    DatabaseConfig  `mapstructure:"database"`
	Logger      LoggerConfig    `mapstructure:"logger"`
	Ingestion   IngestionConfig `mapstructure:"ingestion"`
	Redis       RedisConfig     `mapstructure:"redis"`
	PubSub      PubSubConfig    `mapstructure:"pubsub"`
	Report      ReportConfig    `mapstructure:"report"`
	Tracing     TracingConfig   `mapstructure:"tracing"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
	AllowedOrigins    []string      `mapstructure:"allowedOrigins"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // postgres or mysql
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"` // seconds
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	CallerInfo bool   `mapstructure:"callerInfo"`
}

// IngestionConfig contains message pipeline settings
type IngestionConfig struct {
	Workers         int           `mapstructure:"workers"`
	BufferSize      int           `mapstructure:"bufferSize"`
	MaxRetries      int           `mapstructure:"maxRetries"`
	RetryBaseDelay  time.Duration `mapstructure:"retryBaseDelay"` // seconds
	MaxBodyLength   int           `mapstructure:"maxBodyLength"`
	MaxSenderLength int           `mapstructure:"maxSenderLength"`
	TimeZone        string        `mapstructure:"timeZone"`        // IANA name for scan and series windows
	ScanLockTTL     time.Duration `mapstructure:"scanLockTTL"`     // seconds
	NotificationTTL time.Duration `mapstructure:"notificationTTL"` // minutes
}

// RedisConfig contains the delivery guard and scan lock backend.
// When disabled, in-process equivalents are used.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// PubSubConfig contains the notification topic
type PubSubConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	ProjectID       string `mapstructure:"projectId"`
	TopicID         string `mapstructure:"topicId"`
	CredentialsJSON string `mapstructure:"credentialsJson"`
}

// ReportConfig contains the report archive bucket. Archiving is off when Bucket is empty.
type ReportConfig struct {
	Bucket          string `mapstructure:"bucket"`
	CredentialsJSON string `mapstructure:"credentialsJson"`
}

// TracingConfig contains OpenTelemetry settings
type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"serviceName"`
}

// IsProduction reports whether the production profile is active
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}
