// Package config provides application configuration management.
// It loads configuration from environment variables with sensible defaults.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Supported sync history database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	FinanceAPI FinanceAPIConfig
	Store      StoreConfig
	History    HistoryConfig
	RateLimit  RateLimitConfig
	Metrics    MetricsConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	Environment     string
}

// DatabaseConfig holds the sync history database configuration.
type DatabaseConfig struct {
	Driver          string
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds Redis configuration for transaction views.
type RedisConfig struct {
	URL      string
	Password string
	DB       int
	ViewTTL  time.Duration
}

// FinanceAPIConfig holds the remote finance API client configuration.
type FinanceAPIConfig struct {
	BaseURL      string
	Timeout      time.Duration
	RateLimit    float64 // Requests per second, 0 disables throttling
	Burst        int
	UserAgent    string
	DefaultLimit int // Page size requested when listing transactions
}

// StoreConfig holds state store configuration.
type StoreConfig struct {
	TrendPeriods     int
	TrendPeriodDays  int
	DefaultRangeDays int
}

// HistoryConfig holds sync history worker configuration.
type HistoryConfig struct {
	Enabled       bool
	FlushInterval time.Duration
	BatchSize     int
	BufferSize    int
	Retention     time.Duration
}

// RateLimitConfig holds inbound rate limiting configuration.
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	Burst             int
	IdleTimeout       time.Duration // Idle clients are forgotten after this long
}

// MetricsConfig holds Prometheus exposition configuration.
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 0),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			Environment:     getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(getEnv("DATABASE_DRIVER", DriverSQLite)),
			URL:             getEnv("DATABASE_URL", "file:finance_client.db?_pragma=busy_timeout(5000)"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 2),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379/0"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			ViewTTL:  getEnvAsDuration("REDIS_VIEW_TTL", 24*time.Hour),
		},
		FinanceAPI: FinanceAPIConfig{
			BaseURL:      strings.TrimRight(getEnv("FINANCE_API_URL", "http://localhost:8000/api"), "/"),
			Timeout:      getEnvAsDuration("FINANCE_API_TIMEOUT", 30*time.Second),
			RateLimit:    getEnvAsFloat("FINANCE_API_RATE_LIMIT", 20),
			Burst:        getEnvAsInt("FINANCE_API_BURST", 10),
			UserAgent:    getEnv("FINANCE_API_USER_AGENT", "finance-tracker-client/1.0"),
			DefaultLimit: getEnvAsInt("FINANCE_API_DEFAULT_LIMIT", 1000),
		},
		Store: StoreConfig{
			TrendPeriods:     getEnvAsInt("STORE_TREND_PERIODS", 6),
			TrendPeriodDays:  getEnvAsInt("STORE_TREND_PERIOD_DAYS", 30),
			DefaultRangeDays: getEnvAsInt("STORE_DEFAULT_RANGE_DAYS", 30),
		},
		History: HistoryConfig{
			Enabled:       getEnvAsBool("HISTORY_ENABLED", true),
			FlushInterval: getEnvAsDuration("HISTORY_FLUSH_INTERVAL", 5*time.Second),
			BatchSize:     getEnvAsInt("HISTORY_BATCH_SIZE", 50),
			BufferSize:    getEnvAsInt("HISTORY_BUFFER_SIZE", 1024),
			Retention:     getEnvAsDuration("HISTORY_RETENTION", 30*24*time.Hour),
		},
		RateLimit: RateLimitConfig{
			Enabled:           getEnvAsBool("RATE_LIMIT_ENABLED", true),
			RequestsPerSecond: getEnvAsFloat("RATE_LIMIT_RPS", 2),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 20),
			IdleTimeout:       getEnvAsDuration("RATE_LIMIT_IDLE_TIMEOUT", 3*time.Minute),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvAsBool("METRICS_ENABLED", true),
			Path:    getEnv("METRICS_PATH", "/metrics"),
		},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.Server.Port))
	}

	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("DATABASE_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.Database.Driver))
	}
	if c.History.Enabled && c.Database.URL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required when HISTORY_ENABLED is true"))
	}

	if u, err := url.Parse(c.FinanceAPI.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("FINANCE_API_URL must be an absolute URL, got %q", c.FinanceAPI.BaseURL))
	}
	if c.FinanceAPI.Timeout <= 0 {
		errs = append(errs, errors.New("FINANCE_API_TIMEOUT must be positive"))
	}
	if c.FinanceAPI.RateLimit < 0 {
		errs = append(errs, errors.New("FINANCE_API_RATE_LIMIT must not be negative"))
	}
	if c.FinanceAPI.RateLimit > 0 && c.FinanceAPI.Burst < 1 {
		errs = append(errs, errors.New("FINANCE_API_BURST must be at least 1 when rate limiting is on"))
	}
	if c.FinanceAPI.DefaultLimit < 1 {
		errs = append(errs, errors.New("FINANCE_API_DEFAULT_LIMIT must be at least 1"))
	}

	// The finance API caps trends at 12 periods of at most 365 days.
	if c.Store.TrendPeriods < 1 || c.Store.TrendPeriods > 12 {
		errs = append(errs, fmt.Errorf("STORE_TREND_PERIODS must be between 1 and 12, got %d", c.Store.TrendPeriods))
	}
	if c.Store.TrendPeriodDays < 1 || c.Store.TrendPeriodDays > 365 {
		errs = append(errs, fmt.Errorf("STORE_TREND_PERIOD_DAYS must be between 1 and 365, got %d", c.Store.TrendPeriodDays))
	}
	if c.Store.DefaultRangeDays < 1 {
		errs = append(errs, errors.New("STORE_DEFAULT_RANGE_DAYS must be at least 1"))
	}

	if c.History.Enabled && (c.History.BatchSize < 1 || c.History.BufferSize < 1) {
		errs = append(errs, errors.New("HISTORY_BATCH_SIZE and HISTORY_BUFFER_SIZE must be at least 1"))
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst < 1 || c.RateLimit.IdleTimeout <= 0) {
		errs = append(errs, errors.New("RATE_LIMIT_RPS, RATE_LIMIT_BURST and RATE_LIMIT_IDLE_TIMEOUT must be positive"))
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		errs = append(errs, fmt.Errorf("METRICS_PATH must start with '/', got %q", c.Metrics.Path))
	}

	return errors.Join(errs...)
}

// IsProduction reports whether the service runs in production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
