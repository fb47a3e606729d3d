package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("expected driver %q, got %q", DriverSQLite, cfg.Database.Driver)
	}
	if cfg.Store.TrendPeriods != 6 || cfg.Store.TrendPeriodDays != 30 {
		t.Errorf("expected trends 6x30, got %dx%d", cfg.Store.TrendPeriods, cfg.Store.TrendPeriodDays)
	}
	if cfg.FinanceAPI.DefaultLimit != 1000 {
		t.Errorf("expected default limit 1000, got %d", cfg.FinanceAPI.DefaultLimit)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected shutdown timeout 10s, got %v", cfg.Server.ShutdownTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to be valid, got %v", err)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "Postgres")
	t.Setenv("FINANCE_API_URL", "https://finance.example.com/api/")
	t.Setenv("FINANCE_API_RATE_LIMIT", "2.5")
	t.Setenv("HISTORY_ENABLED", "false")
	t.Setenv("REDIS_VIEW_TTL", "90m")
	t.Setenv("RATE_LIMIT_RPS", "0.5")
	t.Setenv("STORE_TREND_PERIODS", "not-a-number")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Database.Driver != DriverPostgres {
		t.Errorf("expected driver %q, got %q", DriverPostgres, cfg.Database.Driver)
	}
	if cfg.FinanceAPI.BaseURL != "https://finance.example.com/api" {
		t.Errorf("expected trailing slash trimmed, got %q", cfg.FinanceAPI.BaseURL)
	}
	if cfg.FinanceAPI.RateLimit != 2.5 {
		t.Errorf("expected rate limit 2.5, got %v", cfg.FinanceAPI.RateLimit)
	}
	if cfg.History.Enabled {
		t.Error("expected history disabled")
	}
	if cfg.Redis.ViewTTL != 90*time.Minute {
		t.Errorf("expected view ttl 90m, got %v", cfg.Redis.ViewTTL)
	}
	if cfg.RateLimit.RequestsPerSecond != 0.5 {
		t.Errorf("expected inbound rate 0.5, got %v", cfg.RateLimit.RequestsPerSecond)
	}
	if cfg.Store.TrendPeriods != 6 {
		t.Errorf("expected unparsable value to fall back to 6, got %d", cfg.Store.TrendPeriods)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Database.Driver = "mysql" },
			wantErr: "DATABASE_DRIVER",
		},
		{
			name:    "relative api url",
			mutate:  func(c *Config) { c.FinanceAPI.BaseURL = "/api" },
			wantErr: "FINANCE_API_URL",
		},
		{
			name:    "too many trend periods",
			mutate:  func(c *Config) { c.Store.TrendPeriods = 13 },
			wantErr: "STORE_TREND_PERIODS",
		},
		{
			name:    "trend period too long",
			mutate:  func(c *Config) { c.Store.TrendPeriodDays = 400 },
			wantErr: "STORE_TREND_PERIOD_DAYS",
		},
		{
			name:    "zero burst with throttling",
			mutate:  func(c *Config) { c.FinanceAPI.Burst = 0 },
			wantErr: "FINANCE_API_BURST",
		},
		{
			name:    "inbound limiter without a rate",
			mutate:  func(c *Config) { c.RateLimit.RequestsPerSecond = 0 },
			wantErr: "RATE_LIMIT_RPS",
		},
		{
			name:    "metrics path without slash",
			mutate:  func(c *Config) { c.Metrics.Path = "metrics" },
			wantErr: "METRICS_PATH",
		},
		{
			name: "disabled sections are not checked",
			mutate: func(c *Config) {
				c.History.Enabled = false
				c.History.BatchSize = 0
				c.RateLimit.Enabled = false
				c.RateLimit.Burst = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %s, got %v", tt.wantErr, err)
			}
		})
	}

	t.Run("reports every problem", func(t *testing.T) {
		cfg := Load()
		cfg.Server.Port = 0
		cfg.Store.DefaultRangeDays = 0

		err := cfg.Validate()
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "SERVER_PORT") || !strings.Contains(err.Error(), "STORE_DEFAULT_RANGE_DAYS") {
			t.Errorf("expected both problems reported, got %v", err)
		}
	})
}
