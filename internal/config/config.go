package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds process configuration read from the environment
type Config struct {
	// DatabaseURL is the DSN passed to the driver
	DatabaseURL string
	// DBDriver is either "postgres" or "sqlite3"
	DBDriver string
	// MaxOpenConns caps the connection pool
	MaxOpenConns int
	// HostPort is the HTTP listen address
	HostPort string
	// HealthCheckResponse is returned by /health while the store is reachable
	HealthCheckResponse string
	// HealthCheckInterval is the time between store pings
	HealthCheckInterval time.Duration
	// LogMode selects the logger preset ("dev" or "prod")
	LogMode string
}

// Default returns the configuration used when no variables are set
func Default() *Config {
	return &Config{
		DBDriver:            "postgres",
		MaxOpenConns:        10,
		HostPort:            "127.0.0.1:3000",
		HealthCheckResponse: "I'm good.",
		HealthCheckInterval: 30 * time.Second,
		LogMode:             "dev",
	}
}

// Load reads an optional .env file and then the process environment
func Load() (*Config, error) {
	// .env is optional; variables may come from the environment alone
	_ = godotenv.Load()

	cfg := Default()

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("DB_DRIVER"); v != "" {
		switch v {
		case "postgres", "sqlite3":
			cfg.DBDriver = v
		default:
			return nil, fmt.Errorf("unsupported DB_DRIVER %q", v)
		}
	}
	if v := os.Getenv("DB_MAX_OPEN_CONNS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid DB_MAX_OPEN_CONNS %q", v)
		}
		cfg.MaxOpenConns = n
	}
	if v := os.Getenv("SERVER_HOST_PORT"); v != "" {
		cfg.HostPort = v
	}
	if v := os.Getenv("HEALTH_CHECK_RESPONSE"); v != "" {
		cfg.HealthCheckResponse = v
	}
	if v := os.Getenv("HEALTH_CHECK_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid HEALTH_CHECK_INTERVAL %q", v)
		}
		cfg.HealthCheckInterval = d
	}
	if v := os.Getenv("LOG_MODE"); v != "" {
		cfg.LogMode = v
	}

	return cfg, nil
}

// RequireDatabase fails when no DSN is configured
func (c *Config) RequireDatabase() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}
	return nil
}
