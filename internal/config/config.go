package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverMemory   = "memory"
)

// Config holds everything read from the environment at startup.
type Config struct {
	Port         int
	ViewCacheTTL time.Duration
	DB           DB
}

type DB struct {
	Driver   string
	DSN      string // overrides the individual fields when set
	Host     string
	Port     string
	Username string
	Password string
	Database string
	Schema   string
	LogLevel string
}

// Load reads the configuration. A .env file in the working directory is
// loaded first by godotenv.
func Load() (*Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Port:         8080,
		ViewCacheTTL: time.Minute,
		DB: DB{
			Driver:   DriverPostgres,
			DSN:      getenv("DB_DSN"),
			Host:     getenv("BLUEPRINT_DB_HOST"),
			Port:     getenv("BLUEPRINT_DB_PORT"),
			Username: getenv("BLUEPRINT_DB_USERNAME"),
			Password: getenv("BLUEPRINT_DB_PASSWORD"),
			Database: getenv("BLUEPRINT_DB_DATABASE"),
			Schema:   getenv("BLUEPRINT_DB_SCHEMA"),
			LogLevel: "warn",
		},
	}

	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return nil, fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Port = port
	}

	if v := getenv("VIEW_CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl < 0 {
			return nil, fmt.Errorf("invalid VIEW_CACHE_TTL %q", v)
		}
		cfg.ViewCacheTTL = ttl
	}

	if v := getenv("DB_DRIVER"); v != "" {
		switch d := strings.ToLower(v); d {
		case DriverPostgres, DriverMySQL, DriverMemory:
			cfg.DB.Driver = d
		default:
			return nil, fmt.Errorf("unsupported DB_DRIVER %q", v)
		}
	}

	if v := getenv("DB_LOG_LEVEL"); v != "" {
		switch l := strings.ToLower(v); l {
		case "silent", "error", "warn", "info":
			cfg.DB.LogLevel = l
		default:
			return nil, fmt.Errorf("invalid DB_LOG_LEVEL %q", v)
		}
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// PostgresDSN builds a key/value DSN unless DB_DSN was given.
func (d DB) PostgresDSN() string {
	if d.DSN != "" {
		return d.DSN
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		d.Host, d.Username, d.Password, d.Database, d.Port)
	if d.Schema != "" {
		dsn += " search_path=" + d.Schema
	}
	return dsn
}

// MySQLDSN builds a go-sql-driver style DSN unless DB_DSN was given.
func (d DB) MySQLDSN() string {
	if d.DSN != "" {
		return d.DSN
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}
