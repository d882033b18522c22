package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port            string `yaml:"port" env:"SERVER_PORT"`
		Mode            string `yaml:"mode" env:"SERVER_MODE"`
		ShutdownTimeout string `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MinConns        int    `yaml:"min_conns" env:"DB_MIN_CONNS"`
		MaxConns        int    `yaml:"max_conns" env:"DB_MAX_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	} `yaml:"database"`

	JWT struct {
		Secret     string `yaml:"secret" env:"JWT_SECRET"`
		Expiration string `yaml:"expiration" env:"JWT_EXPIRATION"`
		Issuer     string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Redis struct {
		Enabled bool   `yaml:"enabled" env:"REDIS_ENABLED"`
		URL     string `yaml:"url" env:"REDIS_URL"`
		Prefix  string `yaml:"prefix" env:"REDIS_PREFIX"`
	} `yaml:"redis"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Pagination struct {
		DefaultLimit int `yaml:"default_limit" env:"PAGINATION_DEFAULT_LIMIT"`
		MaxLimit     int `yaml:"max_limit" env:"PAGINATION_MAX_LIMIT"`
	} `yaml:"pagination"`
}

// LoadConfig loads configuration from an optional .env file, a YAML file and
// environment variables, in that order of increasing precedence.
func LoadConfig(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.ShutdownTimeout = "5s"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "admissions"
	config.Database.SSLMode = "disable"
	config.Database.MinConns = 2
	config.Database.MaxConns = 20
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"

	config.JWT.Expiration = "24h"
	config.JWT.Issuer = "admissions.api"

	config.Redis.Enabled = false
	config.Redis.URL = "redis://localhost:6379/0"
	config.Redis.Prefix = "admissions:revoked:"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Pagination.DefaultLimit = 10
	config.Pagination.MaxLimit = 100
}

func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.Expiration); err != nil {
		return fmt.Errorf("invalid JWT expiration format: %w", err)
	}

	if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
		return fmt.Errorf("invalid database connection lifetime: %w", err)
	}

	if _, err := time.ParseDuration(config.Server.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid server shutdown timeout: %w", err)
	}

	if config.Pagination.DefaultLimit < 1 || config.Pagination.MaxLimit < config.Pagination.DefaultLimit {
		return fmt.Errorf("pagination limits must satisfy 1 <= default_limit <= max_limit")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     c.Database.Host + ":" + c.Database.Port,
		Path:     c.Database.DBName,
		RawQuery: "sslmode=" + sslMode,
	}
	return u.String()
}

// JWTExpiration returns the parsed token lifetime. LoadConfig has already
// validated the value.
func (c *Config) JWTExpiration() time.Duration {
	d, _ := time.ParseDuration(c.JWT.Expiration)
	return d
}

// ConnMaxLifetime returns the parsed pool connection lifetime
func (c *Config) ConnMaxLifetime() time.Duration {
	d, _ := time.ParseDuration(c.Database.ConnMaxLifetime)
	return d
}

// ShutdownTimeout returns the parsed graceful shutdown timeout
func (c *Config) ShutdownTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.ShutdownTimeout)
	return d
}
