package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Database
	DatabaseURL    string `env:"DATABASE_URL"`
	DBHost         string `env:"DB_HOST" envDefault:"localhost"`
	DBPort         string `env:"DB_PORT" envDefault:"5432"`
	DBUser         string `env:"DB_USER" envDefault:"postgres"`
	DBPassword     string `env:"DB_PASSWORD"`
	DBName         string `env:"DB_NAME" envDefault:"licitacoes"`
	DBSSLMode      string `env:"DB_SSLMODE" envDefault:"disable"`
	DBMaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns int    `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`

	// Auth
	JWTSecret       string        `env:"JWT_SECRET"`
	JWTAccessExpiry time.Duration `env:"JWT_ACCESS_EXPIRY" envDefault:"30m"`
	BcryptCost      int           `env:"BCRYPT_COST" envDefault:"10"`

	// Bootstrap user, created only when the users table is empty
	AdminUsername string `env:"ADMIN_USERNAME"`
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// Rate limiting
	RedisURL       string `env:"REDIS_URL"`
	LoginRateLimit int    `env:"LOGIN_RATE_LIMIT" envDefault:"10"`
	APIRateLimit   int    `env:"API_RATE_LIMIT" envDefault:"120"`

	// Observability
	LogRetentionDays int    `env:"LOG_RETENTION_DAYS" envDefault:"30"`
	SentryDSN        string `env:"SENTRY_DSN"`
	AppEnv           string `env:"APP_ENV" envDefault:"development"`

	// Server
	Port        string `env:"PORT" envDefault:"8000"`
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"http://localhost:5173,http://127.0.0.1:5173"`
}

// Load parses the process environment. It is called once in main and the
// result is passed down explicitly.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is required")
	}
	if c.DatabaseURL == "" && c.DBPassword == "" {
		return errors.New("DATABASE_URL or DB_PASSWORD environment variable is required")
	}
	if c.JWTAccessExpiry <= 0 {
		return errors.New("JWT_ACCESS_EXPIRY must be positive")
	}
	if c.LoginRateLimit <= 0 {
		return errors.New("LOGIN_RATE_LIMIT must be positive")
	}
	return nil
}

func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// HasAdminSeed reports whether a bootstrap user is configured.
func (c *Config) HasAdminSeed() bool {
	return c.AdminUsername != "" && c.AdminPassword != ""
}
