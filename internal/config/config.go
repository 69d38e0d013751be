package config

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"Folio"`
		Port     int    `envconfig:"PORT" default:"8080"`
		Currency string `envconfig:"CURRENCY" default:"INR"`
		// UserID is the portfolio owner used by the local binaries (TUI, CLI).
		UserID string `envconfig:"FOLIO_USER_ID"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"folio"`
		Migrate  bool   `envconfig:"DB_MIGRATE" default:"true"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`
		RateLimit   float64       `envconfig:"SERVER_RATE_LIMIT" default:"20"`
		RateBurst   int           `envconfig:"SERVER_RATE_BURST" default:"40"`
	}

	Auth struct {
		Secret string `envconfig:"AUTH_SECRET"`
	}

	Log struct {
		Level string `envconfig:"LOG_LEVEL" default:"info"`
	}

	Prices struct {
		CacheTTL time.Duration `envconfig:"PRICE_CACHE_TTL" default:"6h"`
		// ProvisionalTTL caps reuse of carry-forward answers and misses.
		ProvisionalTTL time.Duration `envconfig:"PRICE_PROVISIONAL_TTL" default:"30s"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// OwnerID parses App.UserID. It fails when the variable is unset or malformed.
func (c *Config) OwnerID() (uuid.UUID, error) {
	if c.App.UserID == "" {
		return uuid.Nil, fmt.Errorf("FOLIO_USER_ID is not set")
	}

	id, err := uuid.Parse(c.App.UserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parsing FOLIO_USER_ID: %w", err)
	}

	return id, nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
