package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	DatabaseDriver  string        `env:"DATABASE_DRIVER" envDefault:"postgres"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	SQLitePath      string        `env:"SQLITE_PATH" envDefault:"./data/runclub.db"`
	JWTSecret       string        `env:"JWT_SECRET"`
	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	DefaultLocale   string        `env:"DEFAULT_LOCALE" envDefault:"en"`
	ClubTimezone    string        `env:"CLUB_TIMEZONE" envDefault:"Europe/Paris"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ViewIdleTimeout time.Duration `env:"VIEW_IDLE_TIMEOUT" envDefault:"2h"`

	DiscordToken     string `env:"DISCORD_TOKEN"`
	DiscordGuildID   string `env:"DISCORD_GUILD_ID"`
	DiscordChannelID string `env:"DISCORD_CHANNEL_ID"`
}

// Load reads the configuration from the environment (and an optional .env
// file) and validates it.
func Load() (*Config, error) {
	// .env is optional when variables come from the environment (Docker, CI, etc.).
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DiscordEnabled reports whether the Discord surface should start.
func (c *Config) DiscordEnabled() bool {
	return c.DiscordToken != ""
}

func (c *Config) validate() error {
	if len(strings.TrimSpace(c.JWTSecret)) < 16 {
		return fmt.Errorf("config: JWT_SECRET is required and must be at least 16 characters")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("config: SESSION_TTL must be positive")
	}
	if c.ViewIdleTimeout <= 0 {
		return fmt.Errorf("config: VIEW_IDLE_TIMEOUT must be positive")
	}

	switch c.DatabaseDriver {
	case DriverPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			// Local default when DATABASE_URL is not provided.
			c.DatabaseURL = "postgres://localhost:5432/runclub?sslmode=disable"
		}
		parsed, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return fmt.Errorf("config: invalid DATABASE_URL (%q): %w", c.DatabaseURL, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config: invalid DATABASE_URL (%q): missing scheme or host", c.DatabaseURL)
		}
	case DriverSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("config: SQLITE_PATH is required with DATABASE_DRIVER=sqlite")
		}
	default:
		return fmt.Errorf("config: DATABASE_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.DatabaseDriver)
	}

	for _, r := range c.DiscordChannelID {
		if r < '0' || r > '9' {
			return fmt.Errorf("config: DISCORD_CHANNEL_ID must be a Discord channel id (digits only)")
		}
	}
	if c.DiscordEnabled() && strings.TrimSpace(c.DiscordToken) == "" {
		return fmt.Errorf("config: DISCORD_TOKEN cannot be blank")
	}
	return nil
}
