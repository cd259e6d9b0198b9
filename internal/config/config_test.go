package config

import (
	"strings"
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "0123456789abcdef0123")
	t.Setenv("DATABASE_DRIVER", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("DISCORD_CHANNEL_ID", "")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DATABASE_DRIVER", "postgres")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %v", cfg.SessionTTL)
	}
	if cfg.DatabaseURL != "postgres://localhost:5432/runclub?sslmode=disable" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.DiscordEnabled() {
		t.Error("discord should be disabled without a token")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"short secret", map[string]string{"JWT_SECRET": "short"}, "JWT_SECRET"},
		{"bad driver", map[string]string{"DATABASE_DRIVER": "mysql"}, "DATABASE_DRIVER"},
		{"bad url", map[string]string{"DATABASE_DRIVER": "postgres", "DATABASE_URL": "localhost"}, "DATABASE_URL"},
		{"bad channel", map[string]string{"DATABASE_DRIVER": "sqlite", "DISCORD_CHANNEL_ID": "abc"}, "DISCORD_CHANNEL_ID"},
		{"bad duration", map[string]string{"DATABASE_DRIVER": "sqlite", "SESSION_TTL": "soon"}, "parse env"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadSQLite(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/club.db")
	t.Setenv("DISCORD_TOKEN", "abc")
	t.Setenv("DISCORD_CHANNEL_ID", "123456")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SQLitePath != "/tmp/club.db" || !cfg.DiscordEnabled() {
		t.Errorf("cfg = %+v", cfg)
	}
}
