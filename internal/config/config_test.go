package config

import (
	"testing"
	"time"

	"github.com/lnjp/matchday-api/internal/platform/logging"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ADMIN_TOKEN", "test-admin-token")
	t.Setenv("LEAGUE_INVITE_CODE", "test-invite")
	t.Setenv("VAPID_SUBJECT", "mailto:admin@example.com")
	t.Setenv("VAPID_PUBLIC_KEY", "pub")
	t.Setenv("VAPID_PRIVATE_KEY", "priv")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.AppEnv != EnvDev {
		t.Fatalf("unexpected app env: %s", cfg.AppEnv)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected http addr: %s", cfg.HTTPAddr)
	}
	if cfg.CompetitionCode != "FL1" {
		t.Fatalf("unexpected competition code: %s", cfg.CompetitionCode)
	}
	if !cfg.PushScopeByLeague {
		t.Fatal("push scope by league should default to true")
	}
	if cfg.PushTimeout != 5*time.Second {
		t.Fatalf("unexpected push timeout: %s", cfg.PushTimeout)
	}
	if cfg.PushMaxWorkers != 8 {
		t.Fatalf("unexpected push workers: %d", cfg.PushMaxWorkers)
	}
	if cfg.ChatHistory != 80 {
		t.Fatalf("unexpected chat history limit: %d", cfg.ChatHistory)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
}

func TestLoad_MissingAdminToken(t *testing.T) {
	t.Setenv("ADMIN_TOKEN", "")
	t.Setenv("LEAGUE_INVITE_CODE", "test-invite")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing ADMIN_TOKEN")
	}
}

func TestLoad_InvalidAppEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid APP_ENV")
	}
}

func TestLoad_FootballDataRequiresToken(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FOOTBALL_DATA_ENABLED", "true")
	t.Setenv("FOOTBALL_DATA_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing FOOTBALL_DATA_TOKEN")
	}
}

func TestLoad_PushDisabledSkipsVAPID(t *testing.T) {
	t.Setenv("ADMIN_TOKEN", "test-admin-token")
	t.Setenv("LEAGUE_INVITE_CODE", "test-invite")
	t.Setenv("PUSH_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PushEnabled {
		t.Fatal("push should be disabled")
	}
}
