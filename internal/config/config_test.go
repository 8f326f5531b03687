package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_DefaultsWithEnvSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Fatalf("unexpected default port: %q", cfg.Server.Port)
	}
	if cfg.Database.Path != "sispe.db" {
		t.Fatalf("unexpected default database path: %q", cfg.Database.Path)
	}
	if cfg.Reports.Dir != "reports" {
		t.Fatalf("unexpected default reports dir: %q", cfg.Reports.Dir)
	}
	if cfg.JWT.Secret != "env-secret" {
		t.Fatalf("environment secret not applied: %q", cfg.JWT.Secret)
	}
}

func TestLoadConfig_MissingSecretFails(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error without JWT secret")
	}
}

func TestLoadConfig_FileThenEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: \"9090\"\njwt:\n  secret: \"file-secret\"\ndatabase:\n  path: \"custom.db\"\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("SERVER_PORT", "7070")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Fatalf("environment must override file, got %q", cfg.Server.Port)
	}
	if cfg.Database.Path != "custom.db" {
		t.Fatalf("file value not applied: %q", cfg.Database.Path)
	}
	if cfg.JWT.Secret != "file-secret" {
		t.Fatalf("file secret not applied: %q", cfg.JWT.Secret)
	}
}

func TestGetSQLiteDSN(t *testing.T) {
	cfg := &Config{}
	cfg.Database.Path = "data/sispe.db"

	dsn := cfg.GetSQLiteDSN()
	want := "file:data/sispe.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if dsn != want {
		t.Fatalf("got %q, want %q", dsn, want)
	}
}
