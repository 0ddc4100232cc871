package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
mysql:
  dsn: "user:pw@tcp(localhost:3306)/app"
jwt:
  access_secret: "a"
  refresh_secret: "b"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %q; want :8080", cfg.Server.Addr)
	}
	if cfg.Upload.Dir != "uploads" || cfg.Upload.BaseURL != "/media/" {
		t.Errorf("upload defaults = %+v", cfg.Upload)
	}
}

func TestLoadRejectsMissingSecrets(t *testing.T) {
	path := writeConfig(t, `
mysql:
  dsn: "user:pw@tcp(localhost:3306)/app"
`)

	if _, err := Load(path); err == nil {
		t.Error("Load succeeded without jwt secrets")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
mysql:
  dsn: "file-dsn"
jwt:
  access_secret: "file-a"
  refresh_secret: "file-b"
`)

	t.Setenv("MYSQL_DSN", "env-dsn")
	t.Setenv("JWT_ACCESS_SECRET", "env-a")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MySQL.DSN != "env-dsn" {
		t.Errorf("dsn = %q; want env override", cfg.MySQL.DSN)
	}
	if cfg.JWT.AccessSecret != "env-a" || cfg.JWT.RefreshSecret != "file-b" {
		t.Errorf("jwt = %+v; want env access secret and file refresh secret", cfg.JWT)
	}
}
