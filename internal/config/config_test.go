package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Address != ":8080" {
		t.Errorf("Server.Address = %q", cfg.Server.Address)
	}
	if cfg.Database.Driver != DriverMongo {
		t.Errorf("Database.Driver = %q", cfg.Database.Driver)
	}
	if cfg.JWT.Expiration != 24*time.Hour {
		t.Errorf("JWT.Expiration = %v", cfg.JWT.Expiration)
	}
	if cfg.Session.CookieName != "workout_session" {
		t.Errorf("Session.CookieName = %q", cfg.Session.CookieName)
	}
	if cfg.OAuth.Google.Enabled() {
		t.Errorf("Google sign-in should be disabled without credentials")
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  address: ":9090"
  cors_origins: ["https://workouts.example.com"]
database:
  driver: Memory
jwt:
  secret: from-file
  expiration: 90m
oauth:
  google:
    client_id: id
    client_secret: secret
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Address != ":9090" {
		t.Errorf("Server.Address = %q", cfg.Server.Address)
	}
	if len(cfg.Server.CORSOrigins) != 1 || cfg.Server.CORSOrigins[0] != "https://workouts.example.com" {
		t.Errorf("Server.CORSOrigins = %v", cfg.Server.CORSOrigins)
	}
	if cfg.Database.Driver != DriverMemory {
		t.Errorf("Database.Driver = %q", cfg.Database.Driver)
	}
	if cfg.JWT.Secret != "from-env" {
		t.Errorf("JWT.Secret = %q, env should win", cfg.JWT.Secret)
	}
	if cfg.JWT.Expiration != 90*time.Minute {
		t.Errorf("JWT.Expiration = %v", cfg.JWT.Expiration)
	}
	if !cfg.OAuth.Google.Enabled() {
		t.Errorf("Google sign-in should be enabled")
	}
}
