package config

import (
	"testing"
	"time"
)

func validBase() Config {
	return Config{
		App:       AppConfig{Env: "local", Port: 8080},
		DB:        DBConfig{Host: "localhost", Port: 5432, User: "postgres", Password: "x", Name: "callcenter"},
		Redis:     RedisConfig{Host: "localhost", Port: 6379},
		Auth:      AuthConfig{JWTSecret: "secret"},
		Synthflow: SynthflowConfig{BaseURL: "https://api.synthflow.ai/v2", APIKey: "k"},
	}
}

func TestValidate_ReportsMissingRequired(t *testing.T) {
	c := Config{}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestValidate_ProductionRequiresSSLMode(t *testing.T) {
	c := validBase()
	c.App.Env = "production"
	c.Auth.JWTIssuer = "issuer"
	c.Auth.JWTAudience = "aud"
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for production without DB_SSLMODE")
	}
}

func TestValidate_LocalDefaults(t *testing.T) {
	c := validBase()
	if err := c.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if c.DB.SSLMode != "disable" {
		t.Fatalf("expected sslmode disable default, got %q", c.DB.SSLMode)
	}
	if c.Synthflow.StartTimeUnit != "ms" {
		t.Fatalf("expected default start time unit ms, got %q", c.Synthflow.StartTimeUnit)
	}
	if c.Auth.AccessTokenTTL != 12*time.Hour {
		t.Fatalf("expected default access TTL, got %v", c.Auth.AccessTokenTTL)
	}
	if c.Auth.LoginAttemptLimit != 10 {
		t.Fatalf("expected default login attempt limit, got %d", c.Auth.LoginAttemptLimit)
	}
}

func TestValidate_RejectsUnknownStartTimeUnit(t *testing.T) {
	c := validBase()
	c.Synthflow.StartTimeUnit = "ns"
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for unknown start time unit")
	}
}
