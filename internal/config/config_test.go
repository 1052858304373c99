package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Auth.Policy != AuthPolicyStrict {
		t.Errorf("auth policy: got %q, want strict", cfg.Auth.Policy)
	}
	if cfg.SMTP.Port != 587 {
		t.Errorf("smtp port: got %d, want 587", cfg.SMTP.Port)
	}
	if cfg.SMTP.Enabled() {
		t.Error("smtp should be disabled without a host")
	}
}

func TestLoad_SMTPEnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")
	t.Setenv("SMTP_HOST", "relay.example.org")
	t.Setenv("SMTP_PORT", "2525")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if !cfg.SMTP.Enabled() {
		t.Fatal("smtp should be enabled with a host set")
	}
	if got := cfg.SMTP.Addr(); got != "relay.example.org:2525" {
		t.Errorf("smtp addr: got %q, want relay.example.org:2525", got)
	}
}

func TestLoad_RejectsUnknownAuthPolicy(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")
	t.Setenv("AUTH_POLICY", "trust-everyone")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for an unknown auth policy")
	}
}
