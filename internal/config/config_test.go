package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("DefaultsWhenFileMissing", func(t *testing.T) {
		t.Setenv("TMA_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Jira.Binary != "jira" {
			t.Errorf("expected default binary 'jira', got %q", cfg.Jira.Binary)
		}
		if cfg.Jira.CreateTimeout != 30*time.Second {
			t.Errorf("expected 30s create timeout, got %v", cfg.Jira.CreateTimeout)
		}
	})

	t.Run("FileOverridesDefaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `
jira:
  binary: /opt/jira/jira
  default_priority: Major
log:
  level: debug
`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		t.Setenv("TMA_CONFIG", path)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Jira.Binary != "/opt/jira/jira" {
			t.Errorf("expected overridden binary, got %q", cfg.Jira.Binary)
		}
		if cfg.Jira.DefaultPriority != "Major" {
			t.Errorf("expected Major, got %q", cfg.Jira.DefaultPriority)
		}
		// Untouched fields keep defaults.
		if cfg.Jira.DefaultType != "Story" {
			t.Errorf("expected default type Story, got %q", cfg.Jira.DefaultType)
		}
		if cfg.Log.Level != "debug" {
			t.Errorf("expected debug, got %q", cfg.Log.Level)
		}
	})

	t.Run("TokenEnvExpansion", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "jira:\n  token: ${TMA_TEST_TOKEN}\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		t.Setenv("TMA_CONFIG", path)
		t.Setenv("TMA_TEST_TOKEN", "from-env-expansion")
		t.Setenv(TokenEnvVar, "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if got := cfg.Token(); got != "from-env-expansion" {
			t.Errorf("expected expanded token, got %q", got)
		}
	})
}

func TestToken(t *testing.T) {
	t.Run("EnvWinsOverConfig", func(t *testing.T) {
		t.Setenv(TokenEnvVar, "env-token")
		cfg := DefaultConfig()
		cfg.Jira.Token = "file-token"
		if got := cfg.Token(); got != "env-token" {
			t.Errorf("expected env token, got %q", got)
		}
	})

	t.Run("FallsBackToConfig", func(t *testing.T) {
		t.Setenv(TokenEnvVar, "")
		cfg := DefaultConfig()
		cfg.Jira.Token = " file-token\n"
		if got := cfg.Token(); got != "file-token" {
			t.Errorf("expected trimmed file token, got %q", got)
		}
	})

	t.Run("EmptyWhenUnset", func(t *testing.T) {
		t.Setenv(TokenEnvVar, "")
		cfg := DefaultConfig()
		if got := cfg.Token(); got != "" {
			t.Errorf("expected empty token, got %q", got)
		}
	})
}

func TestLoadJiraCLIConfig(t *testing.T) {
	t.Run("ParsesServerAndProject", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".config.yml")
		content := `
server: https://issues.example.com
login: alice@example.com
project:
  key: PROJ
  type: classic
epic:
  name: Epic Name
  link: customfield_12311140
`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}

		cfg, err := LoadJiraCLIConfig(path)
		if err != nil {
			t.Fatalf("LoadJiraCLIConfig failed: %v", err)
		}
		if cfg.Server != "https://issues.example.com" {
			t.Errorf("unexpected server: %q", cfg.Server)
		}
		if cfg.Project.Key != "PROJ" {
			t.Errorf("unexpected project key: %q", cfg.Project.Key)
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := LoadJiraCLIConfig(filepath.Join(t.TempDir(), "absent.yml"))
		if err == nil {
			t.Fatal("expected error for missing jira-cli config")
		}
	})

	t.Run("MissingServer", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".config.yml")
		if err := os.WriteFile(path, []byte("login: bob\n"), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		if _, err := LoadJiraCLIConfig(path); err == nil {
			t.Fatal("expected error when server missing")
		}
	})
}
