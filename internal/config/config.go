// Package config handles tma configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// TokenEnvVar is the environment variable holding the JIRA API token.
const TokenEnvVar = "JIRA_API_TOKEN"

// Config is the root configuration for tma.
type Config struct {
	Jira   JiraConfig   `yaml:"jira"`
	Log    LogConfig    `yaml:"log"`
	Store  StoreConfig  `yaml:"store"`
	Skills SkillsConfig `yaml:"skills"`
}

// JiraConfig defines how the jira-cli client is invoked.
type JiraConfig struct {
	Binary          string        `yaml:"binary"`
	ConfigPath      string        `yaml:"config_path"`
	Token           string        `yaml:"token"` // optional, env is checked first
	DefaultType     string        `yaml:"default_type"`
	DefaultPriority string        `yaml:"default_priority"`
	VerifyTimeout   time.Duration `yaml:"verify_timeout"`
	CreateTimeout   time.Duration `yaml:"create_timeout"`
	CommentTimeout  time.Duration `yaml:"comment_timeout"`
}

// LogConfig defines logging behavior.
type LogConfig struct {
	Level     string `yaml:"level"`
	File      string `yaml:"file"`
	SentryDSN string `yaml:"sentry_dsn"`
}

// StoreConfig defines local ticket history persistence.
type StoreConfig struct {
	Database string `yaml:"database"`
}

// SkillsConfig defines where skill documents are installed.
type SkillsConfig struct {
	InstallDir string `yaml:"install_dir"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Jira: JiraConfig{
			Binary:          "jira",
			ConfigPath:      filepath.Join(homeDir, ".config/.jira/.config.yml"),
			DefaultType:     "Story",
			DefaultPriority: "Critical",
			VerifyTimeout:   10 * time.Second,
			CreateTimeout:   30 * time.Second,
			CommentTimeout:  15 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
		Store: StoreConfig{
			Database: filepath.Join(homeDir, ".local/share/tma/tickets.db"),
		},
		Skills: SkillsConfig{
			InstallDir: filepath.Join(homeDir, ".claude/skills"),
		},
	}
}

// Load reads configuration from the default path or returns defaults.
func Load() (*Config, error) {
	configPath := DefaultConfigPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configPath, err)
	}

	cfg.expandEnvVars()
	return cfg, nil
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	if p := os.Getenv("TMA_CONFIG"); p != "" {
		return p
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config/tma/config.yaml")
}

func (c *Config) expandEnvVars() {
	c.Jira.Token = os.ExpandEnv(c.Jira.Token)
	c.Log.SentryDSN = os.ExpandEnv(c.Log.SentryDSN)
}

// Token resolves the JIRA API token: environment first, then the
// config file entry.
func (c *Config) Token() string {
	if t := strings.TrimSpace(os.Getenv(TokenEnvVar)); t != "" {
		return t
	}
	return strings.TrimSpace(c.Jira.Token)
}

// JiraCLIConfig is the subset of the jira-cli config file that tma
// needs: the server URL and the default project.
type JiraCLIConfig struct {
	Server  string `yaml:"server"`
	Project struct {
		Key string `yaml:"key"`
	} `yaml:"project"`
}

// LoadJiraCLIConfig reads the jira-cli configuration written by
// 'jira init'.
func LoadJiraCLIConfig(path string) (*JiraCLIConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("jira-cli config not found at %s, run 'jira init' first", path)
		}
		return nil, err
	}

	var cfg JiraCLIConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Server == "" {
		return nil, fmt.Errorf("no server configured in %s", path)
	}
	return &cfg, nil
}
