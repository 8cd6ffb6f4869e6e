// Package config loads lifehack configuration from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fentz26/lifehack/internal/planner"
)

// Config is the daemon configuration.
type Config struct {
	Server     ServerConfig             `yaml:"server"`
	Store      StoreConfig              `yaml:"store"`
	Automation AutomationConfig         `yaml:"automation"`
	Dashboard  planner.DashboardOptions `yaml:"dashboard"`
	Log        LogConfig                `yaml:"log"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Listen         string        `yaml:"listen"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
}

// StoreConfig configures the SQLite database.
type StoreConfig struct {
	Path       string `yaml:"path"`
	SeedSample bool   `yaml:"seed_sample"`
}

// AutomationConfig configures the automation scripts.
type AutomationConfig struct {
	DataDir string `yaml:"data_dir"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the default configuration rooted at ~/.lifehack.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	base := filepath.Join(home, ".lifehack")
	return &Config{
		Server: ServerConfig{
			Listen:         "127.0.0.1:7477",
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   30 * time.Second,
			AllowedOrigins: []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		},
		Store: StoreConfig{
			Path:       filepath.Join(base, "lifehack.db"),
			SeedSample: true,
		},
		Automation: AutomationConfig{
			DataDir: filepath.Join(base, "data"),
		},
		Dashboard: planner.DefaultDashboardOptions(),
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// DefaultPath returns ~/.lifehack/config.yaml.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".lifehack", "config.yaml")
}

// Load reads the config at path over the defaults, applies environment
// overrides and validates the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) applyEnv() {
	if v := os.Getenv("LIFEHACK_LISTEN"); v != "" {
		c.Server.Listen = v
	}
	if v := firstEnv("LIFEHACK_DB_PATH", "DB_PATH"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("LIFEHACK_DATA_DIR"); v != "" {
		c.Automation.DataDir = v
	}
	if v := firstEnv("LIFEHACK_LOG_LEVEL", "LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := firstEnv("LIFEHACK_LOG_FORMAT", "LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("LIFEHACK_ALLOWED_ORIGINS"); v != "" {
		c.Server.AllowedOrigins = strings.Split(v, ",")
	}
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// Validate checks the configuration for values the daemon cannot run with.
func (c *Config) Validate() error {
	var errs []string
	if c.Server.Listen == "" {
		errs = append(errs, "server.listen is required")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server timeouts must be positive")
	}
	if c.Store.Path == "" {
		errs = append(errs, "store.path is required")
	}
	if c.Automation.DataDir == "" {
		errs = append(errs, "automation.data_dir is required")
	}
	if c.Dashboard.UpcomingLimit < 0 || c.Dashboard.RecentLimit < 0 || c.Dashboard.ManyPendingThreshold < 0 {
		errs = append(errs, "dashboard limits must not be negative")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		errs = append(errs, fmt.Sprintf("log.format %q is not one of json, console", c.Log.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(errs, "; "))
	}
	return nil
}
