// File path: internal/config/config.go

// Package config loads the application-level settings: listen address,
// catalog path, language fallback chain, questionnaire entry point, session
// backend, and the auth provider's shared secret. A YAML file provides the
// base configuration; environment variables override it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/parentys/platform/internal/i18n"
)

type Config struct {
	Addr       string `yaml:"addr"`
	SQLitePath string `yaml:"sqlite_path"`

	DefaultLanguage   string   `yaml:"default_language"`
	FallbackLanguages []string `yaml:"fallback_languages"`

	RootStepID string `yaml:"root_step_id"`

	// SessionBackend selects "redis" or "memory".
	SessionBackend string `yaml:"session_backend"`

	AuthSecret string `yaml:"auth_secret"`
}

func (c Config) Merge(override Config) Config {
	result := c
	if strings.TrimSpace(override.Addr) != "" {
		result.Addr = strings.TrimSpace(override.Addr)
	}
	if strings.TrimSpace(override.SQLitePath) != "" {
		result.SQLitePath = strings.TrimSpace(override.SQLitePath)
	}
	if strings.TrimSpace(override.DefaultLanguage) != "" {
		result.DefaultLanguage = strings.TrimSpace(override.DefaultLanguage)
	}
	if len(override.FallbackLanguages) > 0 {
		result.FallbackLanguages = append([]string(nil), override.FallbackLanguages...)
	}
	if strings.TrimSpace(override.RootStepID) != "" {
		result.RootStepID = strings.TrimSpace(override.RootStepID)
	}
	if strings.TrimSpace(override.SessionBackend) != "" {
		result.SessionBackend = strings.TrimSpace(override.SessionBackend)
	}
	if strings.TrimSpace(override.AuthSecret) != "" {
		result.AuthSecret = strings.TrimSpace(override.AuthSecret)
	}
	return result
}

// Load builds the configuration from the optional PARENTYS_CONFIG_FILE YAML
// file, overlaid with environment variables, with defaults applied last.
func Load() (Config, error) {
	cfg := Config{}
	if path := strings.TrimSpace(os.Getenv("PARENTYS_CONFIG_FILE")); path != "" {
		fileCfg, err := loadFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg = cfg.Merge(fileCfg)
	}
	cfg = cfg.Merge(loadEnv())
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.SQLitePath == "" {
		c.SQLitePath = filepath.Join("data", "parentys.db")
	}
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = i18n.DefaultLanguage
	}
	if len(c.FallbackLanguages) == 0 {
		c.FallbackLanguages = []string{"fr", "en"}
	}
	if c.SessionBackend == "" {
		c.SessionBackend = "memory"
	}
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func loadEnv() Config {
	cfg := Config{
		Addr:            os.Getenv("PARENTYS_ADDR"),
		SQLitePath:      os.Getenv("SQLITE_PATH"),
		DefaultLanguage: os.Getenv("PARENTYS_DEFAULT_LANG"),
		RootStepID:      os.Getenv("PARENTYS_ROOT_STEP"),
		SessionBackend:  os.Getenv("PARENTYS_SESSION_BACKEND"),
		AuthSecret:      os.Getenv("PARENTYS_AUTH_SECRET"),
	}
	if raw := strings.TrimSpace(os.Getenv("PARENTYS_FALLBACK_LANGS")); raw != "" {
		for _, code := range strings.Split(raw, ",") {
			code = strings.TrimSpace(strings.ToLower(code))
			if code != "" {
				cfg.FallbackLanguages = append(cfg.FallbackLanguages, code)
			}
		}
	}
	return cfg
}
