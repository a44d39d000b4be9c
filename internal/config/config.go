// Package config loads sysperm configuration from files and the
// environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// DefaultAppID is the application identifier used for Windows toast
// notification branding when nothing else is configured. Without a
// registered AUMID, notifications attribute to the hosting shell.
const DefaultAppID = "com.opencode.sysperm"

// defaultRequestTimeout bounds how long a permission request waits for
// the native dialog before it is cancelled. Zero disables the bound.
const defaultRequestTimeout = 2 * time.Minute

// Config holds sysperm configuration.
type Config struct {
	// WindowsAppID is the AUMID injected into the Windows notification
	// adapter. See ResolveAppID for the fallback chain.
	WindowsAppID string `json:"windowsAppId" yaml:"windows_app_id"`
	// LogLevel is one of DEBUG, INFO, WARN, ERROR, FATAL.
	LogLevel string `json:"logLevel" yaml:"log_level"`
	// LogPretty enables human-readable console logging.
	LogPretty bool `json:"logPretty" yaml:"log_pretty"`
	// RequestTimeout is a Go duration string ("90s", "2m") bounding each
	// permission request. Empty means the default; "0" disables.
	RequestTimeout string `json:"requestTimeout" yaml:"request_timeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel:       "INFO",
		RequestTimeout: defaultRequestTimeout.String(),
	}
}

// Load reads configuration in priority order:
//  1. built-in defaults
//  2. ~/.config/sysperm/sysperm.{json,jsonc,yaml} (first that exists)
//  3. the explicit path, when non-empty
//  4. SYSPERM_* environment variables (highest priority)
func Load(path string) (*Config, error) {
	cfg := Default()

	if home, err := os.UserHomeDir(); err == nil {
		dir := filepath.Join(home, ".config", "sysperm")
		for _, name := range []string{"sysperm.json", "sysperm.jsonc", "sysperm.yaml", "sysperm.yml"} {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err == nil {
				if err := loadFile(p, cfg); err != nil {
					return nil, err
				}
				break
			}
		}
	}

	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// loadFile merges one config file into cfg, dispatching on extension.
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		// Strip JSONC comments before unmarshalling
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	return nil
}

// applyEnvOverrides applies SYSPERM_* environment variables on top of
// file configuration.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SYSPERM_APP_ID"); v != "" {
		cfg.WindowsAppID = v
	}
	if v := os.Getenv("SYSPERM_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("SYSPERM_LOG_PRETTY"); v != "" {
		cfg.LogPretty = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("SYSPERM_REQUEST_TIMEOUT"); v != "" {
		cfg.RequestTimeout = v
	}
}

// Timeout parses RequestTimeout, falling back to the default on empty or
// malformed values. "0" explicitly disables the bound.
func (c *Config) Timeout() time.Duration {
	if c.RequestTimeout == "" {
		return defaultRequestTimeout
	}
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil || d < 0 {
		return defaultRequestTimeout
	}
	return d
}

// ResolveAppID resolves the Windows notification app identifier through
// the explicit fallback chain: configured value, then SYSPERM_APP_ID,
// then the hardcoded default.
func ResolveAppID(configured string) string {
	if configured != "" {
		return configured
	}
	if v := os.Getenv("SYSPERM_APP_ID"); v != "" {
		return v
	}
	return DefaultAppID
}

// appID is the process-wide application identifier. Adapters read it on
// every use, so a SetAppID after startup takes effect immediately.
var appID atomic.Value

// SetAppID overrides the process-wide application identifier. Setting
// it is rare and idempotent; concurrent readers always observe a fully
// written value.
func SetAppID(id string) {
	appID.Store(id)
}

// AppID returns the process-wide application identifier, applying the
// ResolveAppID fallback chain when no explicit SetAppID happened.
func AppID() string {
	if v, ok := appID.Load().(string); ok && v != "" {
		return v
	}
	return ResolveAppID("")
}
