// Package config loads diffstatus configuration from YAML, git config and
// CLI overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/theiostream/diffstatus/internal/theme"
	"gopkg.in/yaml.v3"
)

// AppConfig defines the global diffstatus configuration options.
type AppConfig struct {
	Theme           string            // Theme name: see theme.AvailableThemes
	NoColor         bool              // Disable all output decoration
	DebugLog        string            // Path to the debug log file
	Colors          map[string]string // Per-slot color overrides (header, prompt, help, error)
	WatchDebounceMS int               // Debounce window for --watch refreshes
}

// DefaultConfig returns the default configuration values.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Theme:           theme.DraculaName,
		NoColor:         false,
		DebugLog:        "",
		Colors:          map[string]string{},
		WatchDebounceMS: 600,
	}
}

// Validate checks theme and color settings. Malformed values are hard
// configuration errors, surfaced before any collection runs.
func (c *AppConfig) Validate() error {
	if c.Theme != "" && !theme.IsKnown(c.Theme) {
		return fmt.Errorf("unknown theme %q", c.Theme)
	}
	for slot, value := range c.Colors {
		if _, err := theme.ParseColor(value); err != nil {
			return fmt.Errorf("color %s: %w", slot, err)
		}
	}
	return nil
}

// BuildTheme resolves the configured theme with color overrides applied.
func (c *AppConfig) BuildTheme() (*theme.Theme, error) {
	th := theme.GetTheme(c.Theme)
	for slot, value := range c.Colors {
		if err := th.ApplySlot(slot, value); err != nil {
			return nil, err
		}
	}
	return th, nil
}

func coerceBool(value any, defaultVal bool) bool {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case string:
		text := strings.ToLower(strings.TrimSpace(v))
		switch text {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return defaultVal
}

func coerceInt(value any, defaultVal int) int {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return defaultVal
	case int:
		return v
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			return defaultVal
		}
		if i, err := strconv.Atoi(text); err == nil {
			return i
		}
	}
	return defaultVal
}

// applyMap folds a flat key/value map into cfg. The same key set is shared
// by the YAML file, git config overrides and --config overrides.
func applyMap(cfg *AppConfig, data map[string]any) {
	if themeName, ok := data["theme"].(string); ok {
		themeName = strings.TrimSpace(themeName)
		if themeName != "" {
			cfg.Theme = themeName
		}
	}

	if debugLog, ok := data["debug_log"].(string); ok {
		debugLog = strings.TrimSpace(debugLog)
		if debugLog != "" {
			cfg.DebugLog = debugLog
		}
	}

	if _, ok := data["no_color"]; ok {
		cfg.NoColor = coerceBool(data["no_color"], cfg.NoColor)
	}
	if _, ok := data["watch_debounce_ms"]; ok {
		cfg.WatchDebounceMS = coerceInt(data["watch_debounce_ms"], cfg.WatchDebounceMS)
	}

	// Nested form from YAML: colors: {header: "#..."}
	if colors, ok := data["colors"].(map[string]any); ok {
		for slot, value := range colors {
			if text, ok := value.(string); ok {
				cfg.Colors[slot] = strings.TrimSpace(text)
			}
		}
	}

	// Flat form from git config / CLI overrides: color_header=#...
	for key, value := range data {
		slot, found := strings.CutPrefix(key, "color_")
		if !found {
			continue
		}
		if text, ok := value.(string); ok {
			cfg.Colors[slot] = strings.TrimSpace(text)
		}
	}
}

func parseConfig(data map[string]any) *AppConfig {
	cfg := DefaultConfig()
	applyMap(cfg, data)
	return cfg
}

func getConfigDir() string {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

// LoadConfig reads the application configuration from a YAML file, then
// overlays repository-local git config (ds.* keys). An empty configPath
// falls back to the default locations.
func LoadConfig(configPath string) (*AppConfig, error) {
	var paths []string

	if configPath != "" {
		expanded, err := expandPath(configPath)
		if err != nil {
			return DefaultConfig(), err
		}
		paths = []string{expanded}
	} else {
		configBase := filepath.Join(getConfigDir(), "diffstatus")
		paths = []string{
			filepath.Join(configBase, "config.yaml"),
			filepath.Join(configBase, "config.yml"),
		}
	}

	cfg := DefaultConfig()

	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		// #nosec G304 -- path comes from the user's own config flag or config dir
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var yamlData map[string]any
		if err := yaml.Unmarshal(data, &yamlData); err != nil {
			return DefaultConfig(), fmt.Errorf("parse %s: %w", path, err)
		}

		cfg = parseConfig(yamlData)
		break
	}

	if overrides, err := loadGitConfig(""); err == nil && len(overrides) > 0 {
		applyMap(cfg, overrides)
	}

	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}

	return cfg, nil
}

// ApplyCLIOverrides folds --config=ds.key=value pairs into cfg. These have
// the highest precedence.
func (c *AppConfig) ApplyCLIOverrides(overrides []string) error {
	parsed, err := parseCLIConfigOverrides(overrides)
	if err != nil {
		return err
	}
	applyMap(c, parsed)
	return c.Validate()
}

func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Clean(path), nil
}
