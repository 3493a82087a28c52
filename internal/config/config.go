package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the default configuration options and their
// meanings. Single source of truth for defaults and the config generator.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "data_dir", Default: defaultDataDir(), Comment: "Directory for local state; DB is data_dir/hanashi.db"},
		{Key: "list.limit", Default: 0, Comment: "Default row limit for story list (0 = unlimited)"},
		{Key: "export.indent", Default: true, Comment: "Indent JSON written by export"},

		{Key: "render.style", Default: "dracula", Comment: "Glamour style for pretty chapter output"},
		{Key: "render.width", Default: 80, Comment: "Word-wrap width for pretty chapter output"},

		{Key: "http_addr", Default: ":8080", Comment: "HTTP listen address for the serve command"},
		{Key: "auth.token", Default: "", Comment: "Bearer token required by mutating HTTP endpoints; empty disables them"},
	}
}

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
func Load(ctx context.Context, v *viper.Viper) error {
	// If SetConfigFile was provided upstream it takes precedence; these
	// search paths are harmless fallbacks.
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "hanashi"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "hanashi"))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	// Read config file if present (overrides defaults)
	_ = v.ReadInConfig()

	// Environment variables: HANASHI_* (highest among these sources)
	v.SetEnvPrefix("hanashi")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if v.GetString("data_dir") == "" {
		v.Set("data_dir", defaultDataDir())
	}
	return CheckConfigValidity(v)
}

// CheckConfigValidity reports every invalid option at once.
func CheckConfigValidity(v *viper.Viper) error {
	var problems []string
	if strings.TrimSpace(v.GetString("data_dir")) == "" {
		problems = append(problems, "data_dir is required")
	}
	if v.GetInt("render.width") <= 0 {
		problems = append(problems, "render.width must be greater than 0")
	}
	if v.GetInt("list.limit") < 0 {
		problems = append(problems, "list.limit must not be negative")
	}
	if strings.TrimSpace(v.GetString("http_addr")) == "" {
		problems = append(problems, "http_addr is required")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// defaultDataDir resolves $XDG_DATA_HOME/hanashi or ~/.local/share/hanashi.
func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "hanashi")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "hanashi")
}

// DefaultConfigPath resolves the standard config.toml location.
func DefaultConfigPath() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, "hanashi", "config.toml")
}

// DBURL builds the sqlite store URL from data_dir.
func DBURL(v *viper.Viper) string {
	dir := v.GetString("data_dir")
	if strings.HasPrefix(dir, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
		}
	}
	return "sqlite://" + filepath.Join(dir, "hanashi.db")
}
