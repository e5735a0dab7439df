package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	// Path is the file the config was read from; Save writes back to it.
	Path        string `mapstructure:"-"`
	UI          UIConfig
	MCP         MCPConfig
	Log         LogConfig
	Keybindings []Keybinding
}

// UIConfig holds terminal presentation settings.
type UIConfig struct {
	ShowKeypad bool `mapstructure:"show_keypad"`
	ShowHelp   bool `mapstructure:"show_help"`
	Width      int
}

// MCPConfig holds tool server settings.
type MCPConfig struct {
	Name           string
	MaxCalculators int `mapstructure:"max_calculators"`
}

// LogConfig controls where log output goes. An empty file disables logging
// in the terminal UI.
type LogConfig struct {
	File string
}

// Keybinding overrides the keys of one action within a scope.
type Keybinding struct {
	Scope  string   `mapstructure:"scope" toml:"scope"`
	Action string   `mapstructure:"action" toml:"action"`
	Keys   []string `mapstructure:"keys" toml:"keys"`
}

const (
	envPrefix     = "JASKCALC"
	envConfigPath = "JASKCALC_CONFIG"
)

// Load reads configuration from file and env. Env var overrides use prefix JASKCALC_.
// An explicit path takes precedence over JASKCALC_CONFIG.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv(envConfigPath)
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(defaultDir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	used := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// a missing default file is fine, a broken or missing explicit one is not
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		used = v.ConfigFileUsed()
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Path = used
	return normalize(c), nil
}

// Default returns the configuration used when no file or env is present.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	// only scalar defaults from setDefaults are decoded, which cannot fail
	_ = v.Unmarshal(&c)
	return normalize(c)
}

// Save writes cfg back to the file it was loaded from. Without one it uses
// JASKCALC_CONFIG, then config.toml in the default directory.
func Save(cfg Config) error {
	path := savePath(cfg)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("ui.show_keypad", cfg.UI.ShowKeypad)
	v.Set("ui.show_help", cfg.UI.ShowHelp)
	v.Set("ui.width", cfg.UI.Width)
	v.Set("mcp.name", cfg.MCP.Name)
	v.Set("mcp.max_calculators", cfg.MCP.MaxCalculators)
	v.Set("log.file", cfg.Log.File)
	if len(cfg.Keybindings) > 0 {
		items := make([]map[string]any, 0, len(cfg.Keybindings))
		for _, kb := range cfg.Keybindings {
			items = append(items, map[string]any{"scope": kb.Scope, "action": kb.Action, "keys": kb.Keys})
		}
		v.Set("keybindings", items)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// WriteKeybindings encodes bindings as a TOML document of [[keybindings]]
// tables, ready to paste into config.toml.
func WriteKeybindings(w io.Writer, bindings []Keybinding) error {
	doc := struct {
		Keybindings []Keybinding `toml:"keybindings"`
	}{Keybindings: bindings}
	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("encode keybindings: %w", err)
	}
	return nil
}

func savePath(cfg Config) string {
	if p := strings.TrimSpace(cfg.Path); p != "" {
		return p
	}
	if p := os.Getenv(envConfigPath); p != "" {
		return p
	}
	return filepath.Join(defaultDir(), "config.toml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ui.show_keypad", true)
	v.SetDefault("ui.show_help", false)
	v.SetDefault("ui.width", 36)
	v.SetDefault("mcp.name", "jaskcalc")
	v.SetDefault("mcp.max_calculators", 64)
	v.SetDefault("log.file", "")
}

func normalize(c Config) Config {
	if c.UI.Width < 24 {
		c.UI.Width = 24
	}
	if c.UI.Width > 120 {
		c.UI.Width = 120
	}
	if strings.TrimSpace(c.MCP.Name) == "" {
		c.MCP.Name = "jaskcalc"
	}
	if c.MCP.MaxCalculators <= 0 {
		c.MCP.MaxCalculators = 64
	}
	c.Log.File = strings.TrimSpace(c.Log.File)
	return c
}

func defaultDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "jaskcalc")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "jaskcalc")
}
