package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(envConfigPath, "")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.True(t, cfg.UI.ShowKeypad)
	require.False(t, cfg.UI.ShowHelp)
	require.Equal(t, 36, cfg.UI.Width)
	require.Equal(t, "jaskcalc", cfg.MCP.Name)
	require.Equal(t, 64, cfg.MCP.MaxCalculators)
	require.Empty(t, cfg.Keybindings)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
[ui]
show_keypad = false
width = 48

[mcp]
name = "desk"
max_calculators = 3

[log]
file = " /tmp/jaskcalc.log "

[[keybindings]]
scope = "calculator"
action = "multiply"
keys = ["*", "x"]
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.False(t, cfg.UI.ShowKeypad)
	require.Equal(t, 48, cfg.UI.Width)
	require.Equal(t, "desk", cfg.MCP.Name)
	require.Equal(t, 3, cfg.MCP.MaxCalculators)
	require.Equal(t, "/tmp/jaskcalc.log", cfg.Log.File)
	require.Equal(t, []Keybinding{{Scope: "calculator", Action: "multiply", Keys: []string{"*", "x"}}}, cfg.Keybindings)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "[ui]\nwidth = 48\n")
	t.Setenv("JASKCALC_UI_WIDTH", "60")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 60, cfg.UI.Width)
}

func TestLoadConfigPathFromEnv(t *testing.T) {
	path := writeConfig(t, "[mcp]\nname = \"from-env\"\n")
	t.Setenv(envConfigPath, path)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "from-env", cfg.MCP.Name)
}

func TestLoadClampsWidth(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[ui]\nwidth = 3\n"))
	require.NoError(t, err)
	require.Equal(t, 24, cfg.UI.Width)

	cfg, err = Load(writeConfig(t, "[ui]\nwidth = 500\n"))
	require.NoError(t, err)
	require.Equal(t, 120, cfg.UI.Width)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "this is not valid toml [[["))
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	t.Setenv(envConfigPath, path)

	cfg := Default()
	cfg.UI.Width = 50
	cfg.UI.ShowHelp = true
	cfg.Keybindings = []Keybinding{{Scope: "calculator", Action: "clear", Keys: []string{"esc", "delete"}}}
	require.NoError(t, Save(cfg))

	got, err := Load("")
	require.NoError(t, err)
	cfg.Path = path
	require.Equal(t, cfg, got)
}

func TestSaveWritesBackToExplicitPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv(envConfigPath, "")

	path := writeConfig(t, "[ui]\nwidth = 50\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, path, cfg.Path)

	cfg.UI.ShowHelp = true
	require.NoError(t, Save(cfg))

	got, err := Load(path)
	require.NoError(t, err)
	require.True(t, got.UI.ShowHelp)
	require.Equal(t, 50, got.UI.Width)

	_, err = os.Stat(filepath.Join(defaultDir(), "config.toml"))
	require.True(t, os.IsNotExist(err), "default config must not be created")
}

func TestLoadWithoutFileHasNoPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(envConfigPath, "")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Empty(t, cfg.Path)
	require.Equal(t, filepath.Join(defaultDir(), "config.toml"), savePath(cfg))
}

func TestDefaultMatchesDeclaredDefaults(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.Equal(t, UIConfig{ShowKeypad: true, ShowHelp: false, Width: 36}, cfg.UI)
	require.Equal(t, MCPConfig{Name: "jaskcalc", MaxCalculators: 64}, cfg.MCP)
	require.Empty(t, cfg.Path)
}

func TestWriteKeybindings(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := WriteKeybindings(&buf, []Keybinding{
		{Scope: "calculator", Action: "compute", Keys: []string{"enter", "="}},
	})
	require.NoError(t, err)

	out := buf.String()
	require.True(t, strings.Contains(out, "[[keybindings]]"), out)
	require.True(t, strings.Contains(out, `action = "compute"`), out)
	require.True(t, strings.Contains(out, `keys = ["enter", "="]`), out)
}
