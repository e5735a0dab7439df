package main

import (
	"bytes"
	"errors"
	"flag"
	"strings"
	"testing"

	"github.com/jask/jaskcalc/internal/adapter"
	"github.com/jask/jaskcalc/internal/config"
)

func TestParseFlags(t *testing.T) {
	var out bytes.Buffer
	opts, err := parseFlags([]string{"-mcp", "-config", "/tmp/x.toml"}, &out)
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if !opts.mcp || opts.configPath != "/tmp/x.toml" || opts.dumpKeys || opts.version {
		t.Fatalf("unexpected options: %+v", opts)
	}
}

func TestParseFlagsRejectsExtraArgs(t *testing.T) {
	var out bytes.Buffer
	if _, err := parseFlags([]string{"-version", "extra"}, &out); err == nil {
		t.Fatal("expected error for positional arguments")
	}
	if !strings.Contains(out.String(), "unexpected arguments") {
		t.Fatalf("usage output = %q", out.String())
	}
}

func TestParseFlagsHelp(t *testing.T) {
	var out bytes.Buffer
	_, err := parseFlags([]string{"-h"}, &out)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("err = %v, want flag.ErrHelp", err)
	}
	if !strings.Contains(out.String(), "-dump-keys") {
		t.Fatalf("help output missing flags: %q", out.String())
	}
}

func TestLoadKeysAppliesOverrides(t *testing.T) {
	cfg := config.Default()
	cfg.Keybindings = []config.Keybinding{
		{Scope: adapter.ScopeCalculator, Action: string(adapter.ActionMultiply), Keys: []string{"x"}},
	}
	keys, err := loadKeys(cfg)
	if err != nil {
		t.Fatalf("loadKeys: %v", err)
	}
	b := keys.Lookup("x", adapter.ScopeCalculator)
	if b == nil || b.Action != adapter.ActionMultiply {
		t.Fatalf("x bound to %+v, want multiply", b)
	}
}

func TestLoadKeysRejectsUnknownAction(t *testing.T) {
	cfg := config.Default()
	cfg.Keybindings = []config.Keybinding{
		{Scope: adapter.ScopeCalculator, Action: "explode", Keys: []string{"x"}},
	}
	if _, err := loadKeys(cfg); !errors.Is(err, adapter.ErrUnknownAction) {
		t.Fatalf("err = %v, want ErrUnknownAction", err)
	}
}
