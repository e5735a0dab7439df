package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/jaskcalc/internal/adapter"
	"github.com/jask/jaskcalc/internal/config"
	"github.com/jask/jaskcalc/internal/server"
	"github.com/jask/jaskcalc/internal/tui"
)

var version = "dev"

type options struct {
	mcp        bool
	configPath string
	dumpKeys   bool
	version    bool
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}
	if opts.version {
		fmt.Printf("jaskcalc %s\n", version)
		return
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	keys, err := loadKeys(cfg)
	if err != nil {
		log.Fatalf("keybindings: %v", err)
	}

	switch {
	case opts.dumpKeys:
		if err := config.WriteKeybindings(os.Stdout, keys.ExportKeybindingConfig()); err != nil {
			log.Fatalf("dump keys: %v", err)
		}
	case opts.mcp:
		log.SetOutput(os.Stderr)
		if err := server.New(cfg.MCP, keys, version).ServeStdio(); err != nil {
			log.Fatalf("mcp: %v", err)
		}
	default:
		if err := runTUI(cfg, keys); err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}
	}
}

func parseFlags(args []string, out io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("jaskcalc", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.BoolVar(&opts.mcp, "mcp", false, "Serve calculators as MCP tools on stdio")
	fs.StringVar(&opts.configPath, "config", "", "Path to a TOML config file")
	fs.BoolVar(&opts.dumpKeys, "dump-keys", false, "Print the effective keybindings as TOML and exit")
	fs.BoolVar(&opts.version, "version", false, "Print the version and exit")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(out, "unexpected arguments: %v\n", fs.Args())
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

func loadKeys(cfg config.Config) (*adapter.KeyRegistry, error) {
	keys := adapter.NewKeyRegistry()
	if err := keys.ApplyKeybindingConfig(cfg.Keybindings); err != nil {
		return nil, err
	}
	return keys, nil
}

func runTUI(cfg config.Config, keys *adapter.KeyRegistry) error {
	if cfg.Log.File != "" {
		f, err := tea.LogToFile(cfg.Log.File, "jaskcalc")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	p := tea.NewProgram(tui.New(cfg, keys), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
