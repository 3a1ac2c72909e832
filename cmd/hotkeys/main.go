// Package main is the entry point for the hotkeys demo.
//
// It reads input from the terminal or from a webview over the WebSocket
// bridge and logs every registered shortcut it sees.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/dshills/hotkeys/internal/app"
	"github.com/dshills/hotkeys/internal/config"
	"github.com/dshills/hotkeys/internal/input/key"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath  string
	logLevel    string
	source      string
	platform    string
	bridgeAddr  string
	metricsAddr string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	out, closeLog, err := app.OpenLogOutput(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer func() { _ = closeLog() }()

	log, err := app.NewLogger(cfg.Log, out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if cfg.Input.Source == config.SourceTerminal && cfg.Log.File == "" {
		// The terminal source owns the screen.
		log = log.Level(zerolog.Disabled)
	}

	application, err := app.New(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	if err := bindDemoShortcuts(application, log); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// bindDemoShortcuts registers the shortcuts the demo reacts to. The
// command modifier follows the configured platform.
func bindDemoShortcuts(a *app.App, log zerolog.Logger) error {
	cmd := key.CommandModifier(a.Platform())
	report := func(c key.Combo, action string) func() {
		return func() {
			log.Info().Str("combo", c.String()).Str("action", action).Msg("shortcut")
		}
	}

	bindings := []struct {
		combo  key.Combo
		action string
	}{
		{key.NewCombo(cmd, "KeyS"), "save"},
		{key.NewCombo(cmd, "KeyO"), "open"},
		{key.NewCombo(cmd|key.ModShift, "KeyP"), "command palette"},
		{key.NewCombo(cmd, "KeyA", "KeyB"), "chord demo"},
		{key.NewCombo(key.ModAlt, "F4"), "close"},
		{key.NewCombo(key.ModNone, "F1"), "help"},
	}
	for _, b := range bindings {
		if err := a.BindCombo(b.combo, report(b.combo, b.action)); err != nil {
			return err
		}
	}

	// Ctrl+C never reaches a raw terminal as a signal.
	return a.BindCombo(key.NewCombo(key.ModCtrl, "KeyC"), a.Quit)
}

func loadConfig(opts options) (config.Config, error) {
	// Flags override the file and environment.
	return config.Load(opts.configPath, func(cfg *config.Config) {
		if opts.logLevel != "" {
			cfg.Log.Level = opts.logLevel
		}
		if opts.source != "" {
			cfg.Input.Source = opts.source
		}
		if opts.platform != "" {
			cfg.Input.Platform = opts.platform
		}
		if opts.bridgeAddr != "" {
			cfg.Bridge.Addr = opts.bridgeAddr
		}
		if opts.metricsAddr != "" {
			cfg.Metrics.Addr = opts.metricsAddr
		}
	})
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.source, "source", "", "Input source (terminal, bridge)")
	flag.StringVar(&opts.platform, "platform", "", "Platform for the command key (auto, windows, linux, mac)")
	flag.StringVar(&opts.bridgeAddr, "bridge-addr", "", "WebSocket bridge listen address")
	flag.StringVar(&opts.metricsAddr, "metrics-addr", "", "Prometheus metrics listen address")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "hotkeys - keyboard shortcut demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: hotkeys [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
		for _, name := range config.EnvNames() {
			fmt.Fprintf(os.Stderr, "  %s\n", name)
		}
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  hotkeys                          Read keys from this terminal\n")
		fmt.Fprintf(os.Stderr, "  hotkeys -source bridge           Accept DOM events on ws://127.0.0.1:7071/ws\n")
		fmt.Fprintf(os.Stderr, "  hotkeys -platform mac -log-level debug\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("hotkeys %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	return opts
}
