package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"

	"github.com/dshills/hotkeys/internal/input/key"
)

// Input sources.
const (
	SourceTerminal = "terminal"
	SourceBridge   = "bridge"
)

// PlatformAuto selects the platform from the running OS.
const PlatformAuto = "auto"

// Log formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config holds all settings.
type Config struct {
	Log     LogConfig     `toml:"log"`
	Input   InputConfig   `toml:"input"`
	Bridge  BridgeConfig  `toml:"bridge"`
	Metrics MetricsConfig `toml:"metrics"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is a zerolog level name.
	Level string `toml:"level"`
	// Format is "console" or "json".
	Format string `toml:"format"`
	// File receives log output instead of stderr when set. The terminal
	// source owns the screen, so it should log to a file.
	File string `toml:"file"`
}

// InputConfig selects where input events come from.
type InputConfig struct {
	// Source is "terminal" or "bridge".
	Source string `toml:"source"`
	// Platform picks the command modifier: "auto", "windows", "linux" or "mac".
	Platform string `toml:"platform"`
}

// BridgeConfig configures the WebSocket bridge.
type BridgeConfig struct {
	Addr string `toml:"addr"`
}

// MetricsConfig configures the Prometheus endpoint. An empty Addr
// disables it.
type MetricsConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  zerolog.LevelInfoValue,
			Format: FormatConsole,
		},
		Input: InputConfig{
			Source:   SourceTerminal,
			Platform: PlatformAuto,
		},
		Bridge: BridgeConfig{
			Addr: "127.0.0.1:7071",
		},
	}
}

// Load returns the defaults overlaid with the TOML file at path (if path
// is not empty), the process environment and then overrides, validated.
func Load(path string, overrides ...func(*Config)) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
			}
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := Parse(path, data, &cfg); err != nil {
			return Config{}, err
		}
	}

	ApplyEnv(&cfg, os.LookupEnv)
	for _, override := range overrides {
		override(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes TOML data into cfg. Keys absent from data keep their
// current values. source names the data in errors.
func Parse(source string, data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(cfg); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}

		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			pe.Line, pe.Column = derr.Position()
		}
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			pe.Message = "unknown keys: " + strings.Join(unknownKeys(serr), ", ")
		}
		return pe
	}
	return nil
}

func unknownKeys(serr *toml.StrictMissingError) []string {
	keys := make([]string, 0, len(serr.Errors))
	for _, e := range serr.Errors {
		keys = append(keys, strings.Join(e.Key(), "."))
	}
	return keys
}

// Validate checks every setting and returns all problems joined.
func (c Config) Validate() error {
	var errs []error
	invalid := func(field, value, msg string) {
		errs = append(errs, &ValidationError{Field: field, Value: value, Message: msg})
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil || c.Log.Level == "" {
		invalid("log.level", c.Log.Level, "unknown log level")
	}
	switch c.Log.Format {
	case FormatConsole, FormatJSON:
	default:
		invalid("log.format", c.Log.Format, `must be "console" or "json"`)
	}

	switch c.Input.Source {
	case SourceTerminal, SourceBridge:
	default:
		invalid("input.source", c.Input.Source, `must be "terminal" or "bridge"`)
	}
	if _, err := c.Platform(); err != nil {
		invalid("input.platform", c.Input.Platform, `must be "auto", "windows", "linux" or "mac"`)
	}

	if c.Input.Source == SourceBridge || c.Bridge.Addr != "" {
		if _, _, err := net.SplitHostPort(c.Bridge.Addr); err != nil {
			invalid("bridge.addr", c.Bridge.Addr, "must be host:port")
		}
	}
	if c.Metrics.Addr != "" {
		if _, _, err := net.SplitHostPort(c.Metrics.Addr); err != nil {
			invalid("metrics.addr", c.Metrics.Addr, "must be host:port")
		}
	}

	return errors.Join(errs...)
}

// Platform resolves Input.Platform, mapping "auto" to the running OS.
func (c Config) Platform() (key.Platform, error) {
	if strings.EqualFold(c.Input.Platform, PlatformAuto) {
		return key.CurrentPlatform(), nil
	}
	return key.ParsePlatform(c.Input.Platform)
}
