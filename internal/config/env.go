package config

import "slices"

// EnvPrefix is the prefix of environment variables read by ApplyEnv.
const EnvPrefix = "HOTKEYS_"

// LookupFunc looks up an environment variable, like os.LookupEnv.
type LookupFunc func(name string) (string, bool)

// envMapping maps environment variables to the setting they override.
var envMapping = map[string]func(*Config, string){
	EnvPrefix + "LOG_LEVEL":      func(c *Config, v string) { c.Log.Level = v },
	EnvPrefix + "LOG_FORMAT":     func(c *Config, v string) { c.Log.Format = v },
	EnvPrefix + "LOG_FILE":       func(c *Config, v string) { c.Log.File = v },
	EnvPrefix + "INPUT_SOURCE":   func(c *Config, v string) { c.Input.Source = v },
	EnvPrefix + "INPUT_PLATFORM": func(c *Config, v string) { c.Input.Platform = v },
	EnvPrefix + "BRIDGE_ADDR":    func(c *Config, v string) { c.Bridge.Addr = v },
	EnvPrefix + "METRICS_ADDR":   func(c *Config, v string) { c.Metrics.Addr = v },
}

// ApplyEnv overrides settings from environment variables found by lookup.
// A variable set to the empty string clears the setting.
func ApplyEnv(cfg *Config, lookup LookupFunc) {
	for name, set := range envMapping {
		if v, ok := lookup(name); ok {
			set(cfg, v)
		}
	}
}

// EnvNames returns the recognized environment variables, sorted.
func EnvNames() []string {
	names := make([]string, 0, len(envMapping))
	for name := range envMapping {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
