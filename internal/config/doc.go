// Package config loads settings for the hotkeys binary.
//
// Settings are resolved in layers, higher layers overriding lower:
//
//  1. Built-in defaults (Default)
//  2. An optional TOML file
//  3. HOTKEYS_* environment variables
//  4. Command-line flags, applied by the caller
//
// A file looks like:
//
//	[log]
//	level = "debug"
//	file = "/tmp/hotkeys.log"
//
//	[input]
//	source = "bridge"
//	platform = "mac"
//
//	[bridge]
//	addr = "127.0.0.1:7071"
//
//	[metrics]
//	addr = "127.0.0.1:9091"
//
// Unknown keys are rejected so typos surface at startup.
package config
