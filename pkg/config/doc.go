// Package config handles configuration management for storyreg.
// Configuration is layered: embedded defaults, then an optional TOML or
// YAML file, then STORYREG_* environment variables, then explicit
// overrides (command-line flags).
package config
