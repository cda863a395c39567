// Package config handles configuration management for arcbuilder.
// It layers the embedded defaults, an optional TOML file, ARCBUILDER_*
// environment variables and explicitly set command-line flags.
package config
