// Package config loads and validates application configuration from
// environment variables (prefix BOOT) merged with an optional YAML file,
// and resolves the directory layout the binaries share.
package config
