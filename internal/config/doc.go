// Package config loads the optional YAML configuration file.
// Missing fields fall back to defaults, so the tool runs without any
// config at all; command-line flags override whatever the file sets.
package config
