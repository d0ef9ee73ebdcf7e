// Package config loads and validates lettermgt configuration.
//
// Configuration lives in a TOML file (default ~/.config/lettermgt/
// config.toml) with defaults suitable for a single-machine install.
// A .env file in the working directory and LETTERMGT_* environment
// variables override file values, which keeps per-host path overrides out
// of the shared config on machines running several dashboard sessions.
package config
