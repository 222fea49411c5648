// Package config loads runtime configuration for the gymbacteria CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .toml are read as TOML, anything else as JSON.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// # File schema
//
// Durations use timex.Duration, so they may be strings like "10s" or integer
// nanoseconds (JSON only):
//
//	{
//	  "api_base_url": "http://localhost:5328",
//	  "request_timeout": "10s",
//	  "storage_driver": "sqlite",
//	  "database_path": "~/.gymbacteria/client.db"
//	}
//
// Validation is separate from loading: (*Config).Validate returns a list of
// FieldError values instead of failing on the first problem.
package config
