// Package config loads runtime configuration for the tracker client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or -config. Files ending in
//     .yaml/.yml are read as YAML, others as JSON.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// # File schema
//
// Durations use timex.Duration, so values can be strings like "30s" or
// integer nanoseconds:
//
//	{
//	  "base_url": "https://tracker.example.com",
//	  "token_store": "sqlite",
//	  "db_path": "irccwatch.db",
//	  "token_ttl": "168h",
//	  "expiry_check_interval": "30s",
//	  "request_timeout": "30s",
//	  "log_level": "info"
//	}
//
// This package does not read environment variables.
package config
