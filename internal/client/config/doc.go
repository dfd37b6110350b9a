// Package config loads runtime configuration for the AgriLink terminal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   SQLite database file
//	-s string   storage backend: sqlite, memory or redis
//	-r string   redis address
//	-l string   default language
//	-D          debug logging
//
// # JSON schema
//
//	{
//	  "db_path": "agrilink.db",
//	  "backend": "sqlite",
//	  "redis_addr": "127.0.0.1:6379",
//	  "lang": "en",
//	  "debug": false
//	}
package config
