package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/dmitrijs2005/agrilink/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   SQLite database file
//	-s string   storage backend: sqlite, memory or redis
//	-r string   redis address
//	-l string   default language
//	-D          debug logging
//
// Arguments meant for other components (-c, -config) are skipped by
// flagx.ParseKnown.
func parseFlags(cfg *Config) {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "database file")
	fs.StringVar(&cfg.Backend, "s", cfg.Backend, "storage backend (sqlite|memory|redis)")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address")
	fs.StringVar(&cfg.Lang, "l", cfg.Lang, "default language")
	fs.BoolVar(&cfg.Debug, "D", cfg.Debug, "debug logging")

	if err := flagx.ParseKnown(fs, os.Args[1:]); err != nil {
		panic(err)
	}

	switch cfg.Backend {
	case BackendSQLite, BackendMemory, BackendRedis:
	default:
		panic(fmt.Sprintf("unknown storage backend %q", cfg.Backend))
	}
}
