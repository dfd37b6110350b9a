package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/agrilink/internal/flagx"
)

// parseFlags populates selected shell Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   listen address (e.g., ":8080")
//	-o string   origin base URL of the shell assets
//	-v string   cache version
//	-d string   cache database file
//	-b string   S3 bucket (enables the S3 origin)
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-u string   S3 root user
//	-p string   S3 root password
//	-L string   log directory
//	-D          debug logging
//	-t int      shutdown timeout, seconds
//
// Arguments the set does not define are skipped by flagx.ParseKnown. The
// shutdown timeout is accepted as whole seconds.
func parseFlags(config *Config) {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ListenAddr, "a", config.ListenAddr, "address and port to run server")
	fs.StringVar(&config.OriginURL, "o", config.OriginURL, "origin base URL")
	fs.StringVar(&config.CacheVersion, "v", config.CacheVersion, "cache version")
	fs.StringVar(&config.CacheDBPath, "d", config.CacheDBPath, "cache database file")

	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")

	fs.StringVar(&config.LogDir, "L", config.LogDir, "log directory")
	fs.BoolVar(&config.Debug, "D", config.Debug, "debug logging")

	shutdownTimeout := fs.Int("t", int(config.ShutdownTimeout.Seconds()), "shutdown timeout (in seconds)")

	if err := flagx.ParseKnown(fs, os.Args[1:]); err != nil {
		panic(err)
	}

	config.ShutdownTimeout = time.Duration(*shutdownTimeout) * time.Second
}
