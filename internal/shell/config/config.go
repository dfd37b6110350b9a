// Package config handles configuration for the shell server, including
// defaults, JSON overlay, and command-line flags.
package config

import (
	"time"

	"github.com/dmitrijs2005/agrilink/internal/offline"
)

// Config holds runtime settings for the AgriLink shell server.
//
// Fields:
//   - ListenAddr: bind address of the HTTP server.
//   - OriginURL: where shell assets are fetched from when S3Bucket is empty.
//   - CacheVersion: cache generation installed at start-up. Bump it to make
//     every asset refetch.
//   - CacheDBPath: SQLite file that keeps installed caches across restarts.
//   - Assets: the manifest cached at install.
//   - S3Bucket / S3Prefix / S3Region / S3BaseEndpoint: object storage origin.
//     Setting S3Bucket switches the origin from OriginURL to the bucket.
//   - S3RootUser / S3RootPassword: static credentials for the bucket.
//   - LogDir: directory of the rotated log file; empty logs to stdout only.
//   - Debug: debug level, console encoding.
//   - ShutdownTimeout: grace period for in-flight requests on SIGINT/SIGTERM.
type Config struct {
	ListenAddr      string
	OriginURL       string
	CacheVersion    string
	CacheDBPath     string
	Assets          []string
	S3Bucket        string
	S3Prefix        string
	S3Region        string
	S3BaseEndpoint  string
	S3RootUser      string
	S3RootPassword  string
	LogDir          string
	Debug           bool
	ShutdownTimeout time.Duration
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":8080"
	c.OriginURL = "http://127.0.0.1:8000/"
	c.CacheVersion = string(offline.DefaultVersion)
	c.CacheDBPath = "offline.db"
	c.Assets = offline.DefaultManifest()
	c.S3Bucket = ""
	c.S3Prefix = ""
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = ""
	c.S3RootUser = ""
	c.S3RootPassword = ""
	c.LogDir = "logs"
	c.Debug = false
	c.ShutdownTimeout = 5 * time.Second
}

// UseS3 reports whether assets come from the bucket.
func (c *Config) UseS3() bool {
	return c.S3Bucket != ""
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
