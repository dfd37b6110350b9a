package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/agrilink/internal/flagx"
	"github.com/dmitrijs2005/agrilink/internal/timex"
)

// JsonConfig is the DTO read from the JSON configuration file. Intervals
// use timex.Duration so they can be written as "5s" or as nanoseconds.
type JsonConfig struct {
	ListenAddr      string          `json:"listen_addr"`
	OriginURL       string          `json:"origin_url"`
	CacheVersion    string          `json:"cache_version"`
	CacheDBPath     string          `json:"cache_db"`
	Assets          []string        `json:"assets"`
	S3Bucket        string          `json:"s3_bucket"`
	S3Prefix        string          `json:"s3_prefix"`
	S3Region        string          `json:"s3_region"`
	S3BaseEndpoint  string          `json:"s3_base_endpoint"`
	S3RootUser      string          `json:"s3_root_user"`
	S3RootPassword  string          `json:"s3_root_password"`
	LogDir          *string         `json:"log_dir"`
	Debug           *bool           `json:"debug"`
	ShutdownTimeout *timex.Duration `json:"shutdown_timeout"`
}

// parseJson loads values from the file named by -c or -config into config.
// Keys that are absent keep their current value; log_dir may be set to ""
// to disable the log file. Read or decode errors panic.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.ListenAddr, c.ListenAddr)
	setString(&config.OriginURL, c.OriginURL)
	setString(&config.CacheVersion, c.CacheVersion)
	setString(&config.CacheDBPath, c.CacheDBPath)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Prefix, c.S3Prefix)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)

	if len(c.Assets) > 0 {
		config.Assets = c.Assets
	}
	if c.LogDir != nil {
		config.LogDir = *c.LogDir
	}
	if c.Debug != nil {
		config.Debug = *c.Debug
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
