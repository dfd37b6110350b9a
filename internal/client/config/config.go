package config

// Storage backends of the local state store.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds runtime settings for the AgriLink terminal client.
//
// Fields:
//   - DBPath: SQLite file used by the sqlite backend.
//   - Backend: one of BackendSQLite, BackendMemory, BackendRedis.
//   - RedisAddr: host:port of the Redis server for the redis backend.
//   - Lang: locale applied when none is stored yet.
//   - Debug: enables debug logging.
type Config struct {
	DBPath    string
	Backend   string
	RedisAddr string
	Lang      string
	Debug     bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DBPath = "agrilink.db"
	c.Backend = BackendSQLite
	c.RedisAddr = "127.0.0.1:6379"
	c.Lang = "en"
	c.Debug = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
