package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/agrilink/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Debug is a
// pointer so an explicit false can be told from an absent key.
type JsonConfig struct {
	DBPath    string `json:"db_path"`
	Backend   string `json:"backend"`
	RedisAddr string `json:"redis_addr"`
	Lang      string `json:"lang"`
	Debug     *bool  `json:"debug"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Absent or empty fields keep their current value. Read or
// unmarshal errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DBPath != "" {
		cfg.DBPath = jc.DBPath
	}
	if jc.Backend != "" {
		cfg.Backend = jc.Backend
	}
	if jc.RedisAddr != "" {
		cfg.RedisAddr = jc.RedisAddr
	}
	if jc.Lang != "" {
		cfg.Lang = jc.Lang
	}
	if jc.Debug != nil {
		cfg.Debug = *jc.Debug
	}
}
