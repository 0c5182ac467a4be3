package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/flagx"
	"github.com/dmitrijs2005/gophaccounts/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Timeout may
// be a string like "5s" or integer nanoseconds.
type JsonConfig struct {
	ServerURL   string         `json:"server_url"`
	RoutePrefix string         `json:"route_prefix"`
	Token       string         `json:"token"`
	Timeout     timex.Duration `json:"timeout"`
}

// parseJson overlays cfg with the non-empty values of the file named by
// -c/-config. Read or decode errors panic.
func parseJson(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	applyJson(cfg, data)
}

func applyJson(cfg *Config, data []byte) {
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.RoutePrefix != "" {
		cfg.RoutePrefix = jc.RoutePrefix
	}
	if jc.Token != "" {
		cfg.Token = jc.Token
	}
	if jc.Timeout.Duration > 0 {
		cfg.Timeout = time.Duration(jc.Timeout.Duration)
	}
}
