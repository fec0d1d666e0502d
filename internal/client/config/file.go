package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/irccwatch/internal/flagx"
	"github.com/dmitrijs2005/irccwatch/internal/timex"
)

// FileConfig is the on-disk schema. Durations use timex.Duration so files
// may say "30s" or give integer nanoseconds. Absent fields keep the value
// from earlier sources.
type FileConfig struct {
	BaseURL             string          `json:"base_url" yaml:"base_url"`
	TokenStore          string          `json:"token_store" yaml:"token_store"`
	DBPath              string          `json:"db_path" yaml:"db_path"`
	Profile             string          `json:"profile" yaml:"profile"`
	TokenTTL            *timex.Duration `json:"token_ttl" yaml:"token_ttl"`
	ExpiryCheckInterval *timex.Duration `json:"expiry_check_interval" yaml:"expiry_check_interval"`
	RequestTimeout      *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	AllowInsecure       *bool           `json:"allow_insecure" yaml:"allow_insecure"`
	LogLevel            string          `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with the file named by -c/-config. Files ending in
// .yaml or .yml are decoded as YAML, anything else as JSON. Panics on read
// or decode errors.
func parseFile(cfg *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc FileConfig) apply(cfg *Config) {
	if fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}
	if fc.TokenStore != "" {
		cfg.TokenStore = fc.TokenStore
	}
	if fc.DBPath != "" {
		cfg.DBPath = fc.DBPath
	}
	if fc.Profile != "" {
		cfg.Profile = fc.Profile
	}
	if fc.TokenTTL != nil {
		cfg.TokenTTL = fc.TokenTTL.Duration
	}
	if fc.ExpiryCheckInterval != nil {
		cfg.ExpiryCheckInterval = fc.ExpiryCheckInterval.Duration
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.AllowInsecure != nil {
		cfg.AllowInsecure = *fc.AllowInsecure
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
}
