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

// FileConfig is the on-disk schema; absent fields keep earlier values.
type FileConfig struct {
	ListenAddr        string          `json:"listen_addr" yaml:"listen_addr"`
	SecretKey         string          `json:"secret_key" yaml:"secret_key"`
	TokenLifetime     *timex.Duration `json:"token_lifetime" yaml:"token_lifetime"`
	AdminEmail        string          `json:"admin_email" yaml:"admin_email"`
	AdminPassword     string          `json:"admin_password" yaml:"admin_password"`
	SeedDemo          *bool           `json:"seed_demo" yaml:"seed_demo"`
	GoogleClientID    string          `json:"google_client_id" yaml:"google_client_id"`
	GoogleAnalyticsID string          `json:"google_analytics_id" yaml:"google_analytics_id"`
	LogLevel          string          `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with the file named by -c/-config. Panics on read
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
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.ListenAddr, fc.ListenAddr)
	set(&cfg.SecretKey, fc.SecretKey)
	set(&cfg.AdminEmail, fc.AdminEmail)
	set(&cfg.AdminPassword, fc.AdminPassword)
	set(&cfg.GoogleClientID, fc.GoogleClientID)
	set(&cfg.GoogleAnalyticsID, fc.GoogleAnalyticsID)
	set(&cfg.LogLevel, fc.LogLevel)

	if fc.TokenLifetime != nil {
		cfg.TokenLifetime = fc.TokenLifetime.Duration
	}
	if fc.SeedDemo != nil {
		cfg.SeedDemo = *fc.SeedDemo
	}
}
