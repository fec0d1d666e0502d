package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/irccwatch/internal/client/tokenstore"
)

const (
	StoreSQLite = "sqlite"
	StoreCookie = "cookie"
	StoreMemory = "memory"
)

// Config holds runtime settings for the tracker client.
//
// Units: TokenTTL, ExpiryCheckInterval and RequestTimeout are durations;
// the flags spell them in hours and seconds.
type Config struct {
	BaseURL             string
	TokenStore          string
	DBPath              string
	Profile             string
	TokenTTL            time.Duration
	ExpiryCheckInterval time.Duration
	RequestTimeout      time.Duration
	AllowInsecure       bool
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8080"
	c.TokenStore = StoreSQLite
	c.DBPath = "irccwatch.db"
	c.Profile = tokenstore.DefaultProfile
	c.TokenTTL = tokenstore.DefaultTTL
	c.ExpiryCheckInterval = 30 * time.Second
	c.RequestTimeout = 30 * time.Second
	c.AllowInsecure = false
	c.LogLevel = "info"
}

// Validate reports settings no component could work with.
func (c *Config) Validate() error {
	switch c.TokenStore {
	case StoreSQLite, StoreCookie, StoreMemory:
	default:
		return fmt.Errorf("unknown token store %q", c.TokenStore)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("token ttl must be positive, got %s", c.TokenTTL)
	}
	if c.ExpiryCheckInterval < 0 {
		return fmt.Errorf("expiry check interval must not be negative, got %s", c.ExpiryCheckInterval)
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base url is required")
	}
	return nil
}

// LoadConfig builds a Config from os.Args.
func LoadConfig() *Config {
	return Load(os.Args[1:])
}

// Load applies defaults, then the config file named by -c/-config (JSON or
// YAML), then flags. Later sources take precedence. Malformed input panics,
// the same way flag parsing does.
func Load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
