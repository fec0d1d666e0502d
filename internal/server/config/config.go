// Package config handles configuration for the development backend,
// including defaults, a JSON or YAML file overlay, and command-line flags.
package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds runtime settings for the development backend.
//
// Fields:
//   - ListenAddr: bind address of the HTTP listener.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Empty means a random
//     secret is generated at start, so tokens do not survive a restart.
//   - TokenLifetime: validity of issued tokens.
//   - AdminEmail / AdminPassword: the seeded administrator account.
//   - SeedDemo: also seed a demo user with sample applications.
//   - GoogleClientID / GoogleAnalyticsID: served by GET /api/config.
type Config struct {
	ListenAddr        string
	SecretKey         string
	TokenLifetime     time.Duration
	AdminEmail        string
	AdminPassword     string
	SeedDemo          bool
	GoogleClientID    string
	GoogleAnalyticsID string
	LogLevel          string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the admin password is insecure and must be overridden outside local use.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":8080"
	c.SecretKey = ""
	c.TokenLifetime = 24 * time.Hour
	c.AdminEmail = "admin@example.com"
	c.AdminPassword = "admin123"
	c.SeedDemo = true
	c.GoogleClientID = ""
	c.GoogleAnalyticsID = ""
	c.LogLevel = "info"
}

func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen address is required")
	}
	if c.TokenLifetime <= 0 {
		return fmt.Errorf("token lifetime must be positive, got %s", c.TokenLifetime)
	}
	if c.AdminEmail == "" || c.AdminPassword == "" {
		return fmt.Errorf("admin email and password are required")
	}
	return nil
}

// LoadConfig builds a Config from os.Args.
func LoadConfig() *Config {
	return Load(os.Args[1:])
}

// Load applies defaults, then the file named by -c/-config, then flags.
func Load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
