package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/irccwatch/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string        HTTP bind address (e.g., ":8080")
//	-k string        JWT HMAC secret key
//	-e int           token lifetime, hours
//	-admin string    seeded administrator e-mail
//	-admin-password  seeded administrator password
//	-demo            seed the demo user and applications
//	-l string        log level
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-k", "-e", "-admin", "-admin-password", "-l"}, "-demo")

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&cfg.ListenAddr, "a", cfg.ListenAddr, "address and port to run server")
	fs.StringVar(&cfg.SecretKey, "k", cfg.SecretKey, "secret key")
	lifetime := fs.Int("e", int(cfg.TokenLifetime.Hours()), "token lifetime (in hours)")
	fs.StringVar(&cfg.AdminEmail, "admin", cfg.AdminEmail, "seeded admin e-mail")
	fs.StringVar(&cfg.AdminPassword, "admin-password", cfg.AdminPassword, "seeded admin password")
	fs.BoolVar(&cfg.SeedDemo, "demo", cfg.SeedDemo, "seed demo data")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "e" {
			cfg.TokenLifetime = time.Duration(*lifetime) * time.Hour
		}
	})
}
