package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/irccwatch/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   backend base URL, e.g. https://tracker.example.com
//	-s string   token store: sqlite, cookie or memory
//	-d string   path of the local SQLite database
//	-t int      token lifetime in hours
//	-i int      session expiry check interval in seconds (0 disables)
//	-insecure   allow sending the token over plain http to remote hosts
//	-l string   log level: debug, info, warn or error
//
// Arguments are filtered with flagx.FilterArgs first so that flags owned by
// other components (-c) do not make parsing fail.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-s", "-d", "-t", "-i", "-l"}, "-insecure")

	fs := flag.NewFlagSet("client", flag.ContinueOnError)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "backend base URL")
	fs.StringVar(&cfg.TokenStore, "s", cfg.TokenStore, "token store (sqlite|cookie|memory)")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "local database path")
	ttlHours := fs.Int("t", int(cfg.TokenTTL.Hours()), "token lifetime (in hours)")
	interval := fs.Int("i", int(cfg.ExpiryCheckInterval.Seconds()), "session expiry check interval (in seconds)")
	fs.BoolVar(&cfg.AllowInsecure, "insecure", cfg.AllowInsecure, "allow bearer token over plain http")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Only overwrite durations that were given so sub-unit values from the
	// config file survive.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.TokenTTL = time.Duration(*ttlHours) * time.Hour
		case "i":
			cfg.ExpiryCheckInterval = time.Duration(*interval) * time.Second
		}
	})
}
