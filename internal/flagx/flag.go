// Package flagx lets several components share os.Args: each one filters the
// arguments down to the flags it owns before handing them to its own FlagSet.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs returns the subset of args that belongs to allowedFlags,
// together with their values.
//
// Supported formats:
//  1. Flag and value as separate arguments:  -c conf.json
//  2. Flag and value combined with '=':      --config=conf.json
//
// Flags listed in boolFlags never consume the following argument, so
// "-insecure positional" keeps "positional" out of the result.
func FilterArgs(args []string, allowedFlags []string, boolFlags ...string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags)+len(boolFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}
	bools := make(map[string]struct{}, len(boolFlags))
	for _, f := range boolFlags {
		allowed[f] = struct{}{}
		bools[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; !ok {
			continue
		}
		filtered = append(filtered, arg)
		if _, isBool := bools[arg]; isBool {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// ConfigFileFlag extracts the config file path given via -c, -config or
// --config. Other arguments are ignored. Returns "" when none is present.
func ConfigFileFlag(args []string) string {
	var config string

	filtered := FilterArgs(args, []string{"-c", "-config", "--config"})

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(filtered)

	return config
}
