// Package flagx lets several components parse their own flags from os.Args
// without tripping over each other's unknown flags.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns only the allowed flags (and their values) from args.
//
// Both "-c conf.json" and "--config=conf.json" forms are understood. A token
// that follows an allowed flag is taken as its value unless it starts with "-".
func FilterArgs(args []string, allowedFlags []string) []string {
	return FilterArgsWithBools(args, allowedFlags, nil)
}

// FilterArgsWithBools is FilterArgs with an extra set of boolean flags. A
// boolean flag never consumes the following token; use "-v=false" to unset it.
func FilterArgsWithBools(args []string, valued []string, boolean []string) []string {
	kinds := make(map[string]bool, len(valued)+len(boolean))
	for _, f := range valued {
		kinds[f] = true
	}
	for _, f := range boolean {
		kinds[f] = false
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, known := kinds[name]; known {
				filtered = append(filtered, arg)
			}
			continue
		}

		takesValue, known := kinds[arg]
		if !known {
			continue
		}
		filtered = append(filtered, arg)
		if takesValue && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}
	return filtered
}

// ConfigFileFlag returns the path given with -c or -config, or "" when
// neither is present. The last occurrence wins.
func ConfigFileFlag() string {
	var path string
	args := FilterArgs(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "Path to config file (JSON or YAML)")
	fs.StringVar(&path, "c", "", "Path to config file (short)")
	_ = fs.Parse(args)

	return path
}

// StripArgs is the complement of FilterArgsWithBools: it drops the given
// flags and their values and keeps everything else in order, leaving the
// positional arguments and flags of a subcommand.
func StripArgs(args []string, valued []string, boolean []string) []string {
	kinds := make(map[string]bool, len(valued)+len(boolean))
	for _, f := range valued {
		kinds[f] = true
	}
	for _, f := range boolean {
		kinds[f] = false
	}

	kept := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, known := kinds[name]; !known {
				kept = append(kept, arg)
			}
			continue
		}

		takesValue, known := kinds[arg]
		if !known {
			kept = append(kept, arg)
			continue
		}
		if takesValue && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			i++
		}
	}
	return kept
}
