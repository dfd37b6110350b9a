// Package flagx lets several components read their own flags from one
// shared command line.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// ParseKnown parses into fs only the arguments naming one of its flags.
// Unknown flags and positional arguments are skipped, so the JSON loader
// and the flag loader can both look at os.Args without failing on each
// other's flags.
func ParseKnown(fs *flag.FlagSet, args []string) error {
	return fs.Parse(FilterArgs(fs, args))
}

// FilterArgs returns the arguments of args that name a flag defined in fs,
// together with their values.
//
// Supported forms:
//
//	-c conf.json    value in the next argument
//	--config=x      value after '='
//	-D              boolean flag, never takes the next argument
//
// A value is only taken from the next argument when it does not start with
// '-'. Scanning stops at "--".
func FilterArgs(fs *flag.FlagSet, args []string) []string {
	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}

		name, inline := flagName(arg)
		if name == "" {
			continue
		}
		f := fs.Lookup(name)
		if f == nil {
			continue
		}

		filtered = append(filtered, arg)
		if inline || isBoolFlag(f) {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// flagName strips one or two leading dashes and any "=value" part. inline
// reports whether the value was attached.
func flagName(arg string) (name string, inline bool) {
	if len(arg) < 2 || arg[0] != '-' {
		return "", false
	}
	name = strings.TrimPrefix(arg[1:], "-")
	name, _, inline = strings.Cut(name, "=")
	return name, inline
}

func isBoolFlag(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

// JsonConfigFlags returns the config file named by -c or -config in
// os.Args, or "" when neither is present.
func JsonConfigFlags() string {
	var config string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = ParseKnown(fs, os.Args[1:])

	return config
}
