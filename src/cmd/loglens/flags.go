// FILE: loglens/src/cmd/loglens/flags.go
package main

import (
	"fmt"
	"strings"
)

// FlagConfig holds the options handled before configuration loading.
type FlagConfig struct {
	ConfigFile string
	Quiet      bool

	// Arguments in --section.key=value form, handed to the config loader
	ConfigArgs []string
}

// Short options and their config keys
var valueFlags = map[string]string{
	"-f": "input.format", "--format": "input.format",
	"-o": "report.output", "--output": "report.output",
	"-a": "report.aggregations", "--aggregations": "report.aggregations",
	"-t": "report.top", "--top": "report.top",
	"-s": "report.selector_file", "--selectors": "report.selector_file",
}

var boolFlags = map[string]string{
	"-g": "geo.enabled", "--geo": "geo.enabled",
}

// ParseFlags rewrites command-line arguments into config overrides.
// A single positional argument is the input path.
func ParseFlags(args []string) (*FlagConfig, error) {
	fc := &FlagConfig{}
	var positional []string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		name, value, hasValue := strings.Cut(arg, "=")

		switch {
		case name == "-c" || name == "--config":
			if !hasValue {
				if i+1 >= len(args) {
					return nil, fmt.Errorf("flag %s requires a value", name)
				}
				i++
				value = args[i]
			}
			fc.ConfigFile = value

		case name == "-q" || name == "--quiet":
			fc.Quiet = true

		case valueFlags[name] != "":
			if !hasValue {
				if i+1 >= len(args) {
					return nil, fmt.Errorf("flag %s requires a value", name)
				}
				i++
				value = args[i]
			}
			fc.ConfigArgs = append(fc.ConfigArgs, fmt.Sprintf("--%s=%s", valueFlags[name], value))

		case boolFlags[name] != "":
			if !hasValue {
				value = "true"
			}
			fc.ConfigArgs = append(fc.ConfigArgs, fmt.Sprintf("--%s=%s", boolFlags[name], value))

		case arg == "-":
			positional = append(positional, arg)

		case strings.HasPrefix(arg, "--") && strings.Contains(name, "."):
			if !hasValue {
				// --section.key value
				if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
					i++
					arg = name + "=" + args[i]
				} else {
					arg = name + "=true"
				}
			}
			fc.ConfigArgs = append(fc.ConfigArgs, arg)

		case strings.HasPrefix(arg, "-"):
			return nil, fmt.Errorf("unknown flag: %s", arg)

		default:
			positional = append(positional, arg)
		}
	}

	switch len(positional) {
	case 0:
	case 1:
		fc.ConfigArgs = append(fc.ConfigArgs, "--input.path="+positional[0])
	default:
		return nil, fmt.Errorf("expected at most one input, got %d (use a pattern for several files)", len(positional))
	}

	return fc, nil
}
