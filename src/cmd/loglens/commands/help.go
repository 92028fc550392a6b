// FILE: loglens/src/cmd/loglens/commands/help.go
package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

const generalHelpTemplate = `LogLens: summarize web server and application logs.

Usage:
  loglens [options] [--section.key=value ...] [input]
  loglens <command> [args]

Commands:
%s

Options:
  -c, --config <path>      Path to configuration file (default: ~/.config/loglens.toml)
  -f, --format <name>      Log format: auto, generic, common, combined
  -o, --output <mode>      Report output: text, json, auto
  -a, --aggregations <l>   Comma separated aggregation names
  -g, --geo                Enable IP geolocation of remote hosts
  -q, --quiet              Suppress diagnostics
  -h, --help               Display this help message and exit
  -v, --version            Display version information and exit

Input is a file, a pattern such as /var/log/nginx/access*.log, or - for stdin.

Configuration Sources (Precedence: CLI > Env > File > Defaults):
  - --section.key=value arguments, e.g. --report.top=50
  - LOGLENS_SECTION_KEY environment variables, e.g. LOGLENS_GEO_DATABASE_PATH
  - TOML configuration file

Examples:
  # Status codes and countries of an nginx log
  loglens -g --geo.database_path=/usr/share/GeoIP/GeoLite2-City.mmdb \
    -a responseStatusCode,country /var/log/nginx/access.log

  # Stack traces from stdin as JSON
  journalctl -u app | loglens -f generic -o json -
`

// HelpCommand displays general or command-specific help.
type HelpCommand struct {
	router *CommandRouter
	out    io.Writer
}

func NewHelpCommand(router *CommandRouter, out io.Writer) *HelpCommand {
	return &HelpCommand{router: router, out: out}
}

func (c *HelpCommand) Execute(args []string) error {
	if len(args) > 0 && args[0] != "" {
		cmdName := args[0]

		if handler, exists := c.router.GetCommand(cmdName); exists {
			fmt.Fprint(c.out, handler.Help())
			return nil
		}

		return fmt.Errorf("unknown command: %s", cmdName)
	}

	fmt.Fprintf(c.out, generalHelpTemplate, c.formatCommandList())
	return nil
}

func (c *HelpCommand) Description() string {
	return "Display help information"
}

func (c *HelpCommand) Help() string {
	return `Help Command - Display help information

Usage:
  loglens help              Show general help
  loglens help <command>    Show help for a specific command
`
}

// formatCommandList creates an aligned list of all available commands.
func (c *HelpCommand) formatCommandList() string {
	commands := c.router.GetCommands()

	names := make([]string, 0, len(commands))
	maxLen := 0
	for name := range commands {
		names = append(names, name)
		if len(name) > maxLen {
			maxLen = len(name)
		}
	}
	sort.Strings(names)

	var lines []string
	for _, name := range names {
		padding := strings.Repeat(" ", maxLen-len(name)+2)
		lines = append(lines, fmt.Sprintf("  %s%s%s", name, padding, commands[name].Description()))
	}

	return strings.Join(lines, "\n")
}
