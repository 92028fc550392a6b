// FILE: loglens/src/cmd/loglens/commands/config.go
package commands

import (
	"fmt"
	"io"

	"loglens/src/internal/config"
)

// ConfigCommand writes or locates the configuration file.
type ConfigCommand struct {
	out io.Writer
}

func NewConfigCommand(out io.Writer) *ConfigCommand {
	return &ConfigCommand{out: out}
}

func (c *ConfigCommand) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand\n\n%s", c.Help())
	}

	switch args[0] {
	case "path":
		fmt.Fprintln(c.out, config.GetConfigPath())
		return nil

	case "init":
		path := config.GetConfigPath()
		if len(args) > 1 {
			path = args[1]
		}
		if err := config.Defaults().SaveToFile(path); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Default configuration written to %s\n", path)
		return nil

	default:
		return fmt.Errorf("unknown config subcommand: %s", args[0])
	}
}

func (c *ConfigCommand) Description() string {
	return "Write or locate the configuration file"
}

func (c *ConfigCommand) Help() string {
	return `Config Command - Write or locate the configuration file

Usage:
  loglens config path           Print the config file location
  loglens config init [path]    Write the default configuration
`
}
