// FILE: loglens/src/cmd/loglens/commands/version.go
package commands

import (
	"fmt"
	"io"

	"loglens/src/internal/version"
)

// VersionCommand handles version display
type VersionCommand struct {
	out io.Writer
}

func NewVersionCommand(out io.Writer) *VersionCommand {
	return &VersionCommand{out: out}
}

func (c *VersionCommand) Execute(args []string) error {
	fmt.Fprintln(c.out, version.String())
	return nil
}

func (c *VersionCommand) Description() string {
	return "Show version information"
}

func (c *VersionCommand) Help() string {
	return `Version Command - Show LogLens version information

Usage:
  loglens version
  loglens -v
  loglens --version
`
}
