// FILE: loglens/src/cmd/loglens/output.go
package main

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// OutputHandler writes user-facing messages, respecting quiet mode. The
// report itself bypasses it so -q never swallows results.
type OutputHandler struct {
	quiet  bool
	mu     sync.RWMutex
	stderr io.Writer
}

var output *OutputHandler

func InitOutputHandler(quiet bool) {
	output = newOutputHandler(quiet, os.Stderr)
}

func newOutputHandler(quiet bool, stderr io.Writer) *OutputHandler {
	return &OutputHandler{quiet: quiet, stderr: stderr}
}

// Error writes to stderr if not in quiet mode
func (o *OutputHandler) Error(format string, args ...any) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if !o.quiet {
		fmt.Fprintf(o.stderr, format, args...)
	}
}

// Error writes through the global handler, or straight to stderr before
// flags are parsed.
func Error(format string, args ...any) {
	if output != nil {
		output.Error(format, args...)
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}
