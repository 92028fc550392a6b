// FILE: loglens/src/internal/source/stdin.go
package source

import (
	"context"
	"io"
	"os"

	"github.com/lixenwraith/log"
)

// StdinName is the input path that selects standard input
const StdinName = "-"

// StdinSource reads log lines from standard input.
type StdinSource struct {
	reader    io.Reader
	maxLineKB int
	logger    *log.Logger

	counters
}

// NewStdinSource creates a source over os.Stdin.
func NewStdinSource(maxLineKB int, logger *log.Logger) *StdinSource {
	return newReaderSource(os.Stdin, maxLineKB, logger)
}

func newReaderSource(r io.Reader, maxLineKB int, logger *log.Logger) *StdinSource {
	s := &StdinSource{
		reader:    r,
		maxLineKB: maxLineKB,
		logger:    logger,
	}
	s.init()
	return s
}

func (s *StdinSource) Name() string { return StdinName }

func (s *StdinSource) Read(ctx context.Context, out chan<- Line) error {
	s.logger.Info("msg", "Stdin source started", "component", "stdin_source")

	if err := scanLines(ctx, s.reader, StdinName, s.maxLineKB, &s.counters, out); err != nil {
		s.logger.Error("msg", "Scanner error reading stdin",
			"component", "stdin_source",
			"error", err)
		return err
	}

	s.logger.Info("msg", "Stdin source finished",
		"component", "stdin_source",
		"lines", s.totalLines.Load())
	return nil
}

func (s *StdinSource) GetStats() SourceStats {
	return s.stats("stdin", StdinName, nil)
}
