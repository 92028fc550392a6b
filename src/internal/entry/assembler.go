// FILE: loglens/src/internal/entry/assembler.go
package entry

import (
	"strings"
	"sync/atomic"

	"loglens/src/internal/core"

	"github.com/lixenwraith/log"
)

// Assembler groups raw lines into entries for a single input. It is driven by
// one goroutine; GetStats is safe to call from others.
type Assembler struct {
	format  Format
	source  string
	current *core.LogEntry
	logger  *log.Logger

	// Statistics
	lines   atomic.Uint64
	entries atomic.Uint64
	skipped atomic.Uint64
	orphans atomic.Uint64
	blank   atomic.Uint64
}

// AssemblerStats counts what happened to the lines fed to an Assembler.
type AssemblerStats struct {
	Source  string
	Format  string
	Lines   uint64
	Entries uint64
	Skipped uint64
	Orphans uint64
	Blank   uint64
}

// NewAssembler creates an assembler for lines read from source.
func NewAssembler(format Format, source string, logger *log.Logger) *Assembler {
	return &Assembler{
		format: format,
		source: source,
		logger: logger,
	}
}

// Feed offers one line. When the line closes the open entry, the parsed entry
// is returned. Entries rejected by the format's parser are dropped.
func (a *Assembler) Feed(line string) (*core.LogEntry, bool) {
	a.lines.Add(1)
	line = strings.TrimRight(line, "\r")

	if strings.TrimSpace(line) == "" {
		a.blank.Add(1)
		return nil, false
	}

	if a.current != nil && a.format.IsContinuation(a.current, line) {
		// AddLine only fails on a closed entry, and current is never closed
		_ = a.current.AddLine(line)
		return nil, false
	}

	done, ok := a.finish()

	if a.format.IsStart(line) {
		a.current = core.NewLogEntry(a.source, line)
	} else {
		a.orphans.Add(1)
		a.logger.Debug("msg", "Dropping line outside of any entry",
			"component", "assembler",
			"source", a.source,
			"line", line)
	}

	return done, ok
}

// Flush closes and returns the open entry at end of input.
func (a *Assembler) Flush() (*core.LogEntry, bool) {
	return a.finish()
}

// finish closes the current entry and parses it.
func (a *Assembler) finish() (*core.LogEntry, bool) {
	e := a.current
	a.current = nil
	if e == nil || !e.Complete() {
		return nil, false
	}

	e.Close()
	if !a.format.Parse(e) {
		a.skipped.Add(1)
		a.logger.Debug("msg", "Entry rejected by format",
			"component", "assembler",
			"source", a.source,
			"format", a.format.Name())
		return nil, false
	}

	a.entries.Add(1)
	return e, true
}

// GetStats returns the assembler's counters.
func (a *Assembler) GetStats() AssemblerStats {
	return AssemblerStats{
		Source:  a.source,
		Format:  a.format.Name(),
		Lines:   a.lines.Load(),
		Entries: a.entries.Load(),
		Skipped: a.skipped.Load(),
		Orphans: a.orphans.Load(),
		Blank:   a.blank.Load(),
	}
}
