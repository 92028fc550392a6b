// FILE: loglens/src/internal/source/source.go
package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"
)

// Default cap on a single line
const DefaultMaxLineKB = 1024

// Line is one raw input line.
type Line struct {
	Source string
	Number uint64
	Text   string
}

// Source is a finite input read to completion.
type Source interface {
	// Name identifies the input, a file path or "-" for stdin
	Name() string

	// Read sends every line to out in order and returns at end of input
	// or when ctx is cancelled. It does not close out.
	Read(ctx context.Context, out chan<- Line) error

	// GetStats returns source statistics
	GetStats() SourceStats
}

// SourceStats contains statistics about a source
type SourceStats struct {
	Type          string
	Name          string
	TotalLines    uint64
	TotalBytes    uint64
	StartTime     time.Time
	LastEntryTime time.Time
	Details       map[string]any
}

// counters is the statistics state shared by the concrete sources
type counters struct {
	totalLines    atomic.Uint64
	totalBytes    atomic.Uint64
	startTime     atomic.Value // time.Time
	lastEntryTime atomic.Value // time.Time
}

func (c *counters) init() {
	c.startTime.Store(time.Time{})
	c.lastEntryTime.Store(time.Time{})
}

func (c *counters) stats(typ, name string, details map[string]any) SourceStats {
	start, _ := c.startTime.Load().(time.Time)
	last, _ := c.lastEntryTime.Load().(time.Time)
	if details == nil {
		details = map[string]any{}
	}
	return SourceStats{
		Type:          typ,
		Name:          name,
		TotalLines:    c.totalLines.Load(),
		TotalBytes:    c.totalBytes.Load(),
		StartTime:     start,
		LastEntryTime: last,
		Details:       details,
	}
}

// scanLines reads r line by line into out. Lines longer than maxLineKB fail the read.
func scanLines(ctx context.Context, r io.Reader, name string, maxLineKB int, c *counters, out chan<- Line) error {
	if maxLineKB <= 0 {
		maxLineKB = DefaultMaxLineKB
	}

	c.startTime.Store(time.Now())

	maxLine := maxLineKB * 1024
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(64*1024, maxLine)), maxLine)

	var n uint64
	for scanner.Scan() {
		n++
		line := Line{Source: name, Number: n, Text: scanner.Text()}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- line:
		}

		c.totalLines.Add(1)
		c.totalBytes.Add(uint64(len(line.Text)) + 1)
		c.lastEntryTime.Store(time.Now())
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s at line %d: %w", name, n+1, err)
	}
	return nil
}
