// FILE: loglens/src/internal/core/entry.go
package core

import (
	"errors"
	"strings"
)

// ErrEntryClosed is returned when a line is appended to a finalized entry.
var ErrEntryClosed = errors.New("log entry is closed")

// LogEntry is one parsed log record plus the raw lines it was built from.
// Lines can only be appended until Close; fields stay writable so parsing and
// enrichment can run on the closed entry before it is handed to aggregation.
type LogEntry struct {
	Source string
	fields map[string]string
	lines  []string
	closed bool
}

// NewLogEntry starts an entry from its first line.
func NewLogEntry(source, first string) *LogEntry {
	return &LogEntry{
		Source: source,
		fields: make(map[string]string),
		lines:  []string{first},
	}
}

// AddLine appends a continuation line.
func (e *LogEntry) AddLine(line string) error {
	if e.closed {
		return ErrEntryClosed
	}
	e.lines = append(e.lines, line)
	return nil
}

// Close stops line accumulation.
func (e *LogEntry) Close() {
	e.closed = true
}

// Closed reports whether the entry is finalized.
func (e *LogEntry) Closed() bool {
	return e.closed
}

// Complete reports whether the entry holds at least one raw line.
func (e *LogEntry) Complete() bool {
	return len(e.lines) > 0
}

// Lines returns a copy of the raw lines.
func (e *LogEntry) Lines() []string {
	out := make([]string, len(e.lines))
	copy(out, e.lines)
	return out
}

// Text returns the raw lines joined by newlines.
func (e *LogEntry) Text() string {
	return strings.Join(e.lines, "\n")
}

// Get returns a field value. The line field falls back to the raw text.
func (e *LogEntry) Get(field string) (string, bool) {
	if v, ok := e.fields[field]; ok {
		return v, true
	}
	if field == FieldLine && len(e.lines) > 0 {
		return e.Text(), true
	}
	return "", false
}

// Set stores a field value.
func (e *LogEntry) Set(field, value string) {
	e.fields[field] = value
}

// Unset removes a field.
func (e *LogEntry) Unset(field string) {
	delete(e.fields, field)
}

// Merge copies every pair into the field map.
func (e *LogEntry) Merge(fields map[string]string) {
	for k, v := range fields {
		e.fields[k] = v
	}
}

// Fields returns a copy of the field map.
func (e *LogEntry) Fields() map[string]string {
	out := make(map[string]string, len(e.fields))
	for k, v := range e.fields {
		out[k] = v
	}
	return out
}
