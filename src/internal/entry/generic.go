// FILE: loglens/src/internal/entry/generic.go
package entry

import (
	"loglens/src/internal/aggregate"
	"loglens/src/internal/core"
)

const FormatGeneric = "generic"

// GenericFormat treats every unindented line as a new entry and folds
// indented lines, such as stack traces, into the previous one.
type GenericFormat struct{}

func (GenericFormat) Name() string { return FormatGeneric }

func (GenericFormat) IsStart(line string) bool { return !startsWithSpace(line) }

func (GenericFormat) IsContinuation(_ *core.LogEntry, line string) bool {
	return startsWithSpace(line)
}

func (GenericFormat) Parse(*core.LogEntry) bool { return true }

func (GenericFormat) UsesIPLocation() bool { return false }

func (GenericFormat) Groups() []string { return []string{aggregate.GroupDefault} }
