// FILE: loglens/src/internal/entry/format.go
package entry

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"loglens/src/internal/core"
)

var ErrUnknownFormat = errors.New("unknown log format")

// Format decides how raw lines are grouped into entries and how an entry's
// text is broken into fields.
type Format interface {
	// Name is the identifier used in configuration
	Name() string

	// IsStart reports whether line begins a new entry.
	IsStart(line string) bool

	// IsContinuation reports whether line belongs to the open entry e.
	IsContinuation(e *core.LogEntry, line string) bool

	// Parse extracts fields from a closed entry. False means the entry is skipped.
	Parse(e *core.LogEntry) bool

	// UsesIPLocation reports whether entries carry a remote address worth geolocating.
	UsesIPLocation() bool

	// Groups lists the aggregation groups applicable to parsed entries.
	Groups() []string
}

// FormatAuto selects a format from the input file name
const FormatAuto = "auto"

var formats = map[string]Format{}

// filePatterns maps file name patterns to formats, checked in order by Detect
var filePatterns []struct {
	pattern *regexp.Regexp
	format  string
}

func register(f Format, filePattern string) {
	formats[f.Name()] = f
	if filePattern != "" {
		filePatterns = append(filePatterns, struct {
			pattern *regexp.Regexp
			format  string
		}{regexp.MustCompile(filePattern), f.Name()})
	}
}

func init() {
	register(NewAccessFormat(FormatCombined), `(?i)access.*\.log`)
	register(NewAccessFormat(FormatCommon), "")
	register(GenericFormat{}, "")
}

// Lookup returns the named format.
func Lookup(name string) (Format, error) {
	f, ok := formats[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return f, nil
}

// Detect picks a format from a file name, defaulting to generic.
func Detect(filename string) Format {
	base := filepath.Base(filename)
	for _, fp := range filePatterns {
		if fp.pattern.MatchString(base) {
			return formats[fp.format]
		}
	}
	return formats[FormatGeneric]
}

// Resolve handles "auto" and named formats alike.
func Resolve(name, filename string) (Format, error) {
	if name == "" || strings.EqualFold(name, FormatAuto) {
		return Detect(filename), nil
	}
	return Lookup(name)
}

// Names lists registered format names in sorted order.
func Names() []string {
	names := make([]string, 0, len(formats))
	for n := range formats {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// startsWithSpace is the default line start test: an entry starts on any
// line that is not indented.
func startsWithSpace(line string) bool {
	if line == "" {
		return false
	}
	switch line[0] {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
