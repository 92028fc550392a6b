// FILE: loglens/src/internal/entry/access.go
package entry

import (
	"strings"

	"loglens/src/internal/aggregate"
	"loglens/src/internal/core"
	"loglens/src/internal/tokenize"
)

const (
	FormatCommon   = "common"
	FormatCombined = "combined"
)

// Field counts of the NCSA layouts:
// host ident user [time] "request" status bytes ["referer" "user-agent"]
const (
	commonFields   = 7
	combinedFields = 9
)

// AccessFormat parses single line web server access logs in the NCSA common
// or combined layout.
type AccessFormat struct {
	name      string
	maxFields int
	tokenizer *tokenize.Tokenizer
}

// NewAccessFormat returns the common layout unless name is FormatCombined.
func NewAccessFormat(name string) *AccessFormat {
	f := &AccessFormat{
		name:      FormatCommon,
		maxFields: commonFields,
		tokenizer: tokenize.New(" ", tokenize.DefaultPairs),
	}
	if name == FormatCombined {
		f.name = FormatCombined
		f.maxFields = combinedFields
	}
	return f
}

func (f *AccessFormat) Name() string { return f.name }

func (f *AccessFormat) IsStart(line string) bool { return !startsWithSpace(line) }

// IsContinuation is always false, access log entries are one line each.
func (f *AccessFormat) IsContinuation(*core.LogEntry, string) bool { return false }

func (f *AccessFormat) UsesIPLocation() bool { return true }

func (f *AccessFormat) Groups() []string {
	if f.name == FormatCombined {
		return []string{
			aggregate.GroupDefault,
			aggregate.GroupHTTP,
			aggregate.GroupReferer,
			aggregate.GroupUserAgent,
			aggregate.GroupGeo,
		}
	}
	return []string{aggregate.GroupDefault, aggregate.GroupHTTP, aggregate.GroupGeo}
}

// Parse fills the access log fields. Lines with fewer fields than the layout
// requires are skipped.
func (f *AccessFormat) Parse(e *core.LogEntry) bool {
	fields := f.tokenizer.Split(e.Text(), f.maxFields)
	if len(fields) < f.maxFields {
		return false
	}

	unwrap := func(s string) string { return tokenize.Unwrap(s, f.tokenizer.Pairs) }

	request := unwrap(fields[4])
	e.Merge(map[string]string{
		core.FieldRemoteHost: fields[0],
		core.FieldIdentUser:  fields[1],
		core.FieldUser:       fields[2],
		core.FieldTime:       unwrap(fields[3]),
		core.FieldRequest:    request,
		core.FieldStatusCode: fields[5],
		core.FieldBytes:      fields[6],
	})

	// "METHOD resource PROTOCOL"; the resource may itself hold spaces
	parts := strings.Fields(request)
	switch {
	case len(parts) >= 3:
		e.Set(core.FieldMethod, parts[0])
		e.Set(core.FieldResource, strings.Join(parts[1:len(parts)-1], " "))
		e.Set(core.FieldProtocol, parts[len(parts)-1])
	case len(parts) == 2:
		e.Set(core.FieldMethod, parts[0])
		e.Set(core.FieldResource, parts[1])
	case len(parts) == 1 && parts[0] != core.MissingValue:
		e.Set(core.FieldResource, parts[0])
	}

	if f.name != FormatCombined {
		return true
	}

	ua := unwrap(fields[8])
	e.Set(core.FieldReferer, unwrap(fields[7]))
	e.Set(core.FieldUserAgent, ua)
	if !core.IsMissing(ua, true) {
		e.Merge(ParseUserAgent(ua))
	}
	return true
}
