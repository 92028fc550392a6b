// FILE: loglens/src/internal/filter/match.go
package filter

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"loglens/src/internal/core"
)

// Compiled LIKE patterns, keyed by pattern text
var likeCache sync.Map

// Match evaluates a selector against a record.
func Match(s Selector, rec core.Record) bool {
	switch s.Kind {
	case KindEqual:
		v, ok := rec.Get(s.Field)
		return ok && v == s.Value
	case KindLike:
		v, ok := rec.Get(s.Field)
		if !ok {
			return false
		}
		re, err := compileLike(s.Value)
		if err != nil {
			return false
		}
		return re.MatchString(v)
	case KindUnset:
		_, ok := rec.Get(s.Field)
		return !ok
	case KindAnd:
		for _, c := range s.Children {
			if !Match(c, rec) {
				return false
			}
		}
		return true
	case KindOr:
		for _, c := range s.Children {
			if Match(c, rec) {
				return true
			}
		}
		return false
	case KindNot:
		if len(s.Children) != 1 {
			return false
		}
		return !Match(s.Children[0], rec)
	default:
		return false
	}
}

// MatchAll reports whether the record satisfies every selector in the list.
// An empty list matches everything.
func MatchAll(selectors []Selector, rec core.Record) bool {
	for _, s := range selectors {
		if !Match(s, rec) {
			return false
		}
	}
	return true
}

// Narrow returns the records that satisfy every selector.
func Narrow[R core.Record](records []R, selectors []Selector) []R {
	if len(selectors) == 0 {
		return records
	}
	out := make([]R, 0, len(records))
	for _, r := range records {
		if MatchAll(selectors, r) {
			out = append(out, r)
		}
	}
	return out
}

// EscapeLike escapes the LIKE wildcards in a literal.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)
	return r.Replace(s)
}

// compileLike turns a LIKE pattern into an anchored regexp.
// % matches any run, _ matches one character, backslash escapes the next one.
func compileLike(pattern string) (*regexp.Regexp, error) {
	if re, ok := likeCache.Load(pattern); ok {
		return re.(*regexp.Regexp), nil
	}

	var b strings.Builder
	b.WriteString(`(?s)^`)
	escaped := false
	for _, r := range pattern {
		if escaped {
			b.WriteString(regexp.QuoteMeta(string(r)))
			escaped = false
			continue
		}
		switch r {
		case '\\':
			escaped = true
		case '%':
			b.WriteString(".*")
		case '_':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	if escaped {
		return nil, fmt.Errorf("pattern '%s' ends with a dangling escape", pattern)
	}
	b.WriteString("$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, err
	}
	likeCache.Store(pattern, re)
	return re, nil
}
