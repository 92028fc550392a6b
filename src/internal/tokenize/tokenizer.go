// FILE: loglens/src/internal/tokenize/tokenizer.go
package tokenize

import "strings"

// Pair is an enclosing delimiter pair such as quotes or brackets.
type Pair struct {
	Start string
	End   string
}

// DefaultPairs matches the quoting conventions of web server access logs.
var DefaultPairs = []Pair{
	{Start: `"`, End: `"`},
	{Start: "[", End: "]"},
}

// Tokenizer splits lines into a bounded number of fields without splitting
// inside an enclosed span. The zero value splits on spaces with DefaultPairs.
type Tokenizer struct {
	Separator string
	Pairs     []Pair
}

// New creates a tokenizer for the given separator and pairs.
// An empty separator means a single space, nil pairs means DefaultPairs.
func New(separator string, pairs []Pair) *Tokenizer {
	return &Tokenizer{Separator: separator, Pairs: pairs}
}

// Split breaks a line into at most maxFields fields. Once the cap is reached
// every remaining token is joined onto the last field, so unbalanced input
// degrades into a long trailing field instead of failing. maxFields <= 0
// disables the cap.
func (t *Tokenizer) Split(line string, maxFields int) []string {
	sep := t.Separator
	if sep == "" {
		sep = " "
	}
	pairs := t.Pairs
	if pairs == nil {
		pairs = DefaultPairs
	}

	tokens := strings.Split(line, sep)
	fields := make([]string, 0, len(tokens))
	searching := ""

	for _, tok := range tokens {
		capped := maxFields > 0 && len(fields) >= maxFields
		if searching != "" || capped {
			fields[len(fields)-1] += sep + tok
			if searching != "" && strings.HasSuffix(tok, searching) {
				searching = ""
			}
			continue
		}

		fields = append(fields, tok)
		for _, p := range pairs {
			if p.Start == "" || !strings.HasPrefix(tok, p.Start) {
				continue
			}
			selfPaired := p.Start == p.End && tok == p.Start
			if selfPaired || !strings.HasSuffix(tok, p.End) {
				searching = p.End
			}
		}
	}

	return fields
}

// Split tokenizes with a space separator and DefaultPairs.
func Split(line string, maxFields int) []string {
	var t Tokenizer
	return t.Split(line, maxFields)
}

// Unwrap strips one enclosing pair from a field if it is fully enclosed.
func Unwrap(field string, pairs []Pair) string {
	if pairs == nil {
		pairs = DefaultPairs
	}
	for _, p := range pairs {
		if len(field) >= len(p.Start)+len(p.End) &&
			strings.HasPrefix(field, p.Start) && strings.HasSuffix(field, p.End) {
			return field[len(p.Start) : len(field)-len(p.End)]
		}
	}
	return field
}
