// FILE: loglens/src/internal/aggregate/referer.go
package aggregate

import (
	"net/url"
	"regexp"
	"strings"

	"loglens/src/internal/core"
	"loglens/src/internal/filter"
)

const (
	labelDirectRequest = "Direct Request"
	labelUnknown       = "Unknown"
)

var (
	refererDomainRegex = regexp.MustCompile(`^\w+://(?:www\.)?([A-Za-z0-9-:.]+)`)
	searchTermsRegex   = regexp.MustCompile(`^\w+://(?:www\.)?[A-Za-z0-9-:.]+/.*q=([^&]+)(?:&|$)`)
	searchServiceRegex = regexp.MustCompile(`^\w+://(?:www\.)?([A-Za-z0-9-:.]+)/.*q=([^&]+)(?:&|$)`)
)

// RefererByDomain counts requests per referring host. Requests without a
// referer are direct, referers that are not URLs are unknown.
func RefererByDomain(records []core.Record) Result {
	t := newTally()
	t.seed(labelDirectRequest)
	t.seed(labelUnknown)

	for _, rec := range records {
		value, ok := rec.Get(core.FieldReferer)
		if core.IsMissing(value, ok) {
			t.add(labelDirectRequest)
			continue
		}
		if m := refererDomainRegex.FindStringSubmatch(value); m != nil {
			t.add(m[1])
		} else {
			t.add(labelUnknown)
		}
	}

	return t.result(len(records), func(b *bucket) (filter.Selector, bool) {
		if b.key == labelDirectRequest {
			return filter.Missing(core.FieldReferer, core.MissingValue), true
		}
		return filter.Selector{}, false
	})
}

// SearchTerms counts the q= search parameter of referers.
func SearchTerms(records []core.Record) Result {
	t := newTally()

	for _, rec := range records {
		value, ok := rec.Get(core.FieldReferer)
		if core.IsMissing(value, ok) {
			continue
		}
		m := searchTermsRegex.FindStringSubmatch(value)
		if m == nil {
			continue
		}
		terms := decodeTerms(m[1])
		if b, created := t.add(terms); created {
			sel := filter.Like(core.FieldReferer, "%q="+filter.EscapeLike(encodeTerms(terms))+"%")
			b.selector = &sel
		}
	}

	return t.result(len(records), storedSelector)
}

// SearchTermsByService counts "<host>: <terms>" pairs of search referers.
func SearchTermsByService(records []core.Record) Result {
	t := newTally()

	for _, rec := range records {
		value, ok := rec.Get(core.FieldReferer)
		if core.IsMissing(value, ok) {
			continue
		}
		m := searchServiceRegex.FindStringSubmatch(value)
		if m == nil {
			continue
		}
		service, terms := m[1], decodeTerms(m[2])
		if b, created := t.add(service + ": " + terms); created {
			pattern := "%" + filter.EscapeLike(service) + "/%q=" + filter.EscapeLike(encodeTerms(terms)) + "%"
			sel := filter.Like(core.FieldReferer, pattern)
			b.selector = &sel
		}
	}

	return t.result(len(records), storedSelector)
}

func storedSelector(b *bucket) (filter.Selector, bool) {
	if b.selector == nil {
		return filter.Selector{}, false
	}
	return *b.selector, true
}

// decodeTerms turns a raw query value into display text.
// Malformed escapes are kept as they are.
func decodeTerms(raw string) string {
	raw = strings.ReplaceAll(raw, "+", " ")
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

// encodeTerms percent-encodes every byte outside A-Z a-z 0-9 and
// -_.!~*'() with spaces as "+", the way search forms submit queries.
func encodeTerms(terms string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(terms))
	for i := 0; i < len(terms); i++ {
		c := terms[i]
		switch {
		case c == ' ':
			b.WriteByte('+')
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9',
			strings.IndexByte("-_.!~*'()", c) >= 0:
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0x0f])
		}
	}
	return b.String()
}
