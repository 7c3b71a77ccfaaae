// Package scan turns raw header triples into normalized subject-length
// records and drives them into the store.
package scan

import (
	"strings"
	"unicode/utf8"

	"github.com/subjscan/subjscan/internal/extract"
)

// Record is the persisted unit: one row of the email_stats table.
type Record struct {
	// ID is the message identifier, always wrapped in angle brackets.
	ID string

	// Date is the send date truncated to day granularity, YYYY-MM-DD.
	Date string

	// SubjectLength is the character count of the raw subject header.
	SubjectLength int
}

// SkipReason categorizes why a triple produced no record.
type SkipReason int

const (
	SkipNone SkipReason = iota
	SkipMissingField
	SkipBadDate
	SkipDateOutOfRange
)

func (r SkipReason) String() string {
	switch r {
	case SkipNone:
		return "none"
	case SkipMissingField:
		return "missing field"
	case SkipBadDate:
		return "unparseable date"
	case SkipDateOutOfRange:
		return "date out of range"
	default:
		return "unknown"
	}
}

// Bounds is the inclusive plausible-date window. Dates are YYYY-MM-DD
// strings, compared lexically. This is a crude outlier filter inherited
// from the data, not a correctness rule; both ends are configurable.
type Bounds struct {
	Min string
	Max string
}

// DefaultBounds returns the historical outlier window.
func DefaultBounds() Bounds {
	return Bounds{Min: "1990-01-01", Max: "2020-01-01"}
}

// Outcome is the result of normalizing one triple: either a record or a
// categorized skip, never both.
type Outcome struct {
	Record *Record
	Reason SkipReason
}

// Normalize validates and cleans one raw triple. A triple with any absent
// field, an unparseable date, or a date outside bounds yields a skip
// outcome. Day truncation happens in the date's own zone as written; no
// timezone normalization is applied.
func Normalize(t *extract.Triple, bounds Bounds) Outcome {
	if t == nil || t.MessageID == nil || t.Subject == nil || t.Date == nil {
		return Outcome{Reason: SkipMissingField}
	}

	parsed, ok := parseDate(*t.Date)
	if !ok {
		return Outcome{Reason: SkipBadDate}
	}
	day := parsed.Format("2006-01-02")
	if day < bounds.Min || day > bounds.Max {
		return Outcome{Reason: SkipDateOutOfRange}
	}

	id := *t.MessageID
	if !strings.HasPrefix(id, "<") {
		id = "<" + id + ">"
	}

	return Outcome{Record: &Record{
		ID:            id,
		Date:          day,
		SubjectLength: utf8.RuneCountInString(*t.Subject),
	}}
}
