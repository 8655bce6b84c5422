package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// PubDateMode selects how the pubDate of a record is written into the
// rendered item.
type PubDateMode string

const (
	// PubDateReformat writes the instant's UTC clock in the RSS day,
	// date, month, year, time layout followed by the offset text the
	// record was written with. The clock and the offset label do not
	// necessarily agree, existing feed consumers were fed this value.
	PubDateReformat PubDateMode = "reformat"
	// PubDateVerbatim writes the trimmed pubDate exactly as given.
	PubDateVerbatim PubDateMode = "verbatim"
	// PubDateRFC1123Z writes a timezone-correct RFC1123Z date.
	PubDateRFC1123Z PubDateMode = "rfc1123z"
)

// PubDateLayout is the layout of the reformatted pubDate without the
// trailing offset.
const PubDateLayout = "Mon, 02 Jan 2006 15:04:05"

const defaultOffset = "+0000"

var (
	ErrEmptyPubDate       error = errors.New("empty pubDate")
	ErrUnknownPubDateMode error = errors.New("unknown pubDate mode")
)

// Layouts tried in order before falling back to dateparse. Layouts
// without a zone parse as UTC.
var pubDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon 02 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon 2 Jan 2006 15:04:05 -0700",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC822Z,
	time.RFC822,
}

var offsetPattern = regexp.MustCompile(`([+-])(\d{2}):?(\d{2})`)

// ParsePubDate parses a pubDate string into an absolute instant.
func ParsePubDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrEmptyPubDate
	}
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse pubDate %q: %w", s, err)
	}
	return t, nil
}

// PubDateOffset returns the last ±HH:MM or ±HHMM run in s as ±HHMM,
// or +0000 if there is none.
func PubDateOffset(s string) string {
	matches := offsetPattern.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return defaultOffset
	}
	m := matches[len(matches)-1]
	return m[1] + m[2] + m[3]
}

// FormatPubDate renders raw according to mode. Input that does not
// parse is written trimmed and unchanged.
func FormatPubDate(mode PubDateMode, raw string) string {
	trimmed := strings.TrimSpace(raw)
	switch mode {
	case PubDateVerbatim:
		return trimmed
	case PubDateRFC1123Z:
		t, err := ParsePubDate(trimmed)
		if err != nil {
			return trimmed
		}
		return t.Format(time.RFC1123Z)
	default:
		t, err := ParsePubDate(trimmed)
		if err != nil {
			return trimmed
		}
		return t.UTC().Format(PubDateLayout) + " " + PubDateOffset(trimmed)
	}
}

// Valid reports whether m is a known mode. The empty mode is valid and
// means PubDateReformat.
func (m PubDateMode) Valid() error {
	switch m {
	case "", PubDateReformat, PubDateVerbatim, PubDateRFC1123Z:
		return nil
	}
	return fmt.Errorf("%w %q (use %s, %s or %s)", ErrUnknownPubDateMode, string(m), PubDateReformat, PubDateVerbatim, PubDateRFC1123Z)
}
