package normalize

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Common date formats found in exported visit files.
var dateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate parses a date string, trying the common formats first and then
// falling back to dateparse. The result is truncated to a UTC calendar date.
// Returns nil if the input is empty or unparseable.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			d := CalendarDate(t)
			return &d
		}
	}
	if t, err := dateparse.ParseIn(s, time.UTC); err == nil {
		d := CalendarDate(t)
		return &d
	}
	return nil
}

// CalendarDate drops the clock part of t, keeping its calendar date in UTC.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateKey returns the YYYYMMDD integer key of t's calendar date.
func DateKey(t time.Time) int32 {
	y, m, d := t.Date()
	return int32(y*10000 + int(m)*100 + d)
}

// DaysBetween returns the whole calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(CalendarDate(b).Sub(CalendarDate(a)).Hours() / 24)
}
