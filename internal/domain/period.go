package domain

import (
	"strings"
	"time"
)

// dateLayouts are the formats accepted for record dates, tried in order
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02/01/2006",
}

// Period is a (month, year) reporting window
type Period struct {
	Month int
	Year  int
}

// NewPeriod validates month in 1..12 and a four digit year
func NewPeriod(month, year int) (Period, error) {
	if month < 1 || month > 12 {
		return Period{}, invalid("month", "must be between 1 and 12")
	}
	if year < 1000 || year > 9999 {
		return Period{}, invalid("year", "must be a four digit year")
	}
	return Period{Month: month, Year: year}, nil
}

// Contains reports whether date falls in the period.
// Empty or unparsable dates are never contained.
func (p Period) Contains(date string) bool {
	d, ok := ParseDate(date)
	if !ok {
		return false
	}
	return int(d.Month()) == p.Month && d.Year() == p.Year
}

// ParseDate parses a record date in any accepted layout
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
