package teetime

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date format used on the wire and on the command line
const DateLayout = "2006-01-02"

// HoleFilter restricts results to rounds of a given length
type HoleFilter string

const (
	Holes9  HoleFilter = "9"
	Holes18 HoleFilter = "18"
)

// AllHoleFilters lists the selectable filters in display order
var AllHoleFilters = []HoleFilter{Holes9, Holes18}

var (
	ErrNoHoleFilter      = errors.New("no hole filter selected")
	ErrInvalidHoleFilter = errors.New("invalid hole filter")
	ErrDateInPast        = errors.New("date is in the past")
	ErrInvalidDate       = errors.New("invalid date")
)

// SearchCriteria is one user-triggered search
type SearchCriteria struct {
	Date  time.Time
	Holes []HoleFilter
}

// NewSearchCriteria truncates date to a calendar day and copies holes so the
// criteria cannot be changed through the caller's slice.
func NewSearchCriteria(date time.Time, holes []HoleFilter) SearchCriteria {
	h := make([]HoleFilter, len(holes))
	copy(h, holes)
	return SearchCriteria{
		Date:  civilDate(date),
		Holes: h,
	}
}

// DateString returns the criteria date as YYYY-MM-DD
func (c SearchCriteria) DateString() string {
	return c.Date.Format(DateLayout)
}

// HolesString returns the hole filters joined by comma in selection order
func (c SearchCriteria) HolesString() string {
	parts := make([]string, len(c.Holes))
	for i, h := range c.Holes {
		parts[i] = string(h)
	}
	return strings.Join(parts, ",")
}

// Validate checks the criteria against the current time.
// An empty hole selection is reported before a past date.
func (c SearchCriteria) Validate(now time.Time) error {
	if len(c.Holes) == 0 {
		return ErrNoHoleFilter
	}
	if c.Date.Before(civilDate(now)) {
		return fmt.Errorf("%w: %s is before %s", ErrDateInPast, c.DateString(), civilDate(now).Format(DateLayout))
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD date. An empty string means today.
func ParseDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return civilDate(now), nil
	}
	d, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q (want YYYY-MM-DD)", ErrInvalidDate, s)
	}
	return d, nil
}

// ParseHoleFilters parses a comma-separated hole selection such as "18,9".
// Order is kept, duplicates are dropped, and an empty string yields an empty
// selection rather than an error.
func ParseHoleFilters(s string) ([]HoleFilter, error) {
	holes := make([]HoleFilter, 0, len(AllHoleFilters))
	seen := make(map[HoleFilter]bool)

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		h := HoleFilter(part)
		if !h.Valid() {
			return nil, fmt.Errorf("%w %q (must be 9 or 18)", ErrInvalidHoleFilter, part)
		}
		if seen[h] {
			continue
		}
		seen[h] = true
		holes = append(holes, h)
	}

	return holes, nil
}

// Valid reports whether h is one of AllHoleFilters
func (h HoleFilter) Valid() bool {
	for _, known := range AllHoleFilters {
		if h == known {
			return true
		}
	}
	return false
}

// civilDate drops the time of day, keeping the calendar date as seen in t's location
func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
