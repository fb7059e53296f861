// Package period resolves a user-chosen reporting window into a predicate
// over transaction timestamps.
package period

import (
	"fmt"
	"strings"
	"time"
)

// Kind names the supported reporting windows.
type Kind string

const (
	// Month matches the anchor's calendar month and year.
	Month Kind = "month"
	// Year matches the anchor's calendar year.
	Year Kind = "year"
	// LastYear is fixed to the current year minus one, whatever the anchor
	// says. A documented quirk, not configurable.
	LastYear Kind = "last_year"
	// Custom matches an inclusive date range. An absent bound disables
	// filtering entirely rather than rejecting everything.
	Custom Kind = "custom"
)

// ParseKind maps user input to a Kind. Both "last_year" and "last-year"
// spellings are accepted.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "month":
		return Month, nil
	case "year":
		return Year, nil
	case "last_year", "last-year", "lastyear":
		return LastYear, nil
	case "custom":
		return Custom, nil
	}
	return "", fmt.Errorf("unknown period %q (want month, year, last-year or custom)", s)
}

// Selector is a resolved period specification. Anchor drives Month and Year;
// Start/End drive Custom. The zero time means an absent custom bound.
type Selector struct {
	Kind   Kind
	Anchor time.Time
	Start  time.Time
	End    time.Time

	// now is the time source for the LastYear quirk; tests pin it.
	now func() time.Time
}

// NewSelector builds a selector anchored at the given time.
func NewSelector(kind Kind, anchor time.Time) Selector {
	return Selector{Kind: kind, Anchor: anchor, now: time.Now}
}

// NewCustomSelector builds a custom-range selector. Either bound may be the
// zero time, in which case no filtering happens at all.
func NewCustomSelector(start, end time.Time) Selector {
	return Selector{Kind: Custom, Anchor: start, Start: start, End: end, now: time.Now}
}

// WithNow returns a copy of the selector using the given time source.
func (s Selector) WithNow(now func() time.Time) Selector {
	s.now = now
	return s
}

// Contains reports whether a transaction timestamp falls inside the period.
func (s Selector) Contains(t time.Time) bool {
	switch s.Kind {
	case Month:
		return t.Year() == s.Anchor.Year() && t.Month() == s.Anchor.Month()
	case Year:
		return t.Year() == s.Anchor.Year()
	case LastYear:
		return t.Year() == s.clock()().Year()-1
	case Custom:
		if s.Start.IsZero() || s.End.IsZero() {
			return true
		}
		start := time.Date(s.Start.Year(), s.Start.Month(), s.Start.Day(), 0, 0, 0, 0, s.Start.Location())
		end := time.Date(s.End.Year(), s.End.Month(), s.End.Day(), 23, 59, 59, 999_000_000, s.End.Location())
		return !t.Before(start) && !t.After(end)
	}
	return true
}

// Predicate returns Contains as a standalone filter function.
func (s Selector) Predicate() func(time.Time) bool {
	return s.Contains
}

// Shift moves the anchor by whole months (month periods) or whole years
// (everything else), with calendar rollover. Only month and year are ever
// compared, so day-of-month clamping is not needed.
func (s Selector) Shift(offset int) Selector {
	if s.Kind == Month {
		s.Anchor = s.Anchor.AddDate(0, offset, 0)
	} else {
		s.Anchor = s.Anchor.AddDate(offset, 0, 0)
	}
	return s
}

// Label renders the period for display.
func (s Selector) Label() string {
	switch s.Kind {
	case Month:
		return fmt.Sprintf("%s %d", s.Anchor.Month(), s.Anchor.Year())
	case Year:
		return fmt.Sprintf("%d", s.Anchor.Year())
	case LastYear:
		return fmt.Sprintf("%d (last year)", s.clock()().Year()-1)
	case Custom:
		if s.Start.IsZero() || s.End.IsZero() {
			return "all time"
		}
		return fmt.Sprintf("%s to %s", s.Start.Format("2006-01-02"), s.End.Format("2006-01-02"))
	}
	return string(s.Kind)
}

func (s Selector) clock() func() time.Time {
	if s.now == nil {
		return time.Now
	}
	return s.now
}
