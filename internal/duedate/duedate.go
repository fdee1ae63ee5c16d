// Package duedate holds the calendar arithmetic behind check statuses.
//
// All comparisons are by calendar date: a due date and "today" are both
// reduced to midnight before they are compared, so the time of day never
// changes the answer. Absent or unparseable dates fail open.
package duedate

import (
	"strings"
	"time"
)

// ISOLayout is the on-disk form of every date in the tracker.
const ISOLayout = "2006-01-02"

// DisplayLayout renders dates the way the reports print them (en-GB).
const DisplayLayout = "02 Jan 2006"

// NotSet is shown in place of an absent date.
const NotSet = "Not set"

// Clock returns the current instant. Tests pin it.
type Clock func() time.Time

// SystemClock is the wall clock in the local time zone.
func SystemClock() time.Time { return time.Now() }

var layouts = []string{
	ISOLayout,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

// Parse reads s as a calendar date in loc. It accepts YYYY-MM-DD, local
// date-times without a zone, and RFC 3339 timestamps (converted to loc).
func Parse(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return Midnight(t), true
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Midnight(t.In(loc)), true
	}
	return time.Time{}, false
}

// Midnight drops the time of day from t, keeping its location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ISO formats t as YYYY-MM-DD.
func ISO(t time.Time) string { return t.Format(ISOLayout) }

// diff returns the whole number of calendar days from a to b. Both are
// projected onto UTC dates first so DST transitions cannot skew the count.
func diff(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// IsOverdue reports whether due falls strictly before today's date.
func IsOverdue(due string, today time.Time) bool {
	d, ok := Parse(due, today.Location())
	if !ok {
		return false
	}
	return diff(today, d) < 0
}

// IsDueWithin reports whether due is between today and today+days inclusive.
func IsDueWithin(due string, days int, today time.Time) bool {
	n, ok := DaysUntil(due, today)
	if !ok {
		return false
	}
	return n >= 0 && n <= days
}

// DaysUntil returns the signed day count from today to due. ok is false
// when due is absent or unparseable.
func DaysUntil(due string, today time.Time) (n int, ok bool) {
	d, ok := Parse(due, today.Location())
	if !ok {
		return 0, false
	}
	return diff(today, d), true
}

// AddDays moves due forward by days calendar days and returns the ISO
// form. An absent or unparseable due starts from today.
func AddDays(due string, days int, today time.Time) string {
	d, ok := Parse(due, today.Location())
	if !ok {
		d = Midnight(today)
	}
	y, m, dd := d.Date()
	return ISO(time.Date(y, m, dd+days, 0, 0, 0, 0, d.Location()))
}

// Offset returns the ISO date days away from today.
func Offset(today time.Time, days int) string {
	return AddDays("", days, today)
}

// Format renders a stored date for people. Unparseable input is echoed
// back unchanged so bad data stays visible.
func Format(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotSet
	}
	t, ok := Parse(s, time.UTC)
	if !ok {
		return s
	}
	return t.Format(DisplayLayout)
}
