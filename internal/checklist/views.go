package checklist

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Makepad-fr/safety360/internal/duedate"
	"github.com/Makepad-fr/safety360/internal/model"
)

// Stats are the dashboard counters across both categories.
type Stats struct {
	Total          int
	Completed      int
	Open           int
	Overdue        int // open and overdue
	DueThisWeek    int // open and due within 7 days
	CompletionRate int // percent, rounded
}

// Summarize counts checks in s as of today.
func Summarize(s model.State, today time.Time) Stats {
	var st Stats
	for _, it := range s.AllChecks() {
		st.Total++
		if it.Completed {
			st.Completed++
			continue
		}
		if duedate.IsOverdue(it.Due, today) {
			st.Overdue++
		}
		if duedate.IsDueWithin(it.Due, 7, today) {
			st.DueThisWeek++
		}
	}
	st.Open = st.Total - st.Completed
	if st.Total > 0 {
		st.CompletionRate = int(math.Round(float64(st.Completed) / float64(st.Total) * 100))
	}
	return st
}

// Sorted returns a copy of items ordered by due date. Items without a
// usable date sort as if due today. The sort is stable.
func Sorted(items []model.ChecklistItem, today time.Time) []model.ChecklistItem {
	key := func(it model.ChecklistItem) time.Time {
		if d, ok := duedate.Parse(it.Due, today.Location()); ok {
			return d
		}
		return duedate.Midnight(today)
	}
	out := append([]model.ChecklistItem(nil), items...)
	sort.SliceStable(out, func(i, j int) bool { return key(out[i]).Before(key(out[j])) })
	return out
}

// UpcomingCheck is one row of the schedule.
type UpcomingCheck struct {
	Category model.Category
	Item     model.ChecklistItem
	Urgency  string
}

// Upcoming returns the n earliest open checks across both categories.
// Checks without a date come last.
func Upcoming(s model.State, today time.Time, n int) []UpcomingCheck {
	var out []UpcomingCheck
	for _, c := range model.Categories {
		for _, it := range s.Items(c) {
			if !it.Completed {
				out = append(out, UpcomingCheck{Category: c, Item: it})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, oki := duedate.Parse(out[i].Item.Due, today.Location())
		dj, okj := duedate.Parse(out[j].Item.Due, today.Location())
		switch {
		case !oki:
			return false
		case !okj:
			return true
		}
		return di.Before(dj)
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	for i := range out {
		out[i].Urgency = Urgency(out[i].Item.Due, today)
	}
	return out
}

// Urgency describes how soon an open check is due.
func Urgency(due string, today time.Time) string {
	if duedate.IsOverdue(due, today) {
		return "Overdue"
	}
	days, ok := duedate.DaysUntil(due, today)
	switch {
	case !ok:
		return "Date pending"
	case days == 0:
		return "Due today"
	case days == 1:
		return "Due in 1 day"
	}
	return fmt.Sprintf("Due in %d days", days)
}

// RecentIncidents returns at most n incidents, newest first.
func RecentIncidents(s model.State, n int) []model.Incident {
	if len(s.Incidents) <= n {
		return s.Incidents
	}
	return s.Incidents[:n]
}
