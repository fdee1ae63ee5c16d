package checklist

import (
	"time"

	"github.com/Makepad-fr/safety360/internal/duedate"
	"github.com/Makepad-fr/safety360/internal/model"
)

// DueSoonDays is the window in which an open check counts as "Due soon".
const DueSoonDays = 2

// Status is the derived state of a check.
type Status struct {
	Label string
	Class string
}

var (
	StatusCompleted = Status{Label: "Completed", Class: "status-complete"}
	StatusOverdue   = Status{Label: "Overdue", Class: "status-overdue"}
	StatusDueSoon   = Status{Label: "Due soon", Class: "status-due"}
	StatusScheduled = Status{Label: "Scheduled", Class: "status-due"}
)

// ComputeStatus derives an item's status. Completion wins over any date
// state, and overdue wins over due soon.
func ComputeStatus(item model.ChecklistItem, today time.Time) Status {
	switch {
	case item.Completed:
		return StatusCompleted
	case duedate.IsOverdue(item.Due, today):
		return StatusOverdue
	case duedate.IsDueWithin(item.Due, DueSoonDays, today):
		return StatusDueSoon
	default:
		return StatusScheduled
	}
}
