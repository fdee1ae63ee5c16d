package model

import (
	"time"

	"github.com/Makepad-fr/safety360/internal/duedate"
)

// Seed builds the default tracker contents, with due dates placed
// relative to now. Each call returns fresh slices, so callers may mutate
// the result freely. newID names the seeded incidents.
func Seed(now time.Time, newID func() string) State {
	on := func(days int) string { return duedate.Offset(now, days) }
	return State{
		Checks: Checks{
			Health: []ChecklistItem{
				{
					ID:        "H-001",
					Title:     "Weekly first aid kit inspection",
					Frequency: "Weekly",
					Location:  "Reception",
					Owner:     "Alex Johnson",
					Due:       on(2),
					Notes:     "Top up adhesive dressings if below minimum levels.",
				},
				{
					ID:        "H-002",
					Title:     "Display screen equipment (DSE) review",
					Frequency: "Quarterly",
					Location:  "All workstations",
					Owner:     "Priya Patel",
					Due:       on(28),
				},
				{
					ID:        "H-003",
					Title:     "Workplace temperature spot check",
					Frequency: "Daily",
					Location:  "Production floor",
					Owner:     "Jordan Mills",
					Due:       on(-1),
				},
				{
					ID:        "H-004",
					Title:     "PPE stocktake",
					Frequency: "Monthly",
					Location:  "Stores cupboard",
					Owner:     "Sasha Green",
					Due:       on(9),
					Completed: true,
				},
			},
			Fire: []ChecklistItem{
				{
					ID:        "F-001",
					Title:     "Fire alarm call-point test",
					Frequency: "Weekly",
					Location:  "Site wide",
					Owner:     "Liam Carter",
					Due:       on(-3),
				},
				{
					ID:        "F-002",
					Title:     "Emergency lighting function test",
					Frequency: "Monthly",
					Location:  "Warehouse mezzanine",
					Owner:     "Lena Ruiz",
					Due:       on(6),
				},
				{
					ID:        "F-003",
					Title:     "Fire extinguisher visual check",
					Frequency: "Monthly",
					Location:  "All extinguishers",
					Owner:     "Marco Chen",
					Due:       on(4),
				},
				{
					ID:        "F-004",
					Title:     "Evacuation drill",
					Frequency: "Annually",
					Location:  "Main facility",
					Owner:     "Holly James",
					Due:       on(90),
				},
			},
		},
		Incidents: []Incident{
			{
				ID:          newID(),
				Category:    Health.Label(),
				Severity:    SeverityLow,
				Location:    "Breakout space",
				Description: "Minor slip reported near refreshment area. Floor cleaned and wet-floor signage deployed.",
				ReportedOn:  on(-4),
				Status:      "Closed",
			},
			{
				ID:          newID(),
				Category:    Fire.Label(),
				Severity:    SeverityMedium,
				Location:    "Warehouse bay 3",
				Description: "Faulty extension lead discovered during walk-through. Lead removed and PAT retest booked.",
				ReportedOn:  on(-11),
				Status:      "Actioning",
			},
		},
	}
}
