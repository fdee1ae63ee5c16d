package cli

import (
	"fmt"
	"time"

	"github.com/Makepad-fr/safety360/internal/checklist"
	"github.com/Makepad-fr/safety360/internal/duedate"
	"github.com/Makepad-fr/safety360/internal/model"
	"github.com/Makepad-fr/safety360/internal/ui"
)

// -------------- rendering helpers --------------

func categoryHeader(c model.Category, items []model.ChecklistItem, today time.Time) []string {
	var done, overdue int
	for _, it := range items {
		switch {
		case it.Completed:
			done++
		case duedate.IsOverdue(it.Due, today):
			overdue++
		}
	}
	t := ui.Current()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(t.Title, c.Label()+" checks"),
		ui.C(t.Success, t.SymDone), done,
		ui.C(t.Pending, t.SymUnchecked), len(items)-done,
		ui.C(t.Overdue, "!"), overdue,
	)
	return []string{header, ui.C(t.Muted, ui.ProgressBar(done, len(items), 28))}
}

func checkLines(items []model.ChecklistItem, today time.Time) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{ui.C(t.Muted, "no checks")}
	}
	out := make([]string, 0, 2*len(items))
	for _, it := range checklist.Sorted(items, today) {
		st := checklist.ComputeStatus(it, today)
		box, color := t.BoxUnchecked, t.Muted
		if it.Completed {
			box, color = t.BoxChecked, t.Success
		}
		out = append(out, fmt.Sprintf("%s %s %s %s",
			ui.C(color, box),
			ui.C(t.Muted, it.ID),
			ui.Truncate(it.Title, 60),
			ui.C(ui.StatusColor(st.Class), "["+st.Label+"]")))
		out = append(out, ui.C(t.Muted, fmt.Sprintf("    %s · %s · %s · %s",
			it.Location, it.Owner, duedate.Format(it.Due), it.Frequency)))
	}
	return out
}

func scheduleLines(rows []checklist.UpcomingCheck) []string {
	t := ui.Current()
	if len(rows) == 0 {
		return []string{ui.C(t.Muted, "nothing outstanding")}
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		color := t.Accent
		switch r.Urgency {
		case "Overdue":
			color = t.Overdue
		case "Due today", "Due in 1 day":
			color = t.DueSoon
		}
		out = append(out, fmt.Sprintf("%s %s %s",
			ui.C(color, fmt.Sprintf("%-14s", r.Urgency)),
			ui.Truncate(r.Item.Title, 50),
			ui.C(t.Muted, "("+r.Category.Label()+" · "+r.Item.Location+")")))
	}
	return out
}

func statsLines(st checklist.Stats) []string {
	t := ui.Current()
	return []string{
		ui.C(t.Title, "Compliance overview"),
		ui.C(t.Muted, ui.ProgressBar(st.Completed, st.Total, 28)),
		"",
		fmt.Sprintf("%-14s %d", "Total checks", st.Total),
		fmt.Sprintf("%-14s %s", "Completed", ui.C(t.Success, fmt.Sprint(st.Completed))),
		fmt.Sprintf("%-14s %s", "Open", ui.C(t.Pending, fmt.Sprint(st.Open))),
		fmt.Sprintf("%-14s %s", "Overdue", ui.C(t.Overdue, fmt.Sprint(st.Overdue))),
		fmt.Sprintf("%-14s %d", "Due this week", st.DueThisWeek),
	}
}

func incidentLines(incs []model.Incident) []string {
	t := ui.Current()
	if len(incs) == 0 {
		return []string{ui.C(t.Muted, "no incidents logged")}
	}
	out := make([]string, 0, 2*len(incs))
	for _, inc := range incs {
		color := t.Pending
		switch inc.Severity {
		case model.SeverityHigh:
			color = t.Error
		case model.SeverityLow:
			color = t.Muted
		}
		out = append(out, fmt.Sprintf("%s %s %s",
			ui.C(color, "["+inc.Severity+"]"),
			ui.Truncate(inc.Description, 60),
			ui.C(t.Muted, "("+inc.Status+")")))
		out = append(out, ui.C(t.Muted, fmt.Sprintf("    %s · %s · %s",
			inc.Category, inc.Location, duedate.Format(inc.ReportedOn))))
	}
	return out
}
