// Package report renders the plain-text compliance snapshot.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Makepad-fr/safety360/internal/checklist"
	"github.com/Makepad-fr/safety360/internal/duedate"
	"github.com/Makepad-fr/safety360/internal/model"
)

// RecentIncidentLimit caps the incident section.
const RecentIncidentLimit = 5

// TimestampLayout matches an en-GB locale date-time.
const TimestampLayout = "02/01/2006, 15:04:05"

// Build renders s as of now. The output depends only on its arguments.
func Build(s model.State, now time.Time) string {
	today := duedate.Midnight(now)
	st := checklist.Summarize(s, today)

	var lines []string
	lines = append(lines, "Safety360 compliance snapshot – "+now.Format(TimestampLayout))
	lines = append(lines, strings.Repeat("=", 40))
	lines = append(lines, fmt.Sprintf("Total checks: %d", st.Total))
	lines = append(lines, fmt.Sprintf("Completed: %d", st.Completed))
	lines = append(lines, fmt.Sprintf("Open: %d", st.Open))
	lines = append(lines, fmt.Sprintf("Overdue: %d", st.Overdue))
	lines = append(lines, "", "Detailed checklist status:")

	for _, c := range model.Categories {
		lines = append(lines, "", strings.ToUpper(string(c))+" CHECKS:")
		for _, it := range s.Items(c) {
			status := "Due " + duedate.Format(it.Due)
			if it.Completed {
				status = "Completed"
			}
			lines = append(lines, fmt.Sprintf("- %s (%s) – %s", it.Title, it.Frequency, status))
		}
	}

	lines = append(lines, "", "Recent incidents:")
	for _, inc := range checklist.RecentIncidents(s, RecentIncidentLimit) {
		lines = append(lines, fmt.Sprintf("- [%s] %s (%s) on %s at %s",
			inc.Category, inc.Description, inc.Severity, duedate.Format(inc.ReportedOn), inc.Location))
	}
	return strings.Join(lines, "\n")
}

// Filename is the export name for a report generated at now.
func Filename(now time.Time) string {
	return "safety360-report-" + duedate.ISO(now) + ".txt"
}

// Export writes the report into dir and returns the file path.
func Export(dir string, s model.State, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}
	p := filepath.Join(dir, Filename(now))
	if err := os.WriteFile(p, []byte(Build(s, now)), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return p, nil
}
