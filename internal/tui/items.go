package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/safety360/internal/checklist"
	"github.com/Makepad-fr/safety360/internal/duedate"
	"github.com/Makepad-fr/safety360/internal/model"
)

// checkItem adapts a ChecklistItem to bubbles/list.Item.
type checkItem struct {
	item   model.ChecklistItem
	status checklist.Status
}

func (i checkItem) Title() string       { return i.item.Title }
func (i checkItem) Description() string { return i.meta() }
func (i checkItem) FilterValue() string {
	return i.item.Title + " " + i.item.Owner + " " + i.item.Location
}

func (i checkItem) meta() string {
	return fmt.Sprintf("%s · %s · %s · %s",
		i.item.Location, i.item.Owner, duedate.Format(i.item.Due), i.item.Frequency)
}

func toItems(items []model.ChecklistItem, today time.Time) []list.Item {
	sorted := checklist.Sorted(items, today)
	out := make([]list.Item, 0, len(sorted))
	for _, it := range sorted {
		out = append(out, checkItem{item: it, status: checklist.ComputeStatus(it, today)})
	}
	return out
}

// Custom delegate: a title line with a status chip and a muted meta line.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 2 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, li list.Item) {
	it, ok := li.(checkItem)
	if !ok {
		return
	}
	box := mutedStyle.Render(boxUnchecked)
	title := it.item.Title
	if it.item.Completed {
		box = successStyle.Render(boxChecked)
		title = doneStyle.Render(title)
	}
	chip := chipStyle(it.status.Class).Render("[" + it.status.Label + "]")

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s %s\n", prefix, box, title, chip)
	fmt.Fprint(w, "    "+mutedStyle.Render(strings.TrimSpace(it.meta())))
}
