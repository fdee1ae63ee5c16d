package checklist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Makepad-fr/safety360/internal/duedate"
	"github.com/Makepad-fr/safety360/internal/model"
)

var today = time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)

func TestComputeStatus(t *testing.T) {
	tests := []struct {
		name string
		item model.ChecklistItem
		want Status
	}{
		{"completed beats overdue", model.ChecklistItem{Due: "2023-12-01", Completed: true}, StatusCompleted},
		{"completed without date", model.ChecklistItem{Completed: true}, StatusCompleted},
		{"overdue", model.ChecklistItem{Due: "2024-01-01"}, StatusOverdue},
		{"due today", model.ChecklistItem{Due: "2024-01-05"}, StatusDueSoon},
		{"due tomorrow", model.ChecklistItem{Due: "2024-01-06"}, StatusDueSoon},
		{"due in two days", model.ChecklistItem{Due: "2024-01-07"}, StatusDueSoon},
		{"due in three days", model.ChecklistItem{Due: "2024-01-08"}, StatusScheduled},
		{"no date", model.ChecklistItem{}, StatusScheduled},
		{"malformed date", model.ChecklistItem{Due: "next tuesday"}, StatusScheduled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeStatus(tt.item, today))
		})
	}
}

func TestOverdueScenario(t *testing.T) {
	item := model.ChecklistItem{Due: "2024-01-01"}
	assert.Equal(t, "Overdue", ComputeStatus(item, today).Label)
	n, ok := duedate.DaysUntil(item.Due, today)
	assert.True(t, ok)
	assert.Equal(t, -4, n)
}

func TestDueSoonScenario(t *testing.T) {
	item := model.ChecklistItem{Due: duedate.Offset(today, 1)}
	assert.Equal(t, "Due soon", ComputeStatus(item, today).Label)
	assert.True(t, duedate.IsDueWithin(item.Due, 2, today))
}

func TestComputeStatusIgnoresTimeOfDay(t *testing.T) {
	item := model.ChecklistItem{Due: "2024-01-04"}
	late := today.Add(23*time.Hour + 59*time.Minute)
	assert.Equal(t, ComputeStatus(item, today), ComputeStatus(item, late))
}
