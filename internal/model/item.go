package model

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ChecklistItem is a recurring compliance check.
// Due is an ISO date (YYYY-MM-DD); empty means no date has been set.
type ChecklistItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Frequency string `json:"frequency"`
	Location  string `json:"location"`
	Owner     string `json:"owner"`
	Due       string `json:"due,omitempty"`
	Completed bool   `json:"completed"`
	Notes     string `json:"notes,omitempty"`
}

// Category names one of the checklist sequences in State.
type Category string

const (
	Health Category = "health"
	Fire   Category = "fire"
)

// Categories lists the checklist categories in display order.
var Categories = []Category{Health, Fire}

// ParseCategory accepts "health"/"fire" in any case.
func ParseCategory(s string) (Category, bool) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case Health, Fire:
		return c, true
	}
	return "", false
}

var titleCaser = cases.Title(language.English)

// Label is the capitalised form used on incidents ("Health", "Fire").
func (c Category) Label() string { return titleCaser.String(string(c)) }
