package model

// Checks holds the checklist sequences keyed by category.
type Checks struct {
	Health []ChecklistItem `json:"health"`
	Fire   []ChecklistItem `json:"fire"`
}

// State is everything the tracker persists: both checklists and the
// incident log, most recent incident first.
type State struct {
	Checks    Checks     `json:"checks"`
	Incidents []Incident `json:"incidents"`
}

// Items returns the sequence for c, or nil for an unknown category.
func (s *State) Items(c Category) []ChecklistItem {
	switch c {
	case Health:
		return s.Checks.Health
	case Fire:
		return s.Checks.Fire
	}
	return nil
}

// SetItems replaces the sequence for c. Unknown categories are ignored.
func (s *State) SetItems(c Category, items []ChecklistItem) {
	switch c {
	case Health:
		s.Checks.Health = items
	case Fire:
		s.Checks.Fire = items
	}
}

// AllChecks returns health checks followed by fire checks.
func (s State) AllChecks() []ChecklistItem {
	out := make([]ChecklistItem, 0, len(s.Checks.Health)+len(s.Checks.Fire))
	out = append(out, s.Checks.Health...)
	return append(out, s.Checks.Fire...)
}

// Clone returns a deep copy. Items and incidents hold only value fields,
// so copying the slices is enough.
func (s State) Clone() State {
	return State{
		Checks: Checks{
			Health: cloneSlice(s.Checks.Health),
			Fire:   cloneSlice(s.Checks.Fire),
		},
		Incidents: cloneSlice(s.Incidents),
	}
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
