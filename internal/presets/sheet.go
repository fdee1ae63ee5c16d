package presets

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// ErrUnknownModel is returned by Sheet.Select for a name not in the catalog.
var ErrUnknownModel = errors.New("unknown model")

// Field is one editable row of a spec sheet.
type Field struct {
	Name    string
	Label   string
	Options []string
	Value   string
	Dirty   bool
}

// Sheet is a spec sheet being edited against a model's baseline values.
type Sheet struct {
	catalog  *Catalog
	model    string
	baseline Model
	current  map[string]string
	dirty    map[string]bool
}

func NewSheet(c *Catalog) *Sheet {
	s := &Sheet{catalog: c}
	s.Reset()
	return s
}

// Select loads a model as the new baseline and clears all edits. An
// empty name resets the sheet.
func (s *Sheet) Select(name string) error {
	if name == "" {
		s.Reset()
		return nil
	}
	m, ok := s.catalog.Models[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownModel, name)
	}
	s.Reset()
	s.model = name
	for k, v := range m {
		s.baseline[k] = v
		s.current[k] = v
	}
	for _, fo := range s.catalog.FieldOptions() {
		s.current[fo.Field] = m.Lookup(fo.Field)
	}
	return nil
}

// Reset clears the selection, baseline and edits.
func (s *Sheet) Reset() {
	s.model = ""
	s.baseline = Model{}
	s.current = make(map[string]string)
	s.dirty = make(map[string]bool)
}

// Model is the selected model name, or "".
func (s *Sheet) Model() string { return s.model }

// Set records a value for field. The field is dirty while it differs
// from the baseline and is not empty.
func (s *Sheet) Set(field, value string) {
	s.current[field] = value
	if value != "" && value != s.baseline.Lookup(field) {
		s.dirty[field] = true
	} else {
		delete(s.dirty, field)
	}
}

// Value is the current value of field.
func (s *Sheet) Value(field string) string { return s.current[field] }

// Dirty lists edited fields alphabetically.
func (s *Sheet) Dirty() []string {
	out := make([]string, 0, len(s.dirty))
	for f := range s.dirty {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Fields returns the editable rows for the selected model. A baseline
// value the options table does not offer is appended so it stays
// selectable.
func (s *Sheet) Fields() []Field {
	if s.model == "" {
		return nil
	}
	var out []Field
	for _, fo := range s.catalog.FieldOptions() {
		base := s.baseline.Lookup(fo.Field)
		opts := append([]string(nil), fo.Values...)
		if base != "" && !slices.Contains(opts, base) {
			opts = append(opts, base)
		}
		out = append(out, Field{
			Name:    fo.Field,
			Label:   DisplayName(fo.Field),
			Options: opts,
			Value:   s.current[fo.Field],
			Dirty:   s.dirty[fo.Field],
		})
	}
	return out
}
