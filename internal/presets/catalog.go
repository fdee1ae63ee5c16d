package presets

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Model is one preset row: sheet column -> value.
type Model map[string]string

// UnmarshalJSON accepts numbers, booleans and nulls as cell values;
// spreadsheets export them unquoted.
func (m *Model) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(Model, len(raw))
	for k, v := range raw {
		out[k] = cell(v)
	}
	*m = out
	return nil
}

// Lookup finds field by exact name, then case-insensitively.
func (m Model) Lookup(field string) string {
	if v, ok := m[field]; ok && v != "" {
		return v
	}
	for k, v := range m {
		if strings.EqualFold(k, field) {
			return v
		}
	}
	return ""
}

func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

// FieldOptions is the list of allowed values for one field.
type FieldOptions struct {
	Field  string
	Values []string
}

// decodeOptions reads {"FIELD": [..], ...} keeping the key order.
// Fields whose value is not a list are skipped.
func decodeOptions(raw []byte) ([]FieldOptions, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("options: expected object")
	}
	var out []FieldOptions
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		field, _ := tok.(string)
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		list, ok := v.([]any)
		if !ok {
			continue
		}
		fo := FieldOptions{Field: field}
		for _, item := range list {
			fo.Values = append(fo.Values, cell(item))
		}
		out = append(out, fo)
	}
	return out, nil
}

// Catalog is everything LoadAll returns.
type Catalog struct {
	Models  map[string]Model
	Options []FieldOptions
}

// ModelNames lists the presets alphabetically.
func (c *Catalog) ModelNames() []string {
	names := make([]string, 0, len(c.Models))
	for n := range c.Models {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func usable(v string) bool {
	return strings.TrimSpace(v) != "" && v != "-"
}

// FieldOptions returns the selectable values per field, dropping blanks
// and "-". Without an options table the values are gathered from the
// models themselves, de-duplicated and sorted. Fields left with no values
// are omitted.
func (c *Catalog) FieldOptions() []FieldOptions {
	if len(c.Options) > 0 {
		var out []FieldOptions
		for _, fo := range c.Options {
			var vals []string
			for _, v := range fo.Values {
				if usable(v) {
					vals = append(vals, v)
				}
			}
			if len(vals) > 0 {
				out = append(out, FieldOptions{Field: fo.Field, Values: vals})
			}
		}
		return out
	}

	seen := make(map[string]map[string]bool)
	for _, name := range c.ModelNames() {
		for field, v := range c.Models[name] {
			if !usable(v) {
				continue
			}
			if seen[field] == nil {
				seen[field] = make(map[string]bool)
			}
			seen[field][v] = true
		}
	}
	fields := make([]string, 0, len(seen))
	for f := range seen {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	out := make([]FieldOptions, 0, len(fields))
	for _, f := range fields {
		vals := make([]string, 0, len(seen[f]))
		for v := range seen[f] {
			vals = append(vals, v)
		}
		sort.Strings(vals)
		out = append(out, FieldOptions{Field: f, Values: vals})
	}
	return out
}

var displayNames = map[string]string{
	"SCALE":            "Scale Length",
	"NUT WIDTH":        "Nut Width",
	"NECK SHAPE":       "Neck Shape",
	"HEADSTOCK VENEER": "Headstock Veneer",
	"HS DECAL":         "Headstock Decal",
	"HEADSTOCK INLAY":  "Headstock Inlay",
	"FRETBOARD":        "Fretboard",
	"F / BOARD INLAYS": "Fretboard Inlays",
	"BRIDGE STYLE":     "Bridge Style",
	"BRIDGE WOOD":      "Bridge Wood",
	"TOP":              "Top Wood",
	"BACK / SIDES":     "Back & Sides",
	"BINDINGS":         "Bindings",
	"PURFLING F / B":   "Purfling",
	"BACKSTRIP":        "Backstrip",
	"END WEDGE":        "End Wedge",
	"FRETS":            "Frets",
	"BRACING":          "Bracing",
	"ROSETTE":          "Rosette",
	"MACHINEHEADS":     "Machine Heads",
	"PICKGUARD":        "Pickguard",
	"BRIDGE PINS":      "Bridge Pins",
	"END PIN":          "End Pin",
	"STRINGS":          "Strings",
	"BODY JOIN":        "Body Join",
}

// DisplayName is the label for a sheet column; unknown columns keep their
// own name.
func DisplayName(field string) string {
	if n, ok := displayNames[field]; ok {
		return n
	}
	return field
}
