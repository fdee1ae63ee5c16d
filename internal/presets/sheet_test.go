package presets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalog() *Catalog {
	return &Catalog{
		Models: map[string]Model{
			"OM-1": {"TOP": "Sitka", "scale": "25.4", "BINDINGS": "Ivoroid"},
			"D-37": {"TOP": "Lutz", "SCALE": "25.4", "BINDINGS": "-"},
		},
		Options: []FieldOptions{
			{Field: "TOP", Values: []string{"Sitka", "Adirondack", "-"}},
			{Field: "SCALE", Values: []string{"24.9", "25.4", ""}},
			{Field: "STRINGS", Values: []string{"-", " "}},
		},
	}
}

func TestFieldOptionsFromTable(t *testing.T) {
	got := catalog().FieldOptions()
	assert.Equal(t, []FieldOptions{
		{Field: "TOP", Values: []string{"Sitka", "Adirondack"}},
		{Field: "SCALE", Values: []string{"24.9", "25.4"}},
	}, got)
}

func TestFieldOptionsFallbackScansModels(t *testing.T) {
	c := catalog()
	c.Options = nil
	assert.Equal(t, []FieldOptions{
		{Field: "BINDINGS", Values: []string{"Ivoroid"}},
		{Field: "SCALE", Values: []string{"25.4"}},
		{Field: "TOP", Values: []string{"Lutz", "Sitka"}},
		{Field: "scale", Values: []string{"25.4"}},
	}, c.FieldOptions())
}

func TestSheetSelectAndFields(t *testing.T) {
	s := NewSheet(catalog())
	require.NoError(t, s.Select("D-37"))
	assert.Equal(t, "D-37", s.Model())

	fields := s.Fields()
	require.Len(t, fields, 2)
	assert.Equal(t, "Top Wood", fields[0].Label)
	assert.Equal(t, "Lutz", fields[0].Value)
	assert.Equal(t, []string{"Sitka", "Adirondack", "Lutz"}, fields[0].Options, "baseline value stays selectable")
	assert.Equal(t, "Scale Length", fields[1].Label)
	assert.Empty(t, s.Dirty())
}

func TestSheetCaseInsensitiveLookup(t *testing.T) {
	s := NewSheet(catalog())
	require.NoError(t, s.Select("OM-1"))
	assert.Equal(t, "25.4", s.Value("SCALE"))
}

func TestSheetDirtyTracking(t *testing.T) {
	s := NewSheet(catalog())
	require.NoError(t, s.Select("OM-1"))

	s.Set("TOP", "Adirondack")
	s.Set("SCALE", "24.9")
	assert.Equal(t, []string{"SCALE", "TOP"}, s.Dirty())

	s.Set("TOP", "Sitka")
	assert.Equal(t, []string{"SCALE"}, s.Dirty(), "back to baseline clears the mark")

	s.Set("SCALE", "")
	assert.Empty(t, s.Dirty(), "empty never counts as an edit")

	s.Set("TOP", "Adirondack")
	require.NoError(t, s.Select("OM-1"))
	assert.Empty(t, s.Dirty(), "selecting again resets edits")
}

func TestSheetUnknownModel(t *testing.T) {
	s := NewSheet(catalog())
	assert.ErrorIs(t, s.Select("Jumbo"), ErrUnknownModel)
	require.NoError(t, s.Select(""))
	assert.Nil(t, s.Fields())
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Back & Sides", DisplayName("BACK / SIDES"))
	assert.Equal(t, "CUSTOM", DisplayName("CUSTOM"))
}
