package merge

import (
	"reflect"
	"testing"
)

func TestInferColumnType(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"styleId", TypeString},
		{"Product Image URL", TypeImage},
		{"IMG 1", TypeImage},
		{"cdnLink", TypeImage},
		{"Front Image", TypeImage},
		{"Description", TypeString},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := InferColumnType(tt.input); got != tt.expected {
				t.Errorf("InferColumnType(%q) = %q; want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestBuildTypesSheet(t *testing.T) {
	got := BuildTypesSheet([]string{"styleId", "Product Image URL"})

	if got.Name != TypesSheet {
		t.Errorf("Name = %q; want %q", got.Name, TypesSheet)
	}
	assertColumns(t, got.Columns, []string{"Column1", "Column2", "styleId", "Product Image URL"})

	want := [][]string{
		{"", "", "styleId", "Product Image URL"},
		{"", "", "mandatory", "mandatory"},
		{"", "", "string", "image"},
	}
	if rows := got.Strings(); !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %q; want %q", rows, want)
	}
}

func TestBuildTypesSheet_NoColumns(t *testing.T) {
	got := BuildTypesSheet(nil)

	assertColumns(t, got.Columns, []string{"Column1", "Column2"})
	if len(got.Rows) != 3 {
		t.Errorf("got %d rows; want 3", len(got.Rows))
	}
}
