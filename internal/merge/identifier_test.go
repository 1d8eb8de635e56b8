package merge

import "testing"

func TestResolveIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		columns  []string
		expected string
		found    bool
	}{
		{"Camel case", []string{"Color", "styleId"}, "styleId", true},
		{"Underscore", []string{"style_id", "Color"}, "style_id", true},
		{"Hyphen", []string{"Color", "Style-ID"}, "Style-ID", true},
		{"Space", []string{"Style Id"}, "Style Id", true},
		{"SKU", []string{"Name", "sku"}, "sku", true},
		{"Contains styleid", []string{"Name", "Parent StyleId Code"}, "Parent StyleId Code", true},
		{"Exact beats contains", []string{"StyleIdentifier", "Style_ID"}, "Style_ID", true},
		{"SKU beats contains", []string{"StyleIdentifier", "SKU"}, "SKU", true},
		{"Leftmost within rule", []string{"Color", "style_id", "styleId"}, "style_id", true},
		{"SKU is whole word only", []string{"SKU Code", "skus"}, "", false},
		{"No match", []string{"Name", "Color", "Size"}, "", false},
		{"Empty", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ResolveIdentifier(tt.columns)
			if got != tt.expected || found != tt.found {
				t.Errorf("ResolveIdentifier(%q) = %q, %v; want %q, %v", tt.columns, got, found, tt.expected, tt.found)
			}
		})
	}
}
