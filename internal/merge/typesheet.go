package merge

import (
	"strings"

	"github.com/nconklindev/castmerge/internal/types"
)

const (
	// TypesSheet is the name of the column metadata sheet.
	TypesSheet = "Types"

	MandatoryMarker = "mandatory"
	TypeImage       = "image"
	TypeString      = "string"
)

// typesLeadColumns pad the Types header to the shape the import format expects.
var typesLeadColumns = []string{"Column1", "Column2"}

var imageMarkers = []string{"image", "img", "url", "cdn"}

// InferColumnType tags columns that hold image links as "image" and every
// other column as "string".
func InferColumnType(column string) string {
	lower := strings.ToLower(column)
	for _, m := range imageMarkers {
		if strings.Contains(lower, m) {
			return TypeImage
		}
	}
	return TypeString
}

// BuildTypesSheet derives the three metadata rows (name, mandatory marker,
// type) for columns. The two lead columns stay blank.
func BuildTypesSheet(columns []string) *types.Table {
	header := append(append([]string(nil), typesLeadColumns...), columns...)
	out := types.NewTable(TypesSheet, header)

	lead := len(typesLeadColumns)
	rows := [3][]types.Cell{}
	for i := range rows {
		rows[i] = make([]types.Cell, len(header))
		for j := 0; j < lead; j++ {
			rows[i][j] = types.Text("")
		}
	}
	for j, c := range columns {
		rows[0][lead+j] = types.Text(c)
		rows[1][lead+j] = types.Text(MandatoryMarker)
		rows[2][lead+j] = types.Text(InferColumnType(c))
	}

	for _, r := range rows {
		out.AppendRow(r)
	}
	return out
}
