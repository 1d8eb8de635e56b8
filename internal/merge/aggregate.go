package merge

import (
	"strings"

	"github.com/nconklindev/castmerge/internal/types"
)

// placeholderValues are cell texts that mean "no value" in exported sheets.
var placeholderValues = map[string]bool{
	"nan":  true,
	"none": true,
}

// FindSizeBlockStart returns the index of the first size attribute column:
// the first column naming both a brand and a size, else the first column
// naming a size, else -1.
func FindSizeBlockStart(columns []string) int {
	for i, c := range columns {
		key := NormalizeColumn(c)
		if strings.Contains(key, "brand") && strings.Contains(key, "size") {
			return i
		}
	}
	for i, c := range columns {
		if strings.Contains(NormalizeColumn(c), "size") {
			return i
		}
	}
	return -1
}

// AggregateSizeBlock collapses the size attribute block of a size chart sheet
// to one row per identifier. It reports false when the sheet has no size
// column, in which case no aggregation applies.
func AggregateSizeBlock(t *types.Table, idColumn string) (*types.Table, bool) {
	start := FindSizeBlockStart(t.Columns)
	if start < 0 {
		return nil, false
	}

	var valueColumns []string
	for _, c := range t.Columns[start:] {
		if c != idColumn {
			valueColumns = append(valueColumns, c)
		}
	}

	long := toLongForm(t, idColumn, valueColumns)
	groups := aggregateGroups(long)
	return toWideForm(t.Name, idColumn, valueColumns, groups), true
}

// AggregateValues joins the distinct, trimmed, non-placeholder values with
// ",". The result is absent when nothing qualifies.
func AggregateValues(values []types.Cell) types.Cell {
	var kept []string
	seen := make(map[string]bool)
	for _, v := range values {
		if !v.Valid {
			continue
		}
		s := strings.TrimSpace(v.Value)
		if s == "" || placeholderValues[strings.ToLower(s)] || seen[s] {
			continue
		}
		seen[s] = true
		kept = append(kept, s)
	}
	if len(kept) == 0 {
		return types.Absent
	}
	return types.Text(strings.Join(kept, ","))
}

// longRow is one (identifier, column, value) triple.
type longRow struct {
	id     string
	column string
	value  types.Cell
}

type groupKey struct {
	id     string
	column string
}

type group struct {
	key    groupKey
	values []types.Cell
}

// toLongForm emits one triple per source row and value column. Rows without
// an identifier cannot be grouped and are left out.
func toLongForm(t *types.Table, idColumn string, valueColumns []string) []longRow {
	idIdx := t.ColumnIndex(idColumn)
	if idIdx < 0 {
		return nil
	}

	indexes := make([]int, len(valueColumns))
	for i, c := range valueColumns {
		indexes[i] = t.ColumnIndex(c)
	}

	out := make([]longRow, 0, len(t.Rows)*len(valueColumns))
	for _, row := range t.Rows {
		id := row[idIdx]
		if !id.Valid {
			continue
		}
		for i, c := range valueColumns {
			out = append(out, longRow{id: id.Value, column: c, value: row[indexes[i]]})
		}
	}
	return out
}

// aggregateGroups reduces the triples of every (identifier, column) pair with
// AggregateValues, keeping groups in first-seen order.
func aggregateGroups(rows []longRow) []aggregatedCell {
	var groups []*group
	index := make(map[groupKey]*group)
	for _, r := range rows {
		k := groupKey{id: r.id, column: r.column}
		g, ok := index[k]
		if !ok {
			g = &group{key: k}
			index[k] = g
			groups = append(groups, g)
		}
		g.values = append(g.values, r.value)
	}

	out := make([]aggregatedCell, len(groups))
	for i, g := range groups {
		out[i] = aggregatedCell{key: g.key, value: AggregateValues(g.values)}
	}
	return out
}

type aggregatedCell struct {
	key   groupKey
	value types.Cell
}

// toWideForm pivots aggregated cells back to one row per identifier with one
// column per value column.
func toWideForm(name, idColumn string, valueColumns []string, cells []aggregatedCell) *types.Table {
	columns := append([]string{idColumn}, valueColumns...)
	out := types.NewTable(name, columns)

	position := make(map[string]int, len(valueColumns))
	for i, c := range valueColumns {
		position[c] = i + 1
	}

	rowOf := make(map[string]int)
	for _, c := range cells {
		r, ok := rowOf[c.key.id]
		if !ok {
			r = len(out.Rows)
			rowOf[c.key.id] = r
			out.AppendRow([]types.Cell{types.Text(c.key.id)})
		}
		out.Rows[r][position[c.key.column]] = c.value
	}
	return out
}
