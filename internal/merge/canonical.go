package merge

import (
	"strings"
	"unicode"

	"github.com/nconklindev/castmerge/internal/types"
)

// NormalizeColumn folds a column name to its comparison key: lower case with
// every whitespace character removed.
func NormalizeColumn(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, strings.ToLower(name))
}

// Canonicalizer maps every spelling of a column to the first spelling seen
// and remembers the order in which columns were first seen. One Canonicalizer
// spans one merge run; it is not safe for concurrent use.
type Canonicalizer struct {
	names map[string]string
	order []string
}

func NewCanonicalizer() *Canonicalizer {
	return &Canonicalizer{names: make(map[string]string)}
}

// Register records name if its key is new and returns the canonical spelling.
func (c *Canonicalizer) Register(name string) string {
	key := NormalizeColumn(name)
	if canonical, ok := c.names[key]; ok {
		return canonical
	}
	c.names[key] = name
	c.order = append(c.order, name)
	return name
}

// Lookup returns the canonical spelling for name without registering it.
func (c *Canonicalizer) Lookup(name string) (string, bool) {
	canonical, ok := c.names[NormalizeColumn(name)]
	return canonical, ok
}

// Columns returns the canonical columns in first-seen order.
func (c *Canonicalizer) Columns() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

func (c *Canonicalizer) Len() int {
	return len(c.order)
}

// canonicalize registers every column of t and returns a copy using the
// canonical spellings. Columns of t that fold to the same canonical name are
// collapsed into the first of them, later columns filling its absent cells.
func (c *Canonicalizer) canonicalize(t *types.Table) *types.Table {
	target := make([]int, len(t.Columns))
	var columns []string
	position := make(map[string]int)

	for i, col := range t.Columns {
		name := c.Register(col)
		idx, ok := position[name]
		if !ok {
			idx = len(columns)
			position[name] = idx
			columns = append(columns, name)
		}
		target[i] = idx
	}

	out := types.NewTable(t.Name, columns)
	for _, row := range t.Rows {
		cells := make([]types.Cell, len(columns))
		for i, cell := range row {
			if !cells[target[i]].Valid {
				cells[target[i]] = cell
			}
		}
		out.AppendRow(cells)
	}
	return out
}
