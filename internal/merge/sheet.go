package merge

import (
	"github.com/nconklindev/castmerge/internal/types"
)

// SheetOutcome is the product of merging one sheet pair.
type SheetOutcome struct {
	Table *types.Table
	// Skipped is set when a later size chart sheet had no style ID column.
	Skipped bool
	// Aggregated is set when the sheet had a size attribute block.
	Aggregated bool
}

// MergeSheet merges one size chart sheet with the product details sheet of
// the same name, registering every column it emits with canon. A nil product
// is treated as an empty table. A missing style ID column is fatal only for
// the first sheet of a run.
func MergeSheet(size, product *types.Table, first bool, canon *Canonicalizer) (SheetOutcome, error) {
	sizeID, ok := ResolveIdentifier(size.Columns)
	if !ok {
		if first {
			return SheetOutcome{}, &types.IdentifierError{Sheet: size.Name, Columns: size.Columns}
		}
		return SheetOutcome{Skipped: true}, nil
	}

	if product == nil {
		product = types.NewTable(size.Name, nil)
	}

	var productID string
	if product.Empty() {
		product = distinctIdentifiers(size, sizeID)
		productID = sizeID
	} else if productID, ok = ResolveIdentifier(product.Columns); !ok {
		// No style ID column in the product details: assume the first column
		// holds it and copy it under the size chart's name.
		productID = sizeID
		product = product.WithColumn(productID, product.Values(product.Columns[0]))
	}

	product = canon.canonicalize(product)
	productID, _ = canon.Lookup(productID)

	wide, ok := AggregateSizeBlock(size, sizeID)
	if !ok {
		return SheetOutcome{Table: product}, nil
	}

	wide.Columns[wide.ColumnIndex(sizeID)] = productID
	wide = canon.canonicalize(wide)

	return SheetOutcome{
		Table:      outerJoin(product, wide, productID),
		Aggregated: true,
	}, nil
}

// distinctIdentifiers builds a one-column table holding each identifier of t
// once, in first-seen order.
func distinctIdentifiers(t *types.Table, idColumn string) *types.Table {
	out := types.NewTable(t.Name, []string{idColumn})
	seen := make(map[string]bool)
	for _, c := range t.Values(idColumn) {
		if !c.Valid || seen[c.Value] {
			continue
		}
		seen[c.Value] = true
		out.AppendRow([]types.Cell{c})
	}
	return out
}
