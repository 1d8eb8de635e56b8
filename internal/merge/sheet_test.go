package merge

import (
	"errors"
	"strings"
	"testing"

	"github.com/nconklindev/castmerge/internal/types"
)

func TestMergeSheet_JoinsAggregatedSizes(t *testing.T) {
	size := table("Tab1", []string{"styleId", "Brand Size", "UK Size"},
		[]string{"S1", "", "6"},
		[]string{"S1", "", "8"},
	)
	product := table("Tab1", []string{"styleId", "Color"}, []string{"S1", "Red"})

	canon := NewCanonicalizer()
	out, err := MergeSheet(size, product, true, canon)
	if err != nil {
		t.Fatalf("MergeSheet failed: %v", err)
	}
	if !out.Aggregated || out.Skipped {
		t.Errorf("outcome = %+v; want aggregated, not skipped", out)
	}

	assertColumns(t, out.Table.Columns, []string{"styleId", "Color", "Brand Size", "UK Size"})
	assertColumns(t, canon.Columns(), []string{"styleId", "Color", "Brand Size", "UK Size"})

	if len(out.Table.Rows) != 1 {
		t.Fatalf("got %d rows; want 1", len(out.Table.Rows))
	}
	row := rowByID(t, out.Table, "styleId", "S1")
	if row["Color"] != types.Text("Red") || row["UK Size"] != types.Text("6,8") {
		t.Errorf("row = %+v; want Color=Red, UK Size=6,8", row)
	}
	if row["Brand Size"].Valid {
		t.Errorf("Brand Size = %+v; want absent", row["Brand Size"])
	}
}

func TestMergeSheet_OuterJoinKeepsBothSides(t *testing.T) {
	size := table("Tab1", []string{"SKU", "UK Size"},
		[]string{"S1", "6"},
		[]string{"S3", "10"},
	)
	product := table("Tab1", []string{"style_id", "Color"},
		[]string{"S1", "Red"},
		[]string{"S2", "Blue"},
	)

	out, err := MergeSheet(size, product, true, NewCanonicalizer())
	if err != nil {
		t.Fatalf("MergeSheet failed: %v", err)
	}

	assertColumns(t, out.Table.Columns, []string{"style_id", "Color", "UK Size"})
	if len(out.Table.Rows) != 3 {
		t.Fatalf("got %d rows; want 3", len(out.Table.Rows))
	}
	if got := rowByID(t, out.Table, "style_id", "S2")["UK Size"]; got.Valid {
		t.Errorf("S2 UK Size = %+v; want absent", got)
	}
	s3 := rowByID(t, out.Table, "style_id", "S3")
	if s3["Color"].Valid || s3["UK Size"] != types.Text("10") {
		t.Errorf("S3 = %+v; want Color absent, UK Size 10", s3)
	}
}

func TestMergeSheet_MissingProductSheetSynthesizesIdentifiers(t *testing.T) {
	size := table("Tab2", []string{"styleId", "UK Size"},
		[]string{"S1", "6"},
		[]string{"S1", "8"},
		[]string{"S2", "7"},
		[]string{"", "9"},
	)

	out, err := MergeSheet(size, nil, false, NewCanonicalizer())
	if err != nil {
		t.Fatalf("MergeSheet failed: %v", err)
	}

	assertColumns(t, out.Table.Columns, []string{"styleId", "UK Size"})
	if len(out.Table.Rows) != 2 {
		t.Fatalf("got %d rows; want 2", len(out.Table.Rows))
	}
	if got := rowByID(t, out.Table, "styleId", "S1")["UK Size"]; got != types.Text("6,8") {
		t.Errorf("S1 UK Size = %+v; want 6,8", got)
	}
}

func TestMergeSheet_ProductWithoutIdentifierUsesFirstColumn(t *testing.T) {
	size := table("Tab1", []string{"styleId", "UK Size"}, []string{"S1", "6"})
	product := table("Tab1", []string{"Code", "Color"}, []string{"S1", "Red"})

	canon := NewCanonicalizer()
	out, err := MergeSheet(size, product, true, canon)
	if err != nil {
		t.Fatalf("MergeSheet failed: %v", err)
	}

	assertColumns(t, out.Table.Columns, []string{"Code", "Color", "styleId", "UK Size"})
	row := rowByID(t, out.Table, "styleId", "S1")
	if row["Color"] != types.Text("Red") || row["UK Size"] != types.Text("6") {
		t.Errorf("row = %+v; want Color=Red, UK Size=6", row)
	}
}

func TestMergeSheet_FoldsColumnVariantsAcrossSheets(t *testing.T) {
	canon := NewCanonicalizer()

	first := table("Tab1", []string{"styleId", "UK Size"}, []string{"S1", "6"})
	if _, err := MergeSheet(first, table("Tab1", []string{"styleId", "Colour"}, []string{"S1", "Red"}), true, canon); err != nil {
		t.Fatalf("MergeSheet(Tab1) failed: %v", err)
	}

	second := table("Tab2", []string{"StyleID", "uk size"}, []string{"S2", "8"})
	out, err := MergeSheet(second, table("Tab2", []string{"styleid", "COLOUR"}, []string{"S2", "Blue"}), false, canon)
	if err != nil {
		t.Fatalf("MergeSheet(Tab2) failed: %v", err)
	}

	assertColumns(t, out.Table.Columns, []string{"styleId", "Colour", "UK Size"})
	assertColumns(t, canon.Columns(), []string{"styleId", "Colour", "UK Size"})
}

func TestMergeSheet_MissingIdentifier(t *testing.T) {
	size := table("Tab1", []string{"Name", "Color", "A", "B", "C", "D"}, []string{"x", "y", "1", "2", "3", "4"})

	t.Run("First sheet is fatal", func(t *testing.T) {
		_, err := MergeSheet(size, nil, true, NewCanonicalizer())

		var idErr *types.IdentifierError
		if !errors.As(err, &idErr) {
			t.Fatalf("error = %v; want IdentifierError", err)
		}
		if !errors.Is(err, types.ErrIdentifierNotFound) {
			t.Error("IdentifierError does not unwrap to ErrIdentifierNotFound")
		}
		msg := err.Error()
		if !strings.Contains(msg, "[Name, Color, A, B, C, ...]") {
			t.Errorf("message %q does not list the first five columns", msg)
		}
	})

	t.Run("Later sheet is skipped", func(t *testing.T) {
		canon := NewCanonicalizer()
		out, err := MergeSheet(size, nil, false, canon)
		if err != nil {
			t.Fatalf("MergeSheet failed: %v", err)
		}
		if !out.Skipped || out.Table != nil {
			t.Errorf("outcome = %+v; want skipped", out)
		}
		if canon.Len() != 0 {
			t.Errorf("skipped sheet registered columns %v", canon.Columns())
		}
	})
}

func TestMergeSheet_NoSizeBlockReturnsProduct(t *testing.T) {
	size := table("Tab1", []string{"styleId", "Color"}, []string{"S1", "Red"})
	product := table("Tab1", []string{"styleId", "Material"}, []string{"S1", "Cotton"}, []string{"S2", "Wool"})

	out, err := MergeSheet(size, product, true, NewCanonicalizer())
	if err != nil {
		t.Fatalf("MergeSheet failed: %v", err)
	}
	if out.Aggregated {
		t.Error("outcome reports aggregation without a size column")
	}
	assertColumns(t, out.Table.Columns, []string{"styleId", "Material"})
	if len(out.Table.Rows) != 2 {
		t.Errorf("got %d rows; want 2", len(out.Table.Rows))
	}
}
