package formatter

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/nconklindev/castmerge/internal/types"
	"github.com/nconklindev/castmerge/internal/workbook"
)

// table builds a table from strings; "" is an absent cell.
func table(name string, columns []string, rows ...[]string) *types.Table {
	t := types.NewTable(name, columns)
	for _, r := range rows {
		cells := make([]types.Cell, len(r))
		for i, v := range r {
			if v != "" {
				cells[i] = types.Text(v)
			}
		}
		t.AppendRow(cells)
	}
	return t
}

func TestReindex(t *testing.T) {
	input := table("Values", []string{"styleId", "Color", "Internal"},
		[]string{"S1", "Red", "x"},
	)

	tests := []struct {
		name     string
		preserve bool
		columns  []string
		row      []string
	}{
		{"Drop extras", false, []string{"Size", "styleId", "Color"}, []string{"", "S1", "Red"}},
		{"Preserve extras", true, []string{"Size", "styleId", "Color", "Internal"}, []string{"", "S1", "Red", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reindex(input, []string{"Size", "styleId", "Color"}, tt.preserve)

			if !reflect.DeepEqual(got.Columns, tt.columns) {
				t.Errorf("Columns = %q; want %q", got.Columns, tt.columns)
			}
			if rows := got.Strings(); !reflect.DeepEqual(rows[0], tt.row) {
				t.Errorf("row = %q; want %q", rows[0], tt.row)
			}
			if !got.Rows[0][0].Valid {
				t.Error("added column should hold empty text, not an absent cell")
			}
		})
	}
}

func TestMissingKeys(t *testing.T) {
	output := table("Sheet1", []string{"styleId", "AI Generated Image Flag"},
		[]string{"S1", "yes"},
		[]string{"S2", ""},
		[]string{"S3", "  "},
		[]string{"", ""},
		[]string{"S2", ""},
	)

	got, err := MissingKeys(output, "AI Generated Image Flag", "styleId")
	if err != nil {
		t.Fatalf("MissingKeys failed: %v", err)
	}
	if want := []string{"S2", "S3"}; !reflect.DeepEqual(got, want) {
		t.Errorf("MissingKeys() = %v; want %v", got, want)
	}

	_, err = MissingKeys(output, "Flag", "styleId")
	var colErr *types.MissingColumnError
	if !errors.As(err, &colErr) || colErr.Column != "Flag" {
		t.Errorf("error = %v; want MissingColumnError for Flag", err)
	}
}

func TestSelectRows(t *testing.T) {
	values := table("Values", []string{"styleId", "Color"},
		[]string{"S1", "Red"},
		[]string{"S2", "Blue"},
		[]string{"S3", "Green"},
		[]string{"S2", "Navy"},
	)

	got, err := SelectRows(values, "styleId", []string{"S2", "S9"})
	if err != nil {
		t.Fatalf("SelectRows failed: %v", err)
	}
	want := [][]string{{"S2", "Blue"}, {"S2", "Navy"}}
	if !reflect.DeepEqual(got.Strings(), want) {
		t.Errorf("rows = %q; want %q", got.Strings(), want)
	}

	if _, err := SelectRows(values, "sku", nil); !errors.Is(err, types.ErrMissingColumn) {
		t.Errorf("error = %v; want ErrMissingColumn", err)
	}
}

func TestOverwrite(t *testing.T) {
	main := table("Sheet1", []string{"styleId", "Color", "Notes"},
		[]string{"S1", "Red", "keep"},
		[]string{"S2", "Blue", "keep"},
		[]string{"S1", "Red", "dup"},
	)
	sample := table("Sheet1", []string{"styleId", "Color", "Extra"},
		[]string{"S1", "Crimson", "ignored"},
		[]string{"S3", "Green", "ignored"},
		[]string{"S1", "Scarlet", "ignored"},
	)

	got, updated, err := Overwrite(main, sample, "styleId")
	if err != nil {
		t.Fatalf("Overwrite failed: %v", err)
	}
	if updated != 1 {
		t.Errorf("updated = %d; want 1", updated)
	}

	want := [][]string{
		{"S1", "Scarlet", "keep"},
		{"S2", "Blue", "keep"},
		{"S1", "Scarlet", "dup"},
	}
	if !reflect.DeepEqual(got.Strings(), want) {
		t.Errorf("rows = %q; want %q", got.Strings(), want)
	}
	if !reflect.DeepEqual(got.Columns, main.Columns) {
		t.Errorf("Columns = %q; want %q", got.Columns, main.Columns)
	}
	if main.Rows[0][1] != types.Text("Red") {
		t.Error("Overwrite modified its input table")
	}

	if _, _, err := Overwrite(main, table("s", []string{"sku"}), "styleId"); !errors.Is(err, types.ErrMissingColumn) {
		t.Errorf("error = %v; want ErrMissingColumn", err)
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "input.xlsx")
	templatePath := filepath.Join(dir, "template.csv")
	outputPath := filepath.Join(dir, "Formatted_input.xlsx")

	input := table("Values", []string{"styleId", "Color"}, []string{"S1", "Red"}, []string{"S2", "Blue"})
	if err := workbook.WriteSheets(inputPath, input); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(templatePath, []byte("Color,styleId,Size\n"), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := Export(inputPath, templatePath, outputPath, false)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	want := types.ExportResult{
		OutputFile:      outputPath,
		RowsProcessed:   2,
		ColumnsInInput:  2,
		ColumnsInOutput: 3,
		ColumnsAdded:    1,
	}
	if *result != want {
		t.Errorf("result = %+v; want %+v", *result, want)
	}

	got, err := workbook.ReadFirstSheet(outputPath)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got.Columns, []string{"Color", "styleId", "Size"}) {
		t.Errorf("Columns = %q", got.Columns)
	}
	if rows := got.Strings(); !reflect.DeepEqual(rows[1], []string{"Blue", "S2", ""}) {
		t.Errorf("row 2 = %q", rows[1])
	}
}

func TestExtractMissing(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "import.xlsx")
	outputPath := filepath.Join(dir, "output.xlsx")
	resultPath := filepath.Join(dir, "missing.xlsx")

	typesSheet := table("Types", []string{"Column1", "Column2", "styleId"},
		[]string{"", "", "styleId"},
		[]string{"", "", "mandatory"},
		[]string{"", "", "string"},
	)
	values := table("Values", []string{"styleId", "Color"},
		[]string{"S1", "Red"},
		[]string{"S2", "Blue"},
	)
	if err := workbook.WriteSheets(inputPath, typesSheet, values); err != nil {
		t.Fatal(err)
	}

	output := table("Sheet1", []string{"styleId", "AI Generated Image Flag"},
		[]string{"S1", "done"},
		[]string{"S2", ""},
	)
	if err := workbook.WriteSheets(outputPath, output); err != nil {
		t.Fatal(err)
	}

	result, err := ExtractMissing(inputPath, outputPath, resultPath, "styleId", "AI Generated Image Flag")
	if err != nil {
		t.Fatalf("ExtractMissing failed: %v", err)
	}
	if result.RowsExtracted != 1 || result.TypesRows != 3 || result.MissingCount != 1 {
		t.Errorf("result = %+v; want 1 row, 3 types rows, 1 missing", result)
	}

	wb, err := workbook.Open(resultPath)
	if err != nil {
		t.Fatal(err)
	}
	defer wb.Close()

	if names := wb.SheetNames(); !reflect.DeepEqual(names, []string{"Types", "Values"}) {
		t.Errorf("sheets = %v; want [Types Values]", names)
	}
	got, err := wb.ReadSheet("Values")
	if err != nil {
		t.Fatal(err)
	}
	if want := [][]string{{"S2", "Blue"}}; !reflect.DeepEqual(got.Strings(), want) {
		t.Errorf("Values = %q; want %q", got.Strings(), want)
	}
}

func TestExtractMissing_NothingMissing(t *testing.T) {
	dir := t.TempDir()
	outputPath := filepath.Join(dir, "output.xlsx")
	resultPath := filepath.Join(dir, "missing.xlsx")

	output := table("Sheet1", []string{"styleId", "AI Generated Image Flag"}, []string{"S1", "done"})
	if err := workbook.WriteSheets(outputPath, output); err != nil {
		t.Fatal(err)
	}

	result, err := ExtractMissing(filepath.Join(dir, "unused.xlsx"), outputPath, resultPath, "styleId", "AI Generated Image Flag")
	if err != nil {
		t.Fatalf("ExtractMissing failed: %v", err)
	}
	if result.MissingCount != 0 || result.RowsExtracted != 0 {
		t.Errorf("result = %+v; want zero counts", result)
	}
	if _, err := os.Stat(resultPath); !os.IsNotExist(err) {
		t.Error("result file written although nothing was missing")
	}
}

func TestMergeSample(t *testing.T) {
	dir := t.TempDir()
	outputPath := filepath.Join(dir, "output.xlsx")
	samplePath := filepath.Join(dir, "sample.xlsx")
	resultPath := filepath.Join(dir, "merged.xlsx")

	if err := workbook.WriteSheets(outputPath, table("Sheet1", []string{"styleId", "Color"},
		[]string{"S1", "Red"},
		[]string{"S2", "Blue"},
	)); err != nil {
		t.Fatal(err)
	}
	if err := workbook.WriteSheets(samplePath, table("Sheet1", []string{"styleId", "Color"},
		[]string{"S2", "Navy"},
	)); err != nil {
		t.Fatal(err)
	}

	result, err := MergeSample(outputPath, samplePath, resultPath, "styleId")
	if err != nil {
		t.Fatalf("MergeSample failed: %v", err)
	}
	if result.RowsUpdated != 1 || result.TotalRows != 2 {
		t.Errorf("result = %+v; want 1 updated of 2", result)
	}

	got, err := workbook.ReadFirstSheet(resultPath)
	if err != nil {
		t.Fatal(err)
	}
	if want := [][]string{{"S1", "Red"}, {"S2", "Navy"}}; !reflect.DeepEqual(got.Strings(), want) {
		t.Errorf("rows = %q; want %q", got.Strings(), want)
	}
}
