package xlsx

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

// buildWorkbook creates in-memory XLSX bytes from a builder function.
func buildWorkbook(t *testing.T, build func(f *excelize.File)) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	build(f)

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("writing workbook: %v", err)
	}
	return buf.Bytes()
}

func TestParse_SingleSheet(t *testing.T) {
	data := buildWorkbook(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "Name")
		f.SetCellValue("Sheet1", "B1", "Amount")
		f.SetCellValue("Sheet1", "A2", "Widget")
		f.SetCellValue("Sheet1", "B2", 42)
	})

	doc, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if doc.Metadata.Format != "XLSX" {
		t.Errorf("unexpected format: %q", doc.Metadata.Format)
	}
	if doc.Metadata.SheetCount != 1 {
		t.Errorf("expected 1 sheet, got %d", doc.Metadata.SheetCount)
	}
	if len(doc.Metadata.SheetNames) != 1 || doc.Metadata.SheetNames[0] != "Sheet1" {
		t.Errorf("unexpected sheet names: %v", doc.Metadata.SheetNames)
	}

	tables := doc.TableBlocks()
	if len(tables) != 1 {
		t.Fatalf("expected 1 table block, got %d", len(tables))
	}
	tbl := tables[0]
	if tbl.Name != "Sheet1" {
		t.Errorf("expected table named Sheet1, got %q", tbl.Name)
	}
	if tbl.RowCount() != 2 {
		t.Fatalf("expected 2 rows, got %d", tbl.RowCount())
	}
	if tbl.Rows[0][0].Text != "Name" || tbl.Rows[1][1].Text != "42" {
		t.Errorf("unexpected cell contents: %q, %q", tbl.Rows[0][0].Text, tbl.Rows[1][1].Text)
	}
}

func TestParse_MultipleSheets(t *testing.T) {
	data := buildWorkbook(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "first")
		f.NewSheet("Summary")
		f.SetCellValue("Summary", "A1", "second")
	})

	doc, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if doc.Metadata.SheetCount != 2 {
		t.Fatalf("expected 2 sheets, got %d", doc.Metadata.SheetCount)
	}

	tables := doc.TableBlocks()
	if len(tables) != 2 {
		t.Fatalf("expected 2 table blocks, got %d", len(tables))
	}
	if tables[1].Name != "Summary" {
		t.Errorf("expected second table named Summary, got %q", tables[1].Name)
	}
	if tables[1].Rows[0][0].Text != "second" {
		t.Errorf("unexpected cell in second sheet: %q", tables[1].Rows[0][0].Text)
	}
}

func TestParse_CellFormatting(t *testing.T) {
	data := buildWorkbook(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "styled")
		styleID, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true, Size: 14, Color: "FF0000"},
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFFF00"}},
		})
		if err != nil {
			t.Fatalf("creating style: %v", err)
		}
		f.SetCellStyle("Sheet1", "A1", "A1", styleID)
	})

	doc, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	attrs := doc.TableBlocks()[0].Rows[0][0].Formatting
	if attrs.Bold == nil || !*attrs.Bold {
		t.Error("expected bold attribute")
	}
	if attrs.FontSize == nil || *attrs.FontSize != 14 {
		t.Errorf("expected size 14, got %v", attrs.FontSize)
	}
	if attrs.Color == nil || *attrs.Color != "FF0000" {
		t.Errorf("expected color FF0000, got %v", attrs.Color)
	}
	if attrs.FillColor == nil || *attrs.FillColor != "FFFF00" {
		t.Errorf("expected fill FFFF00, got %v", attrs.FillColor)
	}
}

func TestParse_UnstyledCellHasNoAttributes(t *testing.T) {
	data := buildWorkbook(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "plain")
	})

	doc, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !doc.TableBlocks()[0].Rows[0][0].Formatting.IsZero() {
		t.Error("expected all attributes unspecified for an unstyled cell")
	}
}

func TestParse_InvalidData(t *testing.T) {
	if _, err := Parse([]byte("not a workbook")); err == nil {
		t.Error("expected error for invalid workbook bytes")
	}
}
