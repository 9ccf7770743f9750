// Package xlsx provides XLSX workbook parsing into the normalized
// comparison model. Each worksheet becomes one table block named after
// the sheet, and embedded pictures become image blocks.
package xlsx

import (
	"bytes"
	"fmt"
	"image"
	"strconv"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/xuri/excelize/v2"

	"github.com/tsawler/redline/model"
)

// borderStyles maps spreadsheet border style indices to readable names.
var borderStyles = map[int]string{
	1: "thin",
	2: "medium",
	3: "dashed",
	4: "dotted",
	5: "thick",
	6: "double",
	7: "hair",
}

// Open parses an XLSX file into a normalized document.
func Open(filename string) (*model.Document, error) {
	f, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()
	return fromFile(f)
}

// Parse parses in-memory XLSX bytes into a normalized document.
func Parse(data []byte) (*model.Document, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()
	return fromFile(f)
}

func fromFile(f *excelize.File) (*model.Document, error) {
	doc := model.NewDocument("XLSX")

	sheets := f.GetSheetList()
	doc.Metadata.SheetCount = len(sheets)
	doc.Metadata.SheetNames = append(doc.Metadata.SheetNames, sheets...)

	for _, sheet := range sheets {
		tbl, err := parseSheet(f, sheet)
		if err != nil {
			return nil, fmt.Errorf("parsing sheet %q: %w", sheet, err)
		}
		doc.AddBlock(tbl)
	}

	for _, sheet := range sheets {
		imgs, err := parsePictures(f, sheet)
		if err != nil {
			return nil, fmt.Errorf("extracting pictures from %q: %w", sheet, err)
		}
		for _, img := range imgs {
			doc.AddBlock(img)
		}
	}

	return doc, nil
}

// parseSheet converts one worksheet to a table block. Rows come back
// ragged from the workbook reader; the comparison engine pads them.
func parseSheet(f *excelize.File, sheet string) (*model.TableBlock, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	tbl := &model.TableBlock{Name: sheet}
	for rowIdx, row := range rows {
		cells := make([]model.Cell, 0, len(row))
		for colIdx, value := range row {
			cell := model.Cell{Text: value}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err == nil {
				cell.Formatting = cellFormatting(f, sheet, cellName)
			}
			cells = append(cells, cell)
		}
		tbl.Rows = append(tbl.Rows, cells)
	}
	return tbl, nil
}

// cellFormatting reads a cell's resolved style. Unstyled cells keep all
// attributes unspecified.
func cellFormatting(f *excelize.File, sheet, cellName string) model.FormattingAttributes {
	var attrs model.FormattingAttributes

	styleID, err := f.GetCellStyle(sheet, cellName)
	if err != nil || styleID == 0 {
		return attrs
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return attrs
	}

	if font := style.Font; font != nil {
		if font.Family != "" {
			attrs.FontName = model.String(font.Family)
		}
		if font.Size > 0 {
			attrs.FontSize = model.Float(font.Size)
		}
		if font.Color != "" {
			attrs.Color = model.String(font.Color)
		}
		if font.Bold {
			attrs.Bold = model.Bool(true)
		}
		if font.Italic {
			attrs.Italic = model.Bool(true)
		}
		if font.Underline != "" && font.Underline != "none" {
			attrs.Underline = model.Bool(true)
		}
	}

	if style.Fill.Type == "pattern" && style.Fill.Pattern == 1 && len(style.Fill.Color) > 0 {
		attrs.FillColor = model.String(style.Fill.Color[0])
	}

	for _, b := range style.Border {
		if b.Style == 0 {
			continue
		}
		name, ok := borderStyles[b.Style]
		if !ok {
			name = strconv.Itoa(b.Style)
		}
		attrs.BorderStyle = model.String(name)
		break
	}

	return attrs
}

// parsePictures decodes pictures anchored in a worksheet. A picture
// that fails to decode still yields a block with nil pixels.
func parsePictures(f *excelize.File, sheet string) ([]*model.ImageBlock, error) {
	cells, err := f.GetPictureCells(sheet)
	if err != nil {
		return nil, err
	}

	var blocks []*model.ImageBlock
	for _, cell := range cells {
		pics, err := f.GetPictures(sheet, cell)
		if err != nil {
			continue
		}
		for _, pic := range pics {
			block := &model.ImageBlock{Data: pic.File}
			if img, _, err := image.Decode(bytes.NewReader(pic.File)); err == nil {
				block.Pixels = img
				block.Width = img.Bounds().Dx()
				block.Height = img.Bounds().Dy()
			}
			blocks = append(blocks, block)
		}
	}
	return blocks, nil
}
