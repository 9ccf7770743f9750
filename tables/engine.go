// Package tables implements structural and per-cell table comparison.
//
// Rows are aligned with the same sequence alignment used for text lines,
// keyed by each row's concatenated cell text, so tie-breaking is
// consistent with the rest of the engine. Matched rows are compared
// cell by cell: text at single-line granularity, formatting field-wise.
// Ragged rows are padded with empty cells for comparison only.
package tables

import (
	"fmt"

	"github.com/tsawler/redline/align"
	"github.com/tsawler/redline/changes"
	"github.com/tsawler/redline/formatting"
	"github.com/tsawler/redline/model"
	"github.com/tsawler/redline/text"
)

// Engine compares two table blocks.
type Engine struct {
	text *text.Engine
}

// NewEngine creates a table engine that delegates cell text comparison
// to the given text engine.
func NewEngine(textEngine *text.Engine) *Engine {
	return &Engine{text: textEngine}
}

// Diff compares two tables and returns change records in row order.
// Table-structure and cell-content differences carry the table category;
// cell formatting differences carry the formatting category. loc names
// the table itself, e.g. "table 2" or a worksheet name.
func (e *Engine) Diff(original, revised *model.TableBlock, loc string) ([]changes.Record, []changes.Warning) {
	var recs []changes.Record
	var warnings []changes.Warning

	// A table that grew or shrank columns is one structural change,
	// reported separately from any per-cell records. Ragged rows within
	// a table do not count; they are handled by padding.
	if oc, rc := original.ColCount(), revised.ColCount(); oc != rc {
		recs = append(recs, changes.Record{
			Category: changes.CategoryTable,
			Type:     changes.Modified,
			Location: loc,
			Detail:   fmt.Sprintf("column count changed from %d to %d", oc, rc),
		})
	}

	aKeys := rowKeys(original.Rows)
	bKeys := rowKeys(revised.Rows)

	for _, op := range align.NewMatcher(aKeys, bKeys).Opcodes() {
		switch op.Tag {
		case align.OpEqual:
			// Same visible text; formatting or ragged width may still differ.
			for k := 0; k < op.I2-op.I1; k++ {
				rowRecs, w := e.diffRow(original.Rows[op.I1+k], revised.Rows[op.J1+k], loc, op.I1+k)
				recs = append(recs, rowRecs...)
				warnings = append(warnings, w...)
			}
		case align.OpInsert:
			for j := op.J1; j < op.J2; j++ {
				recs = append(recs, rowRecord(changes.Added, loc, j, revised.Rows[j]))
			}
		case align.OpDelete:
			for i := op.I1; i < op.I2; i++ {
				recs = append(recs, rowRecord(changes.Deleted, loc, i, original.Rows[i]))
			}
		case align.OpReplace:
			oldN, newN := op.I2-op.I1, op.J2-op.J1
			k := oldN
			if newN < k {
				k = newN
			}
			for x := 0; x < k; x++ {
				rowRecs, w := e.diffRow(original.Rows[op.I1+x], revised.Rows[op.J1+x], loc, op.I1+x)
				recs = append(recs, rowRecs...)
				warnings = append(warnings, w...)
			}
			for x := k; x < oldN; x++ {
				recs = append(recs, rowRecord(changes.Deleted, loc, op.I1+x, original.Rows[op.I1+x]))
			}
			for x := k; x < newN; x++ {
				recs = append(recs, rowRecord(changes.Added, loc, op.J1+x, revised.Rows[op.J1+x]))
			}
		}
	}

	return recs, warnings
}

// rowRecord builds a single record carrying the full row content for an
// added or deleted row; row-level changes are never decomposed into
// per-cell records.
func rowRecord(typ changes.Type, loc string, rowIdx int, row []model.Cell) changes.Record {
	rec := changes.Record{
		Category: changes.CategoryTable,
		Type:     typ,
		Location: fmt.Sprintf("%s, row %d", loc, rowIdx+1),
	}
	content := changes.Ptr(model.RowText(row))
	if typ == changes.Added {
		rec.After = content
	} else {
		rec.Before = content
	}
	return rec
}

// diffRow compares a matched row pair cell by cell, padding the shorter
// side with empty cells.
func (e *Engine) diffRow(before, after []model.Cell, loc string, rowIdx int) ([]changes.Record, []changes.Warning) {
	var recs []changes.Record
	var warnings []changes.Warning

	width := len(before)
	if len(after) > width {
		width = len(after)
	}
	if len(before) < width || len(after) < width {
		warnings = append(warnings, changes.Warning{
			Code:     changes.WarnRaggedTable,
			Message:  "row padded with empty cells for comparison",
			Location: fmt.Sprintf("%s, row %d", loc, rowIdx+1),
		})
	}
	before = padRow(before, width)
	after = padRow(after, width)

	for col := 0; col < width; col++ {
		coord := fmt.Sprintf("%s, cell %s", loc, CellName(col, rowIdx))
		recs = append(recs, e.diffCell(before[col], after[col], coord)...)
		if fr := formatting.Compare(coord, before[col].Formatting, after[col].Formatting); fr != nil {
			recs = append(recs, *fr)
		}
	}
	return recs, warnings
}

// diffCell compares the text of a single cell pair at single-line
// granularity, reusing the text engine's threshold classification but
// reporting under the table category.
func (e *Engine) diffCell(before, after model.Cell, coord string) []changes.Record {
	if before.Text == after.Text {
		return nil
	}

	var a, b []string
	if before.Text != "" {
		a = []string{before.Text}
	}
	if after.Text != "" {
		b = []string{after.Text}
	}
	recs := e.text.Diff(a, b, func(int) string { return coord })
	for i := range recs {
		recs[i].Category = changes.CategoryTable
	}
	return recs
}

func padRow(row []model.Cell, width int) []model.Cell {
	if len(row) >= width {
		return row
	}
	padded := make([]model.Cell, width)
	copy(padded, row)
	return padded
}

func rowKeys(rows [][]model.Cell) []string {
	keys := make([]string, len(rows))
	for i, row := range rows {
		keys[i] = model.RowText(row)
	}
	return keys
}

// CellName renders a 0-indexed column and row as a spreadsheet-style
// coordinate, e.g. (1, 2) -> "B3".
func CellName(col, row int) string {
	name := ""
	c := col
	for {
		name = string(rune('A'+c%26)) + name
		c = c/26 - 1
		if c < 0 {
			break
		}
	}
	return fmt.Sprintf("%s%d", name, row+1)
}
