package model

import (
	"fmt"
	"hash/fnv"
	"image"
	"strings"
)

// BlockKind identifies the variant of a block.
type BlockKind int

const (
	BlockKindUnknown BlockKind = iota
	BlockKindText
	BlockKindTable
	BlockKindImage
)

func (k BlockKind) String() string {
	switch k {
	case BlockKindText:
		return "text"
	case BlockKindTable:
		return "table"
	case BlockKindImage:
		return "image"
	default:
		return "unknown"
	}
}

// Block is a top-level structural unit of a document: a paragraph,
// a table, or an image.
type Block interface {
	Kind() BlockKind
	// Position returns the block's index within the document.
	Position() int
	// Fingerprint returns a content-identity key used for block-level
	// alignment. Two blocks with equal fingerprints have the same kind
	// and byte-identical content.
	Fingerprint() string

	setPosition(int)
}

// TextBlock is a paragraph of text with its formatting.
type TextBlock struct {
	Text       string
	Formatting FormattingAttributes
	Index      int
}

func (b *TextBlock) Kind() BlockKind   { return BlockKindText }
func (b *TextBlock) Position() int     { return b.Index }
func (b *TextBlock) setPosition(i int) { b.Index = i }

func (b *TextBlock) Fingerprint() string {
	h := fnv.New64a()
	h.Write([]byte(b.Text))
	h.Write([]byte{0})
	h.Write([]byte(b.Formatting.key()))
	return fmt.Sprintf("text:%x", h.Sum64())
}

// Lines splits the block text into lines for line-level comparison.
func (b *TextBlock) Lines() []string {
	if b.Text == "" {
		return nil
	}
	return strings.Split(b.Text, "\n")
}

// Cell is a single table cell.
type Cell struct {
	Text       string
	Formatting FormattingAttributes
}

// TableBlock is a table of cells organized in rows. Rows may be ragged;
// the comparison engines pad short rows with empty cells, storage never does.
type TableBlock struct {
	Rows  [][]Cell
	Name  string // Optional label, e.g. worksheet name for spreadsheets
	Index int
}

func (b *TableBlock) Kind() BlockKind   { return BlockKindTable }
func (b *TableBlock) Position() int     { return b.Index }
func (b *TableBlock) setPosition(i int) { b.Index = i }

func (b *TableBlock) Fingerprint() string {
	h := fnv.New64a()
	h.Write([]byte(b.Name))
	for _, row := range b.Rows {
		for _, cell := range row {
			h.Write([]byte(cell.Text))
			h.Write([]byte{1})
			h.Write([]byte(cell.Formatting.key()))
			h.Write([]byte{2})
		}
		h.Write([]byte{3})
	}
	return fmt.Sprintf("table:%x", h.Sum64())
}

// RowCount returns the number of rows.
func (b *TableBlock) RowCount() int {
	return len(b.Rows)
}

// ColCount returns the widest row's column count.
func (b *TableBlock) ColCount() int {
	max := 0
	for _, row := range b.Rows {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

// RowText returns a tab-joined plain text rendering of a row.
func RowText(row []Cell) string {
	parts := make([]string, len(row))
	for i, c := range row {
		parts[i] = strings.ReplaceAll(c.Text, "\n", " ")
	}
	return strings.Join(parts, "\t")
}

// ImageBlock is an embedded image. Data holds the original encoded bytes;
// Pixels holds the decoded raster, or nil if decoding failed (the image
// engine reports an error-marked change record in that case).
type ImageBlock struct {
	Data   []byte
	Pixels image.Image
	Width  int
	Height int
	Index  int
}

func (b *ImageBlock) Kind() BlockKind   { return BlockKindImage }
func (b *ImageBlock) Position() int     { return b.Index }
func (b *ImageBlock) setPosition(i int) { b.Index = i }

func (b *ImageBlock) Fingerprint() string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%dx%d:", b.Width, b.Height)
	h.Write(b.Data)
	return fmt.Sprintf("image:%x", h.Sum64())
}
