package model

// Document represents a parsed document as an ordered sequence of blocks.
// Annotations are carried separately from blocks: they annotate pages,
// not body content, and are compared by identity rather than position.
type Document struct {
	Metadata    Metadata
	Blocks      []Block
	Annotations []Annotation
}

// Metadata contains document-level structural information.
type Metadata struct {
	Format     string   // Source format name (e.g. "DOCX", "XLSX", "PDF")
	PageCount  int      // Number of pages (page-based formats; 1 for flowing formats)
	SheetCount int      // Number of worksheets (spreadsheet formats)
	SheetNames []string // Worksheet names in workbook order
}

// NewDocument creates a new empty document.
func NewDocument(format string) *Document {
	return &Document{
		Metadata: Metadata{Format: format},
		Blocks:   make([]Block, 0),
	}
}

// AddBlock appends a block to the document, assigning its position.
func (d *Document) AddBlock(b Block) {
	b.setPosition(len(d.Blocks))
	d.Blocks = append(d.Blocks, b)
}

// BlockCount returns the total number of blocks.
func (d *Document) BlockCount() int {
	return len(d.Blocks)
}

// TextBlocks returns all text blocks in document order.
func (d *Document) TextBlocks() []*TextBlock {
	var out []*TextBlock
	for _, b := range d.Blocks {
		if tb, ok := b.(*TextBlock); ok {
			out = append(out, tb)
		}
	}
	return out
}

// TableBlocks returns all table blocks in document order.
func (d *Document) TableBlocks() []*TableBlock {
	var out []*TableBlock
	for _, b := range d.Blocks {
		if tb, ok := b.(*TableBlock); ok {
			out = append(out, tb)
		}
	}
	return out
}

// ImageBlocks returns all image blocks in document order.
func (d *Document) ImageBlocks() []*ImageBlock {
	var out []*ImageBlock
	for _, b := range d.Blocks {
		if ib, ok := b.(*ImageBlock); ok {
			out = append(out, ib)
		}
	}
	return out
}
