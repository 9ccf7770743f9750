// Package docx provides DOCX (Office Open XML) document parsing into
// the normalized comparison model.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"image"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	// Decoders for the image formats commonly embedded in DOCX files.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/tsawler/redline/model"
)

// Reader provides access to DOCX document content.
type Reader struct {
	zipReader *zip.Reader
	document  *documentXML
}

// Open opens a DOCX file for reading.
func Open(filename string) (*Reader, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return NewReader(data)
}

// NewReader creates a Reader over in-memory DOCX bytes.
func NewReader(data []byte) (*Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r := &Reader{zipReader: zr}
	if err := r.validate(); err != nil {
		return nil, err
	}
	if err := r.parseDocument(); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return r, nil
}

// Parse parses DOCX bytes into a normalized document. Block order is
// paragraphs and tables as they appear in the body, followed by
// embedded images in media-part order.
func Parse(data []byte) (*model.Document, error) {
	r, err := NewReader(data)
	if err != nil {
		return nil, err
	}
	return r.Document()
}

// validate checks that required DOCX files exist.
func (r *Reader) validate() error {
	required := []string{
		"[Content_Types].xml",
		"word/document.xml",
	}

	fileMap := make(map[string]bool)
	for _, f := range r.zipReader.File {
		fileMap[f.Name] = true
	}

	for _, name := range required {
		if !fileMap[name] {
			return fmt.Errorf("missing required file: %s", name)
		}
	}

	return nil
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	for _, f := range r.zipReader.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

// parseDocument parses the main document content.
func (r *Reader) parseDocument() error {
	data, err := r.getFileContent("word/document.xml")
	if err != nil {
		return err
	}

	r.document = &documentXML{}
	if err := xml.Unmarshal(data, r.document); err != nil {
		return fmt.Errorf("unmarshaling document.xml: %w", err)
	}
	return nil
}

// Document returns the normalized document representation.
func (r *Reader) Document() (*model.Document, error) {
	doc := model.NewDocument("DOCX")
	// DOCX has no fixed pages; the whole document counts as one page.
	doc.Metadata.PageCount = 1

	if r.document.Body != nil {
		for _, el := range r.document.Body.Elements {
			switch {
			case el.Paragraph != nil:
				tb := parseParagraph(*el.Paragraph)
				doc.AddBlock(&tb)
			case el.Table != nil:
				doc.AddBlock(parseTable(*el.Table))
			}
		}
	}

	for _, img := range r.parseImages() {
		doc.AddBlock(img)
	}

	return doc, nil
}

// parseParagraph extracts a paragraph's text and run formatting.
// Formatting is taken from the first formatted run; DOCX paragraphs
// with mixed run formatting are normalized to their leading style.
func parseParagraph(p paragraphXML) model.TextBlock {
	var sb strings.Builder
	var fmtAttrs model.FormattingAttributes
	haveFmt := false

	for _, run := range p.Runs {
		sb.WriteString(runText(run))
		if !haveFmt {
			attrs := runFormatting(run)
			if !attrs.IsZero() {
				fmtAttrs = attrs
				haveFmt = true
			}
		}
	}

	return model.TextBlock{Text: sb.String(), Formatting: fmtAttrs}
}

// runText extracts the text content of a run, including tabs and breaks.
func runText(run runXML) string {
	var parts []string
	for _, t := range run.Text {
		parts = append(parts, t.Value)
	}
	for range run.Tabs {
		parts = append(parts, "\t")
	}
	for _, br := range run.Breaks {
		if br.Type == "page" {
			parts = append(parts, "\n\n")
		} else {
			parts = append(parts, "\n")
		}
	}
	return strings.Join(parts, "")
}

// runFormatting maps run properties to formatting attributes. Absent
// properties stay nil, preserving the inherited-vs-explicit distinction.
func runFormatting(run runXML) model.FormattingAttributes {
	var attrs model.FormattingAttributes
	props := run.Properties

	if props.Bold.present() {
		attrs.Bold = model.Bool(props.Bold.enabled())
	}
	if props.Italic.present() {
		attrs.Italic = model.Bool(props.Italic.enabled())
	}
	if props.Underline.present() {
		attrs.Underline = model.Bool(props.Underline.enabled())
	}
	if props.Fonts.ASCII != "" {
		attrs.FontName = model.String(props.Fonts.ASCII)
	}
	if props.Size.Val != "" {
		// sz is expressed in half-points.
		if halfPoints, err := strconv.ParseFloat(props.Size.Val, 64); err == nil {
			attrs.FontSize = model.Float(halfPoints / 2)
		}
	}
	if props.Color.Val != "" && props.Color.Val != "auto" {
		attrs.Color = model.String(props.Color.Val)
	}

	return attrs
}

// parseTable converts a table element to a table block. Cell text joins
// the cell's paragraphs with newlines; cell formatting combines the
// first run's character formatting with the cell's fill and border.
func parseTable(tbl tableXML) *model.TableBlock {
	block := &model.TableBlock{}
	for _, row := range tbl.Rows {
		cells := make([]model.Cell, 0, len(row.Cells))
		for _, tc := range row.Cells {
			cells = append(cells, parseCell(tc))
		}
		block.Rows = append(block.Rows, cells)
	}
	return block
}

func parseCell(tc tableCellXML) model.Cell {
	var texts []string
	var attrs model.FormattingAttributes
	for i, p := range tc.Paragraphs {
		parsed := parseParagraph(p)
		texts = append(texts, parsed.Text)
		if i == 0 {
			attrs = parsed.Formatting
		}
	}

	if tc.Properties.Shading.Fill != "" && tc.Properties.Shading.Fill != "auto" {
		attrs.FillColor = model.String(tc.Properties.Shading.Fill)
	}
	if tc.Properties.Borders.Top.Val != "" {
		attrs.BorderStyle = model.String(tc.Properties.Borders.Top.Val)
	}

	return model.Cell{Text: strings.Join(texts, "\n"), Formatting: attrs}
}

// parseImages decodes embedded images from word/media. Media parts are
// visited in name order so block positions are deterministic. An image
// that fails to decode still yields a block; the comparison engine
// reports it as an error-marked record.
func (r *Reader) parseImages() []*model.ImageBlock {
	var names []string
	for _, f := range r.zipReader.File {
		if strings.HasPrefix(f.Name, "word/media/") {
			names = append(names, f.Name)
		}
	}
	sort.Strings(names)

	var blocks []*model.ImageBlock
	for _, name := range names {
		data, err := r.getFileContent(name)
		if err != nil {
			continue
		}
		block := &model.ImageBlock{Data: data}
		if img, _, err := image.Decode(bytes.NewReader(data)); err == nil {
			block.Pixels = img
			block.Width = img.Bounds().Dx()
			block.Height = img.Bounds().Dy()
		}
		blocks = append(blocks, block)
	}
	return blocks
}
