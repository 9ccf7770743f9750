// Package pdfdoc provides PDF text extraction into the normalized
// comparison model. Each page becomes one text block so that changes
// report against page numbers.
package pdfdoc

import (
	"bytes"
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/redline/model"
)

// Open parses a PDF file into a normalized document.
func Open(filename string) (*model.Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return Parse(data)
}

// Parse parses in-memory PDF bytes into a normalized document. Pages
// whose content streams cannot be decoded become empty text blocks so
// page positions stay aligned between document versions.
func Parse(data []byte) (doc *model.Document, err error) {
	// The underlying parser panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("parsing PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parsing PDF: %w", err)
	}

	doc = model.NewDocument("PDF")
	doc.Metadata.PageCount = reader.NumPage()

	for n := 1; n <= reader.NumPage(); n++ {
		doc.AddBlock(&model.TextBlock{Text: pageText(reader, n)})
		doc.Annotations = append(doc.Annotations, pageAnnotations(reader, n)...)
	}

	return doc, nil
}

func pageText(reader *pdf.Reader, pageNum int) string {
	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return ""
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}

// pageAnnotations walks a page's Annots array into annotation entries.
func pageAnnotations(reader *pdf.Reader, pageNum int) []model.Annotation {
	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return nil
	}

	annots := page.V.Key("Annots")
	if annots.Kind() != pdf.Array {
		return nil
	}

	var out []model.Annotation
	for i := 0; i < annots.Len(); i++ {
		annot := annots.Index(i)
		if annot.IsNull() {
			continue
		}
		subtype := annot.Key("Subtype")
		if subtype.IsNull() {
			continue
		}

		out = append(out, model.Annotation{
			ID:         annot.Key("NM").Text(),
			Page:       pageNum,
			Subtype:    subtype.Name(),
			Contents:   annot.Key("Contents").Text(),
			Author:     annot.Key("T").Text(),
			Subject:    annot.Key("Subj").Text(),
			Rect:       floatList(annot.Key("Rect")),
			QuadPoints: floatList(annot.Key("QuadPoints")),
			Color:      floatList(annot.Key("C")),
		})
	}
	return out
}

func floatList(v pdf.Value) []float64 {
	if v.Kind() != pdf.Array {
		return nil
	}
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.Index(i).Float64()
	}
	return out
}
