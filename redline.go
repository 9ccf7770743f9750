// Package redline provides a fluent API for detecting changes between
// two versions of a document. It parses DOCX, XLSX, PDF, and HTML files
// into a normalized model and reports text, formatting, table, image,
// and structural differences as categorized change records.
//
// Basic usage:
//
//	result, warnings, err := redline.Open("contract_v1.docx", "contract_v2.docx").Compare()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", redline.FormatWarnings(warnings))
//	}
//	fmt.Println(result.Summary.TotalChanges)
//
// With options:
//
//	result, _, err := redline.Open("old.pdf", "new.pdf").
//	    Threshold(0.9).
//	    ImageThreshold(0.98).
//	    Compare()
//
// For advanced use cases, the lower-level engine packages are also
// available.
package redline

import (
	"fmt"
	"os"

	"github.com/tsawler/redline/changes"
	"github.com/tsawler/redline/docx"
	"github.com/tsawler/redline/format"
	"github.com/tsawler/redline/htmldoc"
	"github.com/tsawler/redline/images"
	"github.com/tsawler/redline/model"
	"github.com/tsawler/redline/pdfdoc"
	"github.com/tsawler/redline/xlsx"
)

// Comparator provides a fluent interface for comparing two document
// versions. Each configuration method returns a new Comparator
// instance, making it safe for concurrent use and allowing method
// chaining.
type Comparator struct {
	// Sources; either filenames or already-parsed documents.
	originalPath string
	revisedPath  string
	original     *model.Document
	revised      *model.Document

	options CompareOptions

	// Accumulated error (fail-fast)
	err error
}

// Open prepares a comparison of two document files. Parsing is deferred
// until Compare is called.
//
// Example:
//
//	result, warnings, err := redline.Open("old.docx", "new.docx").Compare()
func Open(originalFile, revisedFile string) *Comparator {
	return &Comparator{
		originalPath: originalFile,
		revisedPath:  revisedFile,
		options:      defaultOptions(),
	}
}

// FromDocuments prepares a comparison of two already-parsed documents.
// This is useful when the same document participates in several
// comparisons, or when documents come from a custom parser.
func FromDocuments(original, revised *model.Document) *Comparator {
	c := &Comparator{
		original: original,
		revised:  revised,
		options:  defaultOptions(),
	}
	if original == nil || revised == nil {
		c.err = fmt.Errorf("both documents must be non-nil")
	}
	return c
}

// clone creates a copy of the Comparator so chain methods never mutate
// their receiver.
func (c *Comparator) clone() *Comparator {
	return &Comparator{
		originalPath: c.originalPath,
		revisedPath:  c.revisedPath,
		original:     c.original,
		revised:      c.revised,
		options:      c.options.clone(),
		err:          c.err,
	}
}

// Threshold sets the text similarity threshold in [0,1]. Replaced text
// pairs scoring at or above it are reported as a single modified record;
// below it, as a paired delete and add. The default is 0.8.
func (c *Comparator) Threshold(t float64) *Comparator {
	nc := c.clone()
	nc.options.textThreshold = t
	return nc
}

// ImageThreshold sets the image similarity threshold in [0,1]. Image
// pairs scoring below it are reported as modified. The default is 0.95.
func (c *Comparator) ImageThreshold(t float64) *Comparator {
	nc := c.clone()
	nc.options.imageThreshold = t
	return nc
}

// WithRecognizer attaches a text recognizer. When set, changed image
// pairs additionally carry word-level differences between their
// recognized texts.
func (c *Comparator) WithRecognizer(r images.Recognizer) *Comparator {
	nc := c.clone()
	nc.options.recognizer = r
	return nc
}

// Compare runs the comparison and returns the categorized result.
// Warnings report non-fatal issues (undecodable images, padded table
// rows); they never suppress change records.
func (c *Comparator) Compare() (*changes.Result, []Warning, error) {
	if c.err != nil {
		return nil, nil, c.err
	}
	if err := c.options.validate(); err != nil {
		return nil, nil, err
	}

	original, revised := c.original, c.revised
	if original == nil {
		var err error
		if original, err = ParseFile(c.originalPath); err != nil {
			return nil, nil, fmt.Errorf("parsing %s: %w", c.originalPath, err)
		}
		if revised, err = ParseFile(c.revisedPath); err != nil {
			return nil, nil, fmt.Errorf("parsing %s: %w", c.revisedPath, err)
		}
	}

	result, warnings := newComparer(c.options).compare(original, revised)
	return result, warnings, nil
}

// ParseFile parses a document file into the normalized model. The
// format is detected from the filename extension, falling back to
// content sniffing.
func ParseFile(filename string) (*model.Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	f := format.Detect(filename)
	if f == format.Unknown {
		f = format.DetectFromContent(data)
	}
	return parseAs(data, f)
}

// ParseBytes parses in-memory document bytes. The hint names the format
// ("docx", "xlsx", "pdf", "html"); when empty, the format is sniffed
// from the content.
func ParseBytes(data []byte, hint string) (*model.Document, error) {
	f := format.FromHint(hint)
	if f == format.Unknown {
		f = format.DetectFromContent(data)
	}
	return parseAs(data, f)
}

func parseAs(data []byte, f format.Format) (*model.Document, error) {
	var doc *model.Document
	var err error

	switch f {
	case format.DOCX:
		doc, err = docx.Parse(data)
	case format.XLSX:
		doc, err = xlsx.Parse(data)
	case format.PDF:
		doc, err = pdfdoc.Parse(data)
	case format.HTML:
		doc, err = htmldoc.Parse(data)
	default:
		return nil, ErrUnsupportedFormat
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %s document: %v", ErrCorruptDocument, f, err)
	}
	return doc, nil
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustCompare wraps a call to Compare and panics on error, discarding
// warnings. It is intended for scripts and tests.
func MustCompare(result *changes.Result, _ []Warning, err error) *changes.Result {
	if err != nil {
		panic(err)
	}
	return result
}
