// Package format provides document format detection for comparison
// inputs, by filename extension or by content.
package format

import (
	"archive/zip"
	"bytes"
	"path/filepath"
	"strings"
)

// Format represents a supported document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// DOCX indicates a Microsoft Word (.docx) document.
	DOCX
	// XLSX indicates a Microsoft Excel (.xlsx) workbook.
	XLSX
	// PDF indicates a PDF document.
	PDF
	// HTML indicates an HTML document.
	HTML
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case DOCX:
		return "DOCX"
	case XLSX:
		return "XLSX"
	case PDF:
		return "PDF"
	case HTML:
		return "HTML"
	default:
		return "Unknown"
	}
}

// Detect determines format from a filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".docx":
		return DOCX
	case ".xlsx":
		return XLSX
	case ".pdf":
		return PDF
	case ".html", ".htm":
		return HTML
	default:
		return Unknown
	}
}

// FromHint maps a caller-supplied format hint (an extension or format
// name, any case) to a Format.
func FromHint(hint string) Format {
	switch strings.ToLower(strings.TrimPrefix(hint, ".")) {
	case "docx":
		return DOCX
	case "xlsx":
		return XLSX
	case "pdf":
		return PDF
	case "html", "htm":
		return HTML
	default:
		return Unknown
	}
}

// DetectFromContent inspects raw bytes to determine format. ZIP-based
// OOXML containers are distinguished by their package contents, which
// is more reliable than extension-based detection.
func DetectFromContent(data []byte) Format {
	if len(data) < 4 {
		return Unknown
	}

	// PDF magic: %PDF
	if bytes.HasPrefix(data, []byte("%PDF")) {
		return PDF
	}

	// ZIP magic: PK\x03\x04 (DOCX and XLSX are ZIP archives)
	if data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04 {
		return detectZIPFormat(data)
	}

	if detectHTMLMagic(data) {
		return HTML
	}

	return Unknown
}

// detectZIPFormat distinguishes ZIP-based OOXML formats by their
// main document part.
func detectZIPFormat(data []byte) Format {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Unknown
	}

	for _, f := range zr.File {
		switch {
		case f.Name == "word/document.xml":
			return DOCX
		case f.Name == "xl/workbook.xml":
			return XLSX
		}
	}
	return Unknown
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return false
	}

	limit := len(trimmed)
	if limit > 512 {
		limit = 512
	}
	upper := strings.ToUpper(string(trimmed[:limit]))
	if strings.HasPrefix(upper, "<!DOCTYPE HTML") {
		return true
	}
	if strings.HasPrefix(upper, "<HTML") {
		return true
	}
	// XML declaration followed by html-like content could be XHTML.
	if strings.HasPrefix(upper, "<?XML") && strings.Contains(upper, "<HTML") {
		return true
	}
	return false
}
