package format

import (
	"archive/zip"
	"bytes"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"report.docx", DOCX},
		{"Budget.XLSX", XLSX},
		{"scan.pdf", PDF},
		{"page.html", HTML},
		{"page.htm", HTML},
		{"archive.zip", Unknown},
		{"noextension", Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := Detect(tt.filename); got != tt.want {
				t.Errorf("Detect(%q) = %s, want %s", tt.filename, got, tt.want)
			}
		})
	}
}

func TestFromHint(t *testing.T) {
	tests := []struct {
		hint string
		want Format
	}{
		{"docx", DOCX},
		{".docx", DOCX},
		{"PDF", PDF},
		{"htm", HTML},
		{"odt", Unknown},
		{"", Unknown},
	}
	for _, tt := range tests {
		if got := FromHint(tt.hint); got != tt.want {
			t.Errorf("FromHint(%q) = %s, want %s", tt.hint, got, tt.want)
		}
	}
}

// makeZIP builds an in-memory ZIP containing the named (empty) entries.
func makeZIP(t *testing.T, names ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		if _, err := zw.Create(name); err != nil {
			t.Fatalf("creating zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}
	return buf.Bytes()
}

func TestDetectFromContent(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"pdf", []byte("%PDF-1.7\n..."), PDF},
		{"html doctype", []byte("  <!DOCTYPE html><html></html>"), HTML},
		{"html tag", []byte("<html><body></body></html>"), HTML},
		{"short data", []byte("ab"), Unknown},
		{"plain text", []byte("just some text not a document"), Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromContent(tt.data); got != tt.want {
				t.Errorf("DetectFromContent = %s, want %s", got, tt.want)
			}
		})
	}

	t.Run("docx zip", func(t *testing.T) {
		data := makeZIP(t, "[Content_Types].xml", "word/document.xml")
		if got := DetectFromContent(data); got != DOCX {
			t.Errorf("DetectFromContent = %s, want DOCX", got)
		}
	})

	t.Run("xlsx zip", func(t *testing.T) {
		data := makeZIP(t, "[Content_Types].xml", "xl/workbook.xml")
		if got := DetectFromContent(data); got != XLSX {
			t.Errorf("DetectFromContent = %s, want XLSX", got)
		}
	})

	t.Run("plain zip", func(t *testing.T) {
		data := makeZIP(t, "readme.txt")
		if got := DetectFromContent(data); got != Unknown {
			t.Errorf("DetectFromContent = %s, want Unknown", got)
		}
	})
}
