package changes

import (
	"fmt"
	"strings"
)

// WarningCode identifies a class of non-fatal comparison issue.
type WarningCode string

const (
	// WarnImageUndecodable indicates an image could not be decoded for
	// content comparison.
	WarnImageUndecodable WarningCode = "image_undecodable"
	// WarnOCRUnavailable indicates OCR was requested but is not compiled
	// in or failed for a specific image.
	WarnOCRUnavailable WarningCode = "ocr_unavailable"
	// WarnRaggedTable indicates a table required empty-cell padding.
	WarnRaggedTable WarningCode = "ragged_table"
)

// Warning is a non-fatal issue encountered during comparison. Warnings
// never suppress change records; they add context for the caller.
type Warning struct {
	Code     WarningCode
	Message  string
	Location string
}

func (w Warning) String() string {
	if w.Location != "" {
		return fmt.Sprintf("[%s] %s: %s", w.Code, w.Location, w.Message)
	}
	return fmt.Sprintf("[%s] %s", w.Code, w.Message)
}

// FormatWarnings renders warnings one per line for display.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
