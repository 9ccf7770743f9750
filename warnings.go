package redline

import "github.com/tsawler/redline/changes"

// Warning is a non-fatal issue encountered during parsing or comparison.
type Warning = changes.Warning

// FormatWarnings renders warnings one per line for display.
func FormatWarnings(warnings []Warning) string {
	return changes.FormatWarnings(warnings)
}
