// Package formatting implements exact, field-wise comparison of
// formatting attributes.
//
// Differences are aggregated into one record per element listing every
// changed attribute, rather than one record per attribute. A field where
// neither side specifies a value is never a difference; a specified
// value against an unspecified one is, since it distinguishes explicit
// from inherited formatting.
package formatting

import (
	"strconv"

	"github.com/tsawler/redline/changes"
	"github.com/tsawler/redline/model"
)

// unspecified is how an absent attribute is rendered in a field delta.
const unspecified = "unspecified"

// Diff returns the list of differing attributes between two formatting
// states. The result is empty when the two are field-wise equal.
func Diff(before, after model.FormattingAttributes) []changes.FieldDelta {
	var deltas []changes.FieldDelta

	addStr := func(name string, b, a *string) {
		if b == nil && a == nil {
			return
		}
		if b != nil && a != nil && *b == *a {
			return
		}
		deltas = append(deltas, changes.FieldDelta{
			Name:   name,
			Before: renderStr(b),
			After:  renderStr(a),
		})
	}
	addBool := func(name string, b, a *bool) {
		if b == nil && a == nil {
			return
		}
		if b != nil && a != nil && *b == *a {
			return
		}
		deltas = append(deltas, changes.FieldDelta{
			Name:   name,
			Before: renderBool(b),
			After:  renderBool(a),
		})
	}

	addStr("font_name", before.FontName, after.FontName)
	if !(before.FontSize == nil && after.FontSize == nil) &&
		!(before.FontSize != nil && after.FontSize != nil && *before.FontSize == *after.FontSize) {
		deltas = append(deltas, changes.FieldDelta{
			Name:   "font_size",
			Before: renderFloat(before.FontSize),
			After:  renderFloat(after.FontSize),
		})
	}
	addStr("color", before.Color, after.Color)
	addBool("bold", before.Bold, after.Bold)
	addBool("italic", before.Italic, after.Italic)
	addBool("underline", before.Underline, after.Underline)
	addStr("border_style", before.BorderStyle, after.BorderStyle)
	addStr("fill_color", before.FillColor, after.FillColor)

	return deltas
}

// Compare compares two formatting states and returns a single aggregated
// record listing all differing fields, or nil if nothing differs.
func Compare(location string, before, after model.FormattingAttributes) *changes.Record {
	deltas := Diff(before, after)
	if len(deltas) == 0 {
		return nil
	}
	return &changes.Record{
		Category: changes.CategoryFormatting,
		Type:     changes.Modified,
		Location: location,
		Fields:   deltas,
	}
}

func renderStr(p *string) string {
	if p == nil {
		return unspecified
	}
	return *p
}

func renderBool(p *bool) string {
	if p == nil {
		return unspecified
	}
	return strconv.FormatBool(*p)
}

func renderFloat(p *float64) string {
	if p == nil {
		return unspecified
	}
	return strconv.FormatFloat(*p, 'g', -1, 64)
}
