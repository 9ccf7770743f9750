package model

import (
	"fmt"
	"strings"
)

// FormattingAttributes describes the visual formatting of an element.
// A nil field means the attribute is unspecified (inherited from a style
// or theme); an explicit value always takes part in comparison, even
// against an unspecified value on the other side.
type FormattingAttributes struct {
	FontName    *string
	FontSize    *float64
	Color       *string
	Bold        *bool
	Italic      *bool
	Underline   *bool
	BorderStyle *string
	FillColor   *string
}

// IsZero reports whether no attribute is specified.
func (f FormattingAttributes) IsZero() bool {
	return f.FontName == nil && f.FontSize == nil && f.Color == nil &&
		f.Bold == nil && f.Italic == nil && f.Underline == nil &&
		f.BorderStyle == nil && f.FillColor == nil
}

// Equal reports field-wise equality, treating nil as equal only to nil.
func (f FormattingAttributes) Equal(other FormattingAttributes) bool {
	return eqString(f.FontName, other.FontName) &&
		eqFloat(f.FontSize, other.FontSize) &&
		eqString(f.Color, other.Color) &&
		eqBool(f.Bold, other.Bold) &&
		eqBool(f.Italic, other.Italic) &&
		eqBool(f.Underline, other.Underline) &&
		eqString(f.BorderStyle, other.BorderStyle) &&
		eqString(f.FillColor, other.FillColor)
}

// key returns a canonical string rendering used in block fingerprints.
func (f FormattingAttributes) key() string {
	if f.IsZero() {
		return ""
	}
	var sb strings.Builder
	writeAttr := func(name, val string, set bool) {
		if set {
			sb.WriteString(name)
			sb.WriteString("=")
			sb.WriteString(val)
			sb.WriteString(";")
		}
	}
	writeAttr("fn", strVal(f.FontName), f.FontName != nil)
	if f.FontSize != nil {
		writeAttr("fs", fmt.Sprintf("%g", *f.FontSize), true)
	}
	writeAttr("co", strVal(f.Color), f.Color != nil)
	if f.Bold != nil {
		writeAttr("b", fmt.Sprintf("%t", *f.Bold), true)
	}
	if f.Italic != nil {
		writeAttr("i", fmt.Sprintf("%t", *f.Italic), true)
	}
	if f.Underline != nil {
		writeAttr("u", fmt.Sprintf("%t", *f.Underline), true)
	}
	writeAttr("bs", strVal(f.BorderStyle), f.BorderStyle != nil)
	writeAttr("fc", strVal(f.FillColor), f.FillColor != nil)
	return sb.String()
}

func eqString(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func eqFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func eqBool(a, b *bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// String returns a pointer to s, for building FormattingAttributes literals.
func String(s string) *string { return &s }

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }
