package model

import (
	"crypto/md5"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Annotation is a PDF page annotation: a comment, highlight, free-text
// note, or similar markup attached to a page rather than to the body
// text.
type Annotation struct {
	ID         string // NM entry when the document carries one
	Page       int    // 1-based page number
	Subtype    string // Text, Highlight, StrikeOut, Underline, FreeText, ...
	Contents   string
	Author     string
	Subject    string
	Rect       []float64 // [x1, y1, x2, y2]
	QuadPoints []float64 // region for text-markup annotations
	Color      []float64 // [r, g, b] in 0..1
}

// Key returns a stable identity for matching annotations across
// document versions: the document's own NM id when present, otherwise a
// digest of page, subtype, position, and leading content.
func (a Annotation) Key() string {
	if a.ID != "" {
		return a.ID
	}
	contents := a.Contents
	if len(contents) > 64 {
		contents = contents[:64]
	}
	base := fmt.Sprintf("%d:%s:%s:%s",
		a.Page, a.Subtype, joinFloats(RoundFloats(a.Rect)), contents)
	return fmt.Sprintf("AUTO-%.5x", md5.Sum([]byte(base)))
}

// RoundFloats rounds a float list to 3 decimal places, the precision at
// which annotation geometry is considered equal. Returns nil for nil.
func RoundFloats(vals []float64) []float64 {
	if vals == nil {
		return nil
	}
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = math.Round(v*1000) / 1000
	}
	return out
}

func joinFloats(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}
