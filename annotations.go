package redline

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/tsawler/redline/changes"
	"github.com/tsawler/redline/model"
	"github.com/tsawler/redline/text"
)

// annotationRecords diffs page annotations (comments, highlights,
// free-text notes) between two documents. Annotations match across
// versions by identity key, not position; an annotation present on one
// side only is added/deleted, a matched pair with differing fields is
// modified. Iteration follows document order so output is deterministic.
func annotationRecords(original, revised *model.Document) []changes.Record {
	if len(original.Annotations) == 0 && len(revised.Annotations) == 0 {
		return nil
	}

	origByKey := make(map[string]model.Annotation, len(original.Annotations))
	for _, a := range original.Annotations {
		origByKey[a.Key()] = a
	}
	revByKey := make(map[string]model.Annotation, len(revised.Annotations))
	for _, a := range revised.Annotations {
		revByKey[a.Key()] = a
	}

	var recs []changes.Record

	for _, a := range revised.Annotations {
		if _, ok := origByKey[a.Key()]; !ok {
			recs = append(recs, changes.Record{
				Category: changes.CategoryText,
				Type:     changes.Added,
				Location: annotationLocation(a),
				After:    changes.Ptr(a.Contents),
				Detail:   "annotation",
			})
		}
	}
	for _, a := range original.Annotations {
		if _, ok := revByKey[a.Key()]; !ok {
			recs = append(recs, changes.Record{
				Category: changes.CategoryText,
				Type:     changes.Deleted,
				Location: annotationLocation(a),
				Before:   changes.Ptr(a.Contents),
				Detail:   "annotation",
			})
		}
	}
	for _, before := range original.Annotations {
		after, ok := revByKey[before.Key()]
		if !ok {
			continue
		}
		if rec := diffAnnotation(before, after); rec != nil {
			recs = append(recs, *rec)
		}
	}

	return recs
}

// diffAnnotation compares a matched annotation pair field by field.
// Geometry and color compare at 3 decimal places. Returns nil when
// nothing differs.
func diffAnnotation(before, after model.Annotation) *changes.Record {
	var fields []changes.FieldDelta

	addStr := func(name, b, a string) {
		if b != a {
			fields = append(fields, changes.FieldDelta{Name: name, Before: b, After: a})
		}
	}
	addFloats := func(name string, b, a []float64) {
		if !reflect.DeepEqual(model.RoundFloats(b), model.RoundFloats(a)) {
			fields = append(fields, changes.FieldDelta{
				Name:   name,
				Before: renderFloats(b),
				After:  renderFloats(a),
			})
		}
	}

	addStr("subtype", before.Subtype, after.Subtype)
	addStr("author", before.Author, after.Author)
	addStr("subject", before.Subject, after.Subject)
	addFloats("rect", before.Rect, after.Rect)
	addFloats("quadpoints", before.QuadPoints, after.QuadPoints)
	addFloats("color", before.Color, after.Color)

	contentsChanged := before.Contents != after.Contents
	if !contentsChanged && len(fields) == 0 {
		return nil
	}

	rec := &changes.Record{
		Category: changes.CategoryText,
		Type:     changes.Modified,
		Location: annotationLocation(after),
		Detail:   "annotation",
		Fields:   fields,
	}
	if contentsChanged {
		rec.Before = changes.Ptr(before.Contents)
		rec.After = changes.Ptr(after.Contents)
		rec.AddedTerms, rec.DeletedTerms = text.TermDiff(before.Contents, after.Contents)
	}
	return rec
}

func annotationLocation(a model.Annotation) string {
	if a.Subtype != "" {
		return fmt.Sprintf("page %d annotation (%s)", a.Page, a.Subtype)
	}
	return fmt.Sprintf("page %d annotation", a.Page)
}

func renderFloats(vals []float64) string {
	if vals == nil {
		return "unset"
	}
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprintf("%g", v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
