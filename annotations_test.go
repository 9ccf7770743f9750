package redline

import (
	"reflect"
	"testing"

	"github.com/tsawler/redline/changes"
	"github.com/tsawler/redline/model"
)

func annotatedDoc(annots ...model.Annotation) *model.Document {
	doc := textDoc("PDF", "body text")
	doc.Annotations = annots
	return doc
}

func TestCompare_AnnotationAddedAndDeleted(t *testing.T) {
	original := annotatedDoc(
		model.Annotation{ID: "keep", Page: 1, Subtype: "Text", Contents: "stays"},
		model.Annotation{ID: "old", Page: 1, Subtype: "Text", Contents: "removed remark"},
	)
	revised := annotatedDoc(
		model.Annotation{ID: "keep", Page: 1, Subtype: "Text", Contents: "stays"},
		model.Annotation{ID: "new", Page: 2, Subtype: "Highlight", Contents: "fresh remark"},
	)

	result, _, err := FromDocuments(original, revised).Compare()
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	if len(result.TextChanges) != 2 {
		t.Fatalf("expected 2 text changes, got %d", len(result.TextChanges))
	}

	added := result.TextChanges[0]
	if added.Type != changes.Added || added.Detail != "annotation" {
		t.Errorf("unexpected added record: %+v", added)
	}
	if added.Location != "page 2 annotation (Highlight)" {
		t.Errorf("unexpected location: %q", added.Location)
	}
	if added.After == nil || *added.After != "fresh remark" {
		t.Errorf("unexpected after: %v", added.After)
	}

	deleted := result.TextChanges[1]
	if deleted.Type != changes.Deleted || deleted.Detail != "annotation" {
		t.Errorf("unexpected deleted record: %+v", deleted)
	}
	if deleted.Before == nil || *deleted.Before != "removed remark" {
		t.Errorf("unexpected before: %v", deleted.Before)
	}

	if result.Summary.TextChangesCount != 2 {
		t.Errorf("expected annotation changes counted as text, got %+v", result.Summary)
	}
}

func TestCompare_AnnotationContentsModified(t *testing.T) {
	original := annotatedDoc(model.Annotation{ID: "n1", Page: 3, Subtype: "Text", Contents: "please fix the heading"})
	revised := annotatedDoc(model.Annotation{ID: "n1", Page: 3, Subtype: "Text", Contents: "please fix the footer"})

	result := MustCompare(FromDocuments(original, revised).Compare())
	if len(result.TextChanges) != 1 {
		t.Fatalf("expected 1 text change, got %d", len(result.TextChanges))
	}

	rec := result.TextChanges[0]
	if rec.Type != changes.Modified || rec.Detail != "annotation" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.Location != "page 3 annotation (Text)" {
		t.Errorf("unexpected location: %q", rec.Location)
	}
	if rec.Before == nil || *rec.Before != "please fix the heading" {
		t.Errorf("unexpected before: %v", rec.Before)
	}
	if rec.After == nil || *rec.After != "please fix the footer" {
		t.Errorf("unexpected after: %v", rec.After)
	}
	if !reflect.DeepEqual(rec.AddedTerms, []string{"footer"}) {
		t.Errorf("unexpected added terms: %v", rec.AddedTerms)
	}
	if !reflect.DeepEqual(rec.DeletedTerms, []string{"heading"}) {
		t.Errorf("unexpected deleted terms: %v", rec.DeletedTerms)
	}
}

func TestCompare_AnnotationFieldDeltas(t *testing.T) {
	original := annotatedDoc(model.Annotation{
		ID: "h1", Page: 1, Subtype: "Highlight",
		Rect:  []float64{10, 20, 30, 40},
		Color: []float64{1, 1, 0},
	})
	revised := annotatedDoc(model.Annotation{
		ID: "h1", Page: 1, Subtype: "Highlight",
		Rect:   []float64{15, 20, 35, 40},
		Color:  []float64{1, 1, 0},
		Author: "bob",
	})

	result := MustCompare(FromDocuments(original, revised).Compare())
	if len(result.TextChanges) != 1 {
		t.Fatalf("expected 1 text change, got %d", len(result.TextChanges))
	}

	rec := result.TextChanges[0]
	if rec.Type != changes.Modified {
		t.Fatalf("expected modified, got %s", rec.Type)
	}
	if rec.Before != nil || rec.After != nil {
		t.Errorf("contents unchanged, expected nil before/after: %+v", rec)
	}

	want := []changes.FieldDelta{
		{Name: "author", Before: "", After: "bob"},
		{Name: "rect", Before: "[10 20 30 40]", After: "[15 20 35 40]"},
	}
	if !reflect.DeepEqual(rec.Fields, want) {
		t.Errorf("unexpected field deltas: %+v", rec.Fields)
	}
}

func TestCompare_AnnotationGeometryWithinTolerance(t *testing.T) {
	original := annotatedDoc(model.Annotation{ID: "h1", Page: 1, Subtype: "Highlight", Rect: []float64{10.1231, 20, 30, 40}})
	revised := annotatedDoc(model.Annotation{ID: "h1", Page: 1, Subtype: "Highlight", Rect: []float64{10.1229, 20, 30, 40}})

	result := MustCompare(FromDocuments(original, revised).Compare())
	if !result.Empty() {
		t.Errorf("rects equal at 3 decimals, expected no changes: %+v", result.TextChanges)
	}
}

func TestCompare_AnnotationKeyFallbackMatching(t *testing.T) {
	// Without an explicit id a stable key is derived from page, subtype,
	// geometry, and contents, so an identical unnamed annotation pairs
	// with itself rather than reporting a delete plus an add.
	a := model.Annotation{Page: 1, Subtype: "Square", Rect: []float64{1, 2, 3, 4}, Contents: "boxed"}
	result := MustCompare(FromDocuments(annotatedDoc(a), annotatedDoc(a)).Compare())
	if !result.Empty() {
		t.Errorf("expected no changes, got %+v", result)
	}
}
