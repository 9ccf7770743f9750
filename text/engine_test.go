package text

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/tsawler/redline/changes"
)

func lineLoc(i int) string { return fmt.Sprintf("line %d", i) }

func TestDiff_Identical(t *testing.T) {
	e := NewEngine(DefaultSimilarityThreshold)
	lines := []string{"alpha", "beta", "gamma"}
	if recs := e.Diff(lines, lines, lineLoc); len(recs) != 0 {
		t.Errorf("expected no records for identical input, got %d", len(recs))
	}
}

func TestDiff_EmptyToNonEmpty(t *testing.T) {
	e := NewEngine(DefaultSimilarityThreshold)
	recs := e.Diff(nil, []string{"one", "two"}, lineLoc)
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	for i, r := range recs {
		if r.Type != changes.Added {
			t.Errorf("record %d: expected added, got %s", i, r.Type)
		}
		if r.Before != nil {
			t.Errorf("record %d: added record must not carry a before value", i)
		}
	}
}

func TestDiff_NonEmptyToEmpty(t *testing.T) {
	e := NewEngine(DefaultSimilarityThreshold)
	recs := e.Diff([]string{"one", "two"}, nil, lineLoc)
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	for i, r := range recs {
		if r.Type != changes.Deleted {
			t.Errorf("record %d: expected deleted, got %s", i, r.Type)
		}
		if r.After != nil {
			t.Errorf("record %d: deleted record must not carry an after value", i)
		}
	}
}

func TestDiff_ThresholdBoundary(t *testing.T) {
	// "abcde" vs "abcdX" has ratio exactly 0.8 (2*4/10).
	e := NewEngine(0.8)

	t.Run("ratio equal to threshold is modified", func(t *testing.T) {
		recs := e.Diff([]string{"abcde"}, []string{"abcdX"}, lineLoc)
		if len(recs) != 1 {
			t.Fatalf("expected 1 record, got %d", len(recs))
		}
		if recs[0].Type != changes.Modified {
			t.Errorf("expected modified, got %s", recs[0].Type)
		}
		if recs[0].Similarity == nil || *recs[0].Similarity != 0.8 {
			t.Errorf("expected similarity 0.8, got %v", recs[0].Similarity)
		}
	})

	t.Run("ratio below threshold is delete plus add", func(t *testing.T) {
		// "abcde" vs "abcXY" has ratio 0.6.
		recs := e.Diff([]string{"abcde"}, []string{"abcXY"}, lineLoc)
		if len(recs) != 2 {
			t.Fatalf("expected 2 records, got %d", len(recs))
		}
		if recs[0].Type != changes.Deleted || recs[1].Type != changes.Added {
			t.Errorf("expected deleted then added, got %s then %s", recs[0].Type, recs[1].Type)
		}
	})
}

func TestDiff_ModifiedCarriesBothVersionsAndTerms(t *testing.T) {
	e := NewEngine(0.8)
	recs := e.Diff(
		[]string{"The quick brown fox"},
		[]string{"The quick red fox"},
		lineLoc,
	)
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	r := recs[0]
	if r.Type != changes.Modified {
		t.Fatalf("expected modified, got %s", r.Type)
	}
	if r.Before == nil || *r.Before != "The quick brown fox" {
		t.Errorf("unexpected before: %v", r.Before)
	}
	if r.After == nil || *r.After != "The quick red fox" {
		t.Errorf("unexpected after: %v", r.After)
	}
	if !reflect.DeepEqual(r.AddedTerms, []string{"red"}) {
		t.Errorf("AddedTerms = %v, want [red]", r.AddedTerms)
	}
	if !reflect.DeepEqual(r.DeletedTerms, []string{"brown"}) {
		t.Errorf("DeletedTerms = %v, want [brown]", r.DeletedTerms)
	}
}

func TestDiff_ReplaceWithLeftoverLines(t *testing.T) {
	e := NewEngine(0.8)
	// Two dissimilar lines replaced by one: the pair becomes delete+add,
	// the leftover line a plain delete.
	recs := e.Diff([]string{"aaaa", "bbbb"}, []string{"cccc"}, lineLoc)
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	types := []changes.Type{recs[0].Type, recs[1].Type, recs[2].Type}
	want := []changes.Type{changes.Deleted, changes.Added, changes.Deleted}
	if !reflect.DeepEqual(types, want) {
		t.Errorf("record types = %v, want %v", types, want)
	}
}

func TestDiff_WhitespaceOnlyDifferenceIsReported(t *testing.T) {
	e := NewEngine(0.8)
	recs := e.Diff([]string{"a  b"}, []string{"a b"}, lineLoc)
	if len(recs) != 1 {
		t.Fatalf("expected whitespace-only difference to be reported, got %d records", len(recs))
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Hello, world!", []string{"Hello", ",", " ", "world", "!"}},
		{"a  b", []string{"a", "  ", "b"}},
		{"", nil},
		{"3.14", []string{"3", ".", "14"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Tokenize(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTermDiff(t *testing.T) {
	added, deleted := TermDiff("pay net 30 days", "pay net 45 days")
	if !reflect.DeepEqual(added, []string{"45"}) {
		t.Errorf("added = %v, want [45]", added)
	}
	if !reflect.DeepEqual(deleted, []string{"30"}) {
		t.Errorf("deleted = %v, want [30]", deleted)
	}
}
