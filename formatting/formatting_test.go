package formatting

import (
	"testing"

	"github.com/tsawler/redline/changes"
	"github.com/tsawler/redline/model"
)

func TestDiff_NoChange(t *testing.T) {
	tests := []struct {
		name          string
		before, after model.FormattingAttributes
	}{
		{"both zero", model.FormattingAttributes{}, model.FormattingAttributes{}},
		{
			"identical values",
			model.FormattingAttributes{FontName: model.String("Arial"), Bold: model.Bool(true)},
			model.FormattingAttributes{FontName: model.String("Arial"), Bold: model.Bool(true)},
		},
		{
			"unspecified on both sides",
			model.FormattingAttributes{Bold: model.Bool(true)},
			model.FormattingAttributes{Bold: model.Bool(true)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if deltas := Diff(tt.before, tt.after); len(deltas) != 0 {
				t.Errorf("expected no deltas, got %v", deltas)
			}
		})
	}
}

func TestDiff_UnspecifiedAgainstValueIsAChange(t *testing.T) {
	before := model.FormattingAttributes{}
	after := model.FormattingAttributes{Bold: model.Bool(true)}

	deltas := Diff(before, after)
	if len(deltas) != 1 {
		t.Fatalf("expected 1 delta, got %d", len(deltas))
	}
	if deltas[0].Name != "bold" {
		t.Errorf("expected bold delta, got %s", deltas[0].Name)
	}
	if deltas[0].Before != "unspecified" || deltas[0].After != "true" {
		t.Errorf("unexpected delta rendering: %+v", deltas[0])
	}
}

func TestDiff_AggregatesAllChangedFields(t *testing.T) {
	before := model.FormattingAttributes{
		FontName: model.String("Arial"),
		FontSize: model.Float(11),
		Color:    model.String("000000"),
		Bold:     model.Bool(false),
	}
	after := model.FormattingAttributes{
		FontName: model.String("Calibri"),
		FontSize: model.Float(12),
		Color:    model.String("000000"),
		Bold:     model.Bool(true),
	}

	deltas := Diff(before, after)
	if len(deltas) != 3 {
		t.Fatalf("expected 3 deltas, got %d: %v", len(deltas), deltas)
	}
	names := map[string]bool{}
	for _, d := range deltas {
		names[d.Name] = true
	}
	for _, want := range []string{"font_name", "font_size", "bold"} {
		if !names[want] {
			t.Errorf("missing delta for %s", want)
		}
	}
}

func TestCompare(t *testing.T) {
	t.Run("unchanged returns nil", func(t *testing.T) {
		rec := Compare("paragraph 0", model.FormattingAttributes{}, model.FormattingAttributes{})
		if rec != nil {
			t.Errorf("expected nil record, got %+v", rec)
		}
	})

	t.Run("one aggregated record per element", func(t *testing.T) {
		before := model.FormattingAttributes{Italic: model.Bool(false), FillColor: model.String("FFFFFF")}
		after := model.FormattingAttributes{Italic: model.Bool(true), FillColor: model.String("FF0000")}
		rec := Compare("cell B2", before, after)
		if rec == nil {
			t.Fatal("expected a record")
		}
		if rec.Category != changes.CategoryFormatting || rec.Type != changes.Modified {
			t.Errorf("unexpected category/type: %s/%s", rec.Category, rec.Type)
		}
		if rec.Location != "cell B2" {
			t.Errorf("unexpected location: %s", rec.Location)
		}
		if len(rec.Fields) != 2 {
			t.Errorf("expected 2 field deltas, got %d", len(rec.Fields))
		}
	})
}
