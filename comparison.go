package redline

import (
	"fmt"
	"strconv"

	"github.com/tsawler/redline/align"
	"github.com/tsawler/redline/changes"
	"github.com/tsawler/redline/formatting"
	"github.com/tsawler/redline/images"
	"github.com/tsawler/redline/model"
	"github.com/tsawler/redline/tables"
	"github.com/tsawler/redline/text"
)

// comparer runs one comparison between two normalized documents.
type comparer struct {
	options CompareOptions

	text   *text.Engine
	tables *tables.Engine
	images *images.Engine
}

func newComparer(options CompareOptions) *comparer {
	textEngine := text.NewEngine(options.textThreshold)
	imageEngine := images.NewEngine(options.imageThreshold)
	if options.recognizer != nil {
		imageEngine.SetRecognizer(options.recognizer)
	}
	return &comparer{
		options: options,
		text:    textEngine,
		tables:  tables.NewEngine(textEngine),
		images:  imageEngine,
	}
}

// compare aligns the two documents' blocks by content fingerprint,
// dispatches paired blocks to the per-kind engines, and aggregates
// everything into one categorized result.
func (c *comparer) compare(original, revised *model.Document) (*changes.Result, []changes.Warning) {
	result := changes.NewResult()
	var warnings []changes.Warning

	result.AddAll(structuralRecords(original.Metadata, revised.Metadata))
	result.AddAll(annotationRecords(original, revised))

	origLabels := blockLabels(original)
	revLabels := blockLabels(revised)

	matcher := align.NewMatcher(fingerprints(original.Blocks), fingerprints(revised.Blocks))
	for _, op := range matcher.Opcodes() {
		switch op.Tag {
		case align.OpInsert:
			for j := op.J1; j < op.J2; j++ {
				result.Add(blockRecord(changes.Added, revised.Blocks[j], revLabels[j]))
			}
		case align.OpDelete:
			for i := op.I1; i < op.I2; i++ {
				result.Add(blockRecord(changes.Deleted, original.Blocks[i], origLabels[i]))
			}
		case align.OpReplace:
			warns := c.diffReplaced(result, op, original, revised, origLabels, revLabels)
			warnings = append(warnings, warns...)
		}
	}

	result.ComputeSummary()
	return result, warnings
}

// diffReplaced pairs the i-th original block in a replace run with the
// i-th revised block. Pairs of the same kind go to that kind's engine;
// mismatched kinds and leftovers on the longer side become plain
// deletes and adds.
func (c *comparer) diffReplaced(result *changes.Result, op align.OpCode, original, revised *model.Document, origLabels, revLabels []string) []changes.Warning {
	var warnings []changes.Warning

	oldRun := original.Blocks[op.I1:op.I2]
	newRun := revised.Blocks[op.J1:op.J2]

	k := len(oldRun)
	if len(newRun) < k {
		k = len(newRun)
	}

	for x := 0; x < k; x++ {
		before, after := oldRun[x], newRun[x]
		label := origLabels[op.I1+x]

		if before.Kind() != after.Kind() {
			result.Add(blockRecord(changes.Deleted, before, label))
			result.Add(blockRecord(changes.Added, after, revLabels[op.J1+x]))
			continue
		}

		switch b := before.(type) {
		case *model.TextBlock:
			a := after.(*model.TextBlock)
			result.AddAll(c.text.Diff(b.Lines(), a.Lines(), func(int) string { return label }))
			if rec := formatting.Compare(label, b.Formatting, a.Formatting); rec != nil {
				result.Add(*rec)
			}
		case *model.TableBlock:
			recs, warns := c.tables.Diff(b, after.(*model.TableBlock), label)
			result.AddAll(recs)
			warnings = append(warnings, warns...)
		case *model.ImageBlock:
			recs, warns := c.images.Diff(b, after.(*model.ImageBlock), label)
			result.AddAll(recs)
			warnings = append(warnings, warns...)
		}
	}

	for x := k; x < len(oldRun); x++ {
		result.Add(blockRecord(changes.Deleted, oldRun[x], origLabels[op.I1+x]))
	}
	for x := k; x < len(newRun); x++ {
		result.Add(blockRecord(changes.Added, newRun[x], revLabels[op.J1+x]))
	}

	return warnings
}

// structuralRecords reports document-level differences: format, page
// count, sheet count, and renamed or added worksheets.
func structuralRecords(original, revised model.Metadata) []changes.Record {
	var recs []changes.Record

	if original.Format != revised.Format {
		recs = append(recs, changes.Record{
			Category: changes.CategoryStructural,
			Type:     changes.Modified,
			Location: "document format",
			Before:   changes.Ptr(original.Format),
			After:    changes.Ptr(revised.Format),
		})
	}

	if original.PageCount != revised.PageCount {
		recs = append(recs, changes.Record{
			Category: changes.CategoryStructural,
			Type:     changes.Modified,
			Location: "page count",
			Before:   changes.Ptr(strconv.Itoa(original.PageCount)),
			After:    changes.Ptr(strconv.Itoa(revised.PageCount)),
		})
	}

	if original.SheetCount != revised.SheetCount {
		recs = append(recs, changes.Record{
			Category: changes.CategoryStructural,
			Type:     changes.Modified,
			Location: "sheet count",
			Before:   changes.Ptr(strconv.Itoa(original.SheetCount)),
			After:    changes.Ptr(strconv.Itoa(revised.SheetCount)),
		})
	}

	origSheets := make(map[string]bool, len(original.SheetNames))
	for _, name := range original.SheetNames {
		origSheets[name] = true
	}
	revSheets := make(map[string]bool, len(revised.SheetNames))
	for _, name := range revised.SheetNames {
		revSheets[name] = true
	}
	for _, name := range original.SheetNames {
		if !revSheets[name] {
			recs = append(recs, changes.Record{
				Category: changes.CategoryStructural,
				Type:     changes.Deleted,
				Location: fmt.Sprintf("sheet %q", name),
				Before:   changes.Ptr(name),
			})
		}
	}
	for _, name := range revised.SheetNames {
		if !origSheets[name] {
			recs = append(recs, changes.Record{
				Category: changes.CategoryStructural,
				Type:     changes.Added,
				Location: fmt.Sprintf("sheet %q", name),
				After:    changes.Ptr(name),
			})
		}
	}

	return recs
}

// blockRecord builds the added or deleted record for a whole block.
func blockRecord(typ changes.Type, b model.Block, label string) changes.Record {
	rec := changes.Record{Type: typ, Location: label}

	switch blk := b.(type) {
	case *model.TextBlock:
		rec.Category = changes.CategoryText
		if typ == changes.Added {
			rec.After = changes.Ptr(blk.Text)
		} else {
			rec.Before = changes.Ptr(blk.Text)
		}
	case *model.TableBlock:
		rec.Category = changes.CategoryTable
		rec.Detail = fmt.Sprintf("table with %d rows and %d columns", blk.RowCount(), blk.ColCount())
	case *model.ImageBlock:
		rec.Category = changes.CategoryImage
		rec.Detail = fmt.Sprintf("image %dx%d", blk.Width, blk.Height)
	}

	return rec
}

// blockLabels renders a human-readable location per block, numbering
// each kind independently. Page-based formats label text blocks by
// page, flowing formats by paragraph; named tables use their name.
func blockLabels(doc *model.Document) []string {
	textLabel := "paragraph"
	if doc.Metadata.Format == "PDF" {
		textLabel = "page"
	}

	labels := make([]string, len(doc.Blocks))
	textN, tableN, imageN := 0, 0, 0
	for i, b := range doc.Blocks {
		switch blk := b.(type) {
		case *model.TextBlock:
			textN++
			labels[i] = fmt.Sprintf("%s %d", textLabel, textN)
		case *model.TableBlock:
			tableN++
			if blk.Name != "" {
				labels[i] = fmt.Sprintf("sheet %q", blk.Name)
			} else {
				labels[i] = fmt.Sprintf("table %d", tableN)
			}
		case *model.ImageBlock:
			imageN++
			labels[i] = fmt.Sprintf("image %d", imageN)
		}
	}
	return labels
}

// fingerprints collects block fingerprints for alignment.
func fingerprints(blocks []model.Block) []string {
	fps := make([]string, len(blocks))
	for i, b := range blocks {
		fps[i] = b.Fingerprint()
	}
	return fps
}
