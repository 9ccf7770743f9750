// Package text implements line-level text comparison.
//
// The engine aligns two sequences of text lines and reports added,
// deleted, and modified lines as change records. A replaced line pair is
// scored by character-level similarity: at or above the configured
// threshold it is reported as a single modified record carrying both
// versions plus word-level added/deleted terms; below the threshold it
// is reported as a paired delete and add.
//
// Whitespace is not normalized; whitespace-only differences remain
// observable. Formatting is compared separately.
package text

import (
	"github.com/tsawler/redline/align"
	"github.com/tsawler/redline/changes"
)

// DefaultSimilarityThreshold is the similarity ratio at or above which a
// replaced line pair is reported as modified rather than deleted+added.
const DefaultSimilarityThreshold = 0.8

// Engine compares sequences of text lines.
type Engine struct {
	threshold float64
}

// NewEngine creates a text engine with the given similarity threshold
// in [0,1].
func NewEngine(similarityThreshold float64) *Engine {
	return &Engine{threshold: similarityThreshold}
}

// Locator renders a human-readable location for a line index. Deleted
// and modified records are located by their original-side index, added
// records by their revised-side index.
type Locator func(line int) string

// Diff compares two line sequences and returns change records in
// document order. Identical sequences produce no records.
func (e *Engine) Diff(original, revised []string, locate Locator) []changes.Record {
	var recs []changes.Record
	for _, op := range align.NewMatcher(original, revised).Opcodes() {
		switch op.Tag {
		case align.OpInsert:
			for j := op.J1; j < op.J2; j++ {
				recs = append(recs, changes.Record{
					Category: changes.CategoryText,
					Type:     changes.Added,
					Location: locate(j),
					After:    changes.Ptr(revised[j]),
				})
			}
		case align.OpDelete:
			for i := op.I1; i < op.I2; i++ {
				recs = append(recs, changes.Record{
					Category: changes.CategoryText,
					Type:     changes.Deleted,
					Location: locate(i),
					Before:   changes.Ptr(original[i]),
				})
			}
		case align.OpReplace:
			recs = append(recs, e.diffReplace(original, revised, op, locate)...)
		}
	}
	return recs
}

// diffReplace handles a replace opcode by pairing lines positionally.
// Leftover lines on the longer side become plain adds or deletes.
func (e *Engine) diffReplace(original, revised []string, op align.OpCode, locate Locator) []changes.Record {
	oldSeg := original[op.I1:op.I2]
	newSeg := revised[op.J1:op.J2]

	var recs []changes.Record
	k := len(oldSeg)
	if len(newSeg) < k {
		k = len(newSeg)
	}
	for x := 0; x < k; x++ {
		before, after := oldSeg[x], newSeg[x]
		ratio := align.StringRatio(before, after)
		if ratio >= e.threshold {
			added, deleted := TermDiff(before, after)
			recs = append(recs, changes.Record{
				Category:     changes.CategoryText,
				Type:         changes.Modified,
				Location:     locate(op.I1 + x),
				Before:       changes.Ptr(before),
				After:        changes.Ptr(after),
				Similarity:   &ratio,
				AddedTerms:   added,
				DeletedTerms: deleted,
			})
			continue
		}
		recs = append(recs,
			changes.Record{
				Category: changes.CategoryText,
				Type:     changes.Deleted,
				Location: locate(op.I1 + x),
				Before:   changes.Ptr(before),
			},
			changes.Record{
				Category: changes.CategoryText,
				Type:     changes.Added,
				Location: locate(op.J1 + x),
				After:    changes.Ptr(after),
			})
	}
	for x := k; x < len(oldSeg); x++ {
		recs = append(recs, changes.Record{
			Category: changes.CategoryText,
			Type:     changes.Deleted,
			Location: locate(op.I1 + x),
			Before:   changes.Ptr(oldSeg[x]),
		})
	}
	for x := k; x < len(newSeg); x++ {
		recs = append(recs, changes.Record{
			Category: changes.CategoryText,
			Type:     changes.Added,
			Location: locate(op.J1 + x),
			After:    changes.Ptr(newSeg[x]),
		})
	}
	return recs
}
