// Package images implements perceptual image comparison.
//
// Matched image pairs are compared by structural similarity over
// luminance, plus a dimension check. Images of differing size are
// resized to their common minimum dimensions for scoring only; the
// resized data is never retained. Each pair is scored exactly once;
// which images form a pair is decided positionally by the block-level
// alignment, never by content search across the whole document.
package images

import (
	"fmt"

	"github.com/tsawler/redline/changes"
	"github.com/tsawler/redline/model"
	"github.com/tsawler/redline/text"
)

// DefaultSimilarityThreshold is the structural similarity score at or
// above which image content is considered unchanged.
const DefaultSimilarityThreshold = 0.95

// Recognizer extracts text from an encoded image. It is satisfied by
// the ocr package's Client; a nil Recognizer disables text extraction.
type Recognizer interface {
	RecognizeImage(data []byte) (string, error)
}

// Engine compares pairs of image blocks.
type Engine struct {
	threshold  float64
	recognizer Recognizer
}

// NewEngine creates an image engine with the given similarity threshold
// in [0,1].
func NewEngine(similarityThreshold float64) *Engine {
	return &Engine{threshold: similarityThreshold}
}

// SetRecognizer enables OCR-based text extraction on image pairs whose
// content changed, attaching the recognized-text word diff to the record.
func (e *Engine) SetRecognizer(r Recognizer) {
	e.recognizer = r
}

// Diff compares a matched image pair and returns zero or more records:
// one for a dimension change, one for a content change, or one
// error-marked record if either image could not be decoded.
func (e *Engine) Diff(original, revised *model.ImageBlock, loc string) ([]changes.Record, []changes.Warning) {
	if original.Pixels == nil || revised.Pixels == nil {
		return []changes.Record{{
				Category: changes.CategoryImage,
				Type:     changes.Modified,
				Location: loc,
				Err:      "image could not be decoded; content comparison skipped",
			}}, []changes.Warning{{
				Code:     changes.WarnImageUndecodable,
				Message:  "undecodable image data",
				Location: loc,
			}}
	}

	var recs []changes.Record
	var warnings []changes.Warning

	if original.Width != revised.Width || original.Height != revised.Height {
		recs = append(recs, changes.Record{
			Category: changes.CategoryImage,
			Type:     changes.Modified,
			Location: loc,
			Detail: fmt.Sprintf("dimensions changed from %dx%d to %dx%d",
				original.Width, original.Height, revised.Width, revised.Height),
		})
	}

	score := e.similarity(original, revised)
	if score < e.threshold {
		rec := changes.Record{
			Category:   changes.CategoryImage,
			Type:       changes.Modified,
			Location:   loc,
			Similarity: &score,
			Detail:     fmt.Sprintf("content similarity %.4f below threshold %.4f", score, e.threshold),
		}
		warnings = append(warnings, e.attachRecognizedText(&rec, original, revised, loc)...)
		recs = append(recs, rec)
	}

	return recs, warnings
}

// similarity scores the pair once, resizing both sides to their common
// minimum dimensions first.
func (e *Engine) similarity(original, revised *model.ImageBlock) float64 {
	w := original.Width
	if revised.Width < w {
		w = revised.Width
	}
	h := original.Height
	if revised.Height < h {
		h = revised.Height
	}

	a := resizeGray(toGray(original.Pixels), w, h)
	b := resizeGray(toGray(revised.Pixels), w, h)
	return SSIM(a, b)
}

// attachRecognizedText runs OCR on both sides of a changed pair and
// attaches the word-level diff of the recognized text. OCR failures
// degrade to warnings; the content record stands either way.
func (e *Engine) attachRecognizedText(rec *changes.Record, original, revised *model.ImageBlock, loc string) []changes.Warning {
	if e.recognizer == nil || len(original.Data) == 0 || len(revised.Data) == 0 {
		return nil
	}

	before, errA := e.recognizer.RecognizeImage(original.Data)
	after, errB := e.recognizer.RecognizeImage(revised.Data)
	if errA != nil || errB != nil {
		err := errA
		if err == nil {
			err = errB
		}
		return []changes.Warning{{
			Code:     changes.WarnOCRUnavailable,
			Message:  fmt.Sprintf("text recognition skipped: %v", err),
			Location: loc,
		}}
	}

	rec.AddedTerms, rec.DeletedTerms = text.TermDiff(before, after)
	return nil
}
