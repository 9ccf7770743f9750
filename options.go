package redline

import (
	"fmt"

	"github.com/tsawler/redline/images"
	"github.com/tsawler/redline/text"
)

// CompareOptions holds configuration for document comparison.
type CompareOptions struct {
	// Text/cell similarity threshold in [0,1]; pairs scoring at or
	// above it are reported as modified rather than deleted+added.
	textThreshold float64

	// Image similarity threshold in [0,1]; image pairs scoring below
	// it are reported as modified.
	imageThreshold float64

	// Optional text recognizer applied to changed image pairs.
	recognizer images.Recognizer
}

// defaultOptions returns the default comparison options.
func defaultOptions() CompareOptions {
	return CompareOptions{
		textThreshold:  text.DefaultSimilarityThreshold,
		imageThreshold: images.DefaultSimilarityThreshold,
		recognizer:     nil,
	}
}

// clone creates a copy of CompareOptions.
func (o CompareOptions) clone() CompareOptions {
	return CompareOptions{
		textThreshold:  o.textThreshold,
		imageThreshold: o.imageThreshold,
		recognizer:     o.recognizer,
	}
}

// validate checks threshold ranges.
func (o CompareOptions) validate() error {
	if o.textThreshold < 0 || o.textThreshold > 1 {
		return fmt.Errorf("%w: text threshold %v", ErrInvalidThreshold, o.textThreshold)
	}
	if o.imageThreshold < 0 || o.imageThreshold > 1 {
		return fmt.Errorf("%w: image threshold %v", ErrInvalidThreshold, o.imageThreshold)
	}
	return nil
}
