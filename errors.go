package redline

import "errors"

var (
	// ErrUnsupportedFormat is returned when a document's format cannot
	// be determined or has no parser.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrCorruptDocument is returned when a document's format was
	// recognized but its content could not be parsed.
	ErrCorruptDocument = errors.New("corrupt document")

	// ErrInvalidThreshold is returned when a similarity threshold is
	// outside [0, 1].
	ErrInvalidThreshold = errors.New("similarity threshold must be between 0 and 1")
)
