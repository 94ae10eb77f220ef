package extract

import (
	"errors"
	"fmt"
)

var (
	// ErrExtraction marks every failure to turn a document into text.
	ErrExtraction = errors.New("text extraction failed")
	// ErrUnsupported is the cause for document types with no extractor.
	ErrUnsupported = errors.New("unsupported document type")
	// ErrEmpty is the cause when a document yields no text.
	ErrEmpty = errors.New("document contains no extractable text")
)

// Error describes a failed extraction. It matches both ErrExtraction and its cause.
type Error struct {
	MimeType string
	FileName string
	Cause    error
}

func (e *Error) Error() string {
	name := e.FileName
	if name == "" {
		name = "document"
	}
	return fmt.Sprintf("extract %s (%s): %v", name, e.MimeType, e.Cause)
}

func (e *Error) Unwrap() []error {
	return []error{ErrExtraction, e.Cause}
}
