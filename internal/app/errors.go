package app

import "errors"

var (
	// ErrInvalidInput covers malformed or missing form values.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoDocument means the session has no uploaded document yet.
	ErrNoDocument = errors.New("no document uploaded")
	// ErrEmptyDocument means the PDF parsed but yielded no extractable text.
	ErrEmptyDocument = errors.New("document has no extractable text")
	// ErrDocumentNotFound means the session references a document the store
	// no longer knows about.
	ErrDocumentNotFound = errors.New("document not found")
)
