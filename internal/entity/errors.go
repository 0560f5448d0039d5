package entity

import "errors"

// Domain errors shared across the builder and the query surface.
var (
	ErrNotFound        = errors.New("dictionary element not found")
	ErrUnknownLanguage = errors.New("unknown language")
	ErrInvalidWord     = errors.New("invalid word")
	ErrCorruptDump     = errors.New("corrupt dictionary dump")
)
