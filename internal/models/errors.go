package models

import "errors"

// Registry errors.
var (
	ErrInvalidKeyword   = errors.New("keyword is empty after trimming")
	ErrDuplicateKeyword = errors.New("keyword already registered")
	ErrKeywordNotFound  = errors.New("keyword not registered")
)

// Per-line errors. These are recovered locally: the offending line is
// excluded from the result and counted in Diagnostics, never surfaced
// as a run-level failure.
var (
	ErrDateParse        = errors.New("no valid date token")
	ErrValueParse       = errors.New("no valid value token")
	ErrEmptyDescription = errors.New("empty description between date and value")
)

// Run-fatal errors. The run aborts with no partial result, since a
// partial table would misstate the grand total.
var (
	ErrEmptyDocument     = errors.New("source document contains no text")
	ErrExtractionTimeout = errors.New("extraction deadline exceeded")
)
