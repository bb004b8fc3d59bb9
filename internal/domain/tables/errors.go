package tables

import "errors"

// Sentinel kinds for table store errors.
var (
	ErrUnknownModel   = errors.New("unknown model version")
	ErrMissingSegment = errors.New("no data for this combination")
	ErrInvalidSet     = errors.New("invalid table set")
)
