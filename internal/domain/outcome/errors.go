package outcome

import "errors"

// Sentinel kinds for outcome errors.
var (
	ErrEmptySample    = errors.New("empty earnings sample")
	ErrUnsortedSample = errors.New("earnings sample not sorted ascending")
)
