package projection

import "errors"

// Sentinel kinds for projection errors.
var (
	ErrUnsupportedSet = errors.New("table set does not support this projector")
)
