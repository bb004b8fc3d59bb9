package tier

import "errors"

// Sentinel kinds for tier errors.
var (
	ErrRankOutOfRange   = errors.New("rank out of range")
	ErrInvalidPartition = errors.New("invalid tier partition")
)
