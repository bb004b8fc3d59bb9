package offers

import "errors"

// Sentinel kinds for offer errors.
var (
	ErrInvalidMOIC  = errors.New("invalid MOIC target")
	ErrInvalidStake = errors.New("invalid equity stake")
)
