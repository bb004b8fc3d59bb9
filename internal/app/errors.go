package service

import (
	"errors"

	"github.com/okian/prospect/internal/domain/tables"
	"github.com/okian/prospect/internal/domain/valuation"
)

// Sentinel kinds for service errors.
var (
	ErrNotStarted    = errors.New("service not started")
	ErrBatchTooLarge = errors.New("batch too large")
	ErrEmptyBatch    = errors.New("empty batch")
)

// Error kinds as reported to metrics and API clients.
const (
	KindInvalidInput   = "invalid_input"
	KindUnknownModel   = "unknown_model"
	KindMissingSegment = "missing_segment"
	KindBatch          = "invalid_batch"
	KindUnavailable    = "unavailable"
	KindInternal       = "internal"
)

// ErrorKind classifies err into one of the Kind* constants.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, valuation.ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, tables.ErrUnknownModel):
		return KindUnknownModel
	case errors.Is(err, tables.ErrMissingSegment):
		return KindMissingSegment
	case errors.Is(err, ErrBatchTooLarge), errors.Is(err, ErrEmptyBatch):
		return KindBatch
	case errors.Is(err, ErrNotStarted):
		return KindUnavailable
	default:
		return KindInternal
	}
}
