package errcode

import (
	"errors"

	appErr "github.com/xxxsen/deltamd/internal/pkg/errors"
)

// Process exit codes used by the deltamd command.
const (
	OK = iota
	ErrUnknown
	ErrInvalid
	ErrInvalidDocument
	ErrUnsupportedFormat
	ErrConversion
	ErrSampleNotFound
	ErrPartial
)

func FromError(err error) int {
	switch {
	case err == nil:
		return OK
	case errors.Is(err, appErr.ErrInvalidDocument):
		return ErrInvalidDocument
	case errors.Is(err, appErr.ErrUnsupportedFormat):
		return ErrUnsupportedFormat
	case errors.Is(err, appErr.ErrPartialConversion):
		return ErrPartial
	case errors.Is(err, appErr.ErrConversion):
		return ErrConversion
	case errors.Is(err, appErr.ErrSampleNotFound):
		return ErrSampleNotFound
	case errors.Is(err, appErr.ErrInvalid):
		return ErrInvalid
	default:
		return ErrUnknown
	}
}
