package errors

import "errors"

var (
	ErrInvalid            = errors.New("invalid")
	ErrInvalidDocument    = errors.New("invalid delta document")
	ErrMalformedOp        = errors.New("malformed operation")
	ErrUnknownEmbed       = errors.New("unknown embed")
	ErrUnsupportedFormat  = errors.New("unsupported format")
	ErrConversion         = errors.New("conversion failed")
	ErrPartialConversion  = errors.New("some operations failed to convert")
	ErrSampleNotFound     = errors.New("sample not found")
	ErrInvalidAttribute   = errors.New("invalid attribute")
	ErrUnsupportedPayload = errors.New("unsupported payload")
)

func IsInvalidDocument(err error) bool {
	return errors.Is(err, ErrInvalidDocument)
}
