package domain

import "errors"

// ValidationError classifies why an identifier was rejected.
// The zero value is not a valid classification.
type ValidationError uint8

const (
	// ErrInvalidLength indicates the input is not exactly 18 code points.
	ErrInvalidLength ValidationError = iota + 1

	// ErrInvalidCharacters indicates a non-digit outside the check position,
	// or a check character that is neither a digit nor X.
	ErrInvalidCharacters

	// ErrInvalidDate indicates the birth date segment is not a real calendar date.
	ErrInvalidDate

	// ErrChecksum indicates a well-formed identifier whose weighted sum is wrong.
	ErrChecksum
)

var validationErrorCodes = map[ValidationError]string{
	ErrInvalidLength:     "invalid_length",
	ErrInvalidCharacters: "invalid_characters",
	ErrInvalidDate:       "invalid_date",
	ErrChecksum:          "checksum_error",
}

var validationErrorMessages = map[ValidationError]string{
	ErrInvalidLength:     "resident ID must be exactly 18 characters",
	ErrInvalidCharacters: "resident ID contains invalid characters",
	ErrInvalidDate:       "resident ID contains an invalid date of birth",
	ErrChecksum:          "resident ID checksum mismatch",
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if msg, ok := validationErrorMessages[e]; ok {
		return msg
	}
	return "resident ID validation failed"
}

// Code returns the stable machine-readable name of the classification.
func (e ValidationError) Code() string {
	if code, ok := validationErrorCodes[e]; ok {
		return code
	}
	return "unknown"
}

// AsValidationError extracts a ValidationError from an error chain.
func AsValidationError(err error) (ValidationError, bool) {
	var verr ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return 0, false
}
