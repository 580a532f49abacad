package compare

import "errors"

var (
	ErrRequiredField    = errors.New("required field")
	ErrDuplicateField   = errors.New("duplicate field")
	ErrUnknownField     = errors.New("unknown field")
	ErrComparisonLimit  = errors.New("comparison limit exceeded")
	ErrUnknownVaccine   = errors.New("unknown vaccine")
	ErrDuplicateVaccine = errors.New("duplicate vaccine selection")
	ErrUnknownLicenser  = errors.New("unknown licenser")
	ErrNoLicensers      = errors.New("vaccine has no license to compare")
	ErrUnknownSubject   = errors.New("unknown comparison subject")
	ErrSessionNotFound  = errors.New("comparison session not found")
)

// ValidationError rejects an edit of the comparison state. Message is meant
// to be shown to the user as is; Err is one of the sentinel errors above.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func reject(field string, err error, message string) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}
