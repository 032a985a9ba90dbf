package httperr

import "errors"

// BusinessError is a rule violation the caller can fix (400).
type BusinessError struct {
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func NewBusiness(code, message string) error {
	return BusinessError{Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// NotFoundError covers missing records and ownership mismatches alike, so a
// caller cannot tell someone else's appointment from a nonexistent one.
type NotFoundError struct {
	Code    string
	Message string
}

func (e NotFoundError) Error() string {
	return e.Code
}

func ErrNotFound(code, message string) error {
	return NotFoundError{Code: code, Message: message}
}

func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

// ErrStoreUnavailable marks failures to reach the backing store or the scope
// locker. Wrap it with %w to keep the cause.
var ErrStoreUnavailable = errors.New("store unavailable")
