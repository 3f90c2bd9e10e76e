package devapi

import (
	"errors"
	"fmt"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrSeed       = errors.New("seed failed")
)

// messageError carries the wording returned in {"error": ...} while keeping
// the underlying kind reachable through errors.Is.
type messageError struct {
	msg string
	err error
}

func (e *messageError) Error() string { return fmt.Sprintf("%s: %v", e.msg, e.err) }
func (e *messageError) Unwrap() error { return e.err }

func withMessage(msg string, err error) error {
	return &messageError{msg: msg, err: err}
}
