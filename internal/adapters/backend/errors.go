package backend

import (
	"errors"
	"fmt"
)

// Sentinel kinds for backend errors. Every error returned by Client matches
// exactly one of them through errors.Is.
var (
	ErrTransport   = errors.New("backend unreachable")
	ErrStatus      = errors.New("backend returned an error status")
	ErrDecode      = errors.New("backend response could not be decoded")
	ErrCircuitOpen = errors.New("backend circuit open")
	ErrRequest     = errors.New("backend request could not be built")
	ErrCanceled    = errors.New("backend call abandoned by caller")
)

// Error describes a failed backend call.
type Error struct {
	Op     string // client operation, e.g. "list_projects"
	Kind   error  // one of the sentinel kinds above
	Status int    // HTTP status when Kind is ErrStatus
	Err    error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Kind.Error()
	if e.Status != 0 {
		msg += fmt.Sprintf(" (%d)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is/As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// WrapKind builds an *Error for op with the given kind and cause.
func WrapKind(op string, kind, err error) error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// KindOf returns the short metric label of a backend error kind.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrCircuitOpen):
		return "circuit_open"
	case errors.Is(err, ErrCanceled):
		return "canceled"
	case errors.Is(err, ErrTransport):
		return "transport"
	case errors.Is(err, ErrStatus):
		return "status"
	case errors.Is(err, ErrDecode):
		return "decode"
	case errors.Is(err, ErrRequest):
		return "request"
	default:
		return "unknown"
	}
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var be *Error
	if errors.As(err, &be) {
		return be.Status
	}
	return 0
}
