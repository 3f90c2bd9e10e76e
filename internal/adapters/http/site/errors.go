package site

import "errors"

// Sentinel kinds for page server errors.
var (
	ErrTemplate   = errors.New("page template unavailable")
	ErrServe      = errors.New("page serve failed")
	ErrBadRequest = errors.New("bad request")
)
