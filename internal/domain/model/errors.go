package model

import "errors"

// Sentinel kinds for payload validation.
var (
	ErrEmptySkill     = errors.New("skill cannot be empty")
	ErrInvalidRequest = errors.New("invalid request")
	ErrMalformed      = errors.New("malformed response")
)
