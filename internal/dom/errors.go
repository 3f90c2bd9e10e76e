package dom

import "errors"

// Sentinel kinds for document errors.
var (
	ErrParse     = errors.New("document parse failed")
	ErrRender    = errors.New("document render failed")
	ErrNoElement = errors.New("element not found")
	ErrAttached  = errors.New("node already attached")
)
