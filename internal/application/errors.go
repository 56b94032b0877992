package application

import "errors"

// Handlers map these to HTTP status codes; wrap them with %w.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrBadRequest = errors.New("bad request")
)
