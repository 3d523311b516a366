package api

import "errors"

// Sentinel errors let transport layers map service failures onto status codes
// without inspecting message text.
var (
	// ErrNotFound reports a lookup for an id that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput reports a request payload the service rejected.
	ErrInvalidInput = errors.New("invalid input")
)
