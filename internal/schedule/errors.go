package schedule

import "errors"

// Failure kinds surfaced by the engine. Callers match with errors.Is;
// the HTTP layer maps them onto status codes.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrOutOfRange   = errors.New("time outside working hours")
	ErrConflict     = errors.New("slot already booked")
	ErrForbidden    = errors.New("forbidden")
)
