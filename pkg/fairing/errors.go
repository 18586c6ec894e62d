package fairing

import "errors"

// Generation and jettison errors. All of them are returned before any mesh
// data is allocated or any panel state changes, so callers can fix the input
// and retry.
var (
	ErrInvalidProfile    = errors.New("invalid shell profile")
	ErrInvalidPanelCount = errors.New("invalid panel count")
	ErrAlreadyJettisoned = errors.New("shell already jettisoned")
	ErrInvalidJettison   = errors.New("invalid jettison spec")
)
