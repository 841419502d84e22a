package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrNoFieldTypes is returned when the registry offers nothing to pick.
	ErrNoFieldTypes = errors.New("prompt: no field types registered")
)
