package match

import "errors"

// ErrMissingInput is returned when the resume or job text is empty.
var ErrMissingInput = errors.New("missing input")

// InputError names the empty input. It unwraps to ErrMissingInput.
type InputError struct {
	Field string
}

func (e *InputError) Error() string {
	return e.Field + " text is empty"
}

func (e *InputError) Unwrap() error { return ErrMissingInput }
