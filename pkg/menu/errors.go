package menu

import (
	"errors"
	"fmt"
)

// ErrInvalidInput matches any *InvalidInputError.
var ErrInvalidInput = errors.New("invalid menu input")

// InvalidInputError is returned when a menu item cannot be placed in a tree,
// e.g. it has no id or shares its id with another item.
type InvalidInputError struct {
	// Index is the position of the offending item in the input.
	Index int
	// Field is the name of the offending field.
	Field string
	// Value is the rejected value (may be nil).
	Value any
	// Message describes the problem.
	Message string
}

// Error returns a human-readable error message.
func (e *InvalidInputError) Error() string {
	msg := fmt.Sprintf("invalid menu item at index %d", e.Index)
	if e.Field != "" {
		msg += " field " + e.Field
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target is ErrInvalidInput.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}
