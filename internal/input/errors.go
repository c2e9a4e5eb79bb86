package input

import "fmt"

// InputError reports a structurally invalid input value.
type InputError struct {
	Input   Name
	Message string
}

// NewError builds an InputError for the named input.
func NewError(name Name, message string) *InputError {
	return &InputError{Input: name, Message: message}
}

func (e *InputError) Error() string {
	return fmt.Sprintf("Input '%s': %s", e.Input, e.Message)
}
