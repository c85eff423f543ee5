package engine

import "fmt"

// #region invalid-input

// InvalidInputError reports a required field that is missing or not of the
// expected type. Required readings are never guessed.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid input: %s", e.Reason)
	}
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

// #endregion invalid-input
