package domain

import "fmt"

// ArityError reports a call with the wrong number of arguments.
type ArityError struct {
	Found    int
	Expected int
	TooMany  bool
}

func TooFewArguments(found, expected int) *ArityError {
	return &ArityError{Found: found, Expected: expected}
}

func TooManyArguments(found, expected int) *ArityError {
	return &ArityError{Found: found, Expected: expected, TooMany: true}
}

func (e *ArityError) Error() string {
	if e.TooMany {
		return fmt.Sprintf("too many arguments: got %d, expected %d", e.Found, e.Expected)
	}
	return fmt.Sprintf("too few arguments: got %d, expected %d", e.Found, e.Expected)
}
