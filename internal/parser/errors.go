package parser

import (
	"errors"
	"fmt"
)

var (
	ErrEndOfFile         = errors.New("unexpected end of file")
	ErrNoProvider        = errors.New("no provider is assigned to the column")
	ErrMultipleProviders = errors.New("only one provider per column is allowed")
)

// SyntaxError wraps any error raised while parsing with the position at
// which it was detected.
type SyntaxError struct {
	Pos Position
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %s: %v", e.Pos, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

type UnexpectedTokenError struct {
	Found    string
	Expected string
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("unexpected %q, expected %s", e.Found, e.Expected)
}

type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("cannot read config %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

func unexpected(found, expected string) error {
	return &UnexpectedTokenError{Found: found, Expected: expected}
}
