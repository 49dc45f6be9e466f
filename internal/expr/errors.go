package expr

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax indicates the source is not a valid Go expression.
	ErrSyntax = errors.New("expr: syntax error")

	// ErrUnknownIdent indicates a name other than x, pi or e.
	ErrUnknownIdent = errors.New("expr: unknown identifier")

	// ErrUnknownFunc indicates a call to a function that is not registered.
	ErrUnknownFunc = errors.New("expr: unknown function")

	// ErrArity indicates a call with the wrong number of arguments.
	ErrArity = errors.New("expr: wrong number of arguments")

	// ErrExponent indicates a pow exponent that is not an integer literal.
	ErrExponent = errors.New("expr: exponent must be an integer literal")

	// ErrUnsupported indicates valid Go syntax the language does not cover.
	ErrUnsupported = errors.New("expr: unsupported construct")
)

// Error locates a compile failure in the source.
type Error struct {
	Source  string
	Offset  int
	Wrapped error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v at offset %d in %q", e.Wrapped, e.Offset, e.Source)
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}
