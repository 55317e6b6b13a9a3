package query

import (
	"errors"
	"fmt"
)

// ErrSyntax is the sentinel all parse failures unwrap to.
var ErrSyntax = errors.New("query syntax error")

// UnexpectedTokenError reports a token that does not fit the grammar at a
// byte position in the query string.
type UnexpectedTokenError struct {
	Pos      int
	Found    string
	Expected string
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("%v: unexpected %q at %d, expected %s", ErrSyntax, e.Found, e.Pos, e.Expected)
}

func (e *UnexpectedTokenError) Unwrap() error { return ErrSyntax }

// UnexpectedEndError reports a query that stops mid-construct.
type UnexpectedEndError struct {
	Expected string
}

func (e *UnexpectedEndError) Error() string {
	return fmt.Sprintf("%v: unexpected end, expected %s", ErrSyntax, e.Expected)
}

func (e *UnexpectedEndError) Unwrap() error { return ErrSyntax }

// InvalidSyntaxError reports malformed constructs that are not a matter of
// a single token, e.g. a bad slice or an uncompilable filter expression.
type InvalidSyntaxError struct {
	Msg string
}

func (e *InvalidSyntaxError) Error() string {
	return fmt.Sprintf("%v: %s", ErrSyntax, e.Msg)
}

func (e *InvalidSyntaxError) Unwrap() error { return ErrSyntax }
