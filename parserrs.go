package calc

import (
	"errors"
	"strconv"
)

// Kinds of input errors. Every error the package returns for bad input
// unwraps to exactly one of these, so callers that care about the kind can
// use errors.Is.
var (
	ErrUnexpectedChar   = errors.New("unexpected character")
	ErrUnknownIdent     = errors.New("unknown identifier")
	ErrMalformedNumber  = errors.New("malformed number")
	ErrMismatchedParens = errors.New("mismatched parentheses")
	ErrInvalidExpr      = errors.New("invalid expression")
	ErrDivByZero        = errors.New("division by zero")
	ErrDomain           = errors.New("argument outside domain")
	ErrNonFinite        = errors.New("non-finite result")
)

// ParseError is an error indicating a structural problem in the token
// sequence, currently only unbalanced parentheses. It implements InputError.
type ParseError struct {
	// Col is the position of the unmatched parenthesis.
	Col int
	// Err is ErrMismatchedParens.
	Err error
}

func (err *ParseError) Error() string {
	return errpos(err.Col, err.Err.Error())
}

func (err *ParseError) Unwrap() error {
	return err.Err
}

func (err *ParseError) Pos() int {
	return err.Col
}

// EvalError is an error that occurred while running RPN code. It implements
// InputError.
type EvalError struct {
	// Col is the position of the operator or function that failed, or 0 if
	// the failure is not attributable to one instruction.
	Col int
	// Msg describes the failure, e.g. "division by zero" or "invalid sqrt".
	Msg string
	// Err is the error kind, or a *DomainError for function arguments outside
	// the function's domain.
	Err error
}

func (err *EvalError) Error() string {
	return errpos(err.Col, err.Msg)
}

func (err *EvalError) Unwrap() error {
	return err.Err
}

func (err *EvalError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	if pos <= 0 {
		return msg
	}
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the rune column of the token that caused the error, or 0
	// if there is no such token.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*ParseError)(nil)
	_ InputError = (*EvalError)(nil)
)
