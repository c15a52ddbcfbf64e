package vibes

import (
	"errors"
	"fmt"
)

var (
	// ErrTypeMismatch marks operands or arguments of the wrong kind.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrIndexOutOfRange marks a vector component index outside 1..4.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrDivisionByZero marks a division whose divisor is exactly zero.
	ErrDivisionByZero = errors.New("division by zero")
)

// ArgError reports a bad argument passed to a builtin or an operator.
//
// The Kind sentinel can be matched via errors.Is.
type ArgError struct {
	Func    string
	Arg     int
	Kind    error
	Message string
}

func (e *ArgError) Error() string {
	if e.Func == "" {
		return fmt.Sprintf("bad argument #%d (%s)", e.Arg, e.Message)
	}
	return fmt.Sprintf("bad argument #%d to '%s' (%s)", e.Arg, e.Func, e.Message)
}

func (e *ArgError) Unwrap() error { return e.Kind }

func argTypeError(fn string, arg int, expected string, got Value) error {
	return &ArgError{
		Func:    fn,
		Arg:     arg,
		Kind:    ErrTypeMismatch,
		Message: fmt.Sprintf("expected %s, got %s", expected, got.typeName()),
	}
}

func argRangeError(fn string, arg int) error {
	return &ArgError{Func: fn, Arg: arg, Kind: ErrIndexOutOfRange, Message: "index out of range"}
}

// kindError is a plain message tagged with one of the sentinels above.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

func typeErrorf(format string, args ...any) error {
	return &kindError{kind: ErrTypeMismatch, msg: fmt.Sprintf(format, args...)}
}

func divisionByZeroError() error {
	return &kindError{kind: ErrDivisionByZero, msg: "division by zero"}
}
