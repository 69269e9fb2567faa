package report

import "fmt"

// ErrorKind classifies a compile error by the phase and rule that produced it.
type ErrorKind int

// Enumeration of error kinds.
const (
	ErrLex ErrorKind = iota
	ErrParse

	ErrRedeclaration
	ErrUndeclaredName
	ErrNotCallable
	ErrInvalidAssignTarget

	ErrTypeMismatch
	ErrNonNumeric
	ErrNonBoolean
	ErrBadArgumentCount
	ErrNoMain
	ErrReturnTypeMismatch
	ErrMissingReturn

	ErrInternal
)

// CompileError is a compilation error raised by any phase of the compiler.
// The first error raised aborts compilation: there is no recovery and no
// subsequent phase runs.
type CompileError struct {
	// The kind of the error.
	Kind ErrorKind

	// The error message.
	Message string

	// The span over which the error occurs.  A nil span indicates an error
	// with no usable source position (eg. a missing `main`).
	Span *TextSpan
}

func (ce *CompileError) Error() string {
	if ce.Span == nil {
		return ce.Message
	}

	return fmt.Sprintf("Error at line %d, column %d: %s",
		ce.Span.StartLine+1, ce.Span.StartCol+1, ce.Message)
}

// Raise creates a new compile error of the given kind.
func Raise(kind ErrorKind, span *TextSpan, msg string, args ...interface{}) *CompileError {
	return &CompileError{Kind: kind, Message: fmt.Sprintf(msg, args...), Span: span}
}

// RaiseICE creates an internal compiler error.  These errors result from a bug
// or unexpected condition inside the compiler: they are not intended to ever
// fire on valid input.
func RaiseICE(msg string, args ...interface{}) *CompileError {
	return &CompileError{Kind: ErrInternal, Message: "internal error: " + fmt.Sprintf(msg, args...)}
}

// -----------------------------------------------------------------------------

// CatchError catches a compile error thrown by a `panic` during a phase of
// compilation and stores it in `err`.  Phases raise errors by panicking with a
// *CompileError so that deeply nested tree walks can fail fast without
// threading error returns through every visitor; the phase entry point
// converts the panic back into an ordinary error return.
// NB: This function must ALWAYS be deferred.
func CatchError(err *error) {
	if x := recover(); x != nil {
		if cerr, ok := x.(*CompileError); ok {
			*err = cerr
		} else {
			panic(x)
		}
	}
}
