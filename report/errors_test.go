package report

import (
	"errors"
	"testing"

	"github.com/nalgeon/be"
)

func TestCompileErrorFormatsOneIndexed(t *testing.T) {
	ce := Raise(ErrTypeMismatch, &TextSpan{StartLine: 4, StartCol: 7}, "Assignment type mismatch")

	be.Equal(t, ce.Error(), "Error at line 5, column 8: Assignment type mismatch")
}

func TestCompileErrorWithoutSpan(t *testing.T) {
	ce := Raise(ErrNoMain, nil, "Program must define main function")

	be.Equal(t, ce.Error(), "Program must define main function")
}

func TestRaiseFormatsArguments(t *testing.T) {
	ce := Raise(ErrUndeclaredName, nil, "Use of undeclared variable '%s'", "y")

	be.Equal(t, ce.Message, "Use of undeclared variable 'y'")
	be.Equal(t, ce.Kind, ErrUndeclaredName)
}

func TestCatchErrorConvertsPanicsToErrors(t *testing.T) {
	run := func() (err error) {
		defer CatchError(&err)
		panic(Raise(ErrLex, nil, "unexpected character"))
	}

	err := run()
	be.True(t, err != nil)
	be.Equal(t, err.(*CompileError).Kind, ErrLex)
}

func TestCatchErrorRepanicsForeignPanics(t *testing.T) {
	run := func() (err error) {
		defer func() {
			be.True(t, recover() != nil)
		}()
		defer CatchError(&err)
		panic(errors.New("not a compile error"))
	}

	run()
}

func TestSpanOver(t *testing.T) {
	start := &TextSpan{StartLine: 1, StartCol: 2, EndLine: 1, EndCol: 5}
	end := &TextSpan{StartLine: 3, StartCol: 0, EndLine: 3, EndCol: 4}

	over := NewSpanOver(start, end)
	be.Equal(t, over.StartLine, 1)
	be.Equal(t, over.StartCol, 2)
	be.Equal(t, over.EndLine, 3)
	be.Equal(t, over.EndCol, 4)
}
