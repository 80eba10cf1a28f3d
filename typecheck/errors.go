package typecheck

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gosuda/vdraw/ast"
)

var (
	ErrNotFound        = errors.New("identifier not found")
	ErrMismatch        = errors.New("type mismatch")
	ErrDuplicate       = errors.New("duplicate declaration")
	ErrHeterogeneous   = errors.New("heterogeneous array")
	ErrMissingArgument = errors.New("missing argument")
	ErrImport          = errors.New("import failed")
	ErrMisplaced       = errors.New("statement not allowed here")
)

// Error is a type error. It names the construct that failed and, when
// relevant, the types that did not fit.
type Error struct {
	Kind      error
	Construct string
	Msg       string
	Types     []ast.Type
	Err       error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Construct)
	b.WriteString(": ")
	b.WriteString(e.Kind.Error())
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if len(e.Types) > 0 {
		names := make([]string, len(e.Types))
		for i, t := range e.Types {
			names[i] = t.String()
		}
		fmt.Fprintf(&b, " (%s)", strings.Join(names, ", "))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the error kind and any cause.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func errorf(kind error, construct string, types []ast.Type, format string, args ...any) *Error {
	return &Error{Kind: kind, Construct: construct, Types: types, Msg: fmt.Sprintf(format, args...)}
}

func notFound(construct, name string) *Error {
	return errorf(ErrNotFound, construct, nil, "%q", name)
}

func mismatch(construct string, types ...ast.Type) *Error {
	return &Error{Kind: ErrMismatch, Construct: construct, Types: types}
}
