package typecheck

import (
	"sort"

	"github.com/gosuda/vdraw/ast"
)

// Field is one entry of a program's declaration-field signature.
type Field struct {
	Type       ast.Type
	HasDefault bool
}

// Signature maps declaration-field names to their types. It is everything an
// importer learns about an imported program.
type Signature map[string]Field

// Names returns the field names in sorted order.
func (s Signature) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Required returns the sorted names of fields without a default.
func (s Signature) Required() []string {
	var out []string
	for _, n := range s.Names() {
		if !s[n].HasDefault {
			out = append(out, n)
		}
	}
	return out
}

// FuncSig is the type of a user function.
type FuncSig struct {
	Params []ast.Type
	Return ast.Type
}

// Env is the type environment of one program. Ordinary variables live in a
// stack of scopes; declaration fields, functions and imported shapes each
// have their own flat table.
type Env struct {
	scopes []map[string]ast.Type
	decls  Signature
	funcs  map[string]FuncSig
	shapes map[string]Signature

	// inFunc is set while a function body is checked; ret is its declared
	// return type.
	inFunc bool
	ret    ast.Type
}

func NewEnv() *Env {
	return &Env{
		scopes: []map[string]ast.Type{{}},
		decls:  Signature{},
		funcs:  map[string]FuncSig{},
		shapes: map[string]Signature{},
	}
}

func (e *Env) pushScope() {
	e.scopes = append(e.scopes, map[string]ast.Type{})
}

func (e *Env) popScope() {
	e.scopes = e.scopes[:len(e.scopes)-1]
}

// declare binds name in the innermost scope. It reports false when the name
// is already taken in that scope.
func (e *Env) declare(name string, t ast.Type) bool {
	cur := e.scopes[len(e.scopes)-1]
	if _, ok := cur[name]; ok {
		return false
	}
	cur[name] = t
	return true
}

// variable looks a name up through the scope stack, innermost first.
func (e *Env) variable(name string) (ast.Type, bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if t, ok := e.scopes[i][name]; ok {
			return t, true
		}
	}
	return ast.Invalid, false
}

// Lookup resolves a name as an expression would: variables first, then
// declaration fields (which are hidden inside function bodies).
func (e *Env) Lookup(name string) (ast.Type, bool) {
	if t, ok := e.variable(name); ok {
		return t, true
	}
	if e.inFunc {
		return ast.Invalid, false
	}
	if f, ok := e.decls[name]; ok {
		return f.Type, true
	}
	return ast.Invalid, false
}

// Decls is the declaration-field signature of the checked program.
func (e *Env) Decls() Signature {
	out := make(Signature, len(e.decls))
	for k, v := range e.decls {
		out[k] = v
	}
	return out
}

func (e *Env) Func(name string) (FuncSig, bool) {
	f, ok := e.funcs[name]
	return f, ok
}

// Shape returns the signature registered for an import alias.
func (e *Env) Shape(alias string) (Signature, bool) {
	s, ok := e.shapes[alias]
	return s, ok
}

// Globals returns the variables bound in the outermost scope.
func (e *Env) Globals() map[string]ast.Type {
	out := make(map[string]ast.Type, len(e.scopes[0]))
	for k, v := range e.scopes[0] {
		out[k] = v
	}
	return out
}
