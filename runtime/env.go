package vdruntime

import (
	"fmt"
	"sort"

	"github.com/gosuda/vdraw/ast"
	"github.com/gosuda/vdraw/geom"
)

// Env is the state of one interpreted program.
type Env struct {
	scopes  []map[string]Value
	decls   map[string]Value
	funcs   map[string]ast.FuncDecl
	imports map[string]*ast.Program
	draws   []geom.FigureArray

	// ret is set by return and cleared by the call that consumes it. While
	// it is set every statement is skipped.
	ret *Value
}

func newEnv() *Env {
	return &Env{
		scopes:  []map[string]Value{{}},
		decls:   map[string]Value{},
		funcs:   map[string]ast.FuncDecl{},
		imports: map[string]*ast.Program{},
	}
}

func (e *Env) pushScope() {
	e.scopes = append(e.scopes, map[string]Value{})
}

func (e *Env) popScope() {
	e.scopes = e.scopes[:len(e.scopes)-1]
}

func (e *Env) declare(name string, v Value) {
	e.scopes[len(e.scopes)-1][name] = v
}

// assign rebinds the innermost variable called name.
func (e *Env) assign(name string, v Value) error {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if _, ok := e.scopes[i][name]; ok {
			e.scopes[i][name] = v
			return nil
		}
	}
	return fmt.Errorf("assign %s: variable not bound", name)
}

// Lookup resolves name as an expression would: variables shadow
// declaration fields.
func (e *Env) Lookup(name string) (Value, bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if v, ok := e.scopes[i][name]; ok {
			return v, true
		}
	}
	v, ok := e.decls[name]
	return v, ok
}

// Decl returns the resolved value of a declaration field.
func (e *Env) Decl(name string) (Value, bool) {
	v, ok := e.decls[name]
	return v, ok
}

// Draws is the draw list in statement order.
func (e *Env) Draws() []geom.FigureArray {
	return append([]geom.FigureArray(nil), e.draws...)
}

// Shape unions the whole draw list into one shape.
func (e *Env) Shape() geom.FigureArray {
	var out geom.FigureArray
	for _, fa := range e.draws {
		out = out.Union(fa)
	}
	return out
}

// Globals returns the top-level variables sorted by name.
func (e *Env) Globals() []Binding {
	out := make([]Binding, 0, len(e.scopes[0]))
	for k, v := range e.scopes[0] {
		out = append(out, Binding{Name: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

type Binding struct {
	Name  string
	Value Value
}
