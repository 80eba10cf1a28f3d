// Package vdruntime interprets type-checked programs into a draw list.
package vdruntime

import (
	"errors"
	"fmt"

	"github.com/gosuda/vdraw/ast"
	"github.com/gosuda/vdraw/geom"
	"github.com/gosuda/vdraw/source"
)

var (
	ErrDivideByZero         = errors.New("divide by zero")
	ErrIndexOutOfBounds     = errors.New("index out of bounds")
	ErrFunctionNotReturning = errors.New("function did not return")
	ErrMissingLines         = geom.ErrMissingLines
	ErrUnresolvedShape      = errors.New("unresolved shape")
	ErrUnresolvedDecl       = errors.New("unresolved declaration")
)

// VM runs one program. It assumes the program passed the type checker.
type VM struct {
	program   *ast.Program
	loader    *source.Loader
	overrides map[string]Value
	env       *Env
}

// New prepares a VM for program. Imports are read through ld; a nil loader
// reads from the local file system.
func New(program *ast.Program, ld *source.Loader) *VM {
	if ld == nil {
		ld = source.NewLoader(nil)
	}
	if program == nil {
		program = &ast.Program{}
	}
	return &VM{program: program, loader: ld, overrides: map[string]Value{}, env: newEnv()}
}

// SetOverride supplies the value of a declaration field, taking precedence
// over its default.
func (vm *VM) SetOverride(name string, v Value) {
	vm.overrides[name] = v
}

// Interpret runs program with the given declaration overrides.
func Interpret(program *ast.Program, ld *source.Loader, overrides map[string]Value) (*Env, error) {
	vm := New(program, ld)
	for k, v := range overrides {
		vm.SetOverride(k, v)
	}
	return vm.Run()
}

// Run resolves the declaration section and executes the body.
func (vm *VM) Run() (*Env, error) {
	vm.env = newEnv()
	for _, st := range vm.program.Decls {
		if err := vm.runDecl(st); err != nil {
			return nil, err
		}
	}
	if err := vm.runStmts(vm.program.Body); err != nil {
		return nil, err
	}
	return vm.env, nil
}

// Eval evaluates a standalone expression in the VM's current environment.
func (vm *VM) Eval(e ast.Expr) (Value, error) {
	return vm.evalExpr(e)
}

func (vm *VM) runDecl(st ast.Stmt) error {
	switch s := st.(type) {
	case ast.Decl:
		if v, ok := vm.overrides[s.Name]; ok {
			vm.env.decls[s.Name] = v
			return nil
		}
		if s.Value == nil {
			return fmt.Errorf("declaration %s: %w", s.Name, ErrUnresolvedDecl)
		}
		v, err := vm.evalExpr(s.Value)
		if err != nil {
			return fmt.Errorf("declaration %s: %w", s.Name, err)
		}
		vm.env.decls[s.Name] = v
		return nil
	case ast.Import:
		prog, err := vm.loader.Load(source.Resolve(vm.program.Path, s.Path))
		if err != nil {
			return fmt.Errorf("import %s: %w", s.Name, err)
		}
		vm.env.imports[s.Name] = prog
		return nil
	}
	return vm.runStmt(st)
}

func (vm *VM) runStmts(list []ast.Stmt) error {
	for _, st := range list {
		if vm.env.ret != nil {
			return nil
		}
		if err := vm.runStmt(st); err != nil {
			return err
		}
	}
	return nil
}

func (vm *VM) runScoped(list []ast.Stmt) error {
	vm.env.pushScope()
	defer vm.env.popScope()
	return vm.runStmts(list)
}

func (vm *VM) runStmt(st ast.Stmt) error {
	switch s := st.(type) {
	case ast.VarDecl:
		v, err := vm.evalExpr(s.Value)
		if err != nil {
			return fmt.Errorf("let %s: %w", s.Name, err)
		}
		vm.env.declare(s.Name, v)
		return nil

	case ast.FuncDecl:
		vm.env.funcs[s.Name] = s
		return nil

	case ast.Return:
		v, err := vm.evalExpr(s.Value)
		if err != nil {
			return fmt.Errorf("return: %w", err)
		}
		vm.env.ret = &v
		return nil

	case ast.Draw:
		v, err := vm.evalExpr(s.Shape)
		if err != nil {
			return fmt.Errorf("draw: %w", err)
		}
		shape := v.Shape()
		if s.At != nil {
			at, err := vm.evalExpr(s.At)
			if err != nil {
				return fmt.Errorf("draw at: %w", err)
			}
			box, err := shape.BBox()
			if err != nil {
				return fmt.Errorf("draw at: %w", err)
			}
			shape = shape.Translate(at.Point().Sub(box.TopLeft()))
		}
		vm.env.draws = append(vm.env.draws, shape)
		return nil

	case ast.Assign:
		v, err := vm.evalExpr(s.Value)
		if err != nil {
			return fmt.Errorf("assign %s: %w", s.Name, err)
		}
		return vm.env.assign(s.Name, v)

	case ast.ArrayAssign:
		cur, ok := vm.env.Lookup(s.Name)
		if !ok {
			return fmt.Errorf("assign %s: variable not bound", s.Name)
		}
		idx, err := vm.evalExpr(s.Index)
		if err != nil {
			return fmt.Errorf("assign %s[]: %w", s.Name, err)
		}
		v, err := vm.evalExpr(s.Value)
		if err != nil {
			return fmt.Errorf("assign %s[]: %w", s.Name, err)
		}
		i, err := checkIndex(s.Name, idx.Int64(), len(cur.arr))
		if err != nil {
			return err
		}
		elems := append([]Value(nil), cur.arr...)
		elems[i] = v
		return vm.env.assign(s.Name, Array(elems))

	case ast.For:
		from, err := vm.evalExpr(s.From)
		if err != nil {
			return fmt.Errorf("for %s: %w", s.Counter, err)
		}
		to, err := vm.evalExpr(s.To)
		if err != nil {
			return fmt.Errorf("for %s: %w", s.Counter, err)
		}
		for i := from.Int64(); i < to.Int64() && vm.env.ret == nil; i++ {
			vm.env.pushScope()
			vm.env.declare(s.Counter, Int(i))
			err := vm.runStmts(s.Body)
			vm.env.popScope()
			if err != nil {
				return err
			}
		}
		return nil

	case ast.Fork:
		for _, br := range s.Branches {
			cond, err := vm.evalExpr(br.Cond)
			if err != nil {
				return fmt.Errorf("fork: %w", err)
			}
			if cond.Truthy() {
				return vm.runScoped(br.Body)
			}
		}
		if s.HasOtherwise {
			return vm.runScoped(s.Otherwise)
		}
		return nil

	case ast.Decl, ast.Import:
		return vm.runDecl(st)
	}
	return fmt.Errorf("unsupported statement %T", st)
}

func checkIndex(name string, i int64, n int) (int, error) {
	if i < 0 || i >= int64(n) {
		return 0, fmt.Errorf("%s[%d] with length %d: %w", name, i, n, ErrIndexOutOfBounds)
	}
	return int(i), nil
}
