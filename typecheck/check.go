// Package typecheck is the first pass over a program: it assigns every
// expression a type, builds the declaration-field signature importers rely
// on, and rejects the program at the first error.
package typecheck

import (
	"fmt"

	"github.com/gosuda/vdraw/ast"
	"github.com/gosuda/vdraw/source"
)

type checker struct {
	env    *Env
	loader *source.Loader
	path   string
}

// Check type-checks prog and returns its environment. Imports are loaded
// through ld and checked recursively as independent programs; a nil loader
// reads from the local file system.
func Check(prog *ast.Program, ld *source.Loader) (*Env, error) {
	if ld == nil {
		ld = source.NewLoader(nil)
	}
	leave, err := ld.Enter(prog.Path)
	if err != nil {
		return nil, err
	}
	defer leave()

	c := &checker{env: NewEnv(), loader: ld, path: prog.Path}
	for _, st := range prog.Decls {
		if err := c.stmt(st); err != nil {
			return nil, err
		}
	}
	for _, st := range prog.Body {
		if err := c.stmt(st); err != nil {
			return nil, err
		}
	}
	return c.env, nil
}

// CheckExpr types a standalone expression against env.
func CheckExpr(env *Env, x ast.Expr) (ast.Type, error) {
	c := &checker{env: env}
	return c.expr(x)
}

func (c *checker) stmts(list []ast.Stmt) error {
	for _, st := range list {
		if err := c.stmt(st); err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) scoped(list []ast.Stmt) error {
	c.env.pushScope()
	defer c.env.popScope()
	return c.stmts(list)
}

// bind checks that a value of type got may be stored where want is
// expected.
func bind(construct string, want, got ast.Type) error {
	if _, ok := ast.Unify(want, got); !ok {
		return mismatch(construct, want, got)
	}
	return nil
}

func (c *checker) stmt(st ast.Stmt) error {
	switch s := st.(type) {
	case ast.Decl:
		construct := "declaration " + s.Name
		if _, ok := c.env.decls[s.Name]; ok {
			return errorf(ErrDuplicate, construct, nil, "%q", s.Name)
		}
		if s.Value != nil {
			t, err := c.expr(s.Value)
			if err != nil {
				return err
			}
			if err := bind(construct, s.Type, t); err != nil {
				return err
			}
		}
		c.env.decls[s.Name] = Field{Type: s.Type, HasDefault: s.Value != nil}
		return nil

	case ast.Import:
		return c.importStmt(s)

	case ast.VarDecl:
		construct := "let " + s.Name
		t, err := c.expr(s.Value)
		if err != nil {
			return err
		}
		if err := bind(construct, s.Type, t); err != nil {
			return err
		}
		if !c.env.declare(s.Name, s.Type) {
			return errorf(ErrDuplicate, construct, nil, "%q", s.Name)
		}
		return nil

	case ast.FuncDecl:
		return c.funcDecl(s)

	case ast.Return:
		if !c.env.inFunc {
			return errorf(ErrMisplaced, "return", nil, "return outside a function")
		}
		t, err := c.expr(s.Value)
		if err != nil {
			return err
		}
		return bind("return", c.env.ret, t)

	case ast.Draw:
		t, err := c.expr(s.Shape)
		if err != nil {
			return err
		}
		if t != ast.Shape {
			return mismatch("draw", ast.Shape, t)
		}
		if s.At != nil {
			at, err := c.expr(s.At)
			if err != nil {
				return err
			}
			if at != ast.Point {
				return mismatch("draw at", ast.Point, at)
			}
		}
		return nil

	case ast.Assign:
		construct := "assign " + s.Name
		want, ok := c.env.variable(s.Name)
		if !ok {
			return notFound(construct, s.Name)
		}
		t, err := c.expr(s.Value)
		if err != nil {
			return err
		}
		return bind(construct, want, t)

	case ast.ArrayAssign:
		construct := "assign " + s.Name + "[]"
		at, ok := c.env.variable(s.Name)
		if !ok {
			return notFound(construct, s.Name)
		}
		elem, ok := at.Elem()
		if !ok {
			return errorf(ErrMismatch, construct, []ast.Type{at}, "%q is not an array", s.Name)
		}
		it, err := c.expr(s.Index)
		if err != nil {
			return err
		}
		if it != ast.Int {
			return mismatch(construct+" index", ast.Int, it)
		}
		t, err := c.expr(s.Value)
		if err != nil {
			return err
		}
		return bind(construct, elem, t)

	case ast.For:
		for _, bound := range []ast.Expr{s.From, s.To} {
			t, err := c.expr(bound)
			if err != nil {
				return err
			}
			if t != ast.Int {
				return mismatch("for "+s.Counter+" range", ast.Int, t)
			}
		}
		c.env.pushScope()
		defer c.env.popScope()
		c.env.declare(s.Counter, ast.Int)
		return c.stmts(s.Body)

	case ast.Fork:
		for _, br := range s.Branches {
			t, err := c.expr(br.Cond)
			if err != nil {
				return err
			}
			if t != ast.Bool {
				return mismatch("fork guard", ast.Bool, t)
			}
			if err := c.scoped(br.Body); err != nil {
				return err
			}
		}
		if s.HasOtherwise {
			return c.scoped(s.Otherwise)
		}
		return nil
	}
	return fmt.Errorf("typecheck: unsupported statement %T", st)
}

func (c *checker) importStmt(s ast.Import) error {
	construct := "import " + s.Name
	if _, ok := c.env.shapes[s.Name]; ok {
		return errorf(ErrDuplicate, construct, nil, "%q", s.Name)
	}
	if c.loader == nil {
		return &Error{Kind: ErrImport, Construct: construct, Msg: "imports are not available here"}
	}
	target := source.Resolve(c.path, s.Path)
	sub, err := c.loader.Load(target)
	if err != nil {
		return &Error{Kind: ErrImport, Construct: construct, Err: err}
	}
	subEnv, err := Check(sub, c.loader)
	if err != nil {
		return &Error{Kind: ErrImport, Construct: construct, Err: err}
	}
	c.env.shapes[s.Name] = subEnv.Decls()
	return nil
}

// funcDecl registers the signature first so the body may recurse, then
// checks the body with only the parameters in scope.
func (c *checker) funcDecl(s ast.FuncDecl) error {
	construct := "fn " + s.Name
	if _, ok := c.env.funcs[s.Name]; ok {
		return errorf(ErrDuplicate, construct, nil, "%q", s.Name)
	}
	sig := FuncSig{Return: s.Return}
	for _, p := range s.Params {
		sig.Params = append(sig.Params, p.Type)
	}
	c.env.funcs[s.Name] = sig

	savedScopes, savedIn, savedRet := c.env.scopes, c.env.inFunc, c.env.ret
	c.env.scopes = []map[string]ast.Type{{}}
	c.env.inFunc, c.env.ret = true, s.Return
	defer func() {
		c.env.scopes, c.env.inFunc, c.env.ret = savedScopes, savedIn, savedRet
	}()

	for _, p := range s.Params {
		if !c.env.declare(p.Name, p.Type) {
			return errorf(ErrDuplicate, construct, nil, "parameter %q", p.Name)
		}
	}
	return c.stmts(s.Body)
}
