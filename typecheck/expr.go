package typecheck

import (
	"fmt"

	"github.com/gosuda/vdraw/ast"
)

var memberTypes = map[ast.Type]map[string]ast.Type{
	ast.Point: {"x": ast.Float, "y": ast.Float},
	ast.Color: {"r": ast.Int, "g": ast.Int, "b": ast.Int, "a": ast.Int},
	ast.Shape: {
		"width":    ast.Float,
		"height":   ast.Float,
		"center":   ast.Point,
		"top_left": ast.Point,
	},
}

func (c *checker) expr(x ast.Expr) (ast.Type, error) {
	switch e := x.(type) {
	case ast.IntLit:
		return ast.Int, nil
	case ast.FloatLit:
		return ast.Float, nil
	case ast.BoolLit:
		return ast.Bool, nil

	case ast.Variable:
		t, ok := c.env.Lookup(e.Name)
		if !ok {
			return ast.Invalid, notFound("variable", e.Name)
		}
		return t, nil

	case ast.PointExpr:
		for _, coord := range []ast.Expr{e.X, e.Y} {
			t, err := c.expr(coord)
			if err != nil {
				return ast.Invalid, err
			}
			if !t.IsNumeric() {
				return ast.Invalid, errorf(ErrMismatch, "point", []ast.Type{t}, "coordinate must be numeric")
			}
		}
		return ast.Point, nil

	case ast.ColorExpr:
		for _, ch := range []ast.Expr{e.R, e.G, e.B, e.A} {
			if err := c.want("rgba", ch, ast.Int); err != nil {
				return ast.Invalid, err
			}
		}
		return ast.Color, nil

	case ast.ArrayExpr:
		return c.array(e)

	case ast.BinaryExpr:
		return c.binary(e)

	case ast.UnaryExpr:
		t, err := c.expr(e.Expr)
		if err != nil {
			return ast.Invalid, err
		}
		if e.Op != "!" || t != ast.Bool {
			return ast.Invalid, mismatch("unary "+e.Op, ast.Bool, t)
		}
		return ast.Bool, nil

	case ast.PathExpr:
		lt, err := c.expr(e.LHS)
		if err != nil {
			return ast.Invalid, err
		}
		rt, err := c.expr(e.RHS)
		if err != nil {
			return ast.Invalid, err
		}
		pathy := func(t ast.Type) bool { return t == ast.Point || t == ast.Path }
		switch {
		case pathy(lt) && pathy(rt):
			return ast.Path, nil
		case lt == ast.Polygon && (pathy(rt) || rt == ast.Polygon):
			return ast.Polygon, nil
		}
		return ast.Invalid, mismatch("path "+e.Op.String(), lt, rt)

	case ast.PolygonExpr:
		t, err := c.expr(e.Path)
		if err != nil {
			return ast.Invalid, err
		}
		if t != ast.Path {
			return ast.Invalid, mismatch("polygon "+e.Op.String()+"*", ast.Path, t)
		}
		return ast.Polygon, nil

	case ast.FCall:
		return c.call(e)

	case ast.SCall:
		if e.IsInline() {
			return c.inlineShape(e)
		}
		return c.namedShape(e)

	case ast.Member:
		construct := e.Ident + "." + e.Field
		t, ok := c.env.Lookup(e.Ident)
		if !ok {
			return ast.Invalid, notFound(construct, e.Ident)
		}
		ft, ok := memberTypes[t][e.Field]
		if !ok {
			return ast.Invalid, errorf(ErrNotFound, construct, []ast.Type{t}, "no field %q", e.Field)
		}
		return ft, nil

	case ast.ArrayIndex:
		construct := e.Ident + "[]"
		t, ok := c.env.Lookup(e.Ident)
		if !ok {
			return ast.Invalid, notFound(construct, e.Ident)
		}
		elem, ok := t.Elem()
		if !ok {
			return ast.Invalid, errorf(ErrMismatch, construct, []ast.Type{t}, "%q is not an array", e.Ident)
		}
		if err := c.want(construct+" index", e.Index, ast.Int); err != nil {
			return ast.Invalid, err
		}
		return elem, nil

	case ast.Place:
		construct := "place " + e.Dir.String()
		if err := c.want(construct, e.Base, ast.Shape); err != nil {
			return ast.Invalid, err
		}
		if err := c.want(construct, e.Second, ast.Shape); err != nil {
			return ast.Invalid, err
		}
		if e.Offset != nil {
			if err := c.want(construct+" offset", e.Offset, ast.Point); err != nil {
				return ast.Invalid, err
			}
		}
		return ast.Shape, nil

	case ast.Scale:
		return c.transform("scale", e.Base, e.Factor)
	case ast.Rotate:
		return c.transform("rotate", e.Base, e.Factor)
	}
	return ast.Invalid, fmt.Errorf("typecheck: unsupported expression %T", x)
}

// want checks x and requires exactly type t.
func (c *checker) want(construct string, x ast.Expr, t ast.Type) error {
	got, err := c.expr(x)
	if err != nil {
		return err
	}
	if got != t {
		return mismatch(construct, t, got)
	}
	return nil
}

func (c *checker) array(e ast.ArrayExpr) (ast.Type, error) {
	if len(e.Elems) == 0 {
		return ast.Empty, nil
	}
	first, err := c.expr(e.Elems[0])
	if err != nil {
		return ast.Invalid, err
	}
	for _, el := range e.Elems[1:] {
		t, err := c.expr(el)
		if err != nil {
			return ast.Invalid, err
		}
		if t != first {
			return ast.Invalid, &Error{Kind: ErrHeterogeneous, Construct: "array", Types: []ast.Type{first, t}}
		}
	}
	at, ok := first.ArrayOf()
	if !ok {
		return ast.Invalid, errorf(ErrMismatch, "array", []ast.Type{first}, "no array type for %s", first)
	}
	return at, nil
}

func (c *checker) binary(e ast.BinaryExpr) (ast.Type, error) {
	lt, err := c.expr(e.LHS)
	if err != nil {
		return ast.Invalid, err
	}
	rt, err := c.expr(e.RHS)
	if err != nil {
		return ast.Invalid, err
	}
	numeric := lt.IsNumeric() && rt.IsNumeric()
	switch e.Op {
	case "+", "-", "*", "/", "%":
		if numeric {
			if lt == ast.Int && rt == ast.Int {
				return ast.Int, nil
			}
			return ast.Float, nil
		}
	case "<", "<=", ">", ">=":
		if numeric {
			return ast.Bool, nil
		}
	case "==", "!=":
		if numeric || (lt == ast.Bool && rt == ast.Bool) {
			return ast.Bool, nil
		}
	case "&&", "||":
		if lt == ast.Bool && rt == ast.Bool {
			return ast.Bool, nil
		}
	default:
		return ast.Invalid, fmt.Errorf("typecheck: unknown operator %q", e.Op)
	}
	return ast.Invalid, mismatch("binary "+e.Op, lt, rt)
}

func (c *checker) call(e ast.FCall) (ast.Type, error) {
	construct := "call " + e.Name
	sig, ok := c.env.funcs[e.Name]
	if !ok {
		return ast.Invalid, notFound(construct, e.Name)
	}
	if len(e.Args) != len(sig.Params) {
		return ast.Invalid, errorf(ErrMismatch, construct, nil, "want %d arguments, got %d", len(sig.Params), len(e.Args))
	}
	for i, arg := range e.Args {
		t, err := c.expr(arg)
		if err != nil {
			return ast.Invalid, err
		}
		if err := bind(fmt.Sprintf("%s argument %d", construct, i+1), sig.Params[i], t); err != nil {
			return ast.Invalid, err
		}
	}
	return sig.Return, nil
}

// namedShape validates a constructor call against the signature of the
// imported program.
func (c *checker) namedShape(e ast.SCall) (ast.Type, error) {
	construct := e.Name + "(||)"
	sig, ok := c.env.shapes[e.Name]
	if !ok {
		return ast.Invalid, notFound(construct, e.Name)
	}
	seen := make(map[string]bool, len(e.Args))
	for _, arg := range e.Args {
		if seen[arg.Name] {
			return ast.Invalid, errorf(ErrDuplicate, construct, nil, "argument %q", arg.Name)
		}
		seen[arg.Name] = true
		f, ok := sig[arg.Name]
		if !ok {
			return ast.Invalid, errorf(ErrNotFound, construct, nil, "no declaration %q", arg.Name)
		}
		t, err := c.expr(arg.Value)
		if err != nil {
			return ast.Invalid, err
		}
		if err := bind(construct+" "+arg.Name, f.Type, t); err != nil {
			return ast.Invalid, err
		}
	}
	for _, name := range sig.Required() {
		if !seen[name] {
			return ast.Invalid, errorf(ErrMissingArgument, construct, nil, "%q has no default", name)
		}
	}
	return ast.Shape, nil
}

// inlineShape wraps a path or polygon; its arguments become attributes and
// are only required to be well typed.
func (c *checker) inlineShape(e ast.SCall) (ast.Type, error) {
	construct := "figure"
	t, err := c.expr(e.PathPoly)
	if err != nil {
		return ast.Invalid, err
	}
	if t != ast.Path && t != ast.Polygon {
		return ast.Invalid, mismatch(construct, ast.Path, t)
	}
	seen := make(map[string]bool, len(e.Args))
	for _, arg := range e.Args {
		if seen[arg.Name] {
			return ast.Invalid, errorf(ErrDuplicate, construct, nil, "attribute %q", arg.Name)
		}
		seen[arg.Name] = true
		if _, err := c.expr(arg.Value); err != nil {
			return ast.Invalid, err
		}
	}
	return ast.Shape, nil
}

func (c *checker) transform(construct string, base, factor ast.Expr) (ast.Type, error) {
	if err := c.want(construct, base, ast.Shape); err != nil {
		return ast.Invalid, err
	}
	t, err := c.expr(factor)
	if err != nil {
		return ast.Invalid, err
	}
	if !t.IsNumeric() {
		return ast.Invalid, errorf(ErrMismatch, construct, []ast.Type{t}, "factor must be numeric")
	}
	return ast.Shape, nil
}
