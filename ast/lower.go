package ast

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gosuda/vdraw/geom"
	"github.com/gosuda/vdraw/parser"
)

// ErrUnknownSymbol is returned when the syntax tree contains a node symbol
// lowering has no rule for.
var ErrUnknownSymbol = errors.New("unknown syntax symbol")

func malformed(n *parser.Node, what string) error {
	return fmt.Errorf("line %d: malformed %s node", n.Line, what)
}

func unknown(n *parser.Node) error {
	return fmt.Errorf("line %d: %w %q", n.Line, ErrUnknownSymbol, n.Symbol)
}

// Lower converts a parsed program tree into a Program.
func Lower(root *parser.Node, path string) (*Program, error) {
	if root == nil || root.Symbol != parser.SymProgram || len(root.Children) != 2 {
		return nil, fmt.Errorf("lower %s: root is not a program", path)
	}
	prog := &Program{Path: path}
	for _, n := range root.Children[0].Children {
		st, err := lowerDecl(n)
		if err != nil {
			return nil, fmt.Errorf("lower %s: %w", path, err)
		}
		prog.Decls = append(prog.Decls, st)
	}
	body, err := lowerStmts(root.Children[1].Children)
	if err != nil {
		return nil, fmt.Errorf("lower %s: %w", path, err)
	}
	prog.Body = body
	return prog, nil
}

func lowerDecl(n *parser.Node) (Stmt, error) {
	switch n.Symbol {
	case parser.SymImport:
		if len(n.Children) != 2 {
			return nil, malformed(n, "import")
		}
		return Import{Name: n.Children[0].Value, Path: n.Children[1].Value}, nil
	case parser.SymDecl:
		if len(n.Children) < 2 {
			return nil, malformed(n, "declaration")
		}
		typ, err := lowerType(n.Children[1])
		if err != nil {
			return nil, err
		}
		d := Decl{Name: n.Children[0].Value, Type: typ}
		if v := n.Child(2); v != nil {
			if d.Value, err = LowerExpr(v); err != nil {
				return nil, err
			}
		}
		return d, nil
	}
	return nil, unknown(n)
}

func lowerType(n *parser.Node) (Type, error) {
	if n == nil {
		return Invalid, fmt.Errorf("missing type")
	}
	switch n.Symbol {
	case parser.SymType:
		t, ok := ScalarType(n.Value)
		if !ok {
			return Invalid, fmt.Errorf("line %d: unknown type %q", n.Line, n.Value)
		}
		return t, nil
	case parser.SymArrayType:
		elem, err := lowerType(n.Child(0))
		if err != nil {
			return Invalid, err
		}
		at, ok := elem.ArrayOf()
		if !ok {
			return Invalid, fmt.Errorf("line %d: no array type for %s", n.Line, elem)
		}
		return at, nil
	}
	return Invalid, unknown(n)
}

func lowerStmts(nodes []*parser.Node) ([]Stmt, error) {
	out := make([]Stmt, 0, len(nodes))
	for _, n := range nodes {
		st, err := lowerStmt(n)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

func lowerBlock(n *parser.Node) ([]Stmt, error) {
	if n == nil || n.Symbol != parser.SymBlock {
		return nil, fmt.Errorf("expected block")
	}
	return lowerStmts(n.Children)
}

func lowerStmt(n *parser.Node) (Stmt, error) {
	switch n.Symbol {
	case parser.SymVarDecl:
		if len(n.Children) != 3 {
			return nil, malformed(n, "let")
		}
		typ, err := lowerType(n.Children[1])
		if err != nil {
			return nil, err
		}
		val, err := LowerExpr(n.Children[2])
		if err != nil {
			return nil, err
		}
		return VarDecl{Name: n.Children[0].Value, Type: typ, Value: val}, nil
	case parser.SymFuncDecl:
		if len(n.Children) != 4 {
			return nil, malformed(n, "function")
		}
		fn := FuncDecl{Name: n.Children[0].Value}
		for _, pn := range n.Children[1].Children {
			if len(pn.Children) != 2 {
				return nil, malformed(pn, "parameter")
			}
			pt, err := lowerType(pn.Children[1])
			if err != nil {
				return nil, err
			}
			fn.Params = append(fn.Params, Param{Name: pn.Children[0].Value, Type: pt})
		}
		ret, err := lowerType(n.Children[2])
		if err != nil {
			return nil, err
		}
		fn.Return = ret
		if fn.Body, err = lowerBlock(n.Children[3]); err != nil {
			return nil, err
		}
		return fn, nil
	case parser.SymReturn:
		val, err := LowerExpr(n.Child(0))
		if err != nil {
			return nil, err
		}
		return Return{Value: val}, nil
	case parser.SymDraw:
		shape, err := LowerExpr(n.Child(0))
		if err != nil {
			return nil, err
		}
		d := Draw{Shape: shape}
		if at := n.Child(1); at != nil {
			if d.At, err = LowerExpr(at); err != nil {
				return nil, err
			}
		}
		return d, nil
	case parser.SymAssign:
		if len(n.Children) != 2 {
			return nil, malformed(n, "assignment")
		}
		val, err := LowerExpr(n.Children[1])
		if err != nil {
			return nil, err
		}
		return Assign{Name: n.Children[0].Value, Value: val}, nil
	case parser.SymArrayAsgn:
		if len(n.Children) != 3 {
			return nil, malformed(n, "element assignment")
		}
		idx, err := LowerExpr(n.Children[1])
		if err != nil {
			return nil, err
		}
		val, err := LowerExpr(n.Children[2])
		if err != nil {
			return nil, err
		}
		return ArrayAssign{Name: n.Children[0].Value, Index: idx, Value: val}, nil
	case parser.SymFor:
		if len(n.Children) != 4 {
			return nil, malformed(n, "for")
		}
		from, err := LowerExpr(n.Children[1])
		if err != nil {
			return nil, err
		}
		to, err := LowerExpr(n.Children[2])
		if err != nil {
			return nil, err
		}
		body, err := lowerBlock(n.Children[3])
		if err != nil {
			return nil, err
		}
		return For{Counter: n.Children[0].Value, From: from, To: to, Body: body}, nil
	case parser.SymFork:
		var fork Fork
		for _, bn := range n.Children {
			switch bn.Symbol {
			case parser.SymBranch:
				cond, err := LowerExpr(bn.Child(0))
				if err != nil {
					return nil, err
				}
				body, err := lowerBlock(bn.Child(1))
				if err != nil {
					return nil, err
				}
				fork.Branches = append(fork.Branches, ForkBranch{Cond: cond, Body: body})
			case parser.SymOtherwise:
				body, err := lowerBlock(bn.Child(0))
				if err != nil {
					return nil, err
				}
				fork.Otherwise = body
				fork.HasOtherwise = true
			default:
				return nil, unknown(bn)
			}
		}
		return fork, nil
	}
	return nil, unknown(n)
}

// LowerExpr converts an expression tree into an Expr.
func LowerExpr(n *parser.Node) (Expr, error) {
	if n == nil {
		return nil, fmt.Errorf("missing expression")
	}
	switch n.Symbol {
	case parser.SymInt:
		v, err := strconv.ParseInt(n.Value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid integer %q", n.Line, n.Value)
		}
		return IntLit{Value: v}, nil
	case parser.SymFloat:
		v, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid float %q", n.Line, n.Value)
		}
		return FloatLit{Value: v}, nil
	case parser.SymBool:
		return BoolLit{Value: n.Value == "true"}, nil
	case parser.SymIdent:
		return Variable{Name: n.Value}, nil
	case parser.SymPoint:
		xs, err := lowerExprs(n.Children, 2, n)
		if err != nil {
			return nil, err
		}
		return PointExpr{X: xs[0], Y: xs[1]}, nil
	case parser.SymColor:
		cs, err := lowerExprs(n.Children, 4, n)
		if err != nil {
			return nil, err
		}
		return ColorExpr{R: cs[0], G: cs[1], B: cs[2], A: cs[3]}, nil
	case parser.SymArray:
		elems, err := lowerExprs(n.Children, len(n.Children), n)
		if err != nil {
			return nil, err
		}
		return ArrayExpr{Elems: elems}, nil
	case parser.SymBinary:
		xs, err := lowerExprs(n.Children, 2, n)
		if err != nil {
			return nil, err
		}
		return BinaryExpr{Op: n.Value, LHS: xs[0], RHS: xs[1]}, nil
	case parser.SymUnary:
		xs, err := lowerExprs(n.Children, 1, n)
		if err != nil {
			return nil, err
		}
		return UnaryExpr{Op: n.Value, Expr: xs[0]}, nil
	case parser.SymPathOp:
		xs, err := lowerExprs(n.Children, 2, n)
		if err != nil {
			return nil, err
		}
		return PathExpr{Op: segment(n.Value), LHS: xs[0], RHS: xs[1]}, nil
	case parser.SymPolygonOp:
		xs, err := lowerExprs(n.Children, 1, n)
		if err != nil {
			return nil, err
		}
		return PolygonExpr{Op: segment(n.Value), Path: xs[0]}, nil
	case parser.SymFCall:
		if len(n.Children) != 2 {
			return nil, malformed(n, "call")
		}
		args, err := lowerExprs(n.Children[1].Children, len(n.Children[1].Children), n)
		if err != nil {
			return nil, err
		}
		return FCall{Name: n.Children[0].Value, Args: args}, nil
	case parser.SymSCall:
		if len(n.Children) != 2 {
			return nil, malformed(n, "shape call")
		}
		args, err := lowerNamed(n.Children[1])
		if err != nil {
			return nil, err
		}
		return SCall{Name: n.Children[0].Value, Args: args}, nil
	case parser.SymFigure:
		if len(n.Children) != 2 {
			return nil, malformed(n, "figure")
		}
		pp, err := LowerExpr(n.Children[0])
		if err != nil {
			return nil, err
		}
		args, err := lowerNamed(n.Children[1])
		if err != nil {
			return nil, err
		}
		return SCall{Args: args, PathPoly: pp}, nil
	case parser.SymMember:
		if len(n.Children) != 2 {
			return nil, malformed(n, "member")
		}
		return Member{Ident: n.Children[0].Value, Field: n.Children[1].Value}, nil
	case parser.SymIndex:
		if len(n.Children) != 2 {
			return nil, malformed(n, "index")
		}
		idx, err := LowerExpr(n.Children[1])
		if err != nil {
			return nil, err
		}
		return ArrayIndex{Ident: n.Children[0].Value, Index: idx}, nil
	case parser.SymPlace:
		if len(n.Children) < 3 {
			return nil, malformed(n, "place")
		}
		dir, err := geom.ParseDirection(n.Children[1].Value)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		base, err := LowerExpr(n.Children[0])
		if err != nil {
			return nil, err
		}
		second, err := LowerExpr(n.Children[2])
		if err != nil {
			return nil, err
		}
		pl := Place{Base: base, Second: second, Dir: dir}
		if off := n.Child(3); off != nil {
			if pl.Offset, err = LowerExpr(off); err != nil {
				return nil, err
			}
		}
		return pl, nil
	case parser.SymScale, parser.SymRotate:
		xs, err := lowerExprs(n.Children, 2, n)
		if err != nil {
			return nil, err
		}
		if n.Symbol == parser.SymScale {
			return Scale{Base: xs[0], Factor: xs[1]}, nil
		}
		return Rotate{Base: xs[0], Factor: xs[1]}, nil
	}
	return nil, unknown(n)
}

func segment(op string) geom.Segment {
	if len(op) > 0 && op[0] == '~' {
		return geom.CurveSeg
	}
	return geom.LineSeg
}

func lowerExprs(nodes []*parser.Node, want int, parent *parser.Node) ([]Expr, error) {
	if len(nodes) != want {
		return nil, malformed(parent, parent.Symbol)
	}
	out := make([]Expr, len(nodes))
	for i, n := range nodes {
		e, err := LowerExpr(n)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func lowerNamed(n *parser.Node) ([]NamedArg, error) {
	if n.Symbol != parser.SymNamedArgs {
		return nil, unknown(n)
	}
	out := make([]NamedArg, 0, len(n.Children))
	for _, a := range n.Children {
		if a.Symbol != parser.SymNamedArg || len(a.Children) != 1 {
			return nil, malformed(a, "named argument")
		}
		v, err := LowerExpr(a.Children[0])
		if err != nil {
			return nil, err
		}
		out = append(out, NamedArg{Name: a.Value, Value: v})
	}
	return out, nil
}
