package vdruntime

import (
	"fmt"

	"github.com/gosuda/vdraw/ast"
	"github.com/gosuda/vdraw/geom"
)

func (vm *VM) evalExpr(e ast.Expr) (Value, error) {
	switch ex := e.(type) {
	case ast.IntLit:
		return Int(ex.Value), nil
	case ast.FloatLit:
		return Float(ex.Value), nil
	case ast.BoolLit:
		return Bool(ex.Value), nil

	case ast.Variable:
		v, ok := vm.env.Lookup(ex.Name)
		if !ok {
			return Value{}, fmt.Errorf("variable %s not bound", ex.Name)
		}
		return v, nil

	case ast.PointExpr:
		x, err := vm.evalExpr(ex.X)
		if err != nil {
			return Value{}, err
		}
		y, err := vm.evalExpr(ex.Y)
		if err != nil {
			return Value{}, err
		}
		return PointOf(geom.Pt(x.Num(), y.Num())), nil

	case ast.ColorExpr:
		var ch [4]int64
		for i, c := range []ast.Expr{ex.R, ex.G, ex.B, ex.A} {
			v, err := vm.evalExpr(c)
			if err != nil {
				return Value{}, err
			}
			ch[i] = v.Int64()
		}
		return ColorOf(geom.Color{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}), nil

	case ast.ArrayExpr:
		elems := make([]Value, len(ex.Elems))
		for i, el := range ex.Elems {
			v, err := vm.evalExpr(el)
			if err != nil {
				return Value{}, err
			}
			elems[i] = v
		}
		return Array(elems), nil

	case ast.UnaryExpr:
		v, err := vm.evalExpr(ex.Expr)
		if err != nil {
			return Value{}, err
		}
		if ex.Op != "!" {
			return Value{}, fmt.Errorf("unsupported unary operator %q", ex.Op)
		}
		return Bool(!v.Truthy()), nil

	case ast.BinaryExpr:
		return vm.evalBinary(ex)

	case ast.PathExpr:
		return vm.evalPath(ex)

	case ast.PolygonExpr:
		v, err := vm.evalExpr(ex.Path)
		if err != nil {
			return Value{}, err
		}
		fig, err := v.Figure().Close(ex.Op)
		if err != nil {
			return Value{}, fmt.Errorf("polygon %s*: %w", ex.Op, err)
		}
		return PolygonOf(fig), nil

	case ast.FCall:
		return vm.call(ex)

	case ast.SCall:
		if ex.IsInline() {
			return vm.inlineShape(ex)
		}
		return vm.namedShape(ex)

	case ast.Member:
		v, ok := vm.env.Lookup(ex.Ident)
		if !ok {
			return Value{}, fmt.Errorf("variable %s not bound", ex.Ident)
		}
		return member(v, ex.Field)

	case ast.ArrayIndex:
		v, ok := vm.env.Lookup(ex.Ident)
		if !ok {
			return Value{}, fmt.Errorf("variable %s not bound", ex.Ident)
		}
		idx, err := vm.evalExpr(ex.Index)
		if err != nil {
			return Value{}, err
		}
		i, err := checkIndex(ex.Ident, idx.Int64(), len(v.arr))
		if err != nil {
			return Value{}, err
		}
		return v.arr[i], nil

	case ast.Place:
		base, err := vm.evalExpr(ex.Base)
		if err != nil {
			return Value{}, err
		}
		second, err := vm.evalExpr(ex.Second)
		if err != nil {
			return Value{}, err
		}
		extra := geom.Pt(geom.Int(0), geom.Int(0))
		if ex.Offset != nil {
			off, err := vm.evalExpr(ex.Offset)
			if err != nil {
				return Value{}, err
			}
			extra = off.Point()
		}
		out, err := geom.Place(base.Shape(), second.Shape(), ex.Dir, extra)
		if err != nil {
			return Value{}, err
		}
		return ShapeOf(out), nil

	case ast.Scale:
		base, factor, err := vm.evalTransform(ex.Base, ex.Factor)
		if err != nil {
			return Value{}, fmt.Errorf("scale: %w", err)
		}
		return ShapeOf(base.Shape().Scale(factor.Num())), nil

	case ast.Rotate:
		base, factor, err := vm.evalTransform(ex.Base, ex.Factor)
		if err != nil {
			return Value{}, fmt.Errorf("rotate: %w", err)
		}
		return ShapeOf(base.Shape().Rotate(factor.Num())), nil
	}
	return Value{}, fmt.Errorf("unsupported expression %T", e)
}

func (vm *VM) evalTransform(base, factor ast.Expr) (Value, Value, error) {
	b, err := vm.evalExpr(base)
	if err != nil {
		return Value{}, Value{}, err
	}
	f, err := vm.evalExpr(factor)
	if err != nil {
		return Value{}, Value{}, err
	}
	return b, f, nil
}

func (vm *VM) evalBinary(ex ast.BinaryExpr) (Value, error) {
	left, err := vm.evalExpr(ex.LHS)
	if err != nil {
		return Value{}, err
	}
	switch ex.Op {
	case "&&":
		if !left.Truthy() {
			return Bool(false), nil
		}
		right, err := vm.evalExpr(ex.RHS)
		if err != nil {
			return Value{}, err
		}
		return Bool(right.Truthy()), nil
	case "||":
		if left.Truthy() {
			return Bool(true), nil
		}
		right, err := vm.evalExpr(ex.RHS)
		if err != nil {
			return Value{}, err
		}
		return Bool(right.Truthy()), nil
	}
	right, err := vm.evalExpr(ex.RHS)
	if err != nil {
		return Value{}, err
	}
	return binary(ex.Op, left, right)
}

func binary(op string, left, right Value) (Value, error) {
	if left.kind == BoolKind {
		switch op {
		case "==":
			return Bool(left.b == right.b), nil
		case "!=":
			return Bool(left.b != right.b), nil
		}
		return Value{}, fmt.Errorf("unsupported bool operator %q", op)
	}
	l, r := left.num, right.num
	switch op {
	case "+":
		return Num(l.Add(r)), nil
	case "-":
		return Num(l.Sub(r)), nil
	case "*":
		return Num(l.Mul(r)), nil
	case "/", "%":
		if r.IsZero() {
			return Value{}, fmt.Errorf("%s %s %s: %w", l, op, r, ErrDivideByZero)
		}
		if op == "/" {
			return Num(l.Div(r)), nil
		}
		return Num(l.Mod(r)), nil
	case "==":
		return Bool(l.Equal(r)), nil
	case "!=":
		return Bool(!l.Equal(r)), nil
	case "<":
		return Bool(l.Cmp(r) < 0), nil
	case "<=":
		return Bool(l.Cmp(r) <= 0), nil
	case ">":
		return Bool(l.Cmp(r) > 0), nil
	case ">=":
		return Bool(l.Cmp(r) >= 0), nil
	}
	return Value{}, fmt.Errorf("unsupported binary operator %q", op)
}

func member(v Value, field string) (Value, error) {
	switch v.kind {
	case PointKind:
		switch field {
		case "x":
			return Float(v.pt.X.Float64()), nil
		case "y":
			return Float(v.pt.Y.Float64()), nil
		}
	case ColorKind:
		switch field {
		case "r":
			return Int(v.col.R), nil
		case "g":
			return Int(v.col.G), nil
		case "b":
			return Int(v.col.B), nil
		case "a":
			return Int(v.col.A), nil
		}
	case ShapeKind:
		box, err := v.shape.BBox()
		if err != nil {
			return Value{}, fmt.Errorf(".%s: %w", field, err)
		}
		switch field {
		case "width":
			return Float(box.Width().Float64()), nil
		case "height":
			return Float(box.Height().Float64()), nil
		case "center":
			return PointOf(box.Center()), nil
		case "top_left":
			return PointOf(box.TopLeft()), nil
		}
	}
	return Value{}, fmt.Errorf("%s has no field %q", v.kind, field)
}

// call runs a user function. Arguments are evaluated in the caller; the
// body then sees only its parameters, with declaration fields hidden.
func (vm *VM) call(ex ast.FCall) (Value, error) {
	fn, ok := vm.env.funcs[ex.Name]
	if !ok {
		return Value{}, fmt.Errorf("function %s not defined", ex.Name)
	}
	frame := make(map[string]Value, len(fn.Params))
	for i, arg := range ex.Args {
		v, err := vm.evalExpr(arg)
		if err != nil {
			return Value{}, fmt.Errorf("call %s: %w", ex.Name, err)
		}
		frame[fn.Params[i].Name] = v
	}

	savedScopes, savedDecls := vm.env.scopes, vm.env.decls
	vm.env.scopes = []map[string]Value{frame}
	vm.env.decls = map[string]Value{}
	err := vm.runStmts(fn.Body)
	vm.env.scopes, vm.env.decls = savedScopes, savedDecls
	if err != nil {
		return Value{}, fmt.Errorf("call %s: %w", ex.Name, err)
	}
	if vm.env.ret == nil {
		return Value{}, fmt.Errorf("call %s: %w", ex.Name, ErrFunctionNotReturning)
	}
	v := *vm.env.ret
	vm.env.ret = nil
	return v, nil
}
