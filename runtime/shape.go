package vdruntime

import (
	"fmt"

	"github.com/gosuda/vdraw/ast"
	"github.com/gosuda/vdraw/geom"
)

// evalPath walks a right-nested chain of path operators into one figure.
// Point operands are stepped to; path and polygon operands are spliced in.
// The chain stays a polygon when its first operand is one.
func (vm *VM) evalPath(ex ast.PathExpr) (Value, error) {
	var b geom.PathBuilder
	seg := geom.LineSeg
	polygon := false
	var cur ast.Expr = ex
	for first := true; ; first = false {
		operand := cur
		next, chained := cur.(ast.PathExpr)
		if chained {
			operand = next.LHS
		}
		v, err := vm.evalExpr(operand)
		if err != nil {
			return Value{}, err
		}
		switch v.kind {
		case PointKind:
			b.Step(seg, v.pt)
		case PathKind, PolygonKind:
			if first && v.kind == PolygonKind {
				polygon = true
			}
			if err := b.Splice(seg, v.fig); err != nil {
				return Value{}, fmt.Errorf("path %s: %w", seg, err)
			}
		default:
			return Value{}, fmt.Errorf("path %s: unexpected %s operand", seg, v.kind)
		}
		if !chained {
			break
		}
		seg = next.Op
		cur = next.RHS
	}
	fig, err := b.Figure()
	if err != nil {
		return Value{}, fmt.Errorf("path: %w", err)
	}
	if polygon {
		return PolygonOf(fig), nil
	}
	return PathOf(fig), nil
}

// inlineShape wraps a path or polygon in a single-figure shape carrying the
// call arguments as attributes.
func (vm *VM) inlineShape(ex ast.SCall) (Value, error) {
	v, err := vm.evalExpr(ex.PathPoly)
	if err != nil {
		return Value{}, fmt.Errorf("figure: %w", err)
	}
	if len(v.fig.Lines) == 0 {
		return Value{}, fmt.Errorf("figure: %w", ErrMissingLines)
	}
	attrs := make(map[string]geom.Attr, len(ex.Args))
	for _, arg := range ex.Args {
		a, err := vm.evalExpr(arg.Value)
		if err != nil {
			return Value{}, fmt.Errorf("figure %s: %w", arg.Name, err)
		}
		attrs[arg.Name] = a.Attr()
	}
	return ShapeOf(geom.FigureArray{v.fig.WithAttrs(attrs)}), nil
}

// namedShape instantiates an imported program with the call arguments as
// its declaration overrides and unions everything it draws.
func (vm *VM) namedShape(ex ast.SCall) (Value, error) {
	prog, ok := vm.env.imports[ex.Name]
	if !ok {
		return Value{}, fmt.Errorf("shape %s: %w", ex.Name, ErrUnresolvedShape)
	}
	sub := New(prog, vm.loader)
	for _, arg := range ex.Args {
		v, err := vm.evalExpr(arg.Value)
		if err != nil {
			return Value{}, fmt.Errorf("shape %s: %w", ex.Name, err)
		}
		sub.SetOverride(arg.Name, v)
	}
	env, err := sub.Run()
	if err != nil {
		return Value{}, fmt.Errorf("shape %s: %w", ex.Name, err)
	}
	return ShapeOf(env.Shape()), nil
}
