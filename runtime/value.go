package vdruntime

import (
	"strconv"
	"strings"

	"github.com/gosuda/vdraw/geom"
)

type ValueKind int

const (
	IntKind ValueKind = iota
	FloatKind
	BoolKind
	PointKind
	ColorKind
	ArrayKind
	PathKind
	PolygonKind
	ShapeKind
)

var kindNames = [...]string{"int", "float", "bool", "point", "color", "array", "path", "polygon", "shape"}

func (k ValueKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// Value is a runtime value. Only the fields matching kind are meaningful.
type Value struct {
	kind  ValueKind
	num   geom.Num
	b     bool
	pt    geom.Point
	col   geom.Color
	arr   []Value
	fig   geom.Figure
	shape geom.FigureArray
}

func Int(v int64) Value {
	return Value{kind: IntKind, num: geom.Int(v)}
}

func Float(v float64) Value {
	return Value{kind: FloatKind, num: geom.Float(v)}
}

// Num wraps n as an Int or Float value according to its own kind.
func Num(n geom.Num) Value {
	if n.IsFloat() {
		return Value{kind: FloatKind, num: n}
	}
	return Value{kind: IntKind, num: n}
}

func Bool(v bool) Value {
	return Value{kind: BoolKind, b: v}
}

func PointOf(p geom.Point) Value {
	return Value{kind: PointKind, pt: p}
}

func ColorOf(c geom.Color) Value {
	return Value{kind: ColorKind, col: c}
}

// Array takes ownership of elems.
func Array(elems []Value) Value {
	return Value{kind: ArrayKind, arr: elems}
}

func PathOf(f geom.Figure) Value {
	return Value{kind: PathKind, fig: f}
}

func PolygonOf(f geom.Figure) Value {
	return Value{kind: PolygonKind, fig: f}
}

func ShapeOf(fa geom.FigureArray) Value {
	return Value{kind: ShapeKind, shape: fa}
}

func (v Value) Kind() ValueKind {
	return v.kind
}

func (v Value) Num() geom.Num {
	return v.num
}

func (v Value) Int64() int64 {
	return v.num.Int64()
}

func (v Value) Truthy() bool {
	return v.b
}

func (v Value) Point() geom.Point {
	return v.pt
}

func (v Value) Color() geom.Color {
	return v.col
}

// Elems returns the array elements. The slice must not be modified.
func (v Value) Elems() []Value {
	return v.arr
}

// Figure is the figure behind a path or polygon value.
func (v Value) Figure() geom.Figure {
	return v.fig
}

func (v Value) Shape() geom.FigureArray {
	return v.shape
}

// Attr converts v to a figure attribute.
func (v Value) Attr() geom.Attr {
	switch v.kind {
	case IntKind, FloatKind:
		return v.num
	case ColorKind:
		return v.col
	}
	return geom.Opaque{TypeName: v.kind.String()}
}

func (v Value) String() string {
	switch v.kind {
	case IntKind, FloatKind:
		return v.num.String()
	case BoolKind:
		return strconv.FormatBool(v.b)
	case PointKind:
		return "(" + v.pt.X.String() + ", " + v.pt.Y.String() + ")"
	case ColorKind:
		return "rgba(" + strconv.FormatInt(v.col.R, 10) + ", " + strconv.FormatInt(v.col.G, 10) + ", " +
			strconv.FormatInt(v.col.B, 10) + ", " + strconv.FormatInt(v.col.A, 10) + ")"
	case ArrayKind:
		parts := make([]string, len(v.arr))
		for i, e := range v.arr {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case PathKind, PolygonKind:
		return v.kind.String() + "(" + strconv.Itoa(len(v.fig.Lines)) + " lines)"
	case ShapeKind:
		return "shape(" + strconv.Itoa(len(v.shape)) + " figures)"
	}
	return "invalid"
}
