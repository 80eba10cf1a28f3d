// Package geom holds the figure model produced by the interpreter: points,
// straight and curved lines, figures with rendering attributes, and the
// placement, scaling and rotation algebra over collections of figures.
package geom

import (
	"errors"
	"math"
)

// ErrMissingLines is returned when a geometric query needs at least one point
// and the figure or collection has none.
var ErrMissingLines = errors.New("missing lines")

type Color struct {
	R, G, B, A int64
}

// Opaque stands in for an attribute value that has no rendering meaning
// (a bool, a point, an array...). TypeName is kept for error messages.
type Opaque struct {
	TypeName string
}

// Attr is a figure attribute value: Num, Color or Opaque.
type Attr interface {
	isAttr()
}

func (Num) isAttr()    {}
func (Color) isAttr()  {}
func (Opaque) isAttr() {}

type Point struct {
	X, Y Num
}

func Pt(x, y Num) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(o Point) Point {
	return Point{X: p.X.Add(o.X), Y: p.Y.Add(o.Y)}
}

func (p Point) Sub(o Point) Point {
	return Point{X: p.X.Sub(o.X), Y: p.Y.Sub(o.Y)}
}

func (p Point) Scale(f Num) Point {
	return Point{X: p.X.Mul(f), Y: p.Y.Mul(f)}
}

// Rotate turns p about the origin by deg degrees, counter-clockwise. The
// result always has float coordinates.
func (p Point) Rotate(deg Num) Point {
	rad := deg.Float64() * math.Pi / 180
	sin, cos := math.Sincos(rad)
	x, y := p.X.Float64(), p.Y.Float64()
	return Point{X: Float(x*cos - y*sin), Y: Float(x*sin + y*cos)}
}

func (p Point) FlipY() Point {
	return Point{X: p.X, Y: p.Y.Neg()}
}

func (p Point) Equal(o Point) bool {
	return p.X.Equal(o.X) && p.Y.Equal(o.Y)
}

// Line is a straight or curved segment. Two points draw a line, three a
// quadratic and four a cubic Bezier curve.
type Line struct {
	Curved bool
	Points []Point
}

func Straight(pts ...Point) Line {
	return Line{Points: pts}
}

func Curved(pts ...Point) Line {
	return Line{Curved: true, Points: pts}
}

func (l Line) mapPoints(fn func(Point) Point) Line {
	pts := make([]Point, len(l.Points))
	for i, p := range l.Points {
		pts[i] = fn(p)
	}
	return Line{Curved: l.Curved, Points: pts}
}

type Figure struct {
	Lines []Line
	Attrs map[string]Attr
}

// First is the first point of the first line.
func (f Figure) First() (Point, bool) {
	if len(f.Lines) == 0 || len(f.Lines[0].Points) == 0 {
		return Point{}, false
	}
	return f.Lines[0].Points[0], true
}

// Last is the last point of the last line.
func (f Figure) Last() (Point, bool) {
	if len(f.Lines) == 0 {
		return Point{}, false
	}
	pts := f.Lines[len(f.Lines)-1].Points
	if len(pts) == 0 {
		return Point{}, false
	}
	return pts[len(pts)-1], true
}

// IsClosed reports whether the outline ends where it starts.
func (f Figure) IsClosed() bool {
	first, ok := f.First()
	if !ok {
		return false
	}
	last, ok := f.Last()
	return ok && first.Equal(last)
}

// Close joins the last point back to the first one. A curved close extends
// the last line with the first point; a straight close appends a new
// straight segment from the last point to the first.
func (f Figure) Close(seg Segment) (Figure, error) {
	first, ok := f.First()
	if !ok {
		return Figure{}, ErrMissingLines
	}
	last, _ := f.Last()
	out := f.clone()
	if seg == CurveSeg {
		i := len(out.Lines) - 1
		pts := append(append([]Point(nil), out.Lines[i].Points...), first)
		out.Lines[i] = Line{Curved: true, Points: pts}
		return out, nil
	}
	out.Lines = append(out.Lines, Straight(last, first))
	return out, nil
}

func (f Figure) clone() Figure {
	lines := make([]Line, len(f.Lines))
	copy(lines, f.Lines)
	var attrs map[string]Attr
	if f.Attrs != nil {
		attrs = make(map[string]Attr, len(f.Attrs))
		for k, v := range f.Attrs {
			attrs[k] = v
		}
	}
	return Figure{Lines: lines, Attrs: attrs}
}

// WithAttrs returns a copy of f carrying attrs.
func (f Figure) WithAttrs(attrs map[string]Attr) Figure {
	out := f.clone()
	out.Attrs = attrs
	return out
}

func (f Figure) mapPoints(fn func(Point) Point) Figure {
	out := f.clone()
	for i, l := range out.Lines {
		out.Lines[i] = l.mapPoints(fn)
	}
	return out
}

func (f Figure) eachPoint(fn func(Point)) {
	for _, l := range f.Lines {
		for _, p := range l.Points {
			fn(p)
		}
	}
}

// FigureArray is the value of a shape: an ordered collection of figures.
type FigureArray []Figure

func (fa FigureArray) mapPoints(fn func(Point) Point) FigureArray {
	out := make(FigureArray, len(fa))
	for i, f := range fa {
		out[i] = f.mapPoints(fn)
	}
	return out
}

func (fa FigureArray) Translate(off Point) FigureArray {
	return fa.mapPoints(func(p Point) Point { return p.Add(off) })
}

func (fa FigureArray) Scale(factor Num) FigureArray {
	return fa.mapPoints(func(p Point) Point { return p.Scale(factor) })
}

func (fa FigureArray) Rotate(deg Num) FigureArray {
	return fa.mapPoints(func(p Point) Point { return p.Rotate(deg) })
}

func (fa FigureArray) FlipY() FigureArray {
	return fa.mapPoints(Point.FlipY)
}

// Union concatenates the figures of fa and other.
func (fa FigureArray) Union(other FigureArray) FigureArray {
	out := make(FigureArray, 0, len(fa)+len(other))
	out = append(out, fa...)
	return append(out, other...)
}

// BBox is the axis-aligned extent of every point of every line.
type BBox struct {
	MinX, MaxX, MinY, MaxY Num
}

func (fa FigureArray) BBox() (BBox, error) {
	var (
		b    BBox
		seen bool
	)
	for _, f := range fa {
		f.eachPoint(func(p Point) {
			if !seen {
				b = BBox{MinX: p.X, MaxX: p.X, MinY: p.Y, MaxY: p.Y}
				seen = true
				return
			}
			b.MinX = minNum(b.MinX, p.X)
			b.MaxX = maxNum(b.MaxX, p.X)
			b.MinY = minNum(b.MinY, p.Y)
			b.MaxY = maxNum(b.MaxY, p.Y)
		})
	}
	if !seen {
		return BBox{}, ErrMissingLines
	}
	return b, nil
}

func (b BBox) Width() Num {
	return b.MaxX.Sub(b.MinX)
}

func (b BBox) Height() Num {
	return b.MaxY.Sub(b.MinY)
}

// TopLeft is (min_x, max_y): y grows upwards in the figure model.
func (b BBox) TopLeft() Point {
	return Point{X: b.MinX, Y: b.MaxY}
}

func (b BBox) Center() Point {
	half := Float(2)
	return Point{
		X: b.MinX.Add(b.Width().Div(half)),
		Y: b.MinY.Add(b.Height().Div(half)),
	}
}
