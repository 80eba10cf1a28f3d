package geom_test

import (
	"errors"
	"testing"

	"github.com/gosuda/vdraw/geom"
)

func ip(x, y int64) geom.Point {
	return geom.Pt(geom.Int(x), geom.Int(y))
}

func buildPath(t *testing.T, start geom.Point, steps ...any) geom.Figure {
	t.Helper()
	var b geom.PathBuilder
	b.Start(start)
	for i := 0; i < len(steps); i += 2 {
		b.Step(steps[i].(geom.Segment), steps[i+1].(geom.Point))
	}
	f, err := b.Figure()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return f
}

func assertLine(t *testing.T, l geom.Line, curved bool, pts ...geom.Point) {
	t.Helper()
	if l.Curved != curved {
		t.Fatalf("unexpected line kind: curved=%v want %v", l.Curved, curved)
	}
	if len(l.Points) != len(pts) {
		t.Fatalf("unexpected point count: %d want %d", len(l.Points), len(pts))
	}
	for i := range pts {
		if !l.Points[i].Equal(pts[i]) {
			t.Fatalf("point %d: got %v want %v", i, l.Points[i], pts[i])
		}
	}
}

func TestPathSingleLineStep(t *testing.T) {
	f := buildPath(t, ip(0, 0), geom.LineSeg, ip(1, 0))
	if len(f.Lines) != 1 {
		t.Fatalf("unexpected line count: %d", len(f.Lines))
	}
	assertLine(t, f.Lines[0], false, ip(0, 0), ip(1, 0))
}

func TestPathLineStepsShareJunction(t *testing.T) {
	f := buildPath(t, ip(0, 0), geom.LineSeg, ip(1, 0), geom.LineSeg, ip(1, 1))
	if len(f.Lines) != 2 {
		t.Fatalf("unexpected line count: %d", len(f.Lines))
	}
	assertLine(t, f.Lines[0], false, ip(0, 0), ip(1, 0))
	assertLine(t, f.Lines[1], false, ip(1, 0), ip(1, 1))
}

func TestPathCurveStepsMerge(t *testing.T) {
	f := buildPath(t, ip(0, 0), geom.CurveSeg, ip(1, 0), geom.CurveSeg, ip(1, 1))
	if len(f.Lines) != 1 {
		t.Fatalf("unexpected line count: %d", len(f.Lines))
	}
	assertLine(t, f.Lines[0], true, ip(0, 0), ip(1, 0), ip(1, 1))
}

func TestPathLineStepFlushesCurve(t *testing.T) {
	f := buildPath(t, ip(0, 0), geom.CurveSeg, ip(1, 1), geom.LineSeg, ip(2, 0), geom.LineSeg, ip(3, 0))
	if len(f.Lines) != 3 {
		t.Fatalf("unexpected line count: %d", len(f.Lines))
	}
	assertLine(t, f.Lines[0], true, ip(0, 0), ip(1, 1))
	assertLine(t, f.Lines[1], false, ip(1, 1), ip(2, 0))
	assertLine(t, f.Lines[2], false, ip(2, 0), ip(3, 0))
}

func TestPathSplicesFigure(t *testing.T) {
	inner := buildPath(t, ip(5, 5), geom.LineSeg, ip(6, 6))
	var b geom.PathBuilder
	b.Start(ip(0, 0))
	if err := b.Splice(geom.CurveSeg, inner); err != nil {
		t.Fatalf("splice failed: %v", err)
	}
	b.Step(geom.LineSeg, ip(7, 7))
	f, err := b.Figure()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(f.Lines) != 3 {
		t.Fatalf("unexpected line count: %d", len(f.Lines))
	}
	assertLine(t, f.Lines[0], true, ip(0, 0), ip(5, 5))
	assertLine(t, f.Lines[1], false, ip(5, 5), ip(6, 6))
	assertLine(t, f.Lines[2], false, ip(6, 6), ip(7, 7))
}

func TestCloseStraightAndCurved(t *testing.T) {
	open := buildPath(t, ip(0, 0), geom.LineSeg, ip(1, 0), geom.LineSeg, ip(1, 1))
	if open.IsClosed() {
		t.Fatalf("open path reported closed")
	}
	closed, err := open.Close(geom.LineSeg)
	if err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if len(closed.Lines) != 3 || !closed.IsClosed() {
		t.Fatalf("unexpected straight close: %+v", closed)
	}
	assertLine(t, closed.Lines[2], false, ip(1, 1), ip(0, 0))
	if len(open.Lines) != 2 {
		t.Fatalf("close mutated its input")
	}

	curved, err := open.Close(geom.CurveSeg)
	if err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if len(curved.Lines) != 2 || !curved.IsClosed() {
		t.Fatalf("unexpected curved close: %+v", curved)
	}
	assertLine(t, curved.Lines[1], true, ip(1, 0), ip(1, 1), ip(0, 0))

	if _, err := (geom.Figure{}).Close(geom.LineSeg); !errors.Is(err, geom.ErrMissingLines) {
		t.Fatalf("expected missing lines, got %v", err)
	}
}

func TestScaleKeepsIntegers(t *testing.T) {
	fa := geom.FigureArray{{Lines: []geom.Line{geom.Straight(ip(1, 2), ip(3, 4))}}}
	out := fa.Scale(geom.Int(4))
	assertLine(t, out[0].Lines[0], false, ip(4, 8), ip(12, 16))
	if out[0].Lines[0].Points[0].X.IsFloat() {
		t.Fatalf("integer scale produced float coordinates")
	}
	if !fa[0].Lines[0].Points[0].Equal(ip(1, 2)) {
		t.Fatalf("scale mutated its input")
	}
}

func TestRotatePromotesToFloat(t *testing.T) {
	fa := geom.FigureArray{{Lines: []geom.Line{geom.Straight(ip(1, 0), ip(2, 0))}}}
	out := fa.Rotate(geom.Int(180))
	p := out[0].Lines[0].Points[1]
	if !p.X.IsFloat() || !p.Y.IsFloat() {
		t.Fatalf("rotate must produce float coordinates: %+v", p)
	}
	if x := p.X.Float64(); x > -1.999999 || x < -2.000001 {
		t.Fatalf("unexpected rotated x: %v", x)
	}
}

func TestBBoxAndDirectionOffsets(t *testing.T) {
	a := geom.FigureArray{{Lines: []geom.Line{geom.Straight(ip(0, 0), ip(2, 1))}}}
	b := geom.FigureArray{{Lines: []geom.Line{geom.Straight(ip(0, 0), ip(3, 4))}}}
	ba, err := a.BBox()
	if err != nil {
		t.Fatalf("bbox failed: %v", err)
	}
	bb, _ := b.BBox()
	if ba.Width().Int64() != 2 || ba.Height().Int64() != 1 {
		t.Fatalf("unexpected bbox: %+v", ba)
	}
	if !ba.TopLeft().Equal(ip(0, 1)) {
		t.Fatalf("unexpected top left: %+v", ba.TopLeft())
	}
	if c := ba.Center(); c.X.Float64() != 1 || c.Y.Float64() != 0.5 {
		t.Fatalf("unexpected center: %+v", c)
	}

	cases := []struct {
		dir  geom.Direction
		want geom.Point
	}{
		{geom.Top, ip(0, 1)},
		{geom.Bottom, ip(0, -4)},
		{geom.Left, ip(-2, 0)},
		{geom.Right, ip(3, 0)},
		{geom.Ontop, ip(0, 0)},
	}
	for _, tc := range cases {
		if got := tc.dir.Offset(ba, bb); !got.Equal(tc.want) {
			t.Fatalf("%s offset: got %+v want %+v", tc.dir, got, tc.want)
		}
	}
	if got := geom.Center.Offset(ba, bb); !got.Equal(geom.Pt(geom.Float(0.5), geom.Float(-1.5))) {
		t.Fatalf("center offset: got %+v", got)
	}

	placed, err := geom.Place(a, b, geom.Right, ip(0, 1))
	if err != nil {
		t.Fatalf("place failed: %v", err)
	}
	if len(placed) != 2 {
		t.Fatalf("unexpected figure count: %d", len(placed))
	}
	assertLine(t, placed[1].Lines[0], false, ip(3, 1), ip(6, 5))

	if _, err := (geom.FigureArray{}).BBox(); !errors.Is(err, geom.ErrMissingLines) {
		t.Fatalf("expected missing lines, got %v", err)
	}
}

func TestNumWidening(t *testing.T) {
	if got := geom.Int(7).Div(geom.Int(2)); got.IsFloat() || got.Int64() != 3 {
		t.Fatalf("unexpected int division: %v", got)
	}
	if got := geom.Int(7).Div(geom.Float(2)); !got.IsFloat() || got.Float64() != 3.5 {
		t.Fatalf("unexpected mixed division: %v", got)
	}
	if got := geom.Float(-0.0).Neg().String(); got != "0" {
		t.Fatalf("unexpected zero rendering: %q", got)
	}
	if got := geom.Float(1.25).String(); got != "1.25" {
		t.Fatalf("unexpected float rendering: %q", got)
	}
}
