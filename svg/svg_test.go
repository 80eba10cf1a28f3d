package svg_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/gosuda/vdraw/geom"
	"github.com/gosuda/vdraw/svg"
)

func pt(x, y int64) geom.Point {
	return geom.Pt(geom.Int(x), geom.Int(y))
}

func figure(attrs map[string]geom.Attr, lines ...geom.Line) geom.Figure {
	return geom.Figure{Lines: lines, Attrs: attrs}
}

func TestRenderSingleLine(t *testing.T) {
	doc, err := svg.Render(geom.FigureArray{figure(nil, geom.Straight(pt(0, 0), pt(1, 0)))})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if doc.ViewBox != "-1 -1 3 2" {
		t.Fatalf("unexpected viewbox %q", doc.ViewBox)
	}
	if len(doc.Paths) != 1 || doc.Paths[0].D != "M0,0L1,0" {
		t.Fatalf("unexpected paths: %+v", doc.Paths)
	}
	p := doc.Paths[0]
	if p.Fill != "none" || p.Stroke != "rgba(0,0,0,1)" || p.StrokeWidth != "" {
		t.Fatalf("unexpected defaults: %+v", p)
	}
	out := doc.String()
	if !strings.Contains(out, `viewBox="-1 -1 3 2"`) || !strings.Contains(out, `d="M0,0L1,0"`) {
		t.Fatalf("unexpected document:\n%s", out)
	}
}

func TestPathDataCommands(t *testing.T) {
	fig := figure(nil,
		geom.Curved(pt(0, 0), pt(1, 0), pt(1, 1)),
		geom.Curved(pt(1, 1), pt(2, 1), pt(2, 2), pt(3, 3)),
	)
	d, err := svg.PathData(fig)
	if err != nil {
		t.Fatalf("path data: %v", err)
	}
	if d != "M0,0Q1,0 1,1C2,1 2,2 3,3" {
		t.Fatalf("unexpected d %q", d)
	}

	long := figure(nil, geom.Curved(pt(0, 0), pt(1, 0), pt(1, 1), pt(2, 2), pt(3, 3)))
	if _, err := svg.PathData(long); !errors.Is(err, svg.ErrTooManyPoints) {
		t.Fatalf("expected too many points, got %v", err)
	}
	if _, err := svg.PathData(geom.Figure{}); !errors.Is(err, svg.ErrMissingLines) {
		t.Fatalf("expected missing lines, got %v", err)
	}
}

func TestRenderFlipsY(t *testing.T) {
	doc, err := svg.Render(geom.FigureArray{figure(nil, geom.Straight(pt(0, 0), pt(2, 3)))})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if doc.Paths[0].D != "M0,0L2,-3" {
		t.Fatalf("unexpected d %q", doc.Paths[0].D)
	}
	if doc.ViewBox != "-1 -4 4 5" {
		t.Fatalf("unexpected viewbox %q", doc.ViewBox)
	}
}

func TestRenderAttributes(t *testing.T) {
	closed := []geom.Line{
		geom.Straight(pt(0, 0), pt(4, 0)),
		geom.Straight(pt(4, 0), pt(4, 4)),
		geom.Straight(pt(4, 4), pt(0, 0)),
	}
	attrs := map[string]geom.Attr{
		"fill":      geom.Color{R: 255, A: 255},
		"stroke":    geom.Color{G: 128, A: 51},
		"thickness": geom.Int(3),
	}
	doc, err := svg.Render(geom.FigureArray{figure(attrs, closed...), figure(nil, geom.Straight(pt(0, 0), pt(1, 1)))})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	p := doc.Paths[0]
	if p.Fill != "rgba(255,0,0,1)" || p.Stroke != "rgba(0,128,0,0.2)" || p.StrokeWidth != "3" {
		t.Fatalf("unexpected attributes: %+v", p)
	}
	if doc.ViewBox != "-3 -7 10 10" {
		t.Fatalf("thickness should widen the viewbox, got %q", doc.ViewBox)
	}
	if doc.Paths[1].Fill != "none" {
		t.Fatalf("second figure should keep defaults: %+v", doc.Paths[1])
	}
}

func TestRenderRejectsAttributes(t *testing.T) {
	line := geom.Straight(pt(0, 0), pt(1, 1))
	cases := map[string]map[string]geom.Attr{
		"fill open":       {"fill": geom.Color{A: 255}},
		"float thickness": {"thickness": geom.Float(1.5)},
		"stroke number":   {"stroke": geom.Int(1)},
		"unknown":         {"opacity": geom.Int(1)},
		"opaque":          {"stroke": geom.Opaque{TypeName: "point"}},
	}
	for name, attrs := range cases {
		_, err := svg.Render(geom.FigureArray{figure(attrs, line)})
		if !errors.Is(err, svg.ErrAttributeNotValid) {
			t.Fatalf("%s: expected attribute error, got %v", name, err)
		}
	}
	if _, err := svg.Render(nil); !errors.Is(err, svg.ErrMissingLines) {
		t.Fatalf("expected missing lines for an empty shape, got %v", err)
	}
}
