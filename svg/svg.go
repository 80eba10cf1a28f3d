// Package svg renders shapes as SVG documents.
package svg

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/gosuda/vdraw/geom"
)

var (
	ErrTooManyPoints     = errors.New("unsupported number of points in line")
	ErrAttributeNotValid = errors.New("attribute not valid")
	ErrMissingLines      = geom.ErrMissingLines
)

const namespace = "http://www.w3.org/2000/svg"

type Document struct {
	XMLName xml.Name `xml:"svg"`
	Xmlns   string   `xml:"xmlns,attr"`
	ViewBox string   `xml:"viewBox,attr"`
	Paths   []Path   `xml:"path"`
}

type Path struct {
	D           string `xml:"d,attr"`
	Fill        string `xml:"fill,attr"`
	Stroke      string `xml:"stroke,attr"`
	StrokeWidth string `xml:"stroke-width,attr,omitempty"`
}

// Render converts a shape into a document. The shape uses y-up coordinates;
// the document is y-down.
func Render(shape geom.FigureArray) (*Document, error) {
	flipped := shape.FlipY()
	box, err := flipped.BBox()
	if err != nil {
		return nil, fmt.Errorf("svg: %w", err)
	}
	thickness, err := maxThickness(flipped)
	if err != nil {
		return nil, err
	}

	doc := &Document{Xmlns: namespace, ViewBox: viewBox(box, thickness)}
	for i, fig := range flipped {
		p, err := renderFigure(fig)
		if err != nil {
			return nil, fmt.Errorf("svg: figure %d: %w", i, err)
		}
		doc.Paths = append(doc.Paths, p)
	}
	return doc, nil
}

func viewBox(box geom.BBox, t geom.Num) string {
	two := geom.Int(2)
	parts := []string{
		box.MinX.Sub(t).String(),
		box.MinY.Sub(t).String(),
		box.Width().Add(t.Mul(two)).String(),
		box.Height().Add(t.Mul(two)).String(),
	}
	return strings.Join(parts, " ")
}

func maxThickness(fa geom.FigureArray) (geom.Num, error) {
	out := geom.Int(1)
	seen := false
	for i, fig := range fa {
		a, ok := fig.Attrs["thickness"]
		if !ok {
			continue
		}
		n, err := thicknessOf(a)
		if err != nil {
			return geom.Num{}, fmt.Errorf("svg: figure %d: %w", i, err)
		}
		if !seen || n.Cmp(out) > 0 {
			out = n
		}
		seen = true
	}
	return out, nil
}

func thicknessOf(a geom.Attr) (geom.Num, error) {
	n, ok := a.(geom.Num)
	if !ok || n.IsFloat() {
		return geom.Num{}, fmt.Errorf("thickness must be an int: %w", ErrAttributeNotValid)
	}
	return n, nil
}

func renderFigure(fig geom.Figure) (Path, error) {
	d, err := PathData(fig)
	if err != nil {
		return Path{}, err
	}
	p := Path{D: d, Fill: "none", Stroke: rgba(geom.Color{A: 255})}

	names := make([]string, 0, len(fig.Attrs))
	for k := range fig.Attrs {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, name := range names {
		a := fig.Attrs[name]
		switch name {
		case "fill", "stroke":
			c, ok := a.(geom.Color)
			if !ok {
				return Path{}, fmt.Errorf("%s must be a color: %w", name, ErrAttributeNotValid)
			}
			if name == "fill" {
				if !fig.IsClosed() {
					return Path{}, fmt.Errorf("fill on an open figure: %w", ErrAttributeNotValid)
				}
				p.Fill = rgba(c)
			} else {
				p.Stroke = rgba(c)
			}
		case "thickness":
			n, err := thicknessOf(a)
			if err != nil {
				return Path{}, err
			}
			p.StrokeWidth = n.String()
		default:
			return Path{}, fmt.Errorf("%q: %w", name, ErrAttributeNotValid)
		}
	}
	return p, nil
}

// PathData builds the d attribute of a figure: a move to the first point,
// then one command per line chosen by its point count.
func PathData(fig geom.Figure) (string, error) {
	first, ok := fig.First()
	if !ok {
		return "", ErrMissingLines
	}
	var b strings.Builder
	b.WriteString("M")
	writePoint(&b, first)
	for i, l := range fig.Lines {
		switch len(l.Points) {
		case 2:
			b.WriteString("L")
		case 3:
			b.WriteString("Q")
		case 4:
			b.WriteString("C")
		default:
			return "", fmt.Errorf("line %d has %d points: %w", i, len(l.Points), ErrTooManyPoints)
		}
		for j, pt := range l.Points[1:] {
			if j > 0 {
				b.WriteString(" ")
			}
			writePoint(&b, pt)
		}
	}
	return b.String(), nil
}

func writePoint(b *strings.Builder, p geom.Point) {
	b.WriteString(p.X.String())
	b.WriteString(",")
	b.WriteString(p.Y.String())
}

func rgba(c geom.Color) string {
	alpha := strconv.FormatFloat(float64(c.A)/255, 'f', -1, 64)
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.R, c.G, c.B, alpha)
}

// WriteTo writes the document with an XML header.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	body, err := xml.MarshalIndent(d, "", "  ")
	if err != nil {
		return 0, err
	}
	n, err := io.WriteString(w, xml.Header+string(body)+"\n")
	return int64(n), err
}

func (d *Document) String() string {
	var b strings.Builder
	if _, err := d.WriteTo(&b); err != nil {
		return ""
	}
	return b.String()
}
