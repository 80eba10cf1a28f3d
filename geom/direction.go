package geom

import "fmt"

// Direction says where place puts the second shape relative to the first.
type Direction int

const (
	Top Direction = iota
	Bottom
	Left
	Right
	Ontop
	Center
)

var directionNames = map[Direction]string{
	Top:    "top",
	Bottom: "bottom",
	Left:   "left",
	Right:  "right",
	Ontop:  "ontop",
	Center: "center",
}

func (d Direction) String() string {
	if s, ok := directionNames[d]; ok {
		return s
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

func ParseDirection(s string) (Direction, error) {
	for d, name := range directionNames {
		if name == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Offset is the translation applied to the second shape, given the bounding
// boxes of the base shape (s1) and the second shape (s2).
func (d Direction) Offset(s1, s2 BBox) Point {
	zero := Int(0)
	switch d {
	case Top:
		return Pt(zero, s1.Height())
	case Bottom:
		return Pt(zero, s2.Height().Neg())
	case Left:
		return Pt(s1.Width().Neg(), zero)
	case Right:
		return Pt(s2.Width(), zero)
	case Center:
		return s1.TopLeft().Sub(s1.Center()).Sub(s2.TopLeft().Sub(s2.Center()))
	default:
		return Pt(zero, zero)
	}
}

// Place translates second by the direction offset plus extra and unions it
// with base.
func Place(base, second FigureArray, d Direction, extra Point) (FigureArray, error) {
	b1, err := base.BBox()
	if err != nil {
		return nil, fmt.Errorf("place %s: base: %w", d, err)
	}
	b2, err := second.BBox()
	if err != nil {
		return nil, fmt.Errorf("place %s: second: %w", d, err)
	}
	off := d.Offset(b1, b2).Add(extra)
	return base.Union(second.Translate(off)), nil
}
