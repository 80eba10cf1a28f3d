package geom

// Segment is the joint used between two consecutive path operands.
type Segment int

const (
	LineSeg Segment = iota
	CurveSeg
)

func (s Segment) String() string {
	if s == CurveSeg {
		return "~~"
	}
	return "--"
}

// PathBuilder turns a chain of points joined by line and curve steps into
// the lines of a figure.
//
// A line step always terminates a segment: pending curve points are flushed
// as one curved line and a fresh two-point straight line follows. Curve steps
// only accumulate points, so consecutive curve steps merge into a single
// Bezier segment.
type PathBuilder struct {
	lines   []Line
	pending []Point
	cur     Point
	started bool
}

// Start sets the first point of the path.
func (b *PathBuilder) Start(p Point) {
	b.cur = p
	b.started = true
}

// StartFigure seeds the path with the lines of an existing figure.
func (b *PathBuilder) StartFigure(f Figure) error {
	last, ok := f.Last()
	if !ok {
		return ErrMissingLines
	}
	b.lines = append(b.lines, f.Lines...)
	b.cur = last
	b.started = true
	return nil
}

// Step joins the current point to p.
func (b *PathBuilder) Step(seg Segment, p Point) {
	if !b.started {
		b.Start(p)
		return
	}
	if seg == CurveSeg {
		b.pending = append(b.pending, b.cur)
		b.cur = p
		return
	}
	b.flush()
	b.lines = append(b.lines, Straight(b.cur, p))
	b.cur = p
}

// Splice joins the current point to the first point of f and then appends
// the lines of f unchanged.
func (b *PathBuilder) Splice(seg Segment, f Figure) error {
	first, ok := f.First()
	if !ok {
		return ErrMissingLines
	}
	if !b.started {
		return b.StartFigure(f)
	}
	b.Step(seg, first)
	b.flush()
	b.lines = append(b.lines, f.Lines...)
	last, _ := f.Last()
	b.cur = last
	return nil
}

func (b *PathBuilder) flush() {
	if len(b.pending) == 0 {
		return
	}
	pts := append(b.pending, b.cur)
	b.lines = append(b.lines, Curved(pts...))
	b.pending = nil
}

// Figure flushes pending points and returns the built figure.
func (b *PathBuilder) Figure() (Figure, error) {
	b.flush()
	if len(b.lines) == 0 {
		return Figure{}, ErrMissingLines
	}
	lines := make([]Line, len(b.lines))
	copy(lines, b.lines)
	return Figure{Lines: lines}, nil
}
