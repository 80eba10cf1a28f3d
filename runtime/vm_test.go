package vdruntime_test

import (
	"errors"
	"testing"

	"github.com/gosuda/vdraw/ast"
	"github.com/gosuda/vdraw/geom"
	vdruntime "github.com/gosuda/vdraw/runtime"
	"github.com/gosuda/vdraw/source"
	"github.com/gosuda/vdraw/typecheck"
)

func runFiles(t *testing.T, files map[string]string, main string, overrides map[string]vdruntime.Value) (*vdruntime.Env, error) {
	t.Helper()
	ld := source.NewLoader(source.MapReader(files))
	prog, err := ld.Load(main)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := typecheck.Check(prog, ld); err != nil {
		t.Fatalf("check: %v", err)
	}
	return vdruntime.Interpret(prog, ld, overrides)
}

func run(t *testing.T, src string) (*vdruntime.Env, error) {
	t.Helper()
	return runFiles(t, map[string]string{"main.vd": src}, "main.vd", nil)
}

func mustRun(t *testing.T, src string) *vdruntime.Env {
	t.Helper()
	env, err := run(t, src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return env
}

func global(t *testing.T, env *vdruntime.Env, name string) vdruntime.Value {
	t.Helper()
	v, ok := env.Lookup(name)
	if !ok {
		t.Fatalf("%s not bound", name)
	}
	return v
}

func TestArithmeticWidening(t *testing.T) {
	env := mustRun(t, `begin
let a: int = 7 / 2;
let b: float = 7 / 2.0;
let c: int = 7 % 3;
let d: float = 1 + 0.5;
let e: bool = 2 == 2.0;
let f: int = -3 + 1;
let g: int = 2 - -(1 + 1);`)
	cases := map[string]string{"a": "3", "b": "3.5", "c": "1", "d": "1.5", "e": "true", "f": "-2", "g": "4"}
	for name, want := range cases {
		if got := global(t, env, name).String(); got != want {
			t.Fatalf("%s: expected %s, got %s", name, want, got)
		}
	}
	if global(t, env, "a").Kind() != vdruntime.IntKind {
		t.Fatalf("int division should stay int")
	}
}

func TestDivideByZero(t *testing.T) {
	for _, src := range []string{
		"begin\nlet a: int = 10 / 0;",
		"begin\nlet a: float = 10 / 0.0;",
		"begin\nlet a: int = 10 % 0;",
	} {
		if _, err := run(t, src); !errors.Is(err, vdruntime.ErrDivideByZero) {
			t.Fatalf("%q: expected divide by zero, got %v", src, err)
		}
	}
}

func TestArrayIndexing(t *testing.T) {
	env := mustRun(t, `begin
let a: [int] = [10, 20, 30];
let b: [int] = a;
let x: int = a[1];
b[0] = 99;`)
	if got := global(t, env, "x").Int64(); got != 20 {
		t.Fatalf("expected 20, got %d", got)
	}
	if got := global(t, env, "a").String(); got != "[10, 20, 30]" {
		t.Fatalf("assignment through b leaked into a: %s", got)
	}
	if got := global(t, env, "b").String(); got != "[99, 20, 30]" {
		t.Fatalf("unexpected b: %s", got)
	}

	for _, src := range []string{
		"begin\nlet a: [int] = [1, 2, 3];\nlet x: int = a[3];",
		"begin\nlet a: [int] = [1, 2, 3];\nlet x: int = a[-1];",
		"begin\nlet a: [int] = [];\na[0] = 1;",
	} {
		if _, err := run(t, src); !errors.Is(err, vdruntime.ErrIndexOutOfBounds) {
			t.Fatalf("%q: expected out of bounds, got %v", src, err)
		}
	}
}

func TestForkRunsFirstMatch(t *testing.T) {
	env := mustRun(t, `begin
let hits: [int] = [0, 0, 0];
fork {
	(false) -> { hits[0] = 1; }
	(true) -> { hits[1] = 1; }
	(otherwise) -> { hits[2] = 1; }
}
let n: int = 0;
fork {
	(1 > 2) -> { n = 1; }
	(otherwise) -> { n = 2; }
}`)
	if got := global(t, env, "hits").String(); got != "[0, 1, 0]" {
		t.Fatalf("unexpected branches: %s", got)
	}
	if got := global(t, env, "n").Int64(); got != 2 {
		t.Fatalf("otherwise did not run: %d", got)
	}
}

func TestForLoop(t *testing.T) {
	env := mustRun(t, `begin
let sum: int = 0;
for i in 2 to 5 { sum = sum + i; }
for i in 5 to 2 { sum = 1000; }`)
	if got := global(t, env, "sum").Int64(); got != 9 {
		t.Fatalf("expected 9, got %d", got)
	}
	if _, ok := env.Lookup("i"); ok {
		t.Fatalf("loop counter escaped its scope")
	}
}

func TestFunctions(t *testing.T) {
	env := mustRun(t, `begin
fn fact(n: int) -> int {
	fork {
		(n <= 1) -> { return 1; }
	}
	return n * fact(n - 1);
}
fn first(n: int) -> int {
	for i in 0 to 10 {
		fork { (i == n) -> { return i * 100; } }
	}
	return -1;
}
let x: int = fact(5);
let y: int = first(3);
let z: int = first(20);`)
	want := map[string]int64{"x": 120, "y": 300, "z": -1}
	for name, w := range want {
		if got := global(t, env, name).Int64(); got != w {
			t.Fatalf("%s: expected %d, got %d", name, w, got)
		}
	}
}

func TestFunctionNotReturning(t *testing.T) {
	_, err := run(t, `begin
fn f(n: int) -> int {
	fork { (n > 0) -> { return n; } }
}
let x: int = f(-1);`)
	if !errors.Is(err, vdruntime.ErrFunctionNotReturning) {
		t.Fatalf("expected not returning, got %v", err)
	}
}

func TestDeclarationsAndOverrides(t *testing.T) {
	src := `w: int = 2;
h: int;
begin
let area: int = w * h;`
	files := map[string]string{"main.vd": src}
	env, err := runFiles(t, files, "main.vd", map[string]vdruntime.Value{"h": vdruntime.Int(5)})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := global(t, env, "area").Int64(); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
	if v, ok := env.Decl("w"); !ok || v.Int64() != 2 {
		t.Fatalf("unexpected default: %v", v)
	}

	if _, err := runFiles(t, files, "main.vd", nil); !errors.Is(err, vdruntime.ErrUnresolvedDecl) {
		t.Fatalf("expected unresolved declaration, got %v", err)
	}
}

func TestDrawAt(t *testing.T) {
	env := mustRun(t, `begin
let s: shape = figure((0,0)--(2,0)--(2,1)--(0,1)--*)(||);
draw s;
draw s at (10, 10);`)
	draws := env.Draws()
	if len(draws) != 2 {
		t.Fatalf("expected two draws, got %d", len(draws))
	}
	box, err := draws[1].BBox()
	if err != nil {
		t.Fatalf("bbox: %v", err)
	}
	tl := box.TopLeft()
	if tl.X.Int64() != 10 || tl.Y.Int64() != 10 || box.MinY.Int64() != 9 {
		t.Fatalf("unexpected top-left after draw at: %v %v", tl, box)
	}
	if len(env.Shape()) != 2 {
		t.Fatalf("union should hold both figures")
	}
}

func TestPathValues(t *testing.T) {
	env := mustRun(t, `begin
let p: path = (0,0)~~(1,0)~~(1,1);
let q: path = (5,5)--p--(2,2);
let g: polygon = (0,0)--(1,0)--(1,1)--*;
let c: polygon = (0,0)~~(1,0)~~(1,1)~~*;
let h: polygon = g--(3,3);`)

	p := global(t, env, "p").Figure()
	if len(p.Lines) != 1 || !p.Lines[0].Curved || len(p.Lines[0].Points) != 3 {
		t.Fatalf("curve steps should merge: %+v", p.Lines)
	}

	q := global(t, env, "q").Figure()
	if len(q.Lines) != 3 || q.Lines[1].Curved != true || len(q.Lines[0].Points) != 2 {
		t.Fatalf("unexpected spliced path: %+v", q.Lines)
	}

	g := global(t, env, "g")
	if g.Kind() != vdruntime.PolygonKind || !g.Figure().IsClosed() || len(g.Figure().Lines) != 3 {
		t.Fatalf("straight close should add a closing line: %+v", g.Figure().Lines)
	}
	c := global(t, env, "c").Figure()
	if len(c.Lines) != 1 || len(c.Lines[0].Points) != 4 || !c.IsClosed() {
		t.Fatalf("curve close should extend the last line: %+v", c.Lines)
	}
	if global(t, env, "h").Kind() != vdruntime.PolygonKind {
		t.Fatalf("extending a polygon keeps a polygon")
	}
}

func TestMembersAndManipulation(t *testing.T) {
	env := mustRun(t, `begin
let s: shape = figure((1,2)--(3,4))(|thickness=3, stroke=rgba(255, 0, 0, 255)|);
let big: shape = scale s by 4;
let w: float = big.width;
let tl: point = big.top_left;
let x: float = tl.x;
let r: shape = rotate s by 90;
let both: shape = place s right s;
let bw: float = both.width;
let col: color = rgba(1, 2, 3, 4);
let gr: int = col.g;`)
	big := global(t, env, "big").Shape()
	pts := big[0].Lines[0].Points
	if pts[0].X.Int64() != 4 || pts[0].Y.Int64() != 8 || pts[1].X.Int64() != 12 || pts[1].Y.Int64() != 16 {
		t.Fatalf("unexpected scaled points: %v", pts)
	}
	if pts[0].X.IsFloat() {
		t.Fatalf("integer scale should stay integral")
	}
	if got := global(t, env, "w").String(); got != "8" {
		t.Fatalf("expected width 8, got %s", got)
	}
	if got := global(t, env, "x").String(); got != "4" {
		t.Fatalf("expected top-left x 4, got %s", got)
	}
	if got := global(t, env, "bw").String(); got != "4" {
		t.Fatalf("expected placed width 4, got %s", got)
	}
	if got := global(t, env, "gr").Int64(); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	attrs := big[0].Attrs
	if n, ok := attrs["thickness"].(geom.Num); !ok || n.Int64() != 3 {
		t.Fatalf("attributes should survive scaling: %v", attrs)
	}
	if c, ok := attrs["stroke"].(geom.Color); !ok || c.R != 255 {
		t.Fatalf("unexpected stroke: %v", attrs["stroke"])
	}
	r := global(t, env, "r").Shape()
	if !r[0].Lines[0].Points[0].X.IsFloat() {
		t.Fatalf("rotation should produce float coordinates")
	}
}

func TestNamedShapes(t *testing.T) {
	files := map[string]string{
		"shapes/box.vd": `w: int;
h: int = 1;
begin
draw figure((0,0)--(w,0)--(w,h)--(0,h)--*)(||);
draw figure((0,0)--(w,h))(||);`,
		"main.vd": `import box "shapes/box.vd";
begin
let a: shape = box(|w=2|);
let b: shape = box(|w=3, h=5|);
let aw: float = a.width;
let bh: float = b.height;
draw a;`,
	}
	env, err := runFiles(t, files, "main.vd", nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if a := global(t, env, "a").Shape(); len(a) != 2 {
		t.Fatalf("named shape should union every draw, got %d figures", len(a))
	}
	if got := global(t, env, "aw").String(); got != "2" {
		t.Fatalf("expected width 2, got %s", got)
	}
	if got := global(t, env, "bh").String(); got != "5" {
		t.Fatalf("expected height 5, got %s", got)
	}
}

func TestFunctionScopeIsolation(t *testing.T) {
	env := mustRun(t, `k: int = 3;
begin
let outer: int = 1;
fn f(outer: int) -> int {
	let k: int = outer * 2;
	return k;
}
let r: int = f(10);`)
	if got := global(t, env, "r").Int64(); got != 20 {
		t.Fatalf("expected 20, got %d", got)
	}
	if got := global(t, env, "outer").Int64(); got != 1 {
		t.Fatalf("call clobbered caller scope: %d", got)
	}
	if v, _ := env.Decl("k"); v.Int64() != 3 {
		t.Fatalf("call clobbered declaration: %v", v)
	}
}

func TestUnresolvedShape(t *testing.T) {
	prog := &ast.Program{Body: []ast.Stmt{
		ast.Draw{Shape: ast.SCall{Name: "ghost"}},
	}}
	if _, err := vdruntime.Interpret(prog, nil, nil); !errors.Is(err, vdruntime.ErrUnresolvedShape) {
		t.Fatalf("expected unresolved shape, got %v", err)
	}
}

func TestEvalStandalone(t *testing.T) {
	vm := vdruntime.New(nil, nil)
	v, err := vm.Eval(ast.PointExpr{X: ast.IntLit{Value: 1}, Y: ast.FloatLit{Value: 2.5}})
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if v.String() != "(1, 2.5)" {
		t.Fatalf("unexpected point: %s", v)
	}
}
