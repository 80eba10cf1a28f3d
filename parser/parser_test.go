package parser_test

import (
	"strings"
	"testing"

	"github.com/gosuda/vdraw/parser"
)

func TestParseExprShapes(t *testing.T) {
	cases := map[string]string{
		"1 + 2 * 3":                     "(binary:+ int:1 (binary:* int:2 int:3))",
		"1 - 2 - 3":                     "(binary:- (binary:- int:1 int:2) int:3)",
		"a || b && !c":                  "(binary:|| ident:a (binary:&& ident:b (unary:! ident:c)))",
		"x < 1 == y":                    "(binary:== (binary:< ident:x int:1) ident:y)",
		"-3":                            "int:-3",
		"-2.5":                          "float:-2.5",
		"-x":                            "(binary:- int:0 ident:x)",
		"(1, 2.5)":                      "(point int:1 float:2.5)",
		"(1 + 2)":                       "(binary:+ int:1 int:2)",
		"[]":                            "array",
		"[1, 2]":                        "(array int:1 int:2)",
		"a--b~~c":                       "(path_op:-- ident:a (path_op:~~ ident:b ident:c))",
		"a--b~~*":                       "(polygon_op:~~* (path_op:-- ident:a ident:b))",
		"p.x":                           "(member ident:p ident:x)",
		"s.center":                      "(member ident:s ident:center)",
		"xs[i + 1]":                     "(index ident:xs (binary:+ ident:i int:1))",
		"f()":                           "(fcall ident:f args)",
		"f(1, g(2))":                    "(fcall ident:f (args int:1 (fcall ident:g (args int:2))))",
		"box(||)":                       "(scall ident:box named_args)",
		"box(|w=1, h=2|)":               "(scall ident:box (named_args (named_arg:w int:1) (named_arg:h int:2)))",
		"figure(a--b)(|fill=c|)":        "(figure (path_op:-- ident:a ident:b) (named_args (named_arg:fill ident:c)))",
		"rgba(1, 2, 3, 4)":              "(color int:1 int:2 int:3 int:4)",
		"place a top b":                 "(place ident:a direction:top ident:b)",
		"place a ontop b offset (1, 1)": "(place ident:a direction:ontop ident:b (point int:1 int:1))",
		"scale s by 2":                  "(scale ident:s int:2)",
		"rotate s by 0.5 + 1":           "(binary:+ (rotate ident:s float:0.5) int:1)",
	}
	for src, want := range cases {
		n, err := parser.ParseExpr(src)
		if err != nil {
			t.Fatalf("%q: parse failed: %v", src, err)
		}
		if got := n.String(); got != want {
			t.Fatalf("%q: expected %s, got %s", src, want, got)
		}
	}
}

func TestParseExprErrors(t *testing.T) {
	cases := map[string]string{
		"1 +":           "end of input",
		"(1":            "')'",
		"1 2":           "after expression",
		"rgba(1, 2, 3)": "4 components",
		"@":             "unexpected character",
		"place a up b":  "placement direction",
		"scale s 2":     `"by"`,
		"box(|w 1|)":    "'='",
		"figure(a--b)":  "'(|'",
		"p.":            "field name",
	}
	for src, want := range cases {
		_, err := parser.ParseExpr(src)
		if err == nil {
			t.Fatalf("%q: expected error", src)
		}
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("%q: expected error mentioning %s, got %v", src, want, err)
		}
	}
}

func TestParseProgram(t *testing.T) {
	src := `// a tile
import tile "lib/tile.vd";
w: int = 2;
pts: [point];
begin
let a: float = 1.5;
fn twice(x: int) -> int {
	return x * 2;
}
xs[0] = (1, 1);
a = 2.0;
for i in 0 to w {
	draw tile(||) at (i, 0);
}
fork {
	(a > 1.0) -> { draw figure((0,0)--(1,1))(||); }
	(otherwise) -> {}
}
`
	root, err := parser.ParseProgram(src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if root.Symbol != parser.SymProgram || len(root.Children) != 2 {
		t.Fatalf("unexpected root: %s", root)
	}
	decls, body := root.Child(0), root.Child(1)
	if got := decls.String(); got != `(decls (import ident:tile string:lib/tile.vd) (decl ident:w type:int int:2) (decl ident:pts (array_type type:point)))` {
		t.Fatalf("unexpected decls: %s", got)
	}
	var syms []string
	for _, c := range body.Children {
		syms = append(syms, c.Symbol)
	}
	if got := strings.Join(syms, " "); got != "var_decl func_decl array_assign assign for fork" {
		t.Fatalf("unexpected statements: %s", got)
	}
	if body.Line != 5 {
		t.Fatalf("body should start at the begin line, got %d", body.Line)
	}
	fork := body.Child(5)
	if fork.Child(0).Symbol != parser.SymBranch || fork.Child(1).Symbol != parser.SymOtherwise {
		t.Fatalf("unexpected fork: %s", fork)
	}
}

func TestParseProgramErrors(t *testing.T) {
	cases := map[string]string{
		"missing begin":     "w: int;\n",
		"otherwise first":   "begin\nfork {\n(otherwise) -> {}\n(true) -> {}\n}\n",
		"unterminated":      "begin\nfor i in 0 to 3 {\n",
		"let needs type":    "begin\nlet x = 1;\n",
		"missing semicolon": "begin\ndraw s\n",
		"bad statement":     "begin\n1 + 2;\n",
		"bad string":        "import a \"lib;\nbegin\n",
		"fn arrow":          "begin\nfn f(x: int) int { return x; }\n",
		"bad type":          "w: circle;\nbegin\n",
	}
	for name, src := range cases {
		if _, err := parser.ParseProgram(src); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}

	_, err := parser.ParseProgram("begin\nfork {\n(otherwise) -> {}\n(true) -> {}\n}\n")
	if err == nil || !strings.Contains(err.Error(), "line 4: fork branch after otherwise") {
		t.Fatalf("unexpected error: %v", err)
	}
}
