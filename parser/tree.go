package parser

import (
	"fmt"
	"strings"
)

// Node is one node of the concrete syntax tree: a symbol name, an optional
// literal value (set for terminals and for operator nodes) and ordered
// children.
type Node struct {
	Symbol   string
	Value    string
	HasValue bool
	Children []*Node
	Line     int
}

// Symbols produced by the parser.
const (
	SymProgram   = "program"
	SymDecls     = "decls"
	SymBody      = "body"
	SymDecl      = "decl"
	SymImport    = "import"
	SymType      = "type"
	SymArrayType = "array_type"
	SymVarDecl   = "var_decl"
	SymFuncDecl  = "func_decl"
	SymParams    = "params"
	SymParam     = "param"
	SymReturn    = "return"
	SymDraw      = "draw"
	SymAssign    = "assign"
	SymArrayAsgn = "array_assign"
	SymFor       = "for"
	SymFork      = "fork"
	SymBranch    = "branch"
	SymOtherwise = "otherwise"
	SymBlock     = "block"
	SymInt       = "int"
	SymFloat     = "float"
	SymBool      = "bool"
	SymIdent     = "ident"
	SymString    = "string"
	SymPoint     = "point"
	SymColor     = "color"
	SymArray     = "array"
	SymBinary    = "binary"
	SymUnary     = "unary"
	SymPathOp    = "path_op"
	SymPolygonOp = "polygon_op"
	SymFCall     = "fcall"
	SymArgs      = "args"
	SymSCall     = "scall"
	SymFigure    = "figure"
	SymNamedArgs = "named_args"
	SymNamedArg  = "named_arg"
	SymMember    = "member"
	SymIndex     = "index"
	SymPlace     = "place"
	SymDirection = "direction"
	SymScale     = "scale"
	SymRotate    = "rotate"
)

func branch(sym string, line int, children ...*Node) *Node {
	return &Node{Symbol: sym, Children: children, Line: line}
}

func leaf(sym, value string, line int) *Node {
	return &Node{Symbol: sym, Value: value, HasValue: true, Line: line}
}

// Child returns the i-th child or nil.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// String renders the tree as an s-expression.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	if n == nil {
		b.WriteString("()")
		return
	}
	if len(n.Children) == 0 {
		if n.HasValue {
			fmt.Fprintf(b, "%s:%s", n.Symbol, n.Value)
			return
		}
		b.WriteString(n.Symbol)
		return
	}
	b.WriteByte('(')
	b.WriteString(n.Symbol)
	if n.HasValue {
		fmt.Fprintf(b, ":%s", n.Value)
	}
	for _, c := range n.Children {
		b.WriteByte(' ')
		c.write(b)
	}
	b.WriteByte(')')
}
