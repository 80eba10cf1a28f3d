// Package ast is the typed syntax model of a vdraw program. Nodes are built
// once by Lower and never mutated afterwards.
package ast

import "github.com/gosuda/vdraw/geom"

type Program struct {
	Path  string
	Decls []Stmt
	Body  []Stmt
}

type Expr interface {
	isExpr()
}

type IntLit struct {
	Value int64
}

func (IntLit) isExpr() {}

type FloatLit struct {
	Value float64
}

func (FloatLit) isExpr() {}

type BoolLit struct {
	Value bool
}

func (BoolLit) isExpr() {}

type Variable struct {
	Name string
}

func (Variable) isExpr() {}

type PointExpr struct {
	X Expr
	Y Expr
}

func (PointExpr) isExpr() {}

type ColorExpr struct {
	R, G, B, A Expr
}

func (ColorExpr) isExpr() {}

type ArrayExpr struct {
	Elems []Expr
}

func (ArrayExpr) isExpr() {}

// BinaryExpr covers arithmetic, comparison and logical operators.
type BinaryExpr struct {
	Op  string
	LHS Expr
	RHS Expr
}

func (BinaryExpr) isExpr() {}

type UnaryExpr struct {
	Op   string
	Expr Expr
}

func (UnaryExpr) isExpr() {}

// PathExpr joins two path operands with a line or curve step. Chains are
// right-nested: a--b--c is PathExpr{a, PathExpr{b, c}}.
type PathExpr struct {
	Op  geom.Segment
	LHS Expr
	RHS Expr
}

func (PathExpr) isExpr() {}

// PolygonExpr closes a path.
type PolygonExpr struct {
	Op   geom.Segment
	Path Expr
}

func (PolygonExpr) isExpr() {}

// FCall calls a user function.
type FCall struct {
	Name string
	Args []Expr
}

func (FCall) isExpr() {}

type NamedArg struct {
	Name  string
	Value Expr
}

// SCall constructs a shape. With PathPoly nil it instantiates the imported
// program aliased by Name, the arguments overriding its declaration fields;
// otherwise it wraps the path or polygon PathPoly in a figure whose
// attributes are the arguments.
type SCall struct {
	Name     string
	Args     []NamedArg
	PathPoly Expr
}

func (SCall) isExpr() {}

func (c SCall) IsInline() bool {
	return c.PathPoly != nil
}

type Member struct {
	Ident string
	Field string
}

func (Member) isExpr() {}

type ArrayIndex struct {
	Ident string
	Index Expr
}

func (ArrayIndex) isExpr() {}

type Place struct {
	Base   Expr
	Second Expr
	Dir    geom.Direction
	Offset Expr
}

func (Place) isExpr() {}

type Scale struct {
	Base   Expr
	Factor Expr
}

func (Scale) isExpr() {}

type Rotate struct {
	Base   Expr
	Factor Expr
}

func (Rotate) isExpr() {}

type Stmt interface {
	isStmt()
}

// VarDecl binds an ordinary local variable.
type VarDecl struct {
	Name  string
	Type  Type
	Value Expr
}

func (VarDecl) isStmt() {}

// Decl binds a declaration field: a program parameter an importer or the
// command line may override. Value is nil when there is no default.
type Decl struct {
	Name  string
	Type  Type
	Value Expr
}

func (Decl) isStmt() {}

type Param struct {
	Name string
	Type Type
}

type FuncDecl struct {
	Name   string
	Return Type
	Params []Param
	Body   []Stmt
}

func (FuncDecl) isStmt() {}

type Return struct {
	Value Expr
}

func (Return) isStmt() {}

type Import struct {
	Name string
	Path string
}

func (Import) isStmt() {}

// Draw appends a shape to the draw list, optionally moving its top-left
// corner to At.
type Draw struct {
	Shape Expr
	At    Expr
}

func (Draw) isStmt() {}

type Assign struct {
	Name  string
	Value Expr
}

func (Assign) isStmt() {}

type ArrayAssign struct {
	Name  string
	Index Expr
	Value Expr
}

func (ArrayAssign) isStmt() {}

// For runs Body for Counter in the half-open range [From, To).
type For struct {
	Counter string
	From    Expr
	To      Expr
	Body    []Stmt
}

func (For) isStmt() {}

type ForkBranch struct {
	Cond Expr
	Body []Stmt
}

// Fork runs the body of the first branch whose condition holds, or
// Otherwise when none does.
type Fork struct {
	Branches     []ForkBranch
	Otherwise    []Stmt
	HasOtherwise bool
}

func (Fork) isStmt() {}
