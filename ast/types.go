package ast

// Type is the static type of an expression or binding.
type Type int

const (
	Invalid Type = iota
	Int
	Bool
	Float
	Shape
	Point
	Color
	Path
	Polygon
	IntArray
	BoolArray
	FloatArray
	ShapeArray
	PointArray
	ColorArray
	// Empty is the type of the literal [] and unifies with any array type.
	Empty
)

var typeNames = map[Type]string{
	Invalid:    "invalid",
	Int:        "int",
	Bool:       "bool",
	Float:      "float",
	Shape:      "shape",
	Point:      "point",
	Color:      "color",
	Path:       "path",
	Polygon:    "polygon",
	IntArray:   "[int]",
	BoolArray:  "[bool]",
	FloatArray: "[float]",
	ShapeArray: "[shape]",
	PointArray: "[point]",
	ColorArray: "[color]",
	Empty:      "[]",
}

var arrayOf = map[Type]Type{
	Int:   IntArray,
	Bool:  BoolArray,
	Float: FloatArray,
	Shape: ShapeArray,
	Point: PointArray,
	Color: ColorArray,
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "invalid"
}

// ArrayOf returns the array type with element type t. Paths, polygons and
// arrays have no array type.
func (t Type) ArrayOf() (Type, bool) {
	at, ok := arrayOf[t]
	return at, ok
}

func (t Type) IsArray() bool {
	_, ok := t.Elem()
	return ok || t == Empty
}

// Elem is the element type of an array type.
func (t Type) Elem() (Type, bool) {
	for elem, at := range arrayOf {
		if at == t {
			return elem, true
		}
	}
	return Invalid, false
}

func (t Type) IsNumeric() bool {
	return t == Int || t == Float
}

// Unify reports whether a value of type got may be bound where want is
// expected, and the resulting type.
func Unify(want, got Type) (Type, bool) {
	if want == got {
		return want, true
	}
	if got == Empty && want.IsArray() {
		return want, true
	}
	if want == Empty && got.IsArray() {
		return got, true
	}
	return Invalid, false
}

// ScalarType maps a scalar type keyword to its type.
func ScalarType(name string) (Type, bool) {
	for t, n := range typeNames {
		if n == name && t != Invalid && t != Empty && t < IntArray {
			return t, true
		}
	}
	return Invalid, false
}
