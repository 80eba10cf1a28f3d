package geom

import (
	"math"
	"strconv"
)

// Num is a coordinate or scalar that is either a 64-bit integer or a 64-bit
// float. Any operation mixing the two widens to float.
type Num struct {
	float bool
	i     int64
	f     float64
}

func Int(v int64) Num {
	return Num{i: v}
}

func Float(v float64) Num {
	return Num{float: true, f: v}
}

func (n Num) IsFloat() bool {
	return n.float
}

func (n Num) Int64() int64 {
	if n.float {
		return int64(n.f)
	}
	return n.i
}

func (n Num) Float64() float64 {
	if n.float {
		return n.f
	}
	return float64(n.i)
}

func (n Num) IsZero() bool {
	if n.float {
		return n.f == 0
	}
	return n.i == 0
}

func (n Num) Add(o Num) Num {
	if n.float || o.float {
		return Float(n.Float64() + o.Float64())
	}
	return Int(n.i + o.i)
}

func (n Num) Sub(o Num) Num {
	if n.float || o.float {
		return Float(n.Float64() - o.Float64())
	}
	return Int(n.i - o.i)
}

func (n Num) Mul(o Num) Num {
	if n.float || o.float {
		return Float(n.Float64() * o.Float64())
	}
	return Int(n.i * o.i)
}

// Div divides n by o. The caller is responsible for rejecting a zero divisor.
func (n Num) Div(o Num) Num {
	if n.float || o.float {
		return Float(n.Float64() / o.Float64())
	}
	return Int(n.i / o.i)
}

// Mod is the remainder of n / o. The caller rejects a zero divisor.
func (n Num) Mod(o Num) Num {
	if n.float || o.float {
		return Float(math.Mod(n.Float64(), o.Float64()))
	}
	return Int(n.i % o.i)
}

func (n Num) Neg() Num {
	if n.float {
		return Float(-n.f)
	}
	return Int(-n.i)
}

// Cmp returns -1, 0 or 1.
func (n Num) Cmp(o Num) int {
	if !n.float && !o.float {
		switch {
		case n.i < o.i:
			return -1
		case n.i > o.i:
			return 1
		}
		return 0
	}
	a, b := n.Float64(), o.Float64()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Equal compares by value across int and float.
func (n Num) Equal(o Num) bool {
	return n.Cmp(o) == 0
}

func minNum(a, b Num) Num {
	if b.Cmp(a) < 0 {
		return b
	}
	return a
}

func maxNum(a, b Num) Num {
	if b.Cmp(a) > 0 {
		return b
	}
	return a
}

func (n Num) String() string {
	if !n.float {
		return strconv.FormatInt(n.i, 10)
	}
	if n.f == 0 {
		// avoid "-0" after a flip
		return "0"
	}
	return strconv.FormatFloat(n.f, 'f', -1, 64)
}
