package rpn

import "math"

// Domain is the arithmetic a value type must provide for compiled formulas.
//
// The interpreter itself needs none of this: operations carry their own
// functions. Domain is what a compiler binds those functions to, so one
// formula can be built over several value types.
type Domain[V any] interface {
	Const(c float64) V

	Add(a, b V) V
	Sub(a, b V) V
	Mul(a, b V) V
	Div(a, b V) V
	Pow(a, b V) V
	Min(a, b V) V
	Max(a, b V) V

	Neg(a V) V
	Abs(a V) V
	Sqrt(a V) V
	Exp(a V) V
	Log(a V) V
	Sin(a V) V
	Cos(a V) V
	Tan(a V) V
}

// Float is the point-evaluation domain over float64.
// Results follow IEEE 754: undefined points yield NaN or ±Inf.
type Float struct{}

var _ Domain[float64] = Float{}

func (Float) Const(c float64) float64 { return c }

func (Float) Add(a, b float64) float64 { return a + b }
func (Float) Sub(a, b float64) float64 { return a - b }
func (Float) Mul(a, b float64) float64 { return a * b }
func (Float) Div(a, b float64) float64 { return a / b }
func (Float) Pow(a, b float64) float64 { return math.Pow(a, b) }
func (Float) Min(a, b float64) float64 { return math.Min(a, b) }
func (Float) Max(a, b float64) float64 { return math.Max(a, b) }

func (Float) Neg(a float64) float64  { return -a }
func (Float) Abs(a float64) float64  { return math.Abs(a) }
func (Float) Sqrt(a float64) float64 { return math.Sqrt(a) }
func (Float) Exp(a float64) float64  { return math.Exp(a) }
func (Float) Log(a float64) float64  { return math.Log(a) }
func (Float) Sin(a float64) float64  { return math.Sin(a) }
func (Float) Cos(a float64) float64  { return math.Cos(a) }
func (Float) Tan(a float64) float64  { return math.Tan(a) }
