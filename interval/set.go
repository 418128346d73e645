package interval

import (
	"math"
	"slices"
	"strings"

	"github.com/gogpu/gplot/rpn"
)

// MaxPieces caps the number of intervals a Set keeps. Results with more
// pieces have their closest neighbours merged, which only loses precision.
const MaxPieces = 16

// Set is a union of sorted, disjoint, closed intervals.
//
// The zero Set is empty: the expression it came from is undefined everywhere
// on the input box (for example sqrt of a negative range).
// Sets are values; operations never modify their operands.
type Set struct {
	ivs []Interval
}

// NewSet returns the set holding [lo, hi].
func NewSet(lo, hi float64) Set {
	return Of(New(lo, hi))
}

// Singleton returns the set holding the single value v.
func Singleton(v float64) Set {
	return Of(Point(v))
}

// Of returns the union of ivs. Invalid intervals are dropped and NaN bounds
// widen to infinity.
func Of(ivs ...Interval) Set {
	return normalize(slices.Clone(ivs))
}

// Intervals returns a copy of the pieces in ascending order.
func (s Set) Intervals() []Interval { return slices.Clone(s.ivs) }

// Len returns the number of pieces.
func (s Set) Len() int { return len(s.ivs) }

// IsEmpty reports whether the set holds no values.
func (s Set) IsEmpty() bool { return len(s.ivs) == 0 }

// Hull returns the smallest interval covering the set.
// The hull of an empty set is the invalid interval [+inf, -inf].
func (s Set) Hull() Interval {
	if len(s.ivs) == 0 {
		return Interval{Lo: posInf, Hi: negInf}
	}
	return Interval{Lo: s.ivs[0].Lo, Hi: s.ivs[len(s.ivs)-1].Hi}
}

// Contains reports whether v lies in one of the pieces.
func (s Set) Contains(v float64) bool {
	for _, iv := range s.ivs {
		if iv.Contains(v) {
			return true
		}
	}
	return false
}

// ContainsZero reports whether 0 lies in one of the pieces.
func (s Set) ContainsZero() bool { return s.Contains(0) }

// Union returns s ∪ o.
func (s Set) Union(o Set) Set {
	ivs := make([]Interval, 0, len(s.ivs)+len(o.ivs))
	ivs = append(ivs, s.ivs...)
	ivs = append(ivs, o.ivs...)
	return normalize(ivs)
}

func (s Set) String() string {
	if len(s.ivs) == 0 {
		return "∅"
	}
	parts := make([]string, len(s.ivs))
	for i, iv := range s.ivs {
		parts[i] = iv.String()
	}
	return strings.Join(parts, " ∪ ")
}

// point returns the value of a single-point set.
func (s Set) point() (float64, bool) {
	if len(s.ivs) == 1 && s.ivs[0].IsPoint() {
		return s.ivs[0].Lo, true
	}
	return 0, false
}

// normalize sorts, merges and caps ivs in place.
func normalize(ivs []Interval) Set {
	out := ivs[:0]
	for _, iv := range ivs {
		if math.IsNaN(iv.Lo) {
			iv.Lo = negInf
		}
		if math.IsNaN(iv.Hi) {
			iv.Hi = posInf
		}
		if iv.valid() {
			out = append(out, iv)
		}
	}
	if len(out) == 0 {
		return Set{}
	}
	slices.SortFunc(out, func(a, b Interval) int {
		switch {
		case a.Lo < b.Lo:
			return -1
		case a.Lo > b.Lo:
			return 1
		default:
			return 0
		}
	})

	merged := out[:1]
	for _, iv := range out[1:] {
		last := &merged[len(merged)-1]
		if iv.Lo <= last.Hi {
			last.Hi = math.Max(last.Hi, iv.Hi)
			continue
		}
		merged = append(merged, iv)
	}

	for len(merged) > MaxPieces {
		gap := 0
		for i := 1; i < len(merged)-1; i++ {
			if merged[i+1].Lo-merged[i].Hi < merged[gap+1].Lo-merged[gap].Hi {
				gap = i
			}
		}
		merged[gap].Hi = merged[gap+1].Hi
		merged = slices.Delete(merged, gap+1, gap+2)
	}
	return Set{ivs: merged}
}

// =============================================================================
// Lifting interval operations to sets
// =============================================================================

func lift1(s Set, f func(Interval) []Interval) Set {
	if len(s.ivs) == 0 {
		return Set{}
	}
	out := make([]Interval, 0, len(s.ivs))
	for _, iv := range s.ivs {
		out = append(out, f(iv)...)
	}
	return normalize(out)
}

func lift1s(s Set, f func(Interval) Interval) Set {
	return lift1(s, func(iv Interval) []Interval { return []Interval{f(iv)} })
}

func lift2(a, b Set, f func(x, y Interval) []Interval) Set {
	if len(a.ivs) == 0 || len(b.ivs) == 0 {
		return Set{}
	}
	out := make([]Interval, 0, len(a.ivs)*len(b.ivs))
	for _, x := range a.ivs {
		for _, y := range b.ivs {
			out = append(out, f(x, y)...)
		}
	}
	return normalize(out)
}

func lift2s(a, b Set, f func(x, y Interval) Interval) Set {
	return lift2(a, b, func(x, y Interval) []Interval { return []Interval{f(x, y)} })
}

// Add returns an enclosure of {x + y}.
func (s Set) Add(o Set) Set { return lift2s(s, o, add) }

// Sub returns an enclosure of {x - y}.
func (s Set) Sub(o Set) Set { return lift2s(s, o, sub) }

// Mul returns an enclosure of {x * y}.
func (s Set) Mul(o Set) Set { return lift2s(s, o, mul) }

// Div returns an enclosure of {x / y : y != 0}.
func (s Set) Div(o Set) Set { return lift2(s, o, div) }

// Min returns an enclosure of {min(x, y)}.
func (s Set) Min(o Set) Set { return lift2s(s, o, minIv) }

// Max returns an enclosure of {max(x, y)}.
func (s Set) Max(o Set) Set { return lift2s(s, o, maxIv) }

// Pow returns an enclosure of {x ** y} over the pairs where the real power is
// defined.
func (s Set) Pow(e Set) Set {
	if p, ok := e.point(); ok {
		return lift1(s, func(a Interval) []Interval { return powPoint(a, p) })
	}
	r := e.Mul(s.Log()).Exp()
	// Negative bases have real powers at integer exponents only.
	if !s.IsEmpty() && !e.IsEmpty() && s.ivs[0].Lo < 0 {
		r = r.Union(Of(Entire()))
	}
	return r
}

// Neg returns {-x}.
func (s Set) Neg() Set { return lift1s(s, neg) }

// Abs returns {|x|}.
func (s Set) Abs() Set { return lift1s(s, abs) }

// Sqrt returns an enclosure of {sqrt(x) : x >= 0}.
func (s Set) Sqrt() Set { return lift1(s, sqrt) }

// Exp returns an enclosure of {e^x}.
func (s Set) Exp() Set { return lift1s(s, exp) }

// Log returns an enclosure of {ln x : x > 0}.
func (s Set) Log() Set { return lift1(s, log) }

// Sin returns an enclosure of {sin x}.
func (s Set) Sin() Set { return lift1s(s, sin) }

// Cos returns an enclosure of {cos x}.
func (s Set) Cos() Set { return lift1s(s, cos) }

// Tan returns an enclosure of {tan x}, split at poles.
func (s Set) Tan() Set { return lift1(s, tan) }

// =============================================================================
// rpn.Domain
// =============================================================================

// Domain binds Set arithmetic to the rpn stack machine.
type Domain struct{}

var _ rpn.Domain[Set] = Domain{}

func (Domain) Const(c float64) Set { return Singleton(c) }

func (Domain) Add(a, b Set) Set { return a.Add(b) }
func (Domain) Sub(a, b Set) Set { return a.Sub(b) }
func (Domain) Mul(a, b Set) Set { return a.Mul(b) }
func (Domain) Div(a, b Set) Set { return a.Div(b) }
func (Domain) Pow(a, b Set) Set { return a.Pow(b) }
func (Domain) Min(a, b Set) Set { return a.Min(b) }
func (Domain) Max(a, b Set) Set { return a.Max(b) }

func (Domain) Neg(a Set) Set  { return a.Neg() }
func (Domain) Abs(a Set) Set  { return a.Abs() }
func (Domain) Sqrt(a Set) Set { return a.Sqrt() }
func (Domain) Exp(a Set) Set  { return a.Exp() }
func (Domain) Log(a Set) Set  { return a.Log() }
func (Domain) Sin(a Set) Set  { return a.Sin() }
func (Domain) Cos(a Set) Set  { return a.Cos() }
func (Domain) Tan(a Set) Set  { return a.Tan() }
