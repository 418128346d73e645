// Package interval implements conservative interval arithmetic over float64.
//
// Every operation returns an enclosure of all real results for all inputs in
// its operand ranges: bounds are rounded outward after each floating point
// step, so rounding can widen a result but never narrow it.
//
// A [Set] is a union of disjoint intervals. Division by a range containing
// zero and tan across a pole produce more than one piece, which lets the
// explicit plotter draw each branch of a multivalued strip separately.
package interval

import (
	"fmt"
	"math"
)

var (
	posInf = math.Inf(1)
	negInf = math.Inf(-1)
)

// Interval is the closed range [Lo, Hi]. Infinite bounds mean unbounded.
type Interval struct {
	Lo, Hi float64
}

// New returns [lo, hi], swapping the bounds if needed.
func New(lo, hi float64) Interval {
	if lo > hi {
		lo, hi = hi, lo
	}
	return Interval{Lo: lo, Hi: hi}
}

// Point returns the degenerate interval [v, v].
func Point(v float64) Interval { return Interval{Lo: v, Hi: v} }

// Entire returns (-inf, +inf).
func Entire() Interval { return Interval{Lo: negInf, Hi: posInf} }

// Contains reports whether v lies in the interval.
func (i Interval) Contains(v float64) bool { return i.Lo <= v && v <= i.Hi }

// ContainsZero reports whether 0 lies in the interval.
func (i Interval) ContainsZero() bool { return i.Lo <= 0 && 0 <= i.Hi }

// Width returns Hi - Lo.
func (i Interval) Width() float64 { return i.Hi - i.Lo }

// IsPoint reports whether the interval holds a single value.
func (i Interval) IsPoint() bool { return i.Lo == i.Hi }

// Hull returns the smallest interval containing both i and o.
func (i Interval) Hull(o Interval) Interval {
	return Interval{Lo: math.Min(i.Lo, o.Lo), Hi: math.Max(i.Hi, o.Hi)}
}

func (i Interval) String() string {
	return fmt.Sprintf("[%g, %g]", i.Lo, i.Hi)
}

// valid reports whether the bounds describe a non-empty interval.
func (i Interval) valid() bool { return i.Lo <= i.Hi }

// =============================================================================
// Outward rounding
// =============================================================================

// down moves a computed lower bound one ULP towards -inf.
// NaN bounds become -inf.
func down(v float64) float64 {
	if math.IsNaN(v) {
		return negInf
	}
	return math.Nextafter(v, negInf)
}

// up moves a computed upper bound one ULP towards +inf.
// NaN bounds become +inf.
func up(v float64) float64 {
	if math.IsNaN(v) {
		return posInf
	}
	return math.Nextafter(v, posInf)
}

// looseRel is the relative slack applied to library functions (math.Exp,
// math.Sin, ...) whose results are accurate to a few ULPs but not correctly
// rounded.
const looseRel = 8 * 0x1p-52

// looseDown widens a lower bound produced by a library function.
func looseDown(v float64) float64 {
	if math.IsNaN(v) {
		return negInf
	}
	if math.IsInf(v, 0) {
		return v
	}
	return down(v - math.Abs(v)*looseRel)
}

// looseUp widens an upper bound produced by a library function.
func looseUp(v float64) float64 {
	if math.IsNaN(v) {
		return posInf
	}
	if math.IsInf(v, 0) {
		return v
	}
	return up(v + math.Abs(v)*looseRel)
}

// =============================================================================
// Interval operations
// =============================================================================

func add(a, b Interval) Interval {
	return Interval{Lo: down(a.Lo + b.Lo), Hi: up(a.Hi + b.Hi)}
}

func sub(a, b Interval) Interval {
	return Interval{Lo: down(a.Lo - b.Hi), Hi: up(a.Hi - b.Lo)}
}

func neg(a Interval) Interval {
	return Interval{Lo: -a.Hi, Hi: -a.Lo}
}

// mulEnd multiplies two bounds treating 0 * inf as 0: an infinite bound is
// never attained, so it only stands for arbitrarily large finite values.
func mulEnd(x, y float64) float64 {
	if x == 0 || y == 0 {
		return 0
	}
	return x * y
}

func mul(a, b Interval) Interval {
	p1 := mulEnd(a.Lo, b.Lo)
	p2 := mulEnd(a.Lo, b.Hi)
	p3 := mulEnd(a.Hi, b.Lo)
	p4 := mulEnd(a.Hi, b.Hi)
	lo := math.Min(math.Min(p1, p2), math.Min(p3, p4))
	hi := math.Max(math.Max(p1, p2), math.Max(p3, p4))
	return Interval{Lo: down(lo), Hi: up(hi)}
}

// recip returns 1/b, split in two when b straddles zero.
// The point interval [0, 0] has no reciprocal and yields nothing.
func recip(b Interval) []Interval {
	switch {
	case b.Lo == 0 && b.Hi == 0:
		return nil
	case b.Lo > 0 || b.Hi < 0:
		return []Interval{{Lo: down(1 / b.Hi), Hi: up(1 / b.Lo)}}
	case b.Lo == 0:
		return []Interval{{Lo: down(1 / b.Hi), Hi: posInf}}
	case b.Hi == 0:
		return []Interval{{Lo: negInf, Hi: up(1 / b.Lo)}}
	default:
		return []Interval{
			{Lo: negInf, Hi: up(1 / b.Lo)},
			{Lo: down(1 / b.Hi), Hi: posInf},
		}
	}
}

func div(a, b Interval) []Interval {
	// Exact quotients are tighter than a * (1/b) when b excludes zero.
	if b.Lo > 0 || b.Hi < 0 {
		q1, q2 := a.Lo/b.Lo, a.Lo/b.Hi
		q3, q4 := a.Hi/b.Lo, a.Hi/b.Hi
		lo := math.Min(math.Min(q1, q2), math.Min(q3, q4))
		hi := math.Max(math.Max(q1, q2), math.Max(q3, q4))
		if !math.IsNaN(lo) && !math.IsNaN(hi) {
			return []Interval{{Lo: down(lo), Hi: up(hi)}}
		}
	}
	rs := recip(b)
	out := make([]Interval, 0, len(rs))
	for _, r := range rs {
		out = append(out, mul(a, r))
	}
	return out
}

func abs(a Interval) Interval {
	switch {
	case a.Lo >= 0:
		return a
	case a.Hi <= 0:
		return neg(a)
	default:
		return Interval{Lo: 0, Hi: math.Max(-a.Lo, a.Hi)}
	}
}

func minIv(a, b Interval) Interval {
	return Interval{Lo: math.Min(a.Lo, b.Lo), Hi: math.Min(a.Hi, b.Hi)}
}

func maxIv(a, b Interval) Interval {
	return Interval{Lo: math.Max(a.Lo, b.Lo), Hi: math.Max(a.Hi, b.Hi)}
}

func sqrt(a Interval) []Interval {
	if a.Hi < 0 {
		return nil
	}
	lo := math.Max(a.Lo, 0)
	return []Interval{{Lo: math.Max(0, down(math.Sqrt(lo))), Hi: up(math.Sqrt(a.Hi))}}
}

func exp(a Interval) Interval {
	return Interval{Lo: math.Max(0, looseDown(math.Exp(a.Lo))), Hi: looseUp(math.Exp(a.Hi))}
}

func log(a Interval) []Interval {
	if a.Hi <= 0 {
		return nil
	}
	lo := negInf
	if a.Lo > 0 {
		lo = looseDown(math.Log(a.Lo))
	}
	return []Interval{{Lo: lo, Hi: looseUp(math.Log(a.Hi))}}
}

// maxExactInt bounds exponents treated as integers; beyond it every float is
// an integer and math.Pow loses the parity distinction anyway.
const maxExactInt = 1 << 53

// powInt raises a to the integer power n.
func powInt(a Interval, n int64) []Interval {
	switch {
	case n == 0:
		return []Interval{Point(1)}
	case n < 0:
		var out []Interval
		for _, p := range powInt(a, -n) {
			out = append(out, recip(p)...)
		}
		return out
	}
	if n%2 == 0 {
		return []Interval{powMag(abs(a), n)}
	}
	// Odd powers are monotonic: raise each bound on its own.
	return []Interval{{Lo: powSigned(a.Lo, n).Lo, Hi: powSigned(a.Hi, n).Hi}}
}

// powMag raises the non-negative interval m to the power n > 0 by binary
// exponentiation. Every step is an outward-rounded mul, so the error of a
// long chain of squarings stays enclosed.
func powMag(m Interval, n int64) Interval {
	r := Point(1)
	for base := m; n > 0; n >>= 1 {
		if n&1 == 1 {
			r = nonNeg(mul(r, base))
		}
		if n > 1 {
			base = nonNeg(mul(base, base))
		}
	}
	return r
}

// powSigned encloses v^n for odd n > 0.
func powSigned(v float64, n int64) Interval {
	if v < 0 {
		return neg(powMag(Point(-v), n))
	}
	return powMag(Point(v), n)
}

// nonNeg clamps a rounded-down lower bound of a non-negative quantity at 0.
func nonNeg(i Interval) Interval {
	i.Lo = math.Max(0, i.Lo)
	return i
}

// powPos encloses v^p for v > 0 as v^trunc(p) * v^frac(p). The integer part
// goes through powInt; math.Pow is only trusted with an exponent below 1 in
// magnitude.
func powPos(v, p float64) Interval {
	k, f := math.Modf(p)
	ip := powInt(Point(v), int64(k))
	if len(ip) == 0 {
		return Interval{Lo: 0, Hi: posInf}
	}
	fp := math.Pow(v, f)
	return nonNeg(mul(ip[0], Interval{Lo: looseDown(fp), Hi: looseUp(fp)}))
}

// powReal raises the non-negative part of a to a non-integer power p.
func powReal(a Interval, p float64) []Interval {
	if a.Hi < 0 || (a.Hi == 0 && p < 0) {
		return nil
	}
	lo := math.Max(a.Lo, 0)
	if p > 0 {
		out := Interval{Lo: 0, Hi: 0}
		if lo > 0 {
			out.Lo = powPos(lo, p).Lo
		}
		if a.Hi > 0 {
			out.Hi = powPos(a.Hi, p).Hi
		}
		return []Interval{out}
	}
	hi := posInf
	if lo > 0 {
		hi = powPos(lo, p).Hi
	}
	return []Interval{{Lo: powPos(a.Hi, p).Lo, Hi: hi}}
}

// powPoint raises a to a point exponent p. Set.Pow handles range exponents
// through exp(b * log a).
func powPoint(a Interval, p float64) []Interval {
	if math.IsNaN(p) {
		return []Interval{Entire()}
	}
	if p == math.Trunc(p) && math.Abs(p) <= maxExactInt {
		return powInt(a, int64(p))
	}
	return powReal(a, p)
}

// bigArg bounds the arguments for which the trigonometric functions compute
// critical points; above it the critical point estimate is too coarse and the
// full range is returned.
const bigArg = 1 << 26

// trigPad absorbs the error of math.Sin/math.Cos/math.Tan near extrema.
const trigPad = 1e-15

func clampUnit(i Interval) Interval {
	return Interval{Lo: math.Max(-1, i.Lo), Hi: math.Min(1, i.Hi)}
}

// hasCritical reports whether some phase + k*period lies in [lo, hi].
func hasCritical(lo, hi, phase, period float64) bool {
	k := math.Ceil((lo - phase) / period)
	return phase+k*period <= hi
}

func sin(a Interval) Interval {
	if math.IsInf(a.Lo, 0) || math.IsInf(a.Hi, 0) || a.Width() >= 2*math.Pi ||
		math.Abs(a.Lo) > bigArg || math.Abs(a.Hi) > bigArg {
		return Interval{Lo: -1, Hi: 1}
	}
	s1, s2 := math.Sin(a.Lo), math.Sin(a.Hi)
	lo, hi := math.Min(s1, s2)-trigPad, math.Max(s1, s2)+trigPad
	if hasCritical(a.Lo, a.Hi, math.Pi/2, 2*math.Pi) {
		hi = 1
	}
	if hasCritical(a.Lo, a.Hi, -math.Pi/2, 2*math.Pi) {
		lo = -1
	}
	return clampUnit(Interval{Lo: lo, Hi: hi})
}

func cos(a Interval) Interval {
	if math.IsInf(a.Lo, 0) || math.IsInf(a.Hi, 0) || a.Width() >= 2*math.Pi ||
		math.Abs(a.Lo) > bigArg || math.Abs(a.Hi) > bigArg {
		return Interval{Lo: -1, Hi: 1}
	}
	c1, c2 := math.Cos(a.Lo), math.Cos(a.Hi)
	lo, hi := math.Min(c1, c2)-trigPad, math.Max(c1, c2)+trigPad
	if hasCritical(a.Lo, a.Hi, 0, 2*math.Pi) {
		hi = 1
	}
	if hasCritical(a.Lo, a.Hi, math.Pi, 2*math.Pi) {
		lo = -1
	}
	return clampUnit(Interval{Lo: lo, Hi: hi})
}

// tan splits its result at a pole inside a. Poles close to an endpoint are
// treated as inside, which is always sound.
func tan(a Interval) []Interval {
	if math.IsInf(a.Lo, 0) || math.IsInf(a.Hi, 0) || a.Width() >= math.Pi ||
		math.Abs(a.Lo) > bigArg || math.Abs(a.Hi) > bigArg {
		return []Interval{Entire()}
	}
	t1, t2 := math.Tan(a.Lo), math.Tan(a.Hi)
	slack := 1e-9 * math.Max(1, math.Abs(a.Lo))
	if t1 > t2 || hasCritical(a.Lo-slack, a.Hi+slack, math.Pi/2, math.Pi) {
		return []Interval{
			{Lo: negInf, Hi: looseUp(t2) + trigPad},
			{Lo: looseDown(t1) - trigPad, Hi: posInf},
		}
	}
	return []Interval{{Lo: looseDown(t1) - trigPad, Hi: looseUp(t2) + trigPad}}
}
