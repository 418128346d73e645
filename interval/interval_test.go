package interval

import (
	"math"
	"math/big"
	"math/rand/v2"
	"testing"
)

// samples returns n points spread over iv, endpoints included.
func samples(iv Interval, n int) []float64 {
	out := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		out = append(out, iv.Lo+(iv.Hi-iv.Lo)*float64(i)/float64(n))
	}
	return out
}

func randInterval(rng *rand.Rand, scale float64) Interval {
	a := (rng.Float64()*2 - 1) * scale
	b := (rng.Float64()*2 - 1) * scale
	return New(a, b)
}

// =============================================================================
// Soundness Tests
// =============================================================================

func TestUnary_Sound(t *testing.T) {
	tests := []struct {
		name  string
		set   func(Set) Set
		point func(float64) float64
		scale float64
	}{
		{"neg", Set.Neg, func(x float64) float64 { return -x }, 10},
		{"abs", Set.Abs, math.Abs, 10},
		{"sqrt", Set.Sqrt, math.Sqrt, 10},
		{"exp", Set.Exp, math.Exp, 5},
		{"log", Set.Log, math.Log, 10},
		{"sin", Set.Sin, math.Sin, 20},
		{"cos", Set.Cos, math.Cos, 20},
		{"tan", Set.Tan, math.Tan, 5},
	}

	rng := rand.New(rand.NewPCG(3, 5))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for range 300 {
				iv := randInterval(rng, tt.scale)
				got := tt.set(Of(iv))
				for _, x := range samples(iv, 200) {
					y := tt.point(x)
					if math.IsNaN(y) || math.IsInf(y, 0) {
						continue
					}
					if !got.Contains(y) {
						t.Fatalf("%s(%v) = %v does not contain %s(%v) = %v", tt.name, iv, got, tt.name, x, y)
					}
				}
			}
		})
	}
}

func TestBinary_Sound(t *testing.T) {
	tests := []struct {
		name  string
		set   func(Set, Set) Set
		point func(a, b float64) float64
	}{
		{"add", Set.Add, func(a, b float64) float64 { return a + b }},
		{"sub", Set.Sub, func(a, b float64) float64 { return a - b }},
		{"mul", Set.Mul, func(a, b float64) float64 { return a * b }},
		{"div", Set.Div, func(a, b float64) float64 { return a / b }},
		{"min", Set.Min, math.Min},
		{"max", Set.Max, math.Max},
		{"pow", Set.Pow, math.Pow},
	}

	rng := rand.New(rand.NewPCG(9, 1))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for range 200 {
				a, b := randInterval(rng, 4), randInterval(rng, 4)
				got := tt.set(Of(a), Of(b))
				for _, x := range samples(a, 30) {
					for _, y := range samples(b, 30) {
						v := tt.point(x, y)
						if math.IsNaN(v) || math.IsInf(v, 0) {
							continue
						}
						if !got.Contains(v) {
							t.Fatalf("%v %s %v = %v does not contain %v %s %v = %v", a, tt.name, b, got, x, tt.name, y, v)
						}
					}
				}
			}
		})
	}
}

func TestPow_IntegerExponents(t *testing.T) {
	rng := rand.New(rand.NewPCG(4, 4))
	for n := -5; n <= 7; n++ {
		for range 50 {
			iv := randInterval(rng, 3)
			got := Of(iv).Pow(Singleton(float64(n)))
			for _, x := range samples(iv, 100) {
				v := math.Pow(x, float64(n))
				if math.IsInf(v, 0) || math.IsNaN(v) {
					continue
				}
				if !got.Contains(v) {
					t.Fatalf("%v ^ %d = %v does not contain %v ^ %d = %v", iv, n, got, x, n, v)
				}
			}
		}
	}
}

// exactPow returns x^n, times sqrt(x) when half is set, to 512 bits.
func exactPow(x float64, n int64, half bool) *big.Float {
	const prec = 512
	base := new(big.Float).SetPrec(prec).SetFloat64(x)
	r := new(big.Float).SetPrec(prec).SetInt64(1)
	m := n
	if m < 0 {
		m = -m
	}
	for ; m > 0; m >>= 1 {
		if m&1 == 1 {
			r.Mul(r, base)
		}
		base.Mul(base, base)
	}
	if n < 0 {
		r.Quo(new(big.Float).SetPrec(prec).SetInt64(1), r)
	}
	if half {
		r.Mul(r, new(big.Float).SetPrec(prec).Sqrt(new(big.Float).SetPrec(prec).SetFloat64(x)))
	}
	return r
}

// enclosesExact reports whether s contains the exact value v.
func enclosesExact(s Set, v *big.Float) bool {
	for _, iv := range s.Intervals() {
		lo := new(big.Float).SetFloat64(iv.Lo)
		hi := new(big.Float).SetFloat64(iv.Hi)
		if lo.Cmp(v) <= 0 && v.Cmp(hi) <= 0 {
			return true
		}
	}
	return false
}

func TestPow_LargeExponentsExact(t *testing.T) {
	tests := []struct {
		name string
		p    float64
		n    int64
		half bool
		neg  bool
	}{
		{"255", 255, 255, false, false},
		{"255 negative base", 255, 255, false, true},
		{"1000", 1000, 1000, false, false},
		{"1000 negative base", 1000, 1000, false, true},
		{"4095", 4095, 4095, false, false},
		{"-1000", -1000, -1000, false, false},
		{"1000.5", 1000.5, 1000, true, false},
		{"-255.5", -255.5, -256, true, false},
	}

	rng := rand.New(rand.NewPCG(7, 11))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Bases within 2/|n| of 1 keep the results finite.
			spread := 2 / math.Abs(tt.p)
			for range 500 {
				x := 1 + (rng.Float64()*2-1)*spread
				if tt.neg {
					x = -x
				}
				want := exactPow(x, tt.n, tt.half)
				got := Singleton(x).Pow(Singleton(tt.p))
				if !enclosesExact(got, want) {
					t.Fatalf("%v ^ %v = %v does not contain %s", x, tt.p, got, want.Text('g', 20))
				}

				// Monotonic on a positive range: the endpoints bound it.
				if !tt.neg {
					r := NewSet(x, x+spread/8).Pow(Singleton(tt.p))
					for _, e := range []float64{x, x + spread/8} {
						if w := exactPow(e, tt.n, tt.half); !enclosesExact(r, w) {
							t.Fatalf("[%v, %v] ^ %v = %v does not contain %s", x, x+spread/8, tt.p, r, w.Text('g', 20))
						}
					}
				}
			}
		})
	}
}

func TestPow_KnownLargePower(t *testing.T) {
	x := 1.0009768635
	got := Singleton(x).Pow(Singleton(1000))
	if want := exactPow(x, 1000, false); !enclosesExact(got, want) {
		t.Errorf("%v ^ 1000 = %v does not contain %s", x, got, want.Text('g', 20))
	}
}

// =============================================================================
// Precision Tests
// =============================================================================

func TestPow_EvenPowerIsNonNegative(t *testing.T) {
	got := NewSet(-2, 1).Pow(Singleton(2))
	h := got.Hull()
	if h.Lo != 0 {
		t.Errorf("[-2, 1]^2 lower bound = %v, want 0", h.Lo)
	}
	if h.Hi < 4 || h.Hi > 4.000001 {
		t.Errorf("[-2, 1]^2 upper bound = %v, want ~4", h.Hi)
	}
}

func TestDiv_SplitsAtZero(t *testing.T) {
	got := NewSet(1, 1).Div(NewSet(-1, 2))
	if got.Len() != 2 {
		t.Fatalf("1 / [-1, 2] = %v, want two pieces", got)
	}
	if got.Contains(0) || got.Contains(0.25) {
		t.Errorf("1 / [-1, 2] = %v should exclude (-1, 0.5)", got)
	}
	if !got.Contains(-1) || !got.Contains(0.5) || !got.Contains(1e9) {
		t.Errorf("1 / [-1, 2] = %v missing expected values", got)
	}
}

func TestDiv_ByZeroPointIsEmpty(t *testing.T) {
	if got := NewSet(1, 2).Div(Singleton(0)); !got.IsEmpty() {
		t.Errorf("[1, 2] / 0 = %v, want empty", got)
	}
}

func TestSqrt_NegativeIsEmpty(t *testing.T) {
	if got := NewSet(-3, -1).Sqrt(); !got.IsEmpty() {
		t.Errorf("sqrt([-3, -1]) = %v, want empty", got)
	}
	if got := NewSet(-3, 4).Sqrt().Hull(); got.Lo != 0 {
		t.Errorf("sqrt([-3, 4]) lower = %v, want 0", got.Lo)
	}
}

func TestTan_SplitsAtPole(t *testing.T) {
	got := NewSet(1, 2).Tan()
	if got.Len() != 2 {
		t.Fatalf("tan([1, 2]) = %v, want two pieces", got)
	}
	if got.Contains(0) {
		t.Errorf("tan([1, 2]) = %v should not contain 0", got)
	}
}

func TestSin_Extrema(t *testing.T) {
	got := NewSet(0, math.Pi).Sin().Hull()
	if got.Hi != 1 {
		t.Errorf("sin([0, pi]) upper = %v, want 1", got.Hi)
	}
	if got.Lo > 0 || got.Lo < -1e-12 {
		t.Errorf("sin([0, pi]) lower = %v, want ~0", got.Lo)
	}
	if got := NewSet(-100, 100).Cos().Hull(); got.Lo != -1 || got.Hi != 1 {
		t.Errorf("cos of a wide range = %v, want [-1, 1]", got)
	}
}

func TestOutwardRounding(t *testing.T) {
	// 0.1 + 0.2 is not representable; the enclosure must straddle the exact sum.
	got := Singleton(0.1).Add(Singleton(0.2)).Hull()
	if !(got.Lo < 0.1+0.2 && 0.1+0.2 < got.Hi) {
		t.Errorf("0.1 + 0.2 = %v, want strict enclosure of %v", got, 0.1+0.2)
	}
}

func TestContainsZero(t *testing.T) {
	tests := []struct {
		set  Set
		want bool
	}{
		{NewSet(-1, 1), true},
		{NewSet(0, 1), true},
		{NewSet(0.5, 1), false},
		{Of(Interval{-3, -1}, Interval{1, 3}), false},
		{Set{}, false},
	}
	for _, tt := range tests {
		if got := tt.set.ContainsZero(); got != tt.want {
			t.Errorf("%v.ContainsZero() = %v, want %v", tt.set, got, tt.want)
		}
	}
}

// =============================================================================
// Set Tests
// =============================================================================

func TestOf_Normalizes(t *testing.T) {
	s := Of(Interval{5, 6}, Interval{1, 2}, Interval{1.5, 3}, Interval{4, 3})
	want := []Interval{{1, 3}, {5, 6}}
	got := s.Intervals()
	if len(got) != len(want) {
		t.Fatalf("Of() = %v, want %v", s, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("piece %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestOf_NaNWidens(t *testing.T) {
	s := Of(Interval{math.NaN(), 1})
	if h := s.Hull(); !math.IsInf(h.Lo, -1) || h.Hi != 1 {
		t.Errorf("Of([NaN, 1]) = %v, want [-inf, 1]", s)
	}
}

func TestOf_CapsPieces(t *testing.T) {
	ivs := make([]Interval, 0, 40)
	for i := range 40 {
		ivs = append(ivs, Point(float64(i*i)))
	}
	s := Of(ivs...)
	if s.Len() != MaxPieces {
		t.Fatalf("Len() = %d, want %d", s.Len(), MaxPieces)
	}
	for i := range 40 {
		if !s.Contains(float64(i * i)) {
			t.Errorf("capped set lost %d", i*i)
		}
	}
}

func TestSet_String(t *testing.T) {
	if got := (Set{}).String(); got != "∅" {
		t.Errorf("empty String() = %q", got)
	}
	if got := Of(Interval{-1, 0}, Interval{1, 2}).String(); got != "[-1, 0] ∪ [1, 2]" {
		t.Errorf("String() = %q", got)
	}
}

func TestEmptyPropagates(t *testing.T) {
	empty := NewSet(-2, -1).Sqrt()
	if !empty.Add(Singleton(1)).IsEmpty() {
		t.Error("empty + 1 should be empty")
	}
	if !Singleton(1).Mul(empty).IsEmpty() {
		t.Error("1 * empty should be empty")
	}
	if !empty.Sin().IsEmpty() {
		t.Error("sin(empty) should be empty")
	}
}
