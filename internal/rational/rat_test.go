package rational

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"rational/internal/bignum"
)

func frac(t *testing.T, n, d int64) Rat {
	t.Helper()
	r, err := FromFrac64(n, d)
	if err != nil {
		t.Fatalf("FromFrac64(%d, %d): %v", n, d, err)
	}
	return r
}

func checkCanonical(t *testing.T, x Rat) {
	t.Helper()
	if x.den.Sign() <= 0 {
		t.Fatalf("denominator of %s/%s is not positive", x.num, x.den)
	}
	if g := bignum.GCD(x.num, x.den); !g.Equal(bignum.One()) {
		t.Fatalf("%s/%s is not reduced (gcd %s)", x.num, x.den, g)
	}
	if x.num.IsZero() && !x.den.Equal(bignum.One()) {
		t.Fatalf("zero with denominator %s", x.den)
	}
}

func TestConstructorsCanonicalize(t *testing.T) {
	tests := []struct {
		n, d int64
		want string
	}{
		{1, 2, "1/2"},
		{2, 4, "1/2"},
		{-2, 4, "-1/2"},
		{2, -4, "-1/2"},
		{-2, -4, "1/2"},
		{0, 5, "0"},
		{0, -5, "0"},
		{6, 3, "2"},
		{-6, 3, "-2"},
		{7, 1, "7"},
	}
	for _, tt := range tests {
		r := frac(t, tt.n, tt.d)
		checkCanonical(t, r)
		if got := r.String(); got != tt.want {
			t.Errorf("%d/%d renders %q, want %q", tt.n, tt.d, got, tt.want)
		}
	}
	if _, err := FromFrac64(1, 0); !errors.Is(err, ErrZeroDenominator) {
		t.Fatalf("expected ErrZeroDenominator, got %v", err)
	}
}

func TestZeroValue(t *testing.T) {
	var z Rat
	if !z.IsZero() || z.Sign() != 0 || z.String() != "0" {
		t.Fatalf("zero value misbehaves: %q", z.String())
	}
	if !z.Den().Equal(bignum.One()) {
		t.Fatalf("zero value denominator %s", z.Den())
	}
	if !Add(z, frac(t, 1, 3)).Equal(frac(t, 1, 3)) {
		t.Fatalf("0 + 1/3 != 1/3")
	}
}

func TestLazyConstructor(t *testing.T) {
	lazy, err := NewLazy(bignum.FromInt64(2), bignum.FromInt64(-4))
	if err != nil {
		t.Fatal(err)
	}
	// The pair is kept as given until normalized.
	if lazy.Num().String() != "2" || lazy.Den().String() != "-4" || lazy.IsCanonical() {
		t.Fatalf("lazy pair changed: %s/%s", lazy.Num(), lazy.Den())
	}
	if lazy.Sign() != -1 || !lazy.Equal(frac(t, -1, 2)) {
		t.Fatalf("lazy value compares wrong")
	}
	n := lazy.Normalize()
	checkCanonical(t, n)
	if n.String() != "-1/2" || !n.IsCanonical() {
		t.Fatalf("Normalize() = %s", n)
	}
	sum := Add(lazy, frac(t, 1, 2))
	checkCanonical(t, sum)
	if !sum.IsZero() {
		t.Fatalf("-2/4 + 1/2 = %s", sum)
	}
	if _, err := NewLazy(bignum.One(), bignum.Zero()); !errors.Is(err, ErrZeroDenominator) {
		t.Fatalf("expected ErrZeroDenominator, got %v", err)
	}
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		a, b                string
		sum, diff, prod, qt string
	}{
		{"1/2", "1/3", "5/6", "1/6", "1/6", "3/2"},
		{"1/2", "-1/2", "0", "1", "-1/4", "-1"},
		{"3/4", "1/4", "1", "1/2", "3/16", "3"},
		{"-5/6", "-1/6", "-1", "-2/3", "5/36", "5"},
		{"7", "1/7", "50/7", "48/7", "1", "49"},
		{"0", "9/10", "9/10", "-9/10", "0", "0"},
	}
	for _, tt := range tests {
		a, b := MustParse(tt.a), MustParse(tt.b)
		check := func(op string, got Rat, want string) {
			t.Helper()
			checkCanonical(t, got)
			if got.String() != want {
				t.Errorf("%s %s %s = %s, want %s", tt.a, op, tt.b, got, want)
			}
		}
		check("+", Add(a, b), tt.sum)
		check("-", Sub(a, b), tt.diff)
		check("*", Mul(a, b), tt.prod)
		q, err := Quo(a, b)
		if err != nil {
			t.Fatal(err)
		}
		check("/", q, tt.qt)
	}
}

func TestDivisionByZero(t *testing.T) {
	if _, err := Quo(frac(t, 1, 2), Rat{}); !errors.Is(err, bignum.ErrDivByZero) {
		t.Fatalf("expected ErrDivByZero, got %v", err)
	}
	if _, err := (Rat{}).Inv(); !errors.Is(err, bignum.ErrDivByZero) {
		t.Fatalf("expected ErrDivByZero, got %v", err)
	}
	if _, err := Pow(Rat{}, -2); !errors.Is(err, bignum.ErrDivByZero) {
		t.Fatalf("expected ErrDivByZero, got %v", err)
	}
}

func TestNegAbsInvPow(t *testing.T) {
	x := frac(t, -3, 4)
	if x.Neg().String() != "3/4" || x.Abs().String() != "3/4" || frac(t, 3, 4).Abs().String() != "3/4" {
		t.Fatalf("Neg/Abs wrong")
	}
	inv, err := x.Inv()
	if err != nil || inv.String() != "-4/3" {
		t.Fatalf("Inv() = %s, %v", inv, err)
	}
	checkCanonical(t, inv)
	p, err := Pow(x, 3)
	if err != nil || p.String() != "-27/64" {
		t.Fatalf("Pow(x, 3) = %s, %v", p, err)
	}
	p, err = Pow(x, -2)
	if err != nil || p.String() != "16/9" {
		t.Fatalf("Pow(x, -2) = %s, %v", p, err)
	}
	p, err = Pow(x, 0)
	if err != nil || p.String() != "1" {
		t.Fatalf("Pow(x, 0) = %s, %v", p, err)
	}
	if !frac(t, 8, 4).IsInt() || frac(t, 1, 4).IsInt() || !(Rat{}).IsInt() {
		t.Fatalf("IsInt wrong")
	}
}

func TestLen(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"0", 0},
		{"-12345", 5},
		{"5/6", 2},
		{"-355/113", 6},
		{"10/4", 2},
	}
	for _, tt := range tests {
		if got := MustParse(tt.in).Len(); got != tt.want {
			t.Errorf("(%s).Len() = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPowMinIntExponent(t *testing.T) {
	if _, err := Pow(frac(t, 2, 3), math.MinInt); !errors.Is(err, ErrExponentRange) {
		t.Fatalf("Pow(2/3, MinInt) error = %v, want ErrExponentRange", err)
	}
	p, err := Pow(frac(t, -1, 1), math.MinInt+1)
	if err != nil || p.String() != "-1" {
		t.Fatalf("Pow(-1, MinInt+1) = %s, %v", p, err)
	}
}

func TestCmp(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1/2", "1/3", 1},
		{"1/3", "1/2", -1},
		{"-1/2", "1/3", -1},
		{"-1/2", "-1/3", -1},
		{"2/4", "1/2", 0},
		{"0", "-1/1000", 1},
		{"7", "13/2", 1},
	}
	for _, tt := range tests {
		a, b := MustParse(tt.a), MustParse(tt.b)
		if got := a.Cmp(b); got != tt.want {
			t.Errorf("Cmp(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if a.Less(b) != (tt.want < 0) || a.Greater(b) != (tt.want > 0) ||
			a.LessEq(b) != (tt.want <= 0) || a.GreaterEq(b) != (tt.want >= 0) {
			t.Errorf("ordering predicates disagree for %s, %s", tt.a, tt.b)
		}
	}
}

func TestCanonicalFormProperty(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	randRat := func() Rat {
		d := r.Int64N(2000) - 1000
		if d == 0 {
			d = 1
		}
		return frac(t, r.Int64N(20000)-10000, d)
	}
	for range 300 {
		a, b := randRat(), randRat()
		checkCanonical(t, Add(a, b))
		checkCanonical(t, Sub(a, b))
		checkCanonical(t, Mul(a, b))
		if !b.IsZero() {
			q, err := Quo(a, b)
			if err != nil {
				t.Fatal(err)
			}
			checkCanonical(t, q)
			if !Mul(q, b).Equal(a) {
				t.Fatalf("(%s / %s) * %s != %s", a, b, b, a)
			}
		}
		if !Sub(Add(a, b), b).Equal(a) {
			t.Fatalf("(%s + %s) - %s != %s", a, b, b, a)
		}
		if Add(a, b).Cmp(Add(b, a)) != 0 {
			t.Fatalf("addition is not commutative for %s, %s", a, b)
		}
	}
}

func TestWorkedExamples(t *testing.T) {
	if got := Add(frac(t, 1, 2), frac(t, 1, 3)); !got.Equal(frac(t, 5, 6)) {
		t.Fatalf("1/2 + 1/3 = %s", got)
	}
	if got := frac(t, 1, 3).AsDecimal(4); got != "0.3333" {
		t.Fatalf("(1/3).AsDecimal(4) = %q", got)
	}
}
