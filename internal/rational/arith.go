package rational

import (
	"fmt"

	"fortio.org/safecast"

	"rational/internal/bignum"
)

// multiplier returns l / den(x); den(x) divides l exactly.
func (x Rat) multiplier(l bignum.Int) bignum.Int {
	m, _ := bignum.Quo(l, x.denom()) //nolint:errcheck // denominator is never zero.
	return m
}

// Add returns a+b. Both numerators are scaled to lcm(den(a), den(b)).
func Add(a, b Rat) Rat {
	l := bignum.LCM(a.denom(), b.denom())
	num := bignum.Add(
		bignum.Mul(a.num, a.multiplier(l)),
		bignum.Mul(b.num, b.multiplier(l)),
	)
	return canonical(num, l)
}

// Sub returns a-b.
func Sub(a, b Rat) Rat {
	return Add(a, Rat{num: b.num.Neg(), den: b.denom()})
}

// Mul returns a·b.
func Mul(a, b Rat) Rat {
	return canonical(bignum.Mul(a.num, b.num), bignum.Mul(a.denom(), b.denom()))
}

// Quo returns a/b, computed as a·(1/b).
func Quo(a, b Rat) (Rat, error) {
	inv, err := b.Inv()
	if err != nil {
		return Rat{}, err
	}
	return Mul(a, inv), nil
}

// Pow returns x^n; negative exponents invert x first.
func Pow(x Rat, n int) (Rat, error) {
	if n < 0 {
		inv, err := x.Inv()
		if err != nil {
			return Rat{}, err
		}
		x, n = inv, -n
	}
	// -math.MinInt is still negative.
	e, err := safecast.Conv[uint](n)
	if err != nil {
		return Rat{}, fmt.Errorf("%w: %w", ErrExponentRange, err)
	}
	x = x.Normalize()
	return Rat{num: bignum.Pow(x.num, e), den: bignum.Pow(x.den, e)}, nil
}

// Cmp compares a and b by cross-multiplication: a/b < c/d iff a·d < c·b
// when both denominators are positive.
func (x Rat) Cmp(y Rat) int {
	l := bignum.Mul(x.num, y.denom())
	r := bignum.Mul(y.num, x.denom())
	cmp := l.Cmp(r)
	if x.denom().IsNeg() != y.denom().IsNeg() {
		return -cmp
	}
	return cmp
}

func (x Rat) Equal(y Rat) bool     { return x.Cmp(y) == 0 }
func (x Rat) Less(y Rat) bool      { return x.Cmp(y) < 0 }
func (x Rat) LessEq(y Rat) bool    { return x.Cmp(y) <= 0 }
func (x Rat) Greater(y Rat) bool   { return x.Cmp(y) > 0 }
func (x Rat) GreaterEq(y Rat) bool { return x.Cmp(y) >= 0 }
