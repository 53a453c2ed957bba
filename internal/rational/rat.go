// Package rational implements exact fractions over bignum.Int.
//
// Every Rat produced by this package is in canonical form: the denominator is
// positive, numerator and denominator are coprime, and zero is 0/1. The only
// exception is NewLazy, which keeps a numerator/denominator pair exactly as
// given until Normalize is called.
package rational

import (
	"errors"

	"rational/internal/bignum"
)

// ErrZeroDenominator is returned when a fraction is built with denominator 0.
var ErrZeroDenominator = errors.New("zero denominator")

// ErrExponentRange is returned by Pow for an exponent whose magnitude does
// not fit in a uint.
var ErrExponentRange = errors.New("exponent out of range")

// Rat is an exact fraction num/den. The zero value is 0/1.
type Rat struct {
	num bignum.Int
	den bignum.Int
}

// FromInt returns n/1.
func FromInt(n bignum.Int) Rat {
	return Rat{num: n, den: bignum.One()}
}

// FromInt64 returns n/1.
func FromInt64(n int64) Rat {
	return FromInt(bignum.FromInt64(n))
}

// New returns num/den reduced to lowest terms.
func New(num, den bignum.Int) (Rat, error) {
	if den.IsZero() {
		return Rat{}, ErrZeroDenominator
	}
	return canonical(num, den), nil
}

// MustNew is like New but panics on a zero denominator.
func MustNew(num, den bignum.Int) Rat {
	r, err := New(num, den)
	if err != nil {
		panic(err)
	}
	return r
}

// FromFrac64 returns n/d reduced to lowest terms.
func FromFrac64(n, d int64) (Rat, error) {
	return New(bignum.FromInt64(n), bignum.FromInt64(d))
}

// NewLazy stores num/den without reducing it. Arithmetic on the result is
// still exact and every arithmetic result is canonical; Num and Den report
// the stored pair until Normalize is called.
func NewLazy(num, den bignum.Int) (Rat, error) {
	if den.IsZero() {
		return Rat{}, ErrZeroDenominator
	}
	return Rat{num: num, den: den}, nil
}

// Normalize returns x in canonical form.
func (x Rat) Normalize() Rat {
	return canonical(x.num, x.denom())
}

// IsCanonical reports whether the stored pair is already in lowest terms
// with a positive denominator.
func (x Rat) IsCanonical() bool {
	d := x.denom()
	if d.IsNeg() {
		return false
	}
	return bignum.GCD(x.num, d).Equal(bignum.One())
}

// canonical reduces num/den: the sign moves to the numerator and both parts
// are divided by their gcd. den must be non-zero.
func canonical(num, den bignum.Int) Rat {
	if den.IsNeg() {
		num, den = num.Neg(), den.Neg()
	}
	g := bignum.GCD(num, den)
	if g.Equal(bignum.One()) {
		return Rat{num: num, den: den}
	}
	n, _ := bignum.Quo(num, g) //nolint:errcheck // g divides den != 0, so g != 0.
	d, _ := bignum.Quo(den, g) //nolint:errcheck // same as above.
	return Rat{num: n, den: d}
}

func (x Rat) denom() bignum.Int {
	if x.den.IsZero() {
		return bignum.One()
	}
	return x.den
}

// Num returns the stored numerator.
func (x Rat) Num() bignum.Int { return x.num }

// Den returns the stored denominator.
func (x Rat) Den() bignum.Int { return x.denom() }

// Sign returns -1, 0 or +1.
func (x Rat) Sign() int {
	return x.num.Sign() * x.denom().Sign()
}

// IsZero reports whether x == 0.
func (x Rat) IsZero() bool { return x.num.IsZero() }

// Len returns the number of decimal digits needed to write x: those of the
// numerator, plus those of the denominator when x is not an integer.
func (x Rat) Len() int {
	x = x.Normalize()
	if x.IsInt() {
		return x.num.Len()
	}
	return x.num.Len() + x.den.Len()
}

// IsInt reports whether x has no fractional part.
func (x Rat) IsInt() bool {
	return x.IsZero() || x.Normalize().den.Equal(bignum.One())
}

// Neg returns -x.
func (x Rat) Neg() Rat {
	return Rat{num: x.num.Neg(), den: x.denom()}.Normalize()
}

// Abs returns |x|.
func (x Rat) Abs() Rat {
	if x.Sign() < 0 {
		return x.Neg()
	}
	return x.Normalize()
}

// Inv returns 1/x.
func (x Rat) Inv() (Rat, error) {
	if x.IsZero() {
		return Rat{}, bignum.ErrDivByZero
	}
	return canonical(x.denom(), x.num), nil
}
