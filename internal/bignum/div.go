package bignum

import "errors"

var (
	// ErrDivByZero indicates an attempt to divide by zero.
	ErrDivByZero = errors.New("division by zero")
)

// natQuo returns floor(a/b) for b != 0.
//
// The quotient is found by binary search: the invariant b·low <= a < b·high
// holds throughout and the loop ends when high = low+1. The bracket starts at
// [10^(k-1), 10^(k+1)) where k = len(a)-len(b), which always contains the
// quotient and is a sub-range of [0, a+1).
func natQuo(a, b nat) nat {
	a = trimDigits(a)
	b = trimDigits(b)
	if cmpDigits(a, b) < 0 {
		return nil
	}
	if natIsOne(b) {
		return cloneDigits(a)
	}
	k := len(a) - len(b)
	var low nat
	if k > 0 {
		low = natPow10(k - 1)
	}
	high := natPow10(k + 1)
	if cmpDigits(high, a) > 0 {
		high = natAdd(a, natOne)
	}
	for cmpDigits(natAdd(low, natOne), high) != 0 {
		mid := natHalf(natAdd(low, high))
		if cmpDigits(natMul(b, mid), a) <= 0 {
			low = mid
		} else {
			high = mid
		}
	}
	return trimDigits(low)
}

// QuoRem returns the truncated quotient a/b and the remainder
// a - (a/b)·b. The quotient rounds toward zero and the remainder takes the
// sign of a.
func QuoRem(a, b Int) (q, r Int, err error) {
	if b.IsZero() {
		return Int{}, Int{}, ErrDivByZero
	}
	q = makeInt(a.IsNeg() != b.IsNeg(), natQuo(a.mag, b.mag))
	r = Sub(a, Mul(q, b))
	return q, r, nil
}

// Quo returns the truncated quotient a/b.
func Quo(a, b Int) (Int, error) {
	if b.IsZero() {
		return Int{}, ErrDivByZero
	}
	return makeInt(a.IsNeg() != b.IsNeg(), natQuo(a.mag, b.mag)), nil
}

// Rem returns a - (a/b)·b.
func Rem(a, b Int) (Int, error) {
	_, r, err := QuoRem(a, b)
	return r, err
}

// QuoLegacy is Quo with the historical division-by-zero behaviour: a zero
// divisor leaves the dividend unchanged.
func QuoLegacy(a, b Int) Int {
	q, err := Quo(a, b)
	if err != nil {
		return makeInt(a.neg, cloneDigits(a.mag))
	}
	return q
}

// RemLegacy is Rem derived from QuoLegacy, so a zero divisor yields
// a - a·0 = a.
func RemLegacy(a, b Int) Int {
	return Sub(a, Mul(QuoLegacy(a, b), b))
}

// GCD returns the greatest common divisor of |a| and |b| using the Euclidean
// algorithm. GCD(0, 0) is 0.
func GCD(a, b Int) Int {
	x, y := a.Abs(), b.Abs()
	for !y.IsZero() {
		_, r, _ := QuoRem(x, y) //nolint:errcheck // y is non-zero.
		x, y = y, r
	}
	return x
}

// LCM returns the least common multiple |a·b| / gcd(a, b). LCM with a zero
// operand is 0.
func LCM(a, b Int) Int {
	if a.IsZero() || b.IsZero() {
		return Int{}
	}
	q, _ := Quo(Mul(a, b).Abs(), GCD(a, b)) //nolint:errcheck // gcd of non-zero values is non-zero.
	return q
}
