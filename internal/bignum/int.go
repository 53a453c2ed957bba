package bignum

import (
	"math"

	"fortio.org/safecast"
)

// Int represents a big signed integer.
//
// Canonical zero is neg=false with an empty magnitude, so the zero value of
// Int is ready to use. Every function in this package returns a canonical
// value and never aliases the digit storage of its operands; copies of an Int
// are independent.
type Int struct {
	neg bool
	mag nat
}

// Zero returns a zero Int.
func Zero() Int { return Int{} }

// One returns the Int 1.
func One() Int { return Int{mag: nat{1}} }

// FromInt64 creates an Int from an int64.
func FromInt64(v int64) Int {
	if v == 0 {
		return Int{}
	}
	if v > 0 {
		return Int{mag: natFromUint64(uint64(v))}
	}
	u := uint64(-(v + 1)) //nolint:gosec // G115: -(v+1) is non-negative and fits in uint64 here.
	u++
	return Int{neg: true, mag: natFromUint64(u)}
}

// FromUint64 creates an Int from a uint64.
func FromUint64(v uint64) Int {
	return Int{mag: natFromUint64(v)}
}

// FromInt creates an Int from an int.
func FromInt(v int) Int {
	return FromInt64(int64(v))
}

// FromDigits builds an Int from little-endian decimal digits. The slice is
// copied; digits outside [0,9] are rejected with ErrParse.
func FromDigits(neg bool, digits []uint8) (Int, error) {
	for _, d := range digits {
		if d > 9 {
			return Int{}, ErrParse
		}
	}
	return makeInt(neg, cloneDigits(digits)), nil
}

// makeInt normalizes a sign/magnitude pair: leading zero digits are stripped
// and zero is never negative.
func makeInt(neg bool, mag nat) Int {
	mag = trimDigits(mag)
	if len(mag) == 0 {
		return Int{}
	}
	return Int{neg: neg, mag: mag}
}

// IsZero reports whether the integer is zero.
func (x Int) IsZero() bool {
	return len(trimDigits(x.mag)) == 0
}

// Bool reports whether x is non-zero.
func (x Int) Bool() bool { return !x.IsZero() }

// IsNeg reports whether x < 0.
func (x Int) IsNeg() bool {
	return x.neg && !x.IsZero()
}

// Sign returns -1, 0 or +1.
func (x Int) Sign() int {
	switch {
	case x.IsZero():
		return 0
	case x.neg:
		return -1
	default:
		return 1
	}
}

// Len returns the number of decimal digits in |x|; zero has length 0.
func (x Int) Len() int {
	return len(trimDigits(x.mag))
}

// Digits returns a copy of the little-endian decimal digits of |x|.
func (x Int) Digits() []uint8 {
	return cloneDigits(x.mag)
}

// Neg returns -x.
func (x Int) Neg() Int {
	if x.IsZero() {
		return Int{}
	}
	return Int{neg: !x.neg, mag: cloneDigits(x.mag)}
}

// Abs returns |x|.
func (x Int) Abs() Int {
	return makeInt(false, cloneDigits(x.mag))
}

// IsOdd reports whether x is odd.
func (x Int) IsOdd() bool {
	mag := trimDigits(x.mag)
	return len(mag) > 0 && mag[0]%2 == 1
}

// CmpAbs compares |x| and |y|.
func (x Int) CmpAbs(y Int) int {
	return cmpDigits(x.mag, y.mag)
}

// Cmp compares two Int values and returns -1, 0 or 1.
func (x Int) Cmp(y Int) int {
	xs, ys := x.Sign(), y.Sign()
	switch {
	case xs == 0 && ys == 0:
		return 0
	case xs != ys:
		if xs < ys {
			return -1
		}
		return 1
	default:
		cmp := cmpDigits(x.mag, y.mag)
		if x.neg {
			return -cmp
		}
		return cmp
	}
}

func (x Int) Equal(y Int) bool     { return x.Cmp(y) == 0 }
func (x Int) Less(y Int) bool      { return x.Cmp(y) < 0 }
func (x Int) LessEq(y Int) bool    { return x.Cmp(y) <= 0 }
func (x Int) Greater(y Int) bool   { return x.Cmp(y) > 0 }
func (x Int) GreaterEq(y Int) bool { return x.Cmp(y) >= 0 }

// Int64 converts x to int64 if it fits.
func (x Int) Int64() (int64, bool) {
	mag := trimDigits(x.mag)
	if len(mag) > 20 {
		return 0, false
	}
	var u uint64
	for i := len(mag) - 1; i >= 0; i-- {
		if u > (math.MaxUint64-uint64(mag[i]))/10 {
			return 0, false
		}
		u = u*10 + uint64(mag[i])
	}
	if !x.neg {
		v, err := safecast.Conv[int64](u)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	// Negative: allow magnitude up to 2^63.
	if u > uint64(math.MaxInt64)+1 {
		return 0, false
	}
	if u == uint64(math.MaxInt64)+1 {
		return math.MinInt64, true
	}
	return -int64(u), true //nolint:gosec // G115: bounded by MaxInt64 above.
}

// absoluteIncrease returns a value with magnitude |a|+|b| and the sign of a.
func absoluteIncrease(a, b Int) Int {
	return makeInt(a.neg, natAdd(a.mag, b.mag))
}

// absoluteDecrease returns a value with magnitude ||a|-|b||. The sign is the
// sign of a, flipped when |b| > |a|.
func absoluteDecrease(a, b Int) Int {
	neg := a.neg
	greater, less := a.mag, b.mag
	if cmpDigits(a.mag, b.mag) < 0 {
		greater, less = less, greater
		neg = !neg
	}
	return makeInt(neg, natSub(greater, less))
}

// Add returns a+b.
func Add(a, b Int) Int {
	if a.IsNeg() != b.IsNeg() {
		return absoluteDecrease(a, b)
	}
	return absoluteIncrease(a, b)
}

// Sub returns a-b.
func Sub(a, b Int) Int {
	if a.IsNeg() != b.IsNeg() {
		return absoluteIncrease(a, b)
	}
	return absoluteDecrease(a, b)
}

// Inc returns x+1.
func (x Int) Inc() Int { return Add(x, One()) }

// Dec returns x-1.
func (x Int) Dec() Int { return Sub(x, One()) }
