package rational

import (
	"strconv"
	"strings"

	"rational/internal/bignum"
)

// float64Precision is the number of fractional digits used by Float64.
const float64Precision = 18

var ten = bignum.FromInt64(10)

// String renders x as "num" when the denominator is 1 and "num/den" otherwise.
func (x Rat) String() string {
	x = x.Normalize()
	if x.den.Equal(bignum.One()) {
		return x.num.String()
	}
	return x.num.String() + "/" + x.den.String()
}

// AsDecimal renders x with exactly precision fractional digits, truncating
// toward zero. With precision 0 only the integer part is written.
func (x Rat) AsDecimal(precision uint) string {
	x = x.Normalize()
	intPart, rem, _ := bignum.QuoRem(x.num, x.den) //nolint:errcheck // den > 0.

	var sb strings.Builder
	// Truncation loses the sign when the integer part is zero.
	if intPart.IsZero() && precision != 0 && rem.IsNeg() {
		sb.WriteByte('-')
	}
	sb.WriteString(intPart.String())
	if precision == 0 {
		return sb.String()
	}
	sb.WriteByte('.')
	rem = rem.Abs()
	for range precision {
		var digit bignum.Int
		digit, rem, _ = bignum.QuoRem(bignum.Mul(rem, ten), x.den) //nolint:errcheck // den > 0.
		sb.WriteString(digit.String())
	}
	return sb.String()
}

// Float64 returns the nearest float64 to the first 18 decimal digits of x.
func (x Rat) Float64() (float64, error) {
	return strconv.ParseFloat(x.AsDecimal(float64Precision), 64)
}
