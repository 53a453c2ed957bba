package rational

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"rational/internal/bignum"
)

// maxDecimalExponent bounds the power of ten ParseDecimal will materialize.
const maxDecimalExponent = 10_000

// Parse reads "n", "n/d" or two whitespace-separated integers "n d" and
// returns the reduced fraction.
func Parse(s string) (Rat, error) {
	s = strings.TrimSpace(s)
	var parts []string
	if i := strings.IndexByte(s, '/'); i >= 0 {
		parts = []string{s[:i], s[i+1:]}
	} else {
		parts = strings.Fields(s)
	}
	switch len(parts) {
	case 1:
		n, err := bignum.Parse(parts[0])
		if err != nil {
			return Rat{}, err
		}
		return FromInt(n), nil
	case 2:
		n, err := bignum.Parse(parts[0])
		if err != nil {
			return Rat{}, fmt.Errorf("numerator: %w", err)
		}
		d, err := bignum.Parse(parts[1])
		if err != nil {
			return Rat{}, fmt.Errorf("denominator: %w", err)
		}
		return New(n, d)
	default:
		return Rat{}, fmt.Errorf("%w: %q", bignum.ErrParse, s)
	}
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Rat {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

// ParseDecimal converts decimal text such as "-12.375" or "1.5e-3" into the
// exact fraction it denotes.
func ParseDecimal(s string) (Rat, error) {
	s = strings.TrimSpace(norm.NFKC.String(s))
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Rat{}, fmt.Errorf("%w: %q: %v", bignum.ErrParse, s, err)
	}
	exp := int64(d.Exponent())
	if exp > maxDecimalExponent || exp < -maxDecimalExponent {
		return Rat{}, fmt.Errorf("%w: %q: exponent out of range", bignum.ErrParse, s)
	}
	coef, err := bignum.Parse(d.Coefficient().String())
	if err != nil {
		return Rat{}, err
	}
	if exp >= 0 {
		return FromInt(bignum.Mul(coef, bignum.Pow(ten, uint(exp)))), nil
	}
	return New(coef, bignum.Pow(ten, uint(-exp)))
}
