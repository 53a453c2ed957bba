package bignum

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var ErrParse = errors.New("invalid integer format")

// Parse reads an optional sign followed by one or more decimal digits.
// Surrounding whitespace is ignored and compatibility forms such as
// full-width digits are folded to ASCII first.
func Parse(s string) (Int, error) {
	s = strings.TrimSpace(norm.NFKC.String(s))
	if s == "" {
		return Int{}, ErrParse
	}
	text := s
	neg := false
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		neg = true
		s = s[1:]
	}
	mag, err := parseDigits(s)
	if err != nil {
		return Int{}, fmt.Errorf("%w: %q", err, text)
	}
	return makeInt(neg, mag), nil
}

// MustParse is like Parse but panics on malformed input.
func MustParse(s string) Int {
	x, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return x
}

// parseDigits converts big-endian decimal text into a little-endian magnitude.
func parseDigits(s string) (nat, error) {
	if s == "" {
		return nil, ErrParse
	}
	out := make(nat, len(s))
	for i := range len(s) {
		ch := s[i]
		if ch < '0' || ch > '9' {
			return nil, ErrParse
		}
		out[len(s)-1-i] = ch - '0'
	}
	return trimDigits(out), nil
}
