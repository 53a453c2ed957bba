package bignum

import (
	"fmt"
	"strings"
)

// String renders x in decimal: "0" for zero, a leading '-' for negative
// values and no leading zero digits.
func (x Int) String() string {
	mag := trimDigits(x.mag)
	if len(mag) == 0 {
		return "0"
	}
	var sb strings.Builder
	sb.Grow(len(mag) + 1)
	if x.neg {
		sb.WriteByte('-')
	}
	for i := len(mag) - 1; i >= 0; i-- {
		sb.WriteByte('0' + mag[i])
	}
	return sb.String()
}

// Format implements fmt.Formatter for the verbs %v, %s and %d, honouring
// width and the '-', '+' and '0' flags.
func (x Int) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v', 's', 'd':
	default:
		fmt.Fprintf(s, "%%!%c(bignum.Int=%s)", verb, x.String())
		return
	}
	body := x.String()
	sign := ""
	if strings.HasPrefix(body, "-") {
		sign, body = "-", body[1:]
	} else if s.Flag('+') {
		sign = "+"
	}
	width, ok := s.Width()
	pad := 0
	if ok {
		pad = width - len(sign) - len(body)
	}
	switch {
	case pad <= 0:
		fmt.Fprint(s, sign+body)
	case s.Flag('-'):
		fmt.Fprint(s, sign+body+strings.Repeat(" ", pad))
	case s.Flag('0'):
		fmt.Fprint(s, sign+strings.Repeat("0", pad)+body)
	default:
		fmt.Fprint(s, strings.Repeat(" ", pad)+sign+body)
	}
}
