// Package bignum implements arbitrary-precision signed integers stored as
// decimal digits.
package bignum

// nat is an unsigned magnitude.
//
// Digits are base-10 little-endian (nat[0] is least significant). Canonical
// zero is represented as a nil/empty slice and there is never a zero digit at
// the most significant position.
type nat []uint8

func trimDigits(d nat) nat {
	for len(d) > 0 && d[len(d)-1] == 0 {
		d = d[:len(d)-1]
	}
	if len(d) == 0 {
		return nil
	}
	return d
}

func cloneDigits(d nat) nat {
	d = trimDigits(d)
	if len(d) == 0 {
		return nil
	}
	out := make(nat, len(d))
	copy(out, d)
	return out
}

func natFromUint64(v uint64) nat {
	if v == 0 {
		return nil
	}
	out := make(nat, 0, 20)
	for v > 0 {
		out = append(out, uint8(v%10)) //nolint:gosec // G115: value is a single decimal digit.
		v /= 10
	}
	return out
}

// cmpDigits compares two magnitudes: a shorter sequence is smaller, otherwise
// the first differing digit from the most significant end decides.
func cmpDigits(a, b nat) int {
	a = trimDigits(a)
	b = trimDigits(b)
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	for i := len(a) - 1; i >= 0; i-- {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// natAdd returns a+b with carry propagation.
func natAdd(a, b nat) nat {
	a = trimDigits(a)
	b = trimDigits(b)
	n := max(len(a), len(b))
	if n == 0 {
		return nil
	}
	out := make(nat, n+1)
	var carry uint8
	for i := range n {
		sum := carry
		if i < len(a) {
			sum += a[i]
		}
		if i < len(b) {
			sum += b[i]
		}
		if sum > 9 {
			sum -= 10
			carry = 1
		} else {
			carry = 0
		}
		out[i] = sum
	}
	out[n] = carry
	return trimDigits(out)
}

// natSub returns a-b with borrow propagation. The caller guarantees a >= b.
func natSub(a, b nat) nat {
	a = trimDigits(a)
	b = trimDigits(b)
	if len(b) == 0 {
		return cloneDigits(a)
	}
	out := make(nat, len(a))
	copy(out, a)
	subAt(out, b, 0)
	return trimDigits(out)
}

// subAt subtracts sub from dst starting at digit offset off, in place.
func subAt(dst, sub nat, off int) {
	var borrow uint8
	for i := 0; off+i < len(dst); i++ {
		if i >= len(sub) && borrow == 0 {
			return
		}
		d := dst[off+i]
		s := borrow
		if i < len(sub) {
			s += sub[i]
		}
		if d < s {
			dst[off+i] = d + 10 - s
			borrow = 1
		} else {
			dst[off+i] = d - s
			borrow = 0
		}
	}
}

// addAt adds src into dst starting at digit offset off, in place. dst must be
// long enough to absorb the final carry.
func addAt(dst, src nat, off int) {
	var carry uint8
	for i := 0; off+i < len(dst); i++ {
		if i >= len(src) && carry == 0 {
			return
		}
		sum := dst[off+i] + carry
		if i < len(src) {
			sum += src[i]
		}
		if sum > 9 {
			dst[off+i] = sum - 10
			carry = 1
		} else {
			dst[off+i] = sum
			carry = 0
		}
	}
}

// natHalf returns floor(a/2), dividing from the most significant digit.
func natHalf(a nat) nat {
	a = trimDigits(a)
	if len(a) == 0 {
		return nil
	}
	out := make(nat, len(a))
	var rem uint8
	for i := len(a) - 1; i >= 0; i-- {
		cur := rem*10 + a[i]
		out[i] = cur / 2
		rem = cur % 2
	}
	return trimDigits(out)
}

// natPow10 returns 10^n.
func natPow10(n int) nat {
	out := make(nat, n+1)
	out[n] = 1
	return out
}

func natIsOne(a nat) bool {
	a = trimDigits(a)
	return len(a) == 1 && a[0] == 1
}

var natOne = nat{1}
