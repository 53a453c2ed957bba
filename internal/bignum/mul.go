package bignum

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// KaratsubaThreshold is the operand size, in digits, at or below which
// multiplication falls back to the schoolbook algorithm.
const KaratsubaThreshold = 128

// natMulSchool is the schoolbook convolution of a and b.
func natMulSchool(a, b nat) nat {
	a = trimDigits(a)
	b = trimDigits(b)
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	out := make(nat, len(a)+len(b))
	for i := range a {
		ai := uint32(a[i])
		if ai == 0 {
			continue
		}
		var carry uint32
		for j := range b {
			k := i + j
			cur := uint32(out[k]) + ai*uint32(b[j]) + carry
			out[k] = uint8(cur % 10) //nolint:gosec // G115: value is a single decimal digit.
			carry = cur / 10
		}
		for k := i + len(b); carry != 0; k++ {
			cur := uint32(out[k]) + carry
			out[k] = uint8(cur % 10) //nolint:gosec // G115: value is a single decimal digit.
			carry = cur / 10
		}
	}
	return trimDigits(out)
}

// karatsubaSplit returns the half width h used to split operands of the given
// lengths, or 0 when the operands are small enough for the schoolbook path.
func karatsubaSplit(la, lb int) int {
	n := max(la, lb)
	if n%2 != 0 {
		n++
	}
	if n <= KaratsubaThreshold {
		return 0
	}
	return n / 2
}

// splitDigits returns copies of the low h digits and the remaining high
// digits of a.
func splitDigits(a nat, h int) (lo, hi nat) {
	if h >= len(a) {
		return cloneDigits(a), nil
	}
	return cloneDigits(a[:h]), cloneDigits(a[h:])
}

// natMulKaratsuba multiplies a·B+b by c·B+d as
// ac·B² + ((a+b)(c+d) - ac - bd)·B + bd, recursing on the three products.
func natMulKaratsuba(x, y nat) nat {
	x = trimDigits(x)
	y = trimDigits(y)
	if len(x) == 0 || len(y) == 0 {
		return nil
	}
	h := karatsubaSplit(len(x), len(y))
	if h == 0 {
		return natMulSchool(x, y)
	}
	b, a := splitDigits(x, h)
	d, c := splitDigits(y, h)

	ac := natMulKaratsuba(a, c)
	bd := natMulKaratsuba(b, d)
	sum := natMulKaratsuba(natAdd(a, b), natAdd(c, d))
	return karatsubaAssemble(len(x)+len(y), h, ac, bd, sum)
}

// karatsubaAssemble combines the three partial products into a result of at
// most n digits.
func karatsubaAssemble(n, h int, ac, bd, sum nat) nat {
	middle := natSub(natSub(sum, ac), bd)
	out := make(nat, max(n, 2*h+len(ac))+1)
	addAt(out, bd, 0)
	addAt(out, middle, h)
	addAt(out, ac, 2*h)
	return trimDigits(out)
}

// natMulParallel is natMulKaratsuba with the three products of the top depth
// recursion levels computed concurrently.
func natMulParallel(ctx context.Context, x, y nat, depth int) (nat, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	x = trimDigits(x)
	y = trimDigits(y)
	if len(x) == 0 || len(y) == 0 {
		return nil, nil
	}
	h := karatsubaSplit(len(x), len(y))
	if h == 0 || depth <= 0 {
		return natMulKaratsuba(x, y), nil
	}
	b, a := splitDigits(x, h)
	d, c := splitDigits(y, h)
	ab := natAdd(a, b)
	cd := natAdd(c, d)

	var ac, bd, sum nat
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ac, err = natMulParallel(gctx, a, c, depth-1)
		return err
	})
	g.Go(func() error {
		var err error
		bd, err = natMulParallel(gctx, b, d, depth-1)
		return err
	})
	g.Go(func() error {
		var err error
		sum, err = natMulParallel(gctx, ab, cd, depth-1)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return karatsubaAssemble(len(x)+len(y), h, ac, bd, sum), nil
}

// natMul selects the multiplication algorithm by operand size.
func natMul(a, b nat) nat {
	a = trimDigits(a)
	b = trimDigits(b)
	if karatsubaSplit(len(a), len(b)) == 0 {
		return natMulSchool(a, b)
	}
	return natMulKaratsuba(a, b)
}

// Mul returns a·b, using Karatsuba multiplication once either operand is
// longer than KaratsubaThreshold digits.
func Mul(a, b Int) Int {
	return makeInt(a.IsNeg() != b.IsNeg(), natMul(a.mag, b.mag))
}

// MulSchool returns a·b computed with the schoolbook algorithm only.
func MulSchool(a, b Int) Int {
	return makeInt(a.IsNeg() != b.IsNeg(), natMulSchool(a.mag, b.mag))
}

// MulKaratsuba returns a·b computed with the recursive algorithm.
func MulKaratsuba(a, b Int) Int {
	return makeInt(a.IsNeg() != b.IsNeg(), natMulKaratsuba(a.mag, b.mag))
}

// MulParallel returns a·b, running the partial products of the top depth
// levels of the Karatsuba recursion on separate goroutines. The result is
// identical to Mul.
func MulParallel(ctx context.Context, a, b Int, depth int) (Int, error) {
	mag, err := natMulParallel(ctx, a.mag, b.mag, depth)
	if err != nil {
		return Int{}, err
	}
	return makeInt(a.IsNeg() != b.IsNeg(), mag), nil
}

// Pow returns x^exp by repeated squaring.
func Pow(x Int, exp uint) Int {
	result := One()
	base := x
	for exp > 0 {
		if exp&1 == 1 {
			result = Mul(result, base)
		}
		exp >>= 1
		if exp == 0 {
			break
		}
		base = Mul(base, base)
	}
	return result
}

// Factorial returns n!.
func Factorial(n uint) Int {
	result := One()
	for i := uint64(2); i <= uint64(n); i++ {
		result = Mul(result, FromUint64(i))
	}
	return result
}
