package bignum

import (
	"math/rand/v2"
	"strings"
	"testing"
)

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(0x5eed, 0xb16))
}

// randInt returns a value with exactly n digits (0 when n == 0) and a random sign.
func randInt(r *rand.Rand, n int) Int {
	if n == 0 {
		return Int{}
	}
	var sb strings.Builder
	if r.IntN(2) == 0 {
		sb.WriteByte('-')
	}
	sb.WriteByte(byte('1' + r.IntN(9)))
	for i := 1; i < n; i++ {
		sb.WriteByte(byte('0' + r.IntN(10)))
	}
	return MustParse(sb.String())
}

func checkCanonical(t *testing.T, x Int) {
	t.Helper()
	if len(x.mag) == 0 {
		if x.neg {
			t.Fatalf("negative zero: %#v", x)
		}
		if x.mag != nil {
			t.Fatalf("zero with non-nil digits: %#v", x)
		}
		return
	}
	if x.mag[len(x.mag)-1] == 0 {
		t.Fatalf("leading zero digit in %v (%#v)", x, x.mag)
	}
	for _, d := range x.mag {
		if d > 9 {
			t.Fatalf("digit out of range in %#v", x.mag)
		}
	}
}

func mustEqual(t *testing.T, got Int, want string) {
	t.Helper()
	checkCanonical(t, got)
	if got.String() != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}
