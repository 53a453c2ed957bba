package bignum

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestMulSmall(t *testing.T) {
	tests := []struct {
		a, b, want string
	}{
		{"0", "123", "0"},
		{"-123", "0", "0"},
		{"1", "-987", "-987"},
		{"12", "12", "144"},
		{"-12", "12", "-144"},
		{"-12", "-12", "144"},
		{"99999", "99999", "9999800001"},
		{"123456789", "987654321", "121932631112635269"},
	}
	for _, tt := range tests {
		a, b := MustParse(tt.a), MustParse(tt.b)
		mustEqual(t, Mul(a, b), tt.want)
		mustEqual(t, Mul(b, a), tt.want)
		mustEqual(t, MulSchool(a, b), tt.want)
		mustEqual(t, MulKaratsuba(a, b), tt.want)
	}
}

func TestKaratsubaMatchesSchoolbook(t *testing.T) {
	r := newRand()
	sizes := [][2]int{
		{129, 129},
		{130, 1},
		{200, 200},
		{256, 131},
		{257, 257},
		{513, 300},
		{1000, 5},
		{1024, 1024},
	}
	for _, sz := range sizes {
		a := randInt(r, sz[0])
		b := randInt(r, sz[1])
		want := MulSchool(a, b)
		got := MulKaratsuba(a, b)
		checkCanonical(t, got)
		if !got.Equal(want) {
			t.Fatalf("karatsuba %dx%d digits mismatch:\n got %s\nwant %s", sz[0], sz[1], got, want)
		}
		if !Mul(a, b).Equal(want) {
			t.Fatalf("Mul %dx%d digits mismatch", sz[0], sz[1])
		}
	}
}

func TestKaratsubaCarryHeavy(t *testing.T) {
	nines := MustParse(strings.Repeat("9", 300))
	got := MulKaratsuba(nines, nines)
	want := strings.Repeat("9", 299) + "8" + strings.Repeat("0", 299) + "1"
	mustEqual(t, got, want)

	pow := MustParse("1" + strings.Repeat("0", 400))
	mustEqual(t, MulKaratsuba(pow, pow), "1"+strings.Repeat("0", 800))
}

func TestMulParallel(t *testing.T) {
	r := newRand()
	a := randInt(r, 900)
	b := randInt(r, 700)
	want := MulSchool(a, b)
	for _, depth := range []int{0, 1, 3} {
		got, err := MulParallel(context.Background(), a, b, depth)
		if err != nil {
			t.Fatalf("depth %d: %v", depth, err)
		}
		if !got.Equal(want) {
			t.Fatalf("depth %d: parallel product mismatch", depth)
		}
	}
}

func TestMulParallelCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := newRand()
	_, err := MulParallel(ctx, randInt(r, 400), randInt(r, 400), 2)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPowFactorial(t *testing.T) {
	mustEqual(t, Pow(FromInt64(2), 0), "1")
	mustEqual(t, Pow(FromInt64(0), 0), "1")
	mustEqual(t, Pow(FromInt64(2), 10), "1024")
	mustEqual(t, Pow(FromInt64(-3), 3), "-27")
	mustEqual(t, Pow(FromInt64(2), 100), "1267650600228229401496703205376")
	mustEqual(t, Factorial(0), "1")
	mustEqual(t, Factorial(1), "1")
	mustEqual(t, Factorial(10), "3628800")
	mustEqual(t, Factorial(30), "265252859812191058636308480000000")
}
