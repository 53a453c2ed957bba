package rational

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"rational/internal/bignum"
)

func TestAsDecimal(t *testing.T) {
	tests := []struct {
		in        string
		precision uint
		want      string
	}{
		{"1/3", 4, "0.3333"},
		{"2/3", 4, "0.6666"},
		{"-1/3", 4, "-0.3333"},
		{"-1/3", 0, "0"},
		{"-7/2", 2, "-3.50"},
		{"7/2", 0, "3"},
		{"1/8", 5, "0.12500"},
		{"22/7", 10, "3.1428571428"},
		{"0", 3, "0.000"},
		{"-5", 2, "-5.00"},
		{"1/1000", 2, "0.00"},
		{"-1/1000", 4, "-0.0010"},
	}
	for _, tt := range tests {
		if got := MustParse(tt.in).AsDecimal(tt.precision); got != tt.want {
			t.Errorf("(%s).AsDecimal(%d) = %q, want %q", tt.in, tt.precision, got, tt.want)
		}
	}
}

func TestFloat64(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1/2", 0.5},
		{"-3/4", -0.75},
		{"1/3", 1.0 / 3.0},
		{"10", 10},
	}
	for _, tt := range tests {
		got, err := MustParse(tt.in).Float64()
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(got-tt.want) > 1e-15 {
			t.Errorf("Float64(%s) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct{ in, want string }{
		{"5", "5"},
		{"-5", "-5"},
		{"10/4", "5/2"},
		{" 3 / -9 ", "-1/3"},
		{"6 8", "3/4"},
		{"-6\t-8", "3/4"},
		{"0/7", "0"},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.in, err)
		}
		checkCanonical(t, got)
		if got.String() != tt.want {
			t.Errorf("Parse(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
	for _, in := range []string{"", "x", "1/", "/2", "1 2 3", "1/2/3", "1.5"} {
		if _, err := Parse(in); !errors.Is(err, bignum.ErrParse) {
			t.Errorf("Parse(%q): expected ErrParse, got %v", in, err)
		}
	}
	if _, err := Parse("1/0"); !errors.Is(err, ErrZeroDenominator) {
		t.Fatalf("expected ErrZeroDenominator, got %v", err)
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, in := range []string{"0", "-1", "1/2", "-355/113", "123456789012345678901234567891/7"} {
		x := MustParse(in)
		y, err := Parse(x.String())
		if err != nil {
			t.Fatal(err)
		}
		if !x.Equal(y) || x.String() != in {
			t.Fatalf("round trip %s -> %s", in, y)
		}
	}
}

func TestParseReducesInput(t *testing.T) {
	tests := []struct{ in, want string }{
		{"123456789012345678901234567890/7", "17636684144620811271604938270"},
		{"6/-4", "-3/2"},
		{"-10 20", "-1/2"},
		{"0/5", "0"},
	}
	for _, tt := range tests {
		x, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.in, err)
		}
		if got := x.String(); got != tt.want {
			t.Errorf("Parse(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseDecimal(t *testing.T) {
	tests := []struct{ in, want string }{
		{"0.5", "1/2"},
		{"-12.375", "-99/8"},
		{"1.5e-3", "3/2000"},
		{"2e3", "2000"},
		{"0", "0"},
		{"0.000", "0"},
		{"３.２５", "13/4"},
	}
	for _, tt := range tests {
		got, err := ParseDecimal(tt.in)
		if err != nil {
			t.Fatalf("ParseDecimal(%q): %v", tt.in, err)
		}
		checkCanonical(t, got)
		if got.String() != tt.want {
			t.Errorf("ParseDecimal(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
	for _, in := range []string{"", "abc", "1/2", "1e999999"} {
		if _, err := ParseDecimal(in); !errors.Is(err, bignum.ErrParse) {
			t.Errorf("ParseDecimal(%q): expected ErrParse, got %v", in, err)
		}
	}
}

func TestCodecs(t *testing.T) {
	x := MustParse("-355/113")

	data, err := json.Marshal(x)
	if err != nil || string(data) != `"-355/113"` {
		t.Fatalf("json.Marshal = %s, %v", data, err)
	}
	var fromJSON Rat
	if err := json.Unmarshal(data, &fromJSON); err != nil || !fromJSON.Equal(x) {
		t.Fatalf("json round trip = %s, %v", fromJSON, err)
	}

	packed, err := msgpack.Marshal(x)
	if err != nil {
		t.Fatal(err)
	}
	var fromPack Rat
	if err := msgpack.Unmarshal(packed, &fromPack); err != nil || !fromPack.Equal(x) {
		t.Fatalf("msgpack round trip = %s, %v", fromPack, err)
	}
	checkCanonical(t, fromPack)
}
