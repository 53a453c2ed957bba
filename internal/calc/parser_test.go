package calc

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// sexpr renders a tree in prefix form for comparison.
func sexpr(e Expr) string {
	switch x := e.(type) {
	case *NumberExpr:
		return x.Tok.Text
	case *UnaryExpr:
		return fmt.Sprintf("(%s %s)", x.Op.Text, sexpr(x.X))
	case *BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", x.Op.Text, sexpr(x.X), sexpr(x.Y))
	case *FactorialExpr:
		return fmt.Sprintf("(! %s)", sexpr(x.X))
	case *CallExpr:
		parts := []string{x.Name.Text}
		for _, a := range x.Args {
			parts = append(parts, sexpr(a))
		}
		return "(" + strings.Join(parts, " ") + ")"
	default:
		return "?"
	}
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct{ in, want string }{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"1 - 2 - 3", "(- (- 1 2) 3)"},
		{"8 / 4 / 2", "(/ (/ 8 4) 2)"},
		{"2 ^ 3 ^ 2", "(^ 2 (^ 3 2))"},
		{"-2 ^ 2", "(- (^ 2 2))"},
		{"2 * -3", "(* 2 (- 3))"},
		{"3! ^ 2", "(^ (! 3) 2)"},
		{"2 ^ 3!", "(^ 2 (! 3))"},
		{"-3!", "(- (! 3))"},
		{"(1 + 2) * 3", "(* (+ 1 2) 3)"},
		{"10 % 4 + 1", "(+ (% 10 4) 1)"},
		{"gcd(12, 18) + 1", "(+ (gcd 12 18) 1)"},
		{"f()", "(f)"},
		{"1.5e3 * .5", "(* 1.5e3 .5)"},
		{"2 ^ -1", "(^ 2 (- 1))"},
	}
	var got, want []string
	for _, tt := range tests {
		expr, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.in, err)
		}
		got = append(got, tt.in+" => "+sexpr(expr))
		want = append(want, tt.in+" => "+tt.want)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("parse trees mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		in     string
		offset int
	}{
		{"1 +", 3},
		{"(1", 2},
		{"1 2", 2},
		{"1 $", 2},
		{"2e", 2},
		{"gcd 1", 4},
		{"gcd(1 2)", 6},
		{")", 0},
		{"", 0},
	}
	for _, tt := range tests {
		_, err := Parse(tt.in)
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Fatalf("Parse(%q): expected *SyntaxError, got %v", tt.in, err)
		}
		if se.Offset != tt.offset {
			t.Errorf("Parse(%q): offset %d, want %d (%v)", tt.in, se.Offset, tt.offset, se)
		}
	}
}

func TestLexFullWidth(t *testing.T) {
	toks, err := Lex("１２＋３")
	if err != nil {
		t.Fatal(err)
	}
	var kinds []Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	if diff := cmp.Diff([]Kind{Int, Plus, Int, EOF}, kinds); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
	if toks[0].Text != "12" {
		t.Fatalf("first token %q", toks[0].Text)
	}
}
