package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"rational/internal/bignum"
	"rational/internal/calc"
)

type intOp struct {
	name  string
	arity int
	help  string
	run   func(a, b bignum.Int) (string, error)
}

var intOps = []intOp{
	{"add", 2, "a + b", func(a, b bignum.Int) (string, error) { return bignum.Add(a, b).String(), nil }},
	{"sub", 2, "a - b", func(a, b bignum.Int) (string, error) { return bignum.Sub(a, b).String(), nil }},
	{"mul", 2, "a * b", func(a, b bignum.Int) (string, error) { return bignum.Mul(a, b).String(), nil }},
	{"div", 2, "a / b truncated toward zero", func(a, b bignum.Int) (string, error) {
		q, err := bignum.Quo(a, b)
		return q.String(), err
	}},
	{"mod", 2, "remainder of a / b, sign of a", func(a, b bignum.Int) (string, error) {
		r, err := bignum.Rem(a, b)
		return r.String(), err
	}},
	{"divmod", 2, "quotient and remainder", func(a, b bignum.Int) (string, error) {
		q, r, err := bignum.QuoRem(a, b)
		return q.String() + " " + r.String(), err
	}},
	{"cmp", 2, "-1, 0 or 1", func(a, b bignum.Int) (string, error) { return fmt.Sprint(a.Cmp(b)), nil }},
	{"gcd", 2, "greatest common divisor", func(a, b bignum.Int) (string, error) { return bignum.GCD(a, b).String(), nil }},
	{"lcm", 2, "least common multiple", func(a, b bignum.Int) (string, error) { return bignum.LCM(a, b).String(), nil }},
	{"pow", 2, "a ^ b for 0 <= b <= " + fmt.Sprint(calc.MaxExponent), func(a, b bignum.Int) (string, error) {
		n, ok := b.Int64()
		if !ok || n < 0 || n > calc.MaxExponent {
			return "", fmt.Errorf("exponent %s out of range [0, %d]", b, calc.MaxExponent)
		}
		return bignum.Pow(a, uint(n)).String(), nil
	}},
	{"neg", 1, "-a", func(a, _ bignum.Int) (string, error) { return a.Neg().String(), nil }},
	{"abs", 1, "|a|", func(a, _ bignum.Int) (string, error) { return a.Abs().String(), nil }},
	{"len", 1, "number of decimal digits", func(a, _ bignum.Int) (string, error) { return fmt.Sprint(a.Len()), nil }},
	{"fact", 1, "a! for 0 <= a <= " + fmt.Sprint(calc.MaxFactorial), func(a, _ bignum.Int) (string, error) {
		n, ok := a.Int64()
		if !ok || n < 0 || n > calc.MaxFactorial {
			return "", fmt.Errorf("factorial argument %s out of range [0, %d]", a, calc.MaxFactorial)
		}
		return bignum.Factorial(uint(n)).String(), nil
	}},
}

// lookupOp finds the operation called name, ignoring case.
func lookupOp[T any](ops []T, nameOf func(T) string, name string) (T, bool) {
	for _, op := range ops {
		if strings.EqualFold(nameOf(op), name) {
			return op, true
		}
	}
	var zero T
	return zero, false
}

func opNames[T any](ops []T, nameOf func(T) string) []string {
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = nameOf(op)
	}
	sort.Strings(names)
	return names
}

func opHelp[T any](ops []T, nameOf, help func(T) string) string {
	var sb strings.Builder
	sb.WriteString("Operations:\n")
	for _, op := range ops {
		fmt.Fprintf(&sb, "  %-8s %s\n", nameOf(op), help(op))
	}
	return sb.String()
}

func newIntCmd(app *appState) *cobra.Command {
	nameOf := func(op intOp) string { return op.name }
	names := opNames(intOps, nameOf)
	cmd := &cobra.Command{
		Use:       "int <op> <a> [b]",
		Short:     "Big-integer arithmetic on decimal operands",
		Long:      opHelp(intOps, nameOf, func(op intOp) string { return op.help }),
		Args:      cobra.RangeArgs(2, 3),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			op, ok := lookupOp(intOps, nameOf, args[0])
			if !ok {
				return fmt.Errorf("unknown int operation %q (expected one of %s)", args[0], strings.Join(names, ", "))
			}
			if len(args)-1 != op.arity {
				return fmt.Errorf("int %s takes %d operand(s), got %d", args[0], op.arity, len(args)-1)
			}
			operands := make([]bignum.Int, 2)
			for i, text := range args[1:] {
				v, err := bignum.Parse(text)
				if err != nil {
					return err
				}
				operands[i] = v
			}
			var out string
			err := app.track("int "+args[0], func() (int, error) {
				var err error
				out, err = op.run(operands[0], operands[1])
				return countDigits(out), err
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}

// track times fn when --timings is set. fn returns the digit count of its
// result.
func (a *appState) track(name string, fn func() (int, error)) error {
	if a.timer == nil {
		_, err := fn()
		return err
	}
	return a.timer.Track(name, fn)
}

func countDigits(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			n++
		}
	}
	return n
}
