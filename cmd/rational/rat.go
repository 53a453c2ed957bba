package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rational/internal/calc"
	"rational/internal/rational"
)

type ratOp struct {
	name  string
	arity int
	help  string
	plain bool // result is a sign, not a quantity
	run   func(a, b rational.Rat) (rational.Rat, error)
}

var ratOps = []ratOp{
	{"add", 2, "a + b", false, func(a, b rational.Rat) (rational.Rat, error) { return rational.Add(a, b), nil }},
	{"sub", 2, "a - b", false, func(a, b rational.Rat) (rational.Rat, error) { return rational.Sub(a, b), nil }},
	{"mul", 2, "a * b", false, func(a, b rational.Rat) (rational.Rat, error) { return rational.Mul(a, b), nil }},
	{"div", 2, "a / b", false, rational.Quo},
	{"pow", 2, "a ^ b for an integer b", false, ratPow},
	{"neg", 1, "-a", false, func(a, _ rational.Rat) (rational.Rat, error) { return a.Neg(), nil }},
	{"abs", 1, "|a|", false, func(a, _ rational.Rat) (rational.Rat, error) { return a.Abs(), nil }},
	{"inv", 1, "1 / a", false, func(a, _ rational.Rat) (rational.Rat, error) { return a.Inv() }},
	{"cmp", 2, "-1, 0 or 1", true, func(a, b rational.Rat) (rational.Rat, error) {
		return rational.FromInt64(int64(a.Cmp(b))), nil
	}},
}

func ratPow(a, b rational.Rat) (rational.Rat, error) {
	n, ok := b.Num().Int64()
	if !b.IsInt() || !ok || n > calc.MaxExponent || n < -calc.MaxExponent {
		return rational.Rat{}, fmt.Errorf("exponent %s must be an integer in [-%d, %d]", b, calc.MaxExponent, calc.MaxExponent)
	}
	return rational.Pow(a, int(n))
}

// parseRatArg accepts "n", "n/d" and decimal notation such as "-1.25".
func parseRatArg(text string) (rational.Rat, error) {
	if strings.ContainsAny(text, ".eE") {
		return rational.ParseDecimal(text)
	}
	return rational.Parse(text)
}

func newRatCmd(app *appState) *cobra.Command {
	nameOf := func(op ratOp) string { return op.name }
	names := opNames(ratOps, nameOf)
	cmd := &cobra.Command{
		Use:       "rat <op> <a> [b]",
		Short:     "Exact fraction arithmetic on operands like 3/4 or -1.25",
		Long:      opHelp(ratOps, nameOf, func(op ratOp) string { return op.help }),
		Args:      cobra.RangeArgs(2, 3),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			op, ok := lookupOp(ratOps, nameOf, args[0])
			if !ok {
				return fmt.Errorf("unknown rat operation %q (expected one of %s)", args[0], strings.Join(names, ", "))
			}
			if len(args)-1 != op.arity {
				return fmt.Errorf("rat %s takes %d operand(s), got %d", args[0], op.arity, len(args)-1)
			}
			out, err := app.readOutputOptions(cmd)
			if err != nil {
				return err
			}
			operands := make([]rational.Rat, 2)
			for i, text := range args[1:] {
				v, err := parseRatArg(text)
				if err != nil {
					return err
				}
				operands[i] = v
			}
			var result rational.Rat
			err = app.track("rat "+args[0], func() (int, error) {
				var err error
				result, err = op.run(operands[0], operands[1])
				return result.Len(), err
			})
			if err != nil {
				return err
			}
			if op.plain {
				fmt.Fprintln(cmd.OutOrStdout(), result)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.render(result))
			return nil
		},
	}
	addOutputFlags(cmd)
	// Operands such as -1/2 must not be read as flags.
	cmd.Flags().SetInterspersed(false)
	return cmd
}
