package calc

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"rational/internal/bignum"
	"rational/internal/rational"
	"rational/internal/trace"
)

// Mode selects the number domain of an evaluation.
type Mode uint8

const (
	// ModeRational evaluates over exact fractions.
	ModeRational Mode = iota
	// ModeInteger evaluates over integers with truncating division.
	ModeInteger
)

func (m Mode) String() string {
	switch m {
	case ModeRational:
		return "rational"
	case ModeInteger:
		return "integer"
	default:
		return "unknown"
	}
}

// ParseMode converts a string to Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "rational", "rat", "":
		return ModeRational, nil
	case "integer", "int":
		return ModeInteger, nil
	default:
		return ModeRational, fmt.Errorf("invalid mode: %q (expected: rational|integer)", s)
	}
}

// Limits on operands that would otherwise allocate without bound.
const (
	MaxExponent  = 100_000
	MaxFactorial = 5_000
)

var (
	ErrNotInteger      = errors.New("operand is not an integer")
	ErrDecimalLiteral  = errors.New("decimal literal in integer mode")
	ErrNegativeOperand = errors.New("operand must not be negative")
	ErrTooLarge        = errors.New("operand too large")
	ErrUnknownFunc     = errors.New("unknown function")
	ErrArity           = errors.New("wrong number of arguments")
)

// EvalError is a failure while evaluating the node at Offset.
type EvalError struct {
	Offset int
	Op     string
	Err    error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("%s at offset %d: %v", e.Op, e.Offset, e.Err)
}

func (e *EvalError) Unwrap() error { return e.Err }

// Evaluator computes expressions. The zero value evaluates rationals
// sequentially.
type Evaluator struct {
	Mode Mode
	// ParallelDepth > 0 runs large integer products with bignum.MulParallel.
	ParallelDepth int
}

// parallelMinDigits is the operand size below which goroutines cost more
// than they save.
const parallelMinDigits = 4 * bignum.KaratsubaThreshold

// Eval parses and evaluates src.
func (e *Evaluator) Eval(ctx context.Context, src string) (rational.Rat, error) {
	ctx, span := trace.Start(ctx, trace.ScopeExpr, "eval")
	expr, err := Parse(src)
	if err != nil {
		span.End("syntax error")
		return rational.Rat{}, err
	}
	v, err := e.eval(ctx, expr)
	if err != nil {
		span.End(err.Error())
		return rational.Rat{}, err
	}
	if span.Enabled() {
		span.WithExtra("mode", e.Mode.String()).
			WithExtra("num_digits", strconv.Itoa(v.Num().Len())).
			WithExtra("den_digits", strconv.Itoa(v.Den().Len()))
	}
	span.End("")
	return v, nil
}

// EvalExpr evaluates an already parsed expression.
func (e *Evaluator) EvalExpr(ctx context.Context, expr Expr) (rational.Rat, error) {
	return e.eval(ctx, expr)
}

func (e *Evaluator) eval(ctx context.Context, expr Expr) (rational.Rat, error) {
	if err := ctx.Err(); err != nil {
		return rational.Rat{}, err
	}
	switch x := expr.(type) {
	case *NumberExpr:
		return e.number(x)
	case *UnaryExpr:
		v, err := e.eval(ctx, x.X)
		if err != nil {
			return rational.Rat{}, err
		}
		if x.Op.Kind == Minus {
			return v.Neg(), nil
		}
		return v, nil
	case *BinaryExpr:
		lhs, err := e.eval(ctx, x.X)
		if err != nil {
			return rational.Rat{}, err
		}
		rhs, err := e.eval(ctx, x.Y)
		if err != nil {
			return rational.Rat{}, err
		}
		return e.binary(ctx, x.Op, lhs, rhs)
	case *FactorialExpr:
		v, err := e.eval(ctx, x.X)
		if err != nil {
			return rational.Rat{}, err
		}
		return e.factorial(ctx, x.Op, v)
	case *CallExpr:
		args := make([]rational.Rat, len(x.Args))
		for i, arg := range x.Args {
			v, err := e.eval(ctx, arg)
			if err != nil {
				return rational.Rat{}, err
			}
			args[i] = v
		}
		return e.call(x.Name, args)
	default:
		return rational.Rat{}, fmt.Errorf("calc: unexpected node %T", expr)
	}
}

func (e *Evaluator) number(x *NumberExpr) (rational.Rat, error) {
	if x.Tok.Kind == Decimal {
		if e.Mode == ModeInteger {
			return rational.Rat{}, &EvalError{Offset: x.Pos(), Op: "literal", Err: ErrDecimalLiteral}
		}
		v, err := rational.ParseDecimal(x.Tok.Text)
		if err != nil {
			return rational.Rat{}, &EvalError{Offset: x.Pos(), Op: "literal", Err: err}
		}
		return v, nil
	}
	n, err := bignum.Parse(x.Tok.Text)
	if err != nil {
		return rational.Rat{}, &EvalError{Offset: x.Pos(), Op: "literal", Err: err}
	}
	return rational.FromInt(n), nil
}

func (e *Evaluator) binary(ctx context.Context, op Token, lhs, rhs rational.Rat) (rational.Rat, error) {
	fail := func(err error) (rational.Rat, error) {
		return rational.Rat{}, &EvalError{Offset: op.Offset, Op: op.Text, Err: err}
	}
	switch op.Kind {
	case Plus:
		return rational.Add(lhs, rhs), nil
	case Minus:
		return rational.Sub(lhs, rhs), nil
	case Star:
		span := opSpan(ctx, "mul", lhs, rhs)
		defer span.End("")
		if e.Mode == ModeInteger && e.ParallelDepth > 0 &&
			lhs.Num().Len() >= parallelMinDigits && rhs.Num().Len() >= parallelMinDigits {
			p, err := bignum.MulParallel(ctx, lhs.Num(), rhs.Num(), e.ParallelDepth)
			if err != nil {
				return fail(err)
			}
			return rational.FromInt(p), nil
		}
		return rational.Mul(lhs, rhs), nil
	case Slash:
		span := opSpan(ctx, "quo", lhs, rhs)
		defer span.End("")
		if e.Mode == ModeInteger {
			q, err := bignum.Quo(lhs.Num(), rhs.Num())
			if err != nil {
				return fail(err)
			}
			return rational.FromInt(q), nil
		}
		q, err := rational.Quo(lhs, rhs)
		if err != nil {
			return fail(err)
		}
		return q, nil
	case Percent:
		if !lhs.IsInt() || !rhs.IsInt() {
			return fail(ErrNotInteger)
		}
		span := opSpan(ctx, "rem", lhs, rhs)
		defer span.End("")
		r, err := bignum.Rem(lhs.Num(), rhs.Num())
		if err != nil {
			return fail(err)
		}
		return rational.FromInt(r), nil
	case Caret:
		return e.power(ctx, op, lhs, rhs)
	default:
		return fail(fmt.Errorf("unsupported operator %s", op.Kind))
	}
}

func (e *Evaluator) power(ctx context.Context, op Token, base, exp rational.Rat) (rational.Rat, error) {
	fail := func(err error) (rational.Rat, error) {
		return rational.Rat{}, &EvalError{Offset: op.Offset, Op: op.Text, Err: err}
	}
	if !exp.IsInt() {
		return fail(ErrNotInteger)
	}
	n64, ok := exp.Num().Int64()
	if !ok || n64 > MaxExponent || n64 < -MaxExponent {
		return fail(fmt.Errorf("%w: exponent %s exceeds %d", ErrTooLarge, exp, MaxExponent))
	}
	if e.Mode == ModeInteger && n64 < 0 {
		return fail(ErrNegativeOperand)
	}
	n, err := safecast.Conv[int](n64)
	if err != nil {
		return fail(fmt.Errorf("%w: %w", ErrTooLarge, err))
	}
	span := opSpan(ctx, "pow", base, exp)
	defer span.End("")
	v, err := rational.Pow(base, n)
	if err != nil {
		return fail(err)
	}
	return v, nil
}

func (e *Evaluator) factorial(ctx context.Context, op Token, x rational.Rat) (rational.Rat, error) {
	fail := func(err error) (rational.Rat, error) {
		return rational.Rat{}, &EvalError{Offset: op.Offset, Op: "!", Err: err}
	}
	if !x.IsInt() {
		return fail(ErrNotInteger)
	}
	if x.Sign() < 0 {
		return fail(ErrNegativeOperand)
	}
	n64, ok := x.Num().Int64()
	if !ok || n64 > MaxFactorial {
		return fail(fmt.Errorf("%w: %s! exceeds %d!", ErrTooLarge, x, MaxFactorial))
	}
	n, err := safecast.Conv[uint](n64)
	if err != nil {
		return fail(err)
	}
	span := opSpan(ctx, "factorial", x, rational.Rat{})
	defer span.End("")
	return rational.FromInt(bignum.Factorial(n)), nil
}

type builtin struct {
	arity   int
	intArgs bool
	fn      func(args []rational.Rat) (rational.Rat, error)
}

var builtins = map[string]builtin{
	"gcd": {2, true, func(a []rational.Rat) (rational.Rat, error) {
		return rational.FromInt(bignum.GCD(a[0].Num(), a[1].Num())), nil
	}},
	"lcm": {2, true, func(a []rational.Rat) (rational.Rat, error) {
		return rational.FromInt(bignum.LCM(a[0].Num(), a[1].Num())), nil
	}},
	"abs": {1, false, func(a []rational.Rat) (rational.Rat, error) {
		return a[0].Abs(), nil
	}},
	"inv": {1, false, func(a []rational.Rat) (rational.Rat, error) {
		return a[0].Inv()
	}},
	"num": {1, false, func(a []rational.Rat) (rational.Rat, error) {
		return rational.FromInt(a[0].Num()), nil
	}},
	"den": {1, false, func(a []rational.Rat) (rational.Rat, error) {
		return rational.FromInt(a[0].Den()), nil
	}},
}

// Builtins returns the names of the supported functions.
func Builtins() []string {
	return []string{"abs", "den", "gcd", "inv", "lcm", "num"}
}

func (e *Evaluator) call(name Token, args []rational.Rat) (rational.Rat, error) {
	fail := func(err error) (rational.Rat, error) {
		return rational.Rat{}, &EvalError{Offset: name.Offset, Op: name.Text, Err: err}
	}
	fn, ok := builtins[strings.ToLower(name.Text)]
	if !ok {
		return fail(fmt.Errorf("%w %q", ErrUnknownFunc, name.Text))
	}
	if len(args) != fn.arity {
		return fail(fmt.Errorf("%w: want %d, got %d", ErrArity, fn.arity, len(args)))
	}
	if fn.intArgs {
		for _, a := range args {
			if !a.IsInt() {
				return fail(ErrNotInteger)
			}
		}
	}
	v, err := fn.fn(args)
	if err != nil {
		return fail(err)
	}
	if e.Mode == ModeInteger && !v.IsInt() {
		return fail(ErrNotInteger)
	}
	return v, nil
}

func opSpan(ctx context.Context, name string, x, y rational.Rat) *trace.Span {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeOp, name, trace.ParentSpan(ctx))
	if span.Enabled() {
		span.WithExtra("lhs_digits", strconv.Itoa(x.Num().Len()+x.Den().Len())).
			WithExtra("rhs_digits", strconv.Itoa(y.Num().Len()+y.Den().Len()))
	}
	return span
}
