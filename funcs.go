package calc

import (
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a function from reals to reals, used by numeric reduction to
// compute named operations like sin and cos.
type Func interface {
	// Call evaluates the function. The arguments are passed in args, which
	// has a length for which CanCall returned true. Call may modify args.
	// The reducer is available for its precision.
	Call(r *Reducer, args []float64) (float64, error)

	// CanCall returns whether the function can be called with n arguments.
	// Reducing a call with any other number of arguments is an unknown
	// operation.
	CanCall(n int) bool
}

var defaultfuncs = map[string]Func{
	"sin": Monadic(math.Sin),
	"cos": Monadic(math.Cos),
}

// ExtendedFuncs returns functions beyond sin and cos, suitable for passing to
// WithFuncs. The logarithms, exponential, square root, and constants are
// computed at the reducer's precision.
func ExtendedFuncs() map[string]Func {
	return map[string]Func{
		"tan": Monadic(math.Tan),
		"exp": BigMonadic(bigfloat.Exp, math.Exp),
		"ln":  BigMonadic(ln, math.Log),
		"log": BigMonadic(func(out, in *big.Float) *big.Float {
			ln(out, in)
			in.SetFloat64(10).SetPrec(out.Prec())
			bigfloat.Log(in, in)
			return out.Quo(out, in)
		}, math.Log10),
		"sqrt": BigMonadic((*big.Float).Sqrt, math.Sqrt),

		// constants
		"pi": Niladic(bigfloat.Pi),
		"e": Niladic(func(out *big.Float) *big.Float {
			var one big.Float
			one.SetFloat64(1)
			return bigfloat.Exp(out, &one)
		}),
	}
}

// ln is the natural logarithm with its domain checked, since bigfloat.Log
// does not define log(0) or negative arguments.
func ln(out, in *big.Float) *big.Float {
	switch in.Sign() {
	case -1:
		panic(big.ErrNaN{})
	case 0:
		return out.SetInf(true)
	}
	return bigfloat.Log(out, in)
}

type monadic struct {
	f func(float64) float64
}

func (m monadic) Call(r *Reducer, args []float64) (float64, error) {
	return m.f(args[0]), nil
}

func (m monadic) CanCall(n int) bool {
	return n == 1
}

// Monadic wraps a float64 function of one variable into a Func.
func Monadic(f func(float64) float64) Func {
	return monadic{f}
}

type bigmonadic struct {
	f        func(out, in *big.Float) *big.Float
	fallback func(float64) float64
}

func (m bigmonadic) Call(r *Reducer, args []float64) (v float64, err error) {
	x := args[0]
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return m.fallback(x), nil
	}
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		if _, ok := p.(big.ErrNaN); !ok {
			panic(p)
		}
		v, err = 0, &DomainError{X: x, Arg: 1}
	}()
	in := new(big.Float).SetPrec(r.Prec()).SetFloat64(x)
	out := new(big.Float).SetPrec(r.Prec())
	m.f(out, in)
	v, _ = out.Float64()
	return v, nil
}

func (m bigmonadic) CanCall(n int) bool {
	return n == 1
}

// BigMonadic wraps a function of one variable computed on big floats into a
// Func. f must set out to its result, to the precision of in; its return
// value is always ignored. If f is called on an argument outside its domain,
// it should panic with an error of type big.ErrNaN. Infinite and NaN
// arguments are passed to fallback instead.
func BigMonadic(f func(out, in *big.Float) *big.Float, fallback func(float64) float64) Func {
	return bigmonadic{f, fallback}
}

type niladic struct {
	f func(out *big.Float) *big.Float
}

func (n niladic) Call(r *Reducer, args []float64) (float64, error) {
	out := new(big.Float).SetPrec(r.Prec())
	n.f(out)
	v, _ := out.Float64()
	return v, nil
}

func (n niladic) CanCall(k int) bool {
	return k == 0
}

// Niladic wraps a function of zero variables, generally a function which
// computes a constant, into a Func. f must set out to its result; its return
// value is always ignored. Unlike BigMonadic, the wrapped function is
// expected never to panic.
func Niladic(f func(out *big.Float) *big.Float) Func {
	return niladic{f}
}

// DomainError is an error returned when a function is called on arguments
// outside its domain.
type DomainError struct {
	// X is the out-of-domain argument.
	X float64
	// Arg is the 1-based index of the argument.
	Arg int
	// Func is a name identifying the function.
	Func string
}

func (err *DomainError) Error() string {
	r := strconv.FormatFloat(err.X, 'g', -1, 64) + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}

func (err *DomainError) Op() string {
	return err.Func
}
