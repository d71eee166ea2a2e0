package calc

import (
	"strings"
)

// Calculator evaluates expressions written as text. It combines the parser
// with an interpreter holding the standard operators.
type Calculator struct {
	in    *Interpreter
	r     *Reducer
	parse []ParseOption
}

// New creates a calculator. Options registering operators are applied after
// the standard ones, so they may replace them. WithFuncs and WithPrec
// configure the reducer behind toDouble and plot.
func New(opts ...Option) (*Calculator, error) {
	c := collect(opts)
	r := NewReducer(c.prec, c.funcs)
	in, err := NewInterpreter(append(DefaultOperators(r), opts...)...)
	if err != nil {
		return nil, err
	}
	return &Calculator{in: in, r: r, parse: c.parse}, nil
}

// Evaluate parses and evaluates one expression. Blank text produces a zero
// Result without parsing. Parse errors implement InputError; evaluation
// errors generally implement EvaluationError. If the expression calls quit or
// exit, the result has Quit set and the caller should end the session.
func (c *Calculator) Evaluate(text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, nil
	}
	n, err := Parse(strings.NewReader(text), c.parse...)
	if err != nil {
		return Result{}, err
	}
	return c.in.Evaluate(n)
}

// Interpreter returns the calculator's interpreter.
func (c *Calculator) Interpreter() *Interpreter {
	return c.in
}

// Reducer returns the reducer behind toDouble and plot.
func (c *Calculator) Reducer() *Reducer {
	return c.r
}

// Env returns the calculator's variable environment.
func (c *Calculator) Env() *Env {
	return c.in.Env()
}

// SetDrawer sets the drawing surface used by plot and clear.
func (c *Calculator) SetDrawer(d ImageDrawer) {
	c.in.SetDrawer(d)
}
