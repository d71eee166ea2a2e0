package calc_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/zephyrtronium/calc"
)

func TestExtendedFuncs(t *testing.T) {
	cases := []struct {
		src  string
		want float64
	}{
		{"tan(0)", 0},
		{"exp(0)", 1},
		{"exp(1)", math.E},
		{"ln(1)", 0},
		{"ln(e())", 1},
		{"ln(0)", math.Inf(-1)},
		{"log(1000)", 3},
		{"log(0.01)", -2},
		{"sqrt(16)", 4},
		{"sqrt(2)", math.Sqrt2},
		{"sqrt(inf)", math.Inf(1)},
		{"pi()", math.Pi},
		{"e()", math.E},
		{"2 ^ 0.5", math.Sqrt2},
		{"exp(ln(2) / 2)", math.Sqrt2},
	}
	c, err := calc.New(calc.WithFuncs(calc.ExtendedFuncs()))
	if err != nil {
		t.Fatal(err)
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			n, err := calc.ParseString(tc.src)
			if err != nil {
				t.Fatal(err)
			}
			v, err := c.Reducer().Reduce(n, c.Env())
			if err != nil {
				t.Fatalf("%q failed: %v", tc.src, err)
			}
			if v != tc.want && math.Abs(v-tc.want) > 1e-15*math.Abs(tc.want) {
				t.Errorf("%q: want %v, got %v", tc.src, tc.want, v)
			}
		})
	}
}

func TestFuncsDisabled(t *testing.T) {
	c, err := calc.New()
	if err != nil {
		t.Fatal(err)
	}
	// Extended functions need to be asked for.
	if _, err := c.Evaluate("toDouble(sqrt(4))"); err == nil {
		t.Error("sqrt is available by default")
	}
	c, err = calc.New(calc.WithFuncs(map[string]calc.Func{"sin": nil}))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Evaluate("toDouble(sin(0))"); err == nil {
		t.Error("sin is available after removal")
	}
	if r, err := c.Evaluate("toDouble(cos(0))"); err != nil || r.String() != "1" {
		t.Errorf("cos(0) gave %v, %v", r, err)
	}
}

func TestPrec(t *testing.T) {
	c, err := calc.New()
	if err != nil {
		t.Fatal(err)
	}
	if p := c.Reducer().Prec(); p != 64 {
		t.Errorf("default precision is %d", p)
	}
	c, err = calc.New(calc.WithPrec(256), calc.WithFuncs(calc.ExtendedFuncs()))
	if err != nil {
		t.Fatal(err)
	}
	if p := c.Reducer().Prec(); p != 256 {
		t.Errorf("precision is %d, want 256", p)
	}
	r, err := c.Evaluate("toDouble(pi())")
	if err != nil {
		t.Fatal(err)
	}
	if !r.Node.Equal(calc.Num(math.Pi)) {
		t.Errorf("pi at 256 bits is %v", r)
	}
}

// nargin counts its arguments.
type nargin struct{}

func (nargin) CanCall(n int) bool {
	return true
}

func (nargin) Call(r *calc.Reducer, args []float64) (float64, error) {
	return float64(len(args)), nil
}

// hyp is the hypotenuse of a right triangle with two given legs.
type hyp struct{}

func (hyp) CanCall(n int) bool {
	return n == 2
}

func (hyp) Call(r *calc.Reducer, args []float64) (float64, error) {
	if args[0] < 0 {
		return 0, &calc.DomainError{X: args[0], Arg: 1}
	}
	if args[1] < 0 {
		return 0, &calc.DomainError{X: args[1], Arg: 2}
	}
	return math.Hypot(args[0], args[1]), nil
}

func ExampleFunc() {
	c, _ := calc.New(calc.WithFuncs(map[string]calc.Func{"nargin": nargin{}, "hyp": hyp{}}))
	for _, src := range []string{
		"toDouble(nargin())",
		"toDouble(nargin(3, 2, 1))",
		"nargin(1 + 1)",
		"toDouble(hyp(3, 4))",
		"toDouble(hyp(3, -4))",
		"toDouble(hyp(3))",
	} {
		r, err := c.Evaluate(src)
		if err != nil {
			fmt.Println("error:", err)
			continue
		}
		fmt.Println(r)
	}

	// Output:
	// 0
	// 3
	// nargin(2)
	// 5
	// error: -4 outside domain of hyp (argument 2)
	// error: unknown operation "hyp" with 1 arguments
}
