package calc_test

import (
	"strings"
	"testing"

	"github.com/zephyrtronium/calc"
)

func FuzzEvaluate(f *testing.F) {
	f.Add("x")
	f.Add("toDouble(x / 2)")
	f.Add("1×2")
	f.Add("block(y := x, toDouble(y ^ 0.5))")
	f.Fuzz(func(t *testing.T, s string) {
		// Plotting could sample for a very long time.
		c, err := calc.New(calc.GUI("plot", nil), calc.WithFuncs(calc.ExtendedFuncs()))
		if err != nil {
			t.Fatal(err)
		}
		c.Env().Set("x", calc.Num(0))
		r, err := c.Evaluate(s)
		if err == nil && !r.Quit && r.Node == nil && strings.TrimSpace(s) != "" {
			t.Errorf("%q gave neither a result nor an error", s)
		}
	})
}
