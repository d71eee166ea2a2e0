package calc_test

import (
	"strings"
	"testing"

	"github.com/zephyrtronium/calc"
)

func FuzzParse(f *testing.F) {
	f.Add("x")
	f.Add("y")
	f.Add("1×2")
	f.Add("f(a, b; c)")
	f.Add("x := -2^y z")
	f.Fuzz(func(t *testing.T, s string) {
		n, err := calc.Parse(strings.NewReader(s))
		if err != nil {
			if _, ok := err.(calc.InputError); !ok {
				t.Errorf("%q gave %T (%v), not an InputError", s, err, err)
			}
			return
		}
		// Printed trees always parse again.
		if _, err := calc.ParseString(n.String()); err != nil {
			t.Errorf("%q printed as %q, which failed to parse: %v", s, n, err)
		}
	})
}
