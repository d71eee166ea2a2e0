package calc

import (
	"math"
	"reflect"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseTrees(t *testing.T) {
	var (
		x = Var("x")
		y = Var("y")
		z = Var("z")
	)
	cases := []struct {
		name string
		src  string
		want *Node
	}{
		{"num", "1", Num(1)},
		{"exp", "1e3", Num(1000)},
		{"inf", "inf", Num(math.Inf(1))},
		{"infsym", "∞", Num(math.Inf(1))},
		{"var", "x", x},
		{"paren", "(x)", x},
		{"brackets", "[{x}]", x},
		{"add-mul", "x+y*z", Op("+", x, Op("*", y, z))},
		{"mul-add", "x*y+z", Op("+", Op("*", x, y), z)},
		{"sub-left", "x-y-z", Op("-", Op("-", x, y), z)},
		{"div-left", "x/y/z", Op("/", Op("/", x, y), z)},
		{"pow-right", "x^y^z", Op("^", x, Op("^", y, z))},
		{"neg", "-x", Op("negate", x)},
		{"plus", "+x", x},
		{"neg-pow", "-2^2", Op("negate", Op("^", Num(2), Num(2)))},
		{"pow-neg", "2^-3", Op("^", Num(2), Op("negate", Num(3)))},
		{"neg-neg", "--x", Op("negate", Op("negate", x))},
		{"sub-neg", "x - -y", Op("-", x, Op("negate", y))},
		{"unicode", "2×3÷4", Op("/", Op("*", Num(2), Num(3)), Num(4))},
		{"implicit", "2 x", Op("*", Num(2), x)},
		{"implicit3", "2 x y", Op("*", Num(2), Op("*", x, y))},
		{"implicit-paren", "2(x)", Op("*", Num(2), x)},
		{"implicit-brackets", "{2}[x](y)", Op("*", Op("*", Num(2), x), y)},
		{"implicit-pow", "x y^2", Op("*", x, Op("^", y, Num(2)))},
		{"implicit-div", "x / y z", Op("/", x, Op("*", y, z))},
		{"neg-implicit", "-x y", Op("*", Op("negate", x), y)},
		{"call", "f(x)", Op("f", x)},
		{"call-space", "f (x)", Op("*", Var("f"), x)},
		{"call0", "f()", Op("f")},
		{"call2", "f(x, y)", Op("f", x, y)},
		{"call-semi", "f(x; y)", Op("f", x, y)},
		{"call-brackets", "f[x]", Op("f", x)},
		{"call-pow", "sin(x)^2", Op("^", Op("sin", x), Num(2))},
		{"call-nested", "toDouble(sin(x + 1))", Op("toDouble", Op("sin", Op("+", x, Num(1))))},
		{"plot", "plot(x^2, x, 0, 1, 0.5)", Op("plot", Op("^", x, Num(2)), x, Num(0), Num(1), Num(0.5))},
		{"assign", "x := 3 + 4", Op("assign", x, Op("+", Num(3), Num(4)))},
		{"assign-right", "x := y := 1", Op("assign", x, Op("assign", y, Num(1)))},
		{"assign-expr", "x + y := 1", Op("assign", Op("+", x, y), Num(1))},
		{"assign-call", "block(x := 1, x)", Op("block", Op("assign", x, Num(1)), x)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ParseString(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Errorf("wrong tree for %q: want %v, got %v", c.src, c.want, got)
			}
		})
	}
}

func TestParsePrinted(t *testing.T) {
	// Printing a parsed tree and parsing the result gives the same tree.
	cases := []string{
		"x + y * z",
		"(x + y) * z",
		"x ^ y ^ z",
		"-(x + 1)",
		"(-x) ^ 2",
		"-x ^ 2",
		"f(x, g(y), h())",
		"x / y * z",
		"x := y + 1",
		"plot(x ^ 2, x, 0, 1, 0.5)",
	}
	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			a, err := ParseString(src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", src, err)
			}
			s := a.String()
			b, err := ParseString(s)
			if err != nil {
				t.Fatalf("%q printed as %q, which failed to parse: %v", src, s, err)
			}
			if !a.Equal(b) {
				t.Errorf("%q printed as %q, which parsed differently: %v", src, s, b)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  InputError
		res  []string
	}{
		{"empty", "", new(EmptyExpressionError), []string{`(?i)\bempty\b`}},
		{"spaces", "   ", new(EmptyExpressionError), nil},
		{"emptyparen", "()", new(EmptyExpressionError), []string{`(?i)\bmissing\b`, `\)`}},
		{"emptyoperand", "x*", new(EmptyExpressionError), []string{`(?i)\bmissing\b`, `(?i)\bend\b`}},
		{"emptyunary", "x*-", new(EmptyExpressionError), []string{`(?i)\bend\b`}},
		{"left", "(x", new(BracketError), []string{`(?i)\bunclosed\b`, `\(`}},
		{"right", "x)", new(BracketError), []string{`(?i)\bunopened\b`, `\)`}},
		{"mismatch", "(x]", new(BracketError), []string{`\(`, `]`}},
		{"mismatch-mul", "x*(y]", new(BracketError), []string{`\(`, `]`}},
		{"mismatch-terms", "x (y]", new(BracketError), []string{`\(`, `]`}},
		{"nonunary", "*x", new(OperatorError), []string{`(?i)\bunary\b`, `\*`}},
		{"unary-assign", "x * := 2", new(OperatorError), []string{`(?i)\bunary\b`, `:=`}},
		{"sep", "x, y", new(SeparatorError), []string{`","`}},
		{"sepbrackets", "(x, y)", new(SeparatorError), []string{`","`}},
		{"call-eof", "f(", new(BracketError), []string{`\(`}},
		{"call-mismatch", "f(x]", new(BracketError), []string{`\(`, `]`}},
		{"call-empty", "f(; x)", new(SeparatorError), []string{`";"`}},
		{"call-trailing", "f(x;)", new(EmptyExpressionError), []string{`\)`}},
		{"call-double", "f(a,,b)", new(SeparatorError), []string{`","`}},
		{"lexer", "2^f(-$)", new(LexError), []string{`\$`}},
		{"colon", "x : 1", new(LexError), []string{`:`}},
		{"op-paren", "(b*)", new(EmptyExpressionError), []string{`\)`}},
		{"haskell", "(+)", new(EmptyExpressionError), []string{`\)`}},
		{"op-close", "1+)", new(EmptyExpressionError), []string{`\)`}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			n, err := ParseString(c.src)
			if n != nil {
				t.Errorf("%q parsed non-nil to %v", c.src, n)
			}
			if reflect.TypeOf(err) != reflect.TypeOf(c.err) {
				t.Errorf("wrong error type from %q: want %T, got %T (%v)", c.src, c.err, err, err)
			}
			if err == nil {
				return
			}
			if _, ok := err.(InputError); !ok {
				t.Errorf("%T does not implement InputError", err)
			}
			msg := err.Error()
			for _, re := range c.res {
				if !regexp.MustCompile(re).MatchString(msg) {
					t.Errorf("error message %q does not match %s", msg, re)
				}
			}
		})
	}
}

func TestParseErrorPos(t *testing.T) {
	cases := []struct {
		src string
		pos int
	}{
		{"*x", 1},
		{"x )", 3},
		{"f(a,,b)", 5},
		{"1 + $", 5},
	}
	for _, c := range cases {
		_, err := ParseString(c.src)
		ie, ok := err.(InputError)
		if !ok {
			t.Errorf("%q gave %v, not an InputError", c.src, err)
			continue
		}
		if ie.Pos() != c.pos {
			t.Errorf("%q: want error at %d, got %d (%v)", c.src, c.pos, ie.Pos(), err)
		}
	}
}

func TestStopOn(t *testing.T) {
	cases := []struct {
		name string
		src  string
		stop string
		want []*Node
	}{
		{"newline", "x\nx", "\n", []*Node{Var("x"), Var("x")}},
		{"comma", "x,y", ",", []*Node{Var("x"), Var("y")}},
		{"semi", "x;y", ";", []*Node{Var("x"), Var("y")}},
		{"num", "1\n2", "\n", []*Node{Num(1), Num(2)}},
		{"multinl", "x\n\ny", "\n", []*Node{Var("x"), Var("y")}},
		{"operator", "x +\ny", "\n", []*Node{Op("+", Var("x"), Var("y"))}},
		{"bracket", "(\nx)", "\n", []*Node{Var("x")}},
		{"call-args", "f(a, b)\nc", "\n,", []*Node{Op("f", Var("a"), Var("b")), Var("c")}},
		{"call-split", "f\n(x)", "\n", []*Node{Var("f"), Var("x")}},
		{"assign", "x := 1\nx", "\n", []*Node{Op("assign", Var("x"), Num(1)), Var("x")}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			src := strings.NewReader(c.src)
			for i, want := range c.want {
				got, err := Parse(src, StopOn([]rune(c.stop)...))
				if err != nil {
					t.Fatalf("%q iter %d didn't parse: %v", c.src, i, err)
				}
				if !want.Equal(got) {
					t.Errorf("%q iter %d: want %v, got %v", c.src, i, want, got)
				}
			}
			n, err := Parse(src, StopOn([]rune(c.stop)...))
			if _, ok := err.(*EmptyExpressionError); !ok {
				t.Errorf("%q after %d iters parsed with error %#v and tree %v", c.src, len(c.want), err, n)
			}
		})
	}
}

func TestStopOnSeparatorOnly(t *testing.T) {
	for _, s := range []string{",", ";"} {
		_, err := Parse(strings.NewReader(s), StopOn([]rune(s)...))
		if _, ok := err.(*EmptyExpressionError); !ok {
			t.Errorf("%q gave %#v, want empty expression", s, err)
		}
	}
}

func TestStopOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("StopOn('x') didn't panic")
		}
	}()
	StopOn('x')
}

func BenchmarkParse(b *testing.B) {
	cases := []struct {
		name string
		src  string
	}{
		{"descasc", "w^x*y+z+a*b^c"},
		{"descasc-parens", "(((w^x)*y)+z)+a*(b^c)"},
		{"ascdesc", "w+x*y^z^a*b+c"},
		{"nums", "1^1.1*1.1e1+1.1e-1+.1*inf^∞"},
		{"call", "plot(sin(x)^2, x, 0, 10, 0.1)"},
		{"assign", "x := y := 2 z"},
	}
	for _, c := range cases {
		b.Run(c.name, func(b *testing.B) {
			b.ReportAllocs()
			var src strings.Reader
			for i := 0; i < b.N; i++ {
				src.Reset(c.src)
				Parse(&src)
			}
		})
	}
}
