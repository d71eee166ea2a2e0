package calc

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// Reducer reduces trees to numbers. It is the handler for toDouble, and plot
// uses it to sample expressions. A Reducer holds no evaluation state, so one
// may be shared by several interpreters.
type Reducer struct {
	funcs map[string]Func
	prec  uint
}

// NewReducer creates a reducer. prec is the precision in bits of functions
// computed on big floats; if it is 0, the default is 64. funcs adds to or
// replaces the default functions sin and cos; a nil entry removes a function.
func NewReducer(prec uint, funcs map[string]Func) *Reducer {
	if prec == 0 {
		prec = 64
	}
	r := Reducer{funcs: make(map[string]Func, len(defaultfuncs)+len(funcs)), prec: prec}
	for k, v := range defaultfuncs {
		r.funcs[k] = v
	}
	for k, v := range funcs {
		if v == nil {
			delete(r.funcs, k)
			continue
		}
		r.funcs[k] = v
	}
	return &r
}

// Prec returns the precision in bits of functions computed on big floats.
func (r *Reducer) Prec() uint {
	return r.prec
}

// Apply handles toDouble(x), replacing it with the number x reduces to.
func (r *Reducer) Apply(n *Node, env *Env) (*Node, error) {
	if err := AssertOp(n, "toDouble", 1); err != nil {
		return nil, err
	}
	v, err := r.Reduce(n.Child(0), env)
	if err != nil {
		return nil, err
	}
	return Num(v), nil
}

// Reduce computes the value of a tree. Variables resolve through env, and
// the trees they are bound to are reduced in turn.
func (r *Reducer) Reduce(n *Node, env *Env) (float64, error) {
	rd := reduction{Reducer: r, env: env}
	return rd.reduce(n)
}

// reduction holds the state of one call to Reduce.
type reduction struct {
	*Reducer
	env *Env
	// active is the set of variables being resolved.
	active map[string]bool
}

func (rd *reduction) reduce(n *Node) (float64, error) {
	switch n.kind {
	case nodeNum:
		return n.value(), nil
	case nodeVar:
		return rd.resolve(n.text)
	case nodeOp:
		return rd.op(n)
	default:
		panic("calc: invalid AST node " + n.kind.String())
	}
}

func (rd *reduction) resolve(name string) (float64, error) {
	b, ok := rd.env.Lookup(name)
	if !ok {
		return 0, &NameError{Name: name}
	}
	if rd.active[name] {
		return 0, &CycleError{Name: name, In: "toDouble"}
	}
	if rd.active == nil {
		rd.active = make(map[string]bool)
	}
	rd.active[name] = true
	defer delete(rd.active, name)
	return rd.reduce(b)
}

func (rd *reduction) op(n *Node) (float64, error) {
	args := make([]float64, len(n.children))
	for i, c := range n.children {
		v, err := rd.reduce(c)
		if err != nil {
			return 0, err
		}
		args[i] = v
	}
	switch n.text {
	case "+", "-", "*", "/", "^":
		if len(args) != 2 {
			break
		}
		return arith(rd.prec, n.text, args[0], args[1]), nil
	case "negate":
		if len(args) != 1 {
			break
		}
		return -args[0], nil
	default:
		f := rd.funcs[n.text]
		if f == nil || !f.CanCall(len(args)) {
			break
		}
		v, err := f.Call(rd.Reducer, args)
		if de, ok := err.(*DomainError); ok && de.Func == "" {
			e := *de
			e.Func = n.text
			err = &e
		}
		return v, err
	}
	return 0, &OperationError{Name: n.text, Len: len(n.children)}
}

// arith computes a binary operator.
func arith(prec uint, op string, x, y float64) float64 {
	switch op {
	case "+":
		return x + y
	case "-":
		return x - y
	case "*":
		return x * y
	case "/":
		return x / y
	case "^":
		return pow(prec, x, y)
	default:
		panic("calc: invalid binary operator " + op)
	}
}

// pow computes x^y. Integral exponents and non-positive bases use math.Pow;
// otherwise the result is exp(y ln x) at the given precision.
func pow(prec uint, x, y float64) float64 {
	switch {
	case y == math.Trunc(y), x <= 0, math.IsInf(x, 0), math.IsNaN(x), math.IsInf(y, 0), math.IsNaN(y):
		return math.Pow(x, y)
	}
	bx := new(big.Float).SetPrec(prec).SetFloat64(x)
	by := new(big.Float).SetPrec(prec).SetFloat64(y)
	bigfloat.Pow(bx, bx, by)
	v, _ := bx.Float64()
	return v
}
