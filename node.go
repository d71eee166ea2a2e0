package calc

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Node is a node in the abstract syntax tree of an expression. A node is a
// number, a variable, or a named operation over an ordered list of children.
// Nodes are immutable; transformations build new trees from the bottom up.
type Node struct {
	kind nodeKind
	// text is the literal text of a number, or the name of a variable or
	// operation.
	text string
	// num is the value of a number.
	num float64

	children []*Node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum
	nodeVar
	nodeOp
)

func (k nodeKind) String() string {
	switch k {
	case nodeNum:
		return "number"
	case nodeVar:
		return "variable"
	case nodeOp:
		return "operation"
	default:
		return "invalid node kind " + strconv.Itoa(int(k))
	}
}

// Num creates a number node.
func Num(v float64) *Node {
	return &Node{kind: nodeNum, text: strconv.FormatFloat(v, 'g', -1, 64), num: v}
}

// numText creates a number node from lexed number text.
func numText(s string) *Node {
	return &Node{kind: nodeNum, text: s, num: parsenum(s)}
}

// Var creates a variable node.
func Var(name string) *Node {
	return &Node{kind: nodeVar, text: name}
}

// Op creates an operation node. The operation may be an operator like "+" or
// a function call like "sin" or "plot". A call with no arguments has no
// children.
func Op(name string, children ...*Node) *Node {
	var c []*Node
	if len(children) != 0 {
		c = make([]*Node, len(children))
		copy(c, children)
	}
	return &Node{kind: nodeOp, text: name, children: c}
}

// IsNumber returns whether n is a number.
func (n *Node) IsNumber() bool {
	return n.kind == nodeNum
}

// IsVariable returns whether n is a variable.
func (n *Node) IsVariable() bool {
	return n.kind == nodeVar
}

// IsOperation returns whether n is an operation.
func (n *Node) IsOperation() bool {
	return n.kind == nodeOp
}

// IsOp returns whether n is an operation with the given name.
func (n *Node) IsOp(name string) bool {
	return n.kind == nodeOp && n.text == name
}

// Name returns the name of a variable or operation. Panics with an
// *AccessError if n is a number.
func (n *Node) Name() string {
	if n.kind == nodeNum {
		panic(&AccessError{Method: "Name", Kind: n.kind.String()})
	}
	return n.text
}

// Value returns the value of a number. Panics with an *AccessError if n is
// not a number.
func (n *Node) Value() float64 {
	if n.kind != nodeNum {
		panic(&AccessError{Method: "Value", Kind: n.kind.String()})
	}
	return n.value()
}

func (n *Node) value() float64 {
	return n.num
}

// parsenum parses number text as produced by the lexer. Literals too large to
// represent become infinities.
func parsenum(s string) float64 {
	t := s
	if t == "∞" {
		t = "inf"
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		panic("calc: invalid number " + strconv.Quote(s) + " (" + err.Error() + ")")
	}
	return v
}

// Children returns a copy of the children of n. The result is empty for
// numbers and variables.
func (n *Node) Children() []*Node {
	if len(n.children) == 0 {
		return nil
	}
	return append([]*Node(nil), n.children...)
}

// Len returns the number of children of n.
func (n *Node) Len() int {
	return len(n.children)
}

// Child returns the i'th child of n.
func (n *Node) Child(i int) *Node {
	return n.children[i]
}

// Equal returns whether two trees have the same shape, names, and values.
func (n *Node) Equal(m *Node) bool {
	if n == nil || m == nil {
		return n == m
	}
	if n.kind != m.kind || len(n.children) != len(m.children) {
		return false
	}
	switch n.kind {
	case nodeNum:
		a, b := n.value(), m.value()
		return a == b || math.IsNaN(a) && math.IsNaN(b)
	case nodeVar:
		return n.text == m.text
	}
	if n.text != m.text {
		return false
	}
	for i, c := range n.children {
		if !c.Equal(m.children[i]) {
			return false
		}
	}
	return true
}

// describe names a node for error messages without panicking.
func (n *Node) describe() string {
	switch n.kind {
	case nodeNum:
		return fmtnum(n.value())
	default:
		return n.text
	}
}

// AssertOp checks that n is an operation with the given name and, if arity is
// not negative, exactly arity children. The error is a *ShapeError.
func AssertOp(n *Node, name string, arity int) error {
	if n.kind == nodeOp && n.text == name && (arity < 0 || len(n.children) == arity) {
		return nil
	}
	return &ShapeError{
		Want:    name,
		WantLen: arity,
		Got:     n.describe(),
		GotKind: n.kind.String(),
		GotLen:  len(n.children),
	}
}

const (
	strongest = 0
	weakest   = math.MaxInt
)

// precedence gives the binding rank of operators printed as symbols. Lower is
// tighter. Operations not listed print as function calls.
var precedence = map[string]int{
	"^":      1,
	"negate": 2,
	"*":      3,
	"/":      3,
	"+":      4,
	"-":      4,
}

// String formats the tree as an infix expression, inserting parentheses
// where an operator binds more loosely than its context.
func (n *Node) String() string {
	var b strings.Builder
	n.fmt(&b, weakest)
	return b.String()
}

func (n *Node) fmt(b *strings.Builder, parent int) {
	switch n.kind {
	case nodeNum:
		b.WriteString(fmtnum(n.value()))
	case nodeVar:
		b.WriteString(n.text)
	case nodeOp:
		cur, ok := precedence[n.text]
		child := cur
		if !ok {
			cur, child = strongest, weakest
		}
		if cur > parent {
			b.WriteByte('(')
			defer b.WriteByte(')')
		}
		switch {
		case n.text == "negate" && len(n.children) == 1:
			b.WriteByte('-')
			n.children[0].fmt(b, child)
		case ok && n.text != "negate":
			n.join(b, " "+n.text+" ", child)
		default:
			b.WriteString(n.text)
			b.WriteByte('(')
			n.join(b, ", ", child)
			b.WriteByte(')')
		}
	default:
		panic("calc: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

func (n *Node) join(b *strings.Builder, sep string, prec int) {
	for i, c := range n.children {
		if i > 0 {
			b.WriteString(sep)
		}
		c.fmt(b, prec)
	}
}

// fmtnum formats integers without a decimal point and everything else in the
// shortest representation that round trips.
func fmtnum(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1<<63 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
