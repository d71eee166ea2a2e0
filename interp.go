package calc

import (
	"fortio.org/log"
)

// Result is the outcome of evaluating a tree. Either Node is the evaluated
// tree, or Quit is true and the session should end.
type Result struct {
	Node *Node
	Quit bool
}

// String formats the evaluated tree. It is empty if there is none.
func (r Result) String() string {
	if r.Node == nil {
		return ""
	}
	return r.Node.String()
}

// Interpreter evaluates trees. It owns a variable environment, the operator
// registries, and an optional drawing surface. An Interpreter is not safe for
// concurrent use.
type Interpreter struct {
	env    *Env
	expr   map[string]ExpressionHandler
	ctrl   map[string]ControlHandler
	gui    map[string]GUIHandler
	drawer ImageDrawer
}

// NewInterpreter creates an interpreter with the operators registered by
// opts and an empty environment. It returns a *RegistryError if any name is
// registered in more than one handler family. To get the standard operators,
// include DefaultOperators in opts.
func NewInterpreter(opts ...Option) (*Interpreter, error) {
	c := collect(opts)
	if err := c.conflicts(); err != nil {
		return nil, err
	}
	in := Interpreter{
		env:    NewEnv(),
		expr:   c.expr,
		ctrl:   c.ctrl,
		gui:    c.gui,
		drawer: c.drawer,
	}
	return &in, nil
}

// Env returns the interpreter's variable environment.
func (in *Interpreter) Env() *Env {
	return in.env
}

// SetDrawer sets the drawing surface. d may be nil to remove it.
func (in *Interpreter) SetDrawer(d ImageDrawer) {
	in.drawer = d
}

// Drawer returns the drawing surface, or nil if there is none.
func (in *Interpreter) Drawer() ImageDrawer {
	return in.drawer
}

// Evaluate evaluates a tree. Unless the root is already a simplify operation,
// the tree is evaluated as though it were wrapped in one. Control operators
// receive their operations unevaluated; every other operation has its
// children evaluated first and is then passed to its expression or GUI
// handler. Operations with no handler remain as they are.
//
// A handler that misuses a node, e.g. asking a number for its name, causes an
// *AccessError to be returned rather than a panic.
func (in *Interpreter) Evaluate(root *Node) (r Result, err error) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		ae, ok := p.(*AccessError)
		if !ok {
			panic(p)
		}
		r, err = Result{}, ae
	}()
	if !root.IsOp("simplify") {
		root = Op("simplify", root)
	}
	return in.walk(root)
}

func (in *Interpreter) walk(n *Node) (Result, error) {
	switch n.kind {
	case nodeNum, nodeVar:
		return Result{Node: n}, nil
	case nodeOp:
		// handled below
	default:
		panic("calc: invalid AST node " + n.kind.String())
	}
	if h := in.ctrl[n.text]; h != nil {
		if log.LogVerbose() {
			log.LogVf("control %s", n)
		}
		return h.Apply(n, in.env, in)
	}
	children := make([]*Node, len(n.children))
	for i, c := range n.children {
		r, err := in.walk(c)
		if err != nil || r.Quit {
			return r, err
		}
		children[i] = r.Node
	}
	n = &Node{kind: nodeOp, text: n.text, children: children}
	if h := in.expr[n.text]; h != nil {
		if log.LogVerbose() {
			log.LogVf("expression %s", n)
		}
		r, err := h.Apply(n, in.env)
		return Result{Node: r}, err
	}
	if h := in.gui[n.text]; h != nil {
		if log.LogVerbose() {
			log.LogVf("gui %s", n)
		}
		r, err := h.Apply(n, in.env, in.drawer)
		return Result{Node: r}, err
	}
	return Result{Node: n}, nil
}
