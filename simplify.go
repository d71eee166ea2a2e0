package calc

// Simplify handles simplify(x), folding constants in x. Addition, subtraction,
// and multiplication of two numbers fold into one number; division and powers
// are left as written. Variables bound in env are replaced by their own
// simplified bindings, and unbound variables remain. The interpreter wraps
// every tree it evaluates in simplify.
var Simplify ExpressionHandler = ExpressionFunc(simplify)

func simplify(n *Node, env *Env) (*Node, error) {
	if err := AssertOp(n, "simplify", 1); err != nil {
		return nil, err
	}
	s := simplification{env: env}
	return s.simplify(n.Child(0))
}

// simplification holds the state of one simplify operation.
type simplification struct {
	env    *Env
	active map[string]bool
}

func (s *simplification) simplify(n *Node) (*Node, error) {
	switch n.kind {
	case nodeNum:
		return n, nil
	case nodeVar:
		b, ok := s.env.Lookup(n.text)
		if !ok {
			return n, nil
		}
		if s.active[n.text] {
			return nil, &CycleError{Name: n.text, In: "simplify"}
		}
		if s.active == nil {
			s.active = make(map[string]bool)
		}
		s.active[n.text] = true
		defer delete(s.active, n.text)
		return s.simplify(b)
	case nodeOp:
		children := make([]*Node, len(n.children))
		for i, c := range n.children {
			r, err := s.simplify(c)
			if err != nil {
				return nil, err
			}
			children[i] = r
		}
		if len(children) == 2 && children[0].kind == nodeNum && children[1].kind == nodeNum {
			switch n.text {
			case "+", "-", "*":
				return Num(arith(0, n.text, children[0].value(), children[1].value())), nil
			}
		}
		return &Node{kind: nodeOp, text: n.text, children: children}, nil
	default:
		panic("calc: invalid AST node " + n.kind.String())
	}
}
