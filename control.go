package calc

// Quit handles quit() and exit(), ending the session wherever they appear.
// Their arguments are never evaluated.
var Quit ControlHandler = ControlFunc(func(n *Node, env *Env, in *Interpreter) (Result, error) {
	return Result{Quit: true}, nil
})

// Block handles block(a, b, ...), evaluating each argument in order as a
// separate tree and producing the value of the last one. An empty block
// produces 1.
var Block ControlHandler = ControlFunc(block)

func block(n *Node, env *Env, in *Interpreter) (Result, error) {
	if err := AssertOp(n, "block", -1); err != nil {
		return Result{}, err
	}
	r := Result{Node: Num(1)}
	for _, c := range n.children {
		var err error
		r, err = in.Evaluate(c)
		if err != nil || r.Quit {
			return r, err
		}
	}
	return r, nil
}

// Assign handles assign(x, v), evaluating v and binding the variable x to
// the result. It produces the evaluated v. If the evaluated v still refers to
// x, the assignment fails with a *CycleError and x keeps its old binding.
var Assign ControlHandler = ControlFunc(assign)

func assign(n *Node, env *Env, in *Interpreter) (Result, error) {
	if err := AssertOp(n, "assign", 2); err != nil {
		return Result{}, err
	}
	r, err := in.Evaluate(n.Child(1))
	if err != nil || r.Quit {
		return r, err
	}
	x := n.Child(0)
	if !x.IsVariable() {
		return Result{}, &AssignError{Target: x.String()}
	}
	if env.reaches(r.Node, x.Name()) {
		return Result{}, &CycleError{Name: x.Name(), In: "assign"}
	}
	env.Set(x.Name(), r.Node)
	return r, nil
}
