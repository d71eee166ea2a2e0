package calc

import "sort"

// Env is the variable environment of an interpreter: a flat mapping from
// names to the trees bound to them. An Env is not safe for concurrent use.
type Env struct {
	vars map[string]*Node
}

// NewEnv creates an empty environment.
func NewEnv() *Env {
	return &Env{vars: make(map[string]*Node)}
}

// Lookup returns the tree bound to name, if any.
func (e *Env) Lookup(name string) (*Node, bool) {
	n, ok := e.vars[name]
	return n, ok
}

// Has returns whether name is bound.
func (e *Env) Has(name string) bool {
	_, ok := e.vars[name]
	return ok
}

// Set binds name to n, replacing any previous binding.
func (e *Env) Set(name string, n *Node) {
	e.vars[name] = n
}

// Delete removes the binding of name, if there is one.
func (e *Env) Delete(name string) {
	delete(e.vars, name)
}

// Len returns the number of bound names.
func (e *Env) Len() int {
	return len(e.vars)
}

// Names returns the bound names in sorted order.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.vars))
	for k := range e.vars {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// reaches returns whether n refers to name, directly or through the bindings
// of the variables it contains.
func (e *Env) reaches(n *Node, name string) bool {
	seen := make(map[string]bool)
	var walk func(*Node) bool
	walk = func(n *Node) bool {
		switch n.kind {
		case nodeVar:
			if n.text == name {
				return true
			}
			if seen[n.text] {
				return false
			}
			seen[n.text] = true
			b, ok := e.vars[n.text]
			return ok && walk(b)
		case nodeOp:
			for _, c := range n.children {
				if walk(c) {
					return true
				}
			}
		}
		return false
	}
	return walk(n)
}
