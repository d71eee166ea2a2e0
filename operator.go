package calc

import "sort"

// ExpressionHandler handles an operation whose children have already been
// evaluated, transforming it into a new tree. Expression handlers may read
// and write variables.
type ExpressionHandler interface {
	Apply(n *Node, env *Env) (*Node, error)
}

// ExpressionFunc adapts a function to an ExpressionHandler.
type ExpressionFunc func(n *Node, env *Env) (*Node, error)

// Apply calls f.
func (f ExpressionFunc) Apply(n *Node, env *Env) (*Node, error) {
	return f(n, env)
}

// ControlHandler handles an operation before its children are evaluated. The
// handler decides whether, when, and how many times to evaluate each child,
// using the interpreter it is given.
type ControlHandler interface {
	Apply(n *Node, env *Env, in *Interpreter) (Result, error)
}

// ControlFunc adapts a function to a ControlHandler.
type ControlFunc func(n *Node, env *Env, in *Interpreter) (Result, error)

// Apply calls f.
func (f ControlFunc) Apply(n *Node, env *Env, in *Interpreter) (Result, error) {
	return f(n, env, in)
}

// GUIHandler handles an operation whose children have already been
// evaluated, with access to the interpreter's drawing surface. d is nil when
// the interpreter has no surface.
type GUIHandler interface {
	Apply(n *Node, env *Env, d ImageDrawer) (*Node, error)
}

// GUIFunc adapts a function to a GUIHandler.
type GUIFunc func(n *Node, env *Env, d ImageDrawer) (*Node, error)

// Apply calls f.
func (f GUIFunc) Apply(n *Node, env *Env, d ImageDrawer) (*Node, error) {
	return f(n, env, d)
}

// Option configures an interpreter or calculator.
type Option interface {
	option(config) config
}

// config is the collected effect of a list of options.
type config struct {
	expr   map[string]ExpressionHandler
	ctrl   map[string]ControlHandler
	gui    map[string]GUIHandler
	drawer ImageDrawer
	funcs  map[string]Func
	prec   uint
	parse  []ParseOption
}

func collect(opts []Option) config {
	c := config{
		expr: make(map[string]ExpressionHandler),
		ctrl: make(map[string]ControlHandler),
		gui:  make(map[string]GUIHandler),
	}
	for _, opt := range opts {
		c = opt.option(c)
	}
	return c
}

// conflicts finds names registered in more than one handler family.
func (c *config) conflicts() error {
	names := make([]string, 0, len(c.expr)+len(c.ctrl)+len(c.gui))
	for k := range c.expr {
		names = append(names, k)
	}
	for k := range c.ctrl {
		names = append(names, k)
	}
	for k := range c.gui {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, name := range names {
		var fams []string
		if _, ok := c.expr[name]; ok {
			fams = append(fams, "expression")
		}
		if _, ok := c.ctrl[name]; ok {
			fams = append(fams, "control")
		}
		if _, ok := c.gui[name]; ok {
			fams = append(fams, "GUI")
		}
		if len(fams) > 1 {
			return &RegistryError{Name: name, Families: fams}
		}
	}
	return nil
}

type (
	expropt struct {
		name string
		h    ExpressionHandler
	}
	ctrlopt struct {
		name string
		h    ControlHandler
	}
	guiopt struct {
		name string
		h    GUIHandler
	}
	draweropt struct{ d ImageDrawer }
	funcsopt  map[string]Func
	precopt   uint
	parseopt  []ParseOption
)

// Expression registers an expression operator. A later registration of the
// same name replaces an earlier one; a nil handler removes it.
func Expression(name string, h ExpressionHandler) Option {
	return &expropt{name, h}
}

func (o *expropt) option(c config) config {
	if o.h == nil {
		delete(c.expr, o.name)
		return c
	}
	c.expr[o.name] = o.h
	return c
}

// Control registers a control operator. A later registration of the same name
// replaces an earlier one; a nil handler removes it.
func Control(name string, h ControlHandler) Option {
	return &ctrlopt{name, h}
}

func (o *ctrlopt) option(c config) config {
	if o.h == nil {
		delete(c.ctrl, o.name)
		return c
	}
	c.ctrl[o.name] = o.h
	return c
}

// GUI registers a GUI operator. A later registration of the same name
// replaces an earlier one; a nil handler removes it.
func GUI(name string, h GUIHandler) Option {
	return &guiopt{name, h}
}

func (o *guiopt) option(c config) config {
	if o.h == nil {
		delete(c.gui, o.name)
		return c
	}
	c.gui[o.name] = o.h
	return c
}

// WithDrawer sets the initial drawing surface.
func WithDrawer(d ImageDrawer) Option {
	return draweropt{d}
}

func (o draweropt) option(c config) config {
	c.drawer = o.d
	return c
}

// WithFuncs adds functions to the reducer a Calculator creates. A nil entry
// removes a default function. NewInterpreter ignores this option; pass the
// functions to NewReducer instead.
func WithFuncs(funcs map[string]Func) Option {
	return funcsopt(funcs)
}

func (o funcsopt) option(c config) config {
	if c.funcs == nil {
		c.funcs = make(map[string]Func, len(o))
	}
	for k, v := range o {
		c.funcs[k] = v
	}
	return c
}

// WithPrec sets the precision in bits of the reducer a Calculator creates.
// NewInterpreter ignores this option.
func WithPrec(prec uint) Option {
	return precopt(prec)
}

func (o precopt) option(c config) config {
	c.prec = uint(o)
	return c
}

// WithParseOptions sets options a Calculator uses to parse its input.
// NewInterpreter ignores this option.
func WithParseOptions(opts ...ParseOption) Option {
	return parseopt(opts)
}

func (o parseopt) option(c config) config {
	c.parse = append(c.parse, o...)
	return c
}

// DefaultOperators returns the options registering the standard operators:
// toDouble and simplify as expression operators, block, assign, quit, and
// exit as control operators, and plot and clear as GUI operators. toDouble
// and plot use r.
func DefaultOperators(r *Reducer) []Option {
	return []Option{
		Expression("toDouble", r),
		Expression("simplify", Simplify),
		Control("block", Block),
		Control("assign", Assign),
		Control("quit", Quit),
		Control("exit", Quit),
		GUI("plot", NewPlotter(r)),
		GUI("clear", Clear),
	}
}
