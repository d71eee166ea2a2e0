package calc

import (
	"fmt"
	"math"
	"strconv"

	"fortio.org/log"
)

// ImageDrawer is a drawing surface for GUI operators.
type ImageDrawer interface {
	// Clear erases everything drawn on the surface.
	Clear() error
	// DrawScatterPlot draws a series of points. xs and ys have equal lengths.
	DrawScatterPlot(title, xLabel, yLabel string, xs, ys []float64) error
}

// Clear handles clear(), erasing the drawing surface. Without a surface, it
// does nothing. It produces the operation unchanged.
var Clear GUIHandler = GUIFunc(func(n *Node, env *Env, d ImageDrawer) (*Node, error) {
	if err := AssertOp(n, "clear", 0); err != nil {
		return nil, err
	}
	if d == nil {
		return n, nil
	}
	if err := d.Clear(); err != nil {
		return nil, fmt.Errorf("clear: %w", err)
	}
	return n, nil
})

// Plotter handles plot(f, x, lo, hi, step), sampling f with the variable x
// bound to each of lo, lo+step, lo+2*step, ... up to hi and drawing the
// points as a scatter plot. x must be an unbound variable; lo, hi, and step
// are reduced to numbers and must satisfy lo <= hi and step > 0. The binding
// of x is removed however plot finishes. It produces 1.
type Plotter struct {
	r *Reducer
}

// NewPlotter creates a plot handler that samples with r.
func NewPlotter(r *Reducer) *Plotter {
	return &Plotter{r: r}
}

// Apply handles plot.
func (p *Plotter) Apply(n *Node, env *Env, d ImageDrawer) (*Node, error) {
	if err := AssertOp(n, "plot", 5); err != nil {
		return nil, err
	}
	f, x := n.Child(0), n.Child(1)
	if !x.IsVariable() {
		return nil, &PlotError{Reason: "expected a variable, found " + strconv.Quote(x.String())}
	}
	name := x.Name()
	if env.Has(name) {
		return nil, &PlotError{Reason: "variable " + strconv.Quote(name) + " is already defined"}
	}
	var bounds [3]float64
	for i := range bounds {
		v, err := p.r.Reduce(n.Child(i+2), env)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &PlotError{Reason: "bound " + n.Child(i+2).String() + " is not finite"}
		}
		bounds[i] = v
	}
	lo, hi, step := bounds[0], bounds[1], bounds[2]
	switch {
	case lo > hi:
		return nil, &PlotError{Reason: "empty range " + fmtnum(lo) + " to " + fmtnum(hi)}
	case step <= 0:
		return nil, &PlotError{Reason: "step " + fmtnum(step) + " is not positive"}
	case lo+step == lo || hi+step == hi:
		return nil, &PlotError{Reason: "step " + fmtnum(step) + " is too small for the range"}
	}

	xs, ys, err := p.sample(f, name, env, lo, hi, step)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, &PlotError{Reason: "no drawing surface"}
	}
	if err := d.DrawScatterPlot("Plot", name, "output", xs, ys); err != nil {
		return nil, fmt.Errorf("plot: %w", err)
	}
	return Num(1), nil
}

func (p *Plotter) sample(f *Node, name string, env *Env, lo, hi, step float64) (xs, ys []float64, err error) {
	defer env.Delete(name)
	// Accumulated steps may overshoot hi by rounding error.
	end := hi + step*1e-6
	for x := lo; x <= end; x += step {
		env.Set(name, Num(x))
		y, err := p.r.Reduce(f, env)
		if err != nil {
			return nil, nil, err
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	log.LogVf("plot sampled %d points of %s over %s", len(xs), f, name)
	return xs, ys, nil
}
