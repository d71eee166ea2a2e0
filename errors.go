package calc

import (
	"strconv"
)

// EvaluationError is an error in evaluating a well-formed tree, e.g. an
// undefined variable, an unknown operation, or an operator applied to the
// wrong number of arguments. Every error resulting from evaluating a tree
// which the calculator cannot interpret implements EvaluationError.
type EvaluationError interface {
	error
	// Op returns the name of the operation being evaluated when the error
	// occurred.
	Op() string
}

// NameError is an error from a lookup for a variable that has no binding.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

func (err *NameError) Op() string {
	return "toDouble"
}

// CycleError is an error indicating a variable whose binding refers back to
// itself, so that resolving it would never finish.
type CycleError struct {
	// Name is the variable that was reached again while being resolved.
	Name string
	// In is the operation that was resolving it.
	In string
}

func (err *CycleError) Error() string {
	return "variable " + strconv.Quote(err.Name) + " is defined in terms of itself"
}

func (err *CycleError) Op() string {
	return err.In
}

// OperationError is an error indicating an operation that numeric reduction
// does not know how to compute.
type OperationError struct {
	// Name is the name of the operation.
	Name string
	// Len is the number of arguments the operation was given.
	Len int
}

func (err *OperationError) Error() string {
	return "unknown operation " + strconv.Quote(err.Name) + " with " + strconv.Itoa(err.Len) + " arguments"
}

func (err *OperationError) Op() string {
	return err.Name
}

// ShapeError is an error indicating a node that does not match the operation
// or number of children a handler expects.
type ShapeError struct {
	// Want is the expected operation name.
	Want string
	// WantLen is the expected number of children, or -1 if any is allowed.
	WantLen int
	// Got is the name or value of the node that was found.
	Got string
	// GotKind is the kind of the node that was found.
	GotKind string
	// GotLen is the number of children of the node that was found.
	GotLen int
}

func (err *ShapeError) Error() string {
	if err.WantLen < 0 {
		return "node (" + err.GotKind + " " + strconv.Quote(err.Got) + ") does not match expected (" + strconv.Quote(err.Want) + ")"
	}
	return "node (" + err.GotKind + " " + strconv.Quote(err.Got) + " w/ " + strconv.Itoa(err.GotLen) +
		" children) does not match expected (" + strconv.Quote(err.Want) + " w/ " + strconv.Itoa(err.WantLen) + " children)"
}

func (err *ShapeError) Op() string {
	return err.Want
}

// AssignError is an error indicating an assignment to something other than a
// variable.
type AssignError struct {
	// Target is the left-hand side of the assignment as written.
	Target string
}

func (err *AssignError) Error() string {
	return "left side of assignment must be a variable, found " + strconv.Quote(err.Target) + " instead"
}

func (err *AssignError) Op() string {
	return "assign"
}

// PlotError is an error indicating invalid arguments to plot or the absence
// of a drawing surface.
type PlotError struct {
	// Reason describes the problem.
	Reason string
}

func (err *PlotError) Error() string {
	return "plot: " + err.Reason
}

func (err *PlotError) Op() string {
	return "plot"
}

// AccessError indicates a query for a property a node does not have, e.g. the
// name of a number. It signals a bug in an operator handler rather than bad
// input. Node methods panic with an *AccessError; Interpreter.Evaluate
// recovers it and returns it as an error.
type AccessError struct {
	// Method is the node method that was called.
	Method string
	// Kind is the kind of node it was called on.
	Kind string
}

func (err *AccessError) Error() string {
	return "invalid node access: " + err.Method + " called on " + err.Kind + " node"
}

// RegistryError indicates an operator name registered in more than one
// handler family.
type RegistryError struct {
	// Name is the operator name.
	Name string
	// Families are the handler families the name appeared in.
	Families []string
}

func (err *RegistryError) Error() string {
	s := "operator " + strconv.Quote(err.Name) + " registered as"
	for i, f := range err.Families {
		if i > 0 {
			s += " and"
		}
		s += " " + f
	}
	return s
}

var (
	_ EvaluationError = (*NameError)(nil)
	_ EvaluationError = (*CycleError)(nil)
	_ EvaluationError = (*OperationError)(nil)
	_ EvaluationError = (*ShapeError)(nil)
	_ EvaluationError = (*AssignError)(nil)
	_ EvaluationError = (*PlotError)(nil)
	_ EvaluationError = (*DomainError)(nil)
)
