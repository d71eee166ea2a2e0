package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"fortio.org/log"
	"github.com/fatih/color"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/history"
)

var (
	errColor    = color.New(color.FgRed).SprintFunc()
	resultColor = color.New(color.FgCyan).SprintFunc()
	echoColor   = color.New(color.Faint).SprintFunc()
)

// session evaluates expressions, printing results and recording them.
type session struct {
	calc  *calc.Calculator
	store history.Store
	out   io.Writer
	echo  bool
}

// run evaluates one parsed expression. It returns true if the expression
// asked to end the session.
func (s *session) run(input string, n *calc.Node) bool {
	if s.echo {
		fmt.Fprint(s.out, echoColor(n.String()+" : "))
	}
	r, err := s.calc.Interpreter().Evaluate(n)
	return s.report(input, r, err)
}

// text evaluates one line of input through the calculator.
func (s *session) text(input string) bool {
	input = strings.TrimSpace(input)
	if input == "" {
		return false
	}
	if s.echo {
		fmt.Fprint(s.out, echoColor(input+" : "))
	}
	r, err := s.calc.Evaluate(input)
	return s.report(input, r, err)
}

// report records and prints the outcome of one evaluation. It returns true if
// the session should end.
func (s *session) report(input string, r calc.Result, err error) bool {
	s.record(input, r, err)
	if err != nil {
		fmt.Fprintln(s.out, errColor(err.Error()))
		return false
	}
	if r.Quit {
		return true
	}
	fmt.Fprintln(s.out, resultColor(r.String()))
	return false
}

func (s *session) record(input string, r calc.Result, err error) {
	e := history.Entry{Input: strings.TrimSpace(input), Output: r.String(), At: time.Now()}
	if err != nil {
		e.Err = err.Error()
	}
	if r.Quit {
		e.Output = "quit"
	}
	if _, err := s.store.Append(e); err != nil {
		log.Warnf("recording history: %v", err)
	}
}
