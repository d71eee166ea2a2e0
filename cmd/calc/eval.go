package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/scott-cotton/cli"

	"github.com/zephyrtronium/calc"
)

func eval(cfg *EvalConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Eval.Parse(cc, args)
	if err != nil {
		return err
	}
	fc, err := cfg.settings()
	if err != nil {
		return err
	}
	c, err := calculator(fc)
	if err != nil {
		return err
	}
	st := store(fc)
	defer st.Close()
	s := session{calc: c, store: st, out: cc.Out, echo: cfg.Echo}

	var ins []io.RuneScanner
	switch {
	case cfg.In != "" && cfg.In != "-":
		f, err := os.Open(cfg.In)
		if err != nil {
			return fmt.Errorf("could not open %q: %w", cfg.In, err)
		}
		defer f.Close()
		ins = append(ins, bufio.NewReader(f))
	case cfg.In == "-", len(args) == 0:
		ins = append(ins, bufio.NewReader(cc.In))
	}
	for _, arg := range args {
		ins = append(ins, strings.NewReader(arg))
	}

	var opts []calc.ParseOption
	if cfg.NL {
		opts = append(opts, calc.StopOn('\n'))
	}
	for _, in := range ins {
		quit, err := evalStream(&s, in, opts)
		if err != nil {
			return err
		}
		if quit {
			break
		}
	}
	return nil
}

// evalStream evaluates each expression in a stream. Parse errors end the
// stream, since there is no telling where the next expression begins.
func evalStream(s *session, in io.RuneScanner, opts []calc.ParseOption) (bool, error) {
	for {
		if err := skipSpace(in); err != nil {
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			return false, err
		}
		rec := recorder{src: in}
		n, err := calc.Parse(&rec, opts...)
		if err != nil {
			s.record(rec.String(), calc.Result{}, err)
			return false, err
		}
		if s.run(rec.String(), n) {
			return true, nil
		}
	}
}

func skipSpace(in io.RuneScanner) error {
	for {
		r, _, err := in.ReadRune()
		if err != nil {
			return err
		}
		if !unicode.IsSpace(r) {
			return in.UnreadRune()
		}
	}
}

// recorder is a RuneScanner that remembers the text read through it.
type recorder struct {
	src io.RuneScanner
	buf []rune
}

func (r *recorder) ReadRune() (rune, int, error) {
	c, sz, err := r.src.ReadRune()
	if err == nil {
		r.buf = append(r.buf, c)
	}
	return c, sz, err
}

func (r *recorder) UnreadRune() error {
	if err := r.src.UnreadRune(); err != nil {
		return err
	}
	if len(r.buf) > 0 {
		r.buf = r.buf[:len(r.buf)-1]
	}
	return nil
}

func (r *recorder) String() string {
	return strings.TrimSpace(string(r.buf))
}
