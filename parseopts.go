package calc

import (
	"strconv"
	"unicode"
)

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

// parsectx holds the state of one parse.
type parsectx struct {
	// wseof contains the whitespace characters that end the expression.
	wseof string
	// ceof and seof indicate whether commas and semicolons, respectively, end
	// the expression outside argument lists.
	ceof, seof bool
}

type eofopt struct {
	c, s bool
	ws   string
}

// StopOn tells the parser to treat a list of characters as ending the
// expression. Each rune must be a comma, semicolon, or whitespace codepoint.
// Whitespace does not end an expression where a term is expected, e.g. at the
// beginning of an expression or following an operator or bracket. Commas and
// semicolons do not end expressions inside argument lists.
//
// StopOn overrides any previous StopOn in the parsing options. With no
// arguments, the parser reads to the end of its input.
func StopOn(chars ...rune) ParseOption {
	var o eofopt
	v := make([]rune, 0, len(chars))
	for _, r := range chars {
		switch {
		case r == ',':
			o.c = true
		case r == ';':
			o.s = true
		case unicode.IsSpace(r):
			if !containsRune(v, r) {
				v = append(v, r)
			}
		default:
			panic("calc: cannot stop on " + strconv.QuoteRune(r))
		}
	}
	o.ws = string(v)
	return &o
}

func containsRune(v []rune, r rune) bool {
	for _, c := range v {
		if c == r {
			return true
		}
	}
	return false
}

func (o *eofopt) parseOption(p parsectx) parsectx {
	p.ceof = o.c
	p.seof = o.s
	p.wseof = o.ws
	return p
}
