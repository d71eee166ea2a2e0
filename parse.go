package calc

import (
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Expr = num | name | Call | Neg | Plus | Assign | Add | Sub | Mul | Div | Pow | '(' Expr ')' | '[' Expr ']' | '{' Expr '}'
// Call = name ArgList  (no space between name and bracket)
// ArgList = '(' [ Expr { (',' | ';') Expr } ] ')' | '[' ... ']' | '{' ... '}'
// Neg = '-' Expr
// Plus = '+' Expr
// Assign = Expr ':=' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr | Expr '×' Expr | Expr Expr
// Div = Expr '/' Expr | Expr '÷' Expr
// Pow = Expr '^' Expr

// Parse parses one expression into a tree. The given options are applied in
// order. Errors describing bad input implement InputError.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Node, error) {
	scan := lex(src)
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	n, err := parseterm(scan, &p, exprprec)
	if err != nil {
		return nil, err
	}
	tok := scan.must()
	switch tok.kind {
	case tokenEOF:
	case tokenSep:
		switch {
		case p.ceof && tok.text == ",":
		case p.seof && tok.text == ";":
		default:
			return nil, unexpectedEnd(tok, -1)
		}
	default:
		return nil, unexpectedEnd(tok, -1)
	}
	if n == nil {
		return nil, &EmptyExpressionError{Col: tok.pos, End: tok.text}
	}
	return n, nil
}

// ParseString parses an expression from a string.
func ParseString(s string, opts ...ParseOption) (*Node, error) {
	return Parse(strings.NewReader(s), opts...)
}

// parseterm parses a term whose operators bind more tightly than until. If
// there is no error, then parseterm pushes the last token it scans, including
// EOF. If the term is empty, the result is nil with no error; callers decide
// whether that is allowed.
func parseterm(scan *lexer, p *parsectx, until operator) (*Node, error) {
	n, err := parselhs(scan, p, until)
	if err != nil || n == nil {
		return nil, err
	}
	for {
		tok, err := scan.next(p.wseof)
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenNum, tokenIdent:
			// 2 x -> 2 * x
			// 2 x^y -> 2 * (x^y)
			scan.push(tok)
			if !termprec.moreBinding(until) {
				return n, nil
			}
			rhs, err := parseterm(scan, p, termprec)
			if err != nil {
				return nil, err
			}
			n = Op("*", n, rhs)
		case tokenOp:
			prec := binop(tok.text)
			if prec.name == "" {
				return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: false}
			}
			if !prec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			rhs, err := operand(scan, p, prec)
			if err != nil {
				return nil, err
			}
			n = Op(prec.name, n, rhs)
		case tokenOpen:
			// Calls are parsed in parselhs, so this is 2 (x) -> 2 * x.
			if !termprec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			rhs, err := parsebracketed(scan, p, tok)
			if err != nil {
				return nil, err
			}
			n = Op("*", n, rhs)
		case tokenClose, tokenSep, tokenEOF:
			scan.push(tok)
			return n, nil
		default:
			panic("calc: unknown token: " + tok.String())
		}
	}
}

// operand parses the operand of an operator, which must not be empty.
func operand(scan *lexer, p *parsectx, prec operator) (*Node, error) {
	n, err := parseterm(scan, p, prec)
	if err != nil {
		return nil, err
	}
	if n == nil {
		end := scan.must()
		return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
	}
	return n, nil
}

// parselhs parses the first component of a term. Operators here are unary,
// and whitespace that would end the expression is ignored.
func parselhs(scan *lexer, p *parsectx, until operator) (*Node, error) {
	tok, err := scan.next("")
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenNum:
		return numText(tok.text), nil
	case tokenIdent:
		next, err := scan.next(p.wseof)
		if err != nil {
			return nil, err
		}
		if next.kind == tokenOpen && next.pos == tok.pos+utf8.RuneCountInString(tok.text) {
			args, err := parsearglist(scan, p, next)
			if err != nil {
				return nil, err
			}
			return Op(tok.text, args...), nil
		}
		scan.push(next)
		return Var(tok.text), nil
	case tokenOp:
		prec := unop(tok.text)
		if prec.name == "" {
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
		}
		if !prec.moreBinding(until) {
			// x^-y -> x^(-y)
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := operand(scan, p, prec)
		if err != nil {
			return nil, err
		}
		if prec.name == "+" {
			return rhs, nil
		}
		return Op(prec.name, rhs), nil
	case tokenOpen:
		return parsebracketed(scan, p, tok)
	case tokenClose:
		// Let the caller decide whether an empty term is allowed, as in f().
		scan.push(tok)
		return nil, nil
	case tokenSep:
		switch {
		case tok.text == "," && p.ceof, tok.text == ";" && p.seof:
			scan.push(tok)
			return nil, nil
		}
		return nil, &SeparatorError{Col: tok.pos, Sep: tok.text}
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos, End: ""}
	default:
		panic("calc: unknown token: " + tok.String())
	}
}

// parsebracketed parses a bracketed subexpression after its open bracket.
func parsebracketed(scan *lexer, p *parsectx, open token) (*Node, error) {
	match := rightbracket(open.text)
	n, err := parseterm(scan, p, exprprec)
	if err != nil {
		return nil, err
	}
	end := scan.must()
	if end.kind != tokenClose || end.text != closebrackets[match] {
		return nil, unexpectedEnd(end, match)
	}
	if n == nil {
		return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
	}
	return n, nil
}

// parsearglist parses a bracketed list of zero or more arguments after its
// open bracket.
func parsearglist(scan *lexer, p *parsectx, open token) ([]*Node, error) {
	match := rightbracket(open.text)
	var args []*Node
	for {
		n, err := parseterm(scan, p, exprprec)
		if err != nil {
			// Running out of input inside a call is a missing bracket.
			if ee, _ := err.(*EmptyExpressionError); ee != nil && ee.End == "" {
				err = &BracketError{Col: ee.Col, Left: open.text}
			}
			return nil, err
		}
		end := scan.must()
		switch end.kind {
		case tokenClose:
			if end.text != closebrackets[match] {
				return nil, &BracketError{Col: end.pos, Left: open.text, Right: end.text}
			}
			if n == nil {
				// f() is allowed, but f(a,) isn't.
				if len(args) != 0 {
					return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
				}
				return nil, nil
			}
			return append(args, n), nil
		case tokenSep:
			if n == nil {
				return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
			}
			args = append(args, n)
		case tokenEOF:
			return nil, &BracketError{Col: end.pos, Left: open.text}
		default:
			panic("calc: argument ended on non-end token " + end.String())
		}
	}
}

// rightbracket gets the closing bracket index for an opening bracket.
func rightbracket(left string) int {
	r, sz := utf8.DecodeRuneInString(left)
	k := strings.IndexRune(OpenBrackets, r)
	if k < 0 || sz != len(left) {
		panic("calc: invalid bracket " + strconv.Quote(left))
	}
	return k
}

// leftbracket gets the opening bracket with index right, or the empty string
// if right is -1.
func leftbracket(right int) string {
	if right == -1 {
		return ""
	}
	return openbrackets[right]
}

// unexpectedEnd returns an error for a token that ended a subexpression in a
// place it should not have. match is the index of the bracket the
// subexpression should have closed, or -1 if none.
func unexpectedEnd(tok token, match int) error {
	switch tok.kind {
	case tokenEOF:
		return &BracketError{Col: tok.pos, Left: leftbracket(match), Right: ""}
	case tokenClose:
		return &BracketError{Col: tok.pos, Left: leftbracket(match), Right: tok.text}
	case tokenSep:
		return &SeparatorError{Col: tok.pos, Sep: tok.text}
	default:
		panic("calc: expression ended on " + tok.String())
	}
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// name is the operation the operator produces.
	name string
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token. If there is no such operator, the
// result has an empty name.
func binop(text string) operator {
	switch text {
	case ":=":
		return operator{0, true, "assign"}
	case "+":
		return operator{1, false, "+"}
	case "-":
		return operator{1, false, "-"}
	case "*", "×":
		return operator{5, false, "*"}
	case "/", "÷":
		return operator{5, false, "/"}
	case "^":
		return operator{15, true, "^"}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token. Unary + has the name "+" and
// produces its operand unchanged.
func unop(text string) operator {
	switch text {
	case "+":
		return operator{10, true, "+"}
	case "-":
		return operator{10, true, "negate"}
	default:
		return operator{}
	}
}

var (
	// termprec is the precedence of implicit multiplication.
	termprec = operator{5, true, "*"}
	// exprprec is the precedence required to parse an entire subexpression.
	exprprec = operator{-128, true, ""}
)
