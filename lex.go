package calc

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type token struct {
	text string
	kind tokenKind
	pos  int
}

func (t token) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF is the end of the input or of one expression.
	tokenEOF
	// tokenNum is a number literal, including inf.
	tokenNum
	// tokenIdent is a variable or operation name.
	tokenIdent
	// tokenOp is an operator, including :=.
	tokenOp
	// tokenOpen is an open bracket, e.g. (.
	tokenOpen
	// tokenClose is a close bracket, e.g. ).
	tokenClose
	// tokenSep is an argument separator, either , or ;.
	tokenSep
)

var tokenKindNames = [...]string{
	tokenNone:  "None",
	tokenEOF:   "EOF",
	tokenNum:   "Num",
	tokenIdent: "Ident",
	tokenOp:    "Op",
	tokenOpen:  "Open",
	tokenClose: "Close",
	tokenSep:   "Sep",
}

func (k tokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenKindNames[k]
}

// Operators contains the single-rune operators. The assignment operator := is
// also recognized.
const Operators = "+-*/^×÷"

// OpenBrackets and CloseBrackets contain the runes which group expressions.
// The bracket at byte position k in OpenBrackets matches the bracket at byte
// position k in CloseBrackets.
const (
	OpenBrackets  = "([{"
	CloseBrackets = ")]}"
)

func byteidcs(s string) []string {
	v := make([]string, len(s))
	for i, r := range s {
		v[i] = string(r)
	}
	return v
}

var (
	operstrs      = byteidcs(Operators)
	openbrackets  = byteidcs(OpenBrackets)
	closebrackets = byteidcs(CloseBrackets)
)

// numstop contains the runes that end a number literal.
const numstop = Operators + OpenBrackets + CloseBrackets + ",;:"

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
	p    token
	eof  bool
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{src: src, rune: 1}
}

// push unreads a token so that it is the next token returned from next. Panics
// if there is already a pushed token.
func (l *lexer) push(tok token) {
	if l.p.kind != tokenNone {
		panic("calc: double push of " + tok.String() + " over " + l.p.String())
	}
	l.p = tok
}

// must takes the pushed token. Panics if there is none.
func (l *lexer) must() token {
	tok := l.p
	if tok.kind == tokenNone {
		panic("calc: no pushed token")
	}
	l.p = token{}
	return tok
}

func (l *lexer) readRune() (rune, error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune. Panics if the source refuses.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// next scans the next token. Any rune in wseof ends the expression as if it
// were the end of input. The first end of input produces an EOF token; after
// that, unless the EOF token is pushed back, next returns io.EOF.
func (l *lexer) next(wseof string) (token, error) {
	if l.p.kind != tokenNone {
		return l.must(), nil
	}
	if l.eof {
		return token{}, io.EOF
	}
	defer l.buf.Reset()
	tok := token{pos: l.rune}
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				tok.kind = tokenEOF
				l.eof = true
				return tok, nil
			}
			return tok, err
		}
		switch {
		case unicode.IsSpace(r):
			if strings.ContainsRune(wseof, r) {
				tok.kind = tokenEOF
				l.eof = true
				return tok, nil
			}
			tok.pos++
		case '0' <= r && r <= '9', r == '.':
			l.unreadRune()
			if err := l.scanNum(); err != nil {
				return tok, err
			}
			tok.text, tok.kind = l.buf.String(), tokenNum
			return tok, nil
		case r == '_', unicode.IsLetter(r):
			l.unreadRune()
			if err := l.scanIdent(); err != nil {
				return tok, err
			}
			tok.text, tok.kind = l.buf.String(), tokenIdent
			switch tok.text {
			case "inf", "Inf":
				tok.kind = tokenNum
			}
			return tok, nil
		case r == '∞':
			tok.text, tok.kind = "∞", tokenNum
			return tok, nil
		case r == ',', r == ';':
			tok.text, tok.kind = string(r), tokenSep
			return tok, nil
		case r == ':':
			l.buf.WriteRune(r)
			r, err := l.readRune()
			if err != nil && !errors.Is(err, io.EOF) {
				return tok, err
			}
			if err != nil || r != '=' {
				if err == nil {
					l.buf.WriteRune(r)
				}
				return tok, l.error("operator")
			}
			tok.text, tok.kind = ":=", tokenOp
			return tok, nil
		default:
			if k := strings.IndexRune(Operators, r); k >= 0 {
				tok.text, tok.kind = operstrs[k], tokenOp
				return tok, nil
			}
			if k := strings.IndexRune(OpenBrackets, r); k >= 0 {
				tok.text, tok.kind = openbrackets[k], tokenOpen
				return tok, nil
			}
			if k := strings.IndexRune(CloseBrackets, r); k >= 0 {
				tok.text, tok.kind = closebrackets[k], tokenClose
				return tok, nil
			}
			l.buf.WriteRune(r)
			return tok, l.error("")
		}
	}
}

func (l *lexer) scanNum() error {
	// dig and edig record digits in the mantissa and exponent. sign records
	// that the previous rune was an exponent marker, which allows a sign.
	var dig, dot, exp, sign, edig bool
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if unicode.IsSpace(r) {
			l.unreadRune()
			break
		}
		if (r == '+' || r == '-') && sign {
			sign = false
			l.buf.WriteRune(r)
			continue
		}
		if strings.ContainsRune(numstop, r) {
			l.unreadRune()
			break
		}
		l.buf.WriteRune(r)
		switch {
		case r == '.':
			if dot || exp {
				return l.error("number")
			}
			dot, sign = true, false
		case r == 'e', r == 'E':
			if !dig || exp {
				return l.error("number")
			}
			exp, sign = true, true
		case '0' <= r && r <= '9':
			if exp {
				edig = true
			} else {
				dig = true
			}
			sign = false
		default:
			return l.error("number")
		}
	}
	if !dig || exp && !edig {
		return l.error("number")
	}
	return nil
}

func (l *lexer) scanIdent() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// next unread the first rune, so there is at least one.
				return nil
			}
			return err
		}
		switch {
		case r == '_', r == '.', unicode.IsLetter(r), unicode.IsDigit(r):
			l.buf.WriteRune(r)
		default:
			l.unreadRune()
			return nil
		}
	}
}

func (l *lexer) error(kind string) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		Col:  l.rune - 1,
	}
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning: "number",
	// "operator", or empty if no kind was decided.
	Kind string
	// Col is the position of the invalid rune.
	Col int
}

func (err *LexError) Error() string {
	if err.Kind == "" {
		return errpos(err.Col, "invalid token "+strconv.Quote(err.Text))
	}
	return errpos(err.Col, "invalid "+err.Kind+" "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}
