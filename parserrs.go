package calc

import "strconv"

// InputError is an error with position information. Every error resulting from
// text the parser cannot understand implements InputError.
type InputError interface {
	error
	// Pos returns the 1-based rune column of the token that caused the error.
	Pos() int
}

// OperatorError is an error indicating an operator token in a place where the
// parser cannot use it, e.g. a unary * or a binary :=. It implements
// InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the token that was not understood.
	Operator string
	// Unary is whether the parser expected a unary operator at the time.
	Unary bool
}

func (err *OperatorError) Error() string {
	s := "binary"
	if err.Unary {
		s = "unary"
	}
	return errpos(err.Col, s+" operator "+strconv.Quote(err.Operator)+" not allowed here")
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// BracketError is an error indicating an unclosed, unopened, or mismatched
// bracket. It implements InputError.
type BracketError struct {
	// Col is the position of the bracket or end of input.
	Col int
	// Left is the opening bracket, if there was one.
	Left string
	// Right is the closing bracket, if there was one.
	Right string
}

func (err *BracketError) Error() string {
	switch {
	case err.Left == "":
		return errpos(err.Col, "unopened "+err.Right)
	case err.Right == "":
		return errpos(err.Col, "unclosed "+err.Left)
	default:
		return errpos(err.Col, err.Left+" closed by "+err.Right)
	}
}

func (err *BracketError) Pos() int {
	return err.Col
}

// SeparatorError is an error indicating a comma or semicolon outside the
// argument list of a call. It implements InputError.
type SeparatorError struct {
	// Col is the position of the separator.
	Col int
	// Sep is the separator.
	Sep string
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, "unexpected separator "+strconv.Quote(err.Sep))
}

func (err *SeparatorError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating a missing operand or argument.
// It implements InputError.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression, or empty at the end of
	// input.
	End string
}

func (err *EmptyExpressionError) Error() string {
	switch {
	case err.End != "":
		return errpos(err.Col, "missing expression before "+strconv.Quote(err.End))
	case err.Col <= 1:
		return errpos(err.Col, "empty input")
	default:
		return errpos(err.Col, "missing expression at end of input")
	}
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

func errpos(pos int, msg string) string {
	return "col " + strconv.Itoa(pos) + ": " + msg
}

var (
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*LexError)(nil)
)
