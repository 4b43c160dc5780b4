package tyu

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a parse failure.
type ErrorKind int

const (
	ErrCommentInterruption ErrorKind = iota + 1
	ErrPrematureEnd
	ErrUnterminatedString
	ErrUnterminatedRegister
	ErrMalformedNumber
	ErrMalformedListSize
	ErrInvalidTypeCharacter
	ErrUnexpectedCharacter
	ErrMissingDelimiter
)

func (k ErrorKind) String() string {
	switch k {
	case ErrCommentInterruption:
		return "unexpected comment interruption"
	case ErrPrematureEnd:
		return "premature end of input"
	case ErrUnterminatedString:
		return "unterminated string"
	case ErrUnterminatedRegister:
		return "unterminated register"
	case ErrMalformedNumber:
		return "malformed numeric literal"
	case ErrMalformedListSize:
		return "malformed list size"
	case ErrInvalidTypeCharacter:
		return "invalid type character"
	case ErrUnexpectedCharacter:
		return "unexpected character"
	case ErrMissingDelimiter:
		return "missing closing delimiter"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ParseError is the first problem found in the source. Parsing stops there.
type ParseError struct {
	Kind    ErrorKind
	Message string
	Pos     Position
	source  string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "parse error at %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
	if frame := codeFrame(e.source, e.Pos); frame != "" {
		b.WriteString("\n")
		b.WriteString(frame)
	}
	return b.String()
}

func (e *ParseError) Line() int   { return e.Pos.Line }
func (e *ParseError) Column() int { return e.Pos.Column }

// Is reports whether target is a *ParseError of the same kind, so callers can
// match with errors.Is(err, &ParseError{Kind: ErrUnterminatedString}).
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Kind == e.Kind
}

func (p *parser) fail(kind ErrorKind, pos Position, format string, args ...any) error {
	return &ParseError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
		source:  p.source,
	}
}

// ordinal numbers slots in messages. The marker counts as a unit's 1st
// element, so payload slots are the 2nd and 3rd.
func ordinal(n int) string {
	switch {
	case n%100 >= 11 && n%100 <= 13:
		return fmt.Sprintf("%dth", n)
	case n%10 == 1:
		return fmt.Sprintf("%dst", n)
	case n%10 == 2:
		return fmt.Sprintf("%dnd", n)
	case n%10 == 3:
		return fmt.Sprintf("%drd", n)
	default:
		return fmt.Sprintf("%dth", n)
	}
}
