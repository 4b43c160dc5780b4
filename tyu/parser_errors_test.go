package tyu

import (
	"errors"
	"strings"
	"testing"
)

func requireParseError(t *testing.T, source string, kind ErrorKind, line, column int) *ParseError {
	t.Helper()
	scope, err := Parse(source)
	if err == nil {
		t.Fatalf("%q: expected %s, got %s", source, kind, scope)
	}
	if scope != nil {
		t.Fatalf("%q: expected no tree alongside an error, got %s", source, scope)
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("%q: expected *ParseError, got %T", source, err)
	}
	if perr.Kind != kind {
		t.Fatalf("%q: expected %s, got %s (%s)", source, kind, perr.Kind, perr.Message)
	}
	if perr.Line() != line || perr.Column() != column {
		t.Fatalf("%q: expected error at %d:%d, got %s (%s)", source, line, column, perr.Pos, perr.Message)
	}
	return perr
}

func TestParseErrorKindsAndPositions(t *testing.T) {
	cases := []struct {
		name   string
		source string
		kind   ErrorKind
		line   int
		column int
	}{
		{name: "unterminated string", source: "(:$0 'abc)", kind: ErrUnterminatedString, line: 1, column: 6},
		{name: "comment between slots", source: "(:$0;c;)", kind: ErrCommentInterruption, line: 1, column: 5},
		{name: "comment inside include", source: "#lib;x~", kind: ErrCommentInterruption, line: 1, column: 5},
		{name: "comment before return terminator", source: "`5 ;x;`", kind: ErrCommentInterruption, line: 1, column: 4},
		{name: "include at end of input", source: "#lib", kind: ErrPrematureEnd, line: 1, column: 5},
		{name: "nested scope at end of input", source: "(:$0 5", kind: ErrPrematureEnd, line: 1, column: 7},
		{name: "missing second slot", source: "+1", kind: ErrPrematureEnd, line: 1, column: 3},
		{name: "dollar at end of input", source: "+1 $", kind: ErrPrematureEnd, line: 1, column: 5},
		{name: "list size at end of input", source: "t$0 L", kind: ErrPrematureEnd, line: 1, column: 6},
		{name: "list element at end of input", source: "t$0 L3", kind: ErrPrematureEnd, line: 1, column: 7},
		{name: "function return at end of input", source: "t$0 FI", kind: ErrPrematureEnd, line: 1, column: 7},
		{name: "unterminated register", source: "+1 abc", kind: ErrUnterminatedRegister, line: 1, column: 4},
		{name: "unterminated declared register", source: "d abc", kind: ErrUnterminatedRegister, line: 1, column: 3},
		{name: "lone negation sign", source: "+- 2", kind: ErrMalformedNumber, line: 1, column: 2},
		{name: "two decimal points", source: "+1.5.2 3", kind: ErrMalformedNumber, line: 1, column: 2},
		{name: "integer overflow", source: "+99999999999999999999 1", kind: ErrMalformedNumber, line: 1, column: 2},
		{name: "dollar without digits", source: "+$ 1", kind: ErrMalformedNumber, line: 1, column: 2},
		{name: "bad list size", source: "t$0 Lx", kind: ErrMalformedListSize, line: 1, column: 6},
		{name: "lowercase type", source: "d x i", kind: ErrInvalidTypeCharacter, line: 1, column: 5},
		{name: "bad list element", source: "t$0 L3i", kind: ErrInvalidTypeCharacter, line: 1, column: 7},
		{name: "unknown marker", source: "Z", kind: ErrUnexpectedCharacter, line: 1, column: 1},
		{name: "unknown marker on second line", source: ";c;\n  Z", kind: ErrUnexpectedCharacter, line: 2, column: 3},
		{name: "literal in register slot", source: ":5 1", kind: ErrUnexpectedCharacter, line: 1, column: 2},
		{name: "string in register slot", source: "@'f' 1", kind: ErrUnexpectedCharacter, line: 1, column: 2},
		{name: "scope as declared name", source: "d (x) I", kind: ErrUnexpectedCharacter, line: 1, column: 3},
		{name: "if body is not a scope", source: "?$0 5", kind: ErrUnexpectedCharacter, line: 1, column: 5},
		{name: "close in value slot", source: "(+1)", kind: ErrUnexpectedCharacter, line: 1, column: 4},
		{name: "junk before return terminator", source: "`5 x`", kind: ErrUnexpectedCharacter, line: 1, column: 4},
		{name: "return without terminator", source: "`5", kind: ErrMissingDelimiter, line: 1, column: 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			requireParseError(t, tc.source, tc.kind, tc.line, tc.column)
		})
	}
}

func TestParseErrorFormatIncludesCodeFrame(t *testing.T) {
	perr := requireParseError(t, "(:$0 'abc)", ErrUnterminatedString, 1, 6)
	got := perr.Error()
	if !strings.HasPrefix(got, "parse error at 1:6: ") {
		t.Fatalf("unexpected error header: %q", got)
	}
	if !strings.HasSuffix(got, "\n 1 | (:$0 'abc)\n   |      ^") {
		t.Fatalf("expected caret frame in %q", got)
	}
}

func TestParseErrorFormatCaretPositions(t *testing.T) {
	cases := []struct {
		name   string
		source string
		kind   ErrorKind
		line   int
		column int
		frame  string
	}{
		{
			name:   "tab indented line",
			source: "\t\t:$0 'abc",
			kind:   ErrUnterminatedString,
			line:   1,
			column: 7,
			frame:  " 1 | \t\t:$0 'abc\n   | \t\t    ^",
		},
		{
			name:   "end of input on the last line",
			source: "(:$0 5",
			kind:   ErrPrematureEnd,
			line:   1,
			column: 7,
			frame:  " 1 | (:$0 5\n   |       ^ end of input",
		},
		{
			name:   "end of input after a trailing newline",
			source: "+1\n",
			kind:   ErrPrematureEnd,
			line:   2,
			column: 1,
			frame:  " 2 | \n   | ^ end of input",
		},
		{
			name:   "error before the end of a line",
			source: ";c;\n\tZ 1\n",
			kind:   ErrUnexpectedCharacter,
			line:   2,
			column: 2,
			frame:  " 2 | \tZ 1\n   | \t^",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			perr := requireParseError(t, tc.source, tc.kind, tc.line, tc.column)
			if got := perr.Error(); !strings.HasSuffix(got, "\n"+tc.frame) {
				t.Fatalf("expected frame %q in %q", tc.frame, got)
			}
		})
	}
}

func TestParseErrorMatchesByKind(t *testing.T) {
	_, err := Parse("+1 abc")
	if !errors.Is(err, &ParseError{Kind: ErrUnterminatedRegister}) {
		t.Fatalf("expected errors.Is to match by kind, got %v", err)
	}
	if errors.Is(err, &ParseError{Kind: ErrUnterminatedString}) {
		t.Fatalf("expected errors.Is to reject a different kind")
	}
}

func TestParseErrorMessagesNameTheSlot(t *testing.T) {
	perr := requireParseError(t, "+1", ErrPrematureEnd, 1, 3)
	if perr.Message != "expected a value 3rd slot for the add unit, got end of input" {
		t.Fatalf("unexpected message %q", perr.Message)
	}
}

func TestOrdinal(t *testing.T) {
	cases := map[int]string{1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 11: "11th", 12: "12th", 13: "13th", 21: "21st", 22: "22nd"}
	for n, want := range cases {
		if got := ordinal(n); got != want {
			t.Fatalf("ordinal(%d): expected %s, got %s", n, want, got)
		}
	}
}
