package tyu

import "unicode/utf8"

// eof is the lookahead reported once the input is exhausted.
const eof rune = -1

// frame is one step of the character stream: the character, where it sits,
// and the character that follows it (eof at the end of input).
type frame struct {
	pos  Position
	ch   rune
	next rune
}

// charStream is a forward-only reader over the source. Before the first real
// character it yields a synthetic scopeOpen at 1:0 so the whole program can be
// parsed as the body of a scope.
type charStream struct {
	input string

	offset int

	line   int
	column int

	primed bool
}

func newCharStream(input string) *charStream {
	return &charStream{input: input, line: 1, column: 1}
}

// next advances the stream. The boolean is false once the input is exhausted,
// in which case the frame only carries the end position.
func (s *charStream) next() (frame, bool) {
	if !s.primed {
		s.primed = true
		return frame{pos: Position{Line: 1, Column: 0}, ch: scopeOpen, next: s.peek()}, true
	}

	if s.offset >= len(s.input) {
		return frame{pos: s.position(), ch: eof, next: eof}, false
	}

	r, w := utf8.DecodeRuneInString(s.input[s.offset:])
	f := frame{pos: s.position(), ch: r}
	s.offset += w

	if r == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}

	f.next = s.peek()
	return f, true
}

// peek returns the character the next call to next will yield.
func (s *charStream) peek() rune {
	if !s.primed {
		return scopeOpen
	}
	if s.offset >= len(s.input) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(s.input[s.offset:])
	return r
}

// position is where the next real character sits, or one past the last
// character once the input is exhausted.
func (s *charStream) position() Position {
	return Position{Line: s.line, Column: s.column}
}
