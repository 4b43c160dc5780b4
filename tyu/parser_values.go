package tyu

import (
	"strconv"
	"strings"
)

// parseValue resolves one value position. Register modes only accept
// registers and, for plain registers, nested scopes; a RegisterName slot
// always yields a *RegisterRef.
func (p *parser) parseValue(rule Rule, n int, mode SlotMode) (Value, error) {
	f, err := p.firstInSlot(rule, n, mode)
	if err != nil {
		return nil, err
	}
	registerOnly := mode == ModeRegister || mode == ModeRegisterName

	switch {
	case f.ch == scopeOpen:
		if mode == ModeRegisterName {
			return nil, p.fail(ErrUnexpectedCharacter, f.pos,
				"expected a register name %s slot for the %s unit, got the start of a scope",
				ordinal(n), unitLabel(rule))
		}
		p.trace(f.pos, "recursing into nested scope")
		scope, err := p.parseScope(f.pos, false)
		if err != nil {
			return nil, err
		}
		return &NestedScope{Scope: scope}, nil

	case isDigit(f.ch) || f.ch == '-':
		if registerOnly {
			return nil, p.fail(ErrUnexpectedCharacter, f.pos,
				"expected a %s %s slot for the %s unit, got a numeric literal",
				mode, ordinal(n), unitLabel(rule))
		}
		return p.parseNumber(f)

	case f.ch == '\'' || f.ch == '"':
		if registerOnly {
			return nil, p.fail(ErrUnexpectedCharacter, f.pos,
				"expected a %s %s slot for the %s unit, got a string literal",
				mode, ordinal(n), unitLabel(rule))
		}
		return p.parseString(f)

	case f.ch == specialPrefix:
		return p.parseSpecialRegister(f)

	case f.ch == scopeClose || f.ch == registerClose:
		return nil, p.fail(ErrUnexpectedCharacter, f.pos,
			"expected a %s %s slot for the %s unit, got %s",
			mode, ordinal(n), unitLabel(rule), describeRune(f.ch))

	default:
		return p.parseNamedRegister(f, mode == ModeRegisterName)
	}
}

// parseNumber reads a digit run with an optional decimal point. The literal
// is a float only when it contains a point.
func (p *parser) parseNumber(first frame) (Value, error) {
	if first.ch == '-' && !isDigit(first.next) {
		return nil, p.fail(ErrMalformedNumber, first.pos, "negation sign does not precede a digit")
	}

	var b strings.Builder
	b.WriteRune(first.ch)
	hasDot := false
	for {
		ch := p.s.peek()
		if !isDigit(ch) && ch != '.' {
			break
		}
		f, _ := p.s.next()
		if f.ch == '.' {
			hasDot = true
		}
		b.WriteRune(f.ch)
	}

	literal := b.String()
	if hasDot {
		value, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return nil, p.fail(ErrMalformedNumber, first.pos, "could not parse numeric literal %q", literal)
		}
		return &FloatLiteral{Value: value}, nil
	}

	value, err := strconv.ParseInt(literal, 10, 64)
	if err != nil {
		return nil, p.fail(ErrMalformedNumber, first.pos, "could not parse numeric literal %q", literal)
	}
	return &IntegerLiteral{Value: value}, nil
}

// parseString reads up to the same quote character that opened the string.
// There are no escape sequences.
func (p *parser) parseString(open frame) (Value, error) {
	var b strings.Builder
	for {
		f, ok := p.s.next()
		if !ok {
			return nil, p.fail(ErrUnterminatedString, open.pos,
				"string was not closed with the same quote character (%c)", open.ch)
		}
		if f.ch == open.ch {
			return &StringLiteral{Value: b.String()}, nil
		}
		b.WriteRune(f.ch)
	}
}

// parseSpecialRegister reads the index after `$`. `!` stands for the digit 0
// so `$!` is register 0 and `$1!` register 10.
func (p *parser) parseSpecialRegister(dollar frame) (Value, error) {
	var digits strings.Builder
	for {
		ch := p.s.peek()
		if !isDigit(ch) && ch != specialZero {
			break
		}
		f, _ := p.s.next()
		if f.ch == specialZero {
			digits.WriteByte('0')
		} else {
			digits.WriteRune(f.ch)
		}
	}

	if digits.Len() == 0 {
		next := p.s.peek()
		if next == eof {
			return nil, p.fail(ErrPrematureEnd, p.s.position(),
				"expected a special register number after '$', got end of input")
		}
		return nil, p.fail(ErrMalformedNumber, dollar.pos,
			"special register number was not a number (found %s)", describeRune(next))
	}

	index, err := strconv.ParseUint(digits.String(), 10, 64)
	if err != nil {
		return nil, p.fail(ErrMalformedNumber, dollar.pos,
			"special register number %s is out of range", digits.String())
	}
	return &RegisterRef{Register: &SpecialRegister{Index: index}}, nil
}

// parseNamedRegister reads a name closed by `~`. Declared names may also end
// at whitespace.
func (p *parser) parseNamedRegister(first frame, stopAtSpace bool) (Value, error) {
	var b strings.Builder
	b.WriteRune(first.ch)
	for {
		f, ok := p.s.next()
		if !ok {
			return nil, p.fail(ErrUnterminatedRegister, first.pos,
				"register name was not closed with a '~' character")
		}
		if f.ch == registerClose || (stopAtSpace && isSpace(f.ch)) {
			break
		}
		b.WriteRune(f.ch)
	}
	return &RegisterRef{Register: &NamedRegister{Name: b.String()}}, nil
}
