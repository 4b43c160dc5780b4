package tyu

import "strconv"

const (
	typeList     = 'L'
	typeFunction = 'F'
	sizeUnknown  = '_'
)

func leafType(ch rune) (TypeKind, bool) {
	switch kind := TypeKind(ch); kind {
	case TypeNumeric, TypeInteger, TypeRational, TypeContainer, TypeString, TypeElement:
		return kind, true
	}
	return 0, false
}

// IsTypeCharacter reports whether ch can start a type descriptor.
func IsTypeCharacter(ch rune) bool {
	_, leaf := leafType(ch)
	return leaf || ch == typeList || ch == typeFunction
}

func (p *parser) parseTypeSlot(rule Rule, n int) (Type, error) {
	f, err := p.firstInSlot(rule, n, ModeType)
	if err != nil {
		return nil, err
	}
	return p.parseType(f)
}

// parseType builds the type led by first. Nested types follow immediately,
// without separators: a list reads one element type, a function reads its
// argument type and then its return type.
func (p *parser) parseType(first frame) (Type, error) {
	switch first.ch {
	case typeList:
		p.trace(first.pos, "parsing list type")
		size, err := p.parseListSize()
		if err != nil {
			return nil, err
		}
		element, err := p.parseInnerType("list element")
		if err != nil {
			return nil, err
		}
		return &ListType{Size: size, Element: element}, nil

	case typeFunction:
		p.trace(first.pos, "parsing function type")
		argument, err := p.parseInnerType("function argument")
		if err != nil {
			return nil, err
		}
		ret, err := p.parseInnerType("function return")
		if err != nil {
			return nil, err
		}
		return &FunctionType{Argument: argument, Return: ret}, nil
	}

	kind, ok := leafType(first.ch)
	if !ok {
		return nil, p.fail(ErrInvalidTypeCharacter, first.pos,
			"expected an uppercase type character, got %s", describeRune(first.ch))
	}
	return &SingleType{Kind: kind}, nil
}

func (p *parser) parseInnerType(what string) (Type, error) {
	f, ok := p.s.next()
	if !ok {
		return nil, p.fail(ErrPrematureEnd, f.pos, "expected a %s type, got end of input", what)
	}
	return p.parseType(f)
}

// parseListSize reads the digits after `L`, or the `_` placeholder for a
// size that is only known later.
func (p *parser) parseListSize() (int, error) {
	f, ok := p.s.next()
	if !ok {
		return 0, p.fail(ErrPrematureEnd, f.pos, "expected a list size number, got end of input")
	}
	if f.ch == sizeUnknown {
		return UnknownSize, nil
	}
	if !isDigit(f.ch) {
		return 0, p.fail(ErrMalformedListSize, f.pos,
			"expected a list size number or '_', got %s", describeRune(f.ch))
	}

	digits := []rune{f.ch}
	for isDigit(p.s.peek()) {
		next, _ := p.s.next()
		digits = append(digits, next.ch)
	}

	size, err := strconv.Atoi(string(digits))
	if err != nil {
		return 0, p.fail(ErrMalformedListSize, f.pos, "list size %s is out of range", string(digits))
	}
	return size, nil
}
