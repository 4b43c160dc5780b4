package tyu

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
)

// Config controls a Parser. The zero value is ready to use.
type Config struct {
	// Logger receives debug traces of the parse. Nil disables tracing.
	Logger *log.Logger
}

// Parser turns 3yu source into a syntax tree. It holds no state between
// calls and may be reused.
type Parser struct {
	logger *log.Logger
}

func NewParser(cfg Config) *Parser {
	return &Parser{logger: cfg.Logger}
}

// Parse parses a whole program. On failure the returned error is a
// *ParseError describing the first problem found.
func (p *Parser) Parse(source string) (*Scope, error) {
	ps := &parser{s: newCharStream(source), source: source, logger: p.logger}
	return ps.parseProgram()
}

// Parse parses source with the default configuration.
func Parse(source string) (*Scope, error) {
	return NewParser(Config{}).Parse(source)
}

type parser struct {
	s      *charStream
	source string
	logger *log.Logger
}

func (p *parser) parseProgram() (*Scope, error) {
	// parseScope expects its opening marker to be consumed already; for the
	// root that marker is the stream's synthetic one.
	open, _ := p.s.next()
	p.trace(open.pos, "parsing program")
	return p.parseScope(open.pos, true)
}

type scopeState int

const (
	stateIdle scopeState = iota
	stateDispatched
)

// parseScope reads units up to and including the closing marker of a scope
// whose opening marker at open has already been consumed. The root scope
// also ends cleanly at end of input.
func (p *parser) parseScope(open Position, root bool) (*Scope, error) {
	scope := &Scope{position: open}
	state := stateIdle

	var (
		rule Rule
		at   Position
	)

	for {
		switch state {
		case stateIdle:
			f, ok := p.s.next()
			if !ok {
				if root {
					return scope, nil
				}
				return nil, p.fail(ErrPrematureEnd, f.pos,
					"reached the end of input before the scope opened at %s was closed", open)
			}
			if f.ch == scopeClose {
				p.trace(f.pos, "closed scope", "units", len(scope.Units))
				return scope, nil
			}
			if isSpace(f.ch) {
				continue
			}
			matched, known := LookupMarker(f.ch)
			if !known {
				return nil, p.fail(ErrUnexpectedCharacter, f.pos,
					"expected a unit marker or %s, got %s", describeRune(scopeClose), describeRune(f.ch))
			}
			p.trace(f.pos, "matched marker", "marker", string(f.ch), "kind", matched.Kind)
			rule, at = matched, f.pos
			state = stateDispatched

		case stateDispatched:
			unit, err := p.parseUnit(rule, at)
			if err != nil {
				return nil, err
			}
			scope.Units = append(scope.Units, unit)
			state = stateIdle
		}
	}
}

func (p *parser) parseUnit(rule Rule, at Position) (*Unit, error) {
	unit := &Unit{Kind: rule.Kind, Marker: rule.Marker, position: at}

	switch rule.Kind {
	case KindScope:
		body, err := p.parseScope(at, false)
		if err != nil {
			return nil, err
		}
		unit.Slot2 = body
		unit.Slot3 = Delimiter(scopeClose)

	case KindIf:
		cond, err := p.parseSlot(rule, 2, rule.Slot2)
		if err != nil {
			return nil, err
		}
		body, err := p.parseScopeSlot(rule, 3)
		if err != nil {
			return nil, err
		}
		unit.Slot2 = cond
		unit.Slot3 = body

	default:
		slot2, err := p.parseSlot(rule, 2, rule.Slot2)
		if err != nil {
			return nil, err
		}
		slot3, err := p.parseSlot(rule, 3, rule.Slot3)
		if err != nil {
			return nil, err
		}
		unit.Slot2 = slot2
		unit.Slot3 = slot3
	}

	p.trace(at, "finished unit", "kind", rule.Kind)
	return unit, nil
}

func (p *parser) parseSlot(rule Rule, n int, mode SlotMode) (Slot, error) {
	p.trace(p.s.position(), "parsing slot", "kind", rule.Kind, "slot", n, "mode", mode)

	switch mode {
	case ModeText:
		return p.parseText(rule, n)
	case ModeRegisterName:
		value, err := p.parseValue(rule, n, mode)
		if err != nil {
			return nil, err
		}
		return value.(*RegisterRef).Register, nil
	case ModeRegister, ModeValue:
		return p.parseValue(rule, n, mode)
	case ModeScope:
		scope, err := p.parseScopeSlot(rule, n)
		if err != nil {
			return nil, err
		}
		return scope, nil
	case ModeType:
		return p.parseTypeSlot(rule, n)
	case ModeTerminator:
		return p.parseTerminator(rule)
	default:
		panic("tyu: unhandled slot mode " + mode.String())
	}
}

// parseText reads up to, but not including, the rule's terminator. Comment
// text may also run to the end of input.
func (p *parser) parseText(rule Rule, n int) (Slot, error) {
	var b strings.Builder
	for {
		ch := p.s.peek()
		if ch == eof {
			if rule.Kind == KindComment {
				break
			}
			return nil, p.fail(ErrPrematureEnd, p.s.position(),
				"expected %s to end the text %s slot of the %s unit, got end of input",
				rule.describeTerminators(), ordinal(n), unitLabel(rule))
		}
		if rule.terminates(ch) {
			break
		}
		f, _ := p.s.next()
		if f.ch == commentMarker {
			return nil, p.fail(ErrCommentInterruption, f.pos,
				"expected a text %s slot for the %s unit, but was stopped by a comment",
				ordinal(n), unitLabel(rule))
		}
		b.WriteRune(f.ch)
	}
	return Text(strings.TrimSpace(b.String())), nil
}

func (p *parser) parseTerminator(rule Rule) (Slot, error) {
	for {
		f, ok := p.s.next()
		if !ok {
			if rule.Kind == KindComment {
				return Delimiter('\n'), nil
			}
			return nil, p.fail(ErrMissingDelimiter, f.pos,
				"expected %s to close the %s unit, got end of input",
				rule.describeTerminators(), unitLabel(rule))
		}
		if rule.terminates(f.ch) {
			return Delimiter(f.ch), nil
		}
		if isSpace(f.ch) {
			continue
		}
		if f.ch == commentMarker {
			return nil, p.fail(ErrCommentInterruption, f.pos,
				"expected %s to close the %s unit, but was stopped by a comment",
				rule.describeTerminators(), unitLabel(rule))
		}
		return nil, p.fail(ErrUnexpectedCharacter, f.pos,
			"expected %s to close the %s unit, got %s",
			rule.describeTerminators(), unitLabel(rule), describeRune(f.ch))
	}
}

func (p *parser) parseScopeSlot(rule Rule, n int) (*Scope, error) {
	f, err := p.firstInSlot(rule, n, ModeScope)
	if err != nil {
		return nil, err
	}
	if f.ch != scopeOpen {
		return nil, p.fail(ErrUnexpectedCharacter, f.pos,
			"expected the start of a scope (%s) for the %s unit, got %s",
			describeRune(scopeOpen), unitLabel(rule), describeRune(f.ch))
	}
	return p.parseScope(f.pos, false)
}

// firstInSlot skips the whitespace in front of a slot's payload and returns
// the payload's first character.
func (p *parser) firstInSlot(rule Rule, n int, mode SlotMode) (frame, error) {
	for {
		f, ok := p.s.next()
		if !ok {
			return f, p.fail(ErrPrematureEnd, f.pos,
				"expected a %s %s slot for the %s unit, got end of input",
				mode, ordinal(n), unitLabel(rule))
		}
		if isSpace(f.ch) {
			continue
		}
		if f.ch == commentMarker {
			return f, p.fail(ErrCommentInterruption, f.pos,
				"expected a %s %s slot for the %s unit, but was stopped by a comment",
				mode, ordinal(n), unitLabel(rule))
		}
		return f, nil
	}
}

func (p *parser) trace(pos Position, msg string, keyvals ...any) {
	if p.logger == nil {
		return
	}
	p.logger.Debug(msg, append([]any{"line", pos.Line, "column", pos.Column}, keyvals...)...)
}

func unitLabel(rule Rule) string {
	return strings.ToLower(rule.Kind.String())
}

func isSpace(ch rune) bool {
	return ch != eof && unicode.IsSpace(ch)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
