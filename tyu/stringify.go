package tyu

import (
	"strconv"
	"strings"
)

// String renders the scope in a compact debugging notation, e.g.
// `(ASSIGNMENT($0, 5) RETURN($0, '`'))`. It is not 3yu source.
func (s *Scope) String() string {
	if s == nil {
		return "()"
	}
	var b strings.Builder
	b.WriteByte('(')
	for i, unit := range s.Units {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(unit.String())
	}
	b.WriteByte(')')
	return b.String()
}

func (u *Unit) String() string {
	return u.Kind.String() + "(" + slotString(u.Slot2) + ", " + slotString(u.Slot3) + ")"
}

func slotString(s Slot) string {
	if s == nil {
		return "<nil>"
	}
	return s.String()
}

func (t Text) String() string      { return strconv.Quote(string(t)) }
func (d Delimiter) String() string { return strconv.QuoteRune(rune(d)) }

func (r *NamedRegister) String() string   { return r.Name + string(registerClose) }
func (r *SpecialRegister) String() string { return "$" + strconv.FormatUint(r.Index, 10) }

func (v *IntegerLiteral) String() string { return strconv.FormatInt(v.Value, 10) }

func (v *FloatLiteral) String() string {
	s := strconv.FormatFloat(v.Value, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func (v *StringLiteral) String() string { return strconv.Quote(v.Value) }
func (v *RegisterRef) String() string   { return slotString(v.Register) }
func (v *NestedScope) String() string   { return v.Scope.String() }

func (t *SingleType) String() string { return string(rune(t.Kind)) }

func (t *ListType) String() string {
	size := "_"
	if t.SizeKnown() {
		size = strconv.Itoa(t.Size)
	}
	return "L" + size + slotString(t.Element)
}

func (t *FunctionType) String() string {
	return "F" + slotString(t.Argument) + slotString(t.Return)
}
