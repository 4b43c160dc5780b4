package tyu

// Slot is the payload of one of a unit's two slots. Its concrete type is
// fixed by the unit's kind and the slot's mode in the grammar table.
type Slot interface {
	slotNode()
	String() string
}

// Value is anything that can stand in a value position.
type Value interface {
	Slot
	valueNode()
}

// Register addresses a storage slot, by name or by number.
type Register interface {
	Slot
	registerNode()
}

// Type is a type descriptor.
type Type interface {
	Slot
	typeNode()
}

// Scope is an ordered block of units; the root of every parse is a Scope.
type Scope struct {
	Units []*Unit
	// Declarations is reserved for a hoisting pass and is never filled by
	// the parser.
	Declarations []*Unit
	position     Position
}

func (s *Scope) slotNode()     {}
func (s *Scope) Pos() Position { return s.position }

// Unit is one parsed statement or operator.
type Unit struct {
	Kind     Kind
	Marker   rune
	Slot2    Slot
	Slot3    Slot
	position Position
}

func (u *Unit) Pos() Position { return u.position }

// Text is raw text read by a text slot, trimmed of surrounding whitespace.
type Text string

func (Text) slotNode() {}

// Delimiter is the terminator character that closed a unit.
type Delimiter rune

func (Delimiter) slotNode() {}

type NamedRegister struct {
	Name string
}

func (r *NamedRegister) slotNode()     {}
func (r *NamedRegister) registerNode() {}

type SpecialRegister struct {
	Index uint64
}

func (r *SpecialRegister) slotNode()     {}
func (r *SpecialRegister) registerNode() {}

type IntegerLiteral struct {
	Value int64
}

func (v *IntegerLiteral) slotNode()  {}
func (v *IntegerLiteral) valueNode() {}

type FloatLiteral struct {
	Value float64
}

func (v *FloatLiteral) slotNode()  {}
func (v *FloatLiteral) valueNode() {}

type StringLiteral struct {
	Value string
}

func (v *StringLiteral) slotNode()  {}
func (v *StringLiteral) valueNode() {}

// RegisterRef is a register used as a value.
type RegisterRef struct {
	Register Register
}

func (v *RegisterRef) slotNode()  {}
func (v *RegisterRef) valueNode() {}

// NestedScope is a scope used as a value.
type NestedScope struct {
	Scope *Scope
}

func (v *NestedScope) slotNode()  {}
func (v *NestedScope) valueNode() {}

// TypeKind names a leaf of the type alphabet.
type TypeKind rune

const (
	TypeNumeric   TypeKind = 'N'
	TypeInteger   TypeKind = 'I'
	TypeRational  TypeKind = 'R'
	TypeContainer TypeKind = 'C'
	TypeString    TypeKind = 'S'
	TypeElement   TypeKind = 'E'
)

func (k TypeKind) String() string {
	switch k {
	case TypeNumeric:
		return "numeric"
	case TypeInteger:
		return "integer"
	case TypeRational:
		return "rational"
	case TypeContainer:
		return "container"
	case TypeString:
		return "string"
	case TypeElement:
		return "element"
	default:
		return "unknown"
	}
}

// UnknownSize marks a list whose length is not known at parse time (`L_`).
const UnknownSize = -1

type SingleType struct {
	Kind TypeKind
}

func (t *SingleType) slotNode() {}
func (t *SingleType) typeNode() {}

type ListType struct {
	// Size is the element count, or UnknownSize.
	Size    int
	Element Type
}

func (t *ListType) slotNode() {}
func (t *ListType) typeNode() {}

func (t *ListType) SizeKnown() bool { return t.Size != UnknownSize }

type FunctionType struct {
	Argument Type
	Return   Type
}

func (t *FunctionType) slotNode() {}
func (t *FunctionType) typeNode() {}
