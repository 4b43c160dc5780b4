package tyu

import (
	"fmt"
	"strings"
)

const (
	scopeOpen     = '('
	scopeClose    = ')'
	commentMarker = ';'
	registerClose = '~'
	specialPrefix = '$'
	specialZero   = '!'
)

// Kind identifies the statement or operator a unit represents.
type Kind int

const (
	KindComment Kind = iota
	KindScope
	KindDeclaration
	KindAssignment
	KindInclude

	KindIf
	KindCall
	KindReturn

	KindAdd
	KindConcat
	KindSub
	KindMul
	KindDiv
	KindMod
	KindLShift
	KindRShift

	KindEQ
	KindLT
	KindGT
	KindLTE
	KindGTE
	KindSubset
	KindIsType

	KindAnd
	KindOr
	KindNot
	KindXor
	KindBAnd
	KindBOr
	KindBNot
	KindBXor

	kindCount
)

var kindNames = [kindCount]string{
	KindComment:     "COMMENT",
	KindScope:       "SCOPE",
	KindDeclaration: "DECLARATION",
	KindAssignment:  "ASSIGNMENT",
	KindInclude:     "INCLUDE",
	KindIf:          "IF",
	KindCall:        "CALL",
	KindReturn:      "RETURN",
	KindAdd:         "ADD",
	KindConcat:      "CONCAT",
	KindSub:         "SUB",
	KindMul:         "MUL",
	KindDiv:         "DIV",
	KindMod:         "MOD",
	KindLShift:      "LSHIFT",
	KindRShift:      "RSHIFT",
	KindEQ:          "EQ",
	KindLT:          "LT",
	KindGT:          "GT",
	KindLTE:         "LTE",
	KindGTE:         "GTE",
	KindSubset:      "SUBSET",
	KindIsType:      "ISTYPE",
	KindAnd:         "AND",
	KindOr:          "OR",
	KindNot:         "NOT",
	KindXor:         "XOR",
	KindBAnd:        "BAND",
	KindBOr:         "BOR",
	KindBNot:        "BNOT",
	KindBXor:        "BXOR",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Group is the family a kind belongs to.
type Group int

const (
	GroupStructural Group = iota
	GroupControl
	GroupArithmetic
	GroupRelational
	GroupLogical
)

func (g Group) String() string {
	switch g {
	case GroupStructural:
		return "structural"
	case GroupControl:
		return "control"
	case GroupArithmetic:
		return "arithmetic"
	case GroupRelational:
		return "relational"
	case GroupLogical:
		return "logical"
	default:
		return fmt.Sprintf("Group(%d)", int(g))
	}
}

func (k Kind) Group() Group {
	switch {
	case k <= KindInclude:
		return GroupStructural
	case k <= KindReturn:
		return GroupControl
	case k <= KindRShift:
		return GroupArithmetic
	case k <= KindIsType:
		return GroupRelational
	default:
		return GroupLogical
	}
}

// SlotMode says how one payload slot of a unit is read.
type SlotMode int

const (
	// ModeText reads raw text up to the rule's terminator.
	ModeText SlotMode = iota
	// ModeRegisterName reads a register being declared.
	ModeRegisterName
	// ModeRegister reads a register reference or a nested scope.
	ModeRegister
	// ModeValue reads any value.
	ModeValue
	// ModeScope requires a parenthesised scope.
	ModeScope
	// ModeType reads a type descriptor.
	ModeType
	// ModeTerminator requires one of the rule's terminator characters.
	ModeTerminator
)

func (m SlotMode) String() string {
	switch m {
	case ModeText:
		return "text"
	case ModeRegisterName:
		return "register name"
	case ModeRegister:
		return "register"
	case ModeValue:
		return "value"
	case ModeScope:
		return "scope"
	case ModeType:
		return "type"
	case ModeTerminator:
		return "terminator"
	default:
		return fmt.Sprintf("SlotMode(%d)", int(m))
	}
}

// Rule is one row of the grammar table. Terminators lists the characters
// that end a text slot and satisfy a terminator slot; the first one is the
// canonical terminator recorded in the tree.
type Rule struct {
	Kind        Kind
	Marker      rune
	Slot2       SlotMode
	Slot3       SlotMode
	Terminators string
}

func (r Rule) terminates(ch rune) bool {
	return r.Terminators != "" && strings.ContainsRune(r.Terminators, ch)
}

func (r Rule) describeTerminators() string {
	quoted := make([]string, 0, len(r.Terminators))
	for _, ch := range r.Terminators {
		quoted = append(quoted, describeRune(ch))
	}
	return strings.Join(quoted, " or ")
}

var grammar = [kindCount]Rule{
	KindComment:     {Kind: KindComment, Marker: commentMarker, Slot2: ModeText, Slot3: ModeTerminator, Terminators: ";\n"},
	KindScope:       {Kind: KindScope, Marker: scopeOpen, Slot2: ModeScope, Slot3: ModeTerminator, Terminators: ")"},
	KindDeclaration: {Kind: KindDeclaration, Marker: 'd', Slot2: ModeRegisterName, Slot3: ModeType},
	KindAssignment:  {Kind: KindAssignment, Marker: ':', Slot2: ModeRegister, Slot3: ModeValue},
	KindInclude:     {Kind: KindInclude, Marker: '#', Slot2: ModeText, Slot3: ModeTerminator, Terminators: "~"},

	KindIf:     {Kind: KindIf, Marker: '?', Slot2: ModeValue, Slot3: ModeScope},
	KindCall:   {Kind: KindCall, Marker: '@', Slot2: ModeRegister, Slot3: ModeValue},
	KindReturn: {Kind: KindReturn, Marker: '`', Slot2: ModeValue, Slot3: ModeTerminator, Terminators: "`"},

	KindAdd:    {Kind: KindAdd, Marker: '+', Slot2: ModeValue, Slot3: ModeValue},
	KindConcat: {Kind: KindConcat, Marker: ',', Slot2: ModeValue, Slot3: ModeValue},
	KindSub:    {Kind: KindSub, Marker: '-', Slot2: ModeValue, Slot3: ModeValue},
	KindMul:    {Kind: KindMul, Marker: '*', Slot2: ModeValue, Slot3: ModeValue},
	KindDiv:    {Kind: KindDiv, Marker: '/', Slot2: ModeValue, Slot3: ModeValue},
	KindMod:    {Kind: KindMod, Marker: '%', Slot2: ModeValue, Slot3: ModeValue},
	KindLShift: {Kind: KindLShift, Marker: 'l', Slot2: ModeValue, Slot3: ModeValue},
	KindRShift: {Kind: KindRShift, Marker: 'r', Slot2: ModeValue, Slot3: ModeValue},

	KindEQ:     {Kind: KindEQ, Marker: '=', Slot2: ModeValue, Slot3: ModeValue},
	KindLT:     {Kind: KindLT, Marker: '<', Slot2: ModeValue, Slot3: ModeValue},
	KindGT:     {Kind: KindGT, Marker: '>', Slot2: ModeValue, Slot3: ModeValue},
	KindLTE:    {Kind: KindLTE, Marker: '[', Slot2: ModeValue, Slot3: ModeValue},
	KindGTE:    {Kind: KindGTE, Marker: ']', Slot2: ModeValue, Slot3: ModeValue},
	KindSubset: {Kind: KindSubset, Marker: 'c', Slot2: ModeValue, Slot3: ModeValue},
	KindIsType: {Kind: KindIsType, Marker: 't', Slot2: ModeValue, Slot3: ModeType},

	KindAnd:  {Kind: KindAnd, Marker: '&', Slot2: ModeValue, Slot3: ModeValue},
	KindOr:   {Kind: KindOr, Marker: '|', Slot2: ModeValue, Slot3: ModeValue},
	KindNot:  {Kind: KindNot, Marker: '!', Slot2: ModeValue, Slot3: ModeValue},
	KindXor:  {Kind: KindXor, Marker: '^', Slot2: ModeValue, Slot3: ModeValue},
	KindBAnd: {Kind: KindBAnd, Marker: '7', Slot2: ModeValue, Slot3: ModeValue},
	KindBOr:  {Kind: KindBOr, Marker: '\\', Slot2: ModeValue, Slot3: ModeValue},
	KindBNot: {Kind: KindBNot, Marker: '1', Slot2: ModeValue, Slot3: ModeValue},
	KindBXor: {Kind: KindBXor, Marker: '6', Slot2: ModeValue, Slot3: ModeValue},
}

var markerIndex = buildMarkerIndex()

func buildMarkerIndex() map[rune]Kind {
	index := make(map[rune]Kind, len(grammar))
	for _, rule := range grammar {
		if existing, dup := index[rule.Marker]; dup {
			panic(fmt.Sprintf("tyu: marker %q shared by %s and %s", rule.Marker, existing, rule.Kind))
		}
		index[rule.Marker] = rule.Kind
	}
	return index
}

// LookupMarker returns the grammar rule led by the given marker character.
func LookupMarker(ch rune) (Rule, bool) {
	kind, ok := markerIndex[ch]
	if !ok {
		return Rule{}, false
	}
	return grammar[kind], true
}

// RuleFor returns the grammar rule of a kind.
func RuleFor(kind Kind) Rule {
	return grammar[kind]
}

// Rules returns a copy of the grammar table in kind order.
func Rules() []Rule {
	out := make([]Rule, len(grammar))
	copy(out, grammar[:])
	return out
}

func describeRune(ch rune) string {
	switch ch {
	case eof:
		return "end of input"
	case '\n':
		return "newline"
	case '\t':
		return "tab"
	case ' ':
		return "space"
	default:
		return fmt.Sprintf("'%c'", ch)
	}
}
