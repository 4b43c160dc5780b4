package tyu

import "fmt"

// Export converts a tree into plain maps and slices that encode cleanly as
// JSON or YAML. Register and scope values are flattened into the register or
// scope they wrap.
func Export(scope *Scope) map[string]any {
	return exportScope(scope)
}

func exportScope(scope *Scope) map[string]any {
	units := make([]any, 0, len(scope.Units))
	for _, unit := range scope.Units {
		units = append(units, exportUnit(unit))
	}
	return map[string]any{
		"node":  "scope",
		"units": units,
	}
}

func exportUnit(unit *Unit) map[string]any {
	return map[string]any{
		"node":   "unit",
		"kind":   unit.Kind.String(),
		"marker": string(unit.Marker),
		"line":   unit.position.Line,
		"column": unit.position.Column,
		"slot2":  exportSlot(unit.Slot2),
		"slot3":  exportSlot(unit.Slot3),
	}
}

func exportSlot(slot Slot) any {
	switch s := slot.(type) {
	case nil:
		return nil
	case *Scope:
		return exportScope(s)
	case Text:
		return map[string]any{"node": "text", "value": string(s)}
	case Delimiter:
		return map[string]any{"node": "delimiter", "value": string(rune(s))}
	case *NamedRegister:
		return map[string]any{"node": "register", "name": s.Name}
	case *SpecialRegister:
		return map[string]any{"node": "register", "index": s.Index}
	case *IntegerLiteral:
		return map[string]any{"node": "integer", "value": s.Value}
	case *FloatLiteral:
		return map[string]any{"node": "float", "value": s.Value}
	case *StringLiteral:
		return map[string]any{"node": "string", "value": s.Value}
	case *RegisterRef:
		return exportSlot(s.Register)
	case *NestedScope:
		return exportScope(s.Scope)
	case *SingleType:
		return map[string]any{"node": "type", "kind": s.Kind.String()}
	case *ListType:
		var size any = s.Size
		if !s.SizeKnown() {
			size = "_"
		}
		return map[string]any{"node": "list", "size": size, "element": exportSlot(s.Element)}
	case *FunctionType:
		return map[string]any{
			"node":     "function",
			"argument": exportSlot(s.Argument),
			"return":   exportSlot(s.Return),
		}
	default:
		panic(fmt.Sprintf("tyu: cannot export %T", slot))
	}
}
