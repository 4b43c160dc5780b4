package tyu

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestScopeString(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{source: "", want: "()"},
		{source: ":$0 5", want: "(ASSIGNMENT($0, 5))"},
		{source: "(:$0 5)", want: "(SCOPE((ASSIGNMENT($0, 5)), ')'))"},
		{source: "`x~`", want: "(RETURN(x~, '`'))"},
		{source: ";hi;", want: `(COMMENT("hi", ';'))`},
		{source: "+2.0 -1.25", want: "(ADD(2.0, -1.25))"},
		{source: "t$0 FL3IS", want: "(ISTYPE($0, FL3IS))"},
		{source: "d n L_N", want: "(DECLARATION(n~, L_N))"},
		{source: "?$1 (,'a' \"b\")", want: `(IF($1, (CONCAT("a", "b"))))`},
	}
	for _, tc := range cases {
		if got := mustParse(t, tc.source).String(); got != tc.want {
			t.Fatalf("%q: expected %s, got %s", tc.source, tc.want, got)
		}
	}
}

func TestNilScopeString(t *testing.T) {
	var scope *Scope
	if got := scope.String(); got != "()" {
		t.Fatalf("expected (), got %s", got)
	}
}

func TestExportTree(t *testing.T) {
	tree := Export(mustParse(t, "t$0 L_S"))
	want := map[string]any{
		"node": "scope",
		"units": []any{
			map[string]any{
				"node":   "unit",
				"kind":   "ISTYPE",
				"marker": "t",
				"line":   1,
				"column": 1,
				"slot2":  map[string]any{"node": "register", "index": uint64(0)},
				"slot3": map[string]any{
					"node":    "list",
					"size":    "_",
					"element": map[string]any{"node": "type", "kind": "string"},
				},
			},
		},
	}
	if !reflect.DeepEqual(tree, want) {
		t.Fatalf("unexpected export:\n%#v", tree)
	}
}

func TestExportEncodesAsJSON(t *testing.T) {
	tree := Export(mustParse(t, ";note;\n:count~ (+1 2.5)"))
	raw, err := json.Marshal(tree)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	units, ok := decoded["units"].([]any)
	if !ok || len(units) != 2 {
		t.Fatalf("expected 2 units, got %#v", decoded["units"])
	}
	assign := units[1].(map[string]any)
	if assign["kind"] != "ASSIGNMENT" || assign["line"] != float64(2) {
		t.Fatalf("unexpected assignment export %#v", assign)
	}
	target := assign["slot2"].(map[string]any)
	if target["name"] != "count" {
		t.Fatalf("unexpected target %#v", target)
	}
}
