package main

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestREPL() replModel {
	return newREPLModel(nil, replConfig{Prompt: defaultPrompt, HistoryLimit: defaultHistory})
}

func pressEnter(t *testing.T, m replModel, input string) (replModel, tea.Cmd) {
	t.Helper()
	m.textInput.SetValue(input)
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm, ok := model.(replModel)
	if !ok {
		t.Fatalf("unexpected model type %T", model)
	}
	return rm, cmd
}

func TestUpdateQuitCommandReturnsQuit(t *testing.T) {
	rm, cmd := pressEnter(t, newTestREPL(), ":quit")

	if !rm.quitting {
		t.Fatalf("quitting flag not set")
	}
	if rm.textInput.Value() != "" {
		t.Fatalf("input not cleared after quit command")
	}
	if cmd == nil {
		t.Fatalf("expected tea.Quit command")
	}
	if msg := cmd(); msg != nil {
		if _, ok := msg.(tea.QuitMsg); !ok {
			t.Fatalf("expected QuitMsg, got %T", msg)
		}
	}
}

func TestUpdateNonQuitCommandDoesNotReturnCmd(t *testing.T) {
	rm, cmd := pressEnter(t, newTestREPL(), ":help")

	if cmd != nil {
		t.Fatalf("expected no command for non-quit input")
	}
	if rm.quitting {
		t.Fatalf("quitting should remain false")
	}
	if !rm.showHelp {
		t.Fatalf("help toggle should be enabled")
	}
	if rm.textInput.Value() != "" {
		t.Fatalf("input not cleared after command")
	}
}

func TestUpdateAssignmentIsParsedNotTreatedAsCommand(t *testing.T) {
	rm, _ := pressEnter(t, newTestREPL(), ":$0 5")

	if len(rm.history) != 1 {
		t.Fatalf("expected one history entry, got %d", len(rm.history))
	}
	entry := rm.history[0]
	if entry.isErr || entry.output != "(ASSIGNMENT($0, 5))" {
		t.Fatalf("unexpected history entry %#v", entry)
	}
	if len(rm.cmdHistory) != 1 || rm.cmdHistory[0] != ":$0 5" {
		t.Fatalf("expected input in command history, got %v", rm.cmdHistory)
	}
}

func TestUpdateProgramStartingWithCommandWordIsParsed(t *testing.T) {
	rm, cmd := pressEnter(t, newTestREPL(), ":c 5~ 1")

	if cmd != nil {
		t.Fatalf("expected no command for a program")
	}
	if len(rm.history) != 1 {
		t.Fatalf("expected one history entry, got %d", len(rm.history))
	}
	if entry := rm.history[0]; entry.isErr || entry.output != "(ASSIGNMENT(c 5~, 1))" {
		t.Fatalf("unexpected history entry %#v", entry)
	}
}

func TestIsREPLCommand(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{input: ":q", want: true},
		{input: "  :clear  ", want: true},
		{input: ":markers", want: true},
		{input: ":c 5~ 1", want: false},
		{input: ":q 1", want: false},
		{input: ":$0 5", want: false},
	}
	for _, tc := range cases {
		if got := isREPLCommand(tc.input); got != tc.want {
			t.Fatalf("isREPLCommand(%q): expected %v, got %v", tc.input, tc.want, got)
		}
	}
}

func TestEvaluateReportsParseErrors(t *testing.T) {
	m := newTestREPL()
	output, isErr := m.evaluate("(:$0 'abc)")
	if !isErr {
		t.Fatalf("expected parse error, got %q", output)
	}
	if !strings.Contains(output, "parse error at 1:6") {
		t.Fatalf("unexpected error output %q", output)
	}
}

func TestMarkersCommandShowsGrammarTable(t *testing.T) {
	rm, _ := pressEnter(t, newTestREPL(), ":markers")
	if !rm.showMarkers {
		t.Fatalf("markers toggle should be enabled")
	}

	model, _ := rm.Update(tea.WindowSizeMsg{Width: 100, Height: 80})
	view := model.(replModel).View()
	if !strings.Contains(view, "ASSIGNMENT") || !strings.Contains(view, "register name") {
		t.Fatalf("expected marker table in view, got %q", view)
	}
}

func TestClearCommandEmptiesHistory(t *testing.T) {
	rm, _ := pressEnter(t, newTestREPL(), "`1`")
	rm, _ = pressEnter(t, rm, ":clear")
	if len(rm.history) != 0 {
		t.Fatalf("expected empty history, got %d entries", len(rm.history))
	}
}

func TestHistoryLimitDropsOldestEntries(t *testing.T) {
	m := newREPLModel(nil, replConfig{HistoryLimit: 2})
	for _, input := range []string{"`1`", "`2`", "`3`"} {
		m, _ = pressEnter(t, m, input)
	}
	if len(m.history) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(m.history))
	}
	if m.history[0].input != "`2`" || m.history[1].input != "`3`" {
		t.Fatalf("unexpected history %#v", m.history)
	}
}

func TestUpRecallsPreviousInput(t *testing.T) {
	m, _ := pressEnter(t, newTestREPL(), "`1`")
	m, _ = pressEnter(t, m, "`2`")

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = model.(replModel)
	if got := m.textInput.Value(); got != "`2`" {
		t.Fatalf("expected last input, got %q", got)
	}

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = model.(replModel)
	if got := m.textInput.Value(); got != "`1`" {
		t.Fatalf("expected first input, got %q", got)
	}

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = model.(replModel)
	if got := m.textInput.Value(); got != "`2`" {
		t.Fatalf("expected to move forward, got %q", got)
	}
}

func TestPromptComesFromConfig(t *testing.T) {
	m := newREPLModel(nil, replConfig{Prompt: "3yu> "})
	if m.textInput.Prompt != "3yu> " {
		t.Fatalf("unexpected prompt %q", m.textInput.Prompt)
	}
}

func TestREPLParserDoesNotTrace(t *testing.T) {
	isolateConfig(t)
	a := &app{debug: true}
	if err := a.setup(); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	var buf bytes.Buffer
	a.logger.SetOutput(&buf)

	if _, err := a.parser.Parse(":$0 5"); err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !strings.Contains(buf.String(), "matched marker") {
		t.Fatalf("expected the command parser to trace, got %q", buf.String())
	}

	buf.Reset()
	if _, err := a.replParser().Parse(":$0 5"); err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if strings.Contains(buf.String(), "matched marker") {
		t.Fatalf("expected no parse traces from the repl parser, got %q", buf.String())
	}
}
