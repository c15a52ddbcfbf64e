package main

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mgomes/vecscript/vibes"
)

func newTestREPL(t *testing.T, kind string) replModel {
	t.Helper()
	engine, err := vibes.NewEngine(vibes.Config{VectorKind: kind, Stdout: io.Discard})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	m, err := newREPLModel(engine)
	if err != nil {
		t.Fatalf("new repl model: %v", err)
	}
	t.Cleanup(func() { m.state.Close() })
	return m
}

func submit(t *testing.T, m replModel, input string) (replModel, tea.Cmd) {
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
	m := newTestREPL(t, "")

	rm, cmd := submit(t, m, ":quit")
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
	m := newTestREPL(t, "")

	rm, cmd := submit(t, m, ":help")
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

func TestUnknownCommandIsReported(t *testing.T) {
	m := newTestREPL(t, "")

	rm, _ := submit(t, m, ":frobnicate")
	last := rm.history[len(rm.history)-1]
	if !last.isErr || !strings.Contains(last.output, "Unknown command") {
		t.Fatalf("unexpected history entry: %+v", last)
	}
}

func TestEvaluateAssignmentStoresVariable(t *testing.T) {
	m := newTestREPL(t, "")

	output, isErr := m.evaluate("score = 42")
	if isErr {
		t.Fatalf("unexpected eval error: %s", output)
	}

	score := m.state.Global("score")
	if score.Kind() != vibes.KindInt || score.Int() != 42 {
		t.Fatalf("unexpected score value: %#v", score)
	}
	if _, ok := m.userVars()["score"]; !ok {
		t.Fatalf("score missing from user vars")
	}
	if _, ok := m.userVars()["print"]; ok {
		t.Fatalf("builtins should not be listed as user vars")
	}
}

func TestEvaluateEqualityDoesNotOverwriteVariable(t *testing.T) {
	m := newTestREPL(t, "")
	m.state.SetGlobal("a", vibes.NewInt(5))

	output, isErr := m.evaluate("a == 5")
	if isErr {
		t.Fatalf("unexpected eval error: %s", output)
	}
	if output != "true" {
		t.Fatalf("unexpected output: %q", output)
	}

	a := m.state.Global("a")
	if a.Kind() != vibes.KindInt || a.Int() != 5 {
		t.Fatalf("variable a was clobbered by equality expression: %#v", a)
	}
}

func TestEvaluateBindsLastResult(t *testing.T) {
	m := newTestREPL(t, "")

	if output, isErr := m.evaluate("vec.new(1, 2, 3, 4)"); isErr {
		t.Fatalf("unexpected eval error: %s", output)
	}
	output, isErr := m.evaluate("vec.length(_)")
	if isErr {
		t.Fatalf("unexpected eval error: %s", output)
	}
	if !strings.HasPrefix(output, "5.477") {
		t.Fatalf("unexpected length: %q", output)
	}
	if m.state.Top() != 0 {
		t.Fatalf("stack not reset after evaluation: %d", m.state.Top())
	}
}

func TestEvaluateReportsErrors(t *testing.T) {
	m := newTestREPL(t, "")

	output, isErr := m.evaluate("vec.new(1) + true")
	if !isErr {
		t.Fatalf("expected error, got %q", output)
	}
	output, isErr = m.evaluate("vec.new(1,")
	if !isErr {
		t.Fatalf("expected parse error, got %q", output)
	}
}

func TestGCCommandReportsHeap(t *testing.T) {
	m := newTestREPL(t, "boxed")
	if output, isErr := m.evaluate("for i in 1..20\n  vec.new(i)\nend"); isErr {
		t.Fatalf("unexpected eval error: %s", output)
	}

	rm, cmd := submit(t, m, ":gc")
	if cmd != nil {
		t.Fatalf("expected no command for :gc")
	}
	last := rm.history[len(rm.history)-1]
	if last.isErr {
		t.Fatalf("unexpected gc error: %s", last.output)
	}
	if !strings.Contains(last.output, "freed") || !strings.Contains(last.output, "Heap") {
		t.Fatalf("unexpected gc output: %q", last.output)
	}
}

func TestResetCommandDropsGlobals(t *testing.T) {
	m := newTestREPL(t, "")
	if output, isErr := m.evaluate("v = vec.new(1, 2)"); isErr {
		t.Fatalf("unexpected eval error: %s", output)
	}
	before := m.state

	rm, _ := submit(t, m, ":reset")
	t.Cleanup(func() { rm.state.Close() })
	if rm.state == before {
		t.Fatalf("reset should create a fresh state")
	}
	if !rm.state.Global("v").IsNil() {
		t.Fatalf("v survived reset")
	}
	if rm.state.Global("vec").IsNil() {
		t.Fatalf("vec library missing after reset")
	}
	if output, isErr := rm.evaluate("vec.dot(vec.new(1, 0), vec.new(2, 0))"); isErr || output != "2" {
		t.Fatalf("unexpected result after reset: %q (err=%v)", output, isErr)
	}
}

func TestClearCommandEmptiesHistory(t *testing.T) {
	m := newTestREPL(t, "")
	m.history = append(m.history, historyEntry{input: "1", output: "1"})

	rm, _ := submit(t, m, ":clear")
	if len(rm.history) != 0 {
		t.Fatalf("history not cleared: %d entries", len(rm.history))
	}
}

func TestAutocompleteVecMembers(t *testing.T) {
	m := newTestREPL(t, "")
	m.textInput.SetValue("vec.cr")

	m = m.handleAutocomplete()
	if got := m.textInput.Value(); got != "vec.cross" {
		t.Fatalf("unexpected completion: %q", got)
	}
}

func TestLookupCommandFindsEveryAlias(t *testing.T) {
	for _, name := range []string{":help", ":h", ":vars", ":v", ":gc", ":clear", ":c", ":reset", ":r", ":quit", ":q"} {
		c, ok := lookupCommand(name)
		if !ok {
			t.Fatalf("command %s not found", name)
		}
		if c.run == nil || c.help == "" {
			t.Fatalf("command %s is incomplete: %+v", name, c)
		}
	}
	if _, ok := lookupCommand(":nope"); ok {
		t.Fatalf("unexpected command for :nope")
	}
}

func TestReplCommandRejectsUnknownFlag(t *testing.T) {
	err := replCommand([]string{"-no-such-flag"})
	if err == nil {
		t.Fatalf("expected flag error")
	}
}
