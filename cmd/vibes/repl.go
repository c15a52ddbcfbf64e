package main

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/mgomes/vecscript/vibes"
)

type historyEntry struct {
	input  string
	output string
	isErr  bool
}

type replModel struct {
	textInput   textinput.Model
	engine      *vibes.Engine
	state       *vibes.State
	history     []historyEntry
	cmdHistory  []string
	historyIdx  int
	width       int
	height      int
	showHelp    bool
	showVars    bool
	quitting    bool
	initialized bool
}

type replKeyMap struct {
	Quit       key.Binding
	Clear      key.Binding
	ToggleVars key.Binding
	ToggleHelp key.Binding
	Prev       key.Binding
	Next       key.Binding
	Complete   key.Binding
	Submit     key.Binding
}

var replKeys = replKeyMap{
	Quit:       key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d"), key.WithHelp("ctrl+c", "quit")),
	Clear:      key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
	ToggleVars: key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "vars")),
	ToggleHelp: key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "help")),
	Prev:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous input")),
	Next:       key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next input")),
	Complete:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete")),
	Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
}

// colonCommand is a REPL command such as :gc. run returns the command to
// hand back to the bubbletea runtime, usually nil.
type colonCommand struct {
	names []string
	help  string
	run   func(m *replModel, input string) tea.Cmd
}

var replCommands = []colonCommand{
	{names: []string{":help", ":h"}, help: "Toggle this help", run: func(m *replModel, _ string) tea.Cmd {
		m.showHelp = !m.showHelp
		return nil
	}},
	{names: []string{":vars", ":v"}, help: "Toggle variables panel", run: func(m *replModel, _ string) tea.Cmd {
		m.showVars = !m.showVars
		return nil
	}},
	{names: []string{":gc"}, help: "Run a full collection", run: (*replModel).collect},
	{names: []string{":clear", ":c"}, help: "Clear history", run: func(m *replModel, _ string) tea.Cmd {
		m.history = nil
		return nil
	}},
	{names: []string{":reset", ":r"}, help: "Start over with a fresh state", run: (*replModel).reset},
	{names: []string{":quit", ":q"}, help: "Exit", run: func(m *replModel, _ string) tea.Cmd {
		m.quitting = true
		return tea.Quit
	}},
}

var replKeywords = []string{"if", "elsif", "else", "end", "for", "in", "true", "false", "nil"}

func lookupCommand(name string) (colonCommand, bool) {
	for _, c := range replCommands {
		if slices.Contains(c.names, name) {
			return c, true
		}
	}
	return colonCommand{}, false
}

func newREPLModel(engine *vibes.Engine) (replModel, error) {
	st, err := engine.NewState()
	if err != nil {
		return replModel{}, err
	}

	ti := textinput.New()
	ti.Prompt = "vec> "
	ti.PromptStyle = promptStyle
	ti.Placeholder = "expression or :help"
	ti.CharLimit = 1000
	ti.Width = 60
	ti.Focus()

	return replModel{
		textInput:  ti,
		engine:     engine,
		state:      st,
		historyIdx: -1,
	}, nil
}

func (m replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.textInput.Width = max(msg.Width-10, 10)
		m.initialized = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, replKeys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, replKeys.Clear):
			m.history = nil
			return m, nil
		case key.Matches(msg, replKeys.ToggleVars):
			m.showVars = !m.showVars
			return m, nil
		case key.Matches(msg, replKeys.ToggleHelp):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, replKeys.Prev):
			m.recall(-1)
			return m, nil
		case key.Matches(msg, replKeys.Next):
			m.recall(1)
			return m, nil
		case key.Matches(msg, replKeys.Complete):
			return m.handleAutocomplete(), nil
		case key.Matches(msg, replKeys.Submit):
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m replModel) submit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textInput.Value())
	if input == "" {
		return m, nil
	}
	m.textInput.SetValue("")
	m.historyIdx = -1

	if strings.HasPrefix(input, ":") {
		name := strings.Fields(input)[0]
		c, ok := lookupCommand(name)
		if !ok {
			m.appendOutput(input, "Unknown command: "+name, true)
			return m, nil
		}
		cmd := c.run(&m, input)
		return m, cmd
	}

	output, isErr := m.evaluate(input)
	m.appendOutput(input, output, isErr)
	m.cmdHistory = append(m.cmdHistory, input)
	return m, nil
}

// recall moves through previously submitted inputs. Moving past the newest
// entry clears the prompt.
func (m *replModel) recall(delta int) {
	if len(m.cmdHistory) == 0 {
		return
	}
	switch {
	case m.historyIdx == -1 && delta < 0:
		m.historyIdx = len(m.cmdHistory) - 1
	case m.historyIdx == -1:
		return
	default:
		m.historyIdx += delta
	}
	switch {
	case m.historyIdx < 0:
		m.historyIdx = 0
	case m.historyIdx >= len(m.cmdHistory):
		m.historyIdx = -1
		m.textInput.SetValue("")
		return
	}
	m.textInput.SetValue(m.cmdHistory[m.historyIdx])
	m.textInput.CursorEnd()
}

func (m *replModel) appendOutput(input, output string, isErr bool) {
	m.history = append(m.history, historyEntry{input: input, output: output, isErr: isErr})
}

func (m *replModel) collect(input string) tea.Cmd {
	freed := m.state.Collect()
	m.appendOutput(input, fmt.Sprintf("freed %s\n%s", humanize.IBytes(uint64(freed)), renderHeapPanel(m.state.HeapStats())), false)
	return nil
}

func (m *replModel) reset(input string) tea.Cmd {
	st, err := m.engine.NewState()
	if err != nil {
		m.appendOutput(input, err.Error(), true)
		return nil
	}
	m.state.Close()
	m.state = st
	m.appendOutput(input, "State reset", false)
	return nil
}

func (m replModel) handleAutocomplete() replModel {
	input := m.textInput.Value()
	words := strings.Fields(input)
	if len(words) == 0 {
		return m
	}
	last := words[len(words)-1]

	var matches []string
	for _, name := range m.completionCandidates() {
		if strings.HasPrefix(name, last) {
			matches = append(matches, name)
		}
	}

	switch len(matches) {
	case 0:
	case 1:
		m.textInput.SetValue(strings.TrimSuffix(input, last) + matches[0])
		m.textInput.CursorEnd()
	default:
		m.appendOutput("", "Completions: "+strings.Join(matches, ", "), false)
	}
	return m
}

// completionCandidates lists keywords, globals and the fields of global
// tables such as vec.
func (m replModel) completionCandidates() []string {
	candidates := slices.Clone(replKeywords)
	for name, val := range m.state.Globals() {
		candidates = append(candidates, name)
		if t := val.Table(); t != nil {
			for _, field := range t.Keys() {
				candidates = append(candidates, name+"."+field)
			}
		}
	}
	slices.Sort(candidates)
	return slices.Compact(candidates)
}

// evaluate runs input in the session State. The result is bound to _ so
// it survives collection between inputs.
func (m replModel) evaluate(input string) (string, bool) {
	script, err := m.engine.Compile(input)
	if err != nil {
		return err.Error(), true
	}

	result, err := script.Run(context.Background(), m.state)
	if err != nil {
		return err.Error(), true
	}
	m.state.SetGlobal("_", result)
	m.state.SetTop(0)

	switch {
	case result.IsNil():
		return "nil", false
	case result.Kind() == vibes.KindString:
		return fmt.Sprintf("%q", result.String()), false
	default:
		return result.String(), false
	}
}

// userVars returns the globals defined in the session, leaving out
// builtins and libraries.
func (m replModel) userVars() map[string]vibes.Value {
	builtins := m.engine.Builtins()
	vars := make(map[string]vibes.Value)
	for name, val := range m.state.Globals() {
		if _, ok := builtins[name]; ok || name == "vec" {
			continue
		}
		vars[name] = val
	}
	return vars
}

func runREPL(engine *vibes.Engine) error {
	m, err := newREPLModel(engine)
	if err != nil {
		return err
	}
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if rm, ok := final.(replModel); ok {
		rm.state.Close()
	} else {
		m.state.Close()
	}
	return err
}
