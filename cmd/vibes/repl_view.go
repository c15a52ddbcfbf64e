package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/mgomes/vecscript/heap"
	"github.com/mgomes/vecscript/vibes"
)

var (
	colorAccent = lipgloss.Color("#8B5CF6")
	colorOK     = lipgloss.Color("#22C55E")
	colorError  = lipgloss.Color("#F43F5E")
	colorMuted  = lipgloss.Color("#71717A")
	colorKey    = lipgloss.Color("#EAB308")

	promptStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	resultStyle = lipgloss.NewStyle().Foreground(colorOK)
	errorStyle  = lipgloss.NewStyle().Foreground(colorError)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	titleStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	keyStyle    = lipgloss.NewStyle().Foreground(colorKey)
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)
)

func (m replModel) View() string {
	if !m.initialized {
		return "Loading..."
	}
	if m.quitting {
		return mutedStyle.Render("bye\n")
	}

	var sections []string
	sections = append(sections,
		titleStyle.Render("vecscript")+" "+mutedStyle.Render(m.engine.ConfigSummary()),
		mutedStyle.Render(strings.Repeat("─", max(min(m.width-2, 60), 0))),
	)

	vars := m.userVars()
	var panels []string
	if m.showVars {
		panels = append(panels, renderVarsPanel(vars))
	}
	if m.showHelp {
		panels = append(panels, renderHelpPanel())
	}

	reserved := 6
	for _, p := range panels {
		reserved += lipgloss.Height(p)
	}
	sections = append(sections, m.renderHistory(m.height-reserved))
	sections = append(sections, panels...)
	sections = append(sections, m.textInput.View(), renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHistory renders the newest entries that fit in budget lines.
func (m replModel) renderHistory(budget int) string {
	var lines []string
	for _, entry := range m.history {
		if entry.input != "" {
			lines = append(lines, mutedStyle.Render("  › ")+entry.input)
		}
		style, mark := resultStyle, "→ "
		if entry.isErr {
			style, mark = errorStyle, "✗ "
		}
		for _, line := range strings.Split(entry.output, "\n") {
			lines = append(lines, "  "+style.Render(mark+line))
			mark = "  "
		}
	}
	if budget > 0 && len(lines) > budget {
		lines = lines[len(lines)-budget:]
	}
	return strings.Join(lines, "\n")
}

func renderFooter() string {
	bindings := []struct{ key, desc string }{
		{replKeys.ToggleHelp.Help().Key, replKeys.ToggleHelp.Help().Desc},
		{replKeys.ToggleVars.Help().Key, replKeys.ToggleVars.Help().Desc},
		{replKeys.Clear.Help().Key, replKeys.Clear.Help().Desc},
		{replKeys.Quit.Help().Key, replKeys.Quit.Help().Desc},
	}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, keyStyle.Render(b.key)+" "+mutedStyle.Render(b.desc))
	}
	return strings.Join(parts, "  ")
}

func renderPanel(title string, rows [][2]string) string {
	lines := []string{titleStyle.Render(title)}
	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r[0]))
	}
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("  %s  %s", keyStyle.Render(fmt.Sprintf("%-*s", width, r[0])), r[1]))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func renderVarsPanel(vars map[string]vibes.Value) string {
	if len(vars) == 0 {
		return panelStyle.Render(mutedStyle.Render("No variables defined"))
	}
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	slices.Sort(names)

	rows := make([][2]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, [2]string{name, vars[name].String()})
	}
	return renderPanel("Variables", rows)
}

func renderHeapPanel(stats heap.Stats) string {
	return renderPanel("Heap", [][2]string{
		{"live", humanize.IBytes(uint64(stats.Allocated))},
		{"objects", humanize.Comma(int64(stats.Objects))},
		{"freed", humanize.IBytes(uint64(stats.FreedBytes))},
		{"cycles", humanize.Comma(int64(stats.Cycles))},
		{"phase", stats.Phase.String()},
	})
}

func renderHelpPanel() string {
	rows := [][2]string{
		{replKeys.Prev.Help().Key + "/" + replKeys.Next.Help().Key, "Navigate input history"},
		{replKeys.Complete.Help().Key, "Autocomplete"},
		{replKeys.Submit.Help().Key, "Evaluate"},
	}
	for _, c := range replCommands {
		rows = append(rows, [2]string{c.names[0], c.help})
	}
	return renderPanel("Help", rows)
}
