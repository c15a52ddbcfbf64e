package vibes

import (
	"fmt"
	"strings"
)

// formatCodeFrame renders the source line at pos, preceded by the line
// before it when there is one, with a caret under the column.
func formatCodeFrame(source string, pos Position) string {
	if source == "" || pos.Line <= 0 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if pos.Line > len(lines) {
		return ""
	}

	text := lines[pos.Line-1]
	column := min(max(pos.Column, 1), len([]rune(text))+1)
	width := len(fmt.Sprint(pos.Line))

	var b strings.Builder
	fmt.Fprintf(&b, "  --> line %d, column %d\n", pos.Line, column)
	if pos.Line > 1 {
		fmt.Fprintf(&b, " %*d | %s\n", width, pos.Line-1, lines[pos.Line-2])
	}
	fmt.Fprintf(&b, " %*d | %s\n", width, pos.Line, text)
	fmt.Fprintf(&b, " %*s | %s^", width, "", strings.Repeat(" ", column-1))
	return b.String()
}
