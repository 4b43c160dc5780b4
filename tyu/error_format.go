package tyu

import (
	"strconv"
	"strings"
)

// codeFrame renders the source line holding pos with a caret under its
// column. Tabs before the column are copied into the padding so the caret
// stays aligned however the terminal expands them. A position past the end
// of the last line is the end of input and is labelled as such.
func codeFrame(source string, pos Position) string {
	if source == "" || pos.Line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if pos.Line > len(lines) {
		return ""
	}
	line := []rune(strings.TrimSuffix(lines[pos.Line-1], "\r"))
	column := min(max(pos.Column, 1), len(line)+1)

	label := strconv.Itoa(pos.Line)
	var b strings.Builder
	b.WriteString(" " + label + " | " + string(line) + "\n")
	b.WriteString(" " + strings.Repeat(" ", len(label)) + " | ")
	for _, r := range line[:column-1] {
		if r == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteByte('^')
	if pos.Line == len(lines) && column > len(line) {
		b.WriteString(" end of input")
	}
	return b.String()
}
