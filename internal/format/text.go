// Package format provides shared text formatting utilities for terminal output.
package format

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

// ansiRegex matches ANSI escape sequences
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// Ellipsis marks truncated text.
const Ellipsis = "..."

// combiningLongStroke overlays the preceding rune with a horizontal line.
const combiningLongStroke = '̶'

// StripAnsi removes ANSI escape sequences from a string.
func StripAnsi(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// DisplayWidth returns the visible width of s in terminal columns,
// ignoring ANSI escape sequences.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(StripAnsi(s))
}

// TruncateToWidth shortens plain text to at most maxWidth columns, ending
// it with "..." when cut. Returns the text and its visible width.
func TruncateToWidth(s string, maxWidth int) (string, int) {
	if maxWidth <= 0 {
		return "", 0
	}
	width := runewidth.StringWidth(s)
	if width <= maxWidth {
		return s, width
	}
	if maxWidth <= len(Ellipsis) {
		return Ellipsis[:maxWidth], maxWidth
	}

	target := maxWidth - len(Ellipsis)
	var b strings.Builder
	w := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if w+rw > target {
			break
		}
		b.WriteRune(r)
		w += rw
	}
	b.WriteString(Ellipsis)
	return b.String(), w + len(Ellipsis)
}

// PadRight pads a string with spaces to reach the target visible width.
func PadRight(s string, visibleWidth, targetWidth int) string {
	if visibleWidth >= targetWidth {
		return s
	}
	return s + strings.Repeat(" ", targetWidth-visibleWidth)
}

// Strike draws a line through s using combining characters, for output
// where SGR strike-through is unavailable. Spaces are left untouched.
func Strike(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3)
	for _, r := range s {
		b.WriteRune(r)
		if r != ' ' {
			b.WriteRune(combiningLongStroke)
		}
	}
	return b.String()
}

// Unstrike removes the marks added by Strike.
func Unstrike(s string) string {
	return strings.ReplaceAll(s, string(combiningLongStroke), "")
}
