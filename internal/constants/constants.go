// Package constants provides a centralized location for layout values and
// timings used throughout the todo application.
package constants

import "time"

// Screen layout constants
const (
	// HeaderLines is the number of lines above the first task row:
	// top bar, filter label, blank line.
	HeaderLines = 3

	// FooterLines is the number of lines below the last task row:
	// blank line, help line, status line. The status line is drawn even
	// when empty.
	FooterLines = 3

	// CheckboxWidth is the width of the "[x] " prefix including the
	// trailing space. Mouse clicks inside it toggle the task.
	CheckboxWidth = 4

	// CursorWidth is the width of the selection marker before the checkbox.
	CursorWidth = 2

	// DrawerWidth is the width of the navigation drawer.
	DrawerWidth = 28

	// MinTitleWidth is the smallest title column kept when the terminal
	// is narrow.
	MinTitleWidth = 10

	// DefaultWidth and DefaultHeight are used until the first WindowSizeMsg.
	DefaultWidth  = 80
	DefaultHeight = 24
)

// Timing constants
const (
	// UserMessageDuration is how long a transient message stays visible.
	UserMessageDuration = 2 * time.Second
)

// Table output column widths
const (
	ColStatus  = 6
	ColID      = 8
	ColTitle   = 50
	ColCreated = 6
)
