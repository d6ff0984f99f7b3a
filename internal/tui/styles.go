package tui

import "github.com/charmbracelet/lipgloss"

// Task list styles
var (
	topBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F1F5F9")).
			Bold(true)

	filterActiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#60A5FA")).
				Bold(true)

	filterInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#6B7280"))

	filterLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#CBD5E1"))

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E2E8F0"))

	rowDoneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Strikethrough(true)

	rowSelectedStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#334155")).
				Foreground(lipgloss.Color("#F1F5F9")).
				Bold(true)

	rowSelectedDoneStyle = rowSelectedStyle.
				Strikethrough(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60A5FA")).
			Bold(true)

	checkboxStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94A3B8"))

	checkboxDoneStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#22C55E"))

	emptyIconStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94A3B8")).
			Bold(true)

	emptyLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")).
			Italic(true)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B"))

	fabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0F172A")).
			Background(lipgloss.Color("#60A5FA")).
			Bold(true).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60A5FA"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// Drawer and detail panel styles
var (
	drawerStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color("#475569")).
			Padding(0, 1)

	drawerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#F1F5F9"))

	drawerLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#94A3B8"))

	barActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60A5FA"))

	barCompletedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#22C55E"))

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#60A5FA")).
			Padding(1, 2)

	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#F1F5F9"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)
