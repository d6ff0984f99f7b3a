package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spiffcs/todo/internal/constants"
	"github.com/spiffcs/todo/internal/format"
	"github.com/spiffcs/todo/internal/task"
)

// barEntry represents a single segment of a horizontal bar chart.
type barEntry struct {
	Label string
	Count int
	Style lipgloss.Style
}

// Partial block characters for sub-character resolution (1/8 to 8/8).
var partialBlocks = []string{"▏", "▎", "▍", "▌", "▋", "▊", "▉", "█"}

// renderBars renders one line per entry, scaled to the largest count.
func renderBars(entries []barEntry, barWidth int) []string {
	maxCount := 0
	maxLabel := 0
	for _, e := range entries {
		maxCount = max(maxCount, e.Count)
		maxLabel = max(maxLabel, len(e.Label))
	}
	if maxCount == 0 {
		return []string{dimStyle.Render("  ─")}
	}

	bw := max(barWidth, 4)

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		fracWidth := float64(e.Count) / float64(maxCount) * float64(bw)
		fullBlocks := int(fracWidth)
		remainder := fracWidth - float64(fullBlocks)

		bar := strings.Repeat("█", fullBlocks)
		if remainder >= 0.125 {
			bar += partialBlocks[min(int(remainder*8), 7)]
		}
		if bar == "" && e.Count > 0 {
			bar = partialBlocks[0]
		}

		label := fmt.Sprintf("%-*s", maxLabel, e.Label)
		lines = append(lines, fmt.Sprintf("%s %s %d", drawerLabelStyle.Render(label), e.Style.Render(bar), e.Count))
	}
	return lines
}

// renderDrawer renders the navigation drawer: current list and statistics.
func renderDrawer(filter task.FilterKind, stats *task.Stats, height int) string {
	var b strings.Builder

	b.WriteString(drawerTitleStyle.Render("Todo"))
	b.WriteString("\n\n")
	b.WriteString(drawerLabelStyle.Render("Viewing"))
	b.WriteString("\n")
	b.WriteString(filterActiveStyle.Render("  " + filter.Info().Label))
	b.WriteString("\n\n")
	b.WriteString(drawerLabelStyle.Render("Statistics"))
	b.WriteString("\n")

	if stats == nil {
		b.WriteString(dimStyle.Render("  loading..."))
		b.WriteString("\n")
	} else if stats.Total == 0 {
		b.WriteString(dimStyle.Render("  You have no tasks."))
		b.WriteString("\n")
	} else {
		for _, line := range renderBars([]barEntry{
			{Label: "Active", Count: stats.Active, Style: barActiveStyle},
			{Label: "Done", Count: stats.Completed, Style: barCompletedStyle},
		}, constants.DrawerWidth-18) {
			b.WriteString("  " + line + "\n")
		}
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  Active tasks: %.1f%%\n", stats.ActivePercent))
		b.WriteString(fmt.Sprintf("  Completed tasks: %.1f%%\n", stats.CompletedPercent))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("m/esc: close"))

	return drawerStyle.Width(constants.DrawerWidth).Height(max(height, 1)).Render(b.String())
}

// drawerOuterWidth is the number of columns the drawer takes including its border.
func drawerOuterWidth() int {
	return constants.DrawerWidth + drawerStyle.GetHorizontalBorderSize()
}

// renderDetail renders the read-only panel for a clicked task.
func renderDetail(t task.Task, now time.Time, width, height int) string {
	status := "Active"
	if t.IsCompleted {
		status = "Completed"
	}

	title := t.TitleForList()
	if title == "" {
		title = "(untitled)"
	}

	lines := []string{
		detailTitleStyle.Render(title),
		"",
	}
	if t.Description != "" && t.Description != title {
		lines = append(lines, t.Description, "")
	}
	lines = append(lines,
		drawerLabelStyle.Render("Status:  ")+status,
		drawerLabelStyle.Render("Created: ")+format.Since(t.CreatedAt, now),
		drawerLabelStyle.Render("ID:      ")+dimStyle.Render(t.ID),
		"",
		helpStyle.Render("esc: back"),
	)

	panel := detailStyle.Render(strings.Join(lines, "\n"))
	if width <= 0 || height <= 0 {
		return panel
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel)
}
