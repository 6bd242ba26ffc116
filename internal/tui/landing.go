package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var landingStats = []struct{ label, value string }{
	{"Athletes", "100+"},
	{"Teams", "10+"},
	{"Events", "5"},
}

// landingView is the signed-out front page: a pitch plus the two ways in.
func landingView(width int) string {
	headline := titleStyle.Render("Show your game. Get discovered.")
	blurb := dimStyle.Render("Profiles for athletes, simple team management for coaches,\nand clean event tools for organizers.")

	cell := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 2)
	cells := make([]string, 0, len(landingStats))
	for _, s := range landingStats {
		cells = append(cells, cell.Render(metaStyle.Render(s.label)+"\n"+sportStyle.Bold(true).Render(s.value)))
	}

	var b strings.Builder
	b.WriteString("\n " + headline + "\n\n")
	for _, line := range strings.Split(blurb, "\n") {
		b.WriteString(" " + line + "\n")
	}
	b.WriteString("\n " + sectionHeader("Fast stats") + "\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...) + "\n\n")
	b.WriteString(" " + helpEntry("a", "sign in or create profile") + "   " + helpEntry("3", "browse events") + "\n")

	if width > 0 {
		return lipgloss.NewStyle().MaxWidth(width).Render(b.String())
	}
	return b.String()
}
