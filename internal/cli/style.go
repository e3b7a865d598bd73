package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/passgen/passgen-go/internal/strength"
)

var scoreColors = [...]lipgloss.Color{
	"#ef4444", // red
	"#f59e0b", // amber
	"#eab308", // yellow
	"#84cc16", // lime
	"#10b981", // emerald
}

var (
	dimStyle      = lipgloss.NewStyle().Faint(true)
	passwordStyle = lipgloss.NewStyle().Bold(true)
)

// scoreColor returns the display color for a score; out-of-range scores
// are shown as the weakest.
func scoreColor(score int) lipgloss.Color {
	if score < 0 || score >= len(scoreColors) {
		return scoreColors[0]
	}
	return scoreColors[score]
}

const meterWidth = 20

// renderStrength formats a strength as a colored meter with its label.
func renderStrength(st strength.Strength) string {
	filled := int(st.Percentage / 100 * meterWidth)
	if filled > meterWidth {
		filled = meterWidth
	}
	if filled < 0 {
		filled = 0
	}

	color := lipgloss.NewStyle().Foreground(scoreColor(st.Score))
	meter := color.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", meterWidth-filled))
	label := color.Bold(true).Render(st.Rating)

	line := fmt.Sprintf("%s %s", meter, label)
	if st.CrackTime != "" {
		line += dimStyle.Render(fmt.Sprintf(" (cracked in %s)", st.CrackTime))
	}
	return line
}
