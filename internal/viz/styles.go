package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme of the live view.
type Theme struct {
	Name    string
	Heading lipgloss.Color
	Letter  lipgloss.Color
	Line    lipgloss.Color
	Accent  lipgloss.Color
	Muted   lipgloss.Color
}

var Themes = []Theme{
	{
		Name:    "ember",
		Heading: lipgloss.Color("#ffffff"),
		Letter:  lipgloss.Color("#ffc107"),
		Line:    lipgloss.Color("#ff6f00"),
		Accent:  lipgloss.Color("#ff9800"),
		Muted:   lipgloss.Color("#666666"),
	},
	{
		Name:    "retro",
		Heading: lipgloss.Color("#88ff88"),
		Letter:  lipgloss.Color("#00ff00"),
		Line:    lipgloss.Color("#005500"),
		Accent:  lipgloss.Color("#00cc00"),
		Muted:   lipgloss.Color("#005500"),
	},
	{
		Name:    "ocean",
		Heading: lipgloss.Color("#e0f7ff"),
		Letter:  lipgloss.Color("#00d4ff"),
		Line:    lipgloss.Color("#0066cc"),
		Accent:  lipgloss.Color("#00ffcc"),
		Muted:   lipgloss.Color("#446688"),
	},
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
)

// Sparkline renders the last width values as block characters.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int((v - lo) / rng * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))
		b.WriteRune(chars[idx])
	}
	return b.String()
}
