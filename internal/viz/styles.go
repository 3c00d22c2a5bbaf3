package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles are derived from the active theme on every theme switch.
type styles struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	text     lipgloss.Style
	muted    lipgloss.Style
	axis     lipgloss.Style
	key      lipgloss.Style
	hint     lipgloss.Style
	cursor   lipgloss.Style
	selected lipgloss.Style
	focused  lipgloss.Style
	warning  lipgloss.Style
	panel    lipgloss.Style
	help     lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		subtitle: lipgloss.NewStyle().Foreground(t.Secondary),
		text:     lipgloss.NewStyle().Foreground(t.Text),
		muted:    lipgloss.NewStyle().Foreground(t.Muted),
		axis:     lipgloss.NewStyle().Foreground(t.Axis),
		key:      lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		hint:     lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		cursor:   lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		selected: lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		focused:  lipgloss.NewStyle().Bold(true).Foreground(t.Text).Background(t.Axis),
		warning:  lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Axis).
			Padding(0, 1),
		help: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(t.Accent).
			Padding(1, 2),
	}
}

// keyHints renders "key action" pairs separated by two spaces.
func (s styles) keyHints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(s.key.Render(pairs[i]) + s.muted.Render(" "+pairs[i+1]))
	}
	return b.String()
}

func (s styles) separator(width int) string {
	if width < 8 {
		return s.axis.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-2)
	right := strings.Repeat("─", width-mid-3)
	return s.axis.Render(left + " ◆ " + right)
}

// GradientText colors each rune of text along a gradient between two colors.
func GradientText(text string, startColor, endColor lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	sr, sg, sb := parseHex(string(startColor))
	er, eg, eb := parseHex(string(endColor))

	var result strings.Builder
	n := len(runes)
	for i, c := range runes {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		r := int(float64(sr) + t*float64(er-sr))
		g := int(float64(sg) + t*float64(eg-sg))
		b := int(float64(sb) + t*float64(eb-sb))
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(r, g, b)))
		result.WriteString(style.Render(string(c)))
	}
	return result.String()
}

func parseHex(hex string) (r, g, b int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 255, 255, 255
	}
	return parseHexByte(hex[1:3]), parseHexByte(hex[3:5]), parseHexByte(hex[5:7])
}

func parseHexByte(s string) int {
	var val int
	for _, c := range s {
		val *= 16
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += int(c - 'A' + 10)
		}
	}
	return val
}

func hexColor(r, g, b int) string {
	return "#" + hexByte(r) + hexByte(g) + hexByte(b)
}

func hexByte(v int) string {
	v = max(0, min(255, v))
	const hex = "0123456789abcdef"
	return string(hex[v/16]) + string(hex[v%16])
}
