package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/glucosim/internal/catalog"
	"github.com/san-kum/glucosim/internal/config"
	"github.com/san-kum/glucosim/internal/curve"
	"github.com/san-kum/glucosim/internal/segment"
)

func (m Model) learnKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		m.showHelp = !m.showHelp
	case "esc", "L":
		m.screen = screenTracker
	case "left", "h":
		if m.module > 0 {
			m.module--
			m.item = 0
		}
	case "right", "l":
		if m.module < len(m.modules)-1 {
			m.module++
			m.item = 0
		}
	case "up", "k":
		if m.item > 0 {
			m.item--
		}
	case "down", "j":
		if mod, ok := m.currentModule(); ok && m.item < len(mod.Items)-1 {
			m.item++
		}
	case "t":
		m.cycleTheme()
	}
	return m, nil
}

func (m Model) currentModule() (catalog.Module, bool) {
	if m.module < 0 || m.module >= len(m.modules) {
		return catalog.Module{}, false
	}
	return m.modules[m.module], true
}

// LearningCurve plots one module item on its own, starting at the item's
// impact start.
func LearningCurve(it catalog.Item, cfg config.Config) []curve.Sample {
	norm := catalog.Normalize(it, cfg.Baseline, cfg.Defaults)
	return curve.Single(norm, norm.Onset(), cfg.Params())
}

func (m Model) learnView() string {
	cfg := m.session.Config()
	var b strings.Builder
	b.WriteString(GradientText("Learn · "+cfg.Title, m.theme.Primary, m.theme.Secondary) + "\n")

	mod, ok := m.currentModule()
	if !ok || len(mod.Items) == 0 {
		b.WriteString(m.st.muted.Render("No learning modules for this page.") + "\n\n")
		b.WriteString(m.st.keyHints("L", "back", "q", "quit") + "\n")
		return b.String()
	}

	nav := fmt.Sprintf("◀ %s %s ▶  (%d/%d)", mod.Icon, mod.Name, m.module+1, len(m.modules))
	b.WriteString(m.st.subtitle.Render(nav) + "\n")

	cols, rows := m.chartSize()
	p := newPlot(cols, rows, cfg)
	p.drawReferences(cfg.References)
	for i, it := range mod.Items {
		if i != m.item {
			p.drawDashedCurve(LearningCurve(it, cfg), string(m.theme.Compare))
		}
	}
	current := mod.Items[m.item]
	samples := LearningCurve(current, cfg)
	n := len(samples)
	p.drawSegments(segment.Colorize(samples,
		func(i int) float64 { return p.frame.IndexToPixel(i, n) },
		p.frame.ValueToPixel,
		cfg.Palette))

	for _, row := range p.rows(m.st, cfg.References) {
		b.WriteString(row + "\n")
	}
	b.WriteString(m.st.axis.Render(p.timeAxis(cfg.Window)) + "\n\n")

	for i, it := range mod.Items {
		line := fmt.Sprintf("%s %s", it.Icon, it.Label())
		if i == m.item {
			b.WriteString(m.st.cursor.Render("▸ "+line) + "\n")
		} else {
			b.WriteString(m.st.muted.Render("  "+line) + "\n")
		}
	}
	b.WriteString("\n")

	peak := samples[curve.Peak(samples)]
	detail := fmt.Sprintf("%s\n\npeaks at %s %s around %s",
		current.Description, formatValue(peak.Value), cfg.Unit, peak.Label)
	if mod.Instructions != "" {
		detail = mod.Instructions + "\n\n" + detail
	}
	if cfg.Disclaimer != "" {
		detail += "\n\n" + m.st.warning.Render(cfg.Disclaimer)
	}
	b.WriteString(m.st.panel.Width(cols+axisWidth-2).Render(detail) + "\n")
	b.WriteString(m.st.keyHints("h/l", "category", "j/k", "item", "t", "theme", "L", "back", "q", "quit") + "\n")
	return b.String()
}
