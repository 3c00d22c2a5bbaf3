package viz

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/glucosim/internal/catalog"
	"github.com/san-kum/glucosim/internal/curve"
	"github.com/san-kum/glucosim/internal/engine"
	"github.com/san-kum/glucosim/internal/interact"
)

const catalogRows = 8

func (m Model) trackerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.searchKey(msg)
	}
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		m.showHelp = !m.showHelp
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.toggleCursorItem()
	case "/":
		m.searching = true
		return m, tea.Batch(m.search.Focus(), textinput.Blink)
	case "tab":
		if n := m.session.Len(); n > 0 {
			m.focus = (m.focus + 1) % n
		}
	case "shift+tab":
		if n := m.session.Len(); n > 0 {
			m.focus = (m.focus + n - 1) % n
		}
	case "left", "h":
		m.nudge(-1)
	case "right", "l":
		m.nudge(1)
	case "x", "delete", "backspace":
		if id, ok := m.focusedID(); ok {
			m.session.Deselect(id)
			m.clampFocus()
		}
	case "i":
		if id, ok := m.focusedID(); ok {
			m.session.ToggleInspect(id)
		}
	case "esc":
		m.session.ClearInspect()
		m.ctrl.Cancel()
	case "r":
		m.session.Reset()
		m.ctrl.Cancel()
		m.focus = 0
	case "t":
		m.cycleTheme()
	case "L":
		m.screen = screenLearn
	}
	return m, nil
}

func (m Model) searchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.refilter()
		return m, nil
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refilter()
	return m, cmd
}

func (m *Model) refilter() {
	m.items = m.catalog.Search(m.search.Value())
	m.cursor = max(0, min(m.cursor, len(m.items)-1))
}

func (m *Model) toggleCursorItem() {
	if m.cursor >= len(m.items) {
		return
	}
	it := m.items[m.cursor]
	if !m.session.IsSelected(it.ID) && m.session.Full() {
		m.status = fmt.Sprintf("timeline full: remove an item first (max %d)", m.session.Config().MaxSelected)
		return
	}
	m.session.Select(it)
	if m.session.IsSelected(it.ID) {
		m.focus = m.session.Len() - 1
	}
	m.clampFocus()
}

func (m *Model) clampFocus() {
	m.focus = max(0, min(m.focus, m.session.Len()-1))
}

func (m Model) focusedID() (string, bool) {
	sel := m.session.Selection()
	if m.focus < 0 || m.focus >= len(sel) {
		return "", false
	}
	return sel[m.focus].ID, true
}

// nudge moves the focused marker by whole samples.
func (m *Model) nudge(dir int) {
	id, ok := m.focusedID()
	if !ok {
		return
	}
	n := curve.Len(m.session.Config().Params())
	if n < 2 {
		return
	}
	p, _ := m.session.Position(id)
	m.session.Retime(id, p+float64(dir)/float64(n-1))
}

func (m Model) hits() []interact.Hit {
	f := m.ctrl.Frame()
	markers := m.session.Markers()
	hits := make([]interact.Hit, len(markers))
	for i, mk := range markers {
		hits[i] = interact.Hit{ID: mk.Item.ID, X: f.PositionToPixel(mk.Position)}
	}
	return hits
}

// trackerMouse feeds pointer events to the interaction controller. Cell
// columns are converted to the dot column at the cell center.
func (m Model) trackerMouse(msg tea.MouseMsg) Model {
	_, rows := m.chartSize()
	lane := chartTop + rows + 1
	x := float64((msg.X-axisWidth)*2 + 1)
	ev := interact.Event{Source: interact.Mouse, X: x, Y: float64(msg.Y)}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || msg.Y < chartTop || msg.Y > lane {
			return m
		}
		ev.Kind = interact.Press
		ev.Target, _ = m.ctrl.HitTest(x, m.hits())
		if ev.Target != "" {
			for i, it := range m.session.Selection() {
				if it.ID == ev.Target {
					m.focus = i
				}
			}
		}
	case tea.MouseActionMotion:
		ev.Kind = interact.Move
	case tea.MouseActionRelease:
		ev.Kind = interact.Release
	default:
		return m
	}
	m.ctrl.Handle(ev)
	return m
}

func (m Model) trackerView() string {
	cfg := m.session.Config()
	cols, rows := m.chartSize()
	p := newPlot(cols, rows, cfg)
	p.drawReferences(cfg.References)
	p.drawSegments(m.session.Segments(p.frame))
	markers := m.session.Markers()
	for _, mk := range markers {
		p.drawStem(mk.Position, mk.Value, cfg.Palette.Classify(mk.Value))
	}

	var b strings.Builder
	b.WriteString(GradientText(cfg.Title, m.theme.Primary, m.theme.Secondary))
	b.WriteString(m.st.muted.Render(fmt.Sprintf("  %s  %s to %s", cfg.Unit,
		curve.Label(cfg.Window.StartHour, 0), curve.Label(cfg.Window.StartHour, curve.Span(cfg.Window)))) + "\n")
	if m.status != "" {
		b.WriteString(m.st.warning.Render(m.status) + "\n")
	} else {
		b.WriteString(m.st.hint.Render(fmt.Sprintf("%d/%d items on the timeline", m.session.Len(), cfg.MaxSelected)) + "\n")
	}
	for _, row := range p.rows(m.st, cfg.References) {
		b.WriteString(row + "\n")
	}
	b.WriteString(m.st.axis.Render(p.timeAxis(cfg.Window)) + "\n")
	b.WriteString(m.lane(cols, markers) + "\n\n")

	width := cols + axisWidth - 2
	b.WriteString(m.st.panel.Width(width).Render(m.st.text.Render(m.session.Narrative())) + "\n")

	inspected, _ := m.session.Inspected()
	for i, mk := range markers {
		line := fmt.Sprintf(" %d  %-18s %-9s %s %s", i+1, truncate(mk.Item.Label(), 18),
			curve.Label(cfg.Window.StartHour, mk.Hour), formatValue(mk.Value), cfg.Unit)
		if i == m.focus {
			line = m.st.focused.Render(line)
		} else {
			line = m.st.text.Render(line)
		}
		if mk.Item.ID == inspected.ID {
			line += m.st.key.Render("  ◉")
		}
		b.WriteString(line + "\n")
	}
	b.WriteString(m.st.separator(width) + "\n")

	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View() + "\n")
	}
	b.WriteString(m.catalogView())
	b.WriteString("\n" + m.st.keyHints("enter", "add", "/", "search", "tab", "focus", "h/l", "move", "x", "remove", "L", "learn", "?", "help") + "\n")
	return b.String()
}

// lane renders the marker row under the chart: the marker's number at its
// column, colored by the zone of the curve under it.
func (m Model) lane(cols int, markers []engine.Marker) string {
	cells := make([]string, cols)
	for i := range cells {
		cells[i] = m.st.axis.Render("·")
	}
	armed, _ := m.ctrl.Armed()
	cfg := m.session.Config()
	f := m.ctrl.Frame()
	for i, mk := range markers {
		col := dot(f.PositionToPixel(mk.Position)) / 2
		if col < 0 || col >= cols {
			continue
		}
		style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(cfg.Palette.Classify(mk.Value)))
		if i == m.focus || mk.Item.ID == armed {
			style = style.Reverse(true)
		}
		cells[col] = style.Render(strconv.Itoa(i + 1))
	}
	return strings.Repeat(" ", axisWidth) + strings.Join(cells, "")
}

func (m Model) catalogView() string {
	if len(m.items) == 0 {
		return m.st.muted.Render("  no items match") + "\n"
	}
	start := max(0, min(m.cursor-catalogRows/2, len(m.items)-catalogRows))
	end := min(len(m.items), start+catalogRows)

	var b strings.Builder
	for i := start; i < end; i++ {
		it := m.items[i]
		mark := " "
		if m.session.IsSelected(it.ID) {
			mark = "✓"
		}
		line := fmt.Sprintf("%s %-20s %-8s %s", mark, truncate(it.Label(), 20), effectLabel(it), it.Category)
		if i == m.cursor {
			b.WriteString(m.st.cursor.Render("▸ "+line) + "\n")
		} else {
			b.WriteString(m.st.muted.Render("  "+line) + "\n")
		}
	}
	return b.String()
}

func effectLabel(it catalog.Item) string {
	switch {
	case it.Magnitude != nil:
		return fmt.Sprintf("%+g", *it.Magnitude)
	case it.PeakValue != nil:
		return fmt.Sprintf("^%g", *it.PeakValue)
	}
	return "0"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
