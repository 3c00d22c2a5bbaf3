package viz

import (
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/glucosim/internal/chart"
	"github.com/san-kum/glucosim/internal/config"
	"github.com/san-kum/glucosim/internal/curve"
	"github.com/san-kum/glucosim/internal/segment"
)

const axisWidth = 7

// plot is a chart drawn on a Braille canvas. Its frame is in dot units so
// curve geometry maps one to one onto canvas dots.
type plot struct {
	canvas *Canvas
	frame  chart.Frame
}

func newPlot(cols, rows int, cfg config.Config) plot {
	return plot{
		canvas: NewCanvas(cols, rows),
		frame:  dotFrame(cols, rows, cfg),
	}
}

// dotFrame is the frame of a cols x rows canvas in dot units.
func dotFrame(cols, rows int, cfg config.Config) chart.Frame {
	return chart.Frame{
		Width:   float64(max(cols*2-1, 0)),
		Height:  float64(max(rows*4-1, 0)),
		Padding: 1,
		YMin:    cfg.Chart.YMin,
		YMax:    cfg.Chart.YMax,
	}
}

func dot(v float64) int { return int(math.Round(v)) }

func (p plot) drawReferences(refs []segment.Rule) {
	right := dot(p.frame.OriginX + p.frame.Width)
	for _, r := range refs {
		y := dot(p.frame.ValueToPixel(r.Value))
		p.canvas.DrawDashed(dot(p.frame.OriginX), y, right, y, r.Color, 2, 2)
	}
}

func (p plot) drawSegments(segs []segment.Segment) {
	for _, s := range segs {
		for i := 1; i < len(s.Points); i++ {
			a, b := s.Points[i-1], s.Points[i]
			p.canvas.DrawLine(dot(a.X), dot(a.Y), dot(b.X), dot(b.Y), s.Color)
		}
	}
}

// drawDashedCurve draws a comparison curve in one muted color.
func (p plot) drawDashedCurve(samples []curve.Sample, color string) {
	n := len(samples)
	for i := 1; i < n; i++ {
		if i%2 == 0 {
			continue
		}
		x0, y0 := p.frame.IndexToPixel(i-1, n), p.frame.ValueToPixel(samples[i-1].Value)
		x1, y1 := p.frame.IndexToPixel(i, n), p.frame.ValueToPixel(samples[i].Value)
		p.canvas.DrawLine(dot(x0), dot(y0), dot(x1), dot(y1), color)
	}
}

// drawStem anchors a marker to the curve with a dashed vertical line.
func (p plot) drawStem(position, value float64, color string) {
	x := dot(p.frame.PositionToPixel(position))
	top := dot(p.frame.ValueToPixel(value))
	bottom := dot(p.frame.OriginY + p.frame.Height)
	p.canvas.DrawDashed(x, top, x, bottom, color, 1, 1)
	p.canvas.Set(x-1, top, color)
	p.canvas.Set(x+1, top, color)
}

// rows renders the canvas with a value axis on the left.
func (p plot) rows(st styles, refs []segment.Rule) []string {
	labels := make(map[int]string)
	put := func(v float64) {
		row := dot(p.frame.ValueToPixel(v)) / 4
		if _, taken := labels[row]; !taken {
			labels[row] = formatValue(v)
		}
	}
	put(p.frame.YMax)
	put(p.frame.YMin)
	for _, r := range refs {
		put(r.Value)
	}

	body := p.canvas.Rows()
	out := make([]string, len(body))
	for i, line := range body {
		label := strings.Repeat(" ", axisWidth-1)
		if l, ok := labels[i]; ok {
			label = padLeft(l, axisWidth-1)
		}
		out[i] = st.axis.Render(label+"┤") + line
	}
	return out
}

// timeAxis spreads hour labels under the canvas columns.
func (p plot) timeAxis(w curve.Window) string {
	line := []rune(strings.Repeat(" ", p.canvas.Width+axisWidth))
	labels := curve.HourLabels(w)
	span := curve.Span(w)
	next := 0
	for h, label := range labels {
		col := axisWidth + dot(p.frame.PositionToPixel(float64(h)/span))/2
		col = min(col, len(line)-len(label))
		if col < next || col < 0 {
			continue
		}
		copy(line[col:], []rune(label))
		next = col + len(label) + 1
	}
	return string(line)
}

func formatValue(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if len(s) > axisWidth-1 {
		s = strconv.FormatFloat(v, 'f', 1, 64)
	}
	return s
}

func padLeft(s string, w int) string {
	if len(s) >= w {
		return s[:w]
	}
	return strings.Repeat(" ", w-len(s)) + s
}
