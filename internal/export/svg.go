package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/glucosim/internal/chart"
	"github.com/san-kum/glucosim/internal/curve"
	"github.com/san-kum/glucosim/internal/engine"
)

const (
	svgMarginLeft   = 44.0
	svgMarginTop    = 28.0
	svgMarginBottom = 48.0
	svgBackground   = "#ffffff"
	svgAxisColor    = "#64748b"
)

// SVGFrame is the frame the plot area occupies inside an SVG document.
func SVGFrame(s *engine.Session) chart.Frame {
	f := s.Config().Frame()
	f.OriginX = svgMarginLeft
	f.OriginY = svgMarginTop
	return f
}

// SVG draws the session's reference lines, colored curve segments and
// markers as a standalone SVG document.
func SVG(s *engine.Session) string {
	cfg := s.Config()
	f := SVGFrame(s)
	width := f.OriginX + f.Width + f.Padding
	height := f.OriginY + f.Height + svgMarginBottom

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f" font-family="sans-serif" font-size="11">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, svgBackground))
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="18" font-size="14" font-weight="bold">%s</text>
`, f.OriginX, html.EscapeString(cfg.Title)))

	left, right := f.OriginX, f.OriginX+f.Width
	for _, r := range cfg.References {
		y := f.ValueToPixel(r.Value)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-dasharray="4 4"/>
`, left, y, right, y, r.Color))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" text-anchor="end" fill="%s">%s</text>
`, left-4, y+4, svgAxisColor, formatNumber(r.Value)))
	}

	for _, seg := range s.Segments(f) {
		if len(seg.Points) < 2 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="2.5" stroke-linejoin="round" d="M`, seg.Color))
		for i, p := range seg.Points {
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", p.X, p.Y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", p.X, p.Y))
			}
		}
		sb.WriteString(`"/>
`)
	}

	axisY := f.OriginY + f.Height
	sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>
`, left, axisY, right, axisY, svgAxisColor))
	span := curve.Span(cfg.Window)
	for h, label := range curve.HourLabels(cfg.Window) {
		x := f.PositionToPixel(float64(h) / span)
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" text-anchor="middle" fill="%s">%s</text>
`, x, axisY+14, svgAxisColor, label))
	}

	for i, mk := range s.Markers() {
		x := f.PositionToPixel(mk.Position)
		y := f.ValueToPixel(mk.Value)
		color := cfg.Palette.Classify(mk.Value)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-dasharray="2 3"/>
`, x, y, x, axisY+20, color))
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="4" fill="%s"/>
`, x, y, color))
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="9" fill="%s"/>
<text x="%.1f" y="%.1f" text-anchor="middle" fill="#ffffff" font-weight="bold">%d</text>
<title>%s</title>
`, x, axisY+30, color, x, axisY+34, i+1, html.EscapeString(mk.Item.Label())))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func formatNumber(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
