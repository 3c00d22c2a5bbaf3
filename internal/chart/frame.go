package chart

import "math"

// Frame is the pixel rectangle a curve is drawn into. OriginY is the top edge;
// values grow upward from OriginY+Height-Padding.
type Frame struct {
	OriginX float64
	OriginY float64
	Width   float64
	Height  float64
	Padding float64
	YMin    float64
	YMax    float64
}

// ValueToPixel maps a value to a vertical pixel. Values outside [YMin, YMax]
// are pinned to the plot area.
func (f Frame) ValueToPixel(v float64) float64 {
	bottom := f.OriginY + f.Height - f.Padding
	plot := f.Height - 2*f.Padding
	span := f.YMax - f.YMin
	if span <= 0 || plot <= 0 || math.IsNaN(v) {
		return bottom
	}
	frac := math.Max(0, math.Min(1, (v-f.YMin)/span))
	return bottom - frac*plot
}

// PositionToPixel maps a normalized timeline position to a horizontal pixel.
func (f Frame) PositionToPixel(p float64) float64 {
	if math.IsNaN(p) {
		p = 0
	}
	return f.OriginX + math.Max(0, math.Min(1, p))*f.Width
}

// PixelToPosition maps a horizontal pixel back to a position in [0,1].
func (f Frame) PixelToPosition(x float64) float64 {
	if f.Width <= 0 || math.IsNaN(x) {
		return 0
	}
	return math.Max(0, math.Min(1, (x-f.OriginX)/f.Width))
}

// IndexToPixel places sample i of n evenly across the frame.
func (f Frame) IndexToPixel(i, n int) float64 {
	if n <= 1 {
		return f.OriginX
	}
	return f.PositionToPixel(float64(i) / float64(n-1))
}

// Inset returns the frame shrunk by the given margins.
func (f Frame) Inset(left, top, right, bottom float64) Frame {
	out := f
	out.OriginX += left
	out.OriginY += top
	out.Width = math.Max(0, f.Width-left-right)
	out.Height = math.Max(0, f.Height-top-bottom)
	return out
}

// WithRange returns the frame with a new vertical value range.
func (f Frame) WithRange(yMin, yMax float64) Frame {
	f.YMin, f.YMax = yMin, yMax
	return f
}

// Contains reports whether a pixel lies inside the frame.
func (f Frame) Contains(x, y float64) bool {
	return x >= f.OriginX && x <= f.OriginX+f.Width &&
		y >= f.OriginY && y <= f.OriginY+f.Height
}
