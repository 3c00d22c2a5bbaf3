package interact

import "math"

// Hit is a marker's horizontal pixel position on the lane.
type Hit struct {
	ID string
	X  float64
}

// HitTest returns the marker nearest to x within HitRadius. Ties go to the
// later marker, which is drawn on top.
func (c *Controller) HitTest(x float64, markers []Hit) (string, bool) {
	best, dist := "", math.Inf(1)
	for _, m := range markers {
		d := math.Abs(m.X - x)
		if d <= c.HitRadius && d <= dist {
			best, dist = m.ID, d
		}
	}
	return best, best != ""
}
