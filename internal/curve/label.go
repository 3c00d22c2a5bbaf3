package curve

import (
	"fmt"
	"math"
)

// Label formats the clock time offset hours after startHour, e.g. "12 PM" or
// "12:15 PM". Times past midnight wrap.
func Label(startHour, offset float64) string {
	total := int(math.Round((startHour + offset) * 60))
	total = ((total % (24 * 60)) + 24*60) % (24 * 60)
	hour, minute := total/60, total%60

	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	if minute == 0 {
		return fmt.Sprintf("%d %s", display, period)
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, period)
}

// HourLabels returns one label per whole hour of the window, both ends
// included.
func HourLabels(w Window) []string {
	span := int(math.Floor(Span(w)))
	labels := make([]string, 0, span+1)
	for h := 0; h <= span; h++ {
		labels = append(labels, Label(w.StartHour, float64(h)))
	}
	return labels
}
