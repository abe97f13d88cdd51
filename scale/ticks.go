package scale

import (
	chart "github.com/wcharczuk/go-chart/v2"
)

// PriceTicks returns round values inside r for horizontal grid lines, at
// most one every minSpacing pixels of a surface height pixels tall.
func PriceTicks(r PriceRange, height, minSpacing float64) []float64 {
	span := r.Span()
	if !(span > 0) || !(height > 0) || !(minSpacing > 0) {
		return nil
	}
	maxTicks := Floor(height / minSpacing)
	if maxTicks < 1 {
		return nil
	}
	step := niceStep(span / maxTicks)
	if !(step > 0) {
		return nil
	}
	first := chart.RoundUp(r.Min, step)
	var ticks []float64
	for i := 0; ; i++ {
		v := first + float64(i)*step
		if v > r.Max {
			break
		}
		ticks = append(ticks, v)
	}
	return ticks
}

// niceStep picks the smallest of 1, 2, 5 or 10 times a power of ten that is
// not below raw.
func niceStep(raw float64) float64 {
	magnitude := chart.GetRoundToForDelta(raw) * 10
	if magnitude == 0 {
		return raw
	}
	for _, m := range []float64{1, 2, 5, 10} {
		if m*magnitude >= raw {
			return m * magnitude
		}
	}
	return 10 * magnitude
}

var timeSteps = []float64{
	1, 2, 5, 10, 15, 30,
	60, 2 * 60, 5 * 60, 15 * 60, 30 * 60,
	3600, 2 * 3600, 3 * 3600, 6 * 3600, 12 * 3600,
	86400, 2 * 86400, 7 * 86400, 30 * 86400, 91 * 86400, 365 * 86400,
}

// TimeTicks returns times inside r for vertical grid lines, at most one
// every minSpacing pixels of a surface width pixels wide. Ticks fall on
// multiples of a calendar-friendly step.
func TimeTicks(r TimeRange, width, minSpacing float64) []Time {
	span := r.Span()
	if !(span > 0) || !(width > 0) || !(minSpacing > 0) {
		return nil
	}
	maxTicks := Floor(width / minSpacing)
	if maxTicks < 1 {
		return nil
	}
	raw := span / maxTicks
	step := timeSteps[len(timeSteps)-1]
	for _, s := range timeSteps {
		if s >= raw {
			step = s
			break
		}
	}
	for step < raw {
		step *= 2
	}
	from, to := r.From.Seconds(), r.To.Seconds()
	first := chart.RoundUp(from, step)
	var ticks []Time
	for i := 0; ; i++ {
		v := first + float64(i)*step
		if v > to {
			break
		}
		ticks = append(ticks, Timestamp(v))
	}
	return ticks
}
