// Package scale maps chart data space (time, price) onto pixels.
package scale

import (
	"math"

	"golang.org/x/exp/constraints"
)

// TimeRange is a span of the horizontal scale.
type TimeRange struct {
	From, To Time
}

// Span returns the length of the range in seconds.
func (r TimeRange) Span() float64 {
	return r.To.Seconds() - r.From.Seconds()
}

// Contains reports whether t lies inside the closed range.
func (r TimeRange) Contains(t Time) bool {
	s := t.Seconds()
	return s >= r.From.Seconds() && s <= r.To.Seconds()
}

// PriceRange is a span of the vertical scale.
type PriceRange struct {
	Min, Max float64
}

// Span returns Max-Min.
func (r PriceRange) Span() float64 {
	return r.Max - r.Min
}

// Union returns the smallest range covering both r and o.
func (r PriceRange) Union(o PriceRange) PriceRange {
	return PriceRange{Min: min(r.Min, o.Min), Max: max(r.Max, o.Max)}
}

// TimeToX maps t onto [0,width] given the visible range. A range whose end
// does not lie after its start maps every time to 0.
func TimeToX(t Time, r TimeRange, width float64) float64 {
	from := r.From.Seconds()
	span := r.To.Seconds() - from
	if !(span > 0) {
		return 0
	}
	return round((t.Seconds() - from) / span * width)
}

// ValueToY maps value onto [0,height] with larger values towards the top of
// the surface.
func ValueToY(value float64, r PriceRange, height float64) float64 {
	return ValueToYOriented(value, r, height, true)
}

// ValueToYOriented is ValueToY with an explicit orientation. When invert is
// false the minimum maps to 0 instead of height. A range with Max <= Min maps
// every value to 0.
func ValueToYOriented(value float64, r PriceRange, height float64, invert bool) float64 {
	span := r.Max - r.Min
	if !(span > 0) {
		return 0
	}
	ratio := (value - r.Min) / span
	if invert {
		return round(height - ratio*height)
	}
	return round(ratio * height)
}

// XToTime is the inverse of TimeToX, without rounding.
func XToTime(x float64, r TimeRange, width float64) Time {
	from := r.From.Seconds()
	span := r.To.Seconds() - from
	if !(span > 0) || !(width > 0) {
		return r.From
	}
	return Timestamp(from + x/width*span)
}

// YToValue is the inverse of ValueToY, without rounding.
func YToValue(y float64, r PriceRange, height float64) float64 {
	return YToValueOriented(y, r, height, true)
}

// YToValueOriented is the inverse of ValueToYOriented.
func YToValueOriented(y float64, r PriceRange, height float64, invert bool) float64 {
	span := r.Max - r.Min
	if !(span > 0) || !(height > 0) {
		return r.Min
	}
	if invert {
		y = height - y
	}
	return r.Min + y/height*span
}

// round rounds halves towards positive infinity, so that -0.5 becomes 0 and
// 0.5 becomes 1.
func round(x float64) float64 {
	return math.Floor(x + 0.5)
}

func Ceil[T constraints.Integer | constraints.Float](a T) T {
	return T(math.Ceil(float64(a)))
}

func Floor[T constraints.Integer | constraints.Float](a T) T {
	return T(math.Floor(float64(a)))
}
