package series

import (
	"math"
	"slices"

	"git.sr.ht/~whereswaldon/tradechart/scale"
)

// DefaultBarSpacing is the pixel width given to one bar when the viewport
// does not say otherwise.
const DefaultBarSpacing = 6

// Viewport is the visible window of data space and the pixel surface it is
// drawn on.
type Viewport struct {
	Width, Height float64
	Time          scale.TimeRange
	Price         scale.PriceRange
	// BarSpacing is the pixel width allotted to one bar.
	BarSpacing float64
	// InvertScale draws the lowest price at the top.
	InvertScale bool
}

// X maps a time to a horizontal pixel.
func (v Viewport) X(t scale.Time) float64 {
	return scale.TimeToX(t, v.Time, v.Width)
}

// Y maps a price to a vertical pixel.
func (v Viewport) Y(price float64) float64 {
	return scale.ValueToYOriented(price, v.Price, v.Height, !v.InvertScale)
}

// TimeAt is the inverse of X.
func (v Viewport) TimeAt(x float64) scale.Time {
	return scale.XToTime(x, v.Time, v.Width)
}

// PriceAt is the inverse of Y.
func (v Viewport) PriceAt(y float64) float64 {
	return scale.YToValueOriented(y, v.Price, v.Height, !v.InvertScale)
}

// halfBarWidth is half the body width of a bar, never below one pixel.
func (v Viewport) halfBarWidth(override float64) float64 {
	width := v.BarSpacing
	if override > 0 {
		width = override
	}
	if !(width > 0) {
		width = DefaultBarSpacing
	}
	return math.Max(1, math.Floor(width/2))
}

// sorted returns a copy of points ordered by time. Points sharing a time
// keep their relative order.
func sorted(points []Point) []Point {
	out := slices.Clone(points)
	slices.SortStableFunc(out, func(a, b Point) int {
		return scale.Compare(a.When(), b.When())
	})
	return out
}
