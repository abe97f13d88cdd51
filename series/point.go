// Package series defines chart data points, the per-type renderers that
// draw them onto a canvas.Context, and the storage behind a series.
package series

import (
	"errors"
	"fmt"
	"strings"

	"git.sr.ht/~whereswaldon/tradechart/options"
	"git.sr.ht/~whereswaldon/tradechart/scale"
)

// ErrPointType is returned when a point of one shape is given to a series
// that draws another.
var ErrPointType = errors.New("point does not match series type")

// Point is one datum of a series. The implementations are LinePoint,
// BarPoint and HistogramPoint.
type Point interface {
	// When returns the point's position on the time scale.
	When() scale.Time
	// Price is the value the crosshair and price line follow.
	Price() float64
	// Extent is the price interval the point occupies.
	Extent() (lo, hi float64)
	point()
}

// LinePoint is a single value, drawn by Line and Area series.
type LinePoint struct {
	Time  scale.Time
	Value float64
}

func (p LinePoint) When() scale.Time         { return p.Time }
func (p LinePoint) Price() float64           { return p.Value }
func (p LinePoint) Extent() (lo, hi float64) { return p.Value, p.Value }
func (LinePoint) point()                     {}

// BarPoint is an OHLC sample, drawn by Bar and Candlestick series.
type BarPoint struct {
	Time                   scale.Time
	Open, High, Low, Close float64
}

func (p BarPoint) When() scale.Time { return p.Time }
func (p BarPoint) Price() float64   { return p.Close }
func (p BarPoint) Extent() (lo, hi float64) {
	return min(p.Low, p.Open, p.Close), max(p.High, p.Open, p.Close)
}
func (BarPoint) point() {}

// IsUp reports whether the bar closed at or above its open.
func (p BarPoint) IsUp() bool {
	return p.Close >= p.Open
}

// HistogramPoint is a single value with an optional color that overrides
// the series color for this bar only.
type HistogramPoint struct {
	Time  scale.Time
	Value float64
	Color string
}

func (p HistogramPoint) When() scale.Time         { return p.Time }
func (p HistogramPoint) Price() float64           { return p.Value }
func (p HistogramPoint) Extent() (lo, hi float64) { return p.Value, p.Value }
func (HistogramPoint) point()                     {}

// Type is the closed set of series kinds.
type Type uint8

const (
	Line Type = iota
	Area
	Bar
	Candlestick
	Histogram
	typeCount
)

var typeNames = [typeCount]string{"Line", "Area", "Bar", "Candlestick", "Histogram"}

func (t Type) String() string {
	if t < typeCount {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// Valid reports whether t names a known series type.
func (t Type) Valid() bool {
	return t < typeCount
}

// ParseType resolves a case-insensitive type name.
func ParseType(name string) (Type, error) {
	for i, n := range typeNames {
		if strings.EqualFold(n, name) {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("unknown series type %q", name)
}

// Kind returns the options kind holding this type's defaults.
func (t Type) Kind() options.Kind {
	return options.Kind(t)
}

// Defaults returns a fresh tree of this type's resolved defaults.
func (t Type) Defaults() options.Tree {
	return options.SeriesDefaults(t.Kind())
}

// Accepts reports whether a series of type t can hold p.
func (t Type) Accepts(p Point) bool {
	switch p.(type) {
	case LinePoint:
		return t == Line || t == Area
	case BarPoint:
		return t == Bar || t == Candlestick
	case HistogramPoint:
		return t == Histogram
	}
	return false
}

func checkPoint(t Type, i int, p Point) error {
	if p == nil || !t.Accepts(p) {
		return fmt.Errorf("point %d (%T) in %s series: %w", i, p, t, ErrPointType)
	}
	return nil
}
