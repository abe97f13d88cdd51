// Package canvas defines the imperative 2D drawing surface every chart
// backend implements, along with the bookkeeping those backends share.
//
// All coordinates handed to a Context are pixels. Style setters only record
// state; nothing is drawn until a paint operation (Stroke, Fill, FillRect,
// StrokeRect, ClearRect, FillText) runs.
package canvas

import (
	"fmt"
	"strings"
)

// Context is an imperative 2D drawing surface in the manner of an HTML
// canvas rendering context.
type Context interface {
	SetLineWidth(width float64)
	LineWidth() float64
	SetStrokeStyle(style Style)
	StrokeStyle() Style
	SetFillStyle(style Style)
	FillStyle() Style
	SetFont(font string)
	Font() string
	SetTextAlign(align TextAlign)
	TextAlign() TextAlign
	SetTextBaseline(baseline TextBaseline)
	TextBaseline() TextBaseline
	SetLineDash(segments []float64)
	LineDash() []float64

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Arc(x, y, radius, startAngle, endAngle float64, counterClockwise bool)
	ClosePath()

	Stroke()
	Fill()
	FillRect(x, y, w, h float64)
	StrokeRect(x, y, w, h float64)
	ClearRect(x, y, w, h float64)
	FillText(text string, x, y float64)
	MeasureText(text string) TextMetrics

	Save()
	Restore()
	Translate(x, y float64)
	Scale(x, y float64)
	Rotate(angle float64)

	// Flush returns the failures raised by paint operations since the
	// previous call to Flush, such as unparsable colors, and forgets them.
	Flush() error
}

// Style is the paint used by a stroke or fill: either a CSS color string or
// a linear gradient.
type Style struct {
	Color    string
	Gradient *Gradient
}

// Color returns a solid Style.
func Color(c string) Style {
	return Style{Color: c}
}

// IsGradient reports whether s paints with a gradient.
func (s Style) IsGradient() bool {
	return s.Gradient != nil
}

func (s Style) String() string {
	if s.Gradient != nil {
		return s.Gradient.String()
	}
	return s.Color
}

// ColorStop is one entry of a gradient.
type ColorStop struct {
	Offset float64
	Color  string
}

// Gradient is a linear gradient between two points, expressed in the user
// space that is current when it is painted.
type Gradient struct {
	X0, Y0, X1, Y1 float64
	Stops          []ColorStop
}

// NewLinearGradient returns a gradient along the line (x0,y0)-(x1,y1).
func NewLinearGradient(x0, y0, x1, y1 float64) *Gradient {
	return &Gradient{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// AddColorStop appends a stop. Offsets are clamped to [0,1].
func (g *Gradient) AddColorStop(offset float64, color string) {
	g.Stops = append(g.Stops, ColorStop{Offset: min(max(offset, 0), 1), Color: color})
}

// Style wraps g for use as a stroke or fill style.
func (g *Gradient) Style() Style {
	return Style{Gradient: g}
}

func (g *Gradient) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "linear-gradient(%g,%g,%g,%g", g.X0, g.Y0, g.X1, g.Y1)
	for _, s := range g.Stops {
		fmt.Fprintf(&b, ";%g %s", s.Offset, s.Color)
	}
	b.WriteString(")")
	return b.String()
}

// TextAlign positions text horizontally relative to the x passed to
// FillText.
type TextAlign uint8

const (
	AlignStart TextAlign = iota
	AlignEnd
	AlignLeft
	AlignRight
	AlignCenter
)

func (a TextAlign) String() string {
	switch a {
	case AlignEnd:
		return "end"
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	default:
		return "start"
	}
}

// TextBaseline positions text vertically relative to the y passed to
// FillText.
type TextBaseline uint8

const (
	BaselineAlphabetic TextBaseline = iota
	BaselineTop
	BaselineHanging
	BaselineMiddle
	BaselineIdeographic
	BaselineBottom
)

func (b TextBaseline) String() string {
	switch b {
	case BaselineTop:
		return "top"
	case BaselineHanging:
		return "hanging"
	case BaselineMiddle:
		return "middle"
	case BaselineIdeographic:
		return "ideographic"
	case BaselineBottom:
		return "bottom"
	default:
		return "alphabetic"
	}
}

// TextMetrics describes the extent of a run of text.
type TextMetrics struct {
	Width   float64
	Ascent  float64
	Descent float64
}

// AlignOffset returns how far text of the given width must be moved along x
// to honor align for left-to-right text.
func AlignOffset(align TextAlign, width float64) float64 {
	switch align {
	case AlignEnd, AlignRight:
		return -width
	case AlignCenter:
		return -width / 2
	default:
		return 0
	}
}

// BaselineOffset returns how far the alphabetic baseline lies below the y
// passed to FillText for text with the given metrics.
func BaselineOffset(baseline TextBaseline, m TextMetrics) float64 {
	switch baseline {
	case BaselineTop, BaselineHanging:
		return m.Ascent
	case BaselineMiddle:
		return (m.Ascent - m.Descent) / 2
	case BaselineBottom, BaselineIdeographic:
		return -m.Descent
	default:
		return 0
	}
}
