package canvas

import (
	"math"
	"slices"

	"github.com/wcharczuk/go-chart/v2/drawing"
	"go.uber.org/multierr"
)

// State is the style and transform state saved and restored by Save and
// Restore.
type State struct {
	LineWidth    float64
	StrokeStyle  Style
	FillStyle    Style
	Font         string
	TextAlign    TextAlign
	TextBaseline TextBaseline
	LineDash     []float64
	Transform    drawing.Matrix
}

// DefaultState returns the state of a freshly created context.
func DefaultState() State {
	return State{
		LineWidth:   1,
		StrokeStyle: Color("#000000"),
		FillStyle:   Color("#000000"),
		Font:        "10px sans-serif",
		Transform:   drawing.NewIdentityMatrix(),
	}
}

// Clone returns a copy of s that shares no memory with it.
func (s State) Clone() State {
	s.LineDash = slices.Clone(s.LineDash)
	return s
}

// Base implements the state, state stack, transform and path bookkeeping of
// a Context. Backends embed it and add the paint operations. Path points
// are stored in device space, transformed by the matrix current when each
// point was added.
type Base struct {
	state State
	stack []State
	path  Path
	errs  error
}

// NewBase returns a Base in the default state.
func NewBase() Base {
	return Base{state: DefaultState()}
}

// State returns a copy of the current state.
func (b *Base) State() State {
	return b.state.Clone()
}

// Depth returns the number of saved states.
func (b *Base) Depth() int {
	return len(b.stack)
}

// CurrentPath returns the path under construction.
func (b *Base) CurrentPath() *Path {
	return &b.path
}

// Fail records a paint failure for the next Flush.
func (b *Base) Fail(err error) {
	b.errs = multierr.Append(b.errs, err)
}

func (b *Base) Flush() error {
	err := b.errs
	b.errs = nil
	return err
}

func (b *Base) SetLineWidth(width float64) {
	if !(width > 0) || math.IsInf(width, 0) {
		return
	}
	b.state.LineWidth = width
}

func (b *Base) LineWidth() float64 {
	return b.state.LineWidth
}

func (b *Base) SetStrokeStyle(style Style) {
	b.state.StrokeStyle = style
}

func (b *Base) StrokeStyle() Style {
	return b.state.StrokeStyle
}

func (b *Base) SetFillStyle(style Style) {
	b.state.FillStyle = style
}

func (b *Base) FillStyle() Style {
	return b.state.FillStyle
}

func (b *Base) SetFont(font string) {
	b.state.Font = font
}

func (b *Base) Font() string {
	return b.state.Font
}

func (b *Base) SetTextAlign(align TextAlign) {
	b.state.TextAlign = align
}

func (b *Base) TextAlign() TextAlign {
	return b.state.TextAlign
}

func (b *Base) SetTextBaseline(baseline TextBaseline) {
	b.state.TextBaseline = baseline
}

func (b *Base) TextBaseline() TextBaseline {
	return b.state.TextBaseline
}

// SetLineDash replaces the dash pattern. Patterns containing negative or
// non-finite entries are ignored, and odd-length patterns are repeated to
// make them even.
func (b *Base) SetLineDash(segments []float64) {
	for _, s := range segments {
		if s < 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			return
		}
	}
	dash := slices.Clone(segments)
	if len(dash)%2 == 1 {
		dash = append(dash, segments...)
	}
	if dash == nil {
		dash = []float64{}
	}
	b.state.LineDash = dash
}

func (b *Base) LineDash() []float64 {
	return slices.Clone(b.state.LineDash)
}

func (b *Base) Save() {
	b.stack = append(b.stack, b.state.Clone())
}

// Restore pops the most recently saved state. With nothing saved it does
// nothing.
func (b *Base) Restore() {
	if len(b.stack) == 0 {
		return
	}
	b.state = b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
}

func (b *Base) Translate(x, y float64) {
	b.state.Transform.Translate(x, y)
}

func (b *Base) Scale(x, y float64) {
	b.state.Transform.Scale(x, y)
}

func (b *Base) Rotate(angle float64) {
	b.state.Transform.Rotate(angle)
}

// ToDevice transforms a user space point by the current transform.
func (b *Base) ToDevice(x, y float64) Point {
	dx, dy := b.state.Transform.TransformPoint(x, y)
	return Point{X: dx, Y: dy}
}

// DeviceScale returns the factor by which the current transform scales
// lengths, used for line widths and dash patterns.
func (b *Base) DeviceScale() float64 {
	return b.state.Transform.GetScale()
}

func (b *Base) BeginPath() {
	b.path.Reset()
}

func (b *Base) MoveTo(x, y float64) {
	b.path.MoveTo(b.ToDevice(x, y))
}

func (b *Base) LineTo(x, y float64) {
	b.path.LineTo(b.ToDevice(x, y))
}

func (b *Base) ClosePath() {
	b.path.Close()
}

// Arc adds a circular arc to the path. If the path has a current point a
// straight segment joins it to the start of the arc.
func (b *Base) Arc(x, y, radius, startAngle, endAngle float64, counterClockwise bool) {
	if radius < 0 {
		return
	}
	sweep := arcSweep(startAngle, endAngle, counterClockwise)
	steps := int(math.Ceil(math.Abs(sweep) / (2 * math.Pi) * arcSegments))
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		a := startAngle + sweep*float64(i)/float64(steps)
		pt := b.ToDevice(x+radius*math.Cos(a), y+radius*math.Sin(a))
		if i == 0 && b.path.Empty() {
			b.path.MoveTo(pt)
			continue
		}
		b.path.LineTo(pt)
	}
}

// arcSegments is the number of line segments used to flatten a full circle.
const arcSegments = 64

func arcSweep(start, end float64, ccw bool) float64 {
	const full = 2 * math.Pi
	if !ccw {
		if end-start >= full {
			return full
		}
		return positiveMod(end-start, full)
	}
	if start-end >= full {
		return -full
	}
	return -positiveMod(start-end, full)
}

func positiveMod(a, b float64) float64 {
	m := math.Mod(a, b)
	if m < 0 {
		m += b
	}
	return m
}

// RectPath returns the device space corners of a user space rectangle, in
// drawing order.
func (b *Base) RectPath(x, y, w, h float64) Path {
	var p Path
	p.MoveTo(b.ToDevice(x, y))
	p.LineTo(b.ToDevice(x+w, y))
	p.LineTo(b.ToDevice(x+w, y+h))
	p.LineTo(b.ToDevice(x, y+h))
	p.Close()
	return p
}
