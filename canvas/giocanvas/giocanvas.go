// Package giocanvas implements canvas.Context by recording Gio paint
// operations. A Canvas keeps its own operation list; hosts replay the most
// recent frame into their window with Add.
package giocanvas

import (
	"image"
	"math"

	"gioui.org/f32"
	"gioui.org/font"
	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/x/stroke"

	"git.sr.ht/~whereswaldon/tradechart/canvas"
)

// Canvas records drawing into Gio operations. Paths are flattened and
// transformed by the embedded canvas.Base, so every operation is emitted in
// device pixels.
type Canvas struct {
	canvas.Base
	shaper *text.Shaper
	size   image.Point

	ops       op.Ops
	macro     op.MacroOp
	recording bool
	frames    []op.CallOp
}

var _ canvas.Context = (*Canvas)(nil)

// New returns a Canvas for a surface of the given size in pixels. A nil
// shaper is replaced by one loaded with the Go fonts.
func New(shaper *text.Shaper, width, height int) *Canvas {
	if shaper == nil {
		shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	}
	return &Canvas{
		Base:   canvas.NewBase(),
		shaper: shaper,
		size:   image.Pt(width, height),
	}
}

// Resize changes the surface size used to recognise whole-surface clears.
func (c *Canvas) Resize(width, height int) {
	c.size = image.Pt(width, height)
}

// Add replays everything drawn since the last whole-surface clear into ops.
func (c *Canvas) Add(ops *op.Ops) {
	for _, f := range c.frames {
		f.Add(ops)
	}
}

// Layout adds the current drawing to gtx and takes the whole surface.
func (c *Canvas) Layout(gtx layout.Context) layout.Dimensions {
	defer clip.Rect{Max: c.size}.Push(gtx.Ops).Pop()
	c.Add(gtx.Ops)
	return layout.Dimensions{Size: c.size}
}

// out returns the operation list, opening a new frame if none is being
// recorded.
func (c *Canvas) out() *op.Ops {
	if !c.recording {
		c.macro = op.Record(&c.ops)
		c.recording = true
	}
	return &c.ops
}

// Flush closes the frame being recorded and reports paint failures.
func (c *Canvas) Flush() error {
	if c.recording {
		c.frames = append(c.frames, c.macro.Stop())
		c.recording = false
	}
	return c.Base.Flush()
}

func pt(p canvas.Point) f32.Point {
	return f32.Pt(float32(p.X), float32(p.Y))
}

// material adds the paint source for style to ops. It returns false and
// records the failure if style cannot be painted.
func (c *Canvas) material(ops *op.Ops, style canvas.Style) bool {
	if style.Gradient == nil {
		col, err := canvas.ParseColor(style.Color)
		if err != nil {
			c.Fail(err)
			return false
		}
		paint.ColorOp{Color: col}.Add(ops)
		return true
	}
	g := style.Gradient
	if len(g.Stops) == 0 {
		return false
	}
	first, last := g.Stops[0], g.Stops[len(g.Stops)-1]
	c1, err := canvas.ParseColor(first.Color)
	if err != nil {
		c.Fail(err)
		return false
	}
	c2, err := canvas.ParseColor(last.Color)
	if err != nil {
		c.Fail(err)
		return false
	}
	p0, p1 := c.ToDevice(g.X0, g.Y0), c.ToDevice(g.X1, g.Y1)
	// Stops sit at fractions of the gradient line.
	at := func(t float64) f32.Point {
		return f32.Pt(float32(p0.X+(p1.X-p0.X)*t), float32(p0.Y+(p1.Y-p0.Y)*t))
	}
	paint.LinearGradientOp{
		Stop1: at(first.Offset), Color1: c1,
		Stop2: at(last.Offset), Color2: c2,
	}.Add(ops)
	return true
}

// paintClip fills the area of shape with style.
func (c *Canvas) paintClip(shape clip.Op, style canvas.Style) {
	ops := c.out()
	// Resolve the material first so failures leave no dangling clip.
	m := op.Record(ops)
	ok := c.material(ops, style)
	call := m.Stop()
	if !ok {
		return
	}
	defer shape.Push(ops).Pop()
	call.Add(ops)
	paint.PaintOp{}.Add(ops)
}

func (c *Canvas) fillPath(path canvas.Path) {
	ops := c.out()
	var p clip.Path
	p.Begin(ops)
	drawn := false
	path.Each(func(points []canvas.Point, closed bool) {
		p.MoveTo(pt(points[0]))
		for _, q := range points[1:] {
			p.LineTo(pt(q))
		}
		p.Close()
		drawn = true
	})
	spec := p.End()
	if !drawn {
		return
	}
	c.paintClip(clip.Outline{Path: spec}.Op(), c.FillStyle())
}

func (c *Canvas) strokePath(path canvas.Path) {
	var segs []stroke.Segment
	path.Each(func(points []canvas.Point, closed bool) {
		segs = append(segs, stroke.MoveTo(pt(points[0])))
		for _, q := range points[1:] {
			segs = append(segs, stroke.LineTo(pt(q)))
		}
		if closed {
			segs = append(segs, stroke.LineTo(pt(points[0])))
		}
	})
	if len(segs) == 0 {
		return
	}
	scale := c.DeviceScale()
	var dashes stroke.Dashes
	for _, d := range c.LineDash() {
		dashes.Dashes = append(dashes.Dashes, float32(d*scale))
	}
	shape := stroke.Stroke{
		Path:   stroke.Path{Segments: segs},
		Width:  float32(c.LineWidth() * scale),
		Cap:    stroke.FlatCap,
		Dashes: dashes,
	}.Op(c.out())
	c.paintClip(shape, c.StrokeStyle())
}

func (c *Canvas) Stroke() {
	c.strokePath(*c.CurrentPath())
}

func (c *Canvas) Fill() {
	c.fillPath(*c.CurrentPath())
}

func (c *Canvas) FillRect(x, y, w, h float64) {
	c.fillPath(c.RectPath(x, y, w, h))
}

func (c *Canvas) StrokeRect(x, y, w, h float64) {
	c.strokePath(c.RectPath(x, y, w, h))
}

// ClearRect discards all recorded drawing when the rectangle covers the
// whole surface. Gio composites every paint over what lies below, so a
// smaller rectangle cannot be made transparent and is ignored.
func (c *Canvas) ClearRect(x, y, w, h float64) {
	r := c.RectPath(x, y, w, h)
	if len(r.Subpaths) == 0 {
		return
	}
	pts := r.Subpaths[0].Points
	minX, minY, maxX, maxY := pts[0].X, pts[0].Y, pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	if minX > 0 || minY > 0 || maxX < float64(c.size.X) || maxY < float64(c.size.Y) {
		return
	}
	c.ops.Reset()
	c.frames = c.frames[:0]
	c.recording = false
}

func (c *Canvas) label(size float64) (widget.Label, font.Font, unit.Sp) {
	return widget.Label{MaxLines: 1}, font.Font{Typeface: font.Typeface(canvas.FontFamily(c.Font()))}, unit.Sp(size)
}

// context builds the layout context text is shaped in. One sp is one pixel.
func (c *Canvas) context(ops *op.Ops) layout.Context {
	return layout.Context{
		Ops:         ops,
		Metric:      unit.Metric{PxPerDp: 1, PxPerSp: 1},
		Constraints: layout.Constraints{Max: image.Pt(math.MaxInt32, math.MaxInt32)},
	}
}

// layoutText shapes txt at size pixels and returns the drawing together
// with its dimensions.
func (c *Canvas) layoutText(txt string, size float64, mat op.CallOp) (op.CallOp, layout.Dimensions) {
	ops := c.out()
	l, fnt, sp := c.label(size)
	m := op.Record(ops)
	dims := l.Layout(c.context(ops), c.shaper, fnt, sp, txt, mat)
	return m.Stop(), dims
}

func metrics(dims layout.Dimensions) canvas.TextMetrics {
	return canvas.TextMetrics{
		Width:   float64(dims.Size.X),
		Ascent:  float64(dims.Size.Y - dims.Baseline),
		Descent: float64(dims.Baseline),
	}
}

func (c *Canvas) MeasureText(txt string) canvas.TextMetrics {
	size := canvas.FontSize(c.Font())
	if txt == "" {
		return canvas.TextMetrics{Ascent: size * 0.8, Descent: size * 0.2}
	}
	_, dims := c.layoutText(txt, size, op.CallOp{})
	return metrics(dims)
}

// FillText draws text with its anchor transformed into device space. Glyphs
// are scaled by the transform but never rotated.
func (c *Canvas) FillText(txt string, x, y float64) {
	if txt == "" {
		return
	}
	ops := c.out()
	mm := op.Record(ops)
	ok := c.material(ops, c.FillStyle())
	mat := mm.Stop()
	if !ok {
		return
	}
	scale := c.DeviceScale()
	call, dims := c.layoutText(txt, canvas.FontSize(c.Font())*scale, mat)
	m := metrics(dims)
	p := c.ToDevice(x, y)
	p.X += canvas.AlignOffset(c.TextAlign(), m.Width)
	p.Y += canvas.BaselineOffset(c.TextBaseline(), m) - m.Ascent
	defer op.Offset(image.Pt(int(math.Round(p.X)), int(math.Round(p.Y)))).Push(ops).Pop()
	call.Add(ops)
}
