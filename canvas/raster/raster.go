// Package raster implements canvas.Context on an in-memory RGBA image using
// the go-chart drawing rasterizer.
package raster

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/golang/freetype/truetype"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	xdraw "golang.org/x/image/draw"

	"git.sr.ht/~whereswaldon/tradechart/canvas"
)

// Canvas draws onto an *image.RGBA. Paths are flattened and transformed by
// the embedded canvas.Base, so the rasterizer always runs with an identity
// matrix and receives device space coordinates.
type Canvas struct {
	canvas.Base
	img     *image.RGBA
	gc      *drawing.RasterGraphicContext
	painter *painter
	font    *truetype.Font
}

var _ canvas.Context = (*Canvas)(nil)

// New allocates a transparent width x height image and a Canvas on it.
func New(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("raster: invalid size %dx%d", width, height)
	}
	return NewFromImage(image.NewRGBA(image.Rect(0, 0, width, height)))
}

// NewFromImage returns a Canvas drawing onto img.
func NewFromImage(img *image.RGBA) (*Canvas, error) {
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("raster: loading font: %w", err)
	}
	p := newPainter(img)
	gc := drawing.NewRasterGraphicContextWithPainter(img, p)
	gc.SetFillRule(drawing.FillRuleWinding)
	gc.SetLineCap(drawing.ButtCap)
	gc.SetLineJoin(drawing.MiterJoin)
	gc.SetFont(font)
	return &Canvas{
		Base:    canvas.NewBase(),
		img:     img,
		gc:      gc,
		painter: p,
		font:    font,
	}, nil
}

// Image returns the image being drawn on.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// WritePNG encodes the current image as PNG.
func (c *Canvas) WritePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}

// Resize replaces the backing image with a transparent one of the new size.
// The drawing state is kept.
func (c *Canvas) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("raster: invalid size %dx%d", width, height)
	}
	if b := c.img.Bounds(); b.Dx() == width && b.Dy() == height {
		return nil
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	p := newPainter(img)
	gc := drawing.NewRasterGraphicContextWithPainter(img, p)
	gc.SetFillRule(drawing.FillRuleWinding)
	gc.SetLineCap(drawing.ButtCap)
	gc.SetLineJoin(drawing.MiterJoin)
	gc.SetFont(c.font)
	c.img, c.gc, c.painter = img, gc, p
	return nil
}

// usePaint resolves style into the painter, reporting unparsable colors.
// It returns false if nothing should be painted.
func (c *Canvas) usePaint(style canvas.Style) bool {
	if style.Gradient == nil {
		col, err := canvas.ParseColor(style.Color)
		if err != nil {
			c.Fail(err)
			return false
		}
		c.painter.gradient = nil
		c.gc.SetStrokeColor(col)
		c.gc.SetFillColor(col)
		return true
	}
	g, err := resolveGradient(style.Gradient, c.Base.ToDevice)
	if err != nil {
		c.Fail(err)
		return false
	}
	c.painter.gradient = g
	return true
}

func (c *Canvas) replay(path canvas.Path) bool {
	drawn := false
	path.Each(func(points []canvas.Point, closed bool) {
		c.gc.MoveTo(points[0].X, points[0].Y)
		for _, p := range points[1:] {
			c.gc.LineTo(p.X, p.Y)
		}
		if closed {
			c.gc.Close()
		}
		drawn = true
	})
	return drawn
}

func (c *Canvas) strokePath(path canvas.Path) {
	if !c.usePaint(c.StrokeStyle()) {
		return
	}
	scale := c.DeviceScale()
	c.gc.SetLineWidth(c.LineWidth() * scale)
	dash := c.LineDash()
	for i := range dash {
		dash[i] *= scale
	}
	if len(dash) == 0 {
		dash = nil
	}
	c.gc.SetLineDash(dash, 0)
	c.gc.BeginPath()
	if c.replay(path) {
		c.gc.Stroke()
	}
	c.painter.gradient = nil
}

func (c *Canvas) fillPath(path canvas.Path) {
	if !c.usePaint(c.FillStyle()) {
		return
	}
	c.gc.BeginPath()
	if c.replay(path) {
		c.gc.Fill()
	}
	c.painter.gradient = nil
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

// ClearRect resets the pixels under the device space bounding box of the
// rectangle to transparent.
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
	rect := image.Rect(int(minX), int(minY), int(maxX+0.999), int(maxY+0.999)).Intersect(c.img.Bounds())
	if rect.Empty() {
		return
	}
	xdraw.Draw(c.img, rect, image.Transparent, image.Point{}, xdraw.Src)
}

// pointsFor converts a CSS pixel size into the point size the drawing
// package expects, which scales glyphs by points*DPI in 26.6 fixed point.
func (c *Canvas) pointsFor(px float64) float64 {
	return px * 64 / c.gc.GetDPI()
}

func (c *Canvas) MeasureText(text string) canvas.TextMetrics {
	c.gc.SetFontSize(c.pointsFor(canvas.FontSize(c.Font())))
	_, top, right, bottom, err := c.gc.GetStringBounds(text)
	if err != nil {
		c.Fail(err)
		return canvas.TextMetrics{}
	}
	size := canvas.FontSize(c.Font())
	m := canvas.TextMetrics{Width: right, Ascent: -top, Descent: bottom}
	if text == "" || right < 0 {
		m = canvas.TextMetrics{Ascent: size * 0.8, Descent: size * 0.2}
	}
	return m
}

// FillText draws text with its anchor transformed into device space. Glyphs
// are scaled by the transform but never rotated.
func (c *Canvas) FillText(text string, x, y float64) {
	if text == "" || !c.usePaint(c.FillStyle()) {
		return
	}
	m := c.MeasureText(text)
	x += canvas.AlignOffset(c.TextAlign(), m.Width)
	y += canvas.BaselineOffset(c.TextBaseline(), m)
	p := c.ToDevice(x, y)
	scale := c.DeviceScale()
	c.gc.SetFontSize(c.pointsFor(canvas.FontSize(c.Font()) * scale))
	c.gc.BeginPath()
	if _, err := c.gc.FillStringAt(text, p.X, p.Y); err != nil {
		c.Fail(err)
	}
	c.painter.gradient = nil
}
