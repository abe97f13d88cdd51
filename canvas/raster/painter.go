package raster

import (
	"image"
	"image/color"

	"github.com/golang/freetype/raster"

	"git.sr.ht/~whereswaldon/tradechart/canvas"
)

// painter composes spans over an RGBA image with either the solid color
// set by the rasterizer or, while a gradient is active, a color sampled per
// pixel.
type painter struct {
	solid    *raster.RGBAPainter
	gradient *gradient
}

func newPainter(img *image.RGBA) *painter {
	return &painter{solid: raster.NewRGBAPainter(img)}
}

func (p *painter) SetColor(c color.Color) {
	p.solid.SetColor(c)
}

func (p *painter) Paint(ss []raster.Span, done bool) {
	if p.gradient == nil {
		p.solid.Paint(ss, done)
		return
	}
	one := make([]raster.Span, 1)
	for _, s := range ss {
		for x := s.X0; x < s.X1; x++ {
			p.solid.SetColor(p.gradient.at(float64(x)+0.5, float64(s.Y)+0.5))
			one[0] = raster.Span{Y: s.Y, X0: x, X1: x + 1, Alpha: s.Alpha}
			p.solid.Paint(one, false)
		}
	}
}

type stop struct {
	offset float64
	color  color.NRGBA
}

// gradient is a canvas.Gradient with its axis in device space and its
// colors parsed.
type gradient struct {
	x0, y0, dx, dy, lenSq float64
	stops                 []stop
}

func resolveGradient(g *canvas.Gradient, toDevice func(x, y float64) canvas.Point) (*gradient, error) {
	p0 := toDevice(g.X0, g.Y0)
	p1 := toDevice(g.X1, g.Y1)
	out := &gradient{x0: p0.X, y0: p0.Y, dx: p1.X - p0.X, dy: p1.Y - p0.Y}
	out.lenSq = out.dx*out.dx + out.dy*out.dy
	for _, s := range g.Stops {
		c, err := canvas.ParseColor(s.Color)
		if err != nil {
			return nil, err
		}
		out.stops = append(out.stops, stop{offset: s.Offset, color: c})
	}
	return out, nil
}

func (g *gradient) at(x, y float64) color.Color {
	if len(g.stops) == 0 {
		return color.Transparent
	}
	t := 0.0
	if g.lenSq > 0 {
		t = ((x-g.x0)*g.dx + (y-g.y0)*g.dy) / g.lenSq
	}
	if t <= g.stops[0].offset {
		return g.stops[0].color
	}
	for i := 1; i < len(g.stops); i++ {
		a, b := g.stops[i-1], g.stops[i]
		if t > b.offset {
			continue
		}
		span := b.offset - a.offset
		if span <= 0 {
			return b.color
		}
		return lerp(a.color, b.color, (t-a.offset)/span)
	}
	return g.stops[len(g.stops)-1].color
}

func lerp(a, b color.NRGBA, t float64) color.NRGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
