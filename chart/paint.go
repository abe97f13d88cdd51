package chart

import (
	gochart "github.com/wcharczuk/go-chart/v2"

	"git.sr.ht/~whereswaldon/tradechart/canvas"
	"git.sr.ht/~whereswaldon/tradechart/options"
	"git.sr.ht/~whereswaldon/tradechart/scale"
	"git.sr.ht/~whereswaldon/tradechart/series"
)

const (
	// Minimum pixel distance between grid lines.
	timeGridSpacing  = 80
	priceGridSpacing = 40
	labelPadding     = 4
)

func (c *Chart) paintBackground(ctx canvas.Context, vp series.Viewport) {
	bg := c.opts.Sub("layout.background")
	if bg.ColorType("type", options.ColorSolid) == options.ColorVerticalGradient {
		g := canvas.NewLinearGradient(0, 0, 0, vp.Height)
		g.AddColorStop(0, bg.String("topColor", "#ffffff"))
		g.AddColorStop(1, bg.String("bottomColor", "#ffffff"))
		ctx.SetFillStyle(g.Style())
	} else {
		ctx.SetFillStyle(canvas.Color(bg.String("color", "#ffffff")))
	}
	ctx.FillRect(0, 0, vp.Width, vp.Height)
}

// applyLine sets the stroke state for a line described by an options
// subtree with color, width and style keys.
func applyLine(ctx canvas.Context, line options.Tree, color string, width float64) {
	ctx.SetStrokeStyle(canvas.Color(line.String("color", color)))
	ctx.SetLineWidth(line.Positive("width", width))
	ctx.SetLineDash(line.LineStyle("style", options.Solid).Dash())
}

func (c *Chart) paintGrid(ctx canvas.Context, vp series.Viewport) {
	if vert := c.opts.Sub("grid.vertLines"); vert.Bool("visible", true) {
		ticks := scale.TimeTicks(vp.Time, vp.Width, timeGridSpacing)
		if len(ticks) > 0 {
			applyLine(ctx, vert, options.DefaultGridColor, 1)
			for _, t := range ticks {
				canvas.VerticalLine(ctx, vp.X(t), 0, vp.Height)
			}
		}
	}
	if horz := c.opts.Sub("grid.horzLines"); horz.Bool("visible", true) {
		ticks := scale.PriceTicks(vp.Price, vp.Height, priceGridSpacing)
		if len(ticks) > 0 {
			applyLine(ctx, horz, options.DefaultGridColor, 1)
			for _, p := range ticks {
				canvas.HorizontalLine(ctx, vp.Y(p), 0, vp.Width)
			}
		}
	}
}

// priceLinePoint returns the point a series' price line follows.
func (s *Series) priceLinePoint(window scale.TimeRange) (series.Point, bool) {
	if s.opts.PriceLineSource("priceLineSource", options.LastBar) == options.LastBar {
		return s.store.Last()
	}
	var last series.Point
	for _, p := range s.store.Points() {
		if !window.Contains(p.When()) {
			continue
		}
		if last == nil || scale.Compare(p.When(), last.When()) >= 0 {
			last = p
		}
	}
	return last, last != nil
}

func (c *Chart) paintPriceLines(ctx canvas.Context, vp series.Viewport) {
	for _, s := range c.series {
		if !s.visible() || !s.opts.Bool("priceLineVisible", false) {
			continue
		}
		p, ok := s.priceLinePoint(vp.Time)
		if !ok {
			continue
		}
		ctx.SetStrokeStyle(canvas.Color(s.opts.String("priceLineColor", s.mainColor(p))))
		ctx.SetLineWidth(s.opts.Positive("priceLineWidth", 1))
		ctx.SetLineDash(s.opts.LineStyle("priceLineStyle", options.Dashed).Dash())
		canvas.HorizontalLine(ctx, vp.Y(p.Price()), 0, vp.Width)
	}
}

func (c *Chart) labelFont() string {
	return canvas.FontString(c.opts.Positive("layout.fontSize", 12), c.opts.String("layout.fontFamily", options.DefaultFont))
}

// timeFormat picks the label layout for t from the timeScale options.
func (c *Chart) timeFormat(t scale.Time) string {
	switch {
	case t.IsDate() || !c.opts.Bool("timeScale.timeVisible", true):
		return "2006-01-02"
	case c.opts.Bool("timeScale.secondsVisible", true):
		return "2006-01-02 15:04:05"
	}
	return "2006-01-02 15:04"
}

func (c *Chart) formatTime(t scale.Time) string {
	if !t.Valid() {
		return ""
	}
	return gochart.TimeValueFormatterWithFormat(c.timeFormat(t))(t.Time())
}

func formatPrice(v float64) string {
	return gochart.FloatValueFormatterWithFormat(v, "%.2f")
}

// drawLabel draws text on a filled box. The box is anchored at (x,y) with
// the given alignment and vertically centered on y.
func drawLabel(ctx canvas.Context, text string, x, y float64, align canvas.TextAlign, bg, fg string) {
	ctx.SetTextAlign(align)
	ctx.SetTextBaseline(canvas.BaselineMiddle)
	m := ctx.MeasureText(text)
	w := m.Width + 2*labelPadding
	h := m.Ascent + m.Descent + 2*labelPadding
	left := x + canvas.AlignOffset(align, m.Width) - labelPadding
	ctx.SetFillStyle(canvas.Color(bg))
	ctx.FillRect(left, y-h/2, w, h)
	ctx.SetFillStyle(canvas.Color(fg))
	ctx.FillText(text, x, y)
}

func (c *Chart) paintCrosshair(ctx canvas.Context, vp series.Viewport) {
	ch := c.crosshair
	if !ch.active || c.opts.CrosshairMode("crosshair.mode", options.CrosshairNormal) == options.CrosshairHidden {
		return
	}
	vert := c.opts.Sub("crosshair.vertLine")
	horz := c.opts.Sub("crosshair.horzLine")
	if vert.Bool("visible", true) {
		applyLine(ctx, vert, "#758696", 1)
		canvas.VerticalLine(ctx, ch.x, 0, vp.Height)
	}
	if horz.Bool("visible", true) {
		applyLine(ctx, horz, "#758696", 1)
		canvas.HorizontalLine(ctx, ch.y, 0, vp.Width)
	}

	ctx.SetFont(c.labelFont())
	if horz.Bool("visible", true) && horz.Bool("labelVisible", true) {
		drawLabel(ctx, formatPrice(ch.price), vp.Width-labelPadding, ch.y, canvas.AlignRight, horz.String("color", "#758696"), "#ffffff")
	}
	if vert.Bool("visible", true) && vert.Bool("labelVisible", true) && c.opts.Bool("timeScale.visible", true) {
		if text := c.formatTime(ch.time); text != "" {
			y := vp.Height - labelPadding - c.opts.Positive("layout.fontSize", 12)/2
			drawLabel(ctx, text, ch.x, y, canvas.AlignCenter, vert.String("color", "#758696"), "#ffffff")
		}
	}
}
