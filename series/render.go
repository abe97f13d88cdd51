package series

import (
	"fmt"
	"math"

	"git.sr.ht/~whereswaldon/tradechart/canvas"
	"git.sr.ht/~whereswaldon/tradechart/options"
)

// Renderer draws one series. points may be in any order and are never
// modified; opts may be partially specified.
type Renderer func(ctx canvas.Context, points []Point, opts options.Tree, vp Viewport)

var renderers = [typeCount]Renderer{
	Line:        DrawLine,
	Area:        DrawArea,
	Bar:         DrawBar,
	Candlestick: DrawCandlesticks,
	Histogram:   DrawHistogram,
}

// Render draws points with the renderer for t.
func Render(ctx canvas.Context, t Type, points []Point, opts options.Tree, vp Viewport) error {
	if !t.Valid() {
		return fmt.Errorf("render: %s", t)
	}
	renderers[t](ctx, points, opts, vp)
	return nil
}

// tracePath adds a polyline through points, optionally as steps that move
// horizontally first.
func tracePath(ctx canvas.Context, points []Point, vp Viewport, steps bool) {
	prevY := 0.0
	for i, p := range points {
		x, y := vp.X(p.When()), vp.Y(p.Price())
		switch {
		case i == 0:
			ctx.MoveTo(x, y)
		case steps:
			ctx.LineTo(x, prevY)
			ctx.LineTo(x, y)
		default:
			ctx.LineTo(x, y)
		}
		prevY = y
	}
}

// DrawLine strokes one path through the points and optionally marks each
// of them with a circle.
func DrawLine(ctx canvas.Context, points []Point, opts options.Tree, vp Viewport) {
	if len(points) == 0 {
		return
	}
	points = sorted(points)
	color := opts.String("color", options.DefaultLineColor)

	ctx.SetLineWidth(opts.Positive("lineWidth", 2))
	ctx.SetStrokeStyle(canvas.Color(color))
	ctx.SetLineDash(opts.LineStyle("lineStyle", options.Solid).Dash())
	ctx.BeginPath()
	tracePath(ctx, points, vp, opts.LineType("lineType", options.Simple) == options.WithSteps)
	ctx.Stroke()

	if opts.Bool("crosshairMarkerVisible", false) {
		drawMarkers(ctx, points, color, opts.Positive("crosshairMarkerRadius", 4), vp)
	}
}

func drawMarkers(ctx canvas.Context, points []Point, color string, radius float64, vp Viewport) {
	stroke, fill, width := ctx.StrokeStyle(), ctx.FillStyle(), ctx.LineWidth()

	ctx.SetFillStyle(canvas.Color(color))
	ctx.SetStrokeStyle(canvas.Color("white"))
	ctx.SetLineWidth(2)
	for _, p := range points {
		ctx.BeginPath()
		ctx.Arc(vp.X(p.When()), vp.Y(p.Price()), radius, 0, 2*math.Pi, false)
		ctx.Fill()
		ctx.Stroke()
	}

	ctx.SetStrokeStyle(stroke)
	ctx.SetFillStyle(fill)
	ctx.SetLineWidth(width)
}

// DrawArea fills the region between the line and the bottom of the
// surface, then strokes the line.
func DrawArea(ctx canvas.Context, points []Point, opts options.Tree, vp Viewport) {
	if len(points) == 0 {
		return
	}
	points = sorted(points)
	steps := opts.LineType("lineType", options.Simple) == options.WithSteps
	top := opts.String("topColor", "rgba(56, 121, 217, 0.4)")
	bottom := opts.String("bottomColor", "rgba(56, 121, 217, 0.1)")

	fill := canvas.Color(top)
	if top != bottom {
		g := canvas.NewLinearGradient(0, 0, 0, vp.Height)
		g.AddColorStop(0, top)
		g.AddColorStop(1, bottom)
		fill = g.Style()
	}
	first, last := points[0], points[len(points)-1]
	ctx.SetFillStyle(fill)
	ctx.BeginPath()
	ctx.MoveTo(vp.X(first.When()), vp.Height)
	for i, p := range points {
		x, y := vp.X(p.When()), vp.Y(p.Price())
		if steps && i > 0 {
			ctx.LineTo(x, vp.Y(points[i-1].Price()))
		}
		ctx.LineTo(x, y)
	}
	ctx.LineTo(vp.X(last.When()), vp.Height)
	ctx.ClosePath()
	ctx.Fill()

	ctx.SetLineWidth(opts.Positive("lineWidth", 2))
	ctx.SetStrokeStyle(canvas.Color(opts.String("lineColor", options.DefaultLineColor)))
	ctx.SetLineDash(opts.LineStyle("lineStyle", options.Solid).Dash())
	ctx.BeginPath()
	tracePath(ctx, points, vp, steps)
	ctx.Stroke()
}

// barColors picks the fill, border and wick colors of an OHLC point. A
// direction specific override wins over the shared override, which wins
// over the body color.
func barColors(opts options.Tree, up bool) (body, border, wick string) {
	dir := "Down"
	body = opts.String("downColor", options.DefaultDownColor)
	if up {
		dir = "Up"
		body = opts.String("upColor", options.DefaultUpColor)
	}
	border = opts.String("border"+dir+"Color", opts.String("borderColor", body))
	wick = opts.String("wick"+dir+"Color", opts.String("wickColor", body))
	return body, border, wick
}

// DrawCandlesticks draws a wick and a body per point.
func DrawCandlesticks(ctx canvas.Context, points []Point, opts options.Tree, vp Viewport) {
	if len(points) == 0 {
		return
	}
	points = sorted(points)
	borderVisible := opts.Bool("borderVisible", true)
	wickVisible := opts.Bool("wickVisible", true)
	half := vp.halfBarWidth(opts.Float("barWidth", 0))

	for _, p := range points {
		bar, ok := p.(BarPoint)
		if !ok {
			continue
		}
		body, border, wick := barColors(opts, bar.IsUp())
		x := vp.X(bar.Time)
		openY, closeY := vp.Y(bar.Open), vp.Y(bar.Close)
		highY, lowY := vp.Y(bar.High), vp.Y(bar.Low)
		bodyTop, bodyBottom := min(openY, closeY), max(openY, closeY)
		bodyHeight := max(1, bodyBottom-bodyTop)

		if wickVisible {
			ctx.SetStrokeStyle(canvas.Color(wick))
			ctx.SetLineWidth(1)
			ctx.BeginPath()
			ctx.MoveTo(x, highY)
			ctx.LineTo(x, bodyTop)
			ctx.MoveTo(x, bodyBottom)
			ctx.LineTo(x, lowY)
			ctx.Stroke()
		}

		ctx.SetFillStyle(canvas.Color(body))
		left, width := x-half, half*2
		if borderVisible {
			ctx.SetStrokeStyle(canvas.Color(border))
			ctx.SetLineWidth(1)
			ctx.StrokeRect(left, bodyTop, width, bodyHeight)
		}
		ctx.FillRect(left, bodyTop, width, bodyHeight)
	}
}

// DrawBar draws OHLC bars: a high-low stroke with an open tick on the left
// and a close tick on the right.
func DrawBar(ctx canvas.Context, points []Point, opts options.Tree, vp Viewport) {
	if len(points) == 0 {
		return
	}
	points = sorted(points)
	half := vp.halfBarWidth(opts.Float("barWidth", 0))
	width := 1.0
	if !opts.Bool("thinBars", true) {
		width = max(1, math.Floor(half/2))
	}
	openVisible := opts.Bool("openVisible", true)

	ctx.SetLineWidth(width)
	for _, p := range points {
		bar, ok := p.(BarPoint)
		if !ok {
			continue
		}
		color, _, _ := barColors(opts, bar.IsUp())
		x := vp.X(bar.Time)
		highY, lowY := vp.Y(bar.High), vp.Y(bar.Low)
		top, bottom := min(highY, lowY), max(highY, lowY)
		if bottom-top < 1 {
			bottom = top + 1
		}
		ctx.SetStrokeStyle(canvas.Color(color))
		ctx.BeginPath()
		ctx.MoveTo(x, top)
		ctx.LineTo(x, bottom)
		if openVisible {
			openY := vp.Y(bar.Open)
			ctx.MoveTo(x-half, openY)
			ctx.LineTo(x, openY)
		}
		closeY := vp.Y(bar.Close)
		ctx.MoveTo(x, closeY)
		ctx.LineTo(x+half, closeY)
		ctx.Stroke()
	}
}

// DrawHistogram fills one column per point from the base value to the
// point's value.
func DrawHistogram(ctx canvas.Context, points []Point, opts options.Tree, vp Viewport) {
	if len(points) == 0 {
		return
	}
	points = sorted(points)
	color := opts.String("color", options.DefaultLineColor)
	baseY := vp.Y(opts.Float("base", 0))
	half := vp.halfBarWidth(opts.Float("barWidth", 0))

	for _, p := range points {
		fill := color
		if h, ok := p.(HistogramPoint); ok && h.Color != "" {
			fill = h.Color
		}
		x, y := vp.X(p.When()), vp.Y(p.Price())
		top, bottom := min(y, baseY), max(y, baseY)
		ctx.SetFillStyle(canvas.Color(fill))
		ctx.FillRect(x-half, top, half*2, max(1, bottom-top))
	}
}
