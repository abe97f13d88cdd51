package canvas

import "math"

// Crisp returns the coordinate at which a line of the given width must be
// centered to cover whole device pixels: odd widths sit on pixel centers,
// even widths on pixel edges.
func Crisp(coord, lineWidth float64) float64 {
	if int(math.Round(lineWidth))%2 == 1 {
		return math.Floor(coord) + 0.5
	}
	return math.Round(coord)
}

// HorizontalLine strokes a pixel-aligned horizontal line at y spanning
// [x0,x1] using the current stroke style and line width.
func HorizontalLine(ctx Context, y, x0, x1 float64) {
	y = Crisp(y, ctx.LineWidth())
	ctx.BeginPath()
	ctx.MoveTo(x0, y)
	ctx.LineTo(x1, y)
	ctx.Stroke()
}

// VerticalLine strokes a pixel-aligned vertical line at x spanning [y0,y1].
func VerticalLine(ctx Context, x, y0, y1 float64) {
	x = Crisp(x, ctx.LineWidth())
	ctx.BeginPath()
	ctx.MoveTo(x, y0)
	ctx.LineTo(x, y1)
	ctx.Stroke()
}
