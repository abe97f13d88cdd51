package canvas

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveRestore(t *testing.T) {
	r := NewRecorder()
	r.SetLineWidth(3)
	r.SetStrokeStyle(Color("red"))
	r.SetLineDash([]float64{6, 6})
	before := r.State()

	r.Save()
	r.SetLineWidth(7)
	r.SetFillStyle(Color("#fff"))
	r.SetLineDash([]float64{1, 4})
	r.SetFont("20px serif")
	r.SetTextAlign(AlignCenter)
	r.Translate(10, 20)
	r.Save()
	r.Rotate(1)
	r.Restore()
	r.Restore()

	assert.Equal(t, before, r.State())
	assert.Equal(t, 0, r.Depth())

	// Restoring with nothing saved is harmless.
	r.Restore()
	assert.Equal(t, before, r.State())
}

func TestSavedDashIsIsolated(t *testing.T) {
	b := NewBase()
	dash := []float64{6, 6}
	b.SetLineDash(dash)
	dash[0] = 99
	b.Save()
	got := b.LineDash()
	got[1] = 42
	b.Restore()
	assert.Equal(t, []float64{6, 6}, b.LineDash())
}

func TestLineDashNormalization(t *testing.T) {
	b := NewBase()
	b.SetLineDash([]float64{1, 2, 3})
	assert.Equal(t, []float64{1, 2, 3, 1, 2, 3}, b.LineDash())
	b.SetLineDash([]float64{1, -2})
	assert.Equal(t, []float64{1, 2, 3, 1, 2, 3}, b.LineDash(), "invalid patterns are ignored")
	b.SetLineDash(nil)
	assert.Empty(t, b.LineDash())
}

func TestLineWidthIgnoresInvalid(t *testing.T) {
	b := NewBase()
	b.SetLineWidth(0)
	b.SetLineWidth(-3)
	b.SetLineWidth(math.NaN())
	assert.Equal(t, 1.0, b.LineWidth())
	b.SetLineWidth(2.5)
	assert.Equal(t, 2.5, b.LineWidth())
}

func TestTransformAppliesToPath(t *testing.T) {
	b := NewBase()
	b.Translate(10, 5)
	b.Scale(2, 2)
	b.MoveTo(1, 1)
	b.LineTo(3, 1)
	path := b.CurrentPath()
	require.Len(t, path.Subpaths, 1)
	assert.Equal(t, []Point{{X: 12, Y: 7}, {X: 16, Y: 7}}, path.Subpaths[0].Points)
	assert.InDelta(t, 2, b.DeviceScale(), 1e-6)
}

func TestArcFullCircle(t *testing.T) {
	b := NewBase()
	b.BeginPath()
	b.Arc(50, 50, 4, 0, 2*math.Pi, false)
	path := b.CurrentPath()
	require.Len(t, path.Subpaths, 1)
	points := path.Subpaths[0].Points
	assert.Len(t, points, arcSegments+1)
	for _, p := range points {
		assert.InDelta(t, 4, math.Hypot(p.X-50, p.Y-50), 1e-9)
	}
	assert.InDelta(t, points[0].X, points[len(points)-1].X, 1e-9)
	assert.InDelta(t, points[0].Y, points[len(points)-1].Y, 1e-9)
}

func TestArcSweep(t *testing.T) {
	assert.InDelta(t, math.Pi/2, arcSweep(0, math.Pi/2, false), 1e-12)
	assert.InDelta(t, 3*math.Pi/2, arcSweep(math.Pi/2, 0, false), 1e-12)
	assert.InDelta(t, -math.Pi/2, arcSweep(math.Pi/2, 0, true), 1e-12)
	assert.InDelta(t, -2*math.Pi, arcSweep(0, -4*math.Pi, true), 1e-12)
}

func TestPathEachSkipsNonFinite(t *testing.T) {
	var p Path
	p.MoveTo(Point{0, 0})
	p.LineTo(Point{1, 1})
	p.LineTo(Point{math.NaN(), 1})
	p.LineTo(Point{2, 2})
	p.LineTo(Point{3, 3})
	p.MoveTo(Point{9, 9})
	var runs [][]Point
	p.Each(func(points []Point, closed bool) {
		runs = append(runs, points)
	})
	assert.Equal(t, [][]Point{{{0, 0}, {1, 1}}, {{2, 2}, {3, 3}}}, runs)
}

func TestClosePathStartsNewSubpath(t *testing.T) {
	var p Path
	p.MoveTo(Point{0, 0})
	p.LineTo(Point{4, 0})
	p.LineTo(Point{4, 4})
	p.Close()
	p.LineTo(Point{0, 4})
	require.Len(t, p.Subpaths, 2)
	assert.True(t, p.Subpaths[0].Closed)
	assert.Equal(t, []Point{{0, 0}, {0, 4}}, p.Subpaths[1].Points)
}

func TestParseColor(t *testing.T) {
	type testcase struct {
		in       string
		expected color.NRGBA
	}
	for _, tc := range []testcase{
		{in: "#26a69a", expected: color.NRGBA{R: 0x26, G: 0xa6, B: 0x9a, A: 255}},
		{in: "#fff", expected: color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{in: "#ff000080", expected: color.NRGBA{R: 255, A: 0x80}},
		{in: "#f008", expected: color.NRGBA{R: 255, A: 0x88}},
		{in: "rgba(56, 121, 217, 1)", expected: color.NRGBA{R: 56, G: 121, B: 217, A: 255}},
		{in: "rgba(56, 121, 217, 0.4)", expected: color.NRGBA{R: 56, G: 121, B: 217, A: 102}},
		{in: "rgb(1,2,3)", expected: color.NRGBA{R: 1, G: 2, B: 3, A: 255}},
		{in: "white", expected: color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{in: "Black", expected: color.NRGBA{A: 255}},
		{in: "transparent", expected: color.NRGBA{R: 255, G: 255, B: 255}},
	} {
		t.Run(tc.in, func(t *testing.T) {
			c, err := ParseColor(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, c)
		})
	}
	for _, bad := range []string{"", "#12", "#zzzzzz", "rgba(1,2,3)", "rgb(1,2,3,4)", "blurple", "rgb(a,b,c)"} {
		_, err := ParseColor(bad)
		assert.ErrorIs(t, err, ErrInvalidColor, "input %q", bad)
	}
}

func TestRecorderFlushReportsBadColors(t *testing.T) {
	r := NewRecorder()
	r.SetFillStyle(Color("not-a-color"))
	r.FillRect(0, 0, 1, 1)
	g := NewLinearGradient(0, 0, 0, 10)
	g.AddColorStop(0, "#fff")
	g.AddColorStop(1, "nope")
	r.SetStrokeStyle(g.Style())
	r.Stroke()

	err := r.Flush()
	assert.ErrorIs(t, err, ErrInvalidColor)
	assert.Contains(t, err.Error(), "not-a-color")
	assert.Contains(t, err.Error(), "nope")
	assert.NoError(t, r.Flush(), "flush forgets reported errors")
}

func TestRecorderCapturesState(t *testing.T) {
	r := NewRecorder()
	r.SetFillStyle(Color("#abc"))
	r.FillRect(1, 2, 3, 4)
	fills := r.Filter("fillRect")
	require.Len(t, fills, 1)
	assert.Equal(t, "#abc", fills[0].State.FillStyle.Color)
	assert.Equal(t, []any{1.0, 2.0, 3.0, 4.0}, fills[0].Args)
	assert.Equal(t, "setFillStyle(\"#abc\")\nfillRect(1, 2, 3, 4)\n", r.String())
}

func TestFontParsing(t *testing.T) {
	assert.Equal(t, 12.0, FontSize("12px Roboto"))
	assert.Equal(t, 13.5, FontSize("bold 13.5px sans-serif"))
	assert.Equal(t, float64(DefaultFontSize), FontSize("serif"))
	assert.Equal(t, "Roboto, sans-serif", FontFamily("bold 12px Roboto, sans-serif"))
	assert.Equal(t, "12px Roboto", FontString(12, "Roboto"))
}

func TestTextPlacement(t *testing.T) {
	m := TextMetrics{Width: 40, Ascent: 8, Descent: 2}
	assert.Equal(t, 0.0, AlignOffset(AlignStart, m.Width))
	assert.Equal(t, -20.0, AlignOffset(AlignCenter, m.Width))
	assert.Equal(t, -40.0, AlignOffset(AlignRight, m.Width))
	assert.Equal(t, 8.0, BaselineOffset(BaselineTop, m))
	assert.Equal(t, 3.0, BaselineOffset(BaselineMiddle, m))
	assert.Equal(t, -2.0, BaselineOffset(BaselineBottom, m))
	assert.Equal(t, 0.0, BaselineOffset(BaselineAlphabetic, m))
}

func TestCrisp(t *testing.T) {
	assert.Equal(t, 10.5, Crisp(10.2, 1))
	assert.Equal(t, 10.0, Crisp(10.2, 2))
	assert.Equal(t, 3.5, Crisp(3.9, 3))
}
