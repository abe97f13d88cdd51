package giocanvas

import (
	"testing"

	"gioui.org/layout"
	"gioui.org/op"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~whereswaldon/tradechart/canvas"
)

func TestFramesFollowClears(t *testing.T) {
	c := New(nil, 100, 50)

	c.ClearRect(0, 0, 100, 50)
	c.SetFillStyle(canvas.Color("#ff0000"))
	c.FillRect(10, 10, 20, 20)
	require.NoError(t, c.Flush())
	assert.Len(t, c.frames, 1)

	c.SetStrokeStyle(canvas.Color("#00ff00"))
	c.SetLineDash([]float64{4, 2})
	c.BeginPath()
	c.MoveTo(0, 0)
	c.LineTo(100, 50)
	c.Stroke()
	require.NoError(t, c.Flush())
	assert.Len(t, c.frames, 2, "drawing without a clear adds to the picture")

	c.ClearRect(10, 10, 5, 5)
	require.NoError(t, c.Flush())
	assert.Len(t, c.frames, 2, "partial clears keep what was drawn")

	c.Translate(-10, -10)
	c.ClearRect(0, 0, 200, 200)
	assert.Empty(t, c.frames)
}

func TestInvalidColorsFailFlush(t *testing.T) {
	c := New(nil, 10, 10)
	c.SetFillStyle(canvas.Color("nope"))
	c.FillRect(0, 0, 10, 10)
	assert.ErrorIs(t, c.Flush(), canvas.ErrInvalidColor)
	assert.NoError(t, c.Flush())

	g := canvas.NewLinearGradient(0, 0, 0, 10)
	g.AddColorStop(0, "#000000")
	g.AddColorStop(1, "bogus")
	c.SetFillStyle(g.Style())
	c.FillRect(0, 0, 10, 10)
	assert.ErrorIs(t, c.Flush(), canvas.ErrInvalidColor)
}

func TestMeasureText(t *testing.T) {
	c := New(nil, 10, 10)
	c.SetFont("20px sans-serif")
	one := c.MeasureText("M")
	two := c.MeasureText("MM")
	assert.Greater(t, one.Width, 0.0)
	assert.Greater(t, two.Width, one.Width)
	assert.Greater(t, one.Ascent, 0.0)

	empty := c.MeasureText("")
	assert.Equal(t, 0.0, empty.Width)
	assert.InDelta(t, 16, empty.Ascent, 1e-9)
}

func TestLayoutReplaysFrames(t *testing.T) {
	c := New(nil, 80, 40)
	c.ClearRect(0, 0, 80, 40)
	c.SetFillStyle(canvas.Color("#000000"))
	c.SetTextBaseline(canvas.BaselineMiddle)
	c.FillText("12.50", 40, 20)
	require.NoError(t, c.Flush())

	var ops op.Ops
	dims := c.Layout(layout.Context{Ops: &ops})
	assert.Equal(t, 80, dims.Size.X)
	assert.Equal(t, 40, dims.Size.Y)
}
