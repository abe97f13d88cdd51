package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~whereswaldon/tradechart/canvas"
)

func TestFillRect(t *testing.T) {
	c, err := New(20, 20)
	require.NoError(t, err)
	c.SetFillStyle(canvas.Color("#ff0000"))
	c.FillRect(2, 2, 10, 10)
	require.NoError(t, c.Flush())

	assert.Equal(t, color.RGBA{R: 255, A: 255}, c.Image().RGBAAt(6, 6))
	assert.Equal(t, color.RGBA{}, c.Image().RGBAAt(15, 15))
}

func TestTranslatedFill(t *testing.T) {
	c, err := New(20, 20)
	require.NoError(t, err)
	c.Translate(10, 10)
	c.SetFillStyle(canvas.Color("blue"))
	c.FillRect(0, 0, 5, 5)
	assert.Equal(t, color.RGBA{B: 255, A: 255}, c.Image().RGBAAt(12, 12))
	assert.Equal(t, color.RGBA{}, c.Image().RGBAAt(4, 4))
}

func TestClearRect(t *testing.T) {
	c, err := New(10, 10)
	require.NoError(t, err)
	c.SetFillStyle(canvas.Color("white"))
	c.FillRect(0, 0, 10, 10)
	c.ClearRect(0, 0, 5, 10)
	assert.Equal(t, color.RGBA{}, c.Image().RGBAAt(2, 5))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, c.Image().RGBAAt(7, 5))
}

func TestVerticalGradientFill(t *testing.T) {
	c, err := New(4, 100)
	require.NoError(t, err)
	g := canvas.NewLinearGradient(0, 0, 0, 100)
	g.AddColorStop(0, "#000000")
	g.AddColorStop(1, "#ffffff")
	c.SetFillStyle(g.Style())
	c.FillRect(0, 0, 4, 100)
	require.NoError(t, c.Flush())

	top := c.Image().RGBAAt(1, 1)
	bottom := c.Image().RGBAAt(1, 98)
	assert.Less(t, top.R, uint8(10))
	assert.Greater(t, bottom.R, uint8(245))
	assert.Equal(t, uint8(255), top.A)
}

func TestBadColorReportedOnFlush(t *testing.T) {
	c, err := New(10, 10)
	require.NoError(t, err)
	c.SetStrokeStyle(canvas.Color("#nothex"))
	c.BeginPath()
	c.MoveTo(0, 0)
	c.LineTo(10, 10)
	c.Stroke()
	assert.ErrorIs(t, c.Flush(), canvas.ErrInvalidColor)
	assert.Equal(t, color.RGBA{}, c.Image().RGBAAt(5, 5))
}

func TestTextAndPNG(t *testing.T) {
	c, err := New(80, 30)
	require.NoError(t, err)
	c.SetFont("12px Roboto")
	m := c.MeasureText("1234")
	assert.Greater(t, m.Width, 0.0)
	assert.Greater(t, m.Ascent, 0.0)

	c.SetFillStyle(canvas.Color("#000"))
	c.SetTextBaseline(canvas.BaselineMiddle)
	c.FillText("1234", 4, 15)
	require.NoError(t, c.Flush())

	var buf bytes.Buffer
	require.NoError(t, c.WritePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 80, img.Bounds().Dx())
}

func TestResize(t *testing.T) {
	c, err := New(10, 10)
	require.NoError(t, err)
	require.NoError(t, c.Resize(30, 20))
	assert.Equal(t, 30, c.Image().Bounds().Dx())
	assert.Error(t, c.Resize(0, 5))
}
