package main

import (
	"context"
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~whereswaldon/tradechart/backend"
	"git.sr.ht/~whereswaldon/tradechart/options"
	"git.sr.ht/~whereswaldon/tradechart/series"
)

const quotes = `date,open,high,low,close,volume
2024-01-01,10,12,9,11,1000
2024-01-02,11,13,10,12,1500
2024-01-03,12,12,8,9,2000
2024-01-04,9,10,7,8,900
2024-01-05,8,11,8,10,1200
`

func newView(t *testing.T) *ChartView {
	t.Helper()
	ds, err := backend.ReadAll(context.Background(), strings.NewReader(quotes))
	require.NoError(t, err)
	v := NewChartView(backend.Config{Chart: options.Tree{}}, nil, func() {})
	t.Cleanup(v.Close)
	v.size = image.Pt(400, 300)
	v.SetData(ds)
	require.True(t, v.HasData())
	require.Empty(t, v.err)
	return v
}

func TestChartViewBindsColumns(t *testing.T) {
	v := newView(t)
	bound := v.binding.Series()
	require.Len(t, bound, 2)
	assert.Len(t, v.Enabled, 2)
	assert.Equal(t, series.Candlestick, bound[0].Type())
	assert.Equal(t, hex(withAlpha(palette[1], 0x80)), bound[1].Options().String("color", ""))
	assert.Equal(t, "10.00", v.value(0), "the legend shows the latest close")
}

func TestChartViewZoomAndPan(t *testing.T) {
	v := newView(t)
	before, ok := v.visibleRange()
	require.True(t, ok)

	v.zoomBy(0.5)
	assert.True(t, v.paused)
	zoomed, ok := v.visibleRange()
	require.True(t, ok)
	assert.InDelta(t, before.Span()/2, zoomed.Span(), 1e-6)
	assert.Equal(t, before.To.Seconds(), zoomed.To.Seconds())

	v.panBy(-200)
	panned, ok := v.visibleRange()
	require.True(t, ok)
	assert.InDelta(t, zoomed.From.Seconds()-zoomed.Span()/2, panned.From.Seconds(), 1e-6)
	assert.InDelta(t, zoomed.Span(), panned.Span(), 1e-6)
}

func TestSwatch(t *testing.T) {
	v := newView(t)
	c := swatch(v.binding.Series()[0])
	assert.Equal(t, uint8(0xff), c.A)
	assert.Nil(t, paletteOptions(series.Bar, 0))
	assert.Equal(t, "#2b7fa8ff", paletteOptions(series.Line, 0).String("color", ""))
}
