package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~whereswaldon/tradechart/canvas"
	"git.sr.ht/~whereswaldon/tradechart/options"
	"git.sr.ht/~whereswaldon/tradechart/scale"
	"git.sr.ht/~whereswaldon/tradechart/series"
)

func tr(from, to float64) scale.TimeRange {
	return scale.TimeRange{From: ts(from), To: ts(to)}
}

func elevenBars(t *testing.T) (*Chart, *canvas.Recorder) {
	t.Helper()
	c := New(nil)
	s, err := c.AddSeries(series.Line, nil)
	require.NoError(t, err)
	require.NoError(t, s.SetData(linePoints(0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10)))
	r := canvas.NewRecorder()
	require.NoError(t, c.Bind(r))
	return c, r
}

func TestTimeScaleNavigation(t *testing.T) {
	c, r := elevenBars(t)
	scroll := c.TimeScale()

	vr, ok := scroll.VisibleRange()
	require.True(t, ok)
	assert.Equal(t, tr(0, 100), vr)

	r.Reset()
	require.NoError(t, scroll.SetVisibleRange(tr(20, 60)))
	assert.NotEmpty(t, r.Calls)
	vr, _ = scroll.VisibleRange()
	assert.Equal(t, tr(20, 60), vr)

	require.NoError(t, scroll.ScrollToPosition(0))
	vr, _ = scroll.VisibleRange()
	assert.Equal(t, tr(60, 100), vr, "the window keeps its width")

	require.NoError(t, scroll.ScrollToPosition(-2))
	vr, _ = scroll.VisibleRange()
	assert.Equal(t, tr(40, 80), vr)

	require.NoError(t, scroll.ApplyOptions(options.Tree{"rightOffset": 5.0}))
	assert.Equal(t, 5.0, scroll.Options().Float("rightOffset", 0))
	require.NoError(t, scroll.ScrollToRealTime())
	vr, _ = scroll.VisibleRange()
	assert.Equal(t, tr(110, 150), vr)

	require.NoError(t, scroll.FitContent())
	vr, _ = scroll.VisibleRange()
	assert.Equal(t, tr(0, 150), vr, "fitted content includes the right offset")
}

func TestTimeScaleWithoutData(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Bind(canvas.NewRecorder()))
	_, ok := c.TimeScale().VisibleRange()
	assert.False(t, ok)
	assert.NoError(t, c.TimeScale().ScrollToRealTime())
	_, ok = c.TimeScale().VisibleRange()
	assert.False(t, ok)
}

func TestVisibleRangeDrivesPriceRange(t *testing.T) {
	c, _ := elevenBars(t)
	assert.Equal(t, scale.PriceRange{Min: 0, Max: 10}, c.PriceScale().VisibleRange())
	require.NoError(t, c.TimeScale().SetVisibleRange(tr(20, 50)))
	assert.Equal(t, scale.PriceRange{Min: 2, Max: 5}, c.PriceScale().VisibleRange())
}

func TestPriceScaleMargins(t *testing.T) {
	c, _ := elevenBars(t)
	require.NoError(t, c.PriceScale().ApplyOptions(options.Tree{
		"scaleMargins": options.Tree{"top": 0.2, "bottom": 0.3},
	}))
	pr := c.PriceScale().VisibleRange()
	assert.InDelta(t, -6, pr.Min, 1e-9)
	assert.InDelta(t, 14, pr.Max, 1e-9)
	assert.Equal(t, 0.2, c.PriceScale().Options().Float("scaleMargins.top", 0))
}

func TestPriceScaleFrozenWithoutAutoScale(t *testing.T) {
	c := New(nil)
	s, err := c.AddSeries(series.Line, nil)
	require.NoError(t, err)
	require.NoError(t, c.Bind(canvas.NewRecorder()))
	require.NoError(t, s.SetData(linePoints(1, 2)))
	require.NoError(t, c.PriceScale().ApplyOptions(options.Tree{"autoScale": false}))

	require.NoError(t, s.SetData(linePoints(1, 50)))
	assert.Equal(t, scale.PriceRange{Min: 1, Max: 2}, c.PriceScale().VisibleRange())

	require.NoError(t, c.PriceScale().ApplyOptions(options.Tree{"autoScale": true}))
	assert.Equal(t, scale.PriceRange{Min: 1, Max: 50}, c.PriceScale().VisibleRange())
}

func TestPriceRangeReadsDoNotFreeze(t *testing.T) {
	c := New(options.Tree{"priceScale": options.Tree{"autoScale": false}})
	s, err := c.AddSeries(series.Line, nil)
	require.NoError(t, err)
	require.NoError(t, s.SetData(linePoints(1, 2)))
	assert.Equal(t, scale.PriceRange{Min: 1, Max: 2}, c.PriceScale().VisibleRange())

	require.NoError(t, s.SetData(linePoints(1, 5)))
	assert.Equal(t, scale.PriceRange{Min: 1, Max: 5}, c.PriceScale().VisibleRange(),
		"nothing was painted, so there is no range to keep")

	require.NoError(t, c.Bind(canvas.NewRecorder()))
	require.NoError(t, s.SetData(linePoints(1, 9)))
	assert.Equal(t, scale.PriceRange{Min: 1, Max: 5}, c.PriceScale().VisibleRange())
}

func TestInvertedPriceScale(t *testing.T) {
	c := New(options.Tree{"width": 100.0, "height": 100.0})
	s, err := c.AddSeries(series.Line, nil)
	require.NoError(t, err)
	require.NoError(t, s.SetData(linePoints(1, 5)))
	r := canvas.NewRecorder()
	require.NoError(t, c.Bind(r))
	assert.Contains(t, r.String(), "moveTo(0, 100)\nlineTo(100, 0)\n")

	r.Reset()
	require.NoError(t, c.PriceScale().ApplyOptions(options.Tree{"invertScale": true}))
	assert.Contains(t, r.String(), "moveTo(0, 0)\nlineTo(100, 100)\n")
}

func TestBarSpacingNarrowsToFit(t *testing.T) {
	c := New(options.Tree{"width": 100.0, "height": 100.0})
	s, err := c.AddSeries(series.Histogram, nil)
	require.NoError(t, err)
	require.NoError(t, s.SetData([]series.Point{
		series.HistogramPoint{Time: ts(0), Value: 1},
		series.HistogramPoint{Time: ts(1), Value: 1},
		series.HistogramPoint{Time: ts(100), Value: 1},
	}))
	assert.Equal(t, 1.0, c.barSpacing(c.viewport()))

	require.NoError(t, c.TimeScale().ApplyOptions(options.Tree{"barSpacing": 4.0}))
	require.NoError(t, s.SetData([]series.Point{
		series.HistogramPoint{Time: ts(0), Value: 1},
		series.HistogramPoint{Time: ts(100), Value: 1},
	}))
	assert.Equal(t, 4.0, c.barSpacing(c.viewport()))
}
