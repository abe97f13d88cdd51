package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~whereswaldon/tradechart/canvas"
	"git.sr.ht/~whereswaldon/tradechart/chart"
	"git.sr.ht/~whereswaldon/tradechart/options"
	"git.sr.ht/~whereswaldon/tradechart/series"
)

func TestDefaultSeries(t *testing.T) {
	ds := NewDataset(Column{Name: BarsColumn, Bars: true}, Column{Name: "Volume"}, Column{Name: "sma"})
	assert.Equal(t, []SeriesConfig{
		{Column: BarsColumn, Type: "Candlestick"},
		{Column: "Volume", Type: "Histogram"},
		{Column: "sma", Type: "Line"},
	}, DefaultSeries(ds))
}

func TestBindDefaults(t *testing.T) {
	c := chart.New(nil)
	require.NoError(t, c.Bind(canvas.NewRecorder()))

	b, err := Bind(c, sampleDataset(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{BarsColumn, "volume"}, b.Columns())

	bound := b.Series()
	require.Len(t, bound, 2)
	assert.Equal(t, series.Candlestick, bound[0].Type())
	assert.Equal(t, series.Histogram, bound[1].Type())
	assert.Len(t, bound[0].Data(), 3)
	assert.IsType(t, series.HistogramPoint{}, bound[1].Data()[0])
}

func TestBindConvertsBarsToLines(t *testing.T) {
	c := chart.New(nil)
	b, err := Bind(c, sampleDataset(), []SeriesConfig{
		{Column: BarsColumn, Type: "area", Options: options.Tree{"lineWidth": 3.0}},
	})
	require.NoError(t, err)
	s := b.Series()[0]
	assert.Equal(t, 3.0, s.Options().Float("lineWidth", 0))
	assert.Equal(t, series.LinePoint{Time: sampleDataset().Columns[0].Points[1].When(), Value: 12}, s.Data()[1])
}

func TestBindRejects(t *testing.T) {
	c := chart.New(nil)
	_, err := Bind(c, sampleDataset(), []SeriesConfig{{Column: "volume", Type: "candlestick"}})
	assert.Error(t, err)
	_, err = Bind(c, sampleDataset(), []SeriesConfig{{Column: "missing", Type: "line"}})
	assert.Error(t, err)
	_, err = Bind(c, sampleDataset(), []SeriesConfig{{Column: "volume", Type: "pie"}})
	assert.Error(t, err)
}

func TestBindingUpdate(t *testing.T) {
	c := chart.New(nil)
	ds := sampleDataset()
	b, err := Bind(c, ds.Until(ds.Times()[0]), nil)
	require.NoError(t, err)
	assert.Len(t, b.Series()[0].Data(), 1)

	require.NoError(t, b.Update(ds))
	assert.Len(t, b.Series()[0].Data(), 3)
	assert.Len(t, b.Series()[1].Data(), 3)
}
