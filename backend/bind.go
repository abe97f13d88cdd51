package backend

import (
	"fmt"
	"strings"

	"git.sr.ht/~whereswaldon/tradechart/chart"
	"git.sr.ht/~whereswaldon/tradechart/series"
	"go.uber.org/multierr"
)

// Binding feeds the columns of a dataset into the series of a chart.
type Binding struct {
	chart   *chart.Chart
	entries []binding
}

type binding struct {
	column string
	series *chart.Series
}

// DefaultSeries guesses a series for every column of ds: bars become
// candlesticks, a volume column a histogram and anything else a line.
func DefaultSeries(ds Dataset) []SeriesConfig {
	var out []SeriesConfig
	for _, c := range ds.Columns {
		kind := series.Line
		switch {
		case c.Bars:
			kind = series.Candlestick
		case strings.EqualFold(c.Name, "volume"):
			kind = series.Histogram
		}
		out = append(out, SeriesConfig{Column: c.Name, Type: kind.String()})
	}
	return out
}

// Bind adds one series to c per entry of specs, or per DefaultSeries(ds) if
// specs is empty, and loads the data of ds into them.
func Bind(c *chart.Chart, ds Dataset, specs []SeriesConfig) (*Binding, error) {
	if len(specs) == 0 {
		specs = DefaultSeries(ds)
	}
	b := &Binding{chart: c}
	for i, spec := range specs {
		kind, err := series.ParseType(spec.Type)
		if err != nil {
			return nil, fmt.Errorf("series %d: %w", i, err)
		}
		col, ok := ds.Column(spec.Column)
		if !ok {
			return nil, fmt.Errorf("series %d: no column %q in %q", i, spec.Column, ds.Names())
		}
		if !col.Bars && kind.Accepts(series.BarPoint{}) {
			return nil, fmt.Errorf("series %d: column %q cannot be drawn as %s", i, spec.Column, kind)
		}
		s, err := c.AddSeries(kind, spec.Options)
		if err != nil {
			return nil, fmt.Errorf("series %d: %w", i, err)
		}
		if s == nil {
			return nil, fmt.Errorf("series %d: chart is disposed", i)
		}
		b.entries = append(b.entries, binding{column: spec.Column, series: s})
	}
	return b, b.Update(ds)
}

// Update replaces the data of every bound series with the matching column
// of ds. Columns missing from ds leave their series untouched.
func (b *Binding) Update(ds Dataset) error {
	var err error
	for _, e := range b.entries {
		col, ok := ds.Column(e.column)
		if !ok {
			continue
		}
		points, convErr := convert(col, e.series.Type())
		if convErr != nil {
			err = multierr.Append(err, convErr)
			continue
		}
		err = multierr.Append(err, e.series.SetData(points))
	}
	return err
}

// Series returns the bound series in binding order.
func (b *Binding) Series() []*chart.Series {
	out := make([]*chart.Series, len(b.entries))
	for i, e := range b.entries {
		out[i] = e.series
	}
	return out
}

// Columns returns the bound column names in binding order.
func (b *Binding) Columns() []string {
	out := make([]string, len(b.entries))
	for i, e := range b.entries {
		out[i] = e.column
	}
	return out
}

// convert reshapes the points of col for a series of the given type. Bars
// drawn as lines follow their close.
func convert(col Column, kind series.Type) ([]series.Point, error) {
	out := make([]series.Point, 0, len(col.Points))
	for _, p := range col.Points {
		switch p := p.(type) {
		case series.BarPoint:
			switch kind {
			case series.Bar, series.Candlestick:
				out = append(out, p)
			case series.Line, series.Area:
				out = append(out, series.LinePoint{Time: p.Time, Value: p.Close})
			case series.Histogram:
				out = append(out, series.HistogramPoint{Time: p.Time, Value: p.Close})
			}
		case series.LinePoint:
			switch kind {
			case series.Line, series.Area:
				out = append(out, p)
			case series.Histogram:
				out = append(out, series.HistogramPoint{Time: p.Time, Value: p.Value})
			default:
				return nil, fmt.Errorf("column %q: %s series needs open, high, low and close", col.Name, kind)
			}
		}
	}
	return out, nil
}
