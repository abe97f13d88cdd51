package chart

import (
	"fmt"
	"slices"

	"git.sr.ht/~whereswaldon/tradechart/canvas"
	"git.sr.ht/~whereswaldon/tradechart/options"
	"git.sr.ht/~whereswaldon/tradechart/series"
)

// Series is the handle to one series registered on a Chart.
type Series struct {
	chart   *Chart
	kind    series.Type
	store   *series.Store
	opts    options.Tree
	removed bool
}

// AddSeries registers a series of the given type with opts merged over the
// type's defaults. It returns nil only if the chart is Disposed.
func (c *Chart) AddSeries(kind series.Type, opts options.Tree) (*Series, error) {
	if c.state == Disposed {
		return nil, nil
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("chart: add series: unknown type %s", kind)
	}
	s := &Series{
		chart: c,
		kind:  kind,
		store: series.NewStore(kind),
		opts:  options.DeepMerge(kind.Defaults(), opts),
	}
	c.series = append(c.series, s)
	log.WithField("type", kind).Debug("series added")
	return s, c.invalidate()
}

// RemoveSeries unregisters s. Removing a series twice does nothing.
func (c *Chart) RemoveSeries(s *Series) error {
	if c.state == Disposed || s == nil || s.chart != c || s.removed {
		return nil
	}
	s.removed = true
	c.series = slices.DeleteFunc(c.series, func(e *Series) bool { return e == s })
	return c.invalidate()
}

// Series returns the registered series in registration order.
func (c *Chart) Series() []*Series {
	return slices.Clone(c.series)
}

func (s *Series) live() bool {
	return s != nil && !s.removed && s.chart.state != Disposed
}

func (s *Series) Type() series.Type {
	return s.kind
}

// SetData replaces the series data.
func (s *Series) SetData(points []series.Point) error {
	if !s.live() {
		return nil
	}
	if err := s.store.Replace(points); err != nil {
		return fmt.Errorf("set data: %w", err)
	}
	return s.chart.invalidate()
}

// Update replaces the point with the same time as p, or adds p.
func (s *Series) Update(p series.Point) error {
	if !s.live() {
		return nil
	}
	if err := s.store.Upsert(p); err != nil {
		return fmt.Errorf("update: %w", err)
	}
	return s.chart.invalidate()
}

// ApplyOptions merges partial into the series options.
func (s *Series) ApplyOptions(partial options.Tree) error {
	if !s.live() {
		return nil
	}
	s.opts = options.DeepMerge(s.opts, partial)
	return s.chart.invalidate()
}

// Options returns a copy of the resolved series options.
func (s *Series) Options() options.Tree {
	return s.opts.Clone()
}

// Data returns a copy of the series points in the order they were given.
func (s *Series) Data() []series.Point {
	return s.store.Points()
}

func (s *Series) visible() bool {
	return s.opts.Bool("visible", true)
}

func (s *Series) paint(ctx canvas.Context, vp series.Viewport) {
	if !s.visible() {
		return
	}
	ctx.Save()
	if err := series.Render(ctx, s.kind, s.store.Points(), s.opts, vp); err != nil {
		log.WithError(err).WithField("type", s.kind).Debug("series not drawn")
	}
	ctx.Restore()
}

// mainColor is the color used for the price line and crosshair labels of
// the series.
func (s *Series) mainColor(last series.Point) string {
	switch s.kind {
	case series.Area:
		return s.opts.String("lineColor", options.DefaultLineColor)
	case series.Bar, series.Candlestick:
		if bar, ok := last.(series.BarPoint); ok && !bar.IsUp() {
			return s.opts.String("downColor", options.DefaultDownColor)
		}
		return s.opts.String("upColor", options.DefaultUpColor)
	case series.Histogram:
		if h, ok := last.(series.HistogramPoint); ok && h.Color != "" {
			return h.Color
		}
	}
	return s.opts.String("color", options.DefaultLineColor)
}
