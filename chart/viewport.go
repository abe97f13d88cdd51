package chart

import (
	"math"

	"git.sr.ht/~whereswaldon/tradechart/scale"
	"git.sr.ht/~whereswaldon/tradechart/series"
)

// viewport resolves the visible window for the next frame.
func (c *Chart) viewport() series.Viewport {
	vp, _ := c.resolveViewport()
	return vp
}

// resolveViewport is viewport that also reports whether the price range
// was fitted to data rather than frozen or empty.
func (c *Chart) resolveViewport() (series.Viewport, bool) {
	width, height := c.Size()
	vp := series.Viewport{
		Width:       width,
		Height:      height,
		InvertScale: c.opts.Bool("priceScale.invertScale", false),
	}
	vp.Time, _ = c.timeScale.visibleRange()
	var fitted bool
	vp.Price, fitted = c.priceRange(vp.Time)
	vp.BarSpacing = c.barSpacing(vp)
	return vp, fitted
}

// dataDomain is the union of the time domains of the visible series.
func (c *Chart) dataDomain() (scale.TimeRange, bool) {
	var out scale.TimeRange
	ok := false
	for _, s := range c.series {
		if !s.visible() {
			continue
		}
		d, has := s.store.Domain()
		if !has {
			continue
		}
		if !ok || scale.Compare(d.From, out.From) < 0 {
			out.From = d.From
		}
		if !ok || scale.Compare(d.To, out.To) > 0 {
			out.To = d.To
		}
		ok = true
	}
	return out, ok
}

// interval is the smallest positive gap between bars of any visible
// series, or one second when no series has two distinct times.
func (c *Chart) interval() float64 {
	gap := 0.0
	for _, s := range c.series {
		if !s.visible() {
			continue
		}
		if g := s.store.MinInterval(); g > 0 && (gap == 0 || g < gap) {
			gap = g
		}
	}
	if gap == 0 {
		return 1
	}
	return gap
}

// lastTime is the latest valid time of any visible series.
func (c *Chart) lastTime() (scale.Time, bool) {
	d, ok := c.dataDomain()
	return d.To, ok
}

// priceRange fits the visible data of every visible series, widened by
// the scale margins. With autoScale off the range of the last painted frame
// is kept.
func (c *Chart) priceRange(window scale.TimeRange) (scale.PriceRange, bool) {
	if !c.opts.Bool("priceScale.autoScale", true) && c.havePrice {
		return c.frozenPrice, false
	}
	r := scale.PriceRange{Min: math.Inf(1), Max: math.Inf(-1)}
	ok := false
	for _, s := range c.series {
		if !s.visible() {
			continue
		}
		pr, has := s.store.ValueRange(window)
		if !has {
			continue
		}
		if s.kind == series.Histogram {
			base := s.opts.Float("base", 0)
			pr = pr.Union(scale.PriceRange{Min: base, Max: base})
		}
		r = r.Union(pr)
		ok = true
	}
	if !ok {
		return scale.PriceRange{}, false
	}
	top := c.opts.Float("priceScale.scaleMargins.top", 0)
	bottom := c.opts.Float("priceScale.scaleMargins.bottom", 0)
	if top >= 0 && bottom >= 0 && top+bottom < 1 {
		span := r.Span() / (1 - top - bottom)
		r.Max += span * top
		r.Min -= span * bottom
	}
	return r, true
}

// barSpacing is the configured bar spacing, narrowed so that neighbouring
// bars do not overlap.
func (c *Chart) barSpacing(vp series.Viewport) float64 {
	spacing := c.opts.Positive("timeScale.barSpacing", series.DefaultBarSpacing)
	span := vp.Time.Span()
	if !(span > 0) {
		return spacing
	}
	if px := c.interval() / span * vp.Width; px > 0 && px < spacing {
		return px
	}
	return spacing
}
