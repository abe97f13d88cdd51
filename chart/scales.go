package chart

import (
	"git.sr.ht/~whereswaldon/tradechart/options"
	"git.sr.ht/~whereswaldon/tradechart/scale"
)

// TimeScale controls the visible time window of a Chart. Until a range is
// set or scrolled to, the window follows the data.
type TimeScale struct {
	chart    *Chart
	explicit *scale.TimeRange
}

// visibleRange returns the window used for drawing. ok is false when the
// window has neither been set nor can be derived from data.
func (t *TimeScale) visibleRange() (scale.TimeRange, bool) {
	if t.explicit != nil {
		return *t.explicit, true
	}
	c := t.chart
	domain, ok := c.dataDomain()
	if !ok {
		return scale.TimeRange{}, false
	}
	if offset := c.opts.Float("timeScale.rightOffset", 0); offset != 0 {
		domain.To = scale.Timestamp(domain.To.Seconds() + offset*c.interval())
	}
	return domain, true
}

// VisibleRange returns the current window.
func (t *TimeScale) VisibleRange() (scale.TimeRange, bool) {
	if t.chart.state == Disposed {
		return scale.TimeRange{}, false
	}
	return t.visibleRange()
}

// SetVisibleRange pins the window to r.
func (t *TimeScale) SetVisibleRange(r scale.TimeRange) error {
	if t.chart.state == Disposed {
		return nil
	}
	t.explicit = &r
	return t.chart.invalidate()
}

// ScrollToPosition keeps the width of the window and moves it so that its
// right edge lies pos bars after the latest data point. Negative positions
// scroll into history.
func (t *TimeScale) ScrollToPosition(pos float64) error {
	c := t.chart
	if c.state == Disposed {
		return nil
	}
	last, ok := c.lastTime()
	if !ok {
		return nil
	}
	current, _ := t.visibleRange()
	span := current.Span()
	to := last.Seconds() + pos*c.interval()
	t.explicit = &scale.TimeRange{From: scale.Timestamp(to - span), To: scale.Timestamp(to)}
	return c.invalidate()
}

// ScrollToRealTime scrolls so the latest data point sits rightOffset bars
// from the right edge.
func (t *TimeScale) ScrollToRealTime() error {
	return t.ScrollToPosition(t.chart.opts.Float("timeScale.rightOffset", 0))
}

// FitContent makes the window follow the data again.
func (t *TimeScale) FitContent() error {
	if t.chart.state == Disposed {
		return nil
	}
	t.explicit = nil
	return t.chart.invalidate()
}

// ApplyOptions merges partial into the chart's timeScale options.
func (t *TimeScale) ApplyOptions(partial options.Tree) error {
	return t.chart.ApplyOptions(options.Tree{"timeScale": partial})
}

// Options returns a copy of the timeScale options.
func (t *TimeScale) Options() options.Tree {
	return t.chart.opts.Sub("timeScale").Clone()
}

// PriceScale controls the vertical scale of a Chart.
type PriceScale struct {
	chart *Chart
}

// ApplyOptions merges partial into the chart's priceScale options.
func (p *PriceScale) ApplyOptions(partial options.Tree) error {
	return p.chart.ApplyOptions(options.Tree{"priceScale": partial})
}

// Options returns a copy of the priceScale options.
func (p *PriceScale) Options() options.Tree {
	return p.chart.opts.Sub("priceScale").Clone()
}

// VisibleRange returns the price range of the next frame.
func (p *PriceScale) VisibleRange() scale.PriceRange {
	return p.chart.viewport().Price
}
