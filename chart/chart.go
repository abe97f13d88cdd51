// Package chart is the controller that owns a drawing context, the chart
// options and the registered series, and repaints everything whenever any
// of them change.
//
// A Chart is not safe for concurrent use. Every mutation repaints
// synchronously on the calling goroutine before returning.
package chart

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"git.sr.ht/~whereswaldon/tradechart/canvas"
	"git.sr.ht/~whereswaldon/tradechart/options"
	"git.sr.ht/~whereswaldon/tradechart/scale"
)

var log = logrus.WithField("component", "chart")

// State is the lifecycle stage of a Chart.
type State uint8

const (
	// Uninitialized charts accept every call but draw nothing until a
	// context is bound.
	Uninitialized State = iota
	// Ready charts have a context and repaint on every change.
	Ready
	// Disposed charts ignore every call.
	Disposed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Ready:
		return "Ready"
	case Disposed:
		return "Disposed"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// maxPasses bounds how many times one repaint may restart because the
// chart was mutated while it was painting.
const maxPasses = 16

// Chart draws any number of series onto a canvas.Context.
type Chart struct {
	state State
	ctx   canvas.Context
	opts  options.Tree

	series     []*Series
	timeScale  *TimeScale
	priceScale *PriceScale
	crosshair  crosshair
	subs       subscriptions

	// frozenPrice is the last automatic price range painted, kept while
	// autoScale is off.
	frozenPrice scale.PriceRange
	havePrice   bool

	painting bool
	dirty    bool

	metrics   *Metrics
	onRepaint func()
}

// New returns an Uninitialized chart with opts merged over the defaults.
func New(opts options.Tree) *Chart {
	c := &Chart{opts: options.DeepMerge(options.ChartDefaults(), opts)}
	c.timeScale = &TimeScale{chart: c}
	c.priceScale = &PriceScale{chart: c}
	return c
}

// Instrument makes the chart report repaints to m.
func (c *Chart) Instrument(m *Metrics) {
	c.metrics = m
}

// OnRepaint registers a function run after every completed repaint, for
// hosts that must schedule a new frame to show it.
func (c *Chart) OnRepaint(f func()) {
	c.onRepaint = f
}

func (c *Chart) State() State {
	return c.state
}

// Bind attaches the drawing context and paints the first frame. Binding a
// Ready chart replaces its context.
func (c *Chart) Bind(ctx canvas.Context) error {
	if c.state == Disposed {
		return nil
	}
	if ctx == nil {
		return fmt.Errorf("chart: bind nil context")
	}
	c.ctx = ctx
	c.state = Ready
	log.WithField("context", fmt.Sprintf("%T", ctx)).Debug("bound drawing context")
	return c.invalidate()
}

// Size returns the surface size in pixels.
func (c *Chart) Size() (width, height float64) {
	return c.opts.Float("width", 400), c.opts.Float("height", 300)
}

// Resize changes the surface size.
func (c *Chart) Resize(width, height float64) error {
	if c.state == Disposed {
		return nil
	}
	c.opts.Set("width", width)
	c.opts.Set("height", height)
	return c.invalidate()
}

// ApplyOptions merges partial into the chart options.
func (c *Chart) ApplyOptions(partial options.Tree) error {
	if c.state == Disposed {
		return nil
	}
	c.opts = options.DeepMerge(c.opts, partial)
	return c.invalidate()
}

// Options returns a copy of the resolved chart options.
func (c *Chart) Options() options.Tree {
	return c.opts.Clone()
}

func (c *Chart) TimeScale() *TimeScale {
	return c.timeScale
}

func (c *Chart) PriceScale() *PriceScale {
	return c.priceScale
}

// Remove disposes of the chart and releases its context. It may be called
// any number of times.
func (c *Chart) Remove() {
	if c.state == Disposed {
		return
	}
	c.state = Disposed
	c.ctx = nil
	c.series = nil
	c.subs = subscriptions{}
	log.Debug("chart removed")
}

// invalidate repaints if the chart is Ready. A call made while a repaint is
// running, including one made from the OnRepaint hook, only marks the chart
// dirty; the running repaint then paints again once it finishes, so frames
// never interleave.
func (c *Chart) invalidate() error {
	if c.state != Ready {
		return nil
	}
	if c.painting {
		c.dirty = true
		return nil
	}
	c.painting = true
	defer func() { c.painting = false }()

	var errs error
	for pass := 0; ; pass++ {
		c.dirty = false
		errs = multierr.Append(errs, c.paint())
		// The hook only sees settled frames.
		if !c.dirty && c.onRepaint != nil {
			c.onRepaint()
		}
		if !c.dirty || c.state != Ready {
			break
		}
		if pass+1 == maxPasses {
			log.WithField("passes", maxPasses).Warn("chart kept changing while painting, giving up")
			break
		}
		c.metrics.coalesced()
	}
	return errs
}

// paint draws one full frame.
func (c *Chart) paint() error {
	ctx := c.ctx
	start := time.Now()
	vp, fitted := c.resolveViewport()
	if fitted {
		c.frozenPrice, c.havePrice = vp.Price, true
	}

	ctx.Save()
	ctx.ClearRect(0, 0, vp.Width, vp.Height)
	c.paintBackground(ctx, vp)
	c.paintGrid(ctx, vp)
	for _, s := range c.series {
		s.paint(ctx, vp)
	}
	c.paintPriceLines(ctx, vp)
	c.paintCrosshair(ctx, vp)
	ctx.Restore()

	err := ctx.Flush()
	elapsed := time.Since(start)
	c.metrics.repainted(elapsed, err)
	entry := log.WithFields(logrus.Fields{
		"series":   len(c.series),
		"width":    vp.Width,
		"height":   vp.Height,
		"duration": elapsed,
	})
	if err != nil {
		entry.WithError(err).Debug("repaint failed")
		return fmt.Errorf("repaint: %w", err)
	}
	entry.Debug("repainted")
	return nil
}
