package chart

import (
	"math"

	"git.sr.ht/~whereswaldon/tradechart/options"
	"git.sr.ht/~whereswaldon/tradechart/scale"
	"git.sr.ht/~whereswaldon/tradechart/series"
)

// TouchPhase is the stage of a pointer or touch gesture.
type TouchPhase uint8

const (
	TouchStart TouchPhase = iota
	TouchMove
	TouchEnd
)

// clickSlop is how far, in pixels, a touch may travel and still count as a
// click when it ends.
const clickSlop = 4

type crosshair struct {
	active bool
	x, y   float64
	time   scale.Time
	price  float64

	startX, startY float64
	moved          bool
}

// SeriesPoint pairs a series with one of its points.
type SeriesPoint struct {
	Series *Series
	Point  series.Point
}

// CrosshairEvent describes the crosshair position. Valid is false once the
// pointer has left the chart.
type CrosshairEvent struct {
	Valid  bool
	X, Y   float64
	Time   scale.Time
	Price  float64
	Points []SeriesPoint
}

type subscription struct {
	id int
	fn func(CrosshairEvent)
}

type subscriptions struct {
	next      int
	crosshair []subscription
	click     []subscription
}

func (s *subscriptions) add(list *[]subscription, fn func(CrosshairEvent)) func() {
	s.next++
	id := s.next
	*list = append(*list, subscription{id: id, fn: fn})
	return func() {
		for i, sub := range *list {
			if sub.id == id {
				*list = append((*list)[:i:i], (*list)[i+1:]...)
				return
			}
		}
	}
}

func notify(list []subscription, ev CrosshairEvent) {
	// Copy so handlers may unsubscribe while being notified.
	for _, sub := range append([]subscription(nil), list...) {
		sub.fn(ev)
	}
}

// SubscribeCrosshairMove calls fn every time the crosshair moves or
// disappears. The returned function cancels the subscription.
func (c *Chart) SubscribeCrosshairMove(fn func(CrosshairEvent)) (unsubscribe func()) {
	if c.state == Disposed {
		return func() {}
	}
	return c.subs.add(&c.subs.crosshair, fn)
}

// SubscribeClick calls fn when a touch ends close to where it started.
func (c *Chart) SubscribeClick(fn func(CrosshairEvent)) (unsubscribe func()) {
	if c.state == Disposed {
		return func() {}
	}
	return c.subs.add(&c.subs.click, fn)
}

// Touch delivers a pointer position in surface pixels. Start and move show
// the crosshair there, end hides it.
func (c *Chart) Touch(x, y float64, phase TouchPhase) error {
	if c.state == Disposed {
		return nil
	}
	ch := &c.crosshair
	if phase == TouchStart {
		ch.startX, ch.startY, ch.moved = x, y, false
	}
	if math.Hypot(x-ch.startX, y-ch.startY) > clickSlop {
		ch.moved = true
	}
	ev := c.locate(x, y)
	if phase == TouchEnd {
		ch.active = false
		clicked := !ch.moved
		err := c.invalidate()
		notify(c.subs.crosshair, CrosshairEvent{})
		if clicked {
			notify(c.subs.click, ev)
		}
		return err
	}
	ch.active = true
	ch.x, ch.y, ch.time, ch.price = ev.X, ev.Y, ev.Time, ev.Price
	err := c.invalidate()
	notify(c.subs.crosshair, ev)
	return err
}

// locate maps a pixel to data space and gathers the nearest point of each
// visible series. In magnet mode the position snaps to the first series'
// nearest point.
func (c *Chart) locate(x, y float64) CrosshairEvent {
	vp := c.viewport()
	ev := CrosshairEvent{Valid: true, X: x, Y: y, Time: vp.TimeAt(x), Price: vp.PriceAt(y)}
	for _, s := range c.series {
		if !s.visible() {
			continue
		}
		if p, ok := s.store.Nearest(ev.Time); ok {
			ev.Points = append(ev.Points, SeriesPoint{Series: s, Point: p})
		}
	}
	if len(ev.Points) > 0 && c.opts.CrosshairMode("crosshair.mode", options.CrosshairNormal) == options.CrosshairMagnet {
		p := ev.Points[0].Point
		ev.Time, ev.Price = p.When(), p.Price()
		ev.X, ev.Y = vp.X(p.When()), vp.Y(p.Price())
	}
	return ev
}
