package main

import (
	"image"
	"strconv"

	"gioui.org/gesture"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"git.sr.ht/~whereswaldon/tradechart/backend"
	"git.sr.ht/~whereswaldon/tradechart/canvas/giocanvas"
	"git.sr.ht/~whereswaldon/tradechart/chart"
	"git.sr.ht/~whereswaldon/tradechart/options"
	"git.sr.ht/~whereswaldon/tradechart/scale"
)

var pauseIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVPause)
	return icon
}()

var playIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVPlayArrow)
	return icon
}()

var log = logrus.WithField("component", "ui")

// ChartView hosts a chart.Chart in a Gio window and turns pointer input
// into crosshair moves, zooming and panning.
type ChartView struct {
	chart   *chart.Chart
	canvas  *giocanvas.Canvas
	binding *backend.Binding
	specs   []backend.SeriesConfig
	size    image.Point

	zoom gesture.Scroll
	pan  gesture.Scroll
	// paused pins the visible window instead of following new data.
	paused   bool
	pauseBtn widget.Clickable
	Enabled  []*widget.Bool
	keyTable component.GridState

	hover       chart.CrosshairEvent
	unsubscribe func()
	err         string
}

func NewChartView(cfg backend.Config, shaper *text.Shaper, invalidate func()) *ChartView {
	v := &ChartView{
		chart:  chart.New(cfg.Chart),
		canvas: giocanvas.New(shaper, 1, 1),
		specs:  cfg.Series,
	}
	v.chart.OnRepaint(invalidate)
	v.unsubscribe = v.chart.SubscribeCrosshairMove(func(ev chart.CrosshairEvent) {
		v.hover = ev
	})
	v.report(v.chart.Bind(v.canvas))
	return v
}

func (v *ChartView) report(err error) {
	if err == nil {
		return
	}
	log.WithError(err).Warn("chart update failed")
	v.err = err.Error()
}

// Close releases the chart.
func (v *ChartView) Close() {
	v.unsubscribe()
	v.chart.Remove()
}

// HasData reports whether any series has been bound.
func (v *ChartView) HasData() bool {
	return v.binding != nil
}

// SetData shows ds, creating the series the first time a dataset arrives.
func (v *ChartView) SetData(ds backend.Dataset) {
	if v.binding != nil {
		v.report(v.binding.Update(ds))
		return
	}
	if len(ds.Columns) == 0 {
		return
	}
	b, err := backend.Bind(v.chart, ds, v.specs)
	if err != nil {
		v.report(err)
		return
	}
	v.binding = b
	if len(v.specs) == 0 {
		for i, s := range b.Series() {
			if opts := paletteOptions(s.Type(), i); opts != nil {
				v.report(s.ApplyOptions(opts))
			}
		}
	}
	v.Enabled = v.Enabled[:0]
	for range b.Series() {
		v.Enabled = append(v.Enabled, &widget.Bool{Value: true})
	}
}

func (v *ChartView) visibleRange() (scale.TimeRange, bool) {
	return v.chart.TimeScale().VisibleRange()
}

// zoomBy scales the visible window around its right edge.
func (v *ChartView) zoomBy(factor float64) {
	r, ok := v.visibleRange()
	if !ok || factor <= 0 {
		return
	}
	span := r.Span() * factor
	if span <= 0 {
		return
	}
	v.paused = true
	v.report(v.chart.TimeScale().SetVisibleRange(scale.TimeRange{
		From: scale.Timestamp(r.To.Seconds() - span),
		To:   r.To,
	}))
}

// panBy moves the visible window by px pixels of the current scale.
func (v *ChartView) panBy(px int) {
	r, ok := v.visibleRange()
	if !ok || v.size.X == 0 {
		return
	}
	dt := float64(px) * r.Span() / float64(v.size.X)
	v.paused = true
	v.report(v.chart.TimeScale().SetVisibleRange(scale.TimeRange{
		From: scale.Timestamp(r.From.Seconds() + dt),
		To:   scale.Timestamp(r.To.Seconds() + dt),
	}))
}

func (v *ChartView) Update(gtx C) {
	if v.pauseBtn.Clicked(gtx) {
		v.paused = !v.paused
		if v.paused {
			if r, ok := v.visibleRange(); ok {
				v.report(v.chart.TimeScale().SetVisibleRange(r))
			}
		} else {
			v.report(v.chart.TimeScale().FitContent())
		}
	}
	if v.binding != nil {
		for i, s := range v.binding.Series() {
			if v.Enabled[i].Update(gtx) {
				v.report(s.ApplyOptions(options.Tree{"visible": v.Enabled[i].Value}))
			}
		}
	}
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: v,
			Kinds:  pointer.Enter | pointer.Leave | pointer.Move | pointer.Press | pointer.Release | pointer.Cancel,
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		x, y := float64(e.Position.X), float64(e.Position.Y)
		switch e.Kind {
		case pointer.Press:
			v.report(v.chart.Touch(x, y, chart.TouchStart))
		case pointer.Enter, pointer.Move:
			v.report(v.chart.Touch(x, y, chart.TouchMove))
		case pointer.Release, pointer.Leave, pointer.Cancel:
			v.report(v.chart.Touch(x, y, chart.TouchEnd))
		}
	}
}

func (v *ChartView) Layout(gtx C, th *material.Theme) D {
	v.Update(gtx)

	macro := op.Record(gtx.Ops)
	keyGtx := gtx
	keyGtx.Constraints.Min = image.Point{X: gtx.Constraints.Max.X}
	keyGtx.Constraints.Max.Y = gtx.Constraints.Max.Y / 3
	keyDims := v.layoutKey(keyGtx, th)
	keyCall := macro.Stop()

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Flexed(1, func(gtx C) D {
			return layout.Stack{Alignment: layout.NE}.Layout(gtx,
				layout.Stacked(v.layoutPlot),
				layout.Stacked(func(gtx C) D {
					gtx.Constraints = layout.Exact(image.Pt(gtx.Dp(32), gtx.Dp(32)))
					icon := pauseIcon
					if v.paused {
						icon = playIcon
					}
					return material.Clickable(gtx, &v.pauseBtn, func(gtx C) D {
						return layout.Center.Layout(gtx, func(gtx C) D {
							return icon.Layout(gtx, th.Fg)
						})
					})
				}),
			)
		}),
		layout.Rigid(func(gtx C) D {
			keyCall.Add(gtx.Ops)
			return keyDims
		}),
	)
}

func (v *ChartView) layoutPlot(gtx C) D {
	size := gtx.Constraints.Max
	if size != v.size && size.X > 0 && size.Y > 0 {
		v.size = size
		v.canvas.Resize(size.X, size.Y)
		v.report(v.chart.Resize(float64(size.X), float64(size.Y)))
	}
	if dist := v.zoom.Update(gtx.Metric, gtx.Source, gtx.Now, gesture.Vertical, image.Rect(0, -1e6, 0, 1e6)); dist != 0 && size.Y > 0 {
		v.zoomBy(1 + float64(dist)/float64(size.Y))
	}
	if dist := v.pan.Update(gtx.Metric, gtx.Source, gtx.Now, gesture.Horizontal, image.Rect(-1e6, 0, 1e6, 0)); dist != 0 {
		v.panBy(dist)
	}

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	v.pan.Add(gtx.Ops)
	v.zoom.Add(gtx.Ops)
	event.Op(gtx.Ops, v)
	v.canvas.Layout(gtx)
	return D{Size: size}
}

// value returns the text the legend shows for series i: the hovered point
// if any, else the latest one.
func (v *ChartView) value(i int) string {
	s := v.binding.Series()[i]
	if v.hover.Valid {
		for _, sp := range v.hover.Points {
			if sp.Series == s {
				return strconv.FormatFloat(sp.Point.Price(), 'f', 2, 64)
			}
		}
		return ""
	}
	data := s.Data()
	if len(data) == 0 {
		return ""
	}
	return strconv.FormatFloat(data[len(data)-1].Price(), 'f', 2, 64)
}

func (v *ChartView) layoutKey(gtx C, th *material.Theme) D {
	if v.binding == nil {
		return D{}
	}
	table := component.Table(th, &v.keyTable)
	table.HScrollbarStyle.Indicator.MinorWidth = 0
	table.HScrollbarStyle.Track.MinorPadding = 0
	colorColWidth := gtx.Dp(50)
	typeColWidth := gtx.Dp(100)
	valueColWidth := gtx.Dp(100)
	nameColWidth := gtx.Constraints.Max.X - colorColWidth - typeColWidth - valueColWidth - gtx.Dp(table.VScrollbarStyle.Width())
	rowHeight := gtx.Sp(20)
	const (
		colorCol = iota
		nameCol
		typeCol
		valueCol
		numCols
	)
	columns := v.binding.Columns()
	bound := v.binding.Series()
	return table.Layout(gtx, len(bound), numCols,
		func(axis layout.Axis, index, constraint int) int {
			if axis == layout.Vertical {
				return min(constraint, rowHeight)
			}
			var size int
			switch index {
			case colorCol:
				size = colorColWidth
			case nameCol:
				size = nameColWidth
			case typeCol:
				size = typeColWidth
			case valueCol:
				size = valueColWidth
			}
			return min(size, constraint)
		},
		func(gtx C, index int) D {
			var l material.LabelStyle
			switch index {
			case colorCol:
				l = material.Body1(th, "Show")
			case nameCol:
				l = material.Body1(th, "Column")
				l.Alignment = text.Middle
			case typeCol:
				l = material.Body1(th, "Series")
			case valueCol:
				l = material.Body1(th, "Value")
				l.Alignment = text.End
			}
			l.Color = th.ContrastFg
			return layout.Background{}.Layout(gtx,
				func(gtx C) D {
					paint.FillShape(gtx.Ops, th.ContrastBg, clip.Rect{Max: gtx.Constraints.Max}.Op())
					return D{Size: gtx.Constraints.Min}
				}, l.Layout,
			)
		},
		func(gtx C, row, col int) (dims D) {
			defer func() {
				dims.Size = gtx.Constraints.Constrain(dims.Size)
			}()
			enabled := v.Enabled[row].Value
			const disabledAlpha = 100
			label := func(gtx C, txt string) D {
				l := material.Body2(th, txt)
				l.MaxLines = 1
				if !enabled {
					l.Color.A = disabledAlpha
				}
				if col == valueCol {
					l.Alignment = text.End
				}
				return l.Layout(gtx)
			}
			return layout.UniformInset(2).Layout(gtx, func(gtx C) D {
				switch col {
				case colorCol:
					return v.Enabled[row].Layout(gtx, func(gtx C) D {
						return layout.Center.Layout(gtx, func(gtx C) D {
							side := gtx.Dp(10)
							sz := image.Pt(side, side)
							c := swatch(bound[row])
							if !enabled {
								c.A = disabledAlpha
							}
							paint.FillShape(gtx.Ops, c, clip.Rect{Max: sz}.Op())
							return D{Size: sz}
						})
					})
				case nameCol:
					return label(gtx, columns[row])
				case typeCol:
					return label(gtx, bound[row].Type().String())
				case valueCol:
					return label(gtx, v.value(row))
				}
				return D{Size: gtx.Constraints.Min}
			})
		})
}
