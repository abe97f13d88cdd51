package main

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"

	"git.sr.ht/~whereswaldon/tradechart/backend"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

// picked is the outcome of a file dialog.
type picked struct {
	id  string
	err error
}

// UI is responsible for holding the state of and drawing the top-level UI.
type UI struct {
	ws         backend.WindowState
	expl       *explorer.Explorer
	cfg        backend.Config
	invalidate func()

	th          *material.Theme
	view        *ChartView
	explorerBtn widget.Clickable
	choosing    bool
	picks       chan picked
	loadErr     string

	sessionStream *stream.Stream[backend.Session]
	session       backend.Session
	replayStream  *stream.Stream[backend.ReplayState]
	replay        backend.ReplayState
}

func NewUI(ws backend.WindowState, expl *explorer.Explorer, cfg backend.Config, invalidate func()) *UI {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	ui := &UI{
		ws:         ws,
		expl:       expl,
		cfg:        cfg,
		invalidate: invalidate,
		th:         th,
		picks:      make(chan picked, 1),
	}
	ui.view = NewChartView(cfg, th.Shaper, invalidate)
	if cfg.Data != "" {
		ui.open(ws.Bundle.Datasource.Open(cfg.Data, cfg.Follow))
	}
	return ui
}

// Close releases the chart.
func (ui *UI) Close() {
	ui.view.Close()
}

// open switches the UI to the session with the given ID.
func (ui *UI) open(id string) {
	if ui.view.HasData() {
		ui.view.Close()
		ui.view = NewChartView(ui.cfg, ui.th.Shaper, ui.invalidate)
	}
	ui.session = backend.Session{}
	ui.replayStream = nil
	ui.replay = backend.ReplayState{}
	ui.sessionStream = stream.New(ui.ws.Controller, func(ctx context.Context) <-chan backend.Session {
		return ui.ws.Bundle.Datasource.StreamSession(ctx, id)
	})
}

// choose runs the file dialog without blocking the window.
func (ui *UI) choose() {
	ui.choosing = true
	go func() {
		id, err := ui.ws.Bundle.Datasource.LoadFromFile(ui.expl)
		ui.picks <- picked{id: id, err: err}
		ui.invalidate()
	}()
}

// Update the state of the UI from input and backend streams.
func (ui *UI) Update(gtx C) {
	if !ui.choosing && ui.explorerBtn.Clicked(gtx) {
		ui.choose()
	}
	select {
	case p := <-ui.picks:
		ui.choosing = false
		if p.err != nil {
			ui.loadErr = p.err.Error()
		} else {
			ui.loadErr = ""
			ui.open(p.id)
		}
	default:
	}
	if ui.sessionStream != nil {
		if s, ok := ui.sessionStream.ReadNew(gtx); ok {
			ui.onSession(s)
		}
	}
	if ui.replayStream != nil {
		if r, ok := ui.replayStream.ReadNew(gtx); ok {
			ui.replay = r
			ui.view.SetData(r.Data)
		}
	}
}

func (ui *UI) onSession(s backend.Session) {
	ui.session = s
	if s.Err != nil {
		ui.loadErr = s.Err.Error()
	}
	if ui.cfg.ReplayInterval <= 0 {
		ui.view.SetData(s.Data)
		return
	}
	if s.Done && s.Err == nil && ui.replayStream == nil {
		mut, _ := ui.ws.Bundle.Replayer.Run(s.ID, s.Data, ui.cfg.ReplayInterval)
		ui.replayStream = stream.New(ui.ws.Controller, mut.Stream)
	}
}

func (ui *UI) status() string {
	rows := 0
	for _, c := range ui.session.Data.Columns {
		rows = max(rows, len(c.Points))
	}
	state := "loading"
	switch {
	case ui.session.Done:
		state = "complete"
	case ui.cfg.Follow:
		state = "following"
	}
	out := fmt.Sprintf("%s: %d rows, %s", ui.session.Name, rows, state)
	if ui.replayStream != nil {
		out += fmt.Sprintf(", replay %d/%d", ui.replay.Step, ui.replay.Total)
	}
	return out
}

func (ui *UI) layoutMainArea(gtx C) D {
	return layout.Flex{
		Axis: layout.Vertical,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return layout.UniformInset(4).Layout(gtx, material.Body2(ui.th, ui.status()).Layout)
		}),
		layout.Rigid(func(gtx C) D {
			msg := ui.loadErr
			if msg == "" {
				msg = ui.view.err
			}
			if msg == "" {
				return D{}
			}
			l := material.Body1(ui.th, msg)
			l.Color = color.NRGBA{R: 150, A: 255}
			return l.Layout(gtx)
		}),
		layout.Flexed(1, func(gtx C) D {
			return ui.view.Layout(gtx, ui.th)
		}),
	)
}

func (ui *UI) layoutStartScreen(gtx C) D {
	msg := "No data yet."
	if ui.sessionStream != nil && ui.loadErr == "" {
		msg = "Loading…"
	}
	return layout.Flex{
		Axis:      layout.Vertical,
		Alignment: layout.Middle,
		Spacing:   layout.SpaceAround,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Body1(ui.th, msg).Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			if ui.choosing {
				gtx = gtx.Disabled()
			}
			return material.Button(ui.th, &ui.explorerBtn, "Open CSV").Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Body2(ui.th, ui.loadErr).Layout(gtx)
		}),
	)
}

// Layout the UI into the provided context.
func (ui *UI) Layout(gtx C) D {
	ui.Update(gtx)
	if ui.view.HasData() {
		return ui.layoutMainArea(gtx)
	}
	return ui.layoutStartScreen(gtx)
}
