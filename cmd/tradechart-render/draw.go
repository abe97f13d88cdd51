package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"git.sr.ht/~whereswaldon/tradechart/backend"
	"git.sr.ht/~whereswaldon/tradechart/canvas"
	"git.sr.ht/~whereswaldon/tradechart/chart"
)

// draw reads the configured data and paints one chart of it onto target.
func draw(ctx context.Context, cfg backend.Config, target canvas.Context, w, h int, m *chart.Metrics) (*chart.Chart, error) {
	if cfg.Data == "" {
		return nil, errors.New("no data file given, use --data or set data in the config")
	}
	f, err := os.Open(cfg.Data)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ds, err := backend.ReadAll(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", cfg.Data, err)
	}

	c := chart.New(cfg.Chart)
	if m != nil {
		c.Instrument(m)
	}
	if err := c.Resize(float64(w), float64(h)); err != nil {
		return nil, err
	}
	if _, err := backend.Bind(c, ds, cfg.Series); err != nil {
		return nil, err
	}
	if err := c.TimeScale().FitContent(); err != nil {
		return nil, err
	}
	// Binding last paints exactly one frame with everything in place.
	if err := c.Bind(target); err != nil {
		return nil, err
	}
	return c, nil
}
