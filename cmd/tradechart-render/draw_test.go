package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~whereswaldon/tradechart/backend"
	"git.sr.ht/~whereswaldon/tradechart/canvas"
	"git.sr.ht/~whereswaldon/tradechart/canvas/raster"
	"git.sr.ht/~whereswaldon/tradechart/options"
)

func writeQuotes(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quotes.csv")
	require.NoError(t, os.WriteFile(path, []byte(`date,open,high,low,close,volume
2024-01-02,10,12,9,11,1000
2024-01-03,11,13,10,12,1500
2024-01-04,12,12,8,9,2000
`), 0o644))
	return path
}

func TestDrawTrace(t *testing.T) {
	cfg := backend.Config{Data: writeQuotes(t), Chart: options.Tree{}}
	r := canvas.NewRecorder()
	c, err := draw(context.Background(), cfg, r, 300, 200, nil)
	require.NoError(t, err)
	assert.Len(t, c.Series(), 2)
	assert.NotEmpty(t, r.Filter("fillRect"))
	w, h := c.Size()
	assert.Equal(t, 300.0, w)
	assert.Equal(t, 200.0, h)
}

func TestDrawRaster(t *testing.T) {
	cfg := backend.Config{Data: writeQuotes(t), Chart: options.Tree{"layout": options.Tree{"background": options.Tree{"color": "#000000"}}}}
	img, err := raster.New(120, 80)
	require.NoError(t, err)
	_, err = draw(context.Background(), cfg, img, 120, 80, nil)
	require.NoError(t, err)
	_, _, _, a := img.Image().At(1, 1).RGBA()
	assert.NotZero(t, a, "the background is painted")
}

func TestDrawErrors(t *testing.T) {
	_, err := draw(context.Background(), backend.Config{}, canvas.NewRecorder(), 10, 10, nil)
	assert.Error(t, err)

	cfg := backend.Config{Data: filepath.Join(t.TempDir(), "missing.csv")}
	_, err = draw(context.Background(), cfg, canvas.NewRecorder(), 10, 10, nil)
	assert.Error(t, err)

	cfg = backend.Config{Data: writeQuotes(t), Series: []backend.SeriesConfig{{Column: "volume", Type: "bar"}}}
	_, err = draw(context.Background(), cfg, canvas.NewRecorder(), 10, 10, nil)
	assert.Error(t, err)
}
