package main

import (
	"fmt"
	"image/color"

	"git.sr.ht/~whereswaldon/tradechart/canvas"
	"git.sr.ht/~whereswaldon/tradechart/chart"
	"git.sr.ht/~whereswaldon/tradechart/options"
	"git.sr.ht/~whereswaldon/tradechart/series"
)

var palette = []color.NRGBA{
	{R: 0x2b, G: 0x7f, B: 0xa8, A: 0xff}, //#2b7fa8
	{R: 0xa4, G: 0x63, B: 0x3a, A: 0xff}, //#a4633a
	{R: 0x51, G: 0x85, B: 0x4d, A: 0xff}, //#51854d
	{R: 0x72, G: 0x6c, B: 0xae, A: 0xff}, //#726cae
	{R: 0x85, G: 0x76, B: 0x25, A: 0xff}, //#857625
	{R: 0x97, G: 0x5f, B: 0x91, A: 0xff}, //#975f91
}

// hex formats c as #rrggbbaa.
func hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func withAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}

// paletteOptions returns options giving the i-th single color series its
// palette color. Bar series keep their up and down colors.
func paletteOptions(kind series.Type, i int) options.Tree {
	c := palette[i%len(palette)]
	switch kind {
	case series.Line:
		return options.Tree{"color": hex(c)}
	case series.Area:
		return options.Tree{
			"lineColor":   hex(c),
			"topColor":    hex(withAlpha(c, 0x70)),
			"bottomColor": hex(withAlpha(c, 0x08)),
		}
	case series.Histogram:
		return options.Tree{"color": hex(withAlpha(c, 0x80))}
	}
	return nil
}

// swatch returns the color a legend shows for s.
func swatch(s *chart.Series) color.NRGBA {
	opts := s.Options()
	key := "color"
	switch s.Type() {
	case series.Area:
		key = "lineColor"
	case series.Bar, series.Candlestick:
		key = "upColor"
	}
	c, err := canvas.ParseColor(opts.String(key, ""))
	if err != nil {
		return color.NRGBA{A: 0xff}
	}
	c.A = 0xff
	return c
}
