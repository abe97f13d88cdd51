package options

const (
	DefaultLineColor = "rgba(56, 121, 217, 1)"
	DefaultUpColor   = "#26a69a"
	DefaultDownColor = "#ef5350"
	DefaultGridColor = "#D6DCDE"
	DefaultFont      = `-apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif`
)

// ChartDefaults returns the fully resolved chart options. Each call builds a
// fresh tree.
func ChartDefaults() Tree {
	line := func(color string) Tree {
		return Tree{"color": color, "width": 1.0, "style": float64(Solid), "visible": true, "labelVisible": true}
	}
	return Tree{
		"width":  400.0,
		"height": 300.0,
		"layout": Tree{
			"background": Tree{
				"type":        float64(ColorSolid),
				"color":       "#ffffff",
				"topColor":    "#ffffff",
				"bottomColor": "#ffffff",
			},
			"textColor":  "#191919",
			"fontSize":   12.0,
			"fontFamily": DefaultFont,
		},
		"grid": Tree{
			"vertLines": Tree{"color": DefaultGridColor, "style": float64(Solid), "visible": true},
			"horzLines": Tree{"color": DefaultGridColor, "style": float64(Solid), "visible": true},
		},
		"crosshair": Tree{
			"mode":     float64(CrosshairNormal),
			"vertLine": line("#758696"),
			"horzLine": line("#758696"),
		},
		"timeScale": Tree{
			"rightOffset":                  0.0,
			"barSpacing":                   6.0,
			"fixLeftEdge":                  false,
			"lockVisibleTimeRangeOnResize": false,
			"rightBarStaysOnScroll":        false,
			"borderVisible":                true,
			"borderColor":                  DefaultGridColor,
			"visible":                      true,
			"timeVisible":                  true,
			"secondsVisible":               true,
		},
		"priceScale": Tree{
			"autoScale":    true,
			"invertScale":  false,
			"mode":         float64(PriceScaleNormal),
			"visible":      true,
			"scaleMargins": Tree{"top": 0.0, "bottom": 0.0},
		},
	}
}

// Kind names a series type for the purpose of picking its defaults. It
// mirrors series.Type without importing it.
type Kind uint8

const (
	KindLine Kind = iota
	KindArea
	KindBar
	KindCandlestick
	KindHistogram
)

// SeriesDefaults returns the resolved defaults for a series of kind k. Each
// call builds a fresh tree.
func SeriesDefaults(k Kind) Tree {
	common := Tree{
		"visible":            true,
		"priceLineVisible":   false,
		"priceLineSource":    float64(LastBar),
		"priceLineWidth":     1.0,
		"priceLineStyle":     float64(Dashed),
		"lastPriceAnimation": float64(AnimationDisabled),
	}
	var specific Tree
	switch k {
	case KindLine:
		specific = Tree{
			"color":                  DefaultLineColor,
			"lineWidth":              2.0,
			"lineStyle":              float64(Solid),
			"lineType":               float64(Simple),
			"crosshairMarkerVisible": false,
			"crosshairMarkerRadius":  4.0,
		}
	case KindArea:
		specific = Tree{
			"topColor":    "rgba(56, 121, 217, 0.4)",
			"bottomColor": "rgba(56, 121, 217, 0.1)",
			"lineColor":   DefaultLineColor,
			"lineWidth":   2.0,
			"lineStyle":   float64(Solid),
			"lineType":    float64(Simple),
		}
	case KindBar:
		specific = Tree{
			"upColor":     DefaultUpColor,
			"downColor":   DefaultDownColor,
			"thinBars":    true,
			"openVisible": true,
		}
	case KindCandlestick:
		specific = Tree{
			"upColor":       DefaultUpColor,
			"downColor":     DefaultDownColor,
			"borderVisible": true,
			"wickVisible":   true,
		}
	case KindHistogram:
		specific = Tree{
			"color": DefaultLineColor,
			"base":  0.0,
		}
	}
	return DeepMerge(common, specific)
}
