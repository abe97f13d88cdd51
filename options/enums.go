package options

import "strings"

// enum resolves a value that may be given either by number or by name.
func enum[E ~uint8](t Tree, path string, names []string, def E) E {
	v, _ := t.lookup(path)
	if s, ok := v.(string); ok {
		for i, n := range names {
			if strings.EqualFold(n, s) {
				return E(i)
			}
		}
		return def
	}
	f, ok := number(v)
	if !ok || f < 0 || int(f) >= len(names) || f != float64(int(f)) {
		return def
	}
	return E(f)
}

func enumName(names []string, i uint8) string {
	if int(i) < len(names) {
		return names[i]
	}
	return "Unknown"
}

type LineStyle uint8

const (
	Solid LineStyle = iota
	Dotted
	Dashed
	LargeDashed
	SparseDotted
)

var lineStyleNames = []string{"Solid", "Dotted", "Dashed", "LargeDashed", "SparseDotted"}

func (s LineStyle) String() string { return enumName(lineStyleNames, uint8(s)) }

// Dash returns the canvas dash pattern drawn for the style.
func (s LineStyle) Dash() []float64 {
	switch s {
	case Dotted:
		return []float64{1, 4}
	case Dashed:
		return []float64{6, 6}
	case LargeDashed:
		return []float64{12, 6}
	case SparseDotted:
		return []float64{1, 8}
	}
	return []float64{}
}

// LineStyle reads a LineStyle at path.
func (t Tree) LineStyle(path string, def LineStyle) LineStyle {
	return enum(t, path, lineStyleNames, def)
}

type LineType uint8

const (
	Simple LineType = iota
	WithSteps
)

var lineTypeNames = []string{"Simple", "WithSteps"}

func (l LineType) String() string { return enumName(lineTypeNames, uint8(l)) }

func (t Tree) LineType(path string, def LineType) LineType {
	return enum(t, path, lineTypeNames, def)
}

type CrosshairMode uint8

const (
	CrosshairNormal CrosshairMode = iota
	CrosshairMagnet
	CrosshairHidden
)

var crosshairModeNames = []string{"Normal", "Magnet", "Hidden"}

func (m CrosshairMode) String() string { return enumName(crosshairModeNames, uint8(m)) }

func (t Tree) CrosshairMode(path string, def CrosshairMode) CrosshairMode {
	return enum(t, path, crosshairModeNames, def)
}

// PriceScaleMode is accepted for compatibility; every mode is drawn as
// PriceScaleNormal.
type PriceScaleMode uint8

const (
	PriceScaleNormal PriceScaleMode = iota
	PriceScaleLogarithmic
	PriceScalePercentage
	PriceScaleIndexedTo100
)

var priceScaleModeNames = []string{"Normal", "Logarithmic", "Percentage", "IndexedTo100"}

func (m PriceScaleMode) String() string { return enumName(priceScaleModeNames, uint8(m)) }

func (t Tree) PriceScaleMode(path string, def PriceScaleMode) PriceScaleMode {
	return enum(t, path, priceScaleModeNames, def)
}

type ColorType uint8

const (
	ColorSolid ColorType = iota
	ColorVerticalGradient
)

var colorTypeNames = []string{"Solid", "VerticalGradient"}

func (c ColorType) String() string { return enumName(colorTypeNames, uint8(c)) }

func (t Tree) ColorType(path string, def ColorType) ColorType {
	return enum(t, path, colorTypeNames, def)
}

type PriceLineSource uint8

const (
	LastBar PriceLineSource = iota
	LastVisible
)

var priceLineSourceNames = []string{"LastBar", "LastVisible"}

func (p PriceLineSource) String() string { return enumName(priceLineSourceNames, uint8(p)) }

func (t Tree) PriceLineSource(path string, def PriceLineSource) PriceLineSource {
	return enum(t, path, priceLineSourceNames, def)
}

// LastPriceAnimationMode is carried in options but charts are drawn
// statically.
type LastPriceAnimationMode uint8

const (
	AnimationDisabled LastPriceAnimationMode = iota
	AnimationContinuous
	AnimationOnDataUpdate
)

var lastPriceAnimationNames = []string{"Disabled", "Continuous", "OnDataUpdate"}

func (m LastPriceAnimationMode) String() string { return enumName(lastPriceAnimationNames, uint8(m)) }

func (t Tree) LastPriceAnimationMode(path string, def LastPriceAnimationMode) LastPriceAnimationMode {
	return enum(t, path, lastPriceAnimationNames, def)
}
