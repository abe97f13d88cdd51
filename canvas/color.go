package canvas

import (
	"errors"
	"fmt"
	"image/color"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrInvalidColor is wrapped by every error returned from ParseColor.
var ErrInvalidColor = errors.New("invalid color")

var (
	funcColor  = regexp.MustCompile(`^rgba?\(([^,]+),([^,]+),([^,]+)(?:,([^,]+))?\)$`)
	colorCache sync.Map
	extraNames = map[string]drawing.Color{
		"gray":   {R: 128, G: 128, B: 128, A: 255},
		"grey":   {R: 128, G: 128, B: 128, A: 255},
		"orange": {R: 255, G: 165, B: 0, A: 255},
	}
)

// ParseColor parses the CSS color forms used by chart options: #rgb,
// #rgba, #rrggbb, #rrggbbaa, rgb(), rgba() and basic color keywords.
func ParseColor(s string) (color.NRGBA, error) {
	if c, ok := colorCache.Load(s); ok {
		return c.(color.NRGBA), nil
	}
	c, err := parseColor(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	nrgba := color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
	colorCache.Store(s, nrgba)
	return nrgba, nil
}

func parseColor(s string) (drawing.Color, error) {
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s[1:])
	case strings.HasPrefix(s, "rgb"):
		return parseFuncColor(s)
	}
	if c, ok := extraNames[s]; ok {
		return c, nil
	}
	if c := drawing.ColorFromKnown(s); c != (drawing.Color{}) {
		return c, nil
	}
	return drawing.Color{}, errors.New("unknown color")
}

func parseHexColor(hex string) (drawing.Color, error) {
	if _, err := strconv.ParseUint(hex, 16, 64); err != nil {
		return drawing.Color{}, err
	}
	switch len(hex) {
	case 3, 6:
		return drawing.ColorFromHex(hex), nil
	case 4:
		c := drawing.ColorFromHex(hex[:3])
		a, _ := strconv.ParseUint(hex[3:], 16, 8)
		c.A = uint8(a * 0x11)
		return c, nil
	case 8:
		c := drawing.ColorFromHex(hex[:6])
		a, _ := strconv.ParseUint(hex[6:], 16, 8)
		c.A = uint8(a)
		return c, nil
	}
	return drawing.Color{}, errors.New("bad hex length")
}

func parseFuncColor(s string) (drawing.Color, error) {
	s = strings.ReplaceAll(s, " ", "")
	m := funcColor.FindStringSubmatch(s)
	if m == nil {
		return drawing.Color{}, errors.New("malformed color function")
	}
	hasAlpha := strings.HasPrefix(s, "rgba(")
	if hasAlpha != (m[4] != "") {
		return drawing.Color{}, errors.New("wrong number of color components")
	}
	var channels [3]uint8
	for i := range channels {
		v, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return drawing.Color{}, err
		}
		channels[i] = uint8(min(max(v, 0), 255) + 0.5)
	}
	c := drawing.Color{R: channels[0], G: channels[1], B: channels[2], A: 255}
	if hasAlpha {
		a, err := strconv.ParseFloat(m[4], 64)
		if err != nil {
			return drawing.Color{}, err
		}
		c.A = drawing.ColorChannelFromFloat(min(max(a, 0), 1))
	}
	return c, nil
}
