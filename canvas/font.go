package canvas

import (
	"regexp"
	"strconv"
	"strings"
)

var fontPixels = regexp.MustCompile(`(\d+(?:\.\d+)?)px`)

// DefaultFontSize is the pixel size assumed when a font string carries none.
const DefaultFontSize = 10

// FontSize extracts the pixel size from a CSS font shorthand such as
// "bold 12px Roboto".
func FontSize(font string) float64 {
	m := fontPixels.FindStringSubmatch(font)
	if m == nil {
		return DefaultFontSize
	}
	size, err := strconv.ParseFloat(m[1], 64)
	if err != nil || size <= 0 {
		return DefaultFontSize
	}
	return size
}

// FontFamily returns the family list that follows the size in a CSS font
// shorthand.
func FontFamily(font string) string {
	loc := fontPixels.FindStringIndex(font)
	if loc == nil {
		return strings.TrimSpace(font)
	}
	return strings.TrimSpace(font[loc[1]:])
}

// FontString builds a CSS font shorthand.
func FontString(size float64, family string) string {
	return strconv.FormatFloat(size, 'f', -1, 64) + "px " + family
}
