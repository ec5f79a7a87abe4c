// Package render turns a computed timetable into a color-coded PNG.
package render

import (
	"fmt"
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/tzgrid/tzgrid/timetable"
)

// Scheme maps each bucket to a cell fill color. Every field is
// caller-overridable through the color flags.
type Scheme struct {
	EarlyLate color.RGBA
	Noon      color.RGBA
	Normal    color.RGBA
}

// DefaultScheme matches the historical defaults: gold for early/late hours,
// sky blue for noon, white for normal hours.
func DefaultScheme() Scheme {
	return Scheme{
		EarlyLate: color.RGBA{R: 0xFF, G: 0xD7, B: 0x00, A: 0xFF}, // #FFD700
		Noon:      color.RGBA{R: 0x87, G: 0xCE, B: 0xEB, A: 0xFF}, // #87CEEB
		Normal:    color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	}
}

// For returns the fill color for a bucket.
func (s Scheme) For(b timetable.Bucket) color.RGBA {
	switch b {
	case timetable.EarlyLate:
		return s.EarlyLate
	case timetable.Noon:
		return s.Noon
	default:
		return s.Normal
	}
}

// ParseColor accepts CSS color keywords ("gold", "white") and hex strings
// ("#FFD700", "#fd0").
func ParseColor(s string) (color.RGBA, error) {
	trimmed := strings.TrimSpace(s)
	if c, ok := colornames.Map[strings.ToLower(trimmed)]; ok {
		return c, nil
	}

	c, err := colorful.Hex(trimmed)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}, nil
}

// ParseScheme builds a Scheme from the three color flag values.
func ParseScheme(earlyLate, noon, normal string) (Scheme, error) {
	var scheme Scheme
	var err error

	if scheme.EarlyLate, err = ParseColor(earlyLate); err != nil {
		return Scheme{}, fmt.Errorf("early/late color: %w", err)
	}
	if scheme.Noon, err = ParseColor(noon); err != nil {
		return Scheme{}, fmt.Errorf("noon color: %w", err)
	}
	if scheme.Normal, err = ParseColor(normal); err != nil {
		return Scheme{}, fmt.Errorf("normal color: %w", err)
	}
	return scheme, nil
}
