package imaging

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// namedColors are the colour names accepted in addition to hex notation.
var namedColors = map[string]string{
	"black":   "#000000",
	"white":   "#FFFFFF",
	"red":     "#FF0000",
	"green":   "#00FF00",
	"blue":    "#0000FF",
	"yellow":  "#FFFF00",
	"cyan":    "#00FFFF",
	"magenta": "#FF00FF",
	"gray":    "#808080",
}

// ParseColor parses a colour given as "#RRGGBB", "#RGB", the same without
// the leading '#', or one of a few basic names ("black", "white", "red",
// ...).
func ParseColor(s string) (colorful.Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return colorful.Color{}, fmt.Errorf("empty color string")
	}
	if hex, ok := namedColors[strings.ToLower(s)]; ok {
		s = hex
	}
	if s[0] != '#' {
		s = "#" + s
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}

// Ramp maps grid values onto colours between Low and High.
//
// Values at or below lo get Low, values at or above hi get High, and values
// in between are blended in CIE-Lab. When lo == hi every zero value maps to
// Low and every other value to High, so a constant mask is still visible.
type Ramp struct {
	lo, hi    float64
	low, high colorful.Color
	cache     map[float64]color.NRGBA
}

// NewRamp creates a ramp over [lo, hi].
func NewRamp(lo, hi float64, low, high colorful.Color) *Ramp {
	return &Ramp{
		lo:    lo,
		hi:    hi,
		low:   low,
		high:  high,
		cache: make(map[float64]color.NRGBA),
	}
}

// At returns the colour for value v. Masks usually hold only a couple of
// distinct values, so results are memoised.
func (r *Ramp) At(v float64) color.NRGBA {
	if c, ok := r.cache[v]; ok {
		return c
	}

	var t float64
	switch {
	case r.hi > r.lo:
		t = (v - r.lo) / (r.hi - r.lo)
		t = clamp(t, 0, 1)
	case v != 0:
		t = 1
	}
	blend := r.low
	switch {
	case t >= 1:
		blend = r.high
	case t > 0:
		blend = r.low.BlendLab(r.high, t).Clamped()
	}
	cr, cg, cb := blend.RGB255()
	c := color.NRGBA{R: cr, G: cg, B: cb, A: 255}
	r.cache[v] = c
	return c
}

// clamp constrains a value to the range [min, max].
func clamp(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
