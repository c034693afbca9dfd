// Package style formats text with terminal colors and weights
//
// Colors come from W3C/X11 names, #rrggbb hex or "r,g,b" triples. Output is
// a self-contained SGR-wrapped string in truecolor or xterm-256 form.
package style

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// Color is a 24-bit color; None leaves the terminal default in place
type Color struct {
	R, G, B uint8
	none    bool
}

// None is the terminal default color
var None = Color{none: true}

// ErrUnknownColor is returned by Parse for unrecognized input
var ErrUnknownColor = errors.New("unknown color")

// RGB builds a color from components
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// IsNone reports whether c is the default color
func (c Color) IsNone() bool {
	return c.none
}

// Parse resolves a palette name, "#rrggbb" hex, or "r,g,b" triple
func Parse(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case s == "" || s == "default" || s == "none":
		return None, nil
	case strings.HasPrefix(s, "#"):
		cf, err := colorful.Hex(s)
		if err != nil {
			return None, errors.Wrapf(ErrUnknownColor, "%q", s)
		}
		r, g, b := cf.RGB255()
		return RGB(r, g, b), nil
	case strings.Contains(s, ","):
		return parseTriple(s)
	}

	tc := tcell.GetColor(s)
	if tc == tcell.ColorDefault {
		return None, errors.Wrapf(ErrUnknownColor, "%q", s)
	}
	r, g, b := tc.RGB()
	if r < 0 {
		return None, errors.Wrapf(ErrUnknownColor, "%q", s)
	}
	return RGB(uint8(r), uint8(g), uint8(b)), nil
}

// MustParse panics on unknown colors; for package-level palettes
func MustParse(s string) Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseTriple(s string) (Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return None, errors.Wrapf(ErrUnknownColor, "%q: want r,g,b", s)
	}
	var v [3]uint8
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 255 {
			return None, errors.Wrapf(ErrUnknownColor, "%q: component %d", s, i)
		}
		v[i] = uint8(n)
	}
	return RGB(v[0], v[1], v[2]), nil
}

// Negative returns the inverted color
func (c Color) Negative() Color {
	if c.none {
		return c
	}
	return RGB(255-c.R, 255-c.G, 255-c.B)
}

// Blend mixes c toward other in Lab space; t in [0,1]
func (c Color) Blend(other Color, t float64) Color {
	if c.none || other.none {
		return c
	}
	a := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	b := colorful.Color{R: float64(other.R) / 255, G: float64(other.G) / 255, B: float64(other.B) / 255}
	r, g, bl := a.BlendLab(b, t).Clamped().RGB255()
	return RGB(r, g, bl)
}

// Hex returns "#rrggbb", or "default" for None
func (c Color) Hex() string {
	if c.none {
		return "default"
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) String() string {
	return c.Hex()
}

// Names lists every palette name Parse accepts, sorted
func Names() []string {
	names := make([]string, 0, len(tcell.ColorNames))
	for name := range tcell.ColorNames {
		if tcell.ColorNames[name].Hex() < 0 {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
