package style

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Weight is a text attribute bitmask
type Weight uint8

const (
	Normal    Weight = 0
	Bold      Weight = 1 << 0
	Dim       Weight = 1 << 1
	Italic    Weight = 1 << 2
	Underline Weight = 1 << 3
	Reverse   Weight = 1 << 4
)

var weightParams = []struct {
	w     Weight
	param string
}{
	{Bold, "1"},
	{Dim, "2"},
	{Italic, "3"},
	{Underline, "4"},
	{Reverse, "7"},
}

// ParseWeight accepts names joined by '+' or ',' ("bold+underline")
func ParseWeight(s string) Weight {
	var w Weight
	for _, part := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool { return r == '+' || r == ',' }) {
		switch strings.TrimSpace(part) {
		case "bold":
			w |= Bold
		case "dim", "faint":
			w |= Dim
		case "italic":
			w |= Italic
		case "underline":
			w |= Underline
		case "reverse", "negative":
			w |= Reverse
		}
	}
	return w
}

// Formatter renders styled text for one color mode
type Formatter struct {
	Mode ColorMode
}

// NewFormatter returns a formatter for mode
func NewFormatter(mode ColorMode) *Formatter {
	return &Formatter{Mode: mode}
}

var defaultFormatter = &Formatter{Mode: ColorModeTrueColor}

// Format styles text with the truecolor formatter
func Format(text string, fg, bg Color, weight Weight) string {
	return defaultFormatter.Format(text, fg, bg, weight)
}

// Format wraps text in SGR sequences and a trailing reset
// Returns text unchanged when nothing is set
func (f *Formatter) Format(text string, fg, bg Color, weight Weight) string {
	params := make([]string, 0, 8)
	for _, wp := range weightParams {
		if weight&wp.w != 0 {
			params = append(params, wp.param)
		}
	}
	if !fg.IsNone() {
		params = append(params, f.colorParam(fg, "38"))
	}
	if !bg.IsNone() {
		params = append(params, f.colorParam(bg, "48"))
	}
	if len(params) == 0 {
		return text
	}
	return "\x1b[" + strings.Join(params, ";") + "m" + text + ansi.ResetStyle
}

func (f *Formatter) colorParam(c Color, base string) string {
	if f == nil || f.Mode == ColorModeTrueColor {
		return base + ";2;" + strconv.Itoa(int(c.R)) + ";" + strconv.Itoa(int(c.G)) + ";" + strconv.Itoa(int(c.B))
	}
	return base + ";5;" + strconv.Itoa(int(To256(c)))
}
