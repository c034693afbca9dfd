package live

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/liveterm/eventlog"
	"github.com/lixenwraith/liveterm/terminal"
)

const inspectorHeader = 2

// Inspector lists decoded events and carries a draggable [X] marker
// Used to check a terminal's escape sequences against the decoder
type Inspector struct {
	limit   int
	entries []string

	objRow, objCol int
	dragging       bool
	view           View
}

// NewInspector keeps the last limit entries
func NewInspector(limit int) *Inspector {
	if limit < 1 {
		limit = 10
	}
	return &Inspector{limit: limit, entries: make([]string, 0, limit)}
}

// Entries returns the logged lines, oldest first
func (in *Inspector) Entries() []string {
	return append([]string(nil), in.entries...)
}

func (in *Inspector) Init(view View) (Frame, error) {
	in.view = view
	in.objRow, in.objCol = view.Height/2, view.Width/2
	return in.frame(), nil
}

func (in *Inspector) Step(batch eventlog.Batch, view View) (Frame, error) {
	in.view = view
	for _, k := range batch.Keys {
		in.add(formatKey(k))
	}
	for _, p := range batch.Pointers {
		in.add(formatPointer(p))
		in.drag(p)
	}
	return in.frame(), nil
}

func (in *Inspector) add(s string) {
	if len(in.entries) >= in.limit {
		copy(in.entries, in.entries[1:])
		in.entries = in.entries[:in.limit-1]
	}
	in.entries = append(in.entries, s)
}

// drag moves the marker while the left button holds it
func (in *Inspector) drag(p terminal.PointerEvent) {
	switch p.Action {
	case terminal.LeftClick:
		if p.Row == in.objRow && p.Col >= in.objCol && p.Col < in.objCol+3 {
			in.dragging = true
		}
	case terminal.MouseUp:
		in.dragging = false
	case terminal.LeftDrag:
		if !in.dragging {
			return
		}
		in.objRow = clampInt(p.Row, inspectorHeader, in.view.Height-2)
		in.objCol = clampInt(p.Col, 0, in.view.Width-3)
	}
}

func (in *Inspector) frame() Frame {
	h := in.view.Height
	if h < inspectorHeader+1 {
		h = inspectorHeader + 1
	}
	lines := make([]string, h)
	lines[0] = "Input inspector - press keys, click, drag the [X] - Esc x3 to quit"
	lines[1] = strings.Repeat("─", max(in.view.Width, 1))
	for i, e := range in.entries {
		row := inspectorHeader + i
		if row >= h-1 {
			break
		}
		lines[row] = " " + e
	}

	if in.objRow >= 0 && in.objRow < h {
		lines[in.objRow] = placeAt(lines[in.objRow], in.objCol, "[X]")
	}

	lines[h-1] = fmt.Sprintf("Size: %dx%d | Object: (%d,%d) | Dragging: %v",
		in.view.Width, in.view.Height, in.objCol, in.objRow, in.dragging)

	return Frame{Lines: lines, CursorShape: terminal.CursorBlock}
}

// placeAt overlays s onto line at rune column col, padding with spaces
func placeAt(line string, col int, s string) string {
	rs := []rune(line)
	for len(rs) < col+len(s) {
		rs = append(rs, ' ')
	}
	copy(rs[col:], []rune(s))
	return string(rs)
}

func formatKey(k terminal.Key) string {
	if k.Printable() {
		r, _ := k.Rune()
		if r < 0x7f {
			return fmt.Sprintf("KEY: '%c'", r)
		}
		return fmt.Sprintf("KEY: '%c' U+%04X", r, r)
	}
	return "KEY: " + k.String()
}

func formatPointer(p terminal.PointerEvent) string {
	return fmt.Sprintf("MOUSE: %s @ (%d,%d)", p.Action, p.Col, p.Row)
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
