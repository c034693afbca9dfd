package spring

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/lixenwraith/liveterm/eventlog"
	"github.com/lixenwraith/liveterm/live"
	"github.com/lixenwraith/liveterm/style"
	"github.com/lixenwraith/liveterm/terminal"
)

const (
	// releaseHold zeroes the throw when the button rests this long before release
	releaseHold = 500 * time.Millisecond

	// maxTickSpan bounds catch-up after a stalled writer
	maxTickSpan = 250 * time.Millisecond

	// hotSpeed is the speed at which the block is fully tinted
	hotSpeed = 20.0

	blockRune  = '█'
	anchorRune = '╋'
)

// Options configures a Toy
type Options struct {
	Params Params

	// BlockColor and BackgroundColor are style.Parse names; empty uses the defaults
	BlockColor      string
	BackgroundColor string

	// Formatter colors the canvas; nil renders it plain
	Formatter *style.Formatter

	// Now is the clock used to time drags; nil uses time.Now
	Now func() time.Time
}

// Toy is a live.Consumer and live.Ticker simulating the spring
type Toy struct {
	params Params
	now    func() time.Time
	format *style.Formatter

	block, background, hot style.Color

	view   live.View
	anchor Vec
	pos    Vec
	vel    Vec
	carry  time.Duration

	locked   bool
	dragging bool
	grab     Vec
	lastDrag time.Time
}

// New creates a toy at rest; the anchor is placed on Init
func New(opts Options) *Toy {
	t := &Toy{
		params: opts.Params.withDefaults(),
		now:    opts.Now,
		format: opts.Formatter,
		block:  parseOr(opts.BlockColor, "gainsboro"),
		hot:    style.MustParse("orangered"),

		background: parseOr(opts.BackgroundColor, "navy"),
	}
	if t.now == nil {
		t.now = time.Now
	}
	return t
}

func parseOr(name, fallback string) style.Color {
	if name != "" {
		if c, err := style.Parse(name); err == nil {
			return c
		}
	}
	return style.MustParse(fallback)
}

// Position returns the block center in cells
func (t *Toy) Position() Vec { return t.pos }

// Velocity returns the block velocity
func (t *Toy) Velocity() Vec { return t.vel }

// Anchor returns the spring anchor in cells
func (t *Toy) Anchor() Vec { return t.anchor }

// Locked reports whether the toy is frozen
func (t *Toy) Locked() bool { return t.locked }

// Dragging reports whether the block is held
func (t *Toy) Dragging() bool { return t.dragging }

// --- live.Consumer ---

func (t *Toy) Init(view live.View) (live.Frame, error) {
	t.view = view
	t.anchor = Vec{Row: float64(view.Height / 2), Col: float64(view.Width / 2)}
	t.pos = t.anchor
	return t.frame(), nil
}

func (t *Toy) Step(batch eventlog.Batch, view live.View) (live.Frame, error) {
	t.view = view
	for _, k := range batch.Keys {
		t.HandleKey(k)
	}
	for _, p := range batch.Pointers {
		t.HandlePointer(p)
	}
	return t.frame(), nil
}

// Tick advances the simulation unless the block is held or the toy is locked
func (t *Toy) Tick(dt time.Duration, view live.View) (live.Frame, error) {
	t.view = view
	if dt > maxTickSpan {
		dt = maxTickSpan
	}
	if !t.dragging && !t.locked {
		span := t.carry + dt
		t.carry = span % t.params.Step
		t.pos, t.vel = integrate(t.params, t.anchor, t.pos, t.vel, span-t.carry)
	}
	return t.frame(), nil
}

// --- Event folding ---

// HandleKey toggles the lock on Space and moves the anchor with arrows
func (t *Toy) HandleKey(k terminal.Key) {
	if k == terminal.KeySpace {
		t.locked = !t.locked
		return
	}
	if t.locked {
		return
	}
	switch k {
	case terminal.KeyUp:
		t.anchor.Row--
	case terminal.KeyDown:
		t.anchor.Row++
	case terminal.KeyLeft:
		t.anchor.Col -= 2
	case terminal.KeyRight:
		t.anchor.Col += 2
	}
	t.clampAnchor()
}

// HandlePointer grabs, drags, throws and resets the block
func (t *Toy) HandlePointer(p terminal.PointerEvent) {
	if t.locked {
		return
	}
	cell := Vec{Row: float64(p.Row), Col: float64(p.Col)}
	switch p.Action {
	case terminal.LeftClick:
		if t.onBlock(p.Row, p.Col) {
			t.dragging = true
			t.grab = cell
			t.lastDrag = t.now()
		}
	case terminal.LeftDrag:
		if !t.dragging {
			return
		}
		now := t.now()
		delta := cell.sub(t.grab)
		t.pos = t.pos.add(delta)
		if elapsed := now.Sub(t.lastDrag).Seconds(); elapsed > 0 {
			t.vel = delta.scale(t.params.CellSize / elapsed)
		}
		t.grab = cell
		t.lastDrag = now
	case terminal.MouseUp:
		if !t.dragging {
			return
		}
		t.dragging = false
		if t.now().Sub(t.lastDrag) > releaseHold {
			t.vel = Vec{}
		}
	case terminal.RightClick:
		t.pos = t.anchor
		t.vel = Vec{}
		t.dragging = false
		t.carry = 0
	}
}

func (t *Toy) clampAnchor() {
	rows, cols := t.canvasSize()
	t.anchor.Row = math.Max(0, math.Min(t.anchor.Row, float64(rows-1)))
	t.anchor.Col = math.Max(0, math.Min(t.anchor.Col, float64(cols-1)))
}

// blockOrigin returns the top-left cell of the block
func (t *Toy) blockOrigin() (int, int) {
	r := t.params.Radius
	return int(math.Round(t.pos.Row)) - r, int(math.Round(t.pos.Col)) - 2*r
}

func (t *Toy) onBlock(row, col int) bool {
	r := t.params.Radius
	top, left := t.blockOrigin()
	return row >= top && row < top+2*r && col >= left && col < left+4*r
}

// --- Rendering ---

// canvasSize leaves the last row for the status line and the last column blank
func (t *Toy) canvasSize() (int, int) {
	return max(t.view.Height-1, 1), max(t.view.Width-1, 1)
}

func (t *Toy) frame() live.Frame {
	rows, cols := t.canvasSize()
	canvas := make([][]rune, rows)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", cols))
	}

	ar, ac := int(math.Round(t.anchor.Row)), int(math.Round(t.anchor.Col))
	if ar >= 0 && ar < rows && ac >= 0 && ac < cols {
		canvas[ar][ac] = anchorRune
	}

	r := t.params.Radius
	top, left := t.blockOrigin()
	for row := top; row < top+2*r; row++ {
		for col := left; col < left+4*r; col++ {
			if row > 0 && row < rows && col > 0 && col < cols {
				canvas[row][col] = blockRune
			}
		}
	}

	fg := t.block.Blend(t.hot, math.Min(t.vel.Len()/hotSpeed, 1))
	lines := make([]string, 0, rows+1)
	for _, line := range canvas {
		s := string(line)
		if t.format != nil {
			s = t.format.Format(s, fg, t.background, style.Normal)
		}
		lines = append(lines, s)
	}
	lines = append(lines, t.statusLine())

	return live.Frame{Lines: lines, CursorShape: terminal.CursorBlock}
}

func (t *Toy) statusLine() string {
	state := "running"
	switch {
	case t.locked:
		state = "locked"
	case t.dragging:
		state = "held"
	}
	return fmt.Sprintf(" %s | anchor (%d,%d) | speed %.2f | Space lock, arrows move anchor, right click reset, Esc quit",
		state, int(t.anchor.Col), int(t.anchor.Row), t.vel.Len())
}
