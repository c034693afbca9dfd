package editor

import (
	"fmt"

	"github.com/lixenwraith/liveterm/eventlog"
	"github.com/lixenwraith/liveterm/live"
	"github.com/lixenwraith/liveterm/style"
	"github.com/lixenwraith/liveterm/terminal"
	"github.com/mattn/go-runewidth"
)

// Options configures an editing session
type Options struct {
	// Text is the initial content
	Text string

	TabWidth int

	// StatusLine reserves the bottom row for position and history info
	StatusLine bool

	// Formatter styles the status line; nil renders it plain
	Formatter *style.Formatter
}

// Editor is a live.Consumer folding key and pointer events into a Buffer
// Every event that changes the buffer is recorded in History
type Editor struct {
	buf  *Buffer
	hist *History
	opts Options

	scrollX int
	scrollY int
	view    live.View
}

// New creates an editor over opts.Text
func New(opts Options) *Editor {
	if opts.TabWidth < 1 {
		opts.TabWidth = DefaultTabWidth
	}
	buf := NewBuffer(opts.Text)
	buf.TabWidth = opts.TabWidth
	return &Editor{
		buf:  buf,
		hist: NewHistory(buf.Lines, buf.Cursor),
		opts: opts,
	}
}

// Buffer exposes the live buffer
func (e *Editor) Buffer() *Buffer { return e.buf }

// History exposes the undo stack
func (e *Editor) History() *History { return e.hist }

// Text returns the current content
func (e *Editor) Text() string { return e.buf.Text() }

// --- live.Consumer ---

func (e *Editor) Init(view live.View) (live.Frame, error) {
	e.view = view
	return e.frame(), nil
}

func (e *Editor) Step(batch eventlog.Batch, view live.View) (live.Frame, error) {
	e.view = view
	for _, k := range batch.Keys {
		e.HandleKey(k)
	}
	for _, p := range batch.Pointers {
		e.HandlePointer(p)
	}
	return e.frame(), nil
}

// --- Event folding ---

// HandleKey applies one key event
func (e *Editor) HandleKey(k terminal.Key) {
	switch k {
	case terminal.KeyCtrlZ:
		if s, ok := e.hist.Undo(); ok {
			e.restore(s)
		}
		return
	case terminal.KeyCtrlY:
		if s, ok := e.hist.Redo(); ok {
			e.restore(s)
		}
		return
	}

	e.applyKey(k)
	e.hist.Record(e.buf.Lines, e.buf.Cursor)
}

func (e *Editor) applyKey(k terminal.Key) {
	b := e.buf
	switch k {
	case terminal.KeyEnter:
		b.InsertNewline()
	case terminal.KeyTab:
		b.InsertTab()
	case terminal.KeyBackspace:
		b.Backspace()
	case terminal.KeyDelete:
		b.Delete()
	case terminal.KeyCtrlBackspace:
		b.DeleteWordBackward()
	case terminal.KeyCtrlDelete:
		b.DeleteWordForward()
	case terminal.KeyAltBackspace:
		b.DeleteToLineStart()

	case terminal.KeyLeft:
		b.MoveLeft()
	case terminal.KeyRight:
		b.MoveRight()
	case terminal.KeyUp:
		b.MoveUp()
	case terminal.KeyDown:
		b.MoveDown()
	case terminal.KeyCtrlLeft:
		b.MoveWordLeft()
	case terminal.KeyCtrlRight:
		b.MoveWordRight()
	case terminal.KeyCtrlUp:
		b.SwapUp()
	case terminal.KeyCtrlDown:
		b.SwapDown()
	case terminal.KeyHome:
		b.MoveLineStart()
	case terminal.KeyEnd:
		b.MoveLineEnd()
	case terminal.KeyCtrlHome:
		b.MoveBufferStart()
	case terminal.KeyCtrlEnd:
		b.MoveBufferEnd()
	case terminal.KeyPageUp:
		for i := 0; i < e.textHeight(); i++ {
			b.MoveUp()
		}
	case terminal.KeyPageDown:
		for i := 0; i < e.textHeight(); i++ {
			b.MoveDown()
		}

	default:
		if r, ok := k.Rune(); ok {
			b.Insert(r)
		}
	}
}

// HandlePointer applies one mouse event; clicks land on the nearest cell
func (e *Editor) HandlePointer(p terminal.PointerEvent) {
	switch p.Action {
	case terminal.LeftClick, terminal.LeftDrag:
		if e.opts.StatusLine && p.Row >= e.textHeight() {
			return
		}
		row := p.Row + e.scrollY
		if row >= e.buf.LineCount() {
			row = e.buf.LineCount() - 1
		}
		if row < 0 {
			row = 0
		}
		col := runeIndexAt(e.buf.Lines[row], e.scrollX, p.Col)
		e.buf.SetCursor(row, col)
	case terminal.ScrollUp:
		e.buf.MoveUp()
	case terminal.ScrollDown:
		e.buf.MoveDown()
	}
}

func (e *Editor) restore(s Snapshot) {
	e.buf.Lines = s.Lines
	e.buf.Cursor = s.Cursor
	e.buf.clamp()
}

// --- Rendering ---

func (e *Editor) textHeight() int {
	h := e.view.Height
	if e.opts.StatusLine {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

// adjustScroll keeps the cursor inside the viewport
func (e *Editor) adjustScroll() {
	h := e.textHeight()
	w := e.view.Width
	if w < 1 {
		w = 1
	}
	cur := e.buf.Cursor

	if cur.Row < e.scrollY {
		e.scrollY = cur.Row
	}
	if cur.Row >= e.scrollY+h {
		e.scrollY = cur.Row - h + 1
	}
	if e.scrollY < 0 {
		e.scrollY = 0
	}

	line := e.buf.Lines[cur.Row]
	if cur.Col < e.scrollX {
		e.scrollX = cur.Col
	}
	for e.scrollX < cur.Col && runewidth.StringWidth(string(line[e.scrollX:cur.Col])) >= w {
		e.scrollX++
	}
}

func (e *Editor) frame() live.Frame {
	e.adjustScroll()
	h := e.textHeight()

	lines := make([]string, 0, e.view.Height)
	for i := 0; i < h; i++ {
		row := e.scrollY + i
		if row >= e.buf.LineCount() {
			break
		}
		line := e.buf.Lines[row]
		if e.scrollX < len(line) {
			lines = append(lines, string(line[e.scrollX:]))
		} else {
			lines = append(lines, "")
		}
	}

	if e.opts.StatusLine {
		for len(lines) < h {
			lines = append(lines, "")
		}
		lines = append(lines, e.statusLine())
	}

	cur := e.buf.Cursor
	return live.Frame{
		Lines:         lines,
		CursorRow:     cur.Row - e.scrollY,
		CursorCol:     runewidth.StringWidth(string(e.buf.Lines[cur.Row][e.scrollX:cur.Col])),
		CursorVisible: true,
		CursorShape:   terminal.CursorBar,
	}
}

func (e *Editor) statusLine() string {
	cur := e.buf.Cursor
	text := fmt.Sprintf(" Ln %d, Col %d | %d lines | history %d/%d | Ctrl-z undo, Ctrl-y redo, Esc x3 quit",
		cur.Row+1, cur.Col+1, e.buf.LineCount(), e.hist.Index()+1, e.hist.Len())
	if pad := e.view.Width - runewidth.StringWidth(text); pad > 0 {
		text += fmt.Sprintf("%*s", pad, "")
	}
	if e.opts.Formatter == nil {
		return text
	}
	return e.opts.Formatter.Format(text, style.None, style.None, style.Reverse)
}

// runeIndexAt maps a screen column to a rune index, starting at rune from
func runeIndexAt(line []rune, from, cellCol int) int {
	w := 0
	for i := from; i < len(line); i++ {
		rw := runewidth.RuneWidth(line[i])
		if w+rw > cellCol {
			return i
		}
		w += rw
	}
	return len(line)
}
