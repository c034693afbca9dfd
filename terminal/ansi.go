package terminal

import (
	"github.com/charmbracelet/x/ansi"
)

// CursorShape is a DECSCUSR cursor style
type CursorShape int

const (
	CursorDefault CursorShape = 0
	CursorBlock   CursorShape = 1
	CursorBar     CursorShape = 5
)

// Pre-built output sequences
var (
	seqMouseOn    = []byte(ansi.SetModeMouseButtonEvent)
	seqMouseOff   = []byte(ansi.ResetModeMouseButtonEvent)
	seqClear      = []byte(ansi.EraseEntireScreen + ansi.EraseDisplay(3) + ansi.CursorHomePosition)
	seqCursorShow = []byte(ansi.SetModeTextCursorEnable)
	seqCursorHide = []byte(ansi.ResetModeTextCursorEnable)
	seqSGR0       = []byte(ansi.ResetStyle)
	seqNewline    = []byte("\r\n")
)

// MouseTracking returns the enable or disable sequence for button-event tracking
func MouseTracking(on bool) []byte {
	if on {
		return seqMouseOn
	}
	return seqMouseOff
}

// ClearScreen clears the screen and scrollback and homes the cursor
func ClearScreen() []byte {
	return seqClear
}

// CursorVisible returns the show or hide sequence
func CursorVisible(visible bool) []byte {
	if visible {
		return seqCursorShow
	}
	return seqCursorHide
}

// SetCursorShape returns the DECSCUSR sequence for shape
func SetCursorShape(shape CursorShape) []byte {
	return []byte(ansi.SetCursorStyle(int(shape)))
}

// AppendCursorPos appends a cursor move to the 0-indexed cell (row, col)
func AppendCursorPos(dst []byte, row, col int) []byte {
	if row < 0 {
		row = 0
	}
	if col < 0 {
		col = 0
	}
	return append(dst, ansi.CursorPosition(col+1, row+1)...)
}

// Newline is CR LF; raw mode disables output post-processing
func Newline() []byte {
	return seqNewline
}
