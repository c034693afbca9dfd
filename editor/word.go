package editor

import "unicode"

// cellClass partitions buffer cells for word-group navigation
type cellClass uint8

const (
	classWord cellClass = iota
	classSpace
	classDelimiter
)

// isWordChar returns true for letters and digits; '_' is punctuation
func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func classOf(r rune) cellClass {
	switch {
	case isWordChar(r):
		return classWord
	case unicode.IsSpace(r):
		return classSpace
	default:
		return classDelimiter
	}
}

// cellWalker steps over cells away from the cursor
// A line break counts as one whitespace cell
type cellWalker struct {
	b        *Buffer
	row, col int
	forward  bool
}

func (w *cellWalker) next() (cellClass, bool) {
	lines := w.b.Lines
	if w.forward {
		if w.col < len(lines[w.row]) {
			c := classOf(lines[w.row][w.col])
			w.col++
			return c, true
		}
		if w.row < len(lines)-1 {
			w.row++
			w.col = 0
			return classSpace, true
		}
		return 0, false
	}

	if w.col > 0 {
		w.col--
		return classOf(lines[w.row][w.col]), true
	}
	if w.row > 0 {
		w.row--
		w.col = len(lines[w.row])
		return classSpace, true
	}
	return 0, false
}

// groupLength counts the cells of the run adjacent to the cursor
// A whitespace run absorbs into the class of the first non-space cell after it;
// word and delimiter runs end at the first cell of another class
func (b *Buffer) groupLength(forward bool) int {
	w := &cellWalker{b: b, row: b.Cursor.Row, col: b.Cursor.Col, forward: forward}

	mode, ok := w.next()
	if !ok {
		return 0
	}
	n := 1
	for {
		c, ok := w.next()
		if !ok {
			return n
		}
		if mode == classSpace {
			if c != classSpace {
				mode = c
			}
			n++
			continue
		}
		if c != mode {
			return n
		}
		n++
	}
}

// WordLengthLeft returns the word-group length left of the cursor
func (b *Buffer) WordLengthLeft() int {
	return b.groupLength(false)
}

// WordLengthRight returns the word-group length right of the cursor
func (b *Buffer) WordLengthRight() int {
	return b.groupLength(true)
}

// DeleteWordBackward applies one Backspace per cell of the left group
func (b *Buffer) DeleteWordBackward() bool {
	n := b.WordLengthLeft()
	for i := 0; i < n; i++ {
		b.Backspace()
	}
	return n > 0
}

// DeleteWordForward applies one Delete per cell of the right group
func (b *Buffer) DeleteWordForward() bool {
	n := b.WordLengthRight()
	for i := 0; i < n; i++ {
		b.Delete()
	}
	return n > 0
}

// MoveWordLeft moves one cell left per cell of the left group
func (b *Buffer) MoveWordLeft() bool {
	n := b.WordLengthLeft()
	for i := 0; i < n; i++ {
		b.MoveLeft()
	}
	return n > 0
}

// MoveWordRight moves one cell right per cell of the right group
func (b *Buffer) MoveWordRight() bool {
	n := b.WordLengthRight()
	for i := 0; i < n; i++ {
		b.MoveRight()
	}
	return n > 0
}
