package editor

import (
	"strings"
)

// Cursor is a buffer position; Col ranges over [0, len(line)]
type Cursor struct {
	Row int
	Col int
}

// Buffer is a multi-line text grid with a cursor
// Always holds at least one line; lines carry no sentinel padding
type Buffer struct {
	Lines    [][]rune
	Cursor   Cursor
	TabWidth int
}

// DefaultTabWidth is the number of spaces Tab inserts
const DefaultTabWidth = 4

// NewBuffer creates a buffer holding text, cursor at the origin
func NewBuffer(text string) *Buffer {
	b := &Buffer{TabWidth: DefaultTabWidth}
	b.SetText(text)
	return b
}

// --- Value access ---

// SetText replaces all content and resets the cursor
func (b *Buffer) SetText(text string) {
	parts := strings.Split(text, "\n")
	b.Lines = make([][]rune, len(parts))
	for i, p := range parts {
		b.Lines[i] = []rune(p)
	}
	b.Cursor = Cursor{}
}

// Text returns all lines joined with newlines
func (b *Buffer) Text() string {
	var sb strings.Builder
	for i, line := range b.Lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(line))
	}
	return sb.String()
}

// Strings returns each line as a string
func (b *Buffer) Strings() []string {
	out := make([]string, len(b.Lines))
	for i, line := range b.Lines {
		out[i] = string(line)
	}
	return out
}

// LineCount returns number of lines
func (b *Buffer) LineCount() int {
	return len(b.Lines)
}

// line returns the current line
func (b *Buffer) line() []rune {
	return b.Lines[b.Cursor.Row]
}

// --- Cursor clamping ---

// clamp restores the buffer and cursor invariants
func (b *Buffer) clamp() {
	if len(b.Lines) == 0 {
		b.Lines = [][]rune{{}}
	}
	if b.Cursor.Row < 0 {
		b.Cursor.Row = 0
	}
	if b.Cursor.Row >= len(b.Lines) {
		b.Cursor.Row = len(b.Lines) - 1
	}
	if b.Cursor.Col < 0 {
		b.Cursor.Col = 0
	}
	if n := len(b.line()); b.Cursor.Col > n {
		b.Cursor.Col = n
	}
}

// SetCursor moves the cursor to (row, col), clamped to buffer bounds
func (b *Buffer) SetCursor(row, col int) {
	b.Cursor = Cursor{Row: row, Col: col}
	b.clamp()
}

// --- Insertion ---

// Insert adds a rune at the cursor and advances one column
func (b *Buffer) Insert(r rune) {
	row, col := b.Cursor.Row, b.Cursor.Col
	line := b.Lines[row]
	next := make([]rune, 0, len(line)+1)
	next = append(next, line[:col]...)
	next = append(next, r)
	next = append(next, line[col:]...)
	b.Lines[row] = next
	b.Cursor.Col++
}

// InsertTab inserts TabWidth spaces
func (b *Buffer) InsertTab() {
	width := b.TabWidth
	if width < 1 {
		width = DefaultTabWidth
	}
	for i := 0; i < width; i++ {
		b.Insert(' ')
	}
}

// InsertNewline splits the line at the cursor; cursor moves to the new line start
func (b *Buffer) InsertNewline() {
	row, col := b.Cursor.Row, b.Cursor.Col
	line := b.Lines[row]
	head := append([]rune(nil), line[:col]...)
	tail := append([]rune(nil), line[col:]...)

	lines := make([][]rune, 0, len(b.Lines)+1)
	lines = append(lines, b.Lines[:row]...)
	lines = append(lines, head, tail)
	lines = append(lines, b.Lines[row+1:]...)
	b.Lines = lines
	b.Cursor = Cursor{Row: row + 1, Col: 0}
}

// --- Deletion ---

// Backspace removes the rune left of the cursor, or joins with the previous line
// Returns false at the buffer start
func (b *Buffer) Backspace() bool {
	row, col := b.Cursor.Row, b.Cursor.Col
	if col > 0 {
		line := b.Lines[row]
		b.Lines[row] = append(line[:col-1:col-1], line[col:]...)
		b.Cursor.Col--
		return true
	}
	if row == 0 {
		return false
	}
	prevLen := len(b.Lines[row-1])
	b.joinLines(row - 1)
	b.Cursor = Cursor{Row: row - 1, Col: prevLen}
	return true
}

// Delete removes the rune at the cursor, or joins the next line
// Returns false at the buffer end
func (b *Buffer) Delete() bool {
	row, col := b.Cursor.Row, b.Cursor.Col
	line := b.Lines[row]
	if col < len(line) {
		b.Lines[row] = append(line[:col:col], line[col+1:]...)
		return true
	}
	if row >= len(b.Lines)-1 {
		return false
	}
	b.joinLines(row)
	return true
}

// DeleteToLineStart removes everything left of the cursor on the current line
func (b *Buffer) DeleteToLineStart() bool {
	col := b.Cursor.Col
	if col == 0 {
		return false
	}
	b.Lines[b.Cursor.Row] = append([]rune(nil), b.line()[col:]...)
	b.Cursor.Col = 0
	return true
}

// joinLines appends line row+1 to line row and removes it
func (b *Buffer) joinLines(row int) {
	joined := make([]rune, 0, len(b.Lines[row])+len(b.Lines[row+1]))
	joined = append(joined, b.Lines[row]...)
	joined = append(joined, b.Lines[row+1]...)
	b.Lines[row] = joined
	b.Lines = append(b.Lines[:row+1], b.Lines[row+2:]...)
}

// --- Movement ---

// MoveLeft moves one cell left, wrapping to the previous line end
func (b *Buffer) MoveLeft() bool {
	if b.Cursor.Col > 0 {
		b.Cursor.Col--
		return true
	}
	if b.Cursor.Row > 0 {
		b.Cursor.Row--
		b.Cursor.Col = len(b.line())
		return true
	}
	return false
}

// MoveRight moves one cell right, wrapping to the next line start
func (b *Buffer) MoveRight() bool {
	if b.Cursor.Col < len(b.line()) {
		b.Cursor.Col++
		return true
	}
	if b.Cursor.Row < len(b.Lines)-1 {
		b.Cursor.Row++
		b.Cursor.Col = 0
		return true
	}
	return false
}

// MoveUp moves one line up, clamping the column
func (b *Buffer) MoveUp() bool {
	if b.Cursor.Row == 0 {
		return false
	}
	b.Cursor.Row--
	b.clamp()
	return true
}

// MoveDown moves one line down, clamping the column
func (b *Buffer) MoveDown() bool {
	if b.Cursor.Row >= len(b.Lines)-1 {
		return false
	}
	b.Cursor.Row++
	b.clamp()
	return true
}

// MoveLineStart moves to column 0
func (b *Buffer) MoveLineStart() {
	b.Cursor.Col = 0
}

// MoveLineEnd moves past the last rune of the line
func (b *Buffer) MoveLineEnd() {
	b.Cursor.Col = len(b.line())
}

// MoveBufferStart moves to the first cell
func (b *Buffer) MoveBufferStart() {
	b.Cursor = Cursor{}
}

// MoveBufferEnd moves past the last rune of the last line
func (b *Buffer) MoveBufferEnd() {
	last := len(b.Lines) - 1
	b.Cursor = Cursor{Row: last, Col: len(b.Lines[last])}
}

// --- Line swapping ---

// SwapUp exchanges the current line with the one above; cursor follows
func (b *Buffer) SwapUp() bool {
	row := b.Cursor.Row
	if row == 0 {
		return false
	}
	b.Lines[row-1], b.Lines[row] = b.Lines[row], b.Lines[row-1]
	b.Cursor.Row--
	return true
}

// SwapDown exchanges the current line with the one below; cursor follows
func (b *Buffer) SwapDown() bool {
	row := b.Cursor.Row
	if row >= len(b.Lines)-1 {
		return false
	}
	b.Lines[row+1], b.Lines[row] = b.Lines[row], b.Lines[row+1]
	b.Cursor.Row++
	return true
}

// --- Snapshots ---

// cloneLines deep copies a line grid
func cloneLines(lines [][]rune) [][]rune {
	out := make([][]rune, len(lines))
	for i, line := range lines {
		out[i] = append(make([]rune, 0, len(line)), line...)
	}
	return out
}

// equalLines compares two grids rune by rune
func equalLines(a, b [][]rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}
