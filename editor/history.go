package editor

// Snapshot is a deep copy of buffer content and cursor
type Snapshot struct {
	Lines  [][]rune
	Cursor Cursor
}

func (s Snapshot) clone() Snapshot {
	return Snapshot{Lines: cloneLines(s.Lines), Cursor: s.Cursor}
}

// History is a linear undo/redo stack; recording after an undo discards the redo branch
// Invariant: 0 <= index < len(entries)
type History struct {
	entries []Snapshot
	index   int
}

// NewHistory seeds the stack with the initial buffer state
func NewHistory(lines [][]rune, cursor Cursor) *History {
	return &History{
		entries: []Snapshot{{Lines: cloneLines(lines), Cursor: cursor}},
	}
}

// Record appends a snapshot when lines differ from the current entry
// Entries after the current index are discarded first
func (h *History) Record(lines [][]rune, cursor Cursor) bool {
	if equalLines(h.entries[h.index].Lines, lines) {
		return false
	}
	h.entries = append(h.entries[:h.index+1], Snapshot{Lines: cloneLines(lines), Cursor: cursor})
	h.index = len(h.entries) - 1
	return true
}

// Undo steps back one entry and returns a copy of it
func (h *History) Undo() (Snapshot, bool) {
	if h.index == 0 {
		return Snapshot{}, false
	}
	h.index--
	return h.entries[h.index].clone(), true
}

// Redo steps forward one entry and returns a copy of it
func (h *History) Redo() (Snapshot, bool) {
	if h.index >= len(h.entries)-1 {
		return Snapshot{}, false
	}
	h.index++
	return h.entries[h.index].clone(), true
}

// CanUndo reports whether an earlier entry exists
func (h *History) CanUndo() bool { return h.index > 0 }

// CanRedo reports whether a later entry exists
func (h *History) CanRedo() bool { return h.index < len(h.entries)-1 }

// Len returns the number of entries
func (h *History) Len() int { return len(h.entries) }

// Index returns the current entry position
func (h *History) Index() int { return h.index }
