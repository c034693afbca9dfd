package editor

import (
	"testing"
)

func TestRecordIdempotent(t *testing.T) {
	b := NewBuffer("abc")
	h := NewHistory(b.Lines, b.Cursor)

	if h.Record(b.Lines, b.Cursor) {
		t.Fatal("recording an unchanged buffer should be a no-op")
	}
	b.Insert('x')
	if !h.Record(b.Lines, b.Cursor) {
		t.Fatal("recording a changed buffer should append")
	}
	if h.Record(b.Lines, b.Cursor) {
		t.Fatal("second identical record should be a no-op")
	}
	if h.Len() != 2 {
		t.Fatalf("Len = %d, want 2", h.Len())
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	b := NewBuffer("")
	h := NewHistory(b.Lines, b.Cursor)
	typeText(b, "ab")
	h.Record(b.Lines, b.Cursor)
	b.InsertNewline()
	b.Insert('c')
	h.Record(b.Lines, b.Cursor)

	before := Snapshot{Lines: cloneLines(b.Lines), Cursor: b.Cursor}

	u, ok := h.Undo()
	if !ok {
		t.Fatal("Undo should be available")
	}
	if got := (&Buffer{Lines: u.Lines}).Text(); got != "ab" {
		t.Fatalf("undo text = %q", got)
	}

	r, ok := h.Redo()
	if !ok {
		t.Fatal("Redo should be available")
	}
	if !equalLines(r.Lines, before.Lines) || r.Cursor != before.Cursor {
		t.Fatalf("redo(undo(S)) = %v, want %v", r, before)
	}
}

func TestUndoFloorRedoCap(t *testing.T) {
	h := NewHistory([][]rune{{}}, Cursor{})
	if _, ok := h.Undo(); ok {
		t.Fatal("Undo at index 0 should fail")
	}
	if _, ok := h.Redo(); ok {
		t.Fatal("Redo at last entry should fail")
	}
	if h.Index() != 0 || h.CanUndo() || h.CanRedo() {
		t.Fatal("index should stay at 0")
	}
}

func TestRecordAfterUndoDiscardsBranch(t *testing.T) {
	b := NewBuffer("")
	h := NewHistory(b.Lines, b.Cursor)
	for _, r := range "abc" {
		b.Insert(r)
		h.Record(b.Lines, b.Cursor)
	}
	h.Undo()
	s, _ := h.Undo()
	b.Lines, b.Cursor = s.Lines, s.Cursor

	b.Insert('z')
	h.Record(b.Lines, b.Cursor)
	if h.CanRedo() {
		t.Fatal("redo branch should be discarded")
	}
	if h.Len() != 3 || h.Index() != 2 {
		t.Fatalf("Len=%d Index=%d, want 3 and 2", h.Len(), h.Index())
	}
}

func TestSnapshotsAreDeepCopies(t *testing.T) {
	b := NewBuffer("abc")
	h := NewHistory(b.Lines, b.Cursor)

	// mutating the live buffer must not reach the stored entry
	b.Lines[0][0] = 'X'
	b.Insert('y')
	h.Record(b.Lines, b.Cursor)

	s, _ := h.Undo()
	if string(s.Lines[0]) != "abc" {
		t.Fatalf("stored snapshot mutated: %q", string(s.Lines[0]))
	}

	// nor must mutating a returned snapshot
	s.Lines[0][0] = 'Q'
	h.Redo()
	again, _ := h.Undo()
	if string(again.Lines[0]) != "abc" {
		t.Fatalf("returned snapshot aliases history: %q", string(again.Lines[0]))
	}
}
