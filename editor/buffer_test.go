package editor

import (
	"testing"
)

func typeText(b *Buffer, s string) {
	for _, r := range s {
		if r == '\n' {
			b.InsertNewline()
			continue
		}
		b.Insert(r)
	}
}

func assertBuffer(t *testing.T, b *Buffer, want []string, row, col int) {
	t.Helper()
	got := b.Strings()
	if len(got) != len(want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("lines = %q, want %q", got, want)
		}
	}
	if b.Cursor.Row != row || b.Cursor.Col != col {
		t.Fatalf("cursor = (%d,%d), want (%d,%d)", b.Cursor.Row, b.Cursor.Col, row, col)
	}
}

func TestInsertAndNewline(t *testing.T) {
	b := NewBuffer("")
	typeText(b, "hi")
	b.InsertNewline()
	b.Insert('!')
	assertBuffer(t, b, []string{"hi", "!"}, 1, 1)
}

func TestSplitMidLine(t *testing.T) {
	b := NewBuffer("hello")
	b.SetCursor(0, 2)
	b.InsertNewline()
	assertBuffer(t, b, []string{"he", "llo"}, 1, 0)
}

func TestTabInsertsSpaces(t *testing.T) {
	b := NewBuffer("")
	b.TabWidth = 4
	b.InsertTab()
	assertBuffer(t, b, []string{"    "}, 0, 4)
}

func TestBackspace(t *testing.T) {
	b := NewBuffer("ab\ncd")
	b.SetCursor(1, 1)
	b.Backspace()
	assertBuffer(t, b, []string{"ab", "d"}, 1, 0)

	// join with previous line, cursor at its old end
	b.Backspace()
	assertBuffer(t, b, []string{"abd"}, 0, 2)

	b.SetCursor(0, 0)
	if b.Backspace() {
		t.Fatal("Backspace at buffer start should report no change")
	}
	assertBuffer(t, b, []string{"abd"}, 0, 0)
}

func TestDelete(t *testing.T) {
	b := NewBuffer("ab\ncd")
	b.SetCursor(0, 1)
	b.Delete()
	assertBuffer(t, b, []string{"a", "cd"}, 0, 1)

	b.Delete()
	assertBuffer(t, b, []string{"acd"}, 0, 1)

	b.MoveLineEnd()
	if b.Delete() {
		t.Fatal("Delete at buffer end should report no change")
	}
}

func TestDeleteEverythingLeavesOneLine(t *testing.T) {
	b := NewBuffer("a\nb")
	b.MoveBufferEnd()
	for i := 0; i < 5; i++ {
		b.Backspace()
	}
	assertBuffer(t, b, []string{""}, 0, 0)
}

func TestHorizontalWrap(t *testing.T) {
	b := NewBuffer("ab\ncd")
	b.SetCursor(1, 0)
	b.MoveLeft()
	assertBuffer(t, b, []string{"ab", "cd"}, 0, 2)
	b.MoveRight()
	assertBuffer(t, b, []string{"ab", "cd"}, 1, 0)

	b.MoveBufferEnd()
	if b.MoveRight() {
		t.Fatal("MoveRight at buffer end should not move")
	}
}

func TestVerticalClamp(t *testing.T) {
	b := NewBuffer("long line\nab")
	b.SetCursor(0, 8)
	b.MoveDown()
	assertBuffer(t, b, []string{"long line", "ab"}, 1, 2)
	b.MoveUp()
	assertBuffer(t, b, []string{"long line", "ab"}, 0, 2)
}

func TestSwapLines(t *testing.T) {
	b := NewBuffer("one\ntwo\nthree")
	b.SetCursor(1, 1)
	b.SwapUp()
	assertBuffer(t, b, []string{"two", "one", "three"}, 0, 1)
	if b.SwapUp() {
		t.Fatal("SwapUp on first line should not move")
	}
	b.SwapDown()
	b.SwapDown()
	assertBuffer(t, b, []string{"one", "three", "two"}, 2, 1)
}

func TestSetCursorClamps(t *testing.T) {
	b := NewBuffer("abc")
	b.SetCursor(0, 5)
	assertBuffer(t, b, []string{"abc"}, 0, 3)
	b.SetCursor(9, -2)
	assertBuffer(t, b, []string{"abc"}, 0, 0)
}

func TestDeleteToLineStart(t *testing.T) {
	b := NewBuffer("hello world")
	b.SetCursor(0, 6)
	b.DeleteToLineStart()
	assertBuffer(t, b, []string{"world"}, 0, 0)
}

func TestText(t *testing.T) {
	b := NewBuffer("a\n\nb")
	if got := b.Text(); got != "a\n\nb" {
		t.Errorf("Text() = %q", got)
	}
	if b.LineCount() != 3 {
		t.Errorf("LineCount() = %d", b.LineCount())
	}
}
