package eventlog

import (
	"sync"
	"testing"

	"github.com/lixenwraith/liveterm/terminal"
)

func TestAppendAndRead(t *testing.T) {
	l := New()
	l.AppendKey("a")
	l.AppendPointer(terminal.PointerEvent{Action: terminal.LeftClick, Row: 1, Col: 2})
	l.AppendKey("b")

	r := l.NewReader()
	if !r.Pending() {
		t.Fatal("reader should see pending events")
	}
	b := r.Next()
	if len(b.Keys) != 2 || b.Keys[0] != "a" || b.Keys[1] != "b" {
		t.Fatalf("keys = %v", b.Keys)
	}
	if len(b.Pointers) != 1 || b.Pointers[0].Col != 2 {
		t.Fatalf("pointers = %v", b.Pointers)
	}
	if r.Pending() {
		t.Fatal("reader consumed everything")
	}
	if !r.Next().Empty() {
		t.Fatal("second Next should be empty")
	}

	l.AppendKey("c")
	b = r.Next()
	if len(b.Keys) != 1 || b.Keys[0] != "c" {
		t.Fatalf("incremental keys = %v", b.Keys)
	}
}

func TestIndependentReaders(t *testing.T) {
	l := New()
	r1 := l.NewReader()
	l.AppendKey("x")
	r1.Next()

	r2 := l.NewReader()
	l.AppendKey("y")

	if got := r1.Next().Keys; len(got) != 1 || got[0] != "y" {
		t.Errorf("r1 = %v, want [y]", got)
	}
	if got := r2.Next().Keys; len(got) != 2 || got[0] != "x" {
		t.Errorf("r2 = %v, want [x y]", got)
	}
}

func TestKillAppendOnce(t *testing.T) {
	l := New()
	if !l.Kill() {
		t.Fatal("first Kill should append")
	}
	if l.Kill() {
		t.Fatal("second Kill should be rejected")
	}
	if l.AppendKey("a") || l.AppendPointer(terminal.PointerEvent{Action: terminal.LeftClick}) {
		t.Fatal("appends after Kill should be rejected")
	}
	keys, pointers := l.Len()
	if keys != 1 || pointers != 0 {
		t.Fatalf("Len = %d, %d", keys, pointers)
	}
	if !l.NewReader().Next().HasKill() {
		t.Fatal("batch should report Kill")
	}
}

func TestSnapshotsAreCopies(t *testing.T) {
	l := New()
	l.AppendKey("a")
	keys := l.KeysSince(0)
	keys[0] = "z"
	if got := l.KeysSince(0); got[0] != "a" {
		t.Fatalf("log mutated through returned slice: %v", got)
	}
}

func TestConcurrentAppendOrder(t *testing.T) {
	const n = 2000
	l := New()
	r := l.NewReader()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			l.AppendPointer(terminal.PointerEvent{Action: terminal.LeftDrag, Row: i})
		}
	}()

	var seen []terminal.PointerEvent
	for len(seen) < n {
		seen = append(seen, r.Next().Pointers...)
	}
	wg.Wait()

	for i, p := range seen {
		if p.Row != i {
			t.Fatalf("event %d has row %d; order not preserved", i, p.Row)
		}
	}
}
