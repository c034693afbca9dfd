// Package eventlog is the append-only record of decoded input events
//
// Two streams (keys, pointers) grow monotonically; entries are never mutated or
// removed. Consumers hold integer cursors through a Reader, so any number of
// independent readers may observe the same log.
package eventlog

import (
	"sync"

	"github.com/lixenwraith/liveterm/terminal"
)

// Log holds the key and pointer streams
// Append is not observably atomic for Go slices, so a RWMutex guards both streams
type Log struct {
	mu       sync.RWMutex
	keys     []terminal.Key
	pointers []terminal.PointerEvent
	killed   bool
}

// New creates an empty log
func New() *Log {
	return &Log{}
}

// AppendKey appends to the key stream
// Returns false once Kill has been appended; Kill is append-once
func (l *Log) AppendKey(k terminal.Key) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.killed {
		return false
	}
	l.keys = append(l.keys, k)
	if k == terminal.KeyKill {
		l.killed = true
	}
	return true
}

// AppendPointer appends to the pointer stream
func (l *Log) AppendPointer(p terminal.PointerEvent) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.killed {
		return false
	}
	l.pointers = append(l.pointers, p)
	return true
}

// Append routes a decoded event to its stream
func (l *Log) Append(ev terminal.Event) bool {
	switch ev.Type {
	case terminal.EventKey:
		return l.AppendKey(ev.Key)
	case terminal.EventPointer:
		return l.AppendPointer(ev.Pointer)
	default:
		return false
	}
}

// Kill appends the Kill sentinel if not already present
func (l *Log) Kill() bool {
	return l.AppendKey(terminal.KeyKill)
}

// Killed reports whether Kill has been appended
func (l *Log) Killed() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.killed
}

// Len returns the lengths of the key and pointer streams
func (l *Log) Len() (keys, pointers int) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.keys), len(l.pointers)
}

// KeysSince returns a copy of key events from index on
func (l *Log) KeysSince(index int) []terminal.Key {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if index >= len(l.keys) {
		return nil
	}
	if index < 0 {
		index = 0
	}
	return append([]terminal.Key(nil), l.keys[index:]...)
}

// PointersSince returns a copy of pointer events from index on
func (l *Log) PointersSince(index int) []terminal.PointerEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if index >= len(l.pointers) {
		return nil
	}
	if index < 0 {
		index = 0
	}
	return append([]terminal.PointerEvent(nil), l.pointers[index:]...)
}

// NewReader returns a reader positioned at the start of both streams
func (l *Log) NewReader() *Reader {
	return &Reader{log: l}
}
