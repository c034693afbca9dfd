package eventlog

import (
	"github.com/lixenwraith/liveterm/terminal"
)

// Batch is everything a reader had not yet consumed at one poll
// Consumers fold Keys before Pointers
type Batch struct {
	Keys     []terminal.Key
	Pointers []terminal.PointerEvent
}

// Empty reports whether the batch carries no events
func (b Batch) Empty() bool {
	return len(b.Keys) == 0 && len(b.Pointers) == 0
}

// HasKill reports whether the key stream of the batch contains Kill
func (b Batch) HasKill() bool {
	for _, k := range b.Keys {
		if k == terminal.KeyKill {
			return true
		}
	}
	return false
}

// Reader tracks consumed indices into a Log
// A Reader is owned by one goroutine; distinct readers are independent
type Reader struct {
	log          *Log
	keyIndex     int
	pointerIndex int
}

// Pending reports whether either stream advanced past the reader's indices
func (r *Reader) Pending() bool {
	keys, pointers := r.log.Len()
	return keys > r.keyIndex || pointers > r.pointerIndex
}

// Next returns all unconsumed events and advances the indices
func (r *Reader) Next() Batch {
	keys := r.log.KeysSince(r.keyIndex)
	pointers := r.log.PointersSince(r.pointerIndex)
	r.keyIndex += len(keys)
	r.pointerIndex += len(pointers)
	return Batch{Keys: keys, Pointers: pointers}
}

// Position returns the consumed indices of the key and pointer streams
func (r *Reader) Position() (keys, pointers int) {
	return r.keyIndex, r.pointerIndex
}
