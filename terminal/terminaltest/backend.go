// Package terminaltest provides an in-memory terminal backend for tests
package terminaltest

import (
	"bytes"
	"io"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// Backend is a scripted terminal: queued input chunks, recorded output,
// and counters for every attribute change
type Backend struct {
	mu     sync.Mutex
	input  [][]byte
	closed bool
	out    bytes.Buffer

	// Original is the state returned by GetState
	Original *term.State

	width, height int
	poll          time.Duration

	getStateCalls int
	rawCalls      int
	restored      []*term.State
	raw           bool

	// FailRaw makes MakeRaw return an error
	FailRaw bool
}

// New returns a backend reporting an 80x24 terminal
func New() *Backend {
	return &Backend{
		Original: &term.State{},
		width:    80,
		height:   24,
		poll:     time.Millisecond,
	}
}

// Feed queues raw input chunks, each returned by one Read
func (b *Backend) Feed(chunks ...[]byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, c := range chunks {
		b.input = append(b.input, append([]byte(nil), c...))
	}
}

// FeedString queues string chunks
func (b *Backend) FeedString(chunks ...string) {
	for _, c := range chunks {
		b.Feed([]byte(c))
	}
}

// CloseInput makes Read return io.EOF once the queue drains
func (b *Backend) CloseInput() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}

// SetSize changes the reported dimensions
func (b *Backend) SetSize(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.width, b.height = width, height
}

func (b *Backend) GetState() (*term.State, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.getStateCalls++
	return b.Original, nil
}

func (b *Backend) MakeRaw() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FailRaw {
		return errors.New("raw mode unavailable")
	}
	b.rawCalls++
	b.raw = true
	return nil
}

func (b *Backend) Restore(state *term.State) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.restored = append(b.restored, state)
	b.raw = false
	return nil
}

func (b *Backend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *Backend) Write(p []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.out.Write(p)
	return nil
}

func (b *Backend) Read(stopCh <-chan struct{}) ([]byte, error) {
	for {
		b.mu.Lock()
		if len(b.input) > 0 {
			chunk := b.input[0]
			b.input = b.input[1:]
			b.mu.Unlock()
			return chunk, nil
		}
		closed := b.closed
		b.mu.Unlock()
		if closed {
			return nil, io.EOF
		}

		select {
		case <-stopCh:
			return nil, nil
		case <-time.After(b.poll):
		}
	}
}

// Output returns everything written so far
func (b *Backend) Output() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.out.String()
}

// Raw reports whether the fake device is in raw mode
func (b *Backend) Raw() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.raw
}

// GetStateCalls counts attribute captures
func (b *Backend) GetStateCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.getStateCalls
}

// RawCalls counts successful raw mode switches
func (b *Backend) RawCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rawCalls
}

// Restored returns every state passed to Restore, in order
func (b *Backend) Restored() []*term.State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*term.State(nil), b.restored...)
}
