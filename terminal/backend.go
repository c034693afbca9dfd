package terminal

import (
	"os"
	"time"

	"golang.org/x/term"
)

// Backend abstracts the controlling terminal device
type Backend interface {
	// GetState captures the current terminal attributes
	GetState() (*term.State, error)

	// MakeRaw switches the device to raw mode
	MakeRaw() error

	// Restore reapplies previously captured attributes
	Restore(state *term.State) error

	// Size returns current terminal dimensions
	Size() (width, height int)

	// Write writes raw bytes to the terminal output
	Write(p []byte) error

	// Read blocks until one chunk of input is available or stopCh is closed
	// Returns (nil, nil) on stop and io.EOF when input is closed
	Read(stopCh <-chan struct{}) ([]byte, error)
}

// BackendOptions configures the device backend
type BackendOptions struct {
	In  *os.File
	Out *os.File

	// ReadSize bounds the bytes returned by one Read
	ReadSize int

	// PollTimeout is how often Read checks stopCh
	PollTimeout time.Duration
}

const (
	DefaultReadSize    = 20
	DefaultPollTimeout = 10 * time.Millisecond
)

func (o BackendOptions) withDefaults() BackendOptions {
	if o.In == nil {
		o.In = os.Stdin
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.ReadSize <= 0 {
		o.ReadSize = DefaultReadSize
	}
	if o.PollTimeout <= 0 {
		o.PollTimeout = DefaultPollTimeout
	}
	return o
}
