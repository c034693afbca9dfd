// Package live runs a raw-mode terminal session as two cooperating activities
//
// The listener reads and decodes input into an eventlog.Log; the writer polls
// the log, folds new events into a Consumer and redraws the screen from the
// Frame it returns. Consumers that also implement Ticker are advanced once per
// poll interval so they can animate without input. A Kill key, appended by the escape policy, an external
// close signal, or a consumer finishing, ends both activities.
package live

import (
	"time"

	"github.com/lixenwraith/liveterm/eventlog"
	"github.com/lixenwraith/liveterm/terminal"
)

// View is the drawable area handed to a consumer
type View struct {
	Width  int
	Height int
}

// Frame is one full redraw
type Frame struct {
	// Lines are written top to bottom and truncated to the view width
	Lines []string

	// Cursor position, 0-indexed screen cell
	CursorRow int
	CursorCol int

	CursorVisible bool
	CursorShape   terminal.CursorShape

	// Done asks the session to end after this frame is drawn
	Done bool
}

// Consumer folds event batches into its own state and renders it
type Consumer interface {
	// Init prepares state and returns the first frame
	Init(view View) (Frame, error)

	// Step folds one batch (keys, then pointers) and returns the next frame
	Step(batch eventlog.Batch, view View) (Frame, error)
}

// Ticker is implemented by consumers whose state moves on its own
// Tick receives the wall time elapsed since the previous Tick (or Init) and
// runs after any Step of the same writer iteration
type Ticker interface {
	Tick(dt time.Duration, view View) (Frame, error)
}
