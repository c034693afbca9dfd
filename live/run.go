package live

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/lixenwraith/liveterm/eventlog"
	"github.com/lixenwraith/liveterm/terminal"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"pkt.systems/pslog"
)

// Options configures one session run
type Options struct {
	// EscapeHits consecutive Esc decodes end the session
	EscapeHits int

	// PollInterval is the writer's idle sleep
	PollInterval time.Duration

	// Mouse enables button-event mouse tracking for the session
	Mouse bool

	// Closed, when non-nil, ends the session once closed
	Closed <-chan struct{}
}

const (
	DefaultEscapeHits   = 3
	DefaultPollInterval = 10 * time.Millisecond
)

// DefaultOptions returns the stock session settings
func DefaultOptions() Options {
	return Options{
		EscapeHits:   DefaultEscapeHits,
		PollInterval: DefaultPollInterval,
		Mouse:        true,
	}
}

func (o Options) withDefaults() Options {
	if o.EscapeHits < 1 {
		o.EscapeHits = DefaultEscapeHits
	}
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultPollInterval
	}
	return o
}

// Run starts sess, drives consumer until Kill, and stops sess on every exit path
// Panics in either activity are recovered and returned as errors after the
// terminal attributes have been restored
func Run(ctx context.Context, sess *terminal.Session, consumer Consumer, opts Options) (err error) {
	opts = opts.withDefaults()
	log := sess.Logger()

	if err := sess.Start(); err != nil {
		return err
	}
	defer func() {
		sess.Write(exitSequence())
		if stopErr := sess.Stop(); stopErr != nil && err == nil {
			err = stopErr
		}
	}()

	events := eventlog.New()
	writerDone := make(chan struct{})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return guard(log, "listener", func() error {
			return listen(sess, events, writerDone, opts, log)
		})
	})

	g.Go(func() error {
		defer close(writerDone)
		return guard(log, "writer", func() error {
			return write(sess, events, consumer, opts)
		})
	})

	// External close and cancellation become a single Kill
	g.Go(func() error {
		select {
		case <-opts.Closed:
			log.Info("external close observed")
			events.Kill()
		case <-gctx.Done():
			events.Kill()
		case <-writerDone:
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("session failed", "error", err)
		return err
	}
	return nil
}

// guard converts a panic in fn into an error
func guard(log pslog.Logger, name string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error(name+" panic", "panic", r, "stack", string(debug.Stack()))
			err = errors.Errorf("%s panic: %v", name, r)
		}
	}()
	return fn()
}

// exitSequence resets cursor and screen for the shell
func exitSequence() []byte {
	var buf []byte
	buf = append(buf, terminal.ClearScreen()...)
	buf = append(buf, terminal.SetCursorShape(terminal.CursorDefault)...)
	buf = append(buf, terminal.CursorVisible(true)...)
	return buf
}
