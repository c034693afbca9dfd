// Package logx builds the pslog loggers used by liveterm and annotates them
// with session and consumer identifiers.
package logx

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"pkt.systems/pslog"
)

// Levels accepted by Options.Level
var Levels = []string{"trace", "debug", "info", "warn", "error"}

// Options selects the log destination and threshold
type Options struct {
	// File receives structured logs; empty discards them
	File  string
	Level string
}

// ValidLevel reports whether level is one of Levels
func ValidLevel(level string) bool {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return true
	}
	for _, l := range Levels {
		if l == level {
			return true
		}
	}
	return false
}

func applyLevel(opts *pslog.Options, level string) error {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		opts.MinLevel = pslog.TraceLevel
	case "debug":
		opts.MinLevel = pslog.DebugLevel
	case "", "info":
		opts.MinLevel = pslog.InfoLevel
	case "warn":
		opts.MinLevel = pslog.WarnLevel
	case "error":
		opts.MinLevel = pslog.ErrorLevel
	default:
		return errors.Errorf("unknown log level %q", level)
	}
	return nil
}

// New opens the structured session logger
// The returned closer releases the log file and is never nil
func New(opts Options) (pslog.Logger, io.Closer, error) {
	popts := pslog.Options{Mode: pslog.ModeStructured, NoColor: true}
	if err := applyLevel(&popts, opts.Level); err != nil {
		return nil, nil, err
	}
	if opts.File == "" {
		return pslog.NewWithOptions(io.Discard, popts), nopCloser{}, nil
	}

	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open log file %s", opts.File)
	}
	return pslog.NewWithOptions(f, popts), f, nil
}

// NewWriter builds a structured logger over w, used by tests and embedders
func NewWriter(w io.Writer, level string) (pslog.Logger, error) {
	popts := pslog.Options{Mode: pslog.ModeStructured, NoColor: true, VerboseFields: true}
	if err := applyLevel(&popts, level); err != nil {
		return nil, err
	}
	return pslog.NewWithOptions(w, popts), nil
}

// Console logs errors to w for use while the terminal is cooked
func Console(w io.Writer) pslog.Logger {
	return pslog.NewWithOptions(w, pslog.Options{Mode: pslog.ModeConsole, MinLevel: pslog.ErrorLevel})
}

// Discard drops everything
func Discard() pslog.Logger {
	return pslog.NewWithOptions(io.Discard, pslog.Options{Mode: pslog.ModeStructured, NoColor: true, MinLevel: pslog.ErrorLevel})
}

// Ctx returns the logger bound to ctx
func Ctx(ctx context.Context) pslog.Logger {
	return pslog.Ctx(ctx)
}

// WithSession annotates log with a session id when available
func WithSession(log pslog.Logger, id string) pslog.Logger {
	if id != "" {
		log = log.With("session", id)
	}
	return log
}

// WithConsumer annotates log with the consumer driving the loop
func WithConsumer(log pslog.Logger, name string) pslog.Logger {
	if name != "" {
		log = log.With("consumer", name)
	}
	return log
}

// OrDiscard returns log, or a discarding logger when log is nil
func OrDiscard(log pslog.Logger) pslog.Logger {
	if log == nil {
		return Discard()
	}
	return log
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
