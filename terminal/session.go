package terminal

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/lixenwraith/liveterm/logx"
	"github.com/pkg/errors"
	"golang.org/x/term"
	"pkt.systems/pslog"
)

var (
	// ErrSessionActive is returned by Start while any session is active
	ErrSessionActive = errors.New("terminal session already active")

	// ErrNotTerminal is returned when the input device is not a terminal
	ErrNotTerminal = errors.New("input is not a terminal")
)

// activeSession enforces a single raw-mode session per process
var activeSession atomic.Pointer[Session]

// Session brackets the lifetime during which the terminal is in raw mode
// Original attributes are captured once and reapplied exactly on Stop
type Session struct {
	mu      sync.Mutex
	backend Backend
	log     pslog.Logger
	id      string

	saved  *term.State
	active bool
	raw    bool

	// warnOut receives misuse warnings as plain text
	warnOut io.Writer
}

// NewSession creates an inactive session over backend; a nil log discards
func NewSession(backend Backend, log pslog.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		backend: backend,
		id:      id,
		log:     logx.WithSession(logx.OrDiscard(log), id),
		warnOut: os.Stderr,
	}
}

// SetWarningOutput redirects misuse warnings; nil silences them
func (s *Session) SetWarningOutput(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warnOut = w
}

// Start captures the original attributes (first call only) and enters raw mode
// Fails with ErrSessionActive while any session is active, after restoring that
// session's attributes so the error is readable; its saved state is not touched
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !activeSession.CompareAndSwap(nil, s) {
		holder := activeSession.Load()
		switch {
		case holder == s:
			s.restoreLocked()
		case holder != nil:
			holder.restoreBestEffort()
		}
		s.log.Error("session start rejected", "holder", holderID(holder))
		return ErrSessionActive
	}

	if s.saved == nil {
		st, err := s.backend.GetState()
		if err != nil {
			activeSession.Store(nil)
			return errors.Wrap(err, "capture terminal attributes")
		}
		s.saved = st
	}

	if err := s.backend.MakeRaw(); err != nil {
		activeSession.Store(nil)
		s.backend.Restore(s.saved)
		return errors.Wrap(err, "enter raw mode")
	}

	s.raw = true
	s.active = true
	s.log.Info("session started")
	return nil
}

// Stop restores the captured attributes and marks the session inactive
// Stopping an inactive session only warns, to the log and the warning output
func (s *Session) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		s.log.Warn("stop called on inactive session")
		if s.warnOut != nil {
			fmt.Fprintln(s.warnOut, "liveterm: warning: stop called on inactive session")
		}
		return nil
	}

	err := s.backend.Restore(s.saved)
	s.raw = false
	s.active = false
	activeSession.CompareAndSwap(s, nil)
	if err != nil {
		return errors.Wrap(err, "restore terminal attributes")
	}
	s.log.Info("session stopped")
	return nil
}

// restoreLocked reapplies saved attributes; the session stays active but the
// device is no longer raw
func (s *Session) restoreLocked() {
	if s.saved != nil {
		s.backend.Restore(s.saved)
		s.raw = false
	}
}

func (s *Session) restoreBestEffort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restoreLocked()
}

func holderID(s *Session) string {
	if s == nil {
		return ""
	}
	return s.id
}

// Active reports whether the session holds raw mode
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Raw reports whether the device is raw under this session
// False after Stop and after a rejected Start restored the attributes
func (s *Session) Raw() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raw
}

// ID returns the session identifier used in logs
func (s *Session) ID() string { return s.id }

// Logger returns the session-scoped logger
func (s *Session) Logger() pslog.Logger { return s.log }

// Size returns current terminal dimensions
func (s *Session) Size() (int, int) { return s.backend.Size() }

// Write sends raw bytes to the terminal
func (s *Session) Write(p []byte) error { return s.backend.Write(p) }

// Read returns the next input chunk, see Backend.Read
func (s *Session) Read(stopCh <-chan struct{}) ([]byte, error) {
	return s.backend.Read(stopCh)
}

// EmergencyReset attempts to restore the terminal to a sane state
// Call this from panic recovery when Stop cannot run normally
func EmergencyReset(w io.Writer) {
	w.Write(seqMouseOff)
	w.Write(SetCursorShape(CursorDefault))
	w.Write(seqCursorShow)
	w.Write(seqSGR0)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	if s := activeSession.Load(); s != nil {
		s.restoreBestEffort()
	}
	// Escape sequences alone don't restore termios
	resetTerminalMode()
}
