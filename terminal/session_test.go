package terminal_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/lixenwraith/liveterm/terminal"
	"github.com/lixenwraith/liveterm/terminal/terminaltest"
	"github.com/pkg/errors"
	"pkt.systems/pslog"
)

func quietLogger() pslog.Logger {
	return pslog.NewWithOptions(io.Discard, pslog.Options{Mode: pslog.ModeStructured, NoColor: true})
}

func stopOnCleanup(t *testing.T, s *terminal.Session) {
	t.Helper()
	t.Cleanup(func() {
		if s.Active() {
			s.Stop()
		}
	})
}

func TestSessionStartStop(t *testing.T) {
	b := terminaltest.New()
	s := terminal.NewSession(b, quietLogger())
	stopOnCleanup(t, s)

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !s.Active() || !s.Raw() || !b.Raw() {
		t.Fatal("session should be active and raw after Start")
	}

	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if s.Active() || b.Raw() {
		t.Fatal("session should be inactive and cooked after Stop")
	}

	restored := b.Restored()
	if len(restored) != 1 || restored[0] != b.Original {
		t.Fatalf("restored %d states, want the original exactly once", len(restored))
	}
}

func TestSessionCapturesOnce(t *testing.T) {
	b := terminaltest.New()
	s := terminal.NewSession(b, quietLogger())
	stopOnCleanup(t, s)

	for i := 0; i < 3; i++ {
		if err := s.Start(); err != nil {
			t.Fatalf("Start #%d: %v", i, err)
		}
		if err := s.Stop(); err != nil {
			t.Fatalf("Stop #%d: %v", i, err)
		}
	}
	if n := b.GetStateCalls(); n != 1 {
		t.Errorf("GetState called %d times, want 1", n)
	}
	if n := b.RawCalls(); n != 3 {
		t.Errorf("MakeRaw called %d times, want 3", n)
	}
}

func TestSessionDoubleStart(t *testing.T) {
	b := terminaltest.New()
	s := terminal.NewSession(b, quietLogger())
	stopOnCleanup(t, s)

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	other := terminal.NewSession(terminaltest.New(), quietLogger())
	if err := other.Start(); !errors.Is(err, terminal.ErrSessionActive) {
		t.Fatalf("second session Start = %v, want ErrSessionActive", err)
	}
	if err := s.Start(); !errors.Is(err, terminal.ErrSessionActive) {
		t.Fatalf("repeated Start = %v, want ErrSessionActive", err)
	}
	if other.Active() {
		t.Fatal("rejected session must stay inactive")
	}
	if !s.Active() {
		t.Fatal("active session must stay active")
	}
	if s.Raw() || b.Raw() {
		t.Fatal("holder device was restored, Raw must report cooked")
	}

	// best-effort restores reapplied the original attributes without recapturing
	if n := b.GetStateCalls(); n != 1 {
		t.Errorf("GetState called %d times, want 1", n)
	}
	for _, st := range b.Restored() {
		if st != b.Original {
			t.Fatal("restore used a state other than the captured original")
		}
	}

	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	restored := b.Restored()
	if restored[len(restored)-1] != b.Original {
		t.Error("Stop must restore the original attributes")
	}

	// slot is free again
	if err := other.Start(); err != nil {
		t.Fatalf("Start after Stop: %v", err)
	}
	if err := other.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}

func TestSessionStopInactiveWarns(t *testing.T) {
	var buf bytes.Buffer
	log := pslog.NewWithOptions(&buf, pslog.Options{
		Mode:     pslog.ModeStructured,
		NoColor:  true,
		MinLevel: pslog.InfoLevel,
	})
	b := terminaltest.New()
	s := terminal.NewSession(b, log)
	var warn bytes.Buffer
	s.SetWarningOutput(&warn)

	if err := s.Stop(); err != nil {
		t.Fatalf("Stop on inactive session returned %v", err)
	}
	if len(b.Restored()) != 0 || b.RawCalls() != 0 {
		t.Error("Stop on inactive session must not touch the device")
	}
	if !strings.Contains(buf.String(), "stop called on inactive session") {
		t.Errorf("missing warning, log: %s", buf.String())
	}
	if got := warn.String(); got != "liveterm: warning: stop called on inactive session\n" {
		t.Errorf("user warning = %q", got)
	}

	// the warning reaches the user even when the log discards it
	warn.Reset()
	quiet := terminal.NewSession(terminaltest.New(), nil)
	quiet.SetWarningOutput(&warn)
	quiet.Stop()
	if !strings.Contains(warn.String(), "inactive session") {
		t.Errorf("warning lost with discarding logger: %q", warn.String())
	}
}

func TestSessionRawFailureReleasesSlot(t *testing.T) {
	b := terminaltest.New()
	b.FailRaw = true
	s := terminal.NewSession(b, quietLogger())
	if err := s.Start(); err == nil {
		t.Fatal("Start should fail when raw mode fails")
	}
	if s.Active() {
		t.Fatal("failed Start must leave the session inactive")
	}

	next := terminal.NewSession(terminaltest.New(), quietLogger())
	if err := next.Start(); err != nil {
		t.Fatalf("slot not released: %v", err)
	}
	next.Stop()
}

func TestAnsiSequences(t *testing.T) {
	if got := string(terminal.MouseTracking(true)); got != "\x1b[?1002h" {
		t.Errorf("mouse on = %q", got)
	}
	if got := string(terminal.MouseTracking(false)); got != "\x1b[?1002l" {
		t.Errorf("mouse off = %q", got)
	}
	if got := string(terminal.ClearScreen()); got != "\x1b[2J\x1b[3J\x1b[H" {
		t.Errorf("clear = %q", got)
	}
	if got := string(terminal.SetCursorShape(terminal.CursorBar)); got != "\x1b[5 q" {
		t.Errorf("bar cursor = %q", got)
	}
	if got := string(terminal.AppendCursorPos(nil, 2, 4)); got != "\x1b[3;5H" {
		t.Errorf("cursor pos = %q", got)
	}
}

func TestEmergencyResetRestoresActiveSession(t *testing.T) {
	b := terminaltest.New()
	s := terminal.NewSession(b, quietLogger())
	stopOnCleanup(t, s)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	var out bytes.Buffer
	terminal.EmergencyReset(&out)

	for _, seq := range []string{"\x1b[?1002l", "\x1b[0 q", "\x1b[?25h", "\x1b[m"} {
		if !strings.Contains(out.String(), seq) {
			t.Errorf("reset output %q missing %q", out.String(), seq)
		}
	}
	restored := b.Restored()
	if len(restored) != 1 || restored[0] != b.Original {
		t.Fatalf("restored %d states, want the original once", len(restored))
	}
	if b.Raw() {
		t.Fatal("device still raw after emergency reset")
	}
}
