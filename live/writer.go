package live

import (
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/lixenwraith/liveterm/eventlog"
	"github.com/lixenwraith/liveterm/terminal"
	"github.com/pkg/errors"
)

// write polls the log, folds new batches into consumer and redraws
// Returns after drawing the frame of the batch that carried Kill, or after a
// frame marked Done (which appends Kill so the listener stops). A Ticker
// consumer is ticked and redrawn every iteration, input or not
func write(sess *terminal.Session, events *eventlog.Log, consumer Consumer, opts Options) error {
	reader := events.NewReader()
	ticker, _ := consumer.(Ticker)

	frame, err := consumer.Init(viewOf(sess))
	if err != nil {
		return errors.Wrap(err, "consumer init")
	}
	if err := render(sess, frame); err != nil {
		return err
	}
	if frame.Done {
		events.Kill()
		return nil
	}
	last := time.Now()

	for {
		pending := reader.Pending()
		if !pending && ticker == nil {
			time.Sleep(opts.PollInterval)
			continue
		}

		killed := false
		if pending {
			var batch eventlog.Batch
			batch, killed = cutAtKill(reader.Next())
			if !batch.Empty() {
				frame, err = consumer.Step(batch, viewOf(sess))
				if err != nil {
					return errors.Wrap(err, "consumer step")
				}
			}
		}

		if ticker != nil && !killed && !frame.Done {
			now := time.Now()
			frame, err = ticker.Tick(now.Sub(last), viewOf(sess))
			if err != nil {
				return errors.Wrap(err, "consumer tick")
			}
			last = now
		}

		if err := render(sess, frame); err != nil {
			return err
		}

		if killed {
			return nil
		}
		if frame.Done {
			events.Kill()
			return nil
		}
		if !pending {
			time.Sleep(opts.PollInterval)
		}
	}
}

// cutAtKill drops Kill and everything after it; pointers of a killed batch are dropped
func cutAtKill(b eventlog.Batch) (eventlog.Batch, bool) {
	for i, k := range b.Keys {
		if k == terminal.KeyKill {
			return eventlog.Batch{Keys: b.Keys[:i]}, true
		}
	}
	return b, false
}

func viewOf(sess *terminal.Session) View {
	w, h := sess.Size()
	return View{Width: w, Height: h}
}

// render draws frame in a single write
func render(sess *terminal.Session, frame Frame) error {
	view := viewOf(sess)

	buf := make([]byte, 0, 4096)
	buf = append(buf, terminal.CursorVisible(false)...)
	buf = append(buf, terminal.ClearScreen()...)
	for i, line := range frame.Lines {
		if i >= view.Height {
			break
		}
		if i > 0 {
			buf = append(buf, terminal.Newline()...)
		}
		buf = append(buf, ansi.Truncate(line, view.Width, "")...)
	}
	buf = append(buf, terminal.SetCursorShape(frame.CursorShape)...)
	buf = terminal.AppendCursorPos(buf, frame.CursorRow, frame.CursorCol)
	if frame.CursorVisible {
		buf = append(buf, terminal.CursorVisible(true)...)
	}

	if err := sess.Write(buf); err != nil {
		return errors.Wrap(err, "render frame")
	}
	return nil
}
