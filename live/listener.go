package live

import (
	"io"

	"github.com/lixenwraith/liveterm/eventlog"
	"github.com/lixenwraith/liveterm/terminal"
	"github.com/pkg/errors"
	"pkt.systems/pslog"
)

// listen reads, decodes and appends input until Kill, stop or a read error
// Consecutive Esc decodes count toward opts.EscapeHits; any other event resets
// the count. The final Esc is replaced by Kill.
func listen(sess *terminal.Session, events *eventlog.Log, stop <-chan struct{}, opts Options, log pslog.Logger) error {
	if opts.Mouse {
		if err := sess.Write(terminal.MouseTracking(true)); err != nil {
			return errors.Wrap(err, "enable mouse tracking")
		}
		defer sess.Write(terminal.MouseTracking(false))
	}

	hits := 0
	for {
		chunk, err := sess.Read(stop)
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Info("input closed")
				events.Kill()
				return nil
			}
			return errors.Wrap(err, "listener read")
		}
		if chunk == nil {
			return nil
		}

		decoded := terminal.DecodeAll(chunk)
		if len(decoded) == 0 {
			log.Debug("dropped input chunk", "bytes", len(chunk))
			continue
		}

		for _, ev := range decoded {
			if ev.Type == terminal.EventKey && ev.Key == terminal.KeyEsc {
				hits++
				if hits >= opts.EscapeHits {
					log.Info("escape threshold reached", "hits", hits)
					events.Kill()
					return nil
				}
			} else {
				hits = 0
			}

			if !events.Append(ev) {
				// Kill already appended elsewhere
				return nil
			}
		}
	}
}
