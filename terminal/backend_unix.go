//go:build unix

package terminal

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

type unixBackend struct {
	in    *os.File
	out   *os.File
	inFd  int
	outFd int

	pollMs int
	buf    []byte
}

// NewBackend opens the terminal device described by opts
func NewBackend(opts BackendOptions) (Backend, error) {
	opts = opts.withDefaults()
	inFd := int(opts.In.Fd())
	if !term.IsTerminal(inFd) {
		return nil, ErrNotTerminal
	}

	pollMs := int(opts.PollTimeout.Milliseconds())
	if pollMs < 1 {
		pollMs = 1
	}

	return &unixBackend{
		in:     opts.In,
		out:    opts.Out,
		inFd:   inFd,
		outFd:  int(opts.Out.Fd()),
		pollMs: pollMs,
		buf:    make([]byte, opts.ReadSize),
	}, nil
}

func (b *unixBackend) GetState() (*term.State, error) {
	return term.GetState(b.inFd)
}

func (b *unixBackend) MakeRaw() error {
	_, err := term.MakeRaw(b.inFd)
	return err
}

func (b *unixBackend) Restore(state *term.State) error {
	if state == nil {
		return errors.New("no saved terminal state")
	}
	return term.Restore(b.inFd, state)
}

func (b *unixBackend) Size() (int, int) {
	return getTerminalSize(b.outFd)
}

func (b *unixBackend) Write(p []byte) error {
	_, err := b.out.Write(p)
	return err
}

func (b *unixBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	for {
		select {
		case <-stopCh:
			return nil, nil
		default:
		}

		// Poll with timeout to allow checking stopCh
		fds := []unix.PollFd{
			{Fd: int32(b.inFd), Events: unix.POLLIN},
		}

		n, err := unix.Poll(fds, b.pollMs)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return nil, errors.Wrap(err, "poll terminal input")
		}
		if n == 0 {
			continue
		}

		rn, err := unix.Read(b.inFd, b.buf)
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return nil, errors.Wrap(err, "read terminal input")
		}
		if rn == 0 {
			return nil, io.EOF
		}

		ret := make([]byte, rn)
		copy(ret, b.buf[:rn])
		return ret, nil
	}
}

// getTerminalSize returns the terminal size for a given fd
func getTerminalSize(fd int) (int, int) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}
