//go:build !unix

package terminal

import "github.com/pkg/errors"

// NewBackend is only implemented for unix terminals
func NewBackend(opts BackendOptions) (Backend, error) {
	return nil, errors.Wrap(ErrNotTerminal, "raw terminal backend requires a unix platform")
}
