//go:build windows

package main

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// TerminalHost connects the host link to this process's stdin and stdout.
// Windows has no non-blocking stdin, so the reader goroutine is left
// blocked in Read after Stop.
type TerminalHost struct {
	link         *HostLink
	out          io.Writer
	stopCh       chan struct{}
	outDone      chan struct{}
	stopped      sync.Once
	fd           int
	oldTermState *term.State
}

func NewTerminalHost(link *HostLink, out io.Writer) *TerminalHost {
	return &TerminalHost{
		link:    link,
		out:     out,
		stopCh:  make(chan struct{}),
		outDone: make(chan struct{}),
	}
}

func (h *TerminalHost) Start() error {
	h.fd = int(os.Stdin.Fd())

	if term.IsTerminal(h.fd) {
		oldState, err := term.MakeRaw(h.fd)
		if err != nil {
			return fmt.Errorf("terminal_host: failed to set raw mode: %w", err)
		}
		h.oldTermState = oldState
	}

	go func() {
		defer close(h.outDone)
		h.link.pumpOut(h.out, h.stopCh)
	}()

	go func() {
		buf := make([]byte, 256)
		for {
			n, err := os.Stdin.Read(buf)
			if n > 0 && h.link.Send(buf[:n]...) != nil {
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return nil
}

// Stop terminates the output pump and restores terminal state.
func (h *TerminalHost) Stop() {
	h.stopped.Do(func() {
		close(h.stopCh)
	})
	<-h.outDone
	if h.oldTermState != nil {
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
	}
}
