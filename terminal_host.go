//go:build !windows

package main

import (
	"fmt"
	"io"
	"os"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"
)

// TerminalHost connects the host link to this process's stdin and stdout.
// Stdin is switched to raw mode when it is a terminal so the protocol
// bytes pass through untouched.
type TerminalHost struct {
	link         *HostLink
	out          io.Writer
	stopCh       chan struct{}
	done         chan struct{}
	outDone      chan struct{}
	stopped      sync.Once
	fd           int
	nonblockSet  bool
	oldTermState *term.State
}

func NewTerminalHost(link *HostLink, out io.Writer) *TerminalHost {
	return &TerminalHost{
		link:    link,
		out:     out,
		stopCh:  make(chan struct{}),
		done:    make(chan struct{}),
		outDone: make(chan struct{}),
	}
}

// Start begins pumping in both directions. Call Stop() to restore stdin.
func (h *TerminalHost) Start() error {
	h.fd = int(os.Stdin.Fd())

	if term.IsTerminal(h.fd) {
		oldState, err := term.MakeRaw(h.fd)
		if err != nil {
			return fmt.Errorf("terminal_host: failed to set raw mode: %w", err)
		}
		h.oldTermState = oldState
	}

	if err := syscall.SetNonblock(h.fd, true); err != nil {
		h.restore()
		return fmt.Errorf("terminal_host: failed to set nonblocking stdin: %w", err)
	}
	h.nonblockSet = true

	go func() {
		defer close(h.outDone)
		h.link.pumpOut(h.out, h.stopCh)
	}()

	go func() {
		defer close(h.done)
		buf := make([]byte, 256)

		for {
			select {
			case <-h.stopCh:
				return
			default:
			}

			n, err := syscall.Read(h.fd, buf)
			if n > 0 {
				if h.link.Send(buf[:n]...) != nil {
					return
				}
			}
			if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK {
				time.Sleep(5 * time.Millisecond)
				continue
			}
			if err != nil {
				return
			}
			if n == 0 {
				// EOF: the host went away, keep the display up.
				time.Sleep(5 * time.Millisecond)
			}
		}
	}()
	return nil
}

// Stop terminates both pumps and restores stdin to blocking mode.
func (h *TerminalHost) Stop() {
	h.stopped.Do(func() {
		close(h.stopCh)
	})
	<-h.done
	<-h.outDone
	h.restore()
}

func (h *TerminalHost) restore() {
	if h.nonblockSet {
		_ = syscall.SetNonblock(h.fd, false)
		h.nonblockSet = false
	}
	if h.oldTermState != nil {
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
	}
}
