// vdp_link.go - Byte channels between the VDP and its host

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"
)

const LINK_QUEUE_DEPTH = 4096

var (
	// ErrLinkClosed is returned by blocking link operations after Close.
	ErrLinkClosed = errors.New("host link closed")
	// ErrLinkFull is returned by Write when no host is draining output.
	ErrLinkFull = errors.New("host link output full")
)

// HostLink carries host-to-VDP bytes on rx and VDP-to-host bytes on tx.
// The VDP side polls rx without blocking between commands and blocks for
// parameter bytes. rx and tx are never closed; done signals shutdown.
type HostLink struct {
	rx        chan byte
	tx        chan byte
	done      chan struct{}
	closeOnce sync.Once
}

func NewHostLink(depth int) *HostLink {
	if depth <= 0 {
		depth = LINK_QUEUE_DEPTH
	}
	return &HostLink{
		rx:   make(chan byte, depth),
		tx:   make(chan byte, depth),
		done: make(chan struct{}),
	}
}

// TryReadByte returns the next host byte if one is queued.
func (l *HostLink) TryReadByte() (byte, bool) {
	select {
	case b := <-l.rx:
		return b, true
	default:
		return 0, false
	}
}

// ReadByte blocks for the next host byte.
func (l *HostLink) ReadByte() (byte, error) {
	select {
	case b := <-l.rx:
		return b, nil
	case <-l.done:
		select {
		case b := <-l.rx:
			return b, nil
		default:
			return 0, ErrLinkClosed
		}
	}
}

// Write queues bytes for the host without waiting for it. p is dropped
// whole when it does not fit, so the host never sees part of a packet.
// The VDP is the only writer.
func (l *HostLink) Write(p []byte) (int, error) {
	select {
	case <-l.done:
		return 0, ErrLinkClosed
	default:
	}
	if len(p) > cap(l.tx)-len(l.tx) {
		return 0, ErrLinkFull
	}
	for i, b := range p {
		select {
		case l.tx <- b:
		default:
			return i, ErrLinkFull
		}
	}
	return len(p), nil
}

// Send queues bytes from the host side.
func (l *HostLink) Send(p ...byte) error {
	for _, b := range p {
		select {
		case l.rx <- b:
		case <-l.done:
			return ErrLinkClosed
		}
	}
	return nil
}

// Receive waits up to timeout for the next VDP byte.
func (l *HostLink) Receive(timeout time.Duration) (byte, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case b := <-l.tx:
		return b, true
	case <-timer.C:
		return 0, false
	case <-l.done:
		return 0, false
	}
}

// Pending drains every VDP byte queued so far.
func (l *HostLink) Pending() []byte {
	var out []byte
	for {
		select {
		case b := <-l.tx:
			out = append(out, b)
		default:
			return out
		}
	}
}

// DiscardOutput drops VDP bytes nobody collected and returns how many.
func (l *HostLink) DiscardOutput() int {
	return len(l.Pending())
}

func (l *HostLink) Close() {
	l.closeOnce.Do(func() { close(l.done) })
}

func (l *HostLink) Done() <-chan struct{} {
	return l.done
}

// Serve pumps bytes between rw and the link until rw reaches EOF, ctx ends
// or the link closes. A host that goes away just stops supplying bytes.
func (l *HostLink) Serve(ctx context.Context, rw io.ReadWriter) error {
	stop := make(chan struct{})
	defer close(stop)

	go l.pumpOut(rw, stop)

	buf := make([]byte, 256)
	for {
		n, err := rw.Read(buf)
		for _, b := range buf[:n] {
			select {
			case l.rx <- b:
			case <-ctx.Done():
				return ctx.Err()
			case <-l.done:
				return nil
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// pumpOut copies VDP bytes to w in batches until stop closes, the link
// closes or a write fails.
func (l *HostLink) pumpOut(w io.Writer, stop <-chan struct{}) {
	out := make([]byte, 0, 256)
	for {
		select {
		case b := <-l.tx:
			out = append(out[:0], b)
		batch:
			for len(out) < cap(out) {
				select {
				case b := <-l.tx:
					out = append(out, b)
				default:
					break batch
				}
			}
			if _, err := w.Write(out); err != nil {
				return
			}
		case <-stop:
			return
		case <-l.done:
			return
		}
	}
}
