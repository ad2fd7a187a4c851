// link_transport.go - Host link transports: pty, exec and tcp

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
	"fmt"
	"io"
	"net"
	"os"
	"os/exec"

	"github.com/creack/pty"
	"golang.org/x/term"
)

// Link transport names accepted by -link.
const (
	LINK_STDIO  = "stdio"
	LINK_PTY    = "pty"
	LINK_EXEC   = "exec"
	LINK_TCP    = "tcp"
	LINK_SCRIPT = "script"
)

var linkTransports = []string{LINK_STDIO, LINK_PTY, LINK_EXEC, LINK_TCP, LINK_SCRIPT}

// ServePTY opens a pseudo-terminal and serves the link on its master side.
// The slave path is reported through announce so a host program or
// terminal emulator can attach to it.
func ServePTY(ctx context.Context, link *HostLink, announce func(path string)) error {
	ptmx, tty, err := pty.Open()
	if err != nil {
		return fmt.Errorf("pty open: %w", err)
	}
	defer ptmx.Close()
	defer tty.Close()

	// Raw on the slave side so protocol bytes are not cooked by the line
	// discipline.
	if _, err := term.MakeRaw(int(tty.Fd())); err != nil {
		return fmt.Errorf("pty raw mode: %w", err)
	}
	if announce != nil {
		announce(tty.Name())
	}
	return serveUntilDone(ctx, link, ptmx)
}

// ServeExec runs command under a pseudo-terminal whose master side is the
// link. It returns when the command exits or ctx is cancelled.
func ServeExec(ctx context.Context, link *HostLink, command string) error {
	if command == "" {
		return errors.New("exec link requires a host command")
	}
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Stderr = os.Stderr
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("start %q: %w", command, err)
	}
	defer ptmx.Close()

	if _, err := term.MakeRaw(int(ptmx.Fd())); err != nil {
		_ = cmd.Process.Kill()
		return fmt.Errorf("pty raw mode: %w", err)
	}

	serveErr := make(chan error, 1)
	go func() { serveErr <- link.Serve(ctx, ptmx) }()

	waitErr := cmd.Wait()
	ptmx.Close()
	if err := <-serveErr; err != nil && !isClosedPipe(err) && !errors.Is(err, context.Canceled) {
		return err
	}
	if ctx.Err() != nil {
		return nil
	}
	return waitErr
}

// ServeTCP accepts host connections on addr, one at a time. The bound
// address is reported through announce.
func ServeTCP(ctx context.Context, link *HostLink, addr string, announce func(addr string)) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	defer ln.Close()
	if announce != nil {
		announce(ln.Addr().String())
	}

	go func() {
		select {
		case <-ctx.Done():
		case <-link.Done():
		}
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || isLinkDone(link) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		// Output queued while no host was attached belongs to nobody.
		link.DiscardOutput()
		if err := serveUntilDone(ctx, link, conn); err != nil && !errors.Is(err, context.Canceled) {
			conn.Close()
			return err
		}
		conn.Close()
		if ctx.Err() != nil || isLinkDone(link) {
			return nil
		}
	}
}

// serveUntilDone runs Serve and unblocks its pending Read when ctx ends.
func serveUntilDone(ctx context.Context, link *HostLink, rwc io.ReadWriteCloser) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			rwc.Close()
		case <-link.Done():
			rwc.Close()
		case <-stop:
		}
	}()
	err := link.Serve(ctx, rwc)
	if ctx.Err() != nil || isLinkDone(link) {
		return nil
	}
	if isClosedPipe(err) {
		return nil
	}
	return err
}

func isLinkDone(link *HostLink) bool {
	select {
	case <-link.Done():
		return true
	default:
		return false
	}
}

// isClosedPipe reports errors that only mean the other end went away.
func isClosedPipe(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, net.ErrClosed) || errors.Is(err, os.ErrClosed) || errors.Is(err, io.ErrClosedPipe) {
		return true
	}
	// Linux reports EIO on the pty master once the slave closes.
	var pe *os.PathError
	return errors.As(err, &pe)
}
