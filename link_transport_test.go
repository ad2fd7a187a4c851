package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"testing"
	"time"

	"github.com/creack/pty"
)

func TestServeTCP_RoundTrip(t *testing.T) {
	link := NewHostLink(64)
	defer link.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addrCh := make(chan string, 1)
	result := make(chan error, 1)
	go func() {
		result <- ServeTCP(ctx, link, "127.0.0.1:0", func(addr string) { addrCh <- addr })
	}()

	var addr string
	select {
	case addr = <-addrCh:
	case err := <-result:
		t.Fatalf("ServeTCP failed early: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("no address announced")
	}

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	conn.Write([]byte{VDU_CLS})
	b, err := link.ReadByte()
	if err != nil || b != VDU_CLS {
		t.Fatalf("expected CLS from the host, got %d err=%v", b, err)
	}

	link.Write([]byte("ok"))
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 2)
	if _, err := io.ReadFull(conn, buf); err != nil || string(buf) != "ok" {
		t.Fatalf("expected ok, got %q err=%v", buf, err)
	}

	cancel()
	select {
	case err := <-result:
		if err != nil {
			t.Fatalf("expected nil after cancel, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("ServeTCP did not stop")
	}
}

func TestServeTCP_BadAddress(t *testing.T) {
	link := NewHostLink(8)
	defer link.Close()
	if err := ServeTCP(context.Background(), link, "256.0.0.1:bad", nil); err == nil {
		t.Fatal("expected listen error")
	}
}

func TestServeExec_RunsHostUnderPTY(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("no pty available: %v", err)
	}
	ptmx.Close()
	tty.Close()

	link := NewHostLink(64)
	defer link.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := ServeExec(ctx, link, "printf QV; sleep 0.3"); err != nil {
		t.Fatalf("ServeExec failed: %v", err)
	}
	if got := hostBytes(link); string(got) != "QV" {
		t.Fatalf("expected QV from the host, got %q", got)
	}
}

func TestServeExec_NeedsCommand(t *testing.T) {
	link := NewHostLink(8)
	defer link.Close()
	if err := ServeExec(context.Background(), link, ""); err == nil {
		t.Fatal("expected error for an empty command")
	}
}

func TestIsClosedPipe(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("boom"), false},
		{fmt.Errorf("read: %w", net.ErrClosed), true},
		{io.ErrClosedPipe, true},
		{&os.PathError{Op: "read", Path: "/dev/ptmx", Err: errors.New("input/output error")}, true},
	}
	for _, tc := range cases {
		if got := isClosedPipe(tc.err); got != tc.want {
			t.Fatalf("isClosedPipe(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
