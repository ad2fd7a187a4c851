package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for one writer and one reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestHostLink_TryReadByte(t *testing.T) {
	link := NewHostLink(8)
	defer link.Close()
	if _, ok := link.TryReadByte(); ok {
		t.Fatal("empty link returned a byte")
	}
	link.Send('A', 'B')
	for _, want := range []byte("AB") {
		b, ok := link.TryReadByte()
		if !ok || b != want {
			t.Fatalf("expected %q, got %q ok=%v", want, b, ok)
		}
	}
}

func TestHostLink_CloseDrainsQueuedBytes(t *testing.T) {
	link := NewHostLink(8)
	link.Send(42)
	link.Close()

	b, err := link.ReadByte()
	if err != nil || b != 42 {
		t.Fatalf("expected queued byte 42, got %d err=%v", b, err)
	}
	if _, err := link.ReadByte(); !errors.Is(err, ErrLinkClosed) {
		t.Fatalf("expected ErrLinkClosed, got %v", err)
	}
	select {
	case <-link.Done():
	default:
		t.Fatal("Done not closed")
	}
	link.Close()
}

func TestHostLink_ReadByteBlocksUntilSend(t *testing.T) {
	link := NewHostLink(8)
	defer link.Close()
	go func() {
		time.Sleep(5 * time.Millisecond)
		link.Send(7)
	}()
	b, err := link.ReadByte()
	if err != nil || b != 7 {
		t.Fatalf("expected 7, got %d err=%v", b, err)
	}
}

func TestHostLink_ReceiveTimesOut(t *testing.T) {
	link := NewHostLink(8)
	defer link.Close()
	if _, ok := link.Receive(5 * time.Millisecond); ok {
		t.Fatal("Receive returned a byte from an empty link")
	}
	link.Write([]byte{9})
	if b, ok := link.Receive(time.Second); !ok || b != 9 {
		t.Fatalf("expected 9, got %d ok=%v", b, ok)
	}
}

func TestHostLink_PendingDrainsOutput(t *testing.T) {
	link := NewHostLink(8)
	defer link.Close()
	link.Write([]byte{1, 2, 3})
	if got := link.Pending(); !bytes.Equal(got, []byte{1, 2, 3}) {
		t.Fatalf("expected 01 02 03, got % X", got)
	}
	if got := link.Pending(); len(got) != 0 {
		t.Fatalf("second Pending returned % X", got)
	}
}

type readerWriter struct {
	io.Reader
	io.Writer
}

func TestHostLink_ServeCopiesUntilEOF(t *testing.T) {
	link := NewHostLink(64)
	defer link.Close()
	rw := readerWriter{Reader: strings.NewReader("hello"), Writer: io.Discard}

	if err := link.Serve(context.Background(), rw); err != nil {
		t.Fatalf("Serve returned %v", err)
	}
	var got []byte
	for {
		b, ok := link.TryReadByte()
		if !ok {
			break
		}
		got = append(got, b)
	}
	if string(got) != "hello" {
		t.Fatalf("expected hello, got %q", got)
	}
}

func TestHostLink_PumpOutForwardsVDPBytes(t *testing.T) {
	link := NewHostLink(64)
	defer link.Close()
	out := &syncBuffer{}
	stop := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		link.pumpOut(out, stop)
		close(finished)
	}()

	link.Write([]byte("ok"))
	waitFor(t, time.Second, func() bool { return out.String() == "ok" })
	close(stop)
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("pumpOut did not stop")
	}
}

func TestHostLink_WriteDropsWholePacketWhenFull(t *testing.T) {
	link := NewHostLink(4)
	defer link.Close()
	if n, err := link.Write([]byte{1, 2, 3}); n != 3 || err != nil {
		t.Fatalf("expected 3 bytes queued, got %d err=%v", n, err)
	}
	if n, err := link.Write([]byte{4, 5}); n != 0 || !errors.Is(err, ErrLinkFull) {
		t.Fatalf("expected ErrLinkFull with nothing queued, got %d err=%v", n, err)
	}
	if n, err := link.Write([]byte{6}); n != 1 || err != nil {
		t.Fatalf("a byte that fits was refused: %d err=%v", n, err)
	}
	if got := link.Pending(); !bytes.Equal(got, []byte{1, 2, 3, 6}) {
		t.Fatalf("expected 01 02 03 06, got % X", got)
	}
}

func TestHostLink_WriteAfterClose(t *testing.T) {
	link := NewHostLink(4)
	link.Close()
	if _, err := link.Write([]byte{1}); !errors.Is(err, ErrLinkClosed) {
		t.Fatalf("expected ErrLinkClosed, got %v", err)
	}
}

func TestHostLink_DiscardOutput(t *testing.T) {
	link := NewHostLink(8)
	defer link.Close()
	link.Write([]byte{1, 2, 3})
	if n := link.DiscardOutput(); n != 3 {
		t.Fatalf("expected 3 bytes discarded, got %d", n)
	}
	if _, ok := link.Receive(5 * time.Millisecond); ok {
		t.Fatal("discarded output was still delivered")
	}
}
