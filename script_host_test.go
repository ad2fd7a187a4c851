package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	lua "github.com/yuin/gopher-lua"
)

func newScriptHostForTest(t *testing.T, vsync func() uint64) (*ScriptHost, *HostLink) {
	t.Helper()
	link := NewHostLink(256)
	sh := NewScriptHost(link, vsync)
	t.Cleanup(func() {
		sh.Close()
		link.Close()
	})
	return sh, link
}

func hostBytes(link *HostLink) []byte {
	var out []byte
	for {
		b, ok := link.TryReadByte()
		if !ok {
			return out
		}
		out = append(out, b)
	}
}

func TestScriptHost_VDUSendsBytes(t *testing.T) {
	sh, link := newScriptHostForTest(t, nil)
	if err := sh.RunString(context.Background(), `vdu(22, 1, "AB", 300)`); err != nil {
		t.Fatal(err)
	}
	if got := hostBytes(link); !bytes.Equal(got, []byte{22, 1, 'A', 'B', 44}) {
		t.Fatalf("unexpected bytes % X", got)
	}
}

func TestScriptHost_VDU16SendsWords(t *testing.T) {
	sh, link := newScriptHostForTest(t, nil)
	if err := sh.RunString(context.Background(), `vdu16(-1, 640)`); err != nil {
		t.Fatal(err)
	}
	if got := hostBytes(link); !bytes.Equal(got, []byte{0xFF, 0xFF, 0x80, 0x02}) {
		t.Fatalf("unexpected bytes % X", got)
	}
}

func TestScriptHost_VDURejectsTables(t *testing.T) {
	sh, _ := newScriptHostForTest(t, nil)
	if err := sh.RunString(context.Background(), `vdu({})`); err == nil {
		t.Fatal("expected error for a table argument")
	}
}

func TestScriptHost_PacketReturnsCodeAndPayload(t *testing.T) {
	sh, link := newScriptHostForTest(t, nil)
	link.Write(EncodePacket(PACKET_AUDIO, 0, 1))
	src := `local code, p = packet(100)
result = code * 100 + #p + p[2]`
	if err := sh.RunString(context.Background(), src); err != nil {
		t.Fatal(err)
	}
	if got := sh.L.GetGlobal("result"); got != lua.LNumber(503) {
		t.Fatalf("expected 503, got %v", got)
	}
}

func TestScriptHost_PacketTimeoutReturnsNil(t *testing.T) {
	sh, _ := newScriptHostForTest(t, nil)
	if err := sh.RunString(context.Background(), `r = packet(5)`); err != nil {
		t.Fatal(err)
	}
	if got := sh.L.GetGlobal("r"); got != lua.LNil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestScriptHost_FramesWaitsForRefreshes(t *testing.T) {
	var count atomic.Uint64
	vsync := func() uint64 { return count.Add(1) }
	sh, _ := newScriptHostForTest(t, vsync)
	if err := sh.RunString(context.Background(), `frames(3); v = vsync()`); err != nil {
		t.Fatal(err)
	}
	if got := sh.L.GetGlobal("v"); got != lua.LNumber(5) {
		t.Fatalf("expected vsync 5 after frames(3), got %v", got)
	}
}

func TestScriptHost_FramesWithoutVSync(t *testing.T) {
	sh, _ := newScriptHostForTest(t, nil)
	err := sh.RunString(context.Background(), `frames(1)`)
	if err == nil || !strings.Contains(err.Error(), "vsync unavailable") {
		t.Fatalf("expected vsync error, got %v", err)
	}
}

func TestScriptHost_SleepHonoursCancel(t *testing.T) {
	sh, _ := newScriptHostForTest(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	start := time.Now()
	if err := sh.RunString(ctx, `sleep(5000)`); err == nil {
		t.Fatal("expected error when the context ends")
	}
	if time.Since(start) > 2*time.Second {
		t.Fatal("sleep ignored cancellation")
	}
}

func TestScriptHost_RunFile(t *testing.T) {
	sh, link := newScriptHostForTest(t, nil)
	path := filepath.Join(t.TempDir(), "host.lua")
	if err := os.WriteFile(path, []byte("vdu(12)\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := sh.RunFile(context.Background(), path); err != nil {
		t.Fatal(err)
	}
	if got := hostBytes(link); !bytes.Equal(got, []byte{VDU_CLS}) {
		t.Fatalf("unexpected bytes % X", got)
	}

	err := sh.RunFile(context.Background(), filepath.Join(t.TempDir(), "missing.lua"))
	if err == nil || !strings.Contains(err.Error(), "missing.lua") {
		t.Fatalf("expected error naming the file, got %v", err)
	}
}

func TestScriptHost_DrivesVDP(t *testing.T) {
	h := newVDPForTest(t)
	sh := NewScriptHost(h.link, h.vdp.VSyncCount)
	defer sh.Close()
	if err := sh.RunString(context.Background(), `vdu(31, 2, 3, "B", 23, 0, 0x82)`); err != nil {
		t.Fatal(err)
	}
	h.feed()
	expectPayload(t, lastPacket(t, h.link, PACKET_CURSOR), 3, 3)
}
