// script_host.go - Lua host programs driving the VDP link

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
	"fmt"
	"time"

	lua "github.com/yuin/gopher-lua"
)

const SCRIPT_FRAME_POLL = time.Millisecond

// ScriptHost plays the host side of the link from a Lua program.
type ScriptHost struct {
	link  *HostLink
	vsync func() uint64
	L     *lua.LState
}

// NewScriptHost prepares a Lua state with the host API installed. vsync
// reports the VDP refresh count; nil disables vsync() and frames().
func NewScriptHost(link *HostLink, vsync func() uint64) *ScriptHost {
	sh := &ScriptHost{link: link, vsync: vsync, L: lua.NewState()}
	sh.register()
	return sh
}

func (sh *ScriptHost) Close() {
	sh.L.Close()
}

// RunFile executes path until it returns, fails or ctx is cancelled.
func (sh *ScriptHost) RunFile(ctx context.Context, path string) error {
	sh.L.SetContext(ctx)
	if err := sh.L.DoFile(path); err != nil {
		return fmt.Errorf("script %s: %w", path, err)
	}
	return nil
}

// RunString executes a chunk of Lua source.
func (sh *ScriptHost) RunString(ctx context.Context, src string) error {
	sh.L.SetContext(ctx)
	return sh.L.DoString(src)
}

func (sh *ScriptHost) register() {
	fns := map[string]lua.LGFunction{
		"vdu":    sh.luaVDU,
		"vdu16":  sh.luaVDU16,
		"packet": sh.luaPacket,
		"sleep":  sh.luaSleep,
		"vsync":  sh.luaVSync,
		"frames": sh.luaFrames,
	}
	for name, fn := range fns {
		sh.L.SetGlobal(name, sh.L.NewFunction(fn))
	}
}

func (sh *ScriptHost) send(L *lua.LState, p []byte) {
	if err := sh.link.Send(p...); err != nil {
		L.RaiseError("link: %v", err)
	}
}

// vdu(...) sends numbers as single bytes and strings verbatim.
func (sh *ScriptHost) luaVDU(L *lua.LState) int {
	var out []byte
	for i := 1; i <= L.GetTop(); i++ {
		switch v := L.Get(i).(type) {
		case lua.LNumber:
			out = append(out, byte(int(v)))
		case lua.LString:
			out = append(out, string(v)...)
		default:
			L.ArgError(i, "number or string expected")
		}
	}
	sh.send(L, out)
	return 0
}

// vdu16(...) sends each argument as a little-endian word.
func (sh *ScriptHost) luaVDU16(L *lua.LState) int {
	out := make([]byte, 0, 2*L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		w := uint16(int16(L.CheckInt(i)))
		out = append(out, byte(w), byte(w>>8))
	}
	sh.send(L, out)
	return 0
}

// packet(timeout_ms) returns code and a payload table, or nil on timeout.
func (sh *ScriptHost) luaPacket(L *lua.LState) int {
	timeout := time.Duration(L.OptInt(1, 1000)) * time.Millisecond
	next := func() (byte, error) {
		b, ok := sh.link.Receive(timeout)
		if !ok {
			return 0, ErrLinkClosed
		}
		return b, nil
	}
	p, err := ReadPacket(next)
	if err != nil {
		L.Push(lua.LNil)
		return 1
	}
	payload := L.NewTable()
	for _, b := range p.Payload {
		payload.Append(lua.LNumber(b))
	}
	L.Push(lua.LNumber(p.Code))
	L.Push(payload)
	return 2
}

func (sh *ScriptHost) luaSleep(L *lua.LState) int {
	d := time.Duration(L.CheckInt(1)) * time.Millisecond
	sh.wait(L, d)
	return 0
}

func (sh *ScriptHost) luaVSync(L *lua.LState) int {
	if sh.vsync == nil {
		L.RaiseError("vsync unavailable")
	}
	L.Push(lua.LNumber(sh.vsync()))
	return 1
}

// frames(n) blocks until n more refreshes have been presented.
func (sh *ScriptHost) luaFrames(L *lua.LState) int {
	if sh.vsync == nil {
		L.RaiseError("vsync unavailable")
	}
	n := uint64(max(L.OptInt(1, 1), 0))
	target := sh.vsync() + n
	for sh.vsync() < target {
		sh.wait(L, SCRIPT_FRAME_POLL)
	}
	return 0
}

func (sh *ScriptHost) wait(L *lua.LState, d time.Duration) {
	ctx := L.Context()
	if ctx == nil {
		time.Sleep(d)
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
		L.RaiseError("cancelled")
	}
}
