package main

import (
	"bytes"
	"image/color"
	"log"
	"testing"
	"time"
)

// testFontGlyphs gives a few printable characters unique patterns so text
// readback tests do not depend on the rasterised native font.
var testFontGlyphs = map[byte][8]byte{
	'A': {0x18, 0x24, 0x42, 0x7E, 0x42, 0x42, 0x42, 0x00},
	'B': {0x7C, 0x42, 0x7C, 0x42, 0x42, 0x42, 0x7C, 0x00},
	'X': {0x81, 0x42, 0x24, 0x18, 0x18, 0x24, 0x42, 0x81},
}

func newTestFont() *FontTable {
	ft := &FontTable{Width: FONT_WIDTH, Height: NATIVE_FONT_HEIGHT, Data: make([]byte, FONT_GLYPHS*NATIVE_FONT_HEIGHT)}
	for ch, rows := range testFontGlyphs {
		ft.Redefine(ch, rows[:])
	}
	return ft
}

var testClock = time.Date(2024, time.March, 5, 14, 30, 15, 0, time.UTC)

type vdpHarness struct {
	vdp   *VDP
	link  *HostLink
	diag  *bytes.Buffer
	tones *ToneChannels
}

func newVDPForTest(t *testing.T) *vdpHarness {
	t.Helper()
	return newVDPForTestWith(t, VDPOptions{Mode: DEFAULT_MODE})
}

func newVDPForTestWith(t *testing.T, opts VDPOptions) *vdpHarness {
	t.Helper()
	h := &vdpHarness{
		link:  NewHostLink(LINK_QUEUE_DEPTH),
		diag:  &bytes.Buffer{},
		tones: NewToneChannels(SAMPLE_RATE),
	}
	opts.Diag = log.New(h.diag, "", 0)
	if opts.Tones == nil {
		opts.Tones = h.tones
	}
	if opts.NativeFont == nil {
		opts.NativeFont = newTestFont()
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return testClock }
	}
	v, err := NewVDP(h.link, opts)
	if err != nil {
		t.Fatalf("NewVDP failed: %v", err)
	}
	h.vdp = v
	t.Cleanup(h.link.Close)
	return h
}

// feed queues host bytes and polls until the VDP stops consuming.
func (h *vdpHarness) feed(seq ...byte) {
	_ = h.link.Send(seq...)
	for h.vdp.Poll() {
	}
}

func word(v int) []byte {
	return []byte{byte(v), byte(v >> 8)}
}

func cat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// drainPackets decodes every packet the VDP has sent so far.
func drainPackets(t *testing.T, link *HostLink) []Packet {
	t.Helper()
	raw := link.Pending()
	var out []Packet
	next := func() (byte, error) {
		if len(raw) == 0 {
			return 0, ErrLinkClosed
		}
		b := raw[0]
		raw = raw[1:]
		return b, nil
	}
	for len(raw) > 0 {
		p, err := ReadPacket(next)
		if err != nil {
			t.Fatalf("bad packet stream: %v", err)
		}
		out = append(out, p)
	}
	return out
}

func lastPacket(t *testing.T, link *HostLink, code byte) Packet {
	t.Helper()
	var found *Packet
	for _, p := range drainPackets(t, link) {
		if p.Code == code {
			p := p
			found = &p
		}
	}
	if found == nil {
		t.Fatalf("no packet 0x%02X sent", code)
	}
	return *found
}

func pixelAt(fb *FrameBuffer, x, y int) color.RGBA {
	return fb.At(x, y)
}
