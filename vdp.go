// vdp.go - Quark VDP core: state, poll loop and presentation

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
	"image"
	"image/color"
	"io"
	"log"
	"sync/atomic"
	"time"

	xdraw "golang.org/x/image/draw"
)

const (
	BOOT_BANNER           = "Quark VDP Version 1.03"
	CURSOR_BLINK_INTERVAL = 500 * time.Millisecond
	IDLE_POLL_INTERVAL    = time.Millisecond
)

var terminalForeground = color.RGBA{R: 170, G: 170, B: 170, A: 0xFF}

// VDPError describes a rejected command. The VDP logs it and carries on.
type VDPError struct {
	Command string // Opcode path, e.g. "VDU 23,27"
	Details string
	Err     error
}

func (e *VDPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Command, e.Details, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Command, e.Details)
}

func (e *VDPError) Unwrap() error {
	return e.Err
}

// VDPOptions wires the VDP to its collaborators. Zero values pick
// defaults: diagnostics to stderr, no trace, no output, no audio.
type VDPOptions struct {
	Diag         *log.Logger
	Trace        *log.Logger
	Output       VideoOutput
	Tones        *ToneChannels
	Layout       KeyboardLayout
	NativeFont   *FontTable
	TerminalFont *FontTable
	Scale        int
	Mode         int
	Now          func() time.Time
}

// VDP is the command interpreter. Everything except VSyncCount and
// PushKey belongs to the goroutine calling Poll/Run.
type VDP struct {
	link     *HostLink
	diag     *log.Logger
	trace    *log.Logger
	output   VideoOutput
	tones    *ToneChannels
	keyboard *Keyboard
	keys     chan KeyEvent

	modeIndex int
	mode      *VideoMode
	palette   []color.RGBA
	cursor    Cursor
	fb        *FrameBuffer
	gfx       GraphicsEngine
	text      TextRenderer
	sprites   SpriteSystem

	nativeFont   *FontTable
	terminalFont *FontTable
	graphColour  color.RGBA
	terminal     bool

	cursorEnabled bool
	blinkOn       bool
	lastBlink     time.Time
	lastPresent   time.Time
	vsync         atomic.Uint64
	scale         int
	frame         *image.RGBA
	now           func() time.Time
}

func NewVDP(link *HostLink, opts VDPOptions) (*VDP, error) {
	if link == nil {
		return nil, errors.New("vdp requires a host link")
	}
	v := &VDP{
		link:          link,
		diag:          opts.Diag,
		trace:         opts.Trace,
		output:        opts.Output,
		tones:         opts.Tones,
		keyboard:      NewKeyboard(opts.Layout),
		keys:          make(chan KeyEvent, KEY_QUEUE_DEPTH),
		scale:         max(opts.Scale, 1),
		now:           opts.Now,
		cursorEnabled: true,
	}
	if v.diag == nil {
		v.diag = log.New(io.Discard, "", 0)
	}
	if v.trace == nil {
		v.trace = log.New(io.Discard, "", 0)
	}
	if v.now == nil {
		v.now = time.Now
	}

	if opts.NativeFont != nil {
		v.nativeFont = opts.NativeFont.Clone()
	} else {
		f, err := NewNativeFont()
		if err != nil {
			return nil, err
		}
		v.nativeFont = f
	}
	if opts.TerminalFont != nil {
		v.terminalFont = opts.TerminalFont.Clone()
	} else {
		v.terminalFont = NewTerminalFont()
	}

	mode := opts.Mode
	if _, ok := LookupVideoMode(mode); !ok {
		return nil, fmt.Errorf("invalid start-up mode %d", mode)
	}
	v.text = TextRenderer{
		Font:  v.nativeFont,
		Attrs: TextAttributes{Foreground: colourLookup[0x3F], Background: colourLookup[0x00]},
	}
	v.graphColour = v.text.Attrs.Foreground
	v.changeMode(mode)
	v.lastBlink = v.now()
	v.lastPresent = v.lastBlink
	return v, nil
}

// Start prints the boot banner.
func (v *VDP) Start() {
	for i := 0; i < len(BOOT_BANNER); i++ {
		v.text.RenderGlyph(v.fb, v.cursor.X, v.cursor.Y, BOOT_BANNER[i])
		v.cursor.Right()
	}
	v.cursor.Down()
	v.cursor.Home()
	v.checkScroll()
}

func (v *VDP) tracef(format string, args ...any) {
	v.trace.Printf(format, args...)
}

// Poll runs one interpreter step and reports whether a byte was consumed.
func (v *VDP) Poll() bool {
	v.drainKeys()

	if v.cursor.PagedMode {
		switch v.cursor.Paging.Phase {
		case PagingAwaitingContinue:
			return false
		case PagingContinueGranted:
			v.checkScroll()
			v.cursor.ResetPaging()
		}
	}

	b, ok := v.link.TryReadByte()
	if !ok {
		return false
	}

	var err error
	if v.terminal {
		err = v.dispatchTerminal(b)
	} else {
		err = v.dispatchNative(b)
	}
	switch {
	case err == nil:
	case errors.Is(err, ErrLinkClosed):
		v.tracef("link closed inside command 0x%02X", b)
	default:
		v.diag.Print(err)
	}
	return true
}

// Run polls and presents until ctx is cancelled.
func (v *VDP) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if !v.Poll() {
			time.Sleep(IDLE_POLL_INTERVAL)
		}
		if now := v.now(); now.Sub(v.lastPresent) >= v.refreshInterval() {
			v.lastPresent = now
			v.Present()
		}
	}
}

func (v *VDP) refreshInterval() time.Duration {
	return time.Second / time.Duration(v.mode.RefreshRate)
}

// Present composes framebuffer, cursor and sprites into the output frame.
func (v *VDP) Present() {
	v.vsync.Add(1)

	now := v.now()
	if now.Sub(v.lastBlink) > CURSOR_BLINK_INTERVAL {
		v.blinkOn = !v.blinkOn
		v.lastBlink = now
	}

	s := v.scale
	w, h := v.mode.Width*s, v.mode.Height*s
	if v.frame == nil || v.frame.Rect.Dx() != w || v.frame.Rect.Dy() != h {
		v.frame = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	if s == 1 {
		copy(v.frame.Pix, v.fb.Image().Pix)
	} else {
		xdraw.NearestNeighbor.Scale(v.frame, v.frame.Rect, v.fb.Image(), v.fb.Bounds(), xdraw.Src, nil)
	}

	if v.cursorEnabled && v.blinkOn {
		c := v.cursor
		r := image.Rect(c.X*s, c.Y*s, (c.X+c.FontWidth)*s, (c.Y+c.FontHeight)*s)
		xdraw.Draw(v.frame, r, image.NewUniform(v.text.Attrs.Foreground), image.Point{}, xdraw.Src)
	}
	v.sprites.Composite(v.frame, s)

	if v.output != nil {
		if err := v.output.UpdateFrame(v.frame.Pix); err != nil {
			v.diag.Printf("present: %v", err)
		}
	}
	v.publishStatus()
}

// VSyncCount is safe to call from any goroutine.
func (v *VDP) VSyncCount() uint64 {
	return v.vsync.Load()
}

// Frame returns the last presented image.
func (v *VDP) Frame() *image.RGBA {
	return v.frame
}

func (v *VDP) FrameBuffer() *FrameBuffer {
	return v.fb
}

func (v *VDP) Mode() int {
	return v.modeIndex
}

func (v *VDP) Terminal() bool {
	return v.terminal
}

// PushKey queues a key event from an input backend. Events are dropped
// when the queue is full.
func (v *VDP) PushKey(ev KeyEvent) bool {
	select {
	case v.keys <- ev:
		return true
	default:
		return false
	}
}

func (v *VDP) drainKeys() {
	for {
		select {
		case ev := <-v.keys:
			v.HandleKey(ev)
		default:
			return
		}
	}
}

// HandleKey reports a key to the host. Ctrl+N and Ctrl+O switch paged
// mode locally; shift releases a held page.
func (v *VDP) HandleKey(ev KeyEvent) {
	vk, ascii := v.keyboard.Resolve(ev)

	if ev.Mods&MOD_CTRL != 0 {
		ascii &= 0x1F
		switch ascii {
		case VDU_PAGED_ON:
			v.setPaged(true)
		case VDU_PAGED_OFF:
			v.setPaged(false)
		}
	}

	if v.terminal {
		if ev.Down {
			if _, err := v.link.Write([]byte{ascii}); err != nil {
				v.tracef("key 0x%02X dropped: %v", ascii, err)
			}
		}
		return
	}

	if ev.Mods&MOD_SHIFT != 0 && v.cursor.Awaiting() {
		v.cursor.Continue()
	}
	var down byte
	if ev.Down {
		down = 1
	}
	v.sendPacket(PACKET_KEYCODE, ascii, byte(ev.Mods), byte(vk), down)
}

func (v *VDP) sendPacket(code byte, payload ...byte) {
	pkt := EncodePacket(code, payload...)
	v.tracef("packet % X", pkt)
	if _, err := v.link.Write(pkt); err != nil {
		v.tracef("packet 0x%02X dropped: %v", code, err)
	}
}

// changeMode rebuilds the screen for mode. The caller validates index.
func (v *VDP) changeMode(index int) {
	mode, _ := LookupVideoMode(index)
	v.modeIndex = index
	v.mode = mode
	v.palette = append(v.palette[:0], mode.Palette...)
	v.fb = NewFrameBuffer(mode.Width, mode.Height, v.text.Attrs.Background)
	paged := v.cursor.PagedMode
	v.cursor = NewCursor(mode.Width, mode.Height, v.text.Font.Width, v.text.Font.Height)
	v.cursor.PagedMode = paged
	v.cls()
	v.gfx.Reset()

	if v.output != nil {
		cfg := v.output.GetDisplayConfig()
		// Frames arrive already scaled.
		cfg.Width = mode.Width * v.scale
		cfg.Height = mode.Height * v.scale
		cfg.Scale = 1
		cfg.RefreshRate = mode.RefreshRate
		cfg.PixelFormat = PixelFormatRGBA
		if err := v.output.SetDisplayConfig(cfg); err != nil {
			v.diag.Printf("mode %d: %v", index, err)
		}
	}
}

func (v *VDP) cls() {
	v.fb.Clear(v.text.Attrs.Background)
	v.cursor.TopLeft()
	v.cursor.ResetPaging()
	v.sprites.ClearCounts()
}

// setPaged switches paged mode. Leaving it with a scroll pending performs
// the scroll at once.
func (v *VDP) setPaged(on bool) {
	if on == v.cursor.PagedMode {
		return
	}
	if on {
		v.cursor.PagedMode = true
		v.cursor.ResetPaging()
		return
	}
	pending := v.cursor.Paging.Phase != PagingCounting
	v.cursor.PagedMode = false
	v.cursor.ResetPaging()
	if pending {
		v.checkScroll()
	}
}

// checkScroll scrolls up one text row once the cursor has left the screen.
func (v *VDP) checkScroll() {
	if v.cursor.Awaiting() {
		return
	}
	fh := v.cursor.FontHeight
	if v.cursor.Y-v.cursor.ScreenHeight+fh > 0 {
		v.fb = v.fb.Shifted(0, -fh, v.text.Attrs.Background)
		v.cursor.Y -= fh
		v.tracef("scrolled, cursor row %d", v.cursor.Row())
	}
}

func (v *VDP) paletteColour(c byte) color.RGBA {
	return v.palette[int(c)%len(v.palette)]
}

func (v *VDP) publishStatus() {
	snap := runtimeStatusSnapshot{
		mode:      v.modeIndex,
		width:     v.mode.Width,
		height:    v.mode.Height,
		terminal:  v.terminal,
		pagedMode: v.cursor.PagedMode,
		paging:    v.cursor.Paging,
		vsync:     v.vsync.Load(),
		layout:    v.keyboard.Layout().Name(),
	}
	if v.tones != nil {
		for ch := range snap.busy {
			snap.busy[ch] = v.tones.Busy(ch)
		}
	}
	runtimeStatus.set(snap)
}
