//go:build !headless

// video_backend_ebiten.go - Ebiten video backend for Quark VDP

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
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

func init() {
	compiledFeatures = append(compiledFeatures, "video:ebiten")
}

const PASTE_LIMIT = 4096

type EbitenOutput struct {
	running     bool
	window      *ebiten.Image
	width       int
	height      int
	format      PixelFormat
	fullscreen  bool
	scale       int
	windowedW   int
	windowedH   int
	frameBuffer []byte
	bufferMutex sync.RWMutex
	frameCount  uint64
	refreshRate int
	vsyncChan   chan struct{}
	done        chan struct{}
	keyHandler  func(KeyEvent)
	capsLock    bool

	clipboardOnce sync.Once
	clipboardOK   bool
	showStatusBar bool
}

// ebitenScancodes maps physical ebiten keys onto VDP scancodes. F11 and
// F12 are kept by the window for fullscreen and the status bar.
var ebitenScancodes = []struct {
	key ebiten.Key
	sc  Scancode
}{
	{ebiten.KeyA, SC_A}, {ebiten.KeyB, SC_B}, {ebiten.KeyC, SC_C}, {ebiten.KeyD, SC_D},
	{ebiten.KeyE, SC_E}, {ebiten.KeyF, SC_F}, {ebiten.KeyG, SC_G}, {ebiten.KeyH, SC_H},
	{ebiten.KeyI, SC_I}, {ebiten.KeyJ, SC_J}, {ebiten.KeyK, SC_K}, {ebiten.KeyL, SC_L},
	{ebiten.KeyM, SC_M}, {ebiten.KeyN, SC_N}, {ebiten.KeyO, SC_O}, {ebiten.KeyP, SC_P},
	{ebiten.KeyQ, SC_Q}, {ebiten.KeyR, SC_R}, {ebiten.KeyS, SC_S}, {ebiten.KeyT, SC_T},
	{ebiten.KeyU, SC_U}, {ebiten.KeyV, SC_V}, {ebiten.KeyW, SC_W}, {ebiten.KeyX, SC_X},
	{ebiten.KeyY, SC_Y}, {ebiten.KeyZ, SC_Z},
	{ebiten.KeyDigit1, SC_1}, {ebiten.KeyDigit2, SC_2}, {ebiten.KeyDigit3, SC_3},
	{ebiten.KeyDigit4, SC_4}, {ebiten.KeyDigit5, SC_5}, {ebiten.KeyDigit6, SC_6},
	{ebiten.KeyDigit7, SC_7}, {ebiten.KeyDigit8, SC_8}, {ebiten.KeyDigit9, SC_9},
	{ebiten.KeyDigit0, SC_0},
	{ebiten.KeySpace, SC_SPACE},
	{ebiten.KeyBackquote, SC_GRAVE},
	{ebiten.KeyMinus, SC_MINUS},
	{ebiten.KeyEqual, SC_EQUALS},
	{ebiten.KeyBracketLeft, SC_LEFTBRACKET},
	{ebiten.KeyBracketRight, SC_RIGHTBRACKET},
	{ebiten.KeySemicolon, SC_SEMICOLON},
	{ebiten.KeyQuote, SC_APOSTROPHE},
	{ebiten.KeyBackslash, SC_BACKSLASH},
	{ebiten.KeyIntlBackslash, SC_NONUS_BACKSLASH},
	{ebiten.KeyComma, SC_COMMA},
	{ebiten.KeyPeriod, SC_PERIOD},
	{ebiten.KeySlash, SC_SLASH},
	{ebiten.KeyNumpad0, SC_KP_0}, {ebiten.KeyNumpad1, SC_KP_1}, {ebiten.KeyNumpad2, SC_KP_2},
	{ebiten.KeyNumpad3, SC_KP_3}, {ebiten.KeyNumpad4, SC_KP_4}, {ebiten.KeyNumpad5, SC_KP_5},
	{ebiten.KeyNumpad6, SC_KP_6}, {ebiten.KeyNumpad7, SC_KP_7}, {ebiten.KeyNumpad8, SC_KP_8},
	{ebiten.KeyNumpad9, SC_KP_9},
	{ebiten.KeyNumpadDivide, SC_KP_DIVIDE},
	{ebiten.KeyNumpadMultiply, SC_KP_MULTIPLY},
	{ebiten.KeyNumpadSubtract, SC_KP_MINUS},
	{ebiten.KeyNumpadAdd, SC_KP_PLUS},
	{ebiten.KeyNumpadEnter, SC_KP_ENTER},
	{ebiten.KeyNumpadDecimal, SC_KP_PERIOD},
	{ebiten.KeyF1, SC_F1}, {ebiten.KeyF2, SC_F2}, {ebiten.KeyF3, SC_F3}, {ebiten.KeyF4, SC_F4},
	{ebiten.KeyF5, SC_F5}, {ebiten.KeyF6, SC_F6}, {ebiten.KeyF7, SC_F7}, {ebiten.KeyF8, SC_F8},
	{ebiten.KeyF9, SC_F9}, {ebiten.KeyF10, SC_F10},
	{ebiten.KeyEscape, SC_ESCAPE},
	{ebiten.KeyEnter, SC_RETURN},
	{ebiten.KeyBackspace, SC_BACKSPACE},
	{ebiten.KeyTab, SC_TAB},
	{ebiten.KeyShiftLeft, SC_LSHIFT},
	{ebiten.KeyShiftRight, SC_RSHIFT},
	{ebiten.KeyControlLeft, SC_LCTRL},
	{ebiten.KeyControlRight, SC_RCTRL},
	{ebiten.KeyAltLeft, SC_LALT},
	{ebiten.KeyAltRight, SC_RALT},
	{ebiten.KeyMetaLeft, SC_LGUI},
	{ebiten.KeyMetaRight, SC_RGUI},
	{ebiten.KeyArrowUp, SC_UP},
	{ebiten.KeyArrowDown, SC_DOWN},
	{ebiten.KeyArrowLeft, SC_LEFT},
	{ebiten.KeyArrowRight, SC_RIGHT},
	{ebiten.KeyHome, SC_HOME},
	{ebiten.KeyEnd, SC_END},
	{ebiten.KeyPageUp, SC_PAGEUP},
	{ebiten.KeyPageDown, SC_PAGEDOWN},
	{ebiten.KeyInsert, SC_INSERT},
	{ebiten.KeyDelete, SC_DELETE},
	{ebiten.KeyCapsLock, SC_CAPSLOCK},
}

func NewEbitenOutput() (VideoOutput, error) {
	w, h := VideoModes[DEFAULT_MODE].Width, VideoModes[DEFAULT_MODE].Height
	return &EbitenOutput{
		width:         w,
		height:        h,
		format:        PixelFormatRGBA,
		scale:         1,
		windowedW:     w,
		windowedH:     h,
		frameBuffer:   make([]byte, w*h*4),
		refreshRate:   60,
		vsyncChan:     make(chan struct{}, 1),
		done:          make(chan struct{}),
		showStatusBar: true,
	}, nil
}

func (eo *EbitenOutput) Start() error {
	if eo.running {
		return nil
	}
	eo.bufferMutex.Lock()
	eo.done = make(chan struct{})
	eo.bufferMutex.Unlock()
	eo.running = true
	ebiten.SetWindowSize(eo.windowedW, eo.windowedH)
	ebiten.SetWindowTitle("Quark VDP")
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetVsyncEnabled(true)
	if eo.fullscreen {
		ebiten.SetFullscreen(true)
	}

	go func() {
		defer func() {
			eo.running = false
			eo.bufferMutex.RLock()
			done := eo.done
			eo.bufferMutex.RUnlock()
			select {
			case <-done:
			default:
				close(done)
			}
		}()
		if err := ebiten.RunGame(eo); err != nil {
			fmt.Printf("Ebiten error: %v\n", err)
		}
	}()

	// Wait for first Draw call to ensure Ebiten is ready
	<-eo.vsyncChan
	return nil
}

func (eo *EbitenOutput) Stop() error {
	eo.running = false
	return nil
}

func (eo *EbitenOutput) Close() error {
	return eo.Stop()
}

func (eo *EbitenOutput) Done() <-chan struct{} {
	eo.bufferMutex.RLock()
	done := eo.done
	eo.bufferMutex.RUnlock()
	return done
}

func (eo *EbitenOutput) UpdateFrame(data []byte) error {
	eo.bufferMutex.Lock()
	copy(eo.frameBuffer, data)
	eo.bufferMutex.Unlock()
	return nil
}

func (eo *EbitenOutput) SetDisplayConfig(config DisplayConfig) error {
	eo.bufferMutex.Lock()
	defer eo.bufferMutex.Unlock()

	width := config.Width
	height := config.Height
	if width <= 0 {
		width = eo.width
	}
	if height <= 0 {
		height = eo.height
	}
	eo.width = width
	eo.height = height
	eo.format = config.PixelFormat
	eo.scale = ClampScale(config.Scale)
	if config.RefreshRate > 0 {
		eo.refreshRate = config.RefreshRate
	}
	newSize := eo.width * eo.height * 4

	if len(eo.frameBuffer) != newSize {
		eo.frameBuffer = make([]byte, newSize)
	}

	eo.windowedW = eo.width * eo.scale
	eo.windowedH = eo.height * eo.scale
	eo.fullscreen = config.Fullscreen
	ebiten.SetFullscreen(eo.fullscreen)
	if !eo.fullscreen {
		ebiten.SetWindowSize(eo.windowedW, eo.windowedH)
	}
	if eo.window != nil {
		eo.window.Dispose()
		eo.window = nil
	}
	return nil
}

func (eo *EbitenOutput) GetDisplayConfig() DisplayConfig {
	eo.bufferMutex.RLock()
	defer eo.bufferMutex.RUnlock()
	return DisplayConfig{
		Width:       eo.width,
		Height:      eo.height,
		Scale:       eo.scale,
		PixelFormat: eo.format,
		RefreshRate: eo.refreshRate,
		VSync:       true,
		Fullscreen:  eo.fullscreen,
	}
}

func (eo *EbitenOutput) WaitForVSync() error {
	<-eo.vsyncChan
	return nil
}

func (eo *EbitenOutput) GetFrameCount() uint64 {
	return eo.frameCount
}

func (eo *EbitenOutput) GetRefreshRate() int {
	return eo.refreshRate
}

func (eo *EbitenOutput) GetSnapshot() (FrameSnapshot, error) {
	eo.bufferMutex.RLock()
	defer eo.bufferMutex.RUnlock()

	snapshot := FrameSnapshot{
		Buffer:    make([]byte, len(eo.frameBuffer)),
		Width:     eo.width,
		Height:    eo.height,
		Format:    eo.format,
		Timestamp: time.Now(),
	}
	copy(snapshot.Buffer, eo.frameBuffer)
	return snapshot, nil
}

func (eo *EbitenOutput) IsStarted() bool {
	return eo.running
}

func (eo *EbitenOutput) Update() error {
	// Check if the window was closed using Ebiten's built-in detection
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}

	// Normal update path when window is open
	if !eo.running {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		eo.bufferMutex.Lock()
		eo.fullscreen = !eo.fullscreen
		ebiten.SetFullscreen(eo.fullscreen)
		if !eo.fullscreen {
			ebiten.SetWindowSize(eo.windowedW, eo.windowedH)
		}
		eo.bufferMutex.Unlock()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		eo.bufferMutex.Lock()
		eo.showStatusBar = !eo.showStatusBar
		eo.bufferMutex.Unlock()
	}
	eo.handleKeyboardInput()
	return nil
}

func (eo *EbitenOutput) SetKeyHandler(fn func(KeyEvent)) {
	eo.bufferMutex.Lock()
	eo.keyHandler = fn
	eo.bufferMutex.Unlock()
}

func (eo *EbitenOutput) emitKey(ev KeyEvent) {
	eo.bufferMutex.RLock()
	handler := eo.keyHandler
	eo.bufferMutex.RUnlock()
	if handler != nil {
		handler(ev)
	}
}

func (eo *EbitenOutput) modifiers() KeyMod {
	var mods KeyMod
	if ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= MOD_CTRL
	}
	if ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= MOD_SHIFT
	}
	if ebiten.IsKeyPressed(ebiten.KeyAltLeft) {
		mods |= MOD_LALT
	}
	if ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= MOD_RALT
	}
	if eo.capsLock {
		mods |= MOD_CAPS
	}
	if ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= MOD_GUI
	}
	return mods
}

func (eo *EbitenOutput) handleKeyboardInput() {
	eo.bufferMutex.RLock()
	hasHandler := eo.keyHandler != nil
	eo.bufferMutex.RUnlock()
	if !hasHandler {
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyCapsLock) {
		eo.capsLock = !eo.capsLock
	}
	mods := eo.modifiers()

	// Clipboard paste: Ctrl+Shift+V
	if mods&(MOD_CTRL|MOD_SHIFT) == MOD_CTRL|MOD_SHIFT && inpututil.IsKeyJustPressed(ebiten.KeyV) {
		eo.handleClipboardPaste()
		return
	}

	for _, m := range ebitenScancodes {
		switch {
		case inpututil.IsKeyJustPressed(m.key):
			eo.emitKey(KeyEvent{Scancode: m.sc, Mods: mods, Down: true})
		case inpututil.IsKeyJustReleased(m.key):
			eo.emitKey(KeyEvent{Scancode: m.sc, Mods: mods, Down: false})
		}
	}
}

func normalizePasteText(raw []byte) []byte {
	norm := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\r' {
			if i+1 < len(raw) && raw[i+1] == '\n' {
				i++
			}
			norm = append(norm, '\n')
			continue
		}
		norm = append(norm, raw[i])
	}
	return norm
}

func capPasteText(raw []byte, limit int) []byte {
	if len(raw) <= limit {
		return raw
	}
	return raw[:limit]
}

func (eo *EbitenOutput) handleClipboardPaste() {
	eo.clipboardOnce.Do(func() {
		eo.clipboardOK = clipboard.Init() == nil
	})
	if !eo.clipboardOK {
		return
	}
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		return
	}
	data = normalizePasteText(data)
	data = capPasteText(data, PASTE_LIMIT)
	TypeText(data, eo.emitKey)
}

func (eo *EbitenOutput) Draw(screen *ebiten.Image) {
	if eo.window == nil {
		eo.window = ebiten.NewImage(eo.width, eo.height)
	}

	eo.bufferMutex.RLock()
	eo.window.WritePixels(eo.frameBuffer)
	showStatusBar := eo.showStatusBar
	eo.bufferMutex.RUnlock()
	screen.DrawImage(eo.window, nil)
	if showStatusBar {
		eo.drawRuntimeStatusBar(screen)
	}

	eo.frameCount++
	select {
	case eo.vsyncChan <- struct{}{}:
	default:
	}
}

func (eo *EbitenOutput) Layout(_, _ int) (int, int) {
	return eo.width, eo.height
}

type statusToken struct {
	name    string
	enabled bool
}

func drawStatusLine(screen *ebiten.Image, x, baselineY int, label string, tokens []statusToken) {
	face := basicfont.Face7x13
	labelColor := color.RGBA{190, 190, 190, 255}
	offColor := color.RGBA{120, 120, 120, 255}
	onColor := color.RGBA{0, 220, 90, 255}

	text.Draw(screen, label, face, x, baselineY, labelColor)
	cursorX := x + text.BoundString(face, label).Dx() + 6

	for _, token := range tokens {
		c := offColor
		if token.enabled {
			c = onColor
		}
		text.Draw(screen, token.name, face, cursorX, baselineY, c)
		cursorX += text.BoundString(face, token.name).Dx() + 8
	}
}

func (eo *EbitenOutput) drawRuntimeStatusBar(screen *ebiten.Image) {
	s := runtimeStatus.snapshot()

	barHeight := 44
	if barHeight >= eo.height {
		return
	}
	y := eo.height - barHeight
	ebitenutil.DrawRect(screen, 0, float64(y), float64(eo.width), float64(barHeight), color.RGBA{0, 0, 0, 180})

	drawStatusLine(screen, 6, y+13, "VDP  ", []statusToken{
		{name: fmt.Sprintf("MODE %d %dx%d", s.mode, s.width, s.height), enabled: true},
		{name: "|", enabled: false},
		{name: "TERM", enabled: s.terminal},
		{name: "|", enabled: false},
		{name: "PAGED", enabled: s.pagedMode},
		{name: "|", enabled: false},
		{name: "WAIT", enabled: s.pagedMode && s.paging.Phase == PagingAwaitingContinue},
	})
	drawStatusLine(screen, 6, y+26, "AUDIO", []statusToken{
		{name: s.audio, enabled: s.audio != "" && s.audio != "none"},
		{name: "|", enabled: false},
		{name: "CH0", enabled: s.busy[0]},
		{name: "|", enabled: false},
		{name: "CH1", enabled: s.busy[1]},
		{name: "|", enabled: false},
		{name: "CH2", enabled: s.busy[2]},
	})
	drawStatusLine(screen, 6, y+39, "LINK ", []statusToken{
		{name: s.link, enabled: true},
		{name: "|", enabled: false},
		{name: "KB " + s.layout, enabled: true},
		{name: "|", enabled: false},
		{name: fmt.Sprintf("VSYNC %d", s.vsync), enabled: false},
	})

	legendColor := color.RGBA{160, 160, 160, 255}
	legend := "F11 Fullscreen  F12 Status Bar"
	legendW := text.BoundString(basicfont.Face7x13, legend).Dx()
	legendX := max(eo.width-legendW-6, 6)
	legendOpts := &ebiten.DrawImageOptions{}
	legendOpts.GeoM.Translate(float64(legendX), float64(y+13))
	legendOpts.ColorScale.ScaleWithColor(legendColor)
	text.DrawWithOptions(screen, legend, basicfont.Face7x13, legendOpts)
}
