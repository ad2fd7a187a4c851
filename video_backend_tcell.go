package main

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
)

func init() {
	compiledFeatures = append(compiledFeatures, "video:tcell")
}

const TCELL_REDRAW_INTERVAL = 33 * time.Millisecond

// TcellOutput renders frames into a text terminal with half-block cells,
// two pixels per cell, and feeds typed characters back as key events.
type TcellOutput struct {
	mu         sync.Mutex
	screen     tcell.Screen
	config     DisplayConfig
	frame      []byte
	dirty      bool
	started    bool
	frameCount atomic.Uint64
	keyHandler func(KeyEvent)
	vsyncChan  chan struct{}
	done       chan struct{}
	closeOnce  sync.Once
}

func NewTcellOutput() (VideoOutput, error) {
	mode := VideoModes[DEFAULT_MODE]
	return &TcellOutput{
		config: DisplayConfig{
			Width:       mode.Width,
			Height:      mode.Height,
			Scale:       1,
			RefreshRate: mode.RefreshRate,
			PixelFormat: PixelFormatRGBA,
		},
		vsyncChan: make(chan struct{}, 1),
		done:      make(chan struct{}),
	}, nil
}

func (to *TcellOutput) Start() error {
	to.mu.Lock()
	defer to.mu.Unlock()
	if to.started {
		return nil
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return &VideoError{Operation: "start", Details: "tcell screen", Err: err}
	}
	if err := screen.Init(); err != nil {
		return &VideoError{Operation: "start", Details: "tcell init", Err: err}
	}
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset))
	screen.HideCursor()
	screen.Clear()
	to.screen = screen
	to.started = true

	go to.pollEvents(screen)
	go to.renderLoop()
	return nil
}

func (to *TcellOutput) Stop() error {
	to.mu.Lock()
	screen := to.screen
	to.screen = nil
	to.started = false
	to.mu.Unlock()
	if screen != nil {
		screen.Fini()
	}
	to.closeOnce.Do(func() { close(to.done) })
	return nil
}

func (to *TcellOutput) Close() error {
	return to.Stop()
}

func (to *TcellOutput) Done() <-chan struct{} {
	return to.done
}

func (to *TcellOutput) IsStarted() bool {
	to.mu.Lock()
	defer to.mu.Unlock()
	return to.started
}

func (to *TcellOutput) SetDisplayConfig(config DisplayConfig) error {
	to.mu.Lock()
	to.config = config
	to.frame = nil
	to.mu.Unlock()
	return nil
}

func (to *TcellOutput) GetDisplayConfig() DisplayConfig {
	to.mu.Lock()
	defer to.mu.Unlock()
	return to.config
}

func (to *TcellOutput) UpdateFrame(buffer []byte) error {
	to.mu.Lock()
	to.frame = append(to.frame[:0], buffer...)
	to.dirty = true
	to.mu.Unlock()
	return nil
}

func (to *TcellOutput) WaitForVSync() error {
	select {
	case <-to.vsyncChan:
	case <-to.done:
	}
	return nil
}

func (to *TcellOutput) GetFrameCount() uint64 {
	return to.frameCount.Load()
}

func (to *TcellOutput) GetRefreshRate() int {
	return int(time.Second / TCELL_REDRAW_INTERVAL)
}

func (to *TcellOutput) SetKeyHandler(fn func(KeyEvent)) {
	to.mu.Lock()
	to.keyHandler = fn
	to.mu.Unlock()
}

func (to *TcellOutput) renderLoop() {
	ticker := time.NewTicker(TCELL_REDRAW_INTERVAL)
	defer ticker.Stop()
	for {
		select {
		case <-to.done:
			return
		case <-ticker.C:
			to.draw()
		}
	}
}

// draw samples the frame onto the terminal grid. Each cell shows the upper
// pixel as foreground and the lower as background of a half block.
func (to *TcellOutput) draw() {
	to.mu.Lock()
	defer to.mu.Unlock()
	if to.screen == nil || !to.dirty || len(to.frame) == 0 {
		return
	}
	to.dirty = false

	fw, fh := to.config.Width, to.config.Height
	if len(to.frame) < fw*fh*4 {
		return
	}
	cols, rows := to.screen.Size()
	if cols <= 0 || rows <= 0 {
		return
	}
	pixel := func(x, y int) tcell.Color {
		i := (y*fw + x) * 4
		return tcell.NewRGBColor(int32(to.frame[i]), int32(to.frame[i+1]), int32(to.frame[i+2]))
	}
	for cy := range rows {
		top := (cy * 2) * fh / (rows * 2)
		bot := (cy*2 + 1) * fh / (rows * 2)
		for cx := range cols {
			x := cx * fw / cols
			style := tcell.StyleDefault.Foreground(pixel(x, top)).Background(pixel(x, bot))
			to.screen.SetContent(cx, cy, '▀', nil, style)
		}
	}
	to.screen.Show()
	to.frameCount.Add(1)
	select {
	case to.vsyncChan <- struct{}{}:
	default:
	}
}

func (to *TcellOutput) pollEvents(screen tcell.Screen) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyF12 {
				to.Stop()
				return
			}
			if kev, ok := tcellKeyEvent(ev); ok {
				to.emit(kev)
			}
		case *tcell.EventResize:
			screen.Sync()
			to.mu.Lock()
			to.dirty = true
			to.mu.Unlock()
		}
	}
}

// emit sends a press and a release; terminals do not report releases.
func (to *TcellOutput) emit(ev KeyEvent) {
	to.mu.Lock()
	handler := to.keyHandler
	to.mu.Unlock()
	if handler == nil {
		return
	}
	ev.Down = true
	handler(ev)
	ev.Down = false
	handler(ev)
}

func tcellKeyEvent(ev *tcell.EventKey) (KeyEvent, bool) {
	var mods KeyMod
	m := ev.Modifiers()
	if m&tcell.ModShift != 0 {
		mods |= MOD_SHIFT
	}
	if m&tcell.ModCtrl != 0 {
		mods |= MOD_CTRL
	}
	if m&tcell.ModAlt != 0 {
		mods |= MOD_LALT
	}
	if m&tcell.ModMeta != 0 {
		mods |= MOD_GUI
	}

	k := ev.Key()
	switch {
	case k == tcell.KeyRune:
		r := ev.Rune()
		if r <= 0 || r > 0xFF {
			return KeyEvent{}, false
		}
		if r >= 'A' && r <= 'Z' {
			mods |= MOD_SHIFT
		}
		return KeyEvent{Char: byte(r), Mods: mods}, true
	case k == tcell.KeyEnter:
		return KeyEvent{Char: ASCII_CR, Mods: mods}, true
	case k == tcell.KeyTab:
		return KeyEvent{Char: '\t', Mods: mods}, true
	case k == tcell.KeyBackspace || k == tcell.KeyBackspace2:
		return KeyEvent{Char: VDU_BACKSPACE, Mods: mods}, true
	case k == tcell.KeyEscape:
		return KeyEvent{Char: ASCII_ESC, Mods: mods}, true
	case k == tcell.KeyLeft:
		return KeyEvent{Char: 0x08, Mods: mods}, true
	case k == tcell.KeyRight:
		return KeyEvent{Char: 0x15, Mods: mods}, true
	case k == tcell.KeyUp:
		return KeyEvent{Char: 0x0B, Mods: mods}, true
	case k == tcell.KeyDown:
		return KeyEvent{Char: 0x0A, Mods: mods}, true
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return KeyEvent{Char: byte('a' + k - tcell.KeyCtrlA), Mods: mods | MOD_CTRL}, true
	}
	return KeyEvent{}, false
}
