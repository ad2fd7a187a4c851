// keyboard.go - Key event resolution between input backends and the VDP

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

const KEY_QUEUE_DEPTH = 64

// KeyEvent is produced by an input backend. Scancode-based sources set
// Scancode; text-only sources leave it SC_NONE and set Char.
type KeyEvent struct {
	Scancode Scancode
	Char     byte
	Mods     KeyMod
	Down     bool
}

// Keyboard turns key events into (virtual key, ascii) pairs through the
// configured layout.
type Keyboard struct {
	layout KeyboardLayout
}

func NewKeyboard(layout KeyboardLayout) *Keyboard {
	if layout == nil {
		layout = USLayout{}
	}
	return &Keyboard{layout: layout}
}

func (k *Keyboard) Layout() KeyboardLayout {
	return k.layout
}

func (k *Keyboard) SetLayout(layout KeyboardLayout) {
	if layout != nil {
		k.layout = layout
	}
}

func (k *Keyboard) Resolve(ev KeyEvent) (VirtualKey, byte) {
	if ev.Scancode == SC_NONE {
		return VirtualKeyForASCII(ev.Char), ev.Char
	}
	vk := k.layout.VirtualKey(ev.Scancode, ev.Mods)
	return vk, VirtualKeyToASCII(vk)
}

// TypeText expands text into press and release events for sources that
// only deliver characters, such as clipboard paste.
func TypeText(text []byte, emit func(KeyEvent)) {
	for _, b := range text {
		if b == '\n' {
			b = '\r'
		}
		var mods KeyMod
		if b >= 'A' && b <= 'Z' {
			mods = MOD_SHIFT
		}
		emit(KeyEvent{Char: b, Mods: mods, Down: true})
		emit(KeyEvent{Char: b, Mods: mods, Down: false})
	}
}
