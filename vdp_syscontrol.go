// vdp_syscontrol.go - VDU 23,0 system control and host reports

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
	"image"
	"image/color"
)

// System control sub-commands (VDU 23,0).
const (
	SYS_GENERAL_POLL   = 0x80
	SYS_KEYBOARD_MAP   = 0x81
	SYS_CURSOR_POS     = 0x82
	SYS_SCREEN_CHAR    = 0x83
	SYS_SCREEN_PIXEL   = 0x84
	SYS_AUDIO          = 0x85
	SYS_MODE_INFO      = 0x86
	SYS_RTC            = 0x87
	SYS_KEY_STATE      = 0x88
	SYS_LOGICAL_COORDS = 0xC0
	SYS_TERMINAL       = 0xFF
)

const (
	RTC_EPOCH_YEAR = 1980
	RTC_SET_BYTES  = 6

	PIXEL_NO_INDEX = 0xFF
)

func (v *VDP) systemControl() error {
	sub, err := v.readByte()
	if err != nil {
		return err
	}
	switch sub {
	case SYS_GENERAL_POLL:
		b, err := v.readByte()
		if err != nil {
			return err
		}
		v.sendPacket(PACKET_GENERAL_POLL, b)
	case SYS_KEYBOARD_MAP:
		id, err := v.readByte()
		if err != nil {
			return err
		}
		layout, ok := LayoutByID(id)
		if !ok {
			return &VDPError{Command: "VDU 23,0,&81", Details: fmt.Sprintf("unknown keyboard layout %d", id)}
		}
		v.keyboard.SetLayout(layout)
	case SYS_CURSOR_POS:
		v.sendPacket(PACKET_CURSOR, byte(v.cursor.Column()), byte(v.cursor.Row()))
	case SYS_SCREEN_CHAR:
		p, err := v.readPoint()
		if err != nil {
			return err
		}
		v.sendPacket(PACKET_SCREEN_CHAR, v.text.CharAt(v.fb, p.X, p.Y))
	case SYS_SCREEN_PIXEL:
		p, err := v.readPoint()
		if err != nil {
			return err
		}
		v.sendScreenPixel(p)
	case SYS_AUDIO:
		return v.audioCommand()
	case SYS_MODE_INFO:
		v.sendModeInformation()
	case SYS_RTC:
		m, err := v.readByte()
		if err != nil {
			return err
		}
		if m != 0 {
			// Setting the clock is accepted and ignored.
			_, err := v.readBytes(RTC_SET_BYTES)
			return err
		}
		v.sendTime()
	case SYS_KEY_STATE:
		if _, err := v.readBytes(3); err != nil {
			return err
		}
		v.sendPacket(PACKET_KEY_STATE, 0, 0, 0, 0, 0)
	case SYS_LOGICAL_COORDS:
		b, err := v.readByte()
		if err != nil {
			return err
		}
		v.gfx.Logical = b != 0
	case SYS_TERMINAL:
		v.enterTerminal()
	default:
		return &VDPError{Command: "VDU 23,0", Details: fmt.Sprintf("unknown system command 0x%02X", sub)}
	}
	return nil
}

// sendScreenPixel reports the colour under a graphics coordinate. Points
// off screen read as black.
func (v *VDP) sendScreenPixel(p image.Point) {
	p = v.gfx.Project(p, v.mode.Width, v.mode.Height)
	var r, g, b byte
	if p.In(v.fb.Bounds()) {
		c := v.fb.At(p.X, p.Y)
		r, g, b = c.R, c.G, c.B
	}
	idx := byte(PIXEL_NO_INDEX)
	if i, ok := paletteIndexOf(v.palette, color.RGBA{R: r, G: g, B: b, A: 0xFF}); ok {
		idx = byte(i)
	}
	v.sendPacket(PACKET_SCREEN_PIXEL, r, g, b, idx)
}

func (v *VDP) audioCommand() error {
	head, err := v.readBytes(3)
	if err != nil {
		return err
	}
	freq, err := v.readWord()
	if err != nil {
		return err
	}
	dur, err := v.readWord()
	if err != nil {
		return err
	}
	req := ToneRequest{Channel: head[0], Waveform: head[1], Volume: head[2], Frequency: freq, Duration: dur}
	ok := v.tones != nil && v.tones.StartTone(req)
	v.tracef("tone ch=%d wave=%d vol=%d freq=%d dur=%d ok=%v", req.Channel, req.Waveform, req.Volume, freq, dur, ok)

	var res byte
	if ok {
		res = 1
	}
	v.sendPacket(PACKET_AUDIO, req.Channel, res)
	return nil
}

func (v *VDP) sendModeInformation() {
	c := v.cursor
	v.sendPacket(PACKET_MODE,
		byte(c.ScreenWidth), byte(c.ScreenWidth>>8),
		byte(c.ScreenHeight), byte(c.ScreenHeight>>8),
		byte(c.Columns()), byte(c.Rows()),
		byte(v.mode.Colors),
	)
}

func (v *VDP) sendTime() {
	t := v.now()
	v.sendPacket(PACKET_RTC,
		byte(t.Year()-RTC_EPOCH_YEAR), byte(t.Month()-1), byte(t.Day()),
		0, byte(t.Weekday()),
		byte(t.Hour()), byte(t.Minute()), byte(t.Second()),
	)
}

// enterTerminal switches to the 8x19 font in mode 3 and hands every later
// byte to the terminal emulator. The host waits for a single zero byte.
func (v *VDP) enterTerminal() {
	v.text.Font = v.terminalFont
	v.changeMode(TERMINAL_MODE)
	v.text.Attrs.Foreground = terminalForeground
	if _, err := v.link.Write([]byte{0}); err != nil {
		v.tracef("terminal handshake dropped: %v", err)
	}
	v.terminal = true
}
