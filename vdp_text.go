// vdp_text.go - Glyph rendering and screen character readback

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
	"image"
	"image/color"
)

// TextAttributes are shared by native text output and terminal SGR codes.
type TextAttributes struct {
	Foreground color.RGBA
	Background color.RGBA
	Reverse    bool
	Underline  bool
}

func (a TextAttributes) colours() (fg, bg color.RGBA) {
	if a.Reverse {
		return a.Background, a.Foreground
	}
	return a.Foreground, a.Background
}

type TextRenderer struct {
	Font  *FontTable
	Attrs TextAttributes
}

// RenderGlyph erases the cell at (x, y) and draws ch into it. Characters
// outside the font leave a blank cell.
func (t *TextRenderer) RenderGlyph(fb *FrameBuffer, x, y int, ch byte) {
	fg, bg := t.Attrs.colours()
	fb.Fill(image.Rect(x, y, x+t.Font.Width, y+t.Font.Height), bg)

	glyph := t.Font.Glyph(ch)
	if glyph == nil {
		return
	}
	last := len(glyph) - 1
	for gy, bits := range glyph {
		if t.Attrs.Underline && gy == last {
			bits = 0xFF
		}
		for gx := 0; gx < t.Font.Width && gx < 8; gx++ {
			if bits&(0x80>>gx) != 0 {
				fb.Set(x+gx, y+gy, fg)
			}
		}
	}
}

// CharAt reads back the character in the cell at (col, row) by matching
// foreground pixels against the font. It returns 0 when nothing matches.
func (t *TextRenderer) CharAt(fb *FrameBuffer, col, row int) byte {
	x, y := col*t.Font.Width, row*t.Font.Height
	cell := image.Rect(x, y, x+t.Font.Width, y+t.Font.Height)
	if col < 0 || row < 0 || !cell.In(fb.Bounds()) {
		return 0
	}
	rows := make([]byte, t.Font.Height)
	for gy := range rows {
		for gx := 0; gx < t.Font.Width && gx < 8; gx++ {
			if fb.At(x+gx, y+gy) == t.Attrs.Foreground {
				rows[gy] |= 0x80 >> gx
			}
		}
	}
	ch, ok := t.Font.Match(rows)
	if !ok {
		return 0
	}
	return ch
}
