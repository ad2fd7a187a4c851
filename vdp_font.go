// vdp_font.go - Bitmap font tables for native and terminal text

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
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
)

const (
	FONT_FIRST_GLYPH = 32
	FONT_GLYPHS      = 256 - FONT_FIRST_GLYPH
	FONT_WIDTH       = 8

	NATIVE_FONT_HEIGHT   = 8
	TERMINAL_FONT_HEIGHT = 19

	// Coverage at or above this counts as a lit pixel.
	fontAlphaThreshold = 0x60
)

// FontTable is a 1bpp font: Height row bytes per glyph starting at glyph
// 32, bit 7 is the leftmost pixel.
type FontTable struct {
	Width  int
	Height int
	Data   []byte
}

func (f *FontTable) glyphOffset(ch byte) (int, bool) {
	if ch < FONT_FIRST_GLYPH {
		return 0, false
	}
	off := int(ch-FONT_FIRST_GLYPH) * f.Height
	if off+f.Height > len(f.Data) {
		return 0, false
	}
	return off, true
}

// Glyph returns the rows of ch, or nil when the table does not cover it.
func (f *FontTable) Glyph(ch byte) []byte {
	off, ok := f.glyphOffset(ch)
	if !ok {
		return nil
	}
	return f.Data[off : off+f.Height]
}

// Redefine replaces the top rows of ch; rows below the supplied data are
// cleared.
func (f *FontTable) Redefine(ch byte, rows []byte) bool {
	glyph := f.Glyph(ch)
	if glyph == nil {
		return false
	}
	n := copy(glyph, rows)
	clear(glyph[n:])
	return true
}

// Match finds the glyph whose rows equal the given bitmap.
func (f *FontTable) Match(rows []byte) (byte, bool) {
	if len(rows) != f.Height {
		return 0, false
	}
	for g := 0; g < FONT_GLYPHS; g++ {
		ch := byte(g + FONT_FIRST_GLYPH)
		glyph := f.Glyph(ch)
		if glyph == nil {
			break
		}
		if string(glyph) == string(rows) {
			return ch, true
		}
	}
	return 0, false
}

func (f *FontTable) Clone() *FontTable {
	return &FontTable{Width: f.Width, Height: f.Height, Data: append([]byte(nil), f.Data...)}
}

// rasterFont renders Latin-1 glyphs of face into a width x height cell with
// the pen at (x, baseline).
func rasterFont(face font.Face, width, height, x, baseline int) *FontTable {
	ft := &FontTable{Width: width, Height: height, Data: make([]byte, FONT_GLYPHS*height)}
	cell := image.NewAlpha(image.Rect(0, 0, width, height))
	d := &font.Drawer{Dst: cell, Src: image.Opaque, Face: face}

	for g := 0; g < FONT_GLYPHS; g++ {
		r := rune(g + FONT_FIRST_GLYPH)
		if r >= 0x7F && r < 0xA0 {
			continue
		}
		clear(cell.Pix)
		d.Dot = fixed.P(x, baseline)
		d.DrawString(string(r))

		rows := ft.Data[g*height : (g+1)*height]
		for y := 0; y < height; y++ {
			var bits byte
			for px := 0; px < width && px < 8; px++ {
				if cell.AlphaAt(px, y).A >= fontAlphaThreshold {
					bits |= 0x80 >> px
				}
			}
			rows[y] = bits
		}
	}
	return ft
}

// NewNativeFont rasterises Go Mono into the 8x8 system font.
func NewNativeFont() (*FontTable, error) {
	tt, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse native font: %w", err)
	}
	face := truetype.NewFace(tt, &truetype.Options{
		Size:    8,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()
	return rasterFont(face, FONT_WIDTH, NATIVE_FONT_HEIGHT, 1, 6), nil
}

// NewTerminalFont centres the 7x13 fixed face in an 8x19 cell.
func NewTerminalFont() *FontTable {
	face := basicfont.Face7x13
	return rasterFont(face, FONT_WIDTH, TERMINAL_FONT_HEIGHT, 0, 3+face.Ascent)
}

// LoadFontFile reads a raw 1bpp table of the given glyph height.
func LoadFontFile(path string, height int) (*FontTable, error) {
	if height <= 0 {
		return nil, fmt.Errorf("font height must be positive, got %d", height)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) < height || len(data)%height != 0 {
		return nil, fmt.Errorf("font file %s: %d bytes is not a whole number of %d-row glyphs", path, len(data), height)
	}
	if limit := FONT_GLYPHS * height; len(data) > limit {
		data = data[:limit]
	}
	return &FontTable{Width: FONT_WIDTH, Height: height, Data: data}, nil
}
