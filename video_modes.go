// video_modes.go - Video mode table and colour palettes for Quark VDP

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

import "image/color"

// VideoMode describes one entry of the fixed mode table.
type VideoMode struct {
	Colors      int // Number of palette entries
	Width       int // Screen width in pixels
	Height      int // Screen height in pixels
	RefreshRate int // Presentation rate in Hz
	Palette     []color.RGBA
}

const (
	LOGICAL_WIDTH  = 1280
	LOGICAL_HEIGHT = 1024

	DEFAULT_MODE  = 1
	TERMINAL_MODE = 3
)

// colourLookup holds the 64 rrggbb colours. Index = r*16 + g*4 + b with
// each channel in 0..3.
var colourLookup = buildColourLookup()

func buildColourLookup() [64]color.RGBA {
	levels := [4]uint8{0x00, 0x55, 0xAA, 0xFF}
	var table [64]color.RGBA
	for i := range table {
		table[i] = color.RGBA{
			R: levels[(i>>4)&3],
			G: levels[(i>>2)&3],
			B: levels[i&3],
			A: 0xFF,
		}
	}
	return table
}

var (
	palette2Index  = []uint8{0x00, 0x3F}
	palette16Index = []uint8{
		0x00, 0x20, 0x08, 0x28, 0x02, 0x22, 0x0A, 0x2A,
		0x15, 0x30, 0x0C, 0x3C, 0x03, 0x33, 0x0F, 0x3F,
	}
	palette64Index = []uint8{
		0x00, 0x20, 0x08, 0x28, 0x02, 0x22, 0x0A, 0x2A,
		0x15, 0x30, 0x0C, 0x3C, 0x03, 0x33, 0x0F, 0x3F,
		0x01, 0x04, 0x05, 0x06, 0x07, 0x09, 0x0B, 0x0D,
		0x0E, 0x10, 0x11, 0x12, 0x13, 0x14, 0x16, 0x17,
		0x18, 0x19, 0x1A, 0x1B, 0x1C, 0x1D, 0x1E, 0x1F,
		0x21, 0x23, 0x24, 0x25, 0x26, 0x27, 0x29, 0x2B,
		0x2C, 0x2D, 0x2E, 0x2F, 0x31, 0x32, 0x34, 0x35,
		0x36, 0x37, 0x38, 0x39, 0x3A, 0x3B, 0x3D, 0x3E,
	}
)

func paletteFromIndices(indices []uint8) []color.RGBA {
	pal := make([]color.RGBA, len(indices))
	for i, idx := range indices {
		pal[i] = colourLookup[idx]
	}
	return pal
}

// VideoModes is read-only; callers copy the palette before editing it.
var VideoModes = [...]VideoMode{
	{Colors: 2, Width: 1024, Height: 768, RefreshRate: 60, Palette: paletteFromIndices(palette2Index)},
	{Colors: 16, Width: 512, Height: 384, RefreshRate: 60, Palette: paletteFromIndices(palette16Index)},
	{Colors: 64, Width: 320, Height: 200, RefreshRate: 75, Palette: paletteFromIndices(palette64Index)},
	{Colors: 16, Width: 640, Height: 480, RefreshRate: 60, Palette: paletteFromIndices(palette16Index)},
}

// LookupVideoMode returns the mode for index, or false when out of range.
func LookupVideoMode(index int) (*VideoMode, bool) {
	if index < 0 || index >= len(VideoModes) {
		return nil, false
	}
	return &VideoModes[index], true
}

func paletteIndexOf(pal []color.RGBA, c color.RGBA) (int, bool) {
	for i, p := range pal {
		if p.R == c.R && p.G == c.G && p.B == c.B {
			return i, true
		}
	}
	return 0, false
}
