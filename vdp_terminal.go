// vdp_terminal.go - ANSI terminal sub-mode for Quark VDP

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
)

const (
	ASCII_BS  = 0x08
	ASCII_LF  = 0x0A
	ASCII_CR  = 0x0D
	ASCII_ESC = 0x1B

	CSI_PARAM_MAX = 0xFFFF
)

// SGR attribute codes.
const (
	SGR_RESET     = 0
	SGR_BOLD      = 1
	SGR_UNDERLINE = 4
	SGR_REVERSE   = 7
	SGR_FG_FIRST  = 30
	SGR_FG_LAST   = 37
	SGR_BG_FIRST  = 40
	SGR_BG_LAST   = 47
)

// parseCSI reads the rest of an escape sequence after ESC. It returns the
// final byte and at least one parameter; omitted parameters are 0.
func parseCSI(read func() (byte, error)) (byte, []int, error) {
	b, err := read()
	if err != nil {
		return 0, nil, err
	}
	if b != '[' {
		return 0, nil, fmt.Errorf("unsupported escape 0x%02X", b)
	}

	params := make([]int, 0, 2)
	p := 0
	for {
		b, err := read()
		if err != nil {
			return 0, nil, err
		}
		switch {
		case b >= '0' && b <= '9':
			p = min(p*10+int(b-'0'), CSI_PARAM_MAX)
		case b == ';':
			params = append(params, p)
			p = 0
		default:
			return b, append(params, p), nil
		}
	}
}

// csiCount treats a zero or omitted count as 1.
func csiCount(params []int) int {
	if params[0] == 0 {
		return 1
	}
	return params[0]
}

func (v *VDP) dispatchTerminal(b byte) error {
	switch {
	case b >= 0x20 && b != VDU_BACKSPACE:
		v.printChar(b)
	case b == ASCII_BS:
		v.cursor.Left()
	case b == ASCII_LF:
		v.cursor.Down()
		v.checkScroll()
	case b == ASCII_CR:
		v.cursor.Home()
	case b == ASCII_ESC:
		return v.escape()
	default:
		return &VDPError{Command: "terminal", Details: fmt.Sprintf("unsupported control 0x%02X", b)}
	}
	return nil
}

func (v *VDP) escape() error {
	cmd, params, err := parseCSI(v.readByte)
	if err != nil {
		return &VDPError{Command: "terminal ESC", Details: "bad sequence", Err: err}
	}
	v.tracef("CSI %v %c", params, cmd)

	switch cmd {
	case 'A':
		for range csiCount(params) {
			v.cursor.Up()
		}
	case 'B':
		for range csiCount(params) {
			v.cursor.Down()
			v.checkScroll()
		}
	case 'C':
		for range csiCount(params) {
			v.cursor.Right()
			v.checkScroll()
		}
	case 'D':
		for range csiCount(params) {
			v.cursor.Left()
		}
	case 'H', 'f':
		row, col := max(params[0], 1), 1
		if len(params) >= 2 {
			col = max(params[1], 1)
		}
		v.tab(col-1, row-1)
	case 'J':
		v.eraseDisplay(params[0])
	case 'K':
		v.clearLine(params[0])
	case 'L':
		v.fb = v.fb.WithRowsInserted(v.cursor.Y, csiCount(params)*v.cursor.FontHeight, v.text.Attrs.Background)
	case 'M':
		v.fb = v.fb.WithRowsDeleted(v.cursor.Y, csiCount(params)*v.cursor.FontHeight, v.text.Attrs.Background)
	case 'm':
		return v.selectGraphicRendition(params)
	default:
		return &VDPError{Command: "terminal CSI", Details: fmt.Sprintf("unsupported command %q", cmd)}
	}
	return nil
}

func (v *VDP) eraseDisplay(n int) {
	c := v.cursor
	switch n {
	case 0:
		v.clearLine(0)
		below := c.Y + c.FontHeight
		v.clearLines(below, c.ScreenHeight-below)
	case 1:
		v.clearLines(0, c.Y)
		v.clearLine(1)
	case 2:
		v.fb.Clear(v.text.Attrs.Background)
	}
}

// clearLine erases part of the cursor row: 0 from the cursor to the end,
// 1 from the start through the cursor cell, anything else the whole row.
func (v *VDP) clearLine(n int) {
	c := v.cursor
	x0, x1 := 0, c.ScreenWidth
	switch n {
	case 0:
		x0 = c.X
	case 1:
		x1 = c.X + c.FontWidth
	}
	if x1 > x0 {
		v.fb.Fill(image.Rect(x0, c.Y, x1, c.Y+c.FontHeight), v.text.Attrs.Background)
	}
}

func (v *VDP) clearLines(y, h int) {
	if h > 0 {
		v.fb.Fill(image.Rect(0, y, v.cursor.ScreenWidth, y+h), v.text.Attrs.Background)
	}
}

func (v *VDP) selectGraphicRendition(params []int) error {
	var unsupported []int
	attrs := &v.text.Attrs
	for _, a := range params {
		switch {
		case a == SGR_RESET:
			attrs.Foreground = terminalForeground
			attrs.Background = colourLookup[0]
			attrs.Reverse = false
			attrs.Underline = false
		case a == SGR_BOLD:
			attrs.Foreground = colourLookup[0x3F]
		case a == SGR_UNDERLINE:
			attrs.Underline = true
		case a == SGR_REVERSE:
			attrs.Reverse = true
		case a >= SGR_FG_FIRST && a <= SGR_FG_LAST:
			attrs.Foreground = v.palette[(a-SGR_FG_FIRST)%len(v.palette)]
		case a >= SGR_BG_FIRST && a <= SGR_BG_LAST:
			attrs.Background = v.palette[(a-SGR_BG_FIRST)%len(v.palette)]
		default:
			unsupported = append(unsupported, a)
		}
	}
	if len(unsupported) > 0 {
		return &VDPError{Command: "terminal SGR", Details: fmt.Sprintf("unsupported attributes %v", unsupported)}
	}
	return nil
}
