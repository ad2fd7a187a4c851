// vdp_commands.go - Native VDU command decoding

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

const READ_CHUNK_SIZE = 4096

// Native VDU opcodes.
const (
	VDU_LEFT      = 0x08
	VDU_RIGHT     = 0x09
	VDU_DOWN      = 0x0A
	VDU_UP        = 0x0B
	VDU_CLS       = 0x0C
	VDU_RETURN    = 0x0D
	VDU_PAGED_ON  = 0x0E
	VDU_PAGED_OFF = 0x0F
	VDU_CLG       = 0x10
	VDU_COLOUR    = 0x11
	VDU_GCOL      = 0x12
	VDU_PALETTE   = 0x13
	VDU_MODE      = 0x16
	VDU_23        = 0x17
	VDU_PLOT      = 0x19
	VDU_ORIGIN    = 0x1D
	VDU_HOME      = 0x1E
	VDU_TAB       = 0x1F
	VDU_BACKSPACE = 0x7F
)

// VDU 23 sub-commands. Values from 32 up redefine a glyph.
const (
	VDU23_SYSTEM        = 0x00
	VDU23_CURSOR_ENABLE = 0x01
	VDU23_SCROLL        = 0x07
	VDU23_SPRITE        = 0x1B
	VDU23_GLYPH_FIRST   = 0x20
)

const (
	SCROLL_RIGHT = iota
	SCROLL_LEFT
	SCROLL_DOWN
	SCROLL_UP
)

// Sprite control sub-commands (VDU 23,27).
const (
	SPRITE_SELECT_BITMAP = iota
	SPRITE_LOAD_BITMAP
	SPRITE_SOLID_BITMAP
	SPRITE_DRAW_BITMAP
	SPRITE_SELECT
	SPRITE_CLEAR_FRAMES
	SPRITE_ADD_FRAME
	SPRITE_SET_COUNT
	SPRITE_NEXT_FRAME
	SPRITE_PREV_FRAME
	SPRITE_SET_FRAME
	SPRITE_SHOW
	SPRITE_HIDE
	SPRITE_MOVE_TO
	SPRITE_MOVE_BY
	SPRITE_REFRESH
	SPRITE_RESET
)

const LOGICAL_COLOUR_RGB = 0xFF

func (v *VDP) readByte() (byte, error) {
	return v.link.ReadByte()
}

// readBytes grows its buffer as bytes arrive, so a large size in a
// header costs nothing until the host actually sends the data.
func (v *VDP) readBytes(n int) ([]byte, error) {
	buf := make([]byte, 0, min(n, READ_CHUNK_SIZE))
	for len(buf) < n {
		b, err := v.link.ReadByte()
		if err != nil {
			return nil, err
		}
		buf = append(buf, b)
	}
	return buf, nil
}

// readWord reads a signed little-endian 16-bit parameter.
func (v *VDP) readWord() (int, error) {
	lo, err := v.link.ReadByte()
	if err != nil {
		return 0, err
	}
	hi, err := v.link.ReadByte()
	if err != nil {
		return 0, err
	}
	return int(int16(uint16(lo) | uint16(hi)<<8)), nil
}

func (v *VDP) readPoint() (image.Point, error) {
	x, err := v.readWord()
	if err != nil {
		return image.Point{}, err
	}
	y, err := v.readWord()
	if err != nil {
		return image.Point{}, err
	}
	return image.Pt(x, y), nil
}

func (v *VDP) printChar(ch byte) {
	v.text.RenderGlyph(v.fb, v.cursor.X, v.cursor.Y, ch)
	v.cursor.Right()
	v.checkScroll()
}

func (v *VDP) dispatchNative(b byte) error {
	if b >= 0x20 && b != VDU_BACKSPACE {
		v.printChar(b)
		return nil
	}

	switch b {
	case VDU_LEFT:
		v.cursor.Left()
	case VDU_RIGHT:
		v.cursor.Right()
		v.checkScroll()
	case VDU_DOWN:
		v.cursor.Down()
		v.checkScroll()
	case VDU_UP:
		v.cursor.Up()
	case VDU_CLS:
		v.cls()
	case VDU_RETURN:
		v.cursor.Home()
	case VDU_PAGED_ON:
		v.setPaged(true)
	case VDU_PAGED_OFF:
		v.setPaged(false)
	case VDU_CLG:
		v.fb.Clear(v.text.Attrs.Background)
	case VDU_COLOUR:
		c, err := v.readByte()
		if err != nil {
			return err
		}
		v.setColour(c)
	case VDU_GCOL:
		p, err := v.readBytes(2)
		if err != nil {
			return err
		}
		v.graphColour = v.paletteColour(p[1])
	case VDU_PALETTE:
		p, err := v.readBytes(5)
		if err != nil {
			return err
		}
		return v.defineLogicalColour(p[0], p[1], p[2], p[3], p[4])
	case VDU_MODE:
		m, err := v.readByte()
		if err != nil {
			return err
		}
		return v.selectMode(m)
	case VDU_23:
		return v.vdu23()
	case VDU_PLOT:
		mode, err := v.readByte()
		if err != nil {
			return err
		}
		p, err := v.readPoint()
		if err != nil {
			return err
		}
		if err := v.gfx.Plot(v.fb, int(mode), p.X, p.Y, v.graphColour); err != nil {
			return &VDPError{Command: "VDU 25", Details: "plot", Err: err}
		}
	case VDU_ORIGIN:
		p, err := v.readPoint()
		if err != nil {
			return err
		}
		if p.X >= 0 && p.Y >= 0 {
			v.gfx.Origin = v.gfx.Scale(p, v.mode.Width, v.mode.Height)
		}
	case VDU_HOME:
		v.cursor.TopLeft()
	case VDU_TAB:
		p, err := v.readBytes(2)
		if err != nil {
			return err
		}
		v.tab(int(p[0]), int(p[1]))
	case VDU_BACKSPACE:
		v.cursor.Left()
		v.text.RenderGlyph(v.fb, v.cursor.X, v.cursor.Y, ' ')
	default:
		return &VDPError{Command: fmt.Sprintf("VDU 0x%02X", b), Details: "unknown command"}
	}
	return nil
}

// setColour picks the text foreground below 128 and the background above.
func (v *VDP) setColour(c byte) {
	if c < 128 {
		v.text.Attrs.Foreground = v.paletteColour(c)
	} else {
		v.text.Attrs.Background = v.paletteColour(c)
	}
}

func (v *VDP) defineLogicalColour(l, p, r, g, b byte) error {
	idx := int(l) % len(v.palette)
	switch {
	case p == LOGICAL_COLOUR_RGB:
		v.palette[idx] = color.RGBA{R: r, G: g, B: b, A: 0xFF}
	case int(p) < len(colourLookup):
		v.palette[idx] = colourLookup[p]
	default:
		return &VDPError{Command: "VDU 19", Details: fmt.Sprintf("physical colour %d out of range", p)}
	}
	return nil
}

// selectMode answers with mode information whether or not the index is
// valid.
func (v *VDP) selectMode(m byte) error {
	var err error
	if _, ok := LookupVideoMode(int(m)); ok {
		v.changeMode(int(m))
	} else {
		err = &VDPError{Command: "VDU 22", Details: fmt.Sprintf("invalid mode %d", m)}
	}
	v.sendModeInformation()
	return err
}

func (v *VDP) tab(col, row int) {
	x, y := col*v.cursor.FontWidth, row*v.cursor.FontHeight
	if x < v.cursor.ScreenWidth && y < v.cursor.ScreenHeight {
		v.cursor.X, v.cursor.Y = x, y
	}
}

func (v *VDP) vdu23() error {
	sub, err := v.readByte()
	if err != nil {
		return err
	}
	switch {
	case sub == VDU23_SYSTEM:
		return v.systemControl()
	case sub == VDU23_CURSOR_ENABLE:
		b, err := v.readByte()
		if err != nil {
			return err
		}
		v.cursorEnabled = b != 0
	case sub == VDU23_SCROLL:
		p, err := v.readBytes(3)
		if err != nil {
			return err
		}
		return v.scroll(p[1], int(p[2]))
	case sub == VDU23_SPRITE:
		return v.spriteCommand()
	case sub >= VDU23_GLYPH_FIRST:
		rows, err := v.readBytes(8)
		if err != nil {
			return err
		}
		v.text.Font.Redefine(sub, rows)
	default:
		return &VDPError{Command: "VDU 23", Details: fmt.Sprintf("unknown sub-command 0x%02X", sub)}
	}
	return nil
}

// scroll moves the whole screen by delta pixels; the cursor stays put.
func (v *VDP) scroll(direction byte, delta int) error {
	var dx, dy int
	switch direction {
	case SCROLL_RIGHT:
		dx = delta
	case SCROLL_LEFT:
		dx = -delta
	case SCROLL_DOWN:
		dy = delta
	case SCROLL_UP:
		dy = -delta
	default:
		return &VDPError{Command: "VDU 23,7", Details: fmt.Sprintf("unknown direction %d", direction)}
	}
	v.fb = v.fb.Shifted(dx, dy, v.text.Attrs.Background)
	return nil
}

func (v *VDP) spriteCommand() error {
	cmd, err := v.readByte()
	if err != nil {
		return err
	}
	fail := func(err error) error {
		if err == nil {
			return nil
		}
		return &VDPError{Command: fmt.Sprintf("VDU 23,27,%d", cmd), Details: fmt.Sprintf("sprite %d", v.sprites.currentSprite), Err: err}
	}

	switch cmd {
	case SPRITE_SELECT_BITMAP:
		b, err := v.readByte()
		if err != nil {
			return err
		}
		v.sprites.SelectBitmap(b)
	case SPRITE_LOAD_BITMAP:
		size, err := v.readPoint()
		if err != nil {
			return err
		}
		if size.X <= 0 || size.Y <= 0 {
			return fail(fmt.Errorf("bitmap size %dx%d", size.X, size.Y))
		}
		data, err := v.readBytes(size.X * size.Y * 4)
		if err != nil {
			return err
		}
		return fail(v.sprites.DefineBitmap(size.X, size.Y, data))
	case SPRITE_SOLID_BITMAP:
		size, err := v.readPoint()
		if err != nil {
			return err
		}
		if size.X <= 0 || size.Y <= 0 {
			return fail(fmt.Errorf("bitmap size %dx%d", size.X, size.Y))
		}
		c, err := v.readBytes(4)
		if err != nil {
			return err
		}
		return fail(v.sprites.DefineSolidBitmap(size.X, size.Y, color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]}))
	case SPRITE_DRAW_BITMAP:
		p, err := v.readPoint()
		if err != nil {
			return err
		}
		return fail(v.sprites.DrawBitmap(v.fb, p.X, p.Y))
	case SPRITE_SELECT:
		b, err := v.readByte()
		if err != nil {
			return err
		}
		return fail(v.sprites.SelectSprite(b))
	case SPRITE_CLEAR_FRAMES:
		v.sprites.ClearFrames()
	case SPRITE_ADD_FRAME:
		b, err := v.readByte()
		if err != nil {
			return err
		}
		return fail(v.sprites.AddFrame(b))
	case SPRITE_SET_COUNT:
		n, err := v.readByte()
		if err != nil {
			return err
		}
		v.sprites.SetSpriteCount(int(n))
	case SPRITE_NEXT_FRAME:
		return fail(v.sprites.NextFrame())
	case SPRITE_PREV_FRAME:
		return fail(v.sprites.PreviousFrame())
	case SPRITE_SET_FRAME:
		n, err := v.readByte()
		if err != nil {
			return err
		}
		return fail(v.sprites.SetFrame(int(n)))
	case SPRITE_SHOW:
		return fail(v.sprites.Show())
	case SPRITE_HIDE:
		v.sprites.Hide()
	case SPRITE_MOVE_TO:
		p, err := v.readPoint()
		if err != nil {
			return err
		}
		v.sprites.MoveTo(p.X, p.Y)
	case SPRITE_MOVE_BY:
		p, err := v.readPoint()
		if err != nil {
			return err
		}
		v.sprites.MoveBy(p.X, p.Y)
	case SPRITE_REFRESH:
		v.sprites.Refresh()
	case SPRITE_RESET:
		v.cls()
		v.sprites.Reset()
	default:
		return &VDPError{Command: "VDU 23,27", Details: fmt.Sprintf("unsupported sprite command %d", cmd)}
	}
	return nil
}
