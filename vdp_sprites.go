// vdp_sprites.go - Bitmap store and hardware sprite list

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
	"errors"
	"fmt"
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

const (
	MAX_BITMAPS = 256
	MAX_SPRITES = 255
)

var (
	errUndefinedBitmap = errors.New("undefined bitmap")
	errNoFrames        = errors.New("sprite has no frames")
)

// Sprite is one slot of the sprite table. Frames are bitmap handles.
type Sprite struct {
	Frames       []uint8
	CurrentFrame int
	X, Y         int
	Visible      bool
}

// SpriteSystem owns the bitmap arena and sprite slots. Slots are addressed
// by handle and never grow.
type SpriteSystem struct {
	bitmaps       [MAX_BITMAPS]*image.NRGBA
	sprites       [MAX_SPRITES]Sprite
	currentBitmap uint8
	currentSprite uint8
	numSprites    int
	numShown      int
}

// quantizeChannel maps 0..255 onto the four levels 0, 85, 170, 255.
func quantizeChannel(v uint8) uint8 {
	return v / 64 * 85
}

func quantizeColour(c color.NRGBA) color.NRGBA {
	return color.NRGBA{R: quantizeChannel(c.R), G: quantizeChannel(c.G), B: quantizeChannel(c.B), A: c.A}
}

func (s *SpriteSystem) SelectBitmap(n uint8) {
	s.currentBitmap = n
}

func (s *SpriteSystem) CurrentBitmap() *image.NRGBA {
	return s.bitmaps[s.currentBitmap]
}

func (s *SpriteSystem) Bitmap(n uint8) *image.NRGBA {
	return s.bitmaps[n]
}

// DefineBitmap stores an RGBA pixel stream into the current slot.
func (s *SpriteSystem) DefineBitmap(w, h int, rgba []byte) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("bitmap size %dx%d", w, h)
	}
	if len(rgba) != w*h*4 {
		return fmt.Errorf("bitmap %dx%d needs %d bytes, got %d", w, h, w*h*4, len(rgba))
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(rgba); i += 4 {
		c := quantizeColour(color.NRGBA{R: rgba[i], G: rgba[i+1], B: rgba[i+2], A: rgba[i+3]})
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	s.bitmaps[s.currentBitmap] = img
	return nil
}

// DefineSolidBitmap fills the current slot with one colour.
func (s *SpriteSystem) DefineSolidBitmap(w, h int, c color.NRGBA) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("bitmap size %dx%d", w, h)
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(img, img.Rect, image.NewUniform(quantizeColour(c)), image.Point{}, xdraw.Src)
	s.bitmaps[s.currentBitmap] = img
	return nil
}

// DrawBitmap blends the current bitmap onto the framebuffer at (x, y).
func (s *SpriteSystem) DrawBitmap(fb *FrameBuffer, x, y int) error {
	bm := s.CurrentBitmap()
	if bm == nil {
		return errUndefinedBitmap
	}
	r := bm.Rect.Sub(bm.Rect.Min).Add(image.Pt(x, y))
	xdraw.Draw(fb.Image(), r, bm, bm.Rect.Min, xdraw.Over)
	return nil
}

// SelectSprite rejects handles beyond the table.
func (s *SpriteSystem) SelectSprite(n uint8) error {
	if int(n) >= MAX_SPRITES {
		return fmt.Errorf("sprite %d out of range", n)
	}
	s.currentSprite = n
	return nil
}

func (s *SpriteSystem) current() *Sprite {
	return &s.sprites[s.currentSprite]
}

func (s *SpriteSystem) Sprite(n int) *Sprite {
	if n < 0 || n >= MAX_SPRITES {
		return nil
	}
	return &s.sprites[n]
}

func (s *SpriteSystem) ClearFrames() {
	sp := s.current()
	sp.Frames = sp.Frames[:0]
	sp.CurrentFrame = 0
	sp.Visible = false
}

func (s *SpriteSystem) AddFrame(bitmap uint8) error {
	if s.bitmaps[bitmap] == nil {
		return errUndefinedBitmap
	}
	sp := s.current()
	sp.Frames = append(sp.Frames, bitmap)
	return nil
}

func (s *SpriteSystem) SetSpriteCount(n int) {
	s.numSprites = min(n, MAX_SPRITES)
}

func (s *SpriteSystem) NextFrame() error {
	sp := s.current()
	if len(sp.Frames) == 0 {
		return errNoFrames
	}
	sp.CurrentFrame = (sp.CurrentFrame + 1) % len(sp.Frames)
	return nil
}

func (s *SpriteSystem) PreviousFrame() error {
	sp := s.current()
	if len(sp.Frames) == 0 {
		return errNoFrames
	}
	sp.CurrentFrame = (sp.CurrentFrame + len(sp.Frames) - 1) % len(sp.Frames)
	return nil
}

func (s *SpriteSystem) SetFrame(n int) error {
	sp := s.current()
	if n >= len(sp.Frames) {
		return fmt.Errorf("frame %d of %d", n, len(sp.Frames))
	}
	sp.CurrentFrame = n
	return nil
}

func (s *SpriteSystem) Show() error {
	sp := s.current()
	if len(sp.Frames) == 0 {
		return errNoFrames
	}
	sp.Visible = true
	return nil
}

func (s *SpriteSystem) Hide() {
	s.current().Visible = false
}

func (s *SpriteSystem) MoveTo(x, y int) {
	sp := s.current()
	sp.X, sp.Y = x, y
}

func (s *SpriteSystem) MoveBy(dx, dy int) {
	sp := s.current()
	sp.X += dx
	sp.Y += dy
}

// Refresh publishes the prepared sprite count to the compositor.
func (s *SpriteSystem) Refresh() {
	s.numShown = s.numSprites
}

// ClearCounts hides every sprite from compositing without touching slots.
func (s *SpriteSystem) ClearCounts() {
	s.numSprites = 0
	s.numShown = 0
}

// Reset drops all bitmaps and sprites.
func (s *SpriteSystem) Reset() {
	*s = SpriteSystem{}
}

// Composite draws the first numShown visible sprites onto dst, scaled by
// the output factor.
func (s *SpriteSystem) Composite(dst *image.RGBA, scale int) {
	for i := 0; i < s.numShown; i++ {
		sp := &s.sprites[i]
		if !sp.Visible || sp.CurrentFrame >= len(sp.Frames) {
			continue
		}
		bm := s.bitmaps[sp.Frames[sp.CurrentFrame]]
		if bm == nil {
			continue
		}
		w, h := bm.Rect.Dx(), bm.Rect.Dy()
		r := image.Rect(sp.X*scale, sp.Y*scale, (sp.X+w)*scale, (sp.Y+h)*scale)
		xdraw.NearestNeighbor.Scale(dst, r, bm, bm.Rect, xdraw.Over, nil)
	}
}
