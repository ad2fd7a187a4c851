// vdp_framebuffer.go - Pixel surface with off-line rebuild for scroll and mode changes

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
	"image/draw"
)

// FrameBuffer is the drawing target. Operations that move existing pixels
// build a fresh surface and return it; the caller swaps it in.
type FrameBuffer struct {
	img *image.RGBA
}

// regionMove copies src of the old surface to dst on the new one.
type regionMove struct {
	src image.Rectangle
	dst image.Point
}

func NewFrameBuffer(width, height int, bg color.RGBA) *FrameBuffer {
	fb := &FrameBuffer{img: image.NewRGBA(image.Rect(0, 0, width, height))}
	fb.Clear(bg)
	return fb
}

func (fb *FrameBuffer) Width() int {
	return fb.img.Rect.Dx()
}

func (fb *FrameBuffer) Height() int {
	return fb.img.Rect.Dy()
}

func (fb *FrameBuffer) Bounds() image.Rectangle {
	return fb.img.Rect
}

func (fb *FrameBuffer) Image() *image.RGBA {
	return fb.img
}

// Set ignores points outside the surface.
func (fb *FrameBuffer) Set(x, y int, c color.RGBA) {
	fb.img.SetRGBA(x, y, c)
}

func (fb *FrameBuffer) At(x, y int) color.RGBA {
	return fb.img.RGBAAt(x, y)
}

// Fill paints r clipped to the surface.
func (fb *FrameBuffer) Fill(r image.Rectangle, c color.RGBA) {
	draw.Draw(fb.img, r.Intersect(fb.img.Rect), image.NewUniform(c), image.Point{}, draw.Src)
}

func (fb *FrameBuffer) Clear(c color.RGBA) {
	fb.Fill(fb.img.Rect, c)
}

// HLine draws an inclusive horizontal span.
func (fb *FrameBuffer) HLine(x1, x2, y int, c color.RGBA) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	fb.Fill(image.Rect(x1, y, x2+1, y+1), c)
}

func (fb *FrameBuffer) rebuild(bg color.RGBA, moves ...regionMove) *FrameBuffer {
	next := NewFrameBuffer(fb.Width(), fb.Height(), bg)
	for _, m := range moves {
		src := m.src.Intersect(fb.img.Rect)
		if src.Empty() {
			continue
		}
		dst := image.Rectangle{Min: m.dst, Max: m.dst.Add(src.Size())}
		draw.Draw(next.img, dst, fb.img, src.Min, draw.Src)
	}
	return next
}

// Shifted returns a copy moved by (dx, dy) with the revealed area in bg.
func (fb *FrameBuffer) Shifted(dx, dy int, bg color.RGBA) *FrameBuffer {
	return fb.rebuild(bg, regionMove{src: fb.img.Rect, dst: image.Pt(dx, dy)})
}

// WithRowsInserted opens count pixel rows at y, pushing the rows below down.
func (fb *FrameBuffer) WithRowsInserted(y, count int, bg color.RGBA) *FrameBuffer {
	w, h := fb.Width(), fb.Height()
	y = min(max(y, 0), h)
	count = min(max(count, 0), h-y)
	return fb.rebuild(bg,
		regionMove{src: image.Rect(0, 0, w, y), dst: image.Pt(0, 0)},
		regionMove{src: image.Rect(0, y, w, h-count), dst: image.Pt(0, y+count)},
	)
}

// WithRowsDeleted removes count pixel rows at y, pulling the rows below up.
func (fb *FrameBuffer) WithRowsDeleted(y, count int, bg color.RGBA) *FrameBuffer {
	w, h := fb.Width(), fb.Height()
	y = min(max(y, 0), h)
	count = min(max(count, 0), h-y)
	return fb.rebuild(bg,
		regionMove{src: image.Rect(0, 0, w, y), dst: image.Pt(0, 0)},
		regionMove{src: image.Rect(0, y+count, w, h), dst: image.Pt(0, y)},
	)
}
