// vdp_graphics.go - Coordinate transforms and PLOT rasterisation for Quark VDP

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
	"math"
	"slices"
)

// PLOT mode groups.
const (
	PLOT_MOVE           = 4
	PLOT_LINE           = 5
	PLOT_DOT_FIRST      = 64
	PLOT_DOT_LAST       = 71
	PLOT_TRIANGLE_FIRST = 80
	PLOT_TRIANGLE_LAST  = 87
	PLOT_CIRCLE_FIRST   = 144
	PLOT_CIRCLE_TWO_PT  = 148 // radius from the previous two points
	PLOT_CIRCLE_LAST    = 151

	CIRCLE_SEGMENTS = 32
)

// GraphicsEngine holds the PLOT point history and coordinate state.
// P1 is the newest point, P3 the oldest.
type GraphicsEngine struct {
	Logical    bool
	Origin     image.Point
	P1, P2, P3 image.Point
}

// Scale maps logical 1280x1024 space to a w x h screen when logical
// coordinates are enabled.
func (g *GraphicsEngine) Scale(p image.Point, w, h int) image.Point {
	if !g.Logical {
		return p
	}
	return image.Pt(p.X*w/LOGICAL_WIDTH, p.Y*h/LOGICAL_HEIGHT)
}

// Translate applies the graphics origin. Logical coordinates put the
// origin at the bottom left.
func (g *GraphicsEngine) Translate(p image.Point, h int) image.Point {
	if g.Logical {
		return image.Pt(p.X+g.Origin.X, h-1-p.Y-g.Origin.Y)
	}
	return p.Add(g.Origin)
}

func (g *GraphicsEngine) Project(p image.Point, w, h int) image.Point {
	return g.Translate(g.Scale(p, w, h), h)
}

// Reset clears the point history and origin; the coordinate mode survives.
func (g *GraphicsEngine) Reset() {
	g.Origin = image.Point{}
	g.P1, g.P2, g.P3 = image.Point{}, image.Point{}, image.Point{}
}

func (g *GraphicsEngine) push(p image.Point) {
	g.P3 = g.P2
	g.P2 = g.P1
	g.P1 = p
}

// Plot pushes (x, y) into the history and draws according to mode.
func (g *GraphicsEngine) Plot(fb *FrameBuffer, mode int, x, y int, c color.RGBA) error {
	w, h := fb.Width(), fb.Height()
	raw := image.Pt(x, y)
	g.push(g.Project(raw, w, h))

	switch {
	case mode == PLOT_MOVE:
	case mode == PLOT_LINE:
		drawLine(fb, g.P1, g.P2, c)
	case mode >= PLOT_DOT_FIRST && mode <= PLOT_DOT_LAST:
		fb.Set(g.P1.X, g.P1.Y, c)
	case mode >= PLOT_TRIANGLE_FIRST && mode <= PLOT_TRIANGLE_LAST:
		fillTriangle(fb, g.P1, g.P2, g.P3, c)
	case mode >= PLOT_CIRCLE_FIRST && mode <= PLOT_CIRCLE_LAST:
		var r float64
		if mode < PLOT_CIRCLE_TWO_PT {
			v := g.Scale(raw, w, h)
			r = math.Hypot(float64(v.X), float64(v.Y))
		} else {
			d := g.P1.Sub(g.P2)
			r = math.Hypot(float64(d.X), float64(d.Y))
		}
		drawCircle(fb, g.P2, r, c)
	default:
		return fmt.Errorf("unsupported plot mode %d", mode)
	}
	return nil
}

// drawLine is an all-octant Bresenham rasteriser including both end points.
func drawLine(fb *FrameBuffer, a, b image.Point, c color.RGBA) {
	switch {
	case a == b:
		fb.Set(a.X, a.Y, c)
		return
	case a.Y == b.Y:
		fb.HLine(a.X, b.X, a.Y, c)
		return
	}

	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	e := dx + dy
	x, y := a.X, a.Y
	for {
		fb.Set(x, y, c)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

// lineXCoords returns one X per scanline of the edge from top to bot.
// Horizontal edges yield only bot.X. Index 0 belongs to top even when top
// lies below bot.
func lineXCoords(top, bot image.Point) []int {
	if top.Y > bot.Y {
		xs := lineXCoords(bot, top)
		slices.Reverse(xs)
		return xs
	}

	dy := bot.Y - top.Y
	dx := abs(top.X - bot.X)
	xs := make([]int, 0, dy+1)

	switch {
	case dy == 0:
		xs = append(xs, bot.X)
	case dx > dy:
		// Mostly horizontal: walk X, emit when Y steps.
		step := 1
		if top.X > bot.X {
			step = -1
		}
		t := -dx / 2
		y := top.Y
		xs = append(xs, top.X)
		for x := top.X; ; x += step {
			t += dy
			if t > 0 {
				t -= dx
				if y != bot.Y && y != top.Y {
					xs = append(xs, x)
				}
				y++
			}
			if x == bot.X {
				break
			}
		}
		xs = append(xs, bot.X)
	default:
		t := -dy / 2
		x := top.X
		for y := top.Y; y <= bot.Y; y++ {
			xs = append(xs, x)
			t += dx
			if t > 0 {
				if top.X > bot.X {
					x--
				} else {
					x++
				}
				t -= dy
			}
		}
	}

	if len(xs) != dy+1 {
		panic(fmt.Sprintf("lineXCoords: %d x coordinates for %d scanlines (%v to %v)", len(xs), dy+1, top, bot))
	}
	return xs
}

// fillTriangle sorts the corners by Y and fills one span per scanline
// between the long edge and the two short edges.
func fillTriangle(fb *FrameBuffer, p1, p2, p3 image.Point, c color.RGBA) {
	top, mid, bot := p1, p2, p3
	if top.Y > mid.Y {
		top, mid = mid, top
	}
	if top.Y > bot.Y {
		top, bot = bot, top
	}
	if mid.Y > bot.Y {
		mid, bot = bot, mid
	}

	long := lineXCoords(top, bot)
	short := lineXCoords(top, mid)
	short = append(short, lineXCoords(mid, bot)[1:]...)

	y := top.Y
	for i, x1 := range long {
		fb.HLine(x1, short[i], y, c)
		y++
	}
}

// drawCircle draws a closed 32-segment polygon. Coordinates are truncated,
// not rounded.
func drawCircle(fb *FrameBuffer, centre image.Point, r float64, c color.RGBA) {
	start := image.Pt(centre.X+int(r), centre.Y)
	prev := start
	for i := 1; i < CIRCLE_SEGMENTS; i++ {
		angle := float64(i) * 2 * math.Pi / CIRCLE_SEGMENTS
		next := image.Pt(centre.X+int(r*math.Cos(angle)), centre.Y+int(r*math.Sin(angle)))
		drawLine(fb, prev, next, c)
		prev = next
	}
	drawLine(fb, prev, start, c)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
