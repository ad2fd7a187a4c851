package main

import (
	"image"
	"image/color"
	"strings"
	"testing"
)

var plotColour = color.RGBA{R: 0xFF, G: 0xFF, A: 0xFF}

func TestLineXCoords_OneEntryPerScanline(t *testing.T) {
	for y1 := -9; y1 <= 9; y1 += 3 {
		for x1 := -17; x1 <= 17; x1 += 5 {
			for y2 := -9; y2 <= 9; y2 += 2 {
				for x2 := -17; x2 <= 17; x2 += 4 {
					top, bot := image.Pt(x1, y1), image.Pt(x2, y2)
					xs := lineXCoords(top, bot)
					if want := abs(y2-y1) + 1; len(xs) != want {
						t.Fatalf("lineXCoords(%v, %v): %d entries, want %d", top, bot, len(xs), want)
					}
				}
			}
		}
	}
}

func TestLineXCoords_HorizontalReturnsBotX(t *testing.T) {
	xs := lineXCoords(image.Pt(3, 7), image.Pt(40, 7))
	if len(xs) != 1 || xs[0] != 40 {
		t.Fatalf("expected [40], got %v", xs)
	}
}

func TestLineXCoords_VerticalIsConstant(t *testing.T) {
	xs := lineXCoords(image.Pt(5, 0), image.Pt(5, 6))
	for i, x := range xs {
		if x != 5 {
			t.Fatalf("entry %d: expected 5, got %d", i, x)
		}
	}
}

func TestLineXCoords_ShallowEndsOnEndPoints(t *testing.T) {
	xs := lineXCoords(image.Pt(0, 0), image.Pt(10, 2))
	if xs[0] != 0 || xs[len(xs)-1] != 10 {
		t.Fatalf("expected to start at 0 and end at 10, got %v", xs)
	}
}

func TestFillTriangle_CoversInterior(t *testing.T) {
	fb := NewFrameBuffer(40, 40, color.RGBA{A: 0xFF})
	fillTriangle(fb, image.Pt(10, 10), image.Pt(30, 10), image.Pt(10, 30), plotColour)

	if pixelAt(fb, 12, 12) != plotColour {
		t.Fatal("interior pixel not filled")
	}
	if pixelAt(fb, 10, 30) != plotColour || pixelAt(fb, 30, 10) != plotColour {
		t.Fatal("corner pixels not filled")
	}
	if pixelAt(fb, 29, 29) == plotColour {
		t.Fatal("pixel outside the hypotenuse was filled")
	}
}

func TestFillTriangle_CollinearPointsDrawALine(t *testing.T) {
	fb := NewFrameBuffer(20, 20, color.RGBA{A: 0xFF})
	fillTriangle(fb, image.Pt(2, 2), image.Pt(6, 6), image.Pt(10, 10), plotColour)
	if pixelAt(fb, 6, 6) != plotColour {
		t.Fatal("expected the degenerate triangle to cover its line")
	}
}

func TestFillTriangle_FlatTop(t *testing.T) {
	fb := NewFrameBuffer(20, 20, color.RGBA{A: 0xFF})
	fillTriangle(fb, image.Pt(2, 5), image.Pt(12, 5), image.Pt(7, 10), plotColour)
	for x := 2; x <= 12; x++ {
		if pixelAt(fb, x, 5) != plotColour {
			t.Fatalf("top edge pixel %d not filled", x)
		}
	}
}

func TestGraphicsEngine_ScaleTranslateInverseWithinOnePixel(t *testing.T) {
	for _, mode := range VideoModes {
		g := GraphicsEngine{Logical: true}
		w, h := mode.Width, mode.Height
		for lx := 0; lx < LOGICAL_WIDTH; lx += 37 {
			for ly := 0; ly < LOGICAL_HEIGHT; ly += 41 {
				px := g.Project(image.Pt(lx, ly), w, h)
				// Undo translate then scale.
				bx := px.X * LOGICAL_WIDTH / w
				by := (h - 1 - px.Y) * LOGICAL_HEIGHT / h
				if abs(bx-lx) > LOGICAL_WIDTH/w+1 || abs(by-ly) > LOGICAL_HEIGHT/h+1 {
					t.Fatalf("%dx%d: (%d,%d) came back as (%d,%d)", w, h, lx, ly, bx, by)
				}
			}
		}
	}
}

func TestGraphicsEngine_PhysicalCoordinatesUseOrigin(t *testing.T) {
	g := GraphicsEngine{Origin: image.Pt(5, 7)}
	got := g.Project(image.Pt(10, 10), 320, 200)
	if got != image.Pt(15, 17) {
		t.Fatalf("expected (15,17), got %v", got)
	}
}

func TestGraphicsEngine_LogicalOriginIsBottomLeft(t *testing.T) {
	g := GraphicsEngine{Logical: true}
	if got := g.Project(image.Pt(0, 0), 512, 384); got != image.Pt(0, 383) {
		t.Fatalf("expected (0,383), got %v", got)
	}
}

func TestGraphicsEngine_PlotShiftsHistory(t *testing.T) {
	fb := NewFrameBuffer(64, 64, color.RGBA{A: 0xFF})
	var g GraphicsEngine
	for i, p := range []image.Point{{1, 1}, {2, 2}, {3, 3}} {
		if err := g.Plot(fb, PLOT_MOVE, p.X, p.Y, plotColour); err != nil {
			t.Fatalf("plot %d: %v", i, err)
		}
	}
	if g.P1 != image.Pt(3, 3) || g.P2 != image.Pt(2, 2) || g.P3 != image.Pt(1, 1) {
		t.Fatalf("unexpected history %v %v %v", g.P1, g.P2, g.P3)
	}
	if pixelAt(fb, 2, 2) == plotColour {
		t.Fatal("move must not draw")
	}
}

func TestGraphicsEngine_PlotLineAndDot(t *testing.T) {
	fb := NewFrameBuffer(64, 64, color.RGBA{A: 0xFF})
	var g GraphicsEngine
	_ = g.Plot(fb, PLOT_MOVE, 0, 0, plotColour)
	_ = g.Plot(fb, PLOT_LINE, 10, 10, plotColour)
	for i := 0; i <= 10; i++ {
		if pixelAt(fb, i, i) != plotColour {
			t.Fatalf("diagonal pixel %d missing", i)
		}
	}
	_ = g.Plot(fb, PLOT_DOT_FIRST, 40, 20, plotColour)
	if pixelAt(fb, 40, 20) != plotColour {
		t.Fatal("dot not drawn")
	}
}

func TestGraphicsEngine_PlotCircle(t *testing.T) {
	fb := NewFrameBuffer(100, 100, color.RGBA{A: 0xFF})
	var g GraphicsEngine
	_ = g.Plot(fb, PLOT_MOVE, 50, 50, plotColour)
	if err := g.Plot(fb, PLOT_CIRCLE_FIRST, 10, 0, plotColour); err != nil {
		t.Fatalf("circle: %v", err)
	}
	if pixelAt(fb, 60, 50) != plotColour {
		t.Fatal("circle start point missing")
	}
	if pixelAt(fb, 50, 50) == plotColour {
		t.Fatal("circle centre was drawn")
	}
}

func TestGraphicsEngine_PlotTwoPointCircle(t *testing.T) {
	fb := NewFrameBuffer(100, 100, color.RGBA{A: 0xFF})
	var g GraphicsEngine
	_ = g.Plot(fb, PLOT_MOVE, 50, 50, plotColour)
	_ = g.Plot(fb, PLOT_CIRCLE_TWO_PT, 50, 70, plotColour)
	if pixelAt(fb, 70, 50) != plotColour {
		t.Fatal("expected radius 20 from the two points")
	}
}

func TestGraphicsEngine_PlotUnsupportedMode(t *testing.T) {
	fb := NewFrameBuffer(8, 8, color.RGBA{A: 0xFF})
	var g GraphicsEngine
	err := g.Plot(fb, 200, 1, 1, plotColour)
	if err == nil || !strings.Contains(err.Error(), "unsupported plot mode") {
		t.Fatalf("expected unsupported plot mode error, got %v", err)
	}
}

func TestGraphicsEngine_ResetKeepsCoordinateMode(t *testing.T) {
	g := GraphicsEngine{Logical: true, Origin: image.Pt(3, 3), P1: image.Pt(1, 1)}
	g.Reset()
	if !g.Logical || g.Origin != (image.Point{}) || g.P1 != (image.Point{}) {
		t.Fatalf("unexpected state after reset: %+v", g)
	}
}
