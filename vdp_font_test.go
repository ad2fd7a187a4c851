package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFontTable_GlyphOffsets(t *testing.T) {
	ft := newTestFont()
	if ft.Glyph(0x1F) != nil {
		t.Fatal("control characters have no glyph")
	}
	got := ft.Glyph('A')
	want := testFontGlyphs['A']
	if string(got) != string(want[:]) {
		t.Fatalf("glyph A: expected %v, got %v", want, got)
	}
	if &ft.Glyph('A')[0] != &ft.Data[('A'-32)*NATIVE_FONT_HEIGHT] {
		t.Fatal("glyph A is not at (ch-32)*height")
	}
}

func TestFontTable_RedefineClearsRowsBelow(t *testing.T) {
	ft := NewTerminalFont()
	if !ft.Redefine('A', []byte{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Fatal("redefine failed")
	}
	g := ft.Glyph('A')
	if g[0] != 1 || g[7] != 8 {
		t.Fatalf("top rows not replaced: %v", g)
	}
	for i := 8; i < len(g); i++ {
		if g[i] != 0 {
			t.Fatalf("row %d not cleared: %v", i, g)
		}
	}
}

func TestFontTable_MatchAndClone(t *testing.T) {
	ft := newTestFont()
	rows := testFontGlyphs['X']
	if ch, ok := ft.Match(rows[:]); !ok || ch != 'X' {
		t.Fatalf("expected X, got %q ok=%v", ch, ok)
	}
	if _, ok := ft.Match([]byte{1, 2, 3}); ok {
		t.Fatal("short row slice must not match")
	}

	cl := ft.Clone()
	cl.Redefine('X', []byte{0xFF})
	if ft.Glyph('X')[0] != 0x81 {
		t.Fatal("clone shares data with the original")
	}
}

func TestNativeFont_Dimensions(t *testing.T) {
	ft, err := NewNativeFont()
	if err != nil {
		t.Fatalf("NewNativeFont failed: %v", err)
	}
	if ft.Width != 8 || ft.Height != 8 || len(ft.Data) != FONT_GLYPHS*8 {
		t.Fatalf("unexpected font shape %dx%d, %d bytes", ft.Width, ft.Height, len(ft.Data))
	}
	for _, b := range ft.Glyph(' ') {
		if b != 0 {
			t.Fatal("space glyph has lit pixels")
		}
	}
	var lit int
	for _, b := range ft.Glyph('A') {
		if b != 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Fatal("glyph A is blank")
	}
}

func TestTerminalFont_Dimensions(t *testing.T) {
	ft := NewTerminalFont()
	if ft.Width != 8 || ft.Height != TERMINAL_FONT_HEIGHT {
		t.Fatalf("expected 8x19, got %dx%d", ft.Width, ft.Height)
	}
	var lit int
	for _, b := range ft.Glyph('M') {
		if b != 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Fatal("glyph M is blank")
	}
}

func TestLoadFontFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "font.bin")
	data := make([]byte, 3*6)
	data[6] = 0xAA // first row of '!'
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	ft, err := LoadFontFile(path, 6)
	if err != nil {
		t.Fatalf("LoadFontFile failed: %v", err)
	}
	if ft.Height != 6 || ft.Glyph('!')[0] != 0xAA {
		t.Fatalf("unexpected table %+v", ft)
	}
	if ft.Glyph('#') != nil {
		t.Fatal("glyph past the end of the file should be missing")
	}

	if _, err := LoadFontFile(path, 7); err == nil {
		t.Fatal("expected error for a partial glyph")
	}
	if _, err := LoadFontFile(path, 0); err == nil {
		t.Fatal("expected error for zero height")
	}
}
