package main

import (
	"image/color"
	"strings"
	"testing"
)

func csiReader(s string) func() (byte, error) {
	return func() (byte, error) {
		if len(s) == 0 {
			return 0, ErrLinkClosed
		}
		b := s[0]
		s = s[1:]
		return b, nil
	}
}

func TestParseCSI(t *testing.T) {
	cases := []struct {
		in     string
		cmd    byte
		params []int
	}{
		{"[2J", 'J', []int{2}},
		{"[H", 'H', []int{0}},
		{"[10;20H", 'H', []int{10, 20}},
		{"[;5f", 'f', []int{0, 5}},
		{"[1;31;44m", 'm', []int{1, 31, 44}},
		{"[99999999A", 'A', []int{CSI_PARAM_MAX}},
	}
	for _, tc := range cases {
		cmd, params, err := parseCSI(csiReader(tc.in))
		if err != nil {
			t.Fatalf("%q: %v", tc.in, err)
		}
		if cmd != tc.cmd || len(params) != len(tc.params) {
			t.Fatalf("%q: got %q %v", tc.in, cmd, params)
		}
		for i := range params {
			if params[i] != tc.params[i] {
				t.Fatalf("%q: got %v, want %v", tc.in, params, tc.params)
			}
		}
	}
}

func TestParseCSI_RejectsNonCSIEscape(t *testing.T) {
	if _, _, err := parseCSI(csiReader("(B")); err == nil {
		t.Fatal("expected error for ESC (")
	}
	if _, _, err := parseCSI(csiReader("[12")); err == nil {
		t.Fatal("expected error for a truncated sequence")
	}
}

// enterTerminalForTest switches a VDP into terminal mode and drops the
// handshake byte.
func enterTerminalForTest(t *testing.T) *vdpHarness {
	t.Helper()
	h := newVDPForTest(t)
	h.feed(VDU_23, VDU23_SYSTEM, SYS_TERMINAL)
	if got := h.link.Pending(); len(got) != 1 || got[0] != 0 {
		t.Fatalf("expected a single zero handshake byte, got %v", got)
	}
	if !h.vdp.Terminal() || h.vdp.Mode() != TERMINAL_MODE {
		t.Fatalf("expected terminal mode %d, got terminal=%v mode=%d", TERMINAL_MODE, h.vdp.Terminal(), h.vdp.Mode())
	}
	return h
}

func esc(seq string) []byte {
	return append([]byte{ASCII_ESC}, seq...)
}

func TestTerminal_UsesTallFont(t *testing.T) {
	h := enterTerminalForTest(t)
	c := h.vdp.cursor
	if c.FontWidth != 8 || c.FontHeight != TERMINAL_FONT_HEIGHT {
		t.Fatalf("expected 8x19 cells, got %dx%d", c.FontWidth, c.FontHeight)
	}
	if h.vdp.text.Attrs.Foreground != terminalForeground {
		t.Fatal("expected the terminal foreground colour")
	}
}

func TestTerminal_PrintableAndControls(t *testing.T) {
	h := enterTerminalForTest(t)
	h.feed('a', 'b', 'c', ASCII_BS, ASCII_LF)
	c := h.vdp.cursor
	if c.X != 16 || c.Y != TERMINAL_FONT_HEIGHT {
		t.Fatalf("expected (16,19), got (%d,%d)", c.X, c.Y)
	}
	h.feed(ASCII_CR)
	if h.vdp.cursor.X != 0 {
		t.Fatal("CR did not home the cursor")
	}
}

func TestTerminal_CursorPositionIsOneBased(t *testing.T) {
	h := enterTerminalForTest(t)
	h.feed(esc("[5;10H")...)
	c := h.vdp.cursor
	if c.X != 9*8 || c.Y != 4*TERMINAL_FONT_HEIGHT {
		t.Fatalf("expected (72,76), got (%d,%d)", c.X, c.Y)
	}
	h.feed(esc("[f")...)
	if h.vdp.cursor.X != 0 || h.vdp.cursor.Y != 0 {
		t.Fatal("ESC[f should home to the top left")
	}
}

func TestTerminal_CursorMovesByCount(t *testing.T) {
	h := enterTerminalForTest(t)
	h.feed(esc("[10;10H")...)
	h.feed(esc("[3A")...)
	h.feed(esc("[C")...)
	h.feed(esc("[0D")...)
	h.feed(esc("[2B")...)
	c := h.vdp.cursor
	if c.Column() != 9 || c.Row() != 8 {
		t.Fatalf("expected cell (9,8), got (%d,%d)", c.Column(), c.Row())
	}
}

func TestTerminal_EraseDisplay(t *testing.T) {
	h := enterTerminalForTest(t)
	red := color.RGBA{R: 0xFF, A: 0xFF}
	h.vdp.fb.Fill(h.vdp.fb.Bounds(), red)

	h.feed(esc("[2;1H")...)
	h.feed(esc("[0J")...)
	if pixelAt(h.vdp.fb, 0, 0) != red {
		t.Fatal("ESC[0J erased above the cursor")
	}
	if pixelAt(h.vdp.fb, 100, 470) == red {
		t.Fatal("ESC[0J left the bottom of the screen")
	}

	h.vdp.fb.Fill(h.vdp.fb.Bounds(), red)
	h.feed(esc("[2J")...)
	if pixelAt(h.vdp.fb, 0, 0) == red || pixelAt(h.vdp.fb, 639, 479) == red {
		t.Fatal("ESC[2J did not clear the screen")
	}
}

func TestTerminal_EraseLineVariants(t *testing.T) {
	h := enterTerminalForTest(t)
	red := color.RGBA{R: 0xFF, A: 0xFF}
	bg := h.vdp.text.Attrs.Background

	h.vdp.fb.Fill(h.vdp.fb.Bounds(), red)
	h.feed(esc("[1;5H")...) // column 4, x=32
	h.feed(esc("[K")...)
	if pixelAt(h.vdp.fb, 31, 5) != red || pixelAt(h.vdp.fb, 32, 5) != bg || pixelAt(h.vdp.fb, 639, 5) != bg {
		t.Fatal("ESC[K should erase from the cursor to the end of the line")
	}

	h.vdp.fb.Fill(h.vdp.fb.Bounds(), red)
	h.feed(esc("[1K")...)
	if pixelAt(h.vdp.fb, 0, 5) != bg || pixelAt(h.vdp.fb, 39, 5) != bg || pixelAt(h.vdp.fb, 40, 5) != red {
		t.Fatal("ESC[1K should erase through the cursor cell")
	}

	h.vdp.fb.Fill(h.vdp.fb.Bounds(), red)
	h.feed(esc("[2K")...)
	if pixelAt(h.vdp.fb, 0, 5) != bg || pixelAt(h.vdp.fb, 639, 5) != bg || pixelAt(h.vdp.fb, 0, 20) != red {
		t.Fatal("ESC[2K should erase only the cursor line")
	}
}

func TestTerminal_LineEditsWithScrollPending(t *testing.T) {
	h := enterTerminalForTest(t)
	marker := color.RGBA{G: 0xFF, A: 0xFF}
	h.vdp.fb.Set(3, 5, marker)
	h.vdp.cursor.Y = h.vdp.cursor.ScreenHeight

	h.feed(esc("[2L")...)
	h.feed(esc("[2M")...)
	if pixelAt(h.vdp.fb, 3, 5) != marker {
		t.Fatal("line edits below the last row changed the screen")
	}
}

func TestTerminal_InsertAndDeleteLines(t *testing.T) {
	h := enterTerminalForTest(t)
	fh := TERMINAL_FONT_HEIGHT
	marker := color.RGBA{G: 0xFF, A: 0xFF}
	bg := h.vdp.text.Attrs.Background

	h.vdp.fb.Set(3, 2*fh, marker)
	h.feed(esc("[2;1H")...) // row 1
	h.feed(esc("[L")...)
	if pixelAt(h.vdp.fb, 3, 3*fh) != marker || pixelAt(h.vdp.fb, 3, 2*fh) != bg {
		t.Fatal("ESC[L did not push the rows below down one line")
	}

	h.feed(esc("[2M")...)
	if pixelAt(h.vdp.fb, 3, fh) != marker {
		t.Fatal("ESC[2M did not pull the rows below up two lines")
	}
}

func TestTerminal_SelectGraphicRendition(t *testing.T) {
	h := enterTerminalForTest(t)
	h.feed(esc("[31;44;4;7m")...)
	a := h.vdp.text.Attrs
	if a.Foreground != h.vdp.palette[1] || a.Background != h.vdp.palette[4] || !a.Underline || !a.Reverse {
		t.Fatalf("unexpected attributes %+v", a)
	}

	h.feed(esc("[1m")...)
	if h.vdp.text.Attrs.Foreground != colourLookup[0x3F] {
		t.Fatal("bold should brighten the foreground")
	}

	h.feed(esc("[0m")...)
	a = h.vdp.text.Attrs
	if a.Foreground != terminalForeground || a.Background != colourLookup[0] || a.Reverse || a.Underline {
		t.Fatalf("reset left attributes %+v", a)
	}
}

func TestTerminal_UnsupportedSequencesAreLogged(t *testing.T) {
	h := enterTerminalForTest(t)
	h.feed(esc("[5m")...)
	h.feed(esc("[3z")...)
	h.feed(0x01)
	log := h.diag.String()
	for _, want := range []string{"unsupported attributes [5]", "unsupported command 'z'", "unsupported control 0x01"} {
		if !strings.Contains(log, want) {
			t.Fatalf("diagnostics missing %q:\n%s", want, log)
		}
	}
}

func TestTerminal_LineFeedScrollsAtBottom(t *testing.T) {
	h := enterTerminalForTest(t)
	fh := TERMINAL_FONT_HEIGHT
	rows := 480 / fh
	marker := color.RGBA{B: 0xFF, A: 0xFF}
	h.vdp.fb.Set(0, fh+1, marker)

	h.feed(esc("[25;1H")...) // last full row
	if h.vdp.cursor.Row() != rows-1 {
		t.Fatalf("expected row %d, got %d", rows-1, h.vdp.cursor.Row())
	}
	h.feed(ASCII_LF)
	if h.vdp.cursor.Row() != rows-1 {
		t.Fatalf("cursor left the last row: %d", h.vdp.cursor.Row())
	}
	if pixelAt(h.vdp.fb, 0, 1) != marker {
		t.Fatal("screen did not scroll up one line")
	}
}
