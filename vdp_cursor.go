// vdp_cursor.go - Text cursor and page-mode flow control for Quark VDP

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

// PagingPhase is the page-mode flow control state.
type PagingPhase int

const (
	PagingCounting         PagingPhase = iota // counting rows since the last page
	PagingAwaitingContinue                    // a scroll is deferred until the user continues
	PagingContinueGranted                     // continue arrived; scroll on next poll
)

func (p PagingPhase) String() string {
	switch p {
	case PagingCounting:
		return "counting"
	case PagingAwaitingContinue:
		return "awaiting-continue"
	case PagingContinueGranted:
		return "continue-granted"
	}
	return "unknown"
}

// PagingState replaces the overloaded row counter with an explicit phase.
// Lines is only meaningful while Phase is PagingCounting.
type PagingState struct {
	Phase PagingPhase
	Lines int
}

// Cursor tracks the text position in pixels plus page-mode state.
type Cursor struct {
	X, Y         int
	ScreenWidth  int
	ScreenHeight int
	FontWidth    int
	FontHeight   int
	PagedMode    bool
	Paging       PagingState
}

func NewCursor(screenWidth, screenHeight, fontWidth, fontHeight int) Cursor {
	return Cursor{
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		FontWidth:    fontWidth,
		FontHeight:   fontHeight,
	}
}

// Right advances one cell, wrapping to the start of the next row.
func (c *Cursor) Right() {
	c.X += c.FontWidth
	if c.X >= c.ScreenWidth {
		c.Home()
		c.Down()
	}
}

func (c *Cursor) Left() {
	c.X = max(c.X-c.FontWidth, 0)
}

func (c *Cursor) Up() {
	c.Y = max(c.Y-c.FontHeight, 0)
}

// Down moves one row. In paged mode a full screen of rows defers the
// next scroll until Continue is called.
func (c *Cursor) Down() {
	c.Y += c.FontHeight
	if !c.PagedMode {
		return
	}
	switch c.Paging.Phase {
	case PagingAwaitingContinue:
		return
	case PagingContinueGranted:
		c.Paging = PagingState{Phase: PagingCounting}
	}
	c.Paging.Lines++
	if c.Paging.Lines*c.FontHeight >= c.ScreenHeight {
		c.Paging = PagingState{Phase: PagingAwaitingContinue}
	}
}

// Home is a carriage return.
func (c *Cursor) Home() {
	c.X = 0
}

func (c *Cursor) TopLeft() {
	c.X, c.Y = 0, 0
}

func (c *Cursor) ResetPaging() {
	c.Paging = PagingState{Phase: PagingCounting}
}

func (c *Cursor) Awaiting() bool {
	return c.PagedMode && c.Paging.Phase == PagingAwaitingContinue
}

// Continue grants a pending page. It reports whether anything was pending.
func (c *Cursor) Continue() bool {
	if c.Paging.Phase != PagingAwaitingContinue {
		return false
	}
	c.Paging.Phase = PagingContinueGranted
	return true
}

// Column and Row report the cursor in character cells.
func (c *Cursor) Column() int {
	return c.X / c.FontWidth
}

func (c *Cursor) Row() int {
	return c.Y / c.FontHeight
}

func (c *Cursor) Columns() int {
	return c.ScreenWidth / c.FontWidth
}

func (c *Cursor) Rows() int {
	return c.ScreenHeight / c.FontHeight
}
