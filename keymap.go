// keymap.go - Virtual key codes, ASCII translation and keyboard layouts

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
	"strings"
)

// VirtualKey follows the FabGL virtual key numbering that hosts expect in
// keyboard packets.
type VirtualKey uint8

const (
	VK_NONE VirtualKey = iota
	VK_SPACE
	VK_0
	VK_1
	VK_2
	VK_3
	VK_4
	VK_5
	VK_6
	VK_7
	VK_8
	VK_9
	VK_KP_0
	VK_KP_1
	VK_KP_2
	VK_KP_3
	VK_KP_4
	VK_KP_5
	VK_KP_6
	VK_KP_7
	VK_KP_8
	VK_KP_9
	VK_a
	VK_b
	VK_c
	VK_d
	VK_e
	VK_f
	VK_g
	VK_h
	VK_i
	VK_j
	VK_k
	VK_l
	VK_m
	VK_n
	VK_o
	VK_p
	VK_q
	VK_r
	VK_s
	VK_t
	VK_u
	VK_v
	VK_w
	VK_x
	VK_y
	VK_z
	VK_A
	VK_B
	VK_C
	VK_D
	VK_E
	VK_F
	VK_G
	VK_H
	VK_I
	VK_J
	VK_K
	VK_L
	VK_M
	VK_N
	VK_O
	VK_P
	VK_Q
	VK_R
	VK_S
	VK_T
	VK_U
	VK_V
	VK_W
	VK_X
	VK_Y
	VK_Z
	VK_GRAVEACCENT
	VK_ACUTEACCENT
	VK_QUOTE
	VK_QUOTEDBL
	VK_EQUALS
	VK_MINUS
	VK_KP_MINUS
	VK_PLUS
	VK_KP_PLUS
	VK_KP_MULTIPLY
	VK_ASTERISK
	VK_BACKSLASH
	VK_KP_DIVIDE
	VK_SLASH
	VK_KP_PERIOD
	VK_PERIOD
	VK_COLON
	VK_COMMA
	VK_SEMICOLON
	VK_AMPERSAND
	VK_VERTICALBAR
	VK_HASH
	VK_AT
	VK_CARET
	VK_DOLLAR
	VK_POUND
	VK_EURO
	VK_PERCENT
	VK_EXCLAIM
	VK_QUESTION
	VK_LEFTBRACE
	VK_RIGHTBRACE
	VK_LEFTBRACKET
	VK_RIGHTBRACKET
	VK_LEFTPAREN
	VK_RIGHTPAREN
	VK_LESS
	VK_GREATER
	VK_UNDERSCORE
	VK_DEGREE
	VK_SECTION
	VK_TILDE
	VK_NEGATION
	VK_LSHIFT
	VK_RSHIFT
	VK_LALT
	VK_RALT
	VK_LCTRL
	VK_RCTRL
	VK_LGUI
	VK_RGUI
	VK_ESCAPE
	VK_PRINTSCREEN
	VK_SYSREQ
	VK_INSERT
	VK_KP_INSERT
	VK_DELETE
	VK_KP_DELETE
	VK_BACKSPACE
	VK_HOME
	VK_KP_HOME
	VK_END
	VK_KP_END
	VK_PAUSE
	VK_BREAK
	VK_SCROLLLOCK
	VK_NUMLOCK
	VK_CAPSLOCK
	VK_TAB
	VK_RETURN
	VK_KP_ENTER
	VK_APPLICATION
	VK_PAGEUP
	VK_KP_PAGEUP
	VK_PAGEDOWN
	VK_KP_PAGEDOWN
	VK_UP
	VK_KP_UP
	VK_DOWN
	VK_KP_DOWN
	VK_LEFT
	VK_KP_LEFT
	VK_RIGHT
	VK_KP_RIGHT
	VK_KP_CENTER
	VK_F1
	VK_F2
	VK_F3
	VK_F4
	VK_F5
	VK_F6
	VK_F7
	VK_F8
	VK_F9
	VK_F10
	VK_F11
	VK_F12
	VK_GRAVE_a
	VK_GRAVE_e
	VK_GRAVE_i
	VK_GRAVE_o
	VK_GRAVE_u
	VK_GRAVE_y
	VK_ACUTE_a
	VK_ACUTE_e
	VK_ACUTE_i
	VK_ACUTE_o
	VK_ACUTE_u
	VK_ACUTE_y
	VK_GRAVE_A
	VK_GRAVE_E
	VK_GRAVE_I
	VK_GRAVE_O
	VK_GRAVE_U
	VK_GRAVE_Y
	VK_ACUTE_A
	VK_ACUTE_E
	VK_ACUTE_I
	VK_ACUTE_O
	VK_ACUTE_U
	VK_ACUTE_Y
	VK_UMLAUT_a
	VK_UMLAUT_e
	VK_UMLAUT_i
	VK_UMLAUT_o
	VK_UMLAUT_u
	VK_UMLAUT_y
	VK_UMLAUT_A
	VK_UMLAUT_E
	VK_UMLAUT_I
	VK_UMLAUT_O
	VK_UMLAUT_U
	VK_UMLAUT_Y
	VK_CARET_a
	VK_CARET_e
	VK_CARET_i
	VK_CARET_o
	VK_CARET_u
	VK_CARET_y
	VK_CARET_A
	VK_CARET_E
	VK_CARET_I
	VK_CARET_O
	VK_CARET_U
	VK_CARET_Y
	VK_CEDILLA_c
	VK_CEDILLA_C
	VK_TILDE_a
	VK_TILDE_o
	VK_TILDE_n
	VK_TILDE_A
	VK_TILDE_O
	VK_TILDE_N
	VK_UPPER_a
	VK_ESZETT
	VK_EXCLAIM_INV
	VK_QUESTION_INV
	VK_INTERPUNCT
	VK_DIAERESIS
	VK_SQUARE
	VK_CURRENCY
	VK_MU
	VK_aelig
	VK_oslash
	VK_aring
	VK_AELIG
	VK_OSLASH
	VK_ARING
	VK_YEN
	VK_MUHENKAN
	VK_HENKAN
	VK_KATAKANA_HIRAGANA_ROMAJI
	VK_HANKAKU_ZENKAKU_KANJI
	VK_SHIFT_0
	VK_ASCII
	VK_LAST
)

// Scancode identifies a physical key by its US-layout position.
type Scancode int

const (
	SC_NONE Scancode = iota
	SC_A
	SC_B
	SC_C
	SC_D
	SC_E
	SC_F
	SC_G
	SC_H
	SC_I
	SC_J
	SC_K
	SC_L
	SC_M
	SC_N
	SC_O
	SC_P
	SC_Q
	SC_R
	SC_S
	SC_T
	SC_U
	SC_V
	SC_W
	SC_X
	SC_Y
	SC_Z
	SC_1
	SC_2
	SC_3
	SC_4
	SC_5
	SC_6
	SC_7
	SC_8
	SC_9
	SC_0
	SC_SPACE
	SC_GRAVE
	SC_MINUS
	SC_EQUALS
	SC_LEFTBRACKET
	SC_RIGHTBRACKET
	SC_SEMICOLON
	SC_APOSTROPHE
	SC_BACKSLASH
	SC_NONUS_BACKSLASH
	SC_COMMA
	SC_PERIOD
	SC_SLASH
	SC_KP_0
	SC_KP_1
	SC_KP_2
	SC_KP_3
	SC_KP_4
	SC_KP_5
	SC_KP_6
	SC_KP_7
	SC_KP_8
	SC_KP_9
	SC_KP_DIVIDE
	SC_KP_MULTIPLY
	SC_KP_MINUS
	SC_KP_PLUS
	SC_KP_ENTER
	SC_KP_PERIOD
	SC_F1
	SC_F2
	SC_F3
	SC_F4
	SC_F5
	SC_F6
	SC_F7
	SC_F8
	SC_F9
	SC_F10
	SC_F11
	SC_F12
	SC_ESCAPE
	SC_RETURN
	SC_BACKSPACE
	SC_TAB
	SC_LSHIFT
	SC_RSHIFT
	SC_LCTRL
	SC_RCTRL
	SC_LALT
	SC_RALT
	SC_LGUI
	SC_RGUI
	SC_UP
	SC_DOWN
	SC_LEFT
	SC_RIGHT
	SC_HOME
	SC_END
	SC_PAGEUP
	SC_PAGEDOWN
	SC_INSERT
	SC_DELETE
	SC_CAPSLOCK
)

// KeyMod is the modifier bitmask sent in keyboard packets.
type KeyMod uint8

const (
	MOD_CTRL  KeyMod = 1 << 0
	MOD_SHIFT KeyMod = 1 << 1
	MOD_LALT  KeyMod = 1 << 2
	MOD_RALT  KeyMod = 1 << 3
	MOD_CAPS  KeyMod = 1 << 4
	MOD_NUM   KeyMod = 1 << 5
	MOD_GUI   KeyMod = 1 << 7
)

func (m KeyMod) shift() bool {
	return m&MOD_SHIFT != 0
}

func (m KeyMod) upper() bool {
	return m&(MOD_SHIFT|MOD_CAPS) != 0
}

func (m KeyMod) alt() bool {
	return m&(MOD_LALT|MOD_RALT) != 0
}

// KeyboardLayout resolves a physical key to a virtual key.
type KeyboardLayout interface {
	Name() string
	VirtualKey(sc Scancode, mods KeyMod) VirtualKey
}

// USLayout is the base mapping other layouts fall back to.
type USLayout struct{}

func (USLayout) Name() string { return "us" }

// usShifted maps keys to their {plain, shifted} virtual keys.
var usShifted = map[Scancode][2]VirtualKey{
	SC_GRAVE:           {VK_GRAVEACCENT, VK_TILDE},
	SC_1:               {VK_1, VK_EXCLAIM},
	SC_2:               {VK_2, VK_AT},
	SC_3:               {VK_3, VK_HASH},
	SC_4:               {VK_4, VK_DOLLAR},
	SC_5:               {VK_5, VK_PERCENT},
	SC_6:               {VK_6, VK_CARET},
	SC_7:               {VK_7, VK_AMPERSAND},
	SC_8:               {VK_8, VK_ASTERISK},
	SC_9:               {VK_9, VK_LEFTPAREN},
	SC_0:               {VK_0, VK_RIGHTPAREN},
	SC_MINUS:           {VK_MINUS, VK_UNDERSCORE},
	SC_EQUALS:          {VK_EQUALS, VK_PLUS},
	SC_LEFTBRACKET:     {VK_LEFTBRACKET, VK_LEFTBRACE},
	SC_RIGHTBRACKET:    {VK_RIGHTBRACKET, VK_RIGHTBRACE},
	SC_SEMICOLON:       {VK_SEMICOLON, VK_COLON},
	SC_APOSTROPHE:      {VK_QUOTE, VK_QUOTEDBL},
	SC_BACKSLASH:       {VK_BACKSLASH, VK_VERTICALBAR},
	SC_NONUS_BACKSLASH: {VK_BACKSLASH, VK_VERTICALBAR},
	SC_COMMA:           {VK_COMMA, VK_LESS},
	SC_PERIOD:          {VK_PERIOD, VK_GREATER},
	SC_SLASH:           {VK_SLASH, VK_QUESTION},
}

var usFixed = map[Scancode]VirtualKey{
	SC_SPACE:       VK_SPACE,
	SC_KP_0:        VK_KP_0,
	SC_KP_1:        VK_KP_1,
	SC_KP_2:        VK_KP_2,
	SC_KP_3:        VK_KP_3,
	SC_KP_4:        VK_KP_4,
	SC_KP_5:        VK_KP_5,
	SC_KP_6:        VK_KP_6,
	SC_KP_7:        VK_KP_7,
	SC_KP_8:        VK_KP_8,
	SC_KP_9:        VK_KP_9,
	SC_KP_DIVIDE:   VK_KP_DIVIDE,
	SC_KP_MULTIPLY: VK_KP_MULTIPLY,
	SC_KP_MINUS:    VK_KP_MINUS,
	SC_KP_PLUS:     VK_KP_PLUS,
	SC_KP_ENTER:    VK_KP_ENTER,
	SC_KP_PERIOD:   VK_KP_PERIOD,
	SC_F1:          VK_F1,
	SC_F2:          VK_F2,
	SC_F3:          VK_F3,
	SC_F4:          VK_F4,
	SC_F5:          VK_F5,
	SC_F6:          VK_F6,
	SC_F7:          VK_F7,
	SC_F8:          VK_F8,
	SC_F9:          VK_F9,
	SC_F10:         VK_F10,
	SC_F11:         VK_F11,
	SC_F12:         VK_F12,
	SC_ESCAPE:      VK_ESCAPE,
	SC_RETURN:      VK_RETURN,
	SC_BACKSPACE:   VK_BACKSPACE,
	SC_TAB:         VK_TAB,
	SC_LSHIFT:      VK_LSHIFT,
	SC_RSHIFT:      VK_RSHIFT,
	SC_LCTRL:       VK_LCTRL,
	SC_RCTRL:       VK_RCTRL,
	SC_LALT:        VK_LALT,
	SC_RALT:        VK_RALT,
	SC_LGUI:        VK_LGUI,
	SC_RGUI:        VK_RGUI,
	SC_UP:          VK_UP,
	SC_DOWN:        VK_DOWN,
	SC_LEFT:        VK_LEFT,
	SC_RIGHT:       VK_RIGHT,
	SC_HOME:        VK_HOME,
	SC_END:         VK_END,
	SC_PAGEUP:      VK_PAGEUP,
	SC_PAGEDOWN:    VK_PAGEDOWN,
	SC_INSERT:      VK_INSERT,
	SC_DELETE:      VK_DELETE,
	SC_CAPSLOCK:    VK_CAPSLOCK,
}

func (USLayout) VirtualKey(sc Scancode, mods KeyMod) VirtualKey {
	if sc >= SC_A && sc <= SC_Z {
		if mods.upper() {
			return VK_A + VirtualKey(sc-SC_A)
		}
		return VK_a + VirtualKey(sc-SC_A)
	}
	if pair, ok := usShifted[sc]; ok {
		if mods.shift() {
			return pair[1]
		}
		return pair[0]
	}
	return usFixed[sc]
}

// LayoutByName selects a layout from configuration.
func LayoutByName(name string) (KeyboardLayout, error) {
	switch strings.ToLower(name) {
	case "", "us":
		return USLayout{}, nil
	case "de":
		return DELayout{}, nil
	}
	return nil, fmt.Errorf("unknown keyboard layout %q", name)
}

// LayoutByID maps the host's keyboard layout number.
func LayoutByID(id byte) (KeyboardLayout, bool) {
	switch id {
	case 1:
		return USLayout{}, true
	case 2:
		return DELayout{}, true
	}
	return nil, false
}

// vkSymbols lists the virtual keys whose ASCII value is not a letter or
// digit.
var vkSymbols = map[VirtualKey]byte{
	VK_SPACE:        ' ',
	VK_KP_PERIOD:    '.',
	VK_KP_DIVIDE:    '/',
	VK_KP_MULTIPLY:  '*',
	VK_KP_MINUS:     '-',
	VK_KP_PLUS:      '+',
	VK_KP_ENTER:     0x0D,
	VK_QUESTION:     '?',
	VK_EXCLAIM:      '!',
	VK_QUOTE:        '\'',
	VK_COLON:        ':',
	VK_SEMICOLON:    ';',
	VK_COMMA:        ',',
	VK_PERIOD:       '.',
	VK_SLASH:        '/',
	VK_BACKSLASH:    '\\',
	VK_UNDERSCORE:   '_',
	VK_MINUS:        '-',
	VK_PLUS:         '+',
	VK_EQUALS:       '=',
	VK_LEFTBRACKET:  '[',
	VK_RIGHTBRACKET: ']',
	VK_LEFTPAREN:    '(',
	VK_RIGHTPAREN:   ')',
	VK_LEFTBRACE:    '{',
	VK_RIGHTBRACE:   '}',
	VK_LESS:         '<',
	VK_GREATER:      '>',
	VK_ASTERISK:     '*',
	VK_CARET:        '^',
	VK_PERCENT:      '%',
	VK_DOLLAR:       '$',
	VK_POUND:        0xA3,
	VK_EURO:         0xAC,
	VK_AT:           '@',
	VK_HASH:         '#',
	VK_AMPERSAND:    '&',
	VK_QUOTEDBL:     '"',
	VK_TILDE:        '~',
	VK_VERTICALBAR:  '|',
	VK_GRAVEACCENT:  '`',
	VK_RETURN:       0x0D,
	VK_ESCAPE:       0x1B,
	VK_LEFT:         0x08,
	VK_TAB:          0x09,
	VK_RIGHT:        0x15,
	VK_DOWN:         0x0A,
	VK_UP:           0x0B,
	VK_BACKSPACE:    0x7F,
}

var vkASCII, asciiVK = buildKeyTables()

// buildKeyTables returns the VK to ASCII table and its reverse. The
// reverse prefers main keyboard keys over keypad keys.
func buildKeyTables() ([VK_LAST]byte, map[byte]VirtualKey) {
	var table [VK_LAST]byte
	for i := 0; i < 10; i++ {
		table[VK_0+VirtualKey(i)] = '0' + byte(i)
		table[VK_KP_0+VirtualKey(i)] = '0' + byte(i)
	}
	for i := 0; i < 26; i++ {
		table[VK_a+VirtualKey(i)] = 'a' + byte(i)
		table[VK_A+VirtualKey(i)] = 'A' + byte(i)
	}
	for vk, b := range vkSymbols {
		table[vk] = b
	}

	reverse := make(map[byte]VirtualKey)
	for vk := VK_LAST - 1; vk > VK_NONE; vk-- {
		b := table[vk]
		if b == 0 || isKeypadKey(vk) {
			continue
		}
		reverse[b] = vk
	}
	return table, reverse
}

func isKeypadKey(vk VirtualKey) bool {
	switch vk {
	case VK_KP_PERIOD, VK_KP_DIVIDE, VK_KP_MULTIPLY, VK_KP_MINUS, VK_KP_PLUS, VK_KP_ENTER:
		return true
	}
	return vk >= VK_KP_0 && vk <= VK_KP_9
}

func VirtualKeyToASCII(vk VirtualKey) byte {
	if vk >= VK_LAST {
		return 0
	}
	return vkASCII[vk]
}

// VirtualKeyForASCII is used when only the typed character is known.
func VirtualKeyForASCII(b byte) VirtualKey {
	return asciiVK[b]
}
