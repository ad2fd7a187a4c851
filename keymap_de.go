// keymap_de.go - German keyboard layout

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

// DELayout overrides the keys that differ on a German keyboard and falls
// back to USLayout for the rest.
type DELayout struct{}

func (DELayout) Name() string { return "de" }

func pick(cond bool, yes, no VirtualKey) VirtualKey {
	if cond {
		return yes
	}
	return no
}

func (DELayout) VirtualKey(sc Scancode, mods KeyMod) VirtualKey {
	shift, upper, alt := mods.shift(), mods.upper(), mods.alt()

	switch sc {
	case SC_GRAVE:
		return pick(shift, VK_DEGREE, VK_CARET)
	case SC_MINUS:
		return pick(alt, VK_BACKSLASH, pick(shift, VK_QUESTION, VK_ESZETT))
	case SC_EQUALS:
		return VK_ACUTEACCENT
	case SC_LEFTBRACKET:
		return VK_UMLAUT_u
	case SC_RIGHTBRACKET:
		return pick(alt, VK_TILDE, pick(shift, VK_ASTERISK, VK_PLUS))
	case SC_SEMICOLON:
		return VK_UMLAUT_o
	case SC_APOSTROPHE:
		return VK_UMLAUT_a
	case SC_BACKSLASH:
		return pick(shift, VK_QUOTE, VK_HASH)
	case SC_NONUS_BACKSLASH:
		return pick(alt, VK_VERTICALBAR, pick(shift, VK_GREATER, VK_LESS))
	case SC_SLASH:
		return pick(shift, VK_UNDERSCORE, VK_MINUS)
	case SC_PERIOD:
		return pick(shift, VK_COLON, VK_PERIOD)
	case SC_COMMA:
		return pick(shift, VK_SEMICOLON, VK_COMMA)
	case SC_Y:
		return pick(upper, VK_Z, VK_z)
	case SC_Z:
		return pick(upper, VK_Y, VK_y)
	case SC_E:
		return pick(alt, VK_EURO, pick(upper, VK_E, VK_e))
	case SC_Q:
		return pick(alt, VK_AT, pick(upper, VK_Q, VK_q))
	case SC_2:
		return pick(shift, VK_QUOTEDBL, VK_2)
	case SC_3:
		return pick(shift, VK_SECTION, VK_3)
	case SC_6:
		return pick(shift, VK_AMPERSAND, VK_6)
	case SC_7:
		return pick(alt, VK_LEFTBRACE, pick(shift, VK_SLASH, VK_7))
	case SC_8:
		return pick(alt, VK_LEFTBRACKET, pick(shift, VK_LEFTPAREN, VK_8))
	case SC_9:
		return pick(alt, VK_RIGHTBRACKET, pick(shift, VK_RIGHTPAREN, VK_9))
	case SC_0:
		return pick(alt, VK_RIGHTBRACE, pick(shift, VK_EQUALS, VK_0))
	}
	return USLayout{}.VirtualKey(sc, mods)
}
