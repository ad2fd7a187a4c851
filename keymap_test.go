package main

import "testing"

func TestUSLayout_LettersAndShift(t *testing.T) {
	us := USLayout{}
	cases := []struct {
		sc   Scancode
		mods KeyMod
		want VirtualKey
	}{
		{SC_A, 0, VK_a},
		{SC_A, MOD_SHIFT, VK_A},
		{SC_Z, MOD_CAPS, VK_Z},
		{SC_1, MOD_SHIFT, VK_EXCLAIM},
		{SC_SLASH, 0, VK_SLASH},
		{SC_SLASH, MOD_SHIFT, VK_QUESTION},
		{SC_RETURN, MOD_SHIFT, VK_RETURN},
		{SC_NONE, 0, VK_NONE},
	}
	for _, tc := range cases {
		if got := us.VirtualKey(tc.sc, tc.mods); got != tc.want {
			t.Fatalf("scancode %d mods %02X: got %d, want %d", tc.sc, tc.mods, got, tc.want)
		}
	}
}

func TestDELayout_Differences(t *testing.T) {
	de := DELayout{}
	cases := []struct {
		sc   Scancode
		mods KeyMod
		want VirtualKey
	}{
		{SC_Y, 0, VK_z},
		{SC_Z, 0, VK_y},
		{SC_Z, MOD_SHIFT, VK_Y},
		{SC_Q, MOD_RALT, VK_AT},
		{SC_E, MOD_LALT, VK_EURO},
		{SC_7, MOD_SHIFT, VK_SLASH},
		{SC_MINUS, 0, VK_ESZETT},
		{SC_SEMICOLON, 0, VK_UMLAUT_o},
		{SC_A, 0, VK_a},
		{SC_F1, 0, VK_F1},
	}
	for _, tc := range cases {
		if got := de.VirtualKey(tc.sc, tc.mods); got != tc.want {
			t.Fatalf("scancode %d mods %02X: got %d, want %d", tc.sc, tc.mods, got, tc.want)
		}
	}
}

func TestLayoutByName(t *testing.T) {
	for name, want := range map[string]string{"": "us", "US": "us", "de": "de"} {
		l, err := LayoutByName(name)
		if err != nil || l.Name() != want {
			t.Fatalf("LayoutByName(%q) = %v, %v", name, l, err)
		}
	}
	if _, err := LayoutByName("fr"); err == nil {
		t.Fatal("expected error for an unknown layout")
	}
}

func TestLayoutByID(t *testing.T) {
	if l, ok := LayoutByID(2); !ok || l.Name() != "de" {
		t.Fatal("layout 2 should be German")
	}
	if _, ok := LayoutByID(9); ok {
		t.Fatal("layout 9 should be unknown")
	}
}

func TestVirtualKeyToASCII(t *testing.T) {
	cases := map[VirtualKey]byte{
		VK_a:         'a',
		VK_Z:         'Z',
		VK_7:         '7',
		VK_KP_3:      '3',
		VK_RETURN:    0x0D,
		VK_BACKSPACE: 0x7F,
		VK_AT:        '@',
		VK_F1:        0,
		VK_LAST:      0,
	}
	for vk, want := range cases {
		if got := VirtualKeyToASCII(vk); got != want {
			t.Fatalf("VK %d: got 0x%02X, want 0x%02X", vk, got, want)
		}
	}
}

func TestVirtualKeyForASCII_PrefersMainKeyboard(t *testing.T) {
	cases := map[byte]VirtualKey{
		'3':  VK_3,
		'.':  VK_PERIOD,
		'*':  VK_ASTERISK,
		0x0D: VK_RETURN,
		'q':  VK_q,
		'Q':  VK_Q,
	}
	for b, want := range cases {
		if got := VirtualKeyForASCII(b); got != want {
			t.Fatalf("0x%02X: got %d, want %d", b, got, want)
		}
	}
}
