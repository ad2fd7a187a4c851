package main

import "testing"

func TestKeyboard_ResolveScancode(t *testing.T) {
	kb := NewKeyboard(nil)
	vk, ascii := kb.Resolve(KeyEvent{Scancode: SC_B, Mods: MOD_SHIFT})
	if vk != VK_B || ascii != 'B' {
		t.Fatalf("expected VK_B/'B', got %d/%q", vk, ascii)
	}

	kb.SetLayout(DELayout{})
	vk, ascii = kb.Resolve(KeyEvent{Scancode: SC_Y})
	if vk != VK_z || ascii != 'z' {
		t.Fatalf("German layout: expected VK_z/'z', got %d/%q", vk, ascii)
	}
	kb.SetLayout(nil)
	if kb.Layout().Name() != "de" {
		t.Fatal("SetLayout(nil) replaced the layout")
	}
}

func TestKeyboard_ResolveCharacterOnly(t *testing.T) {
	kb := NewKeyboard(USLayout{})
	vk, ascii := kb.Resolve(KeyEvent{Char: '?'})
	if vk != VK_QUESTION || ascii != '?' {
		t.Fatalf("expected VK_QUESTION/'?', got %d/%q", vk, ascii)
	}
}

func TestTypeText_PressAndRelease(t *testing.T) {
	var events []KeyEvent
	TypeText([]byte("Hi\n"), func(ev KeyEvent) { events = append(events, ev) })
	if len(events) != 6 {
		t.Fatalf("expected 6 events, got %d", len(events))
	}
	if events[0].Char != 'H' || events[0].Mods != MOD_SHIFT || !events[0].Down || events[1].Down {
		t.Fatalf("unexpected events for H: %+v %+v", events[0], events[1])
	}
	if events[2].Mods != 0 {
		t.Fatal("lower case letter carried shift")
	}
	if events[4].Char != '\r' {
		t.Fatalf("newline should type as CR, got 0x%02X", events[4].Char)
	}
}
