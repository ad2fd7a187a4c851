//go:build !headless

package main

import "testing"

func TestKeyboardInput_EbitenImplements(t *testing.T) {
	eo := &EbitenOutput{}
	if _, ok := any(eo).(KeyInputCapable); !ok {
		t.Fatal("expected EbitenOutput to implement KeyInputCapable")
	}
	if _, ok := any(eo).(ClosableOutput); !ok {
		t.Fatal("expected EbitenOutput to implement ClosableOutput")
	}
	if _, ok := any(eo).(SnapshotCapable); !ok {
		t.Fatal("expected EbitenOutput to implement SnapshotCapable")
	}
}
