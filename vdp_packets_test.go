package main

import (
	"bytes"
	"testing"
)

func byteReader(raw []byte) func() (byte, error) {
	return func() (byte, error) {
		if len(raw) == 0 {
			return 0, ErrLinkClosed
		}
		b := raw[0]
		raw = raw[1:]
		return b, nil
	}
}

func TestEncodePacket_Framing(t *testing.T) {
	got := EncodePacket(PACKET_CURSOR, 5, 7)
	want := []byte{0x82, 2, 5, 7}
	if !bytes.Equal(got, want) {
		t.Fatalf("expected % X, got % X", want, got)
	}
	if got := EncodePacket(PACKET_GENERAL_POLL); !bytes.Equal(got, []byte{0x80, 0}) {
		t.Fatalf("empty payload framed as % X", got)
	}
}

func TestEncodePacket_PanicsOnOversizedPayload(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for a 256 byte payload")
		}
	}()
	EncodePacket(PACKET_AUDIO, make([]byte, 256)...)
}

func TestReadPacket_DecodesStream(t *testing.T) {
	stream := cat(EncodePacket(PACKET_AUDIO, 1, 1), EncodePacket(PACKET_RTC, 1, 2, 3))
	next := byteReader(stream)

	p, err := ReadPacket(next)
	if err != nil || p.Code != PACKET_AUDIO || !bytes.Equal(p.Payload, []byte{1, 1}) {
		t.Fatalf("first packet %+v, err %v", p, err)
	}
	p, err = ReadPacket(next)
	if err != nil || p.Code != PACKET_RTC || len(p.Payload) != 3 {
		t.Fatalf("second packet %+v, err %v", p, err)
	}
	if !bytes.Equal(p.Encode(), EncodePacket(PACKET_RTC, 1, 2, 3)) {
		t.Fatal("Encode does not reproduce the wire form")
	}
}

func TestReadPacket_RejectsBareByte(t *testing.T) {
	if _, err := ReadPacket(byteReader([]byte{0x05, 0})); err == nil {
		t.Fatal("expected error for a byte without the packet flag")
	}
}

func TestReadPacket_TruncatedPayload(t *testing.T) {
	if _, err := ReadPacket(byteReader([]byte{0x86, 7, 1, 2})); err == nil {
		t.Fatal("expected error for a short payload")
	}
}
