// vdp_packets.go - Response packet framing between VDP and host

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

import "fmt"

// Outbound packet codes. On the wire the code has bit 7 set.
const (
	PACKET_GENERAL_POLL = 0x00
	PACKET_KEYCODE      = 0x01
	PACKET_CURSOR       = 0x02
	PACKET_SCREEN_CHAR  = 0x03
	PACKET_SCREEN_PIXEL = 0x04
	PACKET_AUDIO        = 0x05
	PACKET_MODE         = 0x06
	PACKET_RTC          = 0x07
	PACKET_KEY_STATE    = 0x08

	PACKET_FLAG = 0x80
)

type Packet struct {
	Code    byte
	Payload []byte
}

// EncodePacket frames payload as [code|0x80, len, payload...].
func EncodePacket(code byte, payload ...byte) []byte {
	if len(payload) > 0xFF {
		panic(fmt.Sprintf("packet 0x%02X payload too long: %d", code, len(payload)))
	}
	out := make([]byte, 0, len(payload)+2)
	out = append(out, code|PACKET_FLAG, byte(len(payload)))
	return append(out, payload...)
}

func (p Packet) Encode() []byte {
	return EncodePacket(p.Code, p.Payload...)
}

// ReadPacket decodes one packet from next. Bytes without the packet flag
// are rejected.
func ReadPacket(next func() (byte, error)) (Packet, error) {
	head, err := next()
	if err != nil {
		return Packet{}, err
	}
	if head&PACKET_FLAG == 0 {
		return Packet{}, fmt.Errorf("byte 0x%02X is not a packet header", head)
	}
	n, err := next()
	if err != nil {
		return Packet{}, err
	}
	p := Packet{Code: head &^ PACKET_FLAG, Payload: make([]byte, n)}
	for i := range p.Payload {
		if p.Payload[i], err = next(); err != nil {
			return Packet{}, err
		}
	}
	return p, nil
}
