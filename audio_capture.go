// audio_capture.go - WAV recording of the synthesized output

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
	"io"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

const WAV_PRECISION = 2 // bytes per sample

// AudioCapture records every generated sample and writes them out as a
// mono 16-bit WAV file.
type AudioCapture struct {
	*ClockedPlayer
	sampleRate int

	mu      sync.Mutex
	samples []float32
}

func NewAudioCapture(sampleRate int) *AudioCapture {
	c := &AudioCapture{sampleRate: sampleRate}
	c.ClockedPlayer = NewClockedPlayer(sampleRate, c.record)
	return c
}

func (c *AudioCapture) record(buf []float32) {
	c.mu.Lock()
	c.samples = append(c.samples, buf...)
	c.mu.Unlock()
}

func (c *AudioCapture) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.samples)
}

// WriteWAV encodes everything captured so far.
func (c *AudioCapture) WriteWAV(w io.WriteSeeker) error {
	c.mu.Lock()
	samples := append([]float32(nil), c.samples...)
	c.mu.Unlock()

	pos := 0
	stream := beep.StreamerFunc(func(buf [][2]float64) (int, bool) {
		if pos >= len(samples) {
			return 0, false
		}
		n := copy2(buf, samples[pos:])
		pos += n
		return n, true
	})
	format := beep.Format{
		SampleRate:  beep.SampleRate(c.sampleRate),
		NumChannels: 1,
		Precision:   WAV_PRECISION,
	}
	if err := wav.Encode(w, stream, format); err != nil {
		return &AudioError{Operation: "capture", Details: "wav encode", Err: err}
	}
	return nil
}

// copy2 widens mono samples into beep's stereo frames.
func copy2(dst [][2]float64, src []float32) int {
	n := min(len(dst), len(src))
	for i := range n {
		s := float64(src[i])
		dst[i] = [2]float64{s, s}
	}
	return n
}
