package main

import (
	"math"
	"testing"
)

func TestToneChannels_BusyUntilDurationElapses(t *testing.T) {
	tc := NewToneChannels(1000)
	gen := tc.Generator()
	if !tc.StartTone(ToneRequest{Channel: 0, Waveform: WAVE_SQUARE, Volume: 255, Frequency: 100, Duration: 10}) {
		t.Fatal("idle channel refused a tone")
	}
	if !tc.Busy(0) {
		t.Fatal("channel not busy after StartTone")
	}
	if tc.StartTone(ToneRequest{Channel: 0, Volume: 255, Frequency: 100, Duration: 10}) {
		t.Fatal("busy channel accepted a second tone")
	}

	buf := make([]float32, 5)
	gen.Generate(buf)
	if !tc.Busy(0) {
		t.Fatal("channel released halfway through the tone")
	}
	gen.Generate(buf)
	if tc.Busy(0) {
		t.Fatal("channel still busy after ten samples")
	}
	if !tc.StartTone(ToneRequest{Channel: 0, Volume: 255, Frequency: 100, Duration: 10}) {
		t.Fatal("released channel refused a tone")
	}
}

func TestToneChannels_ZeroDurationDoesNotOccupy(t *testing.T) {
	tc := NewToneChannels(1000)
	if !tc.StartTone(ToneRequest{Channel: 1, Volume: 100, Frequency: 440}) {
		t.Fatal("zero duration tone refused")
	}
	if tc.Busy(1) {
		t.Fatal("zero duration tone occupied the channel")
	}
}

func TestToneChannels_ShortToneCompletesOnAccept(t *testing.T) {
	tc := NewToneChannels(500)
	if !tc.StartTone(ToneRequest{Channel: 2, Volume: 100, Frequency: 440, Duration: 1}) {
		t.Fatal("tone refused")
	}
	tc.Generator().Generate(make([]float32, 1))
	if tc.Busy(2) {
		t.Fatal("tone shorter than one sample kept the channel busy")
	}
}

func TestToneChannels_InvalidChannel(t *testing.T) {
	tc := NewToneChannels(1000)
	if tc.StartTone(ToneRequest{Channel: TONE_CHANNELS, Duration: 10}) {
		t.Fatal("tone accepted on a channel past the last")
	}
	if tc.Busy(-1) || tc.Busy(TONE_CHANNELS) {
		t.Fatal("out of range channel reported busy")
	}
}

func TestToneGenerator_SquareWaveLevels(t *testing.T) {
	tc := NewToneChannels(1000)
	tc.StartTone(ToneRequest{Channel: 0, Waveform: WAVE_SQUARE, Volume: 255, Frequency: 100, Duration: 10})
	buf := make([]float32, 12)
	tc.Generator().Generate(buf)

	peak := float32(0.5 * TONE_MAX_VOLUME)
	for i := range 5 {
		if math.Abs(float64(buf[i]-peak)) > 1e-6 {
			t.Fatalf("sample %d: expected %f, got %f", i, peak, buf[i])
		}
	}
	for i := 5; i < 10; i++ {
		if math.Abs(float64(buf[i]+peak)) > 1e-6 {
			t.Fatalf("sample %d: expected %f, got %f", i, -peak, buf[i])
		}
	}
	if buf[10] != 0 || buf[11] != 0 {
		t.Fatal("samples after the tone ended were not silent")
	}
}

func TestToneGenerator_ChannelsMix(t *testing.T) {
	tc := NewToneChannels(1000)
	for ch := range uint8(2) {
		tc.StartTone(ToneRequest{Channel: ch, Waveform: WAVE_SQUARE, Volume: 255, Frequency: 100, Duration: 5})
	}
	buf := make([]float32, 1)
	tc.Generator().Generate(buf)
	want := float32(2 * 0.5 * TONE_MAX_VOLUME)
	if math.Abs(float64(buf[0]-want)) > 1e-6 {
		t.Fatalf("expected mixed sample %f, got %f", want, buf[0])
	}
}

func TestToneGenerator_WaveformsStayInRange(t *testing.T) {
	for _, wave := range []uint8{WAVE_SAWTOOTH, WAVE_TRIANGLE, WAVE_SQUARE, WAVE_SINE, WAVE_NOISE} {
		tc := NewToneChannels(8000)
		tc.StartTone(ToneRequest{Channel: 0, Waveform: wave, Volume: 255, Frequency: 440, Duration: 50})
		buf := make([]float32, 400)
		tc.Generator().Generate(buf)
		limit := float32(0.5*TONE_MAX_VOLUME) + 1e-6
		nonZero := false
		for i, s := range buf {
			if s > limit || s < -limit {
				t.Fatalf("waveform %d sample %d out of range: %f", wave, i, s)
			}
			if s != 0 {
				nonZero = true
			}
		}
		if !nonZero {
			t.Fatalf("waveform %d produced silence", wave)
		}
	}
}
