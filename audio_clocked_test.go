package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestClockedPlayer_PumpFeedsSink(t *testing.T) {
	tc := NewToneChannels(1000)
	var got int
	cp := NewClockedPlayer(1000, func(buf []float32) { got += len(buf) })
	cp.Pump(100)
	if got != 0 {
		t.Fatal("Pump without a generator fed the sink")
	}
	cp.SetupPlayer(tc.Generator())
	cp.Pump(25)
	if got != 25 {
		t.Fatalf("expected 25 samples, got %d", got)
	}
}

func TestClockedPlayer_PumpReleasesChannels(t *testing.T) {
	tc := NewToneChannels(1000)
	cp := NewClockedPlayer(1000, nil)
	cp.SetupPlayer(tc.Generator())
	tc.StartTone(ToneRequest{Channel: 1, Volume: 10, Frequency: 200, Duration: 30})
	cp.Pump(30)
	if tc.Busy(1) {
		t.Fatal("channel busy after its duration was pumped")
	}
}

func TestClockedPlayer_StartStop(t *testing.T) {
	cp := NewClockedPlayer(8000, nil)
	cp.SetupPlayer(NewToneChannels(8000).Generator())
	cp.Start()
	cp.Start()
	if !cp.IsStarted() {
		t.Fatal("player not started")
	}
	time.Sleep(3 * AUDIO_CLOCK_INTERVAL)
	cp.Stop()
	if cp.IsStarted() {
		t.Fatal("player still started after Stop")
	}
	cp.Close()
}

func TestClockedPlayer_ClockAdvancesTones(t *testing.T) {
	tc := NewToneChannels(8000)
	cp := NewClockedPlayer(8000, nil)
	cp.SetupPlayer(tc.Generator())
	tc.StartTone(ToneRequest{Channel: 0, Volume: 10, Frequency: 200, Duration: 20})
	cp.Start()
	defer cp.Stop()
	waitFor(t, 2*time.Second, func() bool { return !tc.Busy(0) })
}

func TestAudioCapture_WritesWAV(t *testing.T) {
	tc := NewToneChannels(8000)
	capture := NewAudioCapture(8000)
	capture.SetupPlayer(tc.Generator())
	tc.StartTone(ToneRequest{Channel: 0, Waveform: WAVE_SINE, Volume: 200, Frequency: 440, Duration: 10})
	capture.Pump(160)
	if capture.Len() != 160 {
		t.Fatalf("expected 160 captured samples, got %d", capture.Len())
	}

	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := capture.WriteWAV(f); err != nil {
		t.Fatalf("WriteWAV failed: %v", err)
	}
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 44+160*WAV_PRECISION {
		t.Fatalf("wav too short: %d bytes", len(data))
	}
	if !bytes.Equal(data[0:4], []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WAVE")) {
		t.Fatalf("missing RIFF/WAVE header: % X", data[:12])
	}
}

func TestAudioError_Unwrap(t *testing.T) {
	base := errors.New("device gone")
	err := &AudioError{Operation: "start", Details: "oto", Err: base}
	if !errors.Is(err, base) {
		t.Fatal("AudioError does not unwrap")
	}
	if err.Error() != "audio start failed: oto: device gone" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
