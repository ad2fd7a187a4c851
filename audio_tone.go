// audio_tone.go - Three-channel tone synthesizer for Quark VDP

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

import "math"

const (
	SAMPLE_RATE      = 44100
	TONE_CHANNELS    = 3
	TONE_QUEUE_DEPTH = 16
	TONE_MAX_VOLUME  = 0.6 // full-scale volume per channel
)

// Waveform selectors accepted by the audio command.
const (
	WAVE_SAWTOOTH = iota
	WAVE_TRIANGLE
	WAVE_SQUARE
	WAVE_SINE
	WAVE_NOISE
)

type ToneRequest struct {
	Channel   uint8
	Waveform  uint8
	Volume    uint8
	Frequency int // Hz
	Duration  int // milliseconds
}

// waveformState belongs to the audio goroutine.
type waveformState struct {
	period    float32 // samples per cycle, 0 for silence
	phase     float32 // position within the cycle in samples
	volume    float32
	remaining int // samples left; 0 when idle
	waveform  uint8
	noise     uint16 // 15-bit LFSR
	noiseBit  float32
}

// ToneGenerator is the real-time half of the synthesizer. Generate is
// the only method the audio goroutine calls.
type ToneGenerator struct {
	sampleRate int
	requests   *spscRing[ToneRequest]
	completed  *spscRing[uint8]
	channels   [TONE_CHANNELS]waveformState
}

// ToneChannels is the command half. It tracks which channels are busy
// from the completion signals it has seen.
type ToneChannels struct {
	requests  *spscRing[ToneRequest]
	completed *spscRing[uint8]
	busy      [TONE_CHANNELS]bool
	generator *ToneGenerator
}

func NewToneChannels(sampleRate int) *ToneChannels {
	if sampleRate <= 0 {
		sampleRate = SAMPLE_RATE
	}
	requests := newSPSCRing[ToneRequest](TONE_QUEUE_DEPTH)
	completed := newSPSCRing[uint8](TONE_QUEUE_DEPTH)
	return &ToneChannels{
		requests:  requests,
		completed: completed,
		generator: &ToneGenerator{
			sampleRate: sampleRate,
			requests:   requests,
			completed:  completed,
		},
	}
}

func (tc *ToneChannels) Generator() *ToneGenerator {
	return tc.generator
}

// StartTone queues a tone. Busy channels refuse; zero duration is accepted
// without occupying the channel.
func (tc *ToneChannels) StartTone(req ToneRequest) bool {
	tc.drainCompleted()
	if int(req.Channel) >= TONE_CHANNELS || tc.busy[req.Channel] {
		return false
	}
	if req.Duration <= 0 {
		return true
	}
	if !tc.requests.Push(req) {
		return false
	}
	tc.busy[req.Channel] = true
	return true
}

func (tc *ToneChannels) drainCompleted() {
	for {
		ch, ok := tc.completed.Pop()
		if !ok {
			return
		}
		if int(ch) < TONE_CHANNELS {
			tc.busy[ch] = false
		}
	}
}

// Busy reports the channel state after consuming pending completions.
func (tc *ToneChannels) Busy(channel int) bool {
	tc.drainCompleted()
	return channel >= 0 && channel < TONE_CHANNELS && tc.busy[channel]
}

func (g *ToneGenerator) SampleRate() int {
	return g.sampleRate
}

func (g *ToneGenerator) accept() {
	for {
		req, ok := g.requests.Pop()
		if !ok {
			return
		}
		ch := &g.channels[req.Channel]
		ch.period = 0
		if req.Frequency > 0 {
			ch.period = float32(g.sampleRate) / float32(req.Frequency)
		}
		ch.phase = 0
		ch.volume = float32(req.Volume) * (TONE_MAX_VOLUME / 255.0)
		ch.remaining = req.Duration * g.sampleRate / 1000
		ch.waveform = req.Waveform
		if ch.noise == 0 {
			ch.noise = 1
		}
		ch.noiseBit = 0.5
		if ch.remaining <= 0 {
			ch.remaining = 0
			g.completed.Push(req.Channel)
		}
	}
}

// Generate fills out with mixed samples. It does not block or allocate.
func (g *ToneGenerator) Generate(out []float32) {
	g.accept()
	for i := range out {
		var sample float32
		for n := range g.channels {
			ch := &g.channels[n]
			if ch.remaining <= 0 {
				continue
			}
			sample += ch.next()
			ch.remaining--
			if ch.remaining == 0 {
				g.completed.Push(uint8(n))
			}
		}
		out[i] = sample
	}
}

func (ch *waveformState) next() float32 {
	if ch.period <= 0 {
		return 0
	}
	x := ch.phase / ch.period
	var v float32
	switch ch.waveform {
	case WAVE_TRIANGLE:
		v = 0.5 - 2*float32(math.Abs(float64(x-0.5)))
	case WAVE_SQUARE:
		v = 0.5
		if x >= 0.5 {
			v = -0.5
		}
	case WAVE_SINE:
		v = 0.5 * float32(math.Sin(2*math.Pi*float64(x)))
	case WAVE_NOISE:
		v = ch.noiseBit
	default:
		v = x - 0.5
	}

	ch.phase++
	if ch.phase >= ch.period {
		ch.phase -= ch.period
		if ch.waveform == WAVE_NOISE {
			bit := (ch.noise ^ ch.noise>>1) & 1
			ch.noise = ch.noise>>1 | bit<<14
			ch.noiseBit = 0.5
			if ch.noise&1 == 0 {
				ch.noiseBit = -0.5
			}
		}
	}
	return v * ch.volume
}
