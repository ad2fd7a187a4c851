// audio_clocked.go - Wall-clock sample pump for outputs without a device

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
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

const AUDIO_CLOCK_INTERVAL = 10 * time.Millisecond

// AudioError provides detailed error context for audio operations
type AudioError struct {
	Operation string
	Details   string
	Err       error
}

func (e *AudioError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("audio %s failed: %s: %v", e.Operation, e.Details, e.Err)
	}
	return fmt.Sprintf("audio %s failed: %s", e.Operation, e.Details)
}

func (e *AudioError) Unwrap() error {
	return e.Err
}

// AudioOutput is implemented by every sample consumer.
type AudioOutput interface {
	SetupPlayer(gen *ToneGenerator)
	Start()
	Stop()
	Close()
	IsStarted() bool
}

// ClockedPlayer pulls samples from the generator at the real sample rate
// on its own goroutine and hands them to sink, which may be nil.
type ClockedPlayer struct {
	sampleRate int
	gen        atomic.Pointer[ToneGenerator]
	sink       func([]float32)
	buf        []float32

	mutex   sync.Mutex
	stop    chan struct{}
	wg      sync.WaitGroup
	started bool
}

func NewClockedPlayer(sampleRate int, sink func([]float32)) *ClockedPlayer {
	if sampleRate <= 0 {
		sampleRate = SAMPLE_RATE
	}
	return &ClockedPlayer{
		sampleRate: sampleRate,
		sink:       sink,
		buf:        make([]float32, max(sampleRate*int(AUDIO_CLOCK_INTERVAL)/int(time.Second), 1)),
	}
}

func (cp *ClockedPlayer) SetupPlayer(gen *ToneGenerator) {
	cp.gen.Store(gen)
}

// Pump generates n samples synchronously. Only one goroutine may pump.
func (cp *ClockedPlayer) Pump(n int) {
	gen := cp.gen.Load()
	if gen == nil {
		return
	}
	for n > 0 {
		chunk := cp.buf[:min(n, len(cp.buf))]
		gen.Generate(chunk)
		if cp.sink != nil {
			cp.sink(chunk)
		}
		n -= len(chunk)
	}
}

func (cp *ClockedPlayer) Start() {
	cp.mutex.Lock()
	defer cp.mutex.Unlock()
	if cp.started {
		return
	}
	cp.started = true
	cp.stop = make(chan struct{})
	cp.wg.Add(1)
	go cp.run(cp.stop)
}

func (cp *ClockedPlayer) run(stop <-chan struct{}) {
	defer cp.wg.Done()
	ticker := time.NewTicker(AUDIO_CLOCK_INTERVAL)
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			// Catch up on late ticks so the sample clock tracks wall time.
			n := int(now.Sub(last) * time.Duration(cp.sampleRate) / time.Second)
			if n > 0 {
				cp.Pump(n)
				last = last.Add(time.Duration(n) * time.Second / time.Duration(cp.sampleRate))
			}
		}
	}
}

func (cp *ClockedPlayer) Stop() {
	cp.mutex.Lock()
	if !cp.started {
		cp.mutex.Unlock()
		return
	}
	cp.started = false
	close(cp.stop)
	cp.mutex.Unlock()
	cp.wg.Wait()
}

func (cp *ClockedPlayer) Close() {
	cp.Stop()
}

func (cp *ClockedPlayer) IsStarted() bool {
	cp.mutex.Lock()
	defer cp.mutex.Unlock()
	return cp.started
}
