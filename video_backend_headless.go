package main

import (
	"sync"
	"sync/atomic"
	"time"
)

// HeadlessVideoOutput keeps the last frame in memory. It backs the
// headless build, scripted hosts and tests.
type HeadlessVideoOutput struct {
	mu          sync.Mutex
	started     bool
	config      DisplayConfig
	frame       []byte
	frameCount  atomic.Uint64
	refreshRate int
}

func NewHeadlessOutput() *HeadlessVideoOutput {
	return &HeadlessVideoOutput{refreshRate: 60}
}

func (h *HeadlessVideoOutput) Start() error {
	h.mu.Lock()
	h.started = true
	h.mu.Unlock()
	return nil
}

func (h *HeadlessVideoOutput) Stop() error {
	h.mu.Lock()
	h.started = false
	h.mu.Unlock()
	return nil
}

func (h *HeadlessVideoOutput) Close() error {
	return h.Stop()
}

func (h *HeadlessVideoOutput) IsStarted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.started
}

func (h *HeadlessVideoOutput) SetDisplayConfig(config DisplayConfig) error {
	h.mu.Lock()
	h.config = config
	if config.RefreshRate > 0 {
		h.refreshRate = config.RefreshRate
	}
	h.mu.Unlock()
	return nil
}

func (h *HeadlessVideoOutput) GetDisplayConfig() DisplayConfig {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.config
}

func (h *HeadlessVideoOutput) UpdateFrame(buffer []byte) error {
	h.mu.Lock()
	h.frame = append(h.frame[:0], buffer...)
	h.mu.Unlock()
	h.frameCount.Add(1)
	return nil
}

func (h *HeadlessVideoOutput) WaitForVSync() error {
	return nil
}

func (h *HeadlessVideoOutput) GetFrameCount() uint64 {
	return h.frameCount.Load()
}

func (h *HeadlessVideoOutput) GetRefreshRate() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.refreshRate == 0 {
		return 60
	}
	return h.refreshRate
}

func (h *HeadlessVideoOutput) GetSnapshot() (FrameSnapshot, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return FrameSnapshot{
		Buffer:    append([]byte(nil), h.frame...),
		Width:     h.config.Width,
		Height:    h.config.Height,
		Format:    PixelFormatRGBA,
		Timestamp: time.Now(),
	}, nil
}
