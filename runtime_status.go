package main

import "sync"

// runtimeStatusSnapshot is what the front ends show in their status line.
// The VDP publishes it once per presented frame.
type runtimeStatusSnapshot struct {
	mode      int
	width     int
	height    int
	terminal  bool
	pagedMode bool
	paging    PagingState
	busy      [TONE_CHANNELS]bool
	vsync     uint64
	layout    string
	link      string
	audio     string
}

type runtimeStatusStore struct {
	mu sync.RWMutex
	runtimeStatusSnapshot
}

// set replaces the VDP fields and keeps the backend names.
func (s *runtimeStatusStore) set(snap runtimeStatusSnapshot) {
	s.mu.Lock()
	snap.link = s.link
	snap.audio = s.audio
	s.runtimeStatusSnapshot = snap
	s.mu.Unlock()
}

func (s *runtimeStatusStore) setBackends(link, audio string) {
	s.mu.Lock()
	s.link = link
	s.audio = audio
	s.mu.Unlock()
}

func (s *runtimeStatusStore) snapshot() runtimeStatusSnapshot {
	s.mu.RLock()
	snap := s.runtimeStatusSnapshot
	s.mu.RUnlock()
	return snap
}

var runtimeStatus = &runtimeStatusStore{}
