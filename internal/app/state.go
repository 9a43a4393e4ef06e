package app

import (
	"sync"
)

// State owns the selection set shared by rescaling and splitting. Only the
// select actions mutate it; operations read a copy.
type State struct {
	mu        sync.RWMutex
	selection []string
}

func NewState() *State {
	return &State{}
}

// Select replaces the selection.
func (s *State) Select(paths []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = nil
	s.addLocked(paths)
}

// Add appends paths that are not selected yet.
func (s *State) Add(paths ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addLocked(paths)
}

func (s *State) addLocked(paths []string) {
	for _, p := range paths {
		if s.containsLocked(p) {
			continue
		}
		s.selection = append(s.selection, p)
	}
}

func (s *State) containsLocked(path string) bool {
	for _, p := range s.selection {
		if p == path {
			return true
		}
	}
	return false
}

func (s *State) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = nil
}

func (s *State) Selection() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.selection))
	copy(out, s.selection)
	return out
}

func (s *State) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.selection)
}
