package carousel

import (
	"sync"
)

// fakeSurface records every call the controller makes and lets tests
// resolve play requests by hand.
type fakeSurface struct {
	mu           sync.Mutex
	loads        []string
	muted        bool
	paused       bool
	plays        []func(error)
	onReady      func()
	onEnded      func()
	subscribes   int
	unsubscribes int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{paused: true}
}

func (s *fakeSurface) Load(source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads = append(s.loads, source)
	s.paused = true
}

func (s *fakeSurface) RequestPlay(onResult func(error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plays = append(s.plays, onResult)
}

func (s *fakeSurface) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

func (s *fakeSurface) SetMuted(muted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = muted
}

func (s *fakeSurface) Subscribe(onReady, onEnded func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onReady = onReady
	s.onEnded = onEnded
	s.subscribes++
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.onReady = nil
		s.onEnded = nil
		s.unsubscribes++
	}
}

// resolvePlay settles the i-th play request. A nil error also flips the
// surface into the playing state, like a media element would.
func (s *fakeSurface) resolvePlay(i int, err error) {
	s.mu.Lock()
	cb := s.plays[i]
	if err == nil {
		s.paused = false
	}
	s.mu.Unlock()
	cb(err)
}

func (s *fakeSurface) loadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.loads)
}

func (s *fakeSurface) lastLoad() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.loads) == 0 {
		return ""
	}
	return s.loads[len(s.loads)-1]
}

func (s *fakeSurface) playCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.plays)
}

func (s *fakeSurface) isMuted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

func (s *fakeSurface) subscribed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.onReady != nil
}

type countingRecorder struct {
	mu       sync.Mutex
	advances map[string]int
	outcomes map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{
		advances: make(map[string]int),
		outcomes: make(map[string]int),
	}
}

func (r *countingRecorder) RecordAdvance(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.advances[reason]++
}

func (r *countingRecorder) RecordPlayOutcome(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes[outcome]++
}

func (r *countingRecorder) advance(reason string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.advances[reason]
}

func (r *countingRecorder) outcome(outcome string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outcomes[outcome]
}
