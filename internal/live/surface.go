package live

import (
	"sync"

	"oakwood-site/internal/carousel"
)

type listener struct {
	onReady func()
	onEnded func()
}

// RemoteSurface is a carousel.MediaSurface backed by a <video> element in a
// connected browser. Commands go out through send; browser events come back
// through Dispatch.
type RemoteSurface struct {
	send func(Command)

	mu        sync.Mutex
	paused    bool
	nextID    uint64
	pending   map[uint64]func(error)
	listeners map[int]listener
	nextSub   int
	closed    bool
}

var _ carousel.MediaSurface = (*RemoteSurface)(nil)

// NewRemoteSurface returns a surface that emits commands through send.
// send must not block.
func NewRemoteSurface(send func(Command)) *RemoteSurface {
	return &RemoteSurface{
		send:      send,
		paused:    true,
		pending:   make(map[uint64]func(error)),
		listeners: make(map[int]listener),
	}
}

// Load implements carousel.MediaSurface.
func (s *RemoteSurface) Load(source string) {
	s.mu.Lock()
	s.paused = true
	closed := s.closed
	s.mu.Unlock()
	if !closed {
		s.send(Command{Cmd: CmdLoad, Src: source})
	}
}

// RequestPlay implements carousel.MediaSurface. onResult runs when the
// browser reports the matching play-result.
func (s *RemoteSurface) RequestPlay(onResult func(error)) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.nextID++
	id := s.nextID
	s.pending[id] = onResult
	s.mu.Unlock()

	s.send(Command{Cmd: CmdPlay, ID: id})
}

// Paused implements carousel.MediaSurface.
func (s *RemoteSurface) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// SetMuted implements carousel.MediaSurface.
func (s *RemoteSurface) SetMuted(muted bool) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if !closed {
		s.send(Command{Cmd: CmdMute, Muted: &muted})
	}
}

// Subscribe implements carousel.MediaSurface.
func (s *RemoteSurface) Subscribe(onReady, onEnded func()) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = listener{onReady: onReady, onEnded: onEnded}
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Dispatch applies a media event from the browser. It reports false for
// event types the surface does not handle.
func (s *RemoteSurface) Dispatch(ev Event) bool {
	switch ev.Type {
	case EventReady:
		for _, l := range s.snapshot() {
			if l.onReady != nil {
				l.onReady()
			}
		}
	case EventEnded:
		s.setPaused(true)
		for _, l := range s.snapshot() {
			if l.onEnded != nil {
				l.onEnded()
			}
		}
	case EventState:
		if ev.Paused != nil {
			s.setPaused(*ev.Paused)
		}
	case EventPlayResult:
		s.mu.Lock()
		cb, ok := s.pending[ev.ID]
		delete(s.pending, ev.ID)
		if ok && ev.Error == "" {
			s.paused = false
		}
		s.mu.Unlock()
		if ok {
			cb(carousel.ClassifyDOMError(ev.Error, ev.Message))
		}
	default:
		return false
	}
	return true
}

// Close resolves outstanding play requests as aborted and stops emitting commands.
func (s *RemoteSurface) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	pending := s.pending
	s.pending = make(map[uint64]func(error))
	s.mu.Unlock()

	for _, cb := range pending {
		cb(carousel.ErrLoadAborted)
	}
}

func (s *RemoteSurface) setPaused(p bool) {
	s.mu.Lock()
	s.paused = p
	s.mu.Unlock()
}

func (s *RemoteSurface) snapshot() []listener {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		out = append(out, l)
	}
	return out
}
