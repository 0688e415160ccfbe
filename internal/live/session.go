package live

import (
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"oakwood-site/internal/carousel"
	"oakwood-site/internal/content"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64

	// EventRate and EventBurst bound how fast one browser may send
	// interaction, jump and unrecognised events.
	EventRate  = 20
	EventBurst = 40
)

// PageKey identifies the hero a session drives.
type PageKey struct {
	Page string
	Slug string
}

func (k PageKey) String() string {
	if k.Slug == "" {
		return k.Page
	}
	return k.Page + "/" + k.Slug
}

// Session couples one browser connection with one carousel controller.
type Session struct {
	ID  string
	Key PageKey

	conn       *websocket.Conn
	surface    *RemoteSurface
	controller *carousel.Controller
	limiter    *rate.Limiter
	send       chan Command
	done       chan struct{}
	closeOnce  sync.Once
	dropped    atomic.Int64
	log        *slog.Logger
}

func newSession(conn *websocket.Conn, key PageKey, opts carousel.Options, log *slog.Logger) *Session {
	s := &Session{
		ID:      uuid.NewString(),
		Key:     key,
		conn:    conn,
		limiter: rate.NewLimiter(EventRate, EventBurst),
		send:    make(chan Command, sendBuffer),
		done:    make(chan struct{}),
	}
	s.log = log.With("session_id", s.ID, "page", key.String())
	opts.Logger = s.log
	s.surface = NewRemoteSurface(s.enqueue)
	s.controller = carousel.NewController(s.surface, opts)
	return s
}

// Activate (re)starts playback with clips.
func (s *Session) Activate(clips content.ClipList) {
	s.controller.Activate(carousel.ClipSequence(clips))
}

// Clips returns the clip list the session is playing.
func (s *Session) Clips() carousel.ClipSequence {
	return s.controller.Clips()
}

// State returns the controller's current state.
func (s *Session) State() carousel.State {
	return s.controller.State()
}

// Dropped returns how many events were discarded by the rate limiter.
func (s *Session) Dropped() int64 {
	return s.dropped.Load()
}

// Close disconnects the browser. It is safe to call more than once and from
// within controller callbacks.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.conn.Close()
	})
}

// Done is closed once the session is closed.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) enqueue(cmd Command) {
	select {
	case <-s.done:
	case s.send <- cmd:
	default:
		s.log.Warn("carousel send buffer full, closing session")
		s.Close()
	}
}

// run pumps messages until the connection ends, then tears down the controller.
func (s *Session) run() {
	go s.writePump()
	s.readPump()

	s.Close()
	s.controller.Deactivate()
	s.surface.Close()
	if n := s.Dropped(); n > 0 {
		s.log.Info("carousel session dropped events", "count", n)
	}
}

func (s *Session) readPump() {
	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				s.log.Warn("carousel read error", "error", err)
			}
			return
		}

		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			s.log.Debug("ignoring malformed carousel event", "error", err)
			continue
		}
		// Media events bypass the limiter: a lost ready leaves no timer armed.
		if !isMediaEvent(ev.Type) && !s.limiter.Allow() {
			s.dropped.Add(1)
			continue
		}
		s.handle(ev)
	}
}

func isMediaEvent(typ string) bool {
	switch typ {
	case EventReady, EventEnded, EventState, EventPlayResult:
		return true
	}
	return false
}

func (s *Session) handle(ev Event) {
	if s.surface.Dispatch(ev) {
		return
	}
	switch ev.Type {
	case EventInteraction:
		s.controller.OnUserInteraction()
	case EventJump:
		if ev.Index != nil {
			s.controller.JumpTo(*ev.Index)
		}
	default:
		s.log.Debug("ignoring unknown carousel event", "type", ev.Type)
	}
}

func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case cmd := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(cmd); err != nil {
				s.log.Debug("carousel write failed", "error", err)
				s.Close()
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.Close()
				return
			}
		}
	}
}
