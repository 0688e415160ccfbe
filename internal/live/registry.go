package live

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"

	"oakwood-site/internal/carousel"
	"oakwood-site/internal/content"
)

// reloadTimeout bounds the clip lookups of one content reload.
const reloadTimeout = 30 * time.Second

// ClipSource resolves the hero clips for a page.
type ClipSource interface {
	Clips(ctx context.Context, page, slug string) (content.ClipList, error)
}

// Options configures a Registry.
type Options struct {
	Clock    clockwork.Clock
	Interval time.Duration
	Recorder carousel.Recorder
	// OnCount receives the number of open sessions whenever it changes.
	OnCount func(n int)
	Logger  *slog.Logger
}

// Registry tracks the open carousel sessions.
type Registry struct {
	clips ClipSource
	opts  Options
	log   *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool
	wg       sync.WaitGroup

	reloadMu sync.Mutex
	reloads  sync.WaitGroup
}

// NewRegistry returns an empty Registry.
func NewRegistry(clips ClipSource, opts Options) *Registry {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Registry{
		clips:    clips,
		opts:     opts,
		log:      log.With("component", "live"),
		sessions: make(map[string]*Session),
	}
}

// Count returns the number of open sessions.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sessions returns the open sessions for key.
func (r *Registry) Sessions(key PageKey) []*Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Session
	for _, s := range r.sessions {
		if s.Key == key {
			out = append(out, s)
		}
	}
	return out
}

// Serve runs a session on conn until the browser disconnects.
func (r *Registry) Serve(conn *websocket.Conn, key PageKey, clips content.ClipList) {
	s := newSession(conn, key, carousel.Options{
		Clock:    r.opts.Clock,
		Interval: r.opts.Interval,
		Recorder: r.opts.Recorder,
	}, r.log)

	r.add(s)
	defer r.remove(s)

	s.log.Info("carousel session opened", "clips", len(clips))
	s.Activate(clips)
	s.run()
	s.log.Info("carousel session closed")
}

func (r *Registry) add(s *Session) {
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.wg.Add(1)
	n := len(r.sessions)
	r.mu.Unlock()
	r.report(n)
}

func (r *Registry) remove(s *Session) {
	r.mu.Lock()
	delete(r.sessions, s.ID)
	n := len(r.sessions)
	r.mu.Unlock()
	r.wg.Done()
	r.report(n)
}

func (r *Registry) report(n int) {
	if r.opts.OnCount != nil {
		r.opts.OnCount(n)
	}
}

// Reload re-activates every session whose clips come from doc and whose
// clip list changed. It is meant to be subscribed to the content watcher:
// the work runs on its own goroutine so the watcher is never blocked by an
// upstream fetch.
func (r *Registry) Reload(doc content.Document) {
	var page string
	switch doc.Name {
	case content.HomeDocument:
		page = content.PageHome
	case content.ServicesDocument:
		page = content.PageService
	default:
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.reloads.Add(1)
	go func() {
		defer r.reloads.Done()
		r.reload(page)
	}()
}

func (r *Registry) reload(page string) {
	// One reload at a time; each reads the current content.
	r.reloadMu.Lock()
	defer r.reloadMu.Unlock()

	r.mu.Lock()
	affected := make(map[PageKey][]*Session)
	for _, s := range r.sessions {
		if s.Key.Page == page {
			affected[s.Key] = append(affected[s.Key], s)
		}
	}
	r.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
	defer cancel()
	for key, sessions := range affected {
		clips, err := r.clips.Clips(ctx, key.Page, key.Slug)
		if err != nil {
			// The page no longer has a hero; stop its carousels.
			r.log.Warn("clips unavailable after reload", "page", key.String(), "error", err)
			clips = nil
		}
		reset := 0
		for _, s := range sessions {
			if slices.Equal(s.Clips(), carousel.ClipSequence(clips)) {
				continue
			}
			s.Activate(clips)
			reset++
		}
		r.log.Info("carousel sessions reloaded", "page", key.String(), "sessions", len(sessions), "reset", reset, "clips", len(clips))
	}
}

// CloseAll disconnects every session and waits for them to finish.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	r.closed = true
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.mu.Unlock()

	r.reloads.Wait()
	for _, s := range sessions {
		s.Close()
	}
	r.wg.Wait()
}
