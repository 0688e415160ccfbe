package content

import (
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the bursts of events editors emit for one save.
const DefaultDebounce = 100 * time.Millisecond

var watchedDocuments = map[string]bool{
	HomeDocument:     true,
	NavbarDocument:   true,
	ServicesDocument: true,
}

// Watcher invalidates cached documents when their files change and tells
// subscribers which document was reloaded.
type Watcher struct {
	provider *Provider
	log      *slog.Logger
	debounce time.Duration

	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	pending map[string]*time.Timer
	subs    map[int]func(Document)
	nextSub int
	done    chan struct{}
}

// NewWatcher returns a Watcher for the provider's content directory.
func NewWatcher(p *Provider, log *slog.Logger) *Watcher {
	return &Watcher{
		provider: p,
		log:      log.With("component", "content_watcher"),
		debounce: DefaultDebounce,
		pending:  make(map[string]*time.Timer),
		subs:     make(map[int]func(Document)),
	}
}

// Subscribe registers fn for reload notifications. fn runs on the watcher's
// timer goroutine and must not block.
func (w *Watcher) Subscribe(fn func(Document)) (unsubscribe func()) {
	w.mu.Lock()
	id := w.nextSub
	w.nextSub++
	w.subs[id] = fn
	w.mu.Unlock()

	return func() {
		w.mu.Lock()
		delete(w.subs, id)
		w.mu.Unlock()
	}
}

// Start begins watching the content directory.
func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(w.provider.Dir()); err != nil {
		fsw.Close()
		return err
	}

	w.mu.Lock()
	w.fsw = fsw
	w.done = make(chan struct{})
	w.mu.Unlock()

	w.log.Info("watching content directory", "dir", w.provider.Dir())
	go w.loop(fsw, w.done)
	return nil
}

func (w *Watcher) loop(fsw *fsnotify.Watcher, done chan struct{}) {
	defer close(done)
	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			name := filepath.Base(event.Name)
			if !watchedDocuments[name] {
				continue
			}
			w.schedule(name)
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.log.Error("content watcher error", "error", err)
		}
	}
}

func (w *Watcher) schedule(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fsw == nil {
		return
	}
	if t, ok := w.pending[name]; ok {
		t.Reset(w.debounce)
		return
	}
	w.pending[name] = time.AfterFunc(w.debounce, func() { w.reload(name) })
}

func (w *Watcher) reload(name string) {
	w.mu.Lock()
	delete(w.pending, name)
	if w.fsw == nil {
		w.mu.Unlock()
		return
	}
	subs := make([]func(Document), 0, len(w.subs))
	for _, fn := range w.subs {
		subs = append(subs, fn)
	}
	w.mu.Unlock()

	w.provider.Invalidate(name)
	w.log.Info("content reloaded", "document", name)

	doc := Document{Name: name, LoadedAt: time.Now().UTC()}
	for _, fn := range subs {
		fn(doc)
	}
}

// Close stops watching and cancels pending reloads.
func (w *Watcher) Close() error {
	w.mu.Lock()
	fsw, done := w.fsw, w.done
	w.fsw = nil
	for name, t := range w.pending {
		t.Stop()
		delete(w.pending, name)
	}
	w.mu.Unlock()

	if fsw == nil {
		return errors.New("watcher not started")
	}
	err := fsw.Close()
	<-done
	return err
}
