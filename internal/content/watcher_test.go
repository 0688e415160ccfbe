package content

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"oakwood-site/internal/platform/logger"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type docRecorder struct {
	mu   sync.Mutex
	docs []string
}

func (r *docRecorder) record(d Document) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs = append(r.docs, d.Name)
}

func (r *docRecorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.docs...)
}

func TestWatcher_reloadsOnWrite(t *testing.T) {
	dir := newFixtureDir(t)
	p := NewProvider(dir, logger.Discard())
	ctx := context.Background()

	svc, err := p.Service(ctx, "modern-work")
	require.NoError(t, err)
	require.Equal(t, "Modern Work", svc.Title)

	w := NewWatcher(p, logger.Discard())
	w.debounce = 10 * time.Millisecond
	rec := &docRecorder{}
	w.Subscribe(rec.record)
	require.NoError(t, w.Start())
	defer w.Close()

	writeDoc(t, dir, ServicesDocument, `{"services":{"modern-work":{"title":"Updated"}}}`)

	require.Eventually(t, func() bool {
		for _, n := range rec.names() {
			if n == ServicesDocument {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)

	svc, err = p.Service(ctx, "modern-work")
	require.NoError(t, err)
	assert.Equal(t, "Updated", svc.Title)
}

func TestWatcher_ignoresUnrelatedFiles(t *testing.T) {
	dir := newFixtureDir(t)
	w := NewWatcher(NewProvider(dir, logger.Discard()), logger.Discard())
	w.debounce = 10 * time.Millisecond
	rec := &docRecorder{}
	w.Subscribe(rec.record)
	require.NoError(t, w.Start())
	defer w.Close()

	writeDoc(t, dir, "notes.txt", "hello")
	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, rec.names())
}

func TestWatcher_unsubscribe(t *testing.T) {
	dir := newFixtureDir(t)
	w := NewWatcher(NewProvider(dir, logger.Discard()), logger.Discard())
	w.debounce = 10 * time.Millisecond

	gone := &docRecorder{}
	stay := &docRecorder{}
	unsubscribe := w.Subscribe(gone.record)
	w.Subscribe(stay.record)
	unsubscribe()

	require.NoError(t, w.Start())
	defer w.Close()

	writeDoc(t, dir, NavbarDocument, `{"menuItems":[]}`)
	require.Eventually(t, func() bool { return len(stay.names()) > 0 }, 2*time.Second, 10*time.Millisecond)
	assert.Empty(t, gone.names())
}

func TestWatcher_Close(t *testing.T) {
	w := NewWatcher(NewProvider(t.TempDir(), logger.Discard()), logger.Discard())
	assert.Error(t, w.Close(), "closing an unstarted watcher")

	require.NoError(t, w.Start())
	assert.NoError(t, w.Close())
}

func TestWatcher_Start_missingDir(t *testing.T) {
	w := NewWatcher(NewProvider("/does/not/exist", logger.Discard()), logger.Discard())
	assert.Error(t, w.Start())
}
