package content

import (
	"sort"
	"sync"
	"time"
)

// Repository defines the concurrency-safe contract for the document cache.
type Repository interface {
	// Load returns the cached body for name, calling read to populate the
	// cache on a miss. Failed reads are not cached.
	Load(name string, read func() ([]byte, error)) ([]byte, error)

	// Invalidate drops the cached body for name. Unknown names are a no-op.
	Invalidate(name string)

	// Cached returns the sorted names currently held in the cache.
	Cached() []string
}

// InMemoryRepository is a concurrency-safe Repository backed by a Store.
type InMemoryRepository struct {
	mu    sync.RWMutex
	store Store
}

// NewInMemoryRepository constructs a repository with a default in-memory store.
func NewInMemoryRepository() *InMemoryRepository {
	return NewInMemoryRepositoryWithStore(NewInMemoryStore())
}

// NewInMemoryRepositoryWithStore constructs a repository that uses the given Store.
func NewInMemoryRepositoryWithStore(store Store) *InMemoryRepository {
	return &InMemoryRepository{store: store}
}

// Load implements Repository.Load.
func (r *InMemoryRepository) Load(name string, read func() ([]byte, error)) ([]byte, error) {
	r.mu.RLock()
	doc, ok := r.store.GetDocument(name)
	r.mu.RUnlock()
	if ok {
		return doc.Body, nil
	}

	body, err := read()
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// A concurrent reader may have won; keep the first body stored.
	if doc, ok := r.store.GetDocument(name); ok {
		return doc.Body, nil
	}
	r.store.SetDocument(Document{Name: name, Body: body, LoadedAt: time.Now().UTC()})
	return body, nil
}

// Invalidate implements Repository.Invalidate.
func (r *InMemoryRepository) Invalidate(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store.DeleteDocument(name)
}

// Cached implements Repository.Cached.
func (r *InMemoryRepository) Cached() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := r.store.ListDocumentNames()
	sort.Strings(names)
	return names
}
