package content

import "time"

// Document is the raw body of one content file as last read from disk.
type Document struct {
	Name     string
	Body     []byte
	LoadedAt time.Time
}

// Store is the persistence abstraction for cached documents.
// The Repository uses Store for all reads and writes; callers of Repository
// do not need to know which Store is used.
type Store interface {
	GetDocument(name string) (Document, bool)
	SetDocument(doc Document)
	DeleteDocument(name string)
	ListDocumentNames() []string
}

// InMemoryStore is an in-memory implementation of Store.
type InMemoryStore struct {
	docs map[string]Document
}

// NewInMemoryStore returns a new empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{docs: make(map[string]Document)}
}

// GetDocument implements Store.GetDocument.
func (s *InMemoryStore) GetDocument(name string) (Document, bool) {
	d, ok := s.docs[name]
	return d, ok
}

// SetDocument implements Store.SetDocument.
func (s *InMemoryStore) SetDocument(doc Document) {
	s.docs[doc.Name] = doc
}

// DeleteDocument implements Store.DeleteDocument.
func (s *InMemoryStore) DeleteDocument(name string) {
	delete(s.docs, name)
}

// ListDocumentNames implements Store.ListDocumentNames.
func (s *InMemoryStore) ListDocumentNames() []string {
	names := make([]string, 0, len(s.docs))
	for n := range s.docs {
		names = append(names, n)
	}
	return names
}
