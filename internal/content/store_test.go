package content

import (
	"errors"
	"sort"
	"testing"
)

func TestInMemoryStore_GetSetDocument(t *testing.T) {
	store := NewInMemoryStore()

	if _, ok := store.GetDocument(HomeDocument); ok {
		t.Error("expected not found for empty store")
	}

	store.SetDocument(Document{Name: HomeDocument, Body: []byte(`{}`)})
	got, ok := store.GetDocument(HomeDocument)
	if !ok || string(got.Body) != `{}` {
		t.Errorf("GetDocument: ok=%v body=%q", ok, got.Body)
	}

	store.DeleteDocument(HomeDocument)
	if _, ok := store.GetDocument(HomeDocument); ok {
		t.Error("expected document to be deleted")
	}
}

func TestInMemoryStore_ListDocumentNames(t *testing.T) {
	store := NewInMemoryStore()
	store.SetDocument(Document{Name: NavbarDocument})
	store.SetDocument(Document{Name: HomeDocument})

	names := store.ListDocumentNames()
	sort.Strings(names)
	if len(names) != 2 || names[0] != HomeDocument || names[1] != NavbarDocument {
		t.Errorf("ListDocumentNames: got %v", names)
	}
}

func TestInMemoryRepository_Load(t *testing.T) {
	repo := NewInMemoryRepository()
	reads := 0
	read := func() ([]byte, error) {
		reads++
		return []byte(`{"page":"home"}`), nil
	}

	t.Run("miss_reads", func(t *testing.T) {
		body, err := repo.Load(HomeDocument, read)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if string(body) != `{"page":"home"}` || reads != 1 {
			t.Errorf("body=%q reads=%d", body, reads)
		}
	})

	t.Run("hit_does_not_read", func(t *testing.T) {
		if _, err := repo.Load(HomeDocument, read); err != nil {
			t.Fatal(err)
		}
		if reads != 1 {
			t.Errorf("expected cached read, reads=%d", reads)
		}
	})

	t.Run("invalidate_forces_read", func(t *testing.T) {
		repo.Invalidate(HomeDocument)
		if _, err := repo.Load(HomeDocument, read); err != nil {
			t.Fatal(err)
		}
		if reads != 2 {
			t.Errorf("expected second read, reads=%d", reads)
		}
	})
}

func TestInMemoryRepository_Load_errorNotCached(t *testing.T) {
	repo := NewInMemoryRepository()
	boom := errors.New("boom")

	if _, err := repo.Load(NavbarDocument, func() ([]byte, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if got := repo.Cached(); len(got) != 0 {
		t.Errorf("failed read should not be cached, got %v", got)
	}
}

func TestNewInMemoryRepositoryWithStore(t *testing.T) {
	store := NewInMemoryStore()
	store.SetDocument(Document{Name: ServicesDocument, Body: []byte(`{"services":{}}`)})
	repo := NewInMemoryRepositoryWithStore(store)

	body, err := repo.Load(ServicesDocument, func() ([]byte, error) {
		t.Fatal("read should not be called for a pre-populated store")
		return nil, nil
	})
	if err != nil || string(body) != `{"services":{}}` {
		t.Errorf("Load: body=%q err=%v", body, err)
	}
	if got := repo.Cached(); len(got) != 1 || got[0] != ServicesDocument {
		t.Errorf("Cached: got %v", got)
	}
}
