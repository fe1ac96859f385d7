package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/simaogato/advisordesk-backend/internal/domain"
)

// Store is an in-process domain.DocumentStore used for local runs and tests.
// WithinTx restores a snapshot when fn fails; concurrent writers outside the
// transaction are not isolated from it.
type Store struct {
	mu   sync.RWMutex
	docs map[domain.Kind]map[string]domain.Document
	now  func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		docs: make(map[domain.Kind]map[string]domain.Document),
		now:  time.Now,
	}
}

func (s *Store) List(_ context.Context, kind domain.Kind, ownerID string) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Document, 0, len(s.docs[kind]))
	for _, doc := range s.docs[kind] {
		if ownerID != "" && doc.OwnerID != ownerID {
			continue
		}
		out = append(out, cloneDoc(doc))
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) Get(_ context.Context, kind domain.Kind, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[kind][id]
	if !ok {
		return nil, nil
	}
	doc = cloneDoc(doc)
	return &doc, nil
}

func (s *Store) Put(_ context.Context, kind domain.Kind, doc domain.Document) (domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.docs[kind] == nil {
		s.docs[kind] = make(map[string]domain.Document)
	}
	doc = cloneDoc(doc)
	doc.UpdatedAt = s.now().UTC()
	s.docs[kind][doc.ID] = doc
	return cloneDoc(doc), nil
}

func (s *Store) Delete(_ context.Context, kind domain.Kind, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[kind][id]; !ok {
		return false, nil
	}
	delete(s.docs[kind], id)
	return true, nil
}

// WithinTx runs fn and rolls every kind back to its prior state if fn fails
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	snapshot := s.snapshot()
	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.docs = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) snapshot() map[domain.Kind]map[string]domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make(map[domain.Kind]map[string]domain.Document, len(s.docs))
	for kind, docs := range s.docs {
		inner := make(map[string]domain.Document, len(docs))
		for id, doc := range docs {
			inner[id] = doc
		}
		copied[kind] = inner
	}
	return copied
}

// cloneDoc copies the body so callers never alias stored bytes
func cloneDoc(doc domain.Document) domain.Document {
	if doc.Body != nil {
		doc.Body = append([]byte(nil), doc.Body...)
	}
	return doc
}

var (
	_ domain.DocumentStore = (*Store)(nil)
	_ domain.Transactor    = (*Store)(nil)
)
