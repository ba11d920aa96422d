package sink

import (
	"context"
	"sync"
)

// MemorySink is an in-process sink used in tests and single-node runs
// without a MongoDB deployment.
type MemorySink struct {
	mu   sync.RWMutex
	docs map[string]Document
}

func NewMemorySink() *MemorySink {
	return &MemorySink{docs: make(map[string]Document)}
}

func (s *MemorySink) Write(_ context.Context, visitorID string, doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.docs[visitorID]
	if !ok {
		existing = Document{}
		s.docs[visitorID] = existing
	}
	for k, v := range doc {
		existing[k] = v
	}
	return nil
}

// VisitorIDs lists visitors with a stored document.
func (s *MemorySink) VisitorIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	return ids
}

// Document returns a copy of the stored document for a visitor.
func (s *MemorySink) Document(visitorID string) (Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[visitorID]
	if !ok {
		return nil, false
	}
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out, true
}
