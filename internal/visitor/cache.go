// Package visitor holds the visitor-id store: a get/set string cache read
// before every sink write and written once when a session first touches the
// sink. It replaces the original global browser-local cache with an
// explicit collaborator passed at construction.
package visitor

import (
	"context"
	"errors"
	"sync"
)

var ErrNotFound = errors.New("visitor id not found")

// Cache maps a session key to its visitor id.
type Cache interface {
	Get(ctx context.Context, sessionID string) (string, error)
	Set(ctx context.Context, sessionID, visitorID string) error
}

// MemoryCache is the in-process implementation for single-node runs.
type MemoryCache struct {
	mu  sync.RWMutex
	ids map[string]string
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{ids: make(map[string]string)}
}

func (c *MemoryCache) Get(_ context.Context, sessionID string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.ids[sessionID]
	if !ok {
		return "", ErrNotFound
	}
	return id, nil
}

func (c *MemoryCache) Set(_ context.Context, sessionID, visitorID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ids[sessionID] = visitorID
	return nil
}
