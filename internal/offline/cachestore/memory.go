package cachestore

import (
	"context"
	"net/http"
	"sync"

	"github.com/dmitrijs2005/agrilink/internal/common"
	"github.com/dmitrijs2005/agrilink/internal/offline"
)

// MemoryStorage keeps caches in maps guarded by a RWMutex. Entries are
// copied on the way in and out.
type MemoryStorage struct {
	mu     sync.RWMutex
	order  []string
	caches map[string]map[string]offline.Entry
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{caches: make(map[string]map[string]offline.Entry)}
}

func (s *MemoryStorage) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(make([]string, 0, len(s.order)), s.order...), nil
}

func (s *MemoryStorage) PutAll(_ context.Context, cache string, entries []offline.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.caches[cache]
	if !ok {
		c = make(map[string]offline.Entry, len(entries))
		s.caches[cache] = c
		s.order = append(s.order, cache)
	}
	for _, e := range entries {
		c[e.Key] = copyEntry(e)
	}
	return nil
}

func (s *MemoryStorage) Match(_ context.Context, cache, key string) (*offline.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.caches[cache][key]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := copyEntry(e)
	return &cp, nil
}

func (s *MemoryStorage) Delete(_ context.Context, cache string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.caches[cache]; !ok {
		return false, nil
	}
	delete(s.caches, cache)
	for i, name := range s.order {
		if name == cache {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func copyEntry(e offline.Entry) offline.Entry {
	var h http.Header
	if e.Header != nil {
		h = e.Header.Clone()
	}
	return offline.Entry{
		Key:    e.Key,
		Status: e.Status,
		Header: h,
		Body:   append([]byte(nil), e.Body...),
	}
}
