// Package inmemkv implements core.Store on a mutex-guarded map. It backs
// tests and local development; nothing survives a restart.
package inmemkv

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/tutorpad/tutorpad/core"
)

type store struct {
	mutex sync.RWMutex
	table map[string][]byte
}

var _ core.Store = (*store)(nil)

func Open() core.Store {
	return &store{table: make(map[string][]byte)}
}

func (s *store) Get(_ context.Context, key string, dst interface{}) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	v, ok := s.table[key]
	if !ok {
		return core.ErrKeyNotFound
	}
	return errors.Wrap(json.Unmarshal(v, dst), "decoding document")
}

func (s *store) Set(_ context.Context, key string, doc interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "encoding document")
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.table[key] = data
	return nil
}

func (s *store) Delete(_ context.Context, key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.table, key)
	return nil
}

func (s *store) GetByPrefix(_ context.Context, prefix string) ([]json.RawMessage, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var docs []json.RawMessage
	for k, v := range s.table {
		if strings.HasPrefix(k, prefix) {
			doc := make(json.RawMessage, len(v))
			copy(doc, v)
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (s *store) Close() error { return nil }
