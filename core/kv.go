package core

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
)

// ErrKeyNotFound is returned by Store.Get when no document exists under the key.
var ErrKeyNotFound = errors.New("key not found")

// Store is a persistent mapping from string key to one JSON document.
// It is the only query mechanism in the system: listing is a linear scan of
// keys sharing a prefix, filtered in memory by the callers.
//
// There is no transaction spanning multiple keys; multi-document updates are
// independently-observable writes and every caller must treat them as such.
type Store interface {
	// Get unmarshals the document stored under key into dst.
	Get(ctx context.Context, key string, dst interface{}) error
	// Set marshals doc and stores it under key, overwriting any previous
	// document. No partial merge happens at this layer.
	Set(ctx context.Context, key string, doc interface{}) error
	// Delete removes the document under key. Deleting an absent key is not
	// an error.
	Delete(ctx context.Context, key string) error
	// GetByPrefix returns the raw documents of all keys starting with
	// prefix, in unspecified order. Callers sort where order matters.
	GetByPrefix(ctx context.Context, prefix string) ([]json.RawMessage, error)

	Close() error
}
