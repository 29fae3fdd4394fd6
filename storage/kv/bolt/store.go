// Package boltkv implements core.Store on a single-file bbolt database.
package boltkv

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.etcd.io/bbolt"

	"github.com/tutorpad/tutorpad/core"
)

var bucketName = []byte("documents")

type store struct {
	db *bbolt.DB
}

var _ core.Store = (*store)(nil)

// Open opens (or creates) the database file and its documents bucket.
func Open(path string) (core.Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, "creating store directory")
	}

	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, errors.Wrap(err, "opening store")
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "creating bucket")
	}
	return &store{db: db}, nil
}

func (s *store) Get(_ context.Context, key string, dst interface{}) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketName).Get([]byte(key))
		if v == nil {
			return core.ErrKeyNotFound
		}
		return errors.Wrap(json.Unmarshal(v, dst), "decoding document")
	})
}

func (s *store) Set(_ context.Context, key string, doc interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "encoding document")
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), data)
	})
}

func (s *store) Delete(_ context.Context, key string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Delete([]byte(key))
	})
}

func (s *store) GetByPrefix(_ context.Context, prefix string) ([]json.RawMessage, error) {
	var docs []json.RawMessage
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketName).Cursor()
		p := []byte(prefix)
		for k, v := c.Seek(p); k != nil && bytes.HasPrefix(k, p); k, v = c.Next() {
			doc := make(json.RawMessage, len(v))
			copy(doc, v)
			docs = append(docs, doc)
		}
		return nil
	})
	return docs, err
}

func (s *store) Close() error {
	return s.db.Close()
}
