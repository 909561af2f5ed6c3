// Package boltstore persists vault records in a local bbolt database.
// It implements both store.MasterStore and store.AccountStore: the
// master secret lives as a single JSON record under a fixed key, and
// accounts live in their own bucket keyed by public identifier.
package boltstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/quantumpurse/keyvault-go/store"
)

var (
	masterBucket  = []byte("master_secret")
	accountBucket = []byte("accounts")
	masterKey     = []byte("master")
)

// Store is a bbolt-backed vault store. It is safe for concurrent use;
// bbolt serializes writers internally.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the database file and its buckets.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open vault database: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(masterBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(accountBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create buckets: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// GetMaster implements store.MasterStore.
func (s *Store) GetMaster(ctx context.Context) (*store.CipherPayload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var payload *store.CipherPayload
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(masterBucket).Get(masterKey)
		if raw == nil {
			return store.ErrNotFound
		}
		payload = &store.CipherPayload{}
		return json.Unmarshal(raw, payload)
	})
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// PutMaster implements store.MasterStore, overwriting any existing
// record.
func (s *Store) PutMaster(ctx context.Context, payload store.CipherPayload) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(masterBucket).Put(masterKey, raw)
	})
}

// Get implements store.AccountStore.
func (s *Store) Get(ctx context.Context, publicIdentifier string) (*store.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var account *store.Account
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(accountBucket).Get([]byte(publicIdentifier))
		if raw == nil {
			return store.ErrNotFound
		}
		account = &store.Account{}
		return json.Unmarshal(raw, account)
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// Append implements store.AccountStore. The index is assigned inside
// the write transaction, so concurrent appends cannot race it.
func (s *Store) Append(ctx context.Context, account store.Account) (uint32, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var index uint32
	err := s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(accountBucket)
		key := []byte(account.PublicIdentifier)

		if raw := bucket.Get(key); raw != nil {
			var existing store.Account
			if err := json.Unmarshal(raw, &existing); err != nil {
				return err
			}
			index = existing.Index
			return nil
		}

		count := uint32(0)
		cursor := bucket.Cursor()
		for k, _ := cursor.First(); k != nil; k, _ = cursor.Next() {
			count++
		}
		account.Index = count
		index = count

		raw, err := json.Marshal(account)
		if err != nil {
			return err
		}
		return bucket.Put(key, raw)
	})
	if err != nil {
		return 0, err
	}
	return index, nil
}

// All implements store.AccountStore. bbolt delivers records in key
// order, not insertion order; callers sort by Index.
func (s *Store) All(ctx context.Context) ([]store.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var accounts []store.Account
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(accountBucket).ForEach(func(_, raw []byte) error {
			var account store.Account
			if err := json.Unmarshal(raw, &account); err != nil {
				return err
			}
			accounts = append(accounts, account)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// Clear implements store.AccountStore.
func (s *Store) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(accountBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucket(accountBucket)
		return err
	})
}

// ClearMaster removes the master secret record.
func (s *Store) ClearMaster(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(masterBucket).Delete(masterKey)
	})
}
