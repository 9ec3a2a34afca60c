package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/blackbook/internal/storage"
)

// Compile-time check that Storage implements CatalogStorage
var _ storage.CatalogStorage = (*Storage)(nil)

// SaveEntry stores or replaces the entry for entry.Key
func (s *Storage) SaveEntry(ctx context.Context, entry *storage.CatalogEntry) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	if entry == nil || entry.Key == "" {
		return fmt.Errorf("catalog entry must have a key")
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCatalog)
		if bucket == nil {
			return fmt.Errorf("catalog bucket not found")
		}

		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal catalog entry: %w", err)
		}

		if err := bucket.Put([]byte(entry.Key), data); err != nil {
			return fmt.Errorf("failed to save catalog entry: %w", err)
		}

		return nil
	})
}

// GetEntry retrieves an entry by storage key
func (s *Storage) GetEntry(ctx context.Context, key string) (*storage.CatalogEntry, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var entry *storage.CatalogEntry

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCatalog)
		if bucket == nil {
			return fmt.Errorf("catalog bucket not found")
		}

		data := bucket.Get([]byte(key))
		if data == nil {
			return storage.ErrCatalogNotFound
		}

		entry = &storage.CatalogEntry{}
		if err := json.Unmarshal(data, entry); err != nil {
			return fmt.Errorf("failed to unmarshal catalog entry: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return entry, nil
}

// ListEntries returns all entries ordered by key
func (s *Storage) ListEntries(ctx context.Context) ([]*storage.CatalogEntry, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var entries []*storage.CatalogEntry

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCatalog)
		if bucket == nil {
			return fmt.Errorf("catalog bucket not found")
		}

		// bbolt хранит ключи отсортированными, порядок ForEach стабилен
		return bucket.ForEach(func(k, v []byte) error {
			entry := &storage.CatalogEntry{}
			if err := json.Unmarshal(v, entry); err != nil {
				return fmt.Errorf("failed to unmarshal catalog entry %q: %w", k, err)
			}
			entries = append(entries, entry)
			return nil
		})
	})

	if err != nil {
		return nil, err
	}

	return entries, nil
}

// MarkSaved records the time of the last successful save of a record
func (s *Storage) MarkSaved(ctx context.Context, key string, timestamp int64) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCatalog)
		if bucket == nil {
			return fmt.Errorf("catalog bucket not found")
		}

		data := bucket.Get([]byte(key))
		if data == nil {
			return storage.ErrCatalogNotFound
		}

		entry := &storage.CatalogEntry{}
		if err := json.Unmarshal(data, entry); err != nil {
			return fmt.Errorf("failed to unmarshal catalog entry: %w", err)
		}

		entry.SavedAt = timestamp

		updated, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal catalog entry: %w", err)
		}

		if err := bucket.Put([]byte(key), updated); err != nil {
			return fmt.Errorf("failed to update catalog entry: %w", err)
		}

		return nil
	})
}
