package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/blackbook/internal/storage"
)

const (
	keySchemaVersion = "schema_version"

	// SchemaVersion is the catalog layout version written by this build
	SchemaVersion uint64 = 1
)

// SaveSchemaVersion stores the catalog layout version
func (s *Storage) SaveSchemaVersion(ctx context.Context, version uint64) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		versionBytes := make([]byte, 8)
		binary.BigEndian.PutUint64(versionBytes, version)

		if err := bucket.Put([]byte(keySchemaVersion), versionBytes); err != nil {
			return fmt.Errorf("failed to save schema version: %w", err)
		}

		return nil
	})
}

// GetSchemaVersion returns the stored catalog layout version
// Returns 0 for a database that has never been stamped
func (s *Storage) GetSchemaVersion(ctx context.Context) (uint64, error) {
	if s.db == nil {
		return 0, storage.ErrStorageClosed
	}

	var version uint64

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		versionBytes := bucket.Get([]byte(keySchemaVersion))
		if versionBytes == nil {
			version = 0
			return nil
		}
		if len(versionBytes) != 8 {
			return fmt.Errorf("schema version has %d bytes, want 8", len(versionBytes))
		}

		version = binary.BigEndian.Uint64(versionBytes)
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}

	return version, nil
}

// checkSchemaVersion stamps a fresh database and refuses one written by a newer build
func (s *Storage) checkSchemaVersion(ctx context.Context) error {
	version, err := s.GetSchemaVersion(ctx)
	if err != nil {
		return err
	}

	switch {
	case version == 0:
		return s.SaveSchemaVersion(ctx, SchemaVersion)
	case version > SchemaVersion:
		return fmt.Errorf("catalog schema version %d is newer than supported version %d", version, SchemaVersion)
	default:
		return nil
	}
}
