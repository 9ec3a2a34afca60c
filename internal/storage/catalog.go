package storage

import "context"

// CatalogEntry describes one record as known to the catalog.
// The catalog keeps the exact display name, which cannot be recovered from
// the lowercased storage key alone.
type CatalogEntry struct {
	ID        string `json:"id"`
	Key       string `json:"key"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
	SavedAt   int64  `json:"saved_at"`
}

// CatalogStorage defines interface for the record catalog kept at the store root
type CatalogStorage interface {
	// SaveEntry stores or replaces the entry for entry.Key
	SaveEntry(ctx context.Context, entry *CatalogEntry) error

	// GetEntry retrieves an entry by storage key
	// Returns ErrCatalogNotFound if the key is unknown
	GetEntry(ctx context.Context, key string) (*CatalogEntry, error)

	// ListEntries returns all entries ordered by key
	ListEntries(ctx context.Context) ([]*CatalogEntry, error)

	// MarkSaved records the time of the last successful save of a record
	MarkSaved(ctx context.Context, key string, timestamp int64) error
}
