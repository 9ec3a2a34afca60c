package storage

import "errors"

// Common record store errors
var (
	// ErrConfiguration indicates that no store root is configured
	ErrConfiguration = errors.New("store root is not configured")

	// ErrDuplicateRecord indicates that a record with the same storage key already exists
	ErrDuplicateRecord = errors.New("record already exists")

	// ErrRecordNotFound indicates that no record matches the given name or key
	ErrRecordNotFound = errors.New("record not found")

	// ErrDocumentParse indicates that a document file holds malformed JSON
	ErrDocumentParse = errors.New("malformed document")

	// ErrDuplicateFile indicates that a same-named file already exists in a media bucket
	ErrDuplicateFile = errors.New("file already exists in bucket")

	// ErrUnknownBucket indicates that the media bucket name is not one of the fixed buckets
	ErrUnknownBucket = errors.New("unknown media bucket")

	// ErrUnknownField indicates that the profile field is not one of the fixed fields
	ErrUnknownField = errors.New("unknown profile field")

	// ErrDuplicateTag indicates that the record already carries the tag
	ErrDuplicateTag = errors.New("tag already exists")

	// ErrEntryNotFound indicates that a list document has no entry at the given position
	ErrEntryNotFound = errors.New("entry not found")

	// ErrCatalogNotFound indicates that the catalog has no entry for the key
	ErrCatalogNotFound = errors.New("catalog entry not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
