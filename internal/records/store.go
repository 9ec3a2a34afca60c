// Package records implements the record store: a directory of per-person
// records, each made of six JSON documents, a portrait and media buckets.
//
// The store is not safe for concurrent use. Records are edited in memory
// and written only by Save or SaveDocument; the last write wins.
package records

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/blackbook/internal/models"
	"github.com/iudanet/blackbook/internal/storage"
	"github.com/iudanet/blackbook/internal/validation"
)

// Config carries everything Open needs. Nothing is read from global state.
type Config struct {
	// Catalog keeps display names and timestamps; optional
	Catalog storage.CatalogStorage
	// Logger defaults to slog.Default()
	Logger *slog.Logger
	// Now defaults to time.Now
	Now func() time.Time

	// Root is the store root directory; required
	Root string
	// DuplicatePolicy defaults to models.DuplicateReject
	DuplicatePolicy models.DuplicatePolicy
}

// Store holds the records loaded from one store root.
type Store struct {
	catalog storage.CatalogStorage
	logger  *slog.Logger
	now     func() time.Time
	byKey   map[string]*Record

	root   string
	policy models.DuplicatePolicy

	records  []*Record
	warnings []error
}

// Open scans the immediate subdirectories of cfg.Root and loads one record
// per directory. Malformed or unreadable documents fall back to their
// defaults and are reported by Warnings; they never fail Open.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	root := strings.TrimSpace(cfg.Root)
	if root == "" {
		return nil, storage.ErrConfiguration
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrConfiguration, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", storage.ErrConfiguration, root)
	}

	policy := cfg.DuplicatePolicy
	if policy == "" {
		policy = models.DuplicateReject
	}
	if !policy.Valid() {
		return nil, fmt.Errorf("unknown media duplicate policy %q", policy)
	}

	s := &Store{
		catalog: cfg.Catalog,
		logger:  cfg.Logger,
		now:     cfg.Now,
		byKey:   make(map[string]*Record),
		root:    root,
		policy:  policy,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan store root: %w", err)
	}

	// os.ReadDir возвращает записи отсортированными по имени
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") || !isDir(root, entry) {
			continue
		}
		s.add(s.loadRecord(ctx, entry.Name()))
	}

	s.logger.Debug("record store opened",
		"root", root,
		"records", len(s.records),
		"warnings", len(s.warnings),
	)

	return s, nil
}

// isDir follows symlinks, like a directory scan in a file manager would
func isDir(root string, entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(root, entry.Name()))
	return err == nil && info.IsDir()
}

func (s *Store) loadRecord(ctx context.Context, key string) *Record {
	name := validation.NameFromKey(key)
	if name == "" {
		name = key
	}
	rec := newRecord(key, name, filepath.Join(s.root, key))

	s.resolveIdentity(ctx, rec)

	// Отображаемое имя обязано быть уникальным
	if other := s.findByName(rec.Name); other != nil {
		s.logger.Warn("display name already used, falling back to key",
			"name", rec.Name, "key", key, "other_key", other.Key)
		rec.Name = key
	}

	for _, kind := range models.DocumentKinds {
		if err := loadDocument(rec, kind); err != nil {
			rec.markBroken(kind, err)
			s.warn(err)
		}
	}

	if info, err := os.Stat(filepath.Join(rec.Dir, PortraitFileName)); err == nil && info.Mode().IsRegular() {
		rec.Portrait = filepath.Join(rec.Dir, PortraitFileName)
	}

	if err := ensureBuckets(rec); err != nil {
		s.warn(fmt.Errorf("record %q: %w", key, err))
	}

	return rec
}

// resolveIdentity fills ID and Name from the catalog, registering records
// the catalog has not seen yet.
func (s *Store) resolveIdentity(ctx context.Context, rec *Record) {
	if s.catalog == nil {
		return
	}

	entry, err := s.catalog.GetEntry(ctx, rec.Key)
	switch {
	case err == nil:
		rec.ID = entry.ID
		if entry.Name != "" {
			rec.Name = entry.Name
		}
		if rec.ID == "" {
			rec.ID = uuid.NewString()
			entry.ID = rec.ID
			s.saveCatalogEntry(ctx, entry)
		}
	case errors.Is(err, storage.ErrCatalogNotFound):
		rec.ID = uuid.NewString()
		s.saveCatalogEntry(ctx, &storage.CatalogEntry{
			ID:        rec.ID,
			Key:       rec.Key,
			Name:      rec.Name,
			CreatedAt: s.now().Unix(),
		})
	default:
		s.logger.Warn("failed to read catalog entry", "key", rec.Key, "error", err)
	}
}

func (s *Store) saveCatalogEntry(ctx context.Context, entry *storage.CatalogEntry) {
	if err := s.catalog.SaveEntry(ctx, entry); err != nil {
		s.logger.Warn("failed to save catalog entry", "key", entry.Key, "error", err)
	}
}

func (s *Store) warn(err error) {
	s.warnings = append(s.warnings, err)
	s.logger.Warn("document load failed, using default", "error", err)
}

func (s *Store) add(rec *Record) {
	s.records = append(s.records, rec)
	s.byKey[rec.Key] = rec
}

func (s *Store) findByName(name string) *Record {
	for _, rec := range s.records {
		if strings.EqualFold(rec.Name, name) {
			return rec
		}
	}
	return nil
}

// Root returns the store root directory.
func (s *Store) Root() string {
	return s.root
}

// DuplicatePolicy returns the policy AddMediaFile applies.
func (s *Store) DuplicatePolicy() models.DuplicatePolicy {
	return s.policy
}

// Len returns the number of loaded records.
func (s *Store) Len() int {
	return len(s.records)
}

// Records returns the loaded records in store order.
func (s *Store) Records() []*Record {
	return slices.Clone(s.records)
}

// Warnings returns the document load failures collected by Open.
func (s *Store) Warnings() []error {
	return slices.Clone(s.warnings)
}

// Get returns the record stored under key.
func (s *Store) Get(key string) (*Record, bool) {
	rec, ok := s.byKey[key]
	return rec, ok
}

// Find resolves a record by storage key, by the key derived from a display
// name, or by display name ignoring case.
func (s *Store) Find(nameOrKey string) (*Record, error) {
	if rec, ok := s.byKey[nameOrKey]; ok {
		return rec, nil
	}
	if key, err := validation.DeriveKey(nameOrKey); err == nil {
		if rec, ok := s.byKey[key]; ok {
			return rec, nil
		}
	}
	if rec := s.findByName(strings.TrimSpace(nameOrKey)); rec != nil {
		return rec, nil
	}
	return nil, fmt.Errorf("%w: %q", storage.ErrRecordNotFound, nameOrKey)
}

// Create adds a record named name. It fails with storage.ErrDuplicateRecord
// when the derived storage key (or the display name) is already taken, and
// in that case leaves the disk untouched. The new record is saved at once.
func (s *Store) Create(ctx context.Context, name string) (*Record, error) {
	name = strings.TrimSpace(name)

	key, err := validation.DeriveKey(name)
	if err != nil {
		return nil, err
	}

	if _, ok := s.byKey[key]; ok {
		return nil, fmt.Errorf("%w: %q (key %q)", storage.ErrDuplicateRecord, name, key)
	}
	if other := s.findByName(name); other != nil {
		return nil, fmt.Errorf("%w: %q (key %q)", storage.ErrDuplicateRecord, name, other.Key)
	}

	dir := filepath.Join(s.root, key)

	// Mkdir, не MkdirAll: существующий каталог означает коллизию
	if err := os.Mkdir(dir, 0o755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w: %q (directory %s exists)", storage.ErrDuplicateRecord, name, dir)
		}
		return nil, &IOError{Op: "mkdir", Path: dir, Err: err}
	}

	rec := newRecord(key, name, dir)

	if err := s.persistNew(ctx, rec); err != nil {
		_ = os.RemoveAll(dir)
		return nil, err
	}

	s.add(rec)
	s.logger.Info("record created", "name", name, "key", key)

	return rec, nil
}

func (s *Store) persistNew(ctx context.Context, rec *Record) error {
	if err := ensureBuckets(rec); err != nil {
		return err
	}

	if err := s.writeDocuments(rec); err != nil {
		return err
	}

	// Каталог пишем последним: при ошибке выше в нем не остается записи
	if s.catalog != nil {
		rec.ID = uuid.NewString()
		now := s.now().Unix()
		entry := &storage.CatalogEntry{
			ID:        rec.ID,
			Key:       rec.Key,
			Name:      rec.Name,
			CreatedAt: now,
			SavedAt:   now,
		}
		if err := s.catalog.SaveEntry(ctx, entry); err != nil {
			rec.ID = ""
			return fmt.Errorf("failed to register record in catalog: %w", err)
		}
	}

	return nil
}

// Save writes the documents of rec. The first failure is returned as a
// *PersistenceError and the remaining documents are not written.
//
// Documents that failed to load on Open are skipped so the file on disk,
// which may still be repairable, is not replaced by the default value.
// Call ResetDocument on the record to write such a document anyway.
func (s *Store) Save(ctx context.Context, rec *Record) error {
	if rec == nil {
		return fmt.Errorf("record is nil")
	}

	if err := s.writeDocuments(rec); err != nil {
		return err
	}

	s.markSaved(ctx, rec)
	s.logger.Debug("record saved", "key", rec.Key)

	return nil
}

func (s *Store) writeDocuments(rec *Record) error {
	if err := os.MkdirAll(rec.Dir, 0o755); err != nil {
		return &PersistenceError{Record: rec.Key, Document: models.DocumentProfile, Err: err}
	}

	for _, kind := range models.DocumentKinds {
		if err := rec.LoadError(kind); err != nil {
			s.logger.Warn("document not saved, it failed to load",
				"key", rec.Key, "document", kind, "error", err)
			continue
		}
		if err := writeDocument(rec, kind); err != nil {
			return err
		}
	}

	return nil
}

// SaveDocument writes a single document of rec. A document that failed to
// load is refused with a *PersistenceError wrapping storage.ErrDocumentParse
// until ResetDocument is called for it.
func (s *Store) SaveDocument(ctx context.Context, rec *Record, kind models.DocumentKind) error {
	if rec == nil {
		return fmt.Errorf("record is nil")
	}
	if !kind.Valid() {
		return fmt.Errorf("unknown document kind %q", kind)
	}
	if err := rec.LoadError(kind); err != nil {
		return &PersistenceError{
			Record:   rec.Key,
			Document: kind,
			Err:      fmt.Errorf("%w: refusing to overwrite %s", storage.ErrDocumentParse, rec.DocumentPath(kind)),
		}
	}

	if err := os.MkdirAll(rec.Dir, 0o755); err != nil {
		return &PersistenceError{Record: rec.Key, Document: kind, Err: err}
	}

	if err := writeDocument(rec, kind); err != nil {
		return err
	}

	s.markSaved(ctx, rec)
	s.logger.Debug("document saved", "key", rec.Key, "document", kind)

	return nil
}

// CatalogEntry returns the catalog entry of rec, if the store has a catalog.
func (s *Store) CatalogEntry(ctx context.Context, rec *Record) (*storage.CatalogEntry, error) {
	if s.catalog == nil {
		return nil, storage.ErrCatalogNotFound
	}
	return s.catalog.GetEntry(ctx, rec.Key)
}

// markSaved ошибка каталога не делает сохранение документов неуспешным
func (s *Store) markSaved(ctx context.Context, rec *Record) {
	if s.catalog == nil {
		return
	}
	if err := s.catalog.MarkSaved(ctx, rec.Key, s.now().Unix()); err != nil {
		s.logger.Warn("failed to update catalog timestamp", "key", rec.Key, "error", err)
	}
}
