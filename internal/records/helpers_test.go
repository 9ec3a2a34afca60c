package records

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iudanet/blackbook/internal/models"
	"github.com/iudanet/blackbook/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var fixedNow = time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)

// openTestStore открывает хранилище на root с тихим логгером
func openTestStore(t *testing.T, root string, opts ...func(*Config)) *Store {
	t.Helper()

	cfg := Config{
		Root:   root,
		Logger: testLogger(),
		Now:    func() time.Time { return fixedNow },
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	s, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, s)
	return s
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// populate заполняет все документы записи
func populate(t *testing.T, rec *Record) {
	t.Helper()

	require.NoError(t, rec.SetProfileField(models.FieldFullName, "Augusta Ada King"))
	require.NoError(t, rec.SetProfileField(models.FieldDateOfBirth, "1815-12-10"))
	require.NoError(t, rec.SetProfileField(models.FieldHometown, "London"))
	require.NoError(t, rec.SetProfileField(models.FieldEmail, "ada@example.com"))
	rec.AddNote("Wrote the first published algorithm")
	rec.AddNote("Met Babbage in 1833")
	rec.AddLike("mathematics")
	rec.AddLike("poetry")
	rec.AddDislike("horse racing losses")
	rec.SetLink("Wikipedia", "https://en.wikipedia.org/wiki/Ada_Lovelace")
	rec.SetLink("Twitter", "https://twitter.com/ada")
	rec.AddEvent(models.NewDate(1815, time.December, 10), "Birthday")
	rec.AddEvent(models.NewDate(1835, time.July, 8), "Wedding")
	rec.AddEvent(models.NewDate(1815, time.December, 10), "Birthday again")
	require.NoError(t, rec.AddTag("Mentor"))
	require.NoError(t, rec.AddTag("math"))
}

// fakeCatalog - простой hand-written mock для CatalogStorage
type fakeCatalog struct {
	entries   map[string]*storage.CatalogEntry
	saveErr   error
	getErr    error
	markErr   error
	saveCalls int
	markCalls int

	// onSave вызывается перед сохранением записи каталога
	onSave func(entry *storage.CatalogEntry)
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{entries: make(map[string]*storage.CatalogEntry)}
}

func (f *fakeCatalog) SaveEntry(ctx context.Context, entry *storage.CatalogEntry) error {
	f.saveCalls++
	if f.onSave != nil {
		f.onSave(entry)
	}
	if f.saveErr != nil {
		return f.saveErr
	}
	cp := *entry
	f.entries[entry.Key] = &cp
	return nil
}

func (f *fakeCatalog) GetEntry(ctx context.Context, key string) (*storage.CatalogEntry, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	entry, ok := f.entries[key]
	if !ok {
		return nil, storage.ErrCatalogNotFound
	}
	cp := *entry
	return &cp, nil
}

func (f *fakeCatalog) ListEntries(ctx context.Context) ([]*storage.CatalogEntry, error) {
	out := make([]*storage.CatalogEntry, 0, len(f.entries))
	for _, e := range f.entries {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeCatalog) MarkSaved(ctx context.Context, key string, timestamp int64) error {
	f.markCalls++
	if f.markErr != nil {
		return f.markErr
	}
	entry, ok := f.entries[key]
	if !ok {
		return storage.ErrCatalogNotFound
	}
	entry.SavedAt = timestamp
	return nil
}
