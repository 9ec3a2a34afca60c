package records

import (
	"fmt"

	"github.com/iudanet/blackbook/internal/models"
	"github.com/iudanet/blackbook/internal/storage"
)

// DocumentParseError reports a document file that could not be decoded.
// Open collects these as warnings and continues with the document's default.
type DocumentParseError struct {
	Err      error
	Record   string
	Document models.DocumentKind
	Path     string
}

func (e *DocumentParseError) Error() string {
	return fmt.Sprintf("record %q: %s document (%s): %v", e.Record, e.Document, e.Path, e.Err)
}

// Unwrap exposes both storage.ErrDocumentParse and the decoder error.
func (e *DocumentParseError) Unwrap() []error {
	return []error{storage.ErrDocumentParse, e.Err}
}

// PersistenceError reports a failed document write. The on-disk state of
// the record's other documents is undefined; retry the whole save.
type PersistenceError struct {
	Err      error
	Record   string
	Document models.DocumentKind
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("record %q: failed to save %s document: %v", e.Record, e.Document, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IOError reports a filesystem failure while copying a portrait or media file.
type IOError struct {
	Err  error
	Op   string
	Path string
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
