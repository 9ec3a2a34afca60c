package records

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/iudanet/blackbook/internal/fsutil"
	"github.com/iudanet/blackbook/internal/models"
)

// loadDocument reads one document into rec. A missing file keeps the
// default value already set on rec.
func loadDocument(rec *Record, kind models.DocumentKind) error {
	path := rec.DocumentPath(kind)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("record %q: failed to read %s document: %w", rec.Key, kind, err)
	}

	if err := decodeDocument(rec, kind, data); err != nil {
		return &DocumentParseError{Record: rec.Key, Document: kind, Path: path, Err: err}
	}

	return nil
}

// decodeDocument заменяет документ записи только при успешном разборе,
// иначе остается значение по умолчанию
func decodeDocument(rec *Record, kind models.DocumentKind, data []byte) error {
	switch kind {
	case models.DocumentProfile:
		profile := models.NewProfile()
		if err := json.Unmarshal(data, &profile); err != nil {
			return err
		}
		if profile == nil {
			profile = models.NewProfile()
		}
		rec.Profile = profile

	case models.DocumentNotes:
		var notes []string
		if err := json.Unmarshal(data, &notes); err != nil {
			return err
		}
		rec.Notes = nonNil(notes)

	case models.DocumentPreferences:
		var prefs models.Preferences
		if err := json.Unmarshal(data, &prefs); err != nil {
			return err
		}
		prefs.Likes = nonNil(prefs.Likes)
		prefs.Dislikes = nonNil(prefs.Dislikes)
		rec.Preferences = prefs

	case models.DocumentLinks:
		var links models.Links
		if err := json.Unmarshal(data, &links); err != nil {
			return err
		}
		if links == nil {
			links = models.Links{}
		}
		rec.Links = links

	case models.DocumentEvents:
		var events []models.Event
		if err := json.Unmarshal(data, &events); err != nil {
			return err
		}
		rec.Events = nonNil(events)

	case models.DocumentTags:
		var tags []string
		if err := json.Unmarshal(data, &tags); err != nil {
			return err
		}
		rec.Tags = nonNil(tags)

	default:
		return fmt.Errorf("unknown document kind %q", kind)
	}

	return nil
}

func encodeDocument(rec *Record, kind models.DocumentKind) ([]byte, error) {
	switch kind {
	case models.DocumentProfile:
		profile := rec.Profile
		if profile == nil {
			profile = models.NewProfile()
		}
		return json.Marshal(profile)
	case models.DocumentNotes:
		return json.Marshal(nonNil(rec.Notes))
	case models.DocumentPreferences:
		return json.Marshal(models.Preferences{
			Likes:    nonNil(rec.Preferences.Likes),
			Dislikes: nonNil(rec.Preferences.Dislikes),
		})
	case models.DocumentLinks:
		links := rec.Links
		if links == nil {
			links = models.Links{}
		}
		return json.Marshal(links)
	case models.DocumentEvents:
		return json.Marshal(nonNil(rec.Events))
	case models.DocumentTags:
		return json.Marshal(nonNil(rec.Tags))
	default:
		return nil, fmt.Errorf("unknown document kind %q", kind)
	}
}

// writeDocument encodes one document and replaces its file atomically.
func writeDocument(rec *Record, kind models.DocumentKind) error {
	data, err := encodeDocument(rec, kind)
	if err != nil {
		return &PersistenceError{Record: rec.Key, Document: kind, Err: err}
	}

	if err := fsutil.WriteFileAtomic(rec.DocumentPath(kind), data, 0o644); err != nil {
		return &PersistenceError{Record: rec.Key, Document: kind, Err: err}
	}

	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
