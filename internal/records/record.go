package records

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/iudanet/blackbook/internal/models"
	"github.com/iudanet/blackbook/internal/storage"
)

// PortraitFileName is the fixed portrait file name inside a record directory
const PortraitFileName = "photo.jpg"

// Record is one tracked person and the documents stored in its directory.
// Edits change only the in-memory value; call Store.Save to persist them.
type Record struct {
	Profile     models.Profile
	Links       models.Links
	Preferences models.Preferences

	// ID is the catalog identifier; empty when the store runs without a catalog
	ID   string
	Key  string
	Name string
	Dir  string

	// Portrait is the path of photo.jpg, or "" when the record has none
	Portrait string

	Notes  []string
	Events []models.Event
	Tags   []string

	// broken holds documents that failed to load; Save leaves their files alone
	broken map[models.DocumentKind]error
}

func newRecord(key, name, dir string) *Record {
	return &Record{
		Key:         key,
		Name:        name,
		Dir:         dir,
		Profile:     models.NewProfile(),
		Links:       models.Links{},
		Preferences: models.NewPreferences(),
		Notes:       []string{},
		Events:      []models.Event{},
		Tags:        []string{},
	}
}

// DocumentPath returns the path of a document file of the record.
func (r *Record) DocumentPath(kind models.DocumentKind) string {
	return filepath.Join(r.Dir, kind.FileName())
}

// BucketPath returns the directory of a media bucket of the record.
func (r *Record) BucketPath(bucket models.Bucket) string {
	return filepath.Join(r.Dir, bucket.Dir())
}

// SetProfileField sets one of the fixed profile fields.
func (r *Record) SetProfileField(field, value string) error {
	if !models.IsProfileField(field) {
		return fmt.Errorf("%w: %q", storage.ErrUnknownField, field)
	}
	r.Profile[field] = value
	return nil
}

func (r *Record) markBroken(kind models.DocumentKind, err error) {
	if r.broken == nil {
		r.broken = make(map[models.DocumentKind]error)
	}
	r.broken[kind] = err
}

// LoadError returns the error that kept a document from loading, or nil.
func (r *Record) LoadError(kind models.DocumentKind) error {
	return r.broken[kind]
}

// ResetDocument replaces a document with its default value and clears its
// load error, so the next save overwrites the file on disk.
func (r *Record) ResetDocument(kind models.DocumentKind) {
	switch kind {
	case models.DocumentProfile:
		r.Profile = models.NewProfile()
	case models.DocumentNotes:
		r.Notes = []string{}
	case models.DocumentPreferences:
		r.Preferences = models.NewPreferences()
	case models.DocumentLinks:
		r.Links = models.Links{}
	case models.DocumentEvents:
		r.Events = []models.Event{}
	case models.DocumentTags:
		r.Tags = []string{}
	}
	delete(r.broken, kind)
}

// AddNote appends a free-text note ("memory").
func (r *Record) AddNote(text string) {
	r.Notes = append(r.Notes, text)
}

// AddLike appends an entry to the likes list.
func (r *Record) AddLike(text string) {
	r.Preferences.Likes = append(r.Preferences.Likes, text)
}

// AddDislike appends an entry to the dislikes list.
func (r *Record) AddDislike(text string) {
	r.Preferences.Dislikes = append(r.Preferences.Dislikes, text)
}

// SetNote replaces the note at index i.
func (r *Record) SetNote(i int, text string) error {
	return setEntry(r.Notes, i, text, "note")
}

// RemoveNote deletes the note at index i.
func (r *Record) RemoveNote(i int) error {
	return removeEntry(&r.Notes, i, "note")
}

// SetLike replaces the like at index i.
func (r *Record) SetLike(i int, text string) error {
	return setEntry(r.Preferences.Likes, i, text, "like")
}

// RemoveLike deletes the like at index i.
func (r *Record) RemoveLike(i int) error {
	return removeEntry(&r.Preferences.Likes, i, "like")
}

// SetDislike replaces the dislike at index i.
func (r *Record) SetDislike(i int, text string) error {
	return setEntry(r.Preferences.Dislikes, i, text, "dislike")
}

// RemoveDislike deletes the dislike at index i.
func (r *Record) RemoveDislike(i int) error {
	return removeEntry(&r.Preferences.Dislikes, i, "dislike")
}

func checkIndex(n, i int, what string) error {
	if i < 0 || i >= n {
		return fmt.Errorf("%w: %s %d (have %d)", storage.ErrEntryNotFound, what, i, n)
	}
	return nil
}

func setEntry[T any](list []T, i int, v T, what string) error {
	if err := checkIndex(len(list), i, what); err != nil {
		return err
	}
	list[i] = v
	return nil
}

func removeEntry[T any](list *[]T, i int, what string) error {
	if err := checkIndex(len(*list), i, what); err != nil {
		return err
	}
	*list = slices.Delete(*list, i, i+1)
	return nil
}

// SetLink sets or replaces the URL for a platform.
func (r *Record) SetLink(platform, url string) {
	if r.Links == nil {
		r.Links = models.Links{}
	}
	r.Links[platform] = url
}

// RemoveLink deletes a platform and reports whether it was present.
func (r *Record) RemoveLink(platform string) bool {
	if _, ok := r.Links[platform]; !ok {
		return false
	}
	delete(r.Links, platform)
	return true
}

// AddEvent appends a dated event. A zero date means today and an empty
// description becomes models.DefaultEventDescription.
func (r *Record) AddEvent(date models.Date, description string) models.Event {
	if date.IsZero() {
		date = models.Today()
	}
	if strings.TrimSpace(description) == "" {
		description = models.DefaultEventDescription
	}
	ev := models.Event{Date: date, Description: description}
	r.Events = append(r.Events, ev)
	return ev
}

// SetEvent replaces the date and description of the event at index i.
// A zero date keeps the current date; an empty description keeps the
// current description.
func (r *Record) SetEvent(i int, date models.Date, description string) (models.Event, error) {
	if err := checkIndex(len(r.Events), i, "event"); err != nil {
		return models.Event{}, err
	}
	ev := r.Events[i]
	if !date.IsZero() {
		ev.Date = date
	}
	if strings.TrimSpace(description) != "" {
		ev.Description = description
	}
	r.Events[i] = ev
	return ev, nil
}

// RemoveEvent deletes the event at index i.
func (r *Record) RemoveEvent(i int) error {
	return removeEntry(&r.Events, i, "event")
}

// HasTag reports whether the record carries tag, ignoring case.
func (r *Record) HasTag(tag string) bool {
	return slices.ContainsFunc(r.Tags, func(t string) bool {
		return strings.EqualFold(t, tag)
	})
}

// AddTag appends a tag; duplicates (ignoring case) are rejected.
func (r *Record) AddTag(tag string) error {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return fmt.Errorf("tag cannot be empty")
	}
	if r.HasTag(tag) {
		return fmt.Errorf("%w: %q", storage.ErrDuplicateTag, tag)
	}
	r.Tags = append(r.Tags, tag)
	return nil
}

// RemoveTag removes the first tag equal to tag, ignoring case, and reports
// whether one was removed.
func (r *Record) RemoveTag(tag string) bool {
	i := slices.IndexFunc(r.Tags, func(t string) bool {
		return strings.EqualFold(t, tag)
	})
	if i < 0 {
		return false
	}
	r.Tags = slices.Delete(r.Tags, i, i+1)
	return true
}
