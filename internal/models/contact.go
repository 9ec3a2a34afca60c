package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DocumentKind identifies one of the independently persisted documents of a record.
type DocumentKind string

const (
	DocumentProfile     DocumentKind = "profile"     // info.json
	DocumentNotes       DocumentKind = "notes"       // memories.json
	DocumentPreferences DocumentKind = "preferences" // likes_dislikes.json
	DocumentLinks       DocumentKind = "links"       // social_media.json
	DocumentEvents      DocumentKind = "events"      // important_dates.json
	DocumentTags        DocumentKind = "tags"        // tags.json
)

// DocumentKinds lists every document kind in the order they are saved.
var DocumentKinds = []DocumentKind{
	DocumentProfile,
	DocumentNotes,
	DocumentPreferences,
	DocumentLinks,
	DocumentEvents,
	DocumentTags,
}

var documentFiles = map[DocumentKind]string{
	DocumentProfile:     "info.json",
	DocumentNotes:       "memories.json",
	DocumentPreferences: "likes_dislikes.json",
	DocumentLinks:       "social_media.json",
	DocumentEvents:      "important_dates.json",
	DocumentTags:        "tags.json",
}

// FileName returns the file name of the document inside a record directory.
func (k DocumentKind) FileName() string {
	return documentFiles[k]
}

// Valid reports whether k is a known document kind.
func (k DocumentKind) Valid() bool {
	_, ok := documentFiles[k]
	return ok
}

// Поля профиля. Названия совпадают с ключами в info.json.
const (
	FieldFullName    = "Full Name"
	FieldDateOfBirth = "Date of Birth"
	FieldHometown    = "Hometown"
	FieldAddress     = "Address"
	FieldPhone       = "Phone Number"
	FieldEmail       = "Email Address"
)

// ProfileFields lists the fixed profile fields in display order.
var ProfileFields = []string{
	FieldFullName,
	FieldDateOfBirth,
	FieldHometown,
	FieldAddress,
	FieldPhone,
	FieldEmail,
}

// IsProfileField reports whether field is one of the fixed profile fields.
func IsProfileField(field string) bool {
	for _, f := range ProfileFields {
		if f == field {
			return true
		}
	}
	return false
}

// Profile maps profile field names to values.
// Keys outside ProfileFields are kept as loaded so they survive a save.
type Profile map[string]string

// NewProfile returns a profile with every fixed field set to "".
func NewProfile() Profile {
	p := make(Profile, len(ProfileFields))
	for _, f := range ProfileFields {
		p[f] = ""
	}
	return p
}

// Preferences holds the likes and dislikes lists.
type Preferences struct {
	Likes    []string `json:"likes"`
	Dislikes []string `json:"dislikes"`
}

// NewPreferences returns empty preferences.
func NewPreferences() Preferences {
	return Preferences{Likes: []string{}, Dislikes: []string{}}
}

// Links maps a platform name to a URL.
type Links map[string]string

// DateLayout is the ISO 8601 calendar date layout used in important_dates.json.
const DateLayout = "2006-01-02"

// ErrZeroDate is returned when encoding a Date that was never set.
var ErrZeroDate = errors.New("date is not set")

// Date is a calendar date without time or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date from its parts.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// Today returns the current local date.
func Today() Date {
	return DateOf(time.Now())
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalJSON encodes the date as "YYYY-MM-DD". Only dates that decode
// back are encoded: the zero Date fails with ErrZeroDate and an impossible
// date such as February 30 fails with a parse error.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return nil, ErrZeroDate
	}
	s := d.String()
	if _, err := ParseDate(s); err != nil {
		return nil, err
	}
	return json.Marshal(s)
}

// UnmarshalJSON decodes a "YYYY-MM-DD" string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Event is a dated entry of the important dates list.
type Event struct {
	Date        Date   `json:"date"`
	Description string `json:"description"`
}

// DefaultEventDescription is used when an event is added without a description.
const DefaultEventDescription = "New important date"
