package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrInvalidName is returned when a display name cannot be used for a record.
var ErrInvalidName = errors.New("invalid record name")

const (
	// MaxNameLen максимальная длина имени записи в рунах
	MaxNameLen = 128

	// keySeparator заменяет пробелы в ключе хранения
	keySeparator = "_"
)

// ValidateName checks that a display name can be turned into a storage key.
// The name must be non-blank, at most MaxNameLen runes, must not start with
// a dot and must not contain path separators or control characters.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}

	if !utf8.ValidString(name) {
		return fmt.Errorf("%w: name must be valid UTF-8", ErrInvalidName)
	}

	if utf8.RuneCountInString(name) > MaxNameLen {
		return fmt.Errorf("%w: name must not exceed %d characters", ErrInvalidName, MaxNameLen)
	}

	if strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: name cannot start with a dot", ErrInvalidName)
	}

	for _, r := range name {
		if r == '/' || r == '\\' {
			return fmt.Errorf("%w: name cannot contain path separators", ErrInvalidName)
		}
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return fmt.Errorf("%w: name cannot contain control characters", ErrInvalidName)
		}
	}

	return nil
}

// DeriveKey returns the storage key for a display name: lowercased, with
// runs of whitespace collapsed into a single underscore.
// "Jane  Doe" and "jane doe" both map to "jane_doe".
func DeriveKey(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}

	words := strings.Fields(name)
	key := cases.Lower(language.Und).String(strings.Join(words, keySeparator))
	if key == "" || key == "." || key == ".." {
		return "", fmt.Errorf("%w: %q has no usable storage key", ErrInvalidName, name)
	}

	return key, nil
}

// NameFromKey reverses DeriveKey as far as possible: underscores become
// spaces and every word is title-cased. Used for directories that have no
// catalog entry with the original display name.
func NameFromKey(key string) string {
	words := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || unicode.IsSpace(r)
	})
	return cases.Title(language.Und).String(strings.Join(words, " "))
}
