// Package settings reads and writes the process-wide settings.json document.
//
// The document is shared with other tools of the toolbox, so keys this
// package does not know about are kept and written back unchanged.
package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/iudanet/blackbook/internal/fsutil"
	"github.com/iudanet/blackbook/internal/models"
)

const (
	// FileName is the settings document file name
	FileName = "settings.json"

	keySocialFolder    = "social_folder"
	keyDuplicatePolicy = "media_duplicate_policy"
)

// Settings holds the values the record store needs from settings.json.
type Settings struct {
	extra map[string]json.RawMessage
	path  string

	// SocialFolder is the store root; empty until the user picks one
	SocialFolder string
	// DuplicatePolicy decides how AddMediaFile treats same-named files
	DuplicatePolicy models.DuplicatePolicy
}

// DefaultPath returns <user config dir>/blackbook/settings.json.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}
	return filepath.Join(dir, "blackbook", FileName), nil
}

// Default returns settings with default values bound to path.
func Default(path string) *Settings {
	return &Settings{
		extra:           map[string]json.RawMessage{},
		path:            path,
		DuplicatePolicy: models.DuplicateReject,
	}
}

// Load reads the settings document at path. A missing file is created with
// default values.
func Load(path string) (*Settings, error) {
	if path == "" {
		return nil, fmt.Errorf("settings path cannot be empty")
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		s := Default(path)
		if err := s.Save(); err != nil {
			return nil, err
		}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	s, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	s.path = path

	return s, nil
}

func parse(data []byte) (*Settings, error) {
	raw := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	}

	s := Default("")

	if v, ok := raw[keySocialFolder]; ok {
		delete(raw, keySocialFolder)
		// null встречается в старых файлах настроек
		if string(v) != "null" {
			if err := json.Unmarshal(v, &s.SocialFolder); err != nil {
				return nil, fmt.Errorf("%s must be a string: %w", keySocialFolder, err)
			}
		}
	}

	if v, ok := raw[keyDuplicatePolicy]; ok {
		delete(raw, keyDuplicatePolicy)
		var policy string
		if err := json.Unmarshal(v, &policy); err != nil {
			return nil, fmt.Errorf("%s must be a string: %w", keyDuplicatePolicy, err)
		}
		p, err := ParseDuplicatePolicy(policy)
		if err != nil {
			return nil, err
		}
		s.DuplicatePolicy = p
	}

	s.extra = raw
	return s, nil
}

// ParseDuplicatePolicy parses "reject" or "overwrite". An empty string means reject.
func ParseDuplicatePolicy(s string) (models.DuplicatePolicy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return models.DuplicateReject, nil
	}
	p := models.DuplicatePolicy(s)
	if !p.Valid() {
		return "", fmt.Errorf("unknown media duplicate policy %q (use %q or %q)", s, models.DuplicateReject, models.DuplicateOverwrite)
	}
	return p, nil
}

// Path returns the file the settings were loaded from.
func (s *Settings) Path() string {
	return s.path
}

// Save writes the settings document back, keeping unknown keys.
func (s *Settings) Save() error {
	doc := make(map[string]any, len(s.extra)+2)
	for k, v := range s.extra {
		doc[k] = v
	}
	doc[keySocialFolder] = s.SocialFolder
	doc[keyDuplicatePolicy] = string(s.DuplicatePolicy)

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings dir: %w", err)
	}

	if err := fsutil.WriteFileAtomic(s.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	return nil
}
