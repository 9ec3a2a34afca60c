package records

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/iudanet/blackbook/internal/models"
	"github.com/iudanet/blackbook/internal/storage"
)

// ensureBuckets creates the three media bucket directories of rec.
func ensureBuckets(rec *Record) error {
	for _, bucket := range models.Buckets {
		path := rec.BucketPath(bucket)
		if err := os.MkdirAll(path, 0o755); err != nil {
			return &IOError{Op: "mkdir", Path: path, Err: err}
		}
	}
	return nil
}

// SetPortrait copies src over the record's photo.jpg.
func (s *Store) SetPortrait(rec *Record, src string) error {
	dst := filepath.Join(rec.Dir, PortraitFileName)

	if err := copyFile(src, dst, true); err != nil {
		return err
	}

	rec.Portrait = dst
	s.logger.Debug("portrait updated", "key", rec.Key, "source", src)

	return nil
}

// AddMediaFile copies src into a media bucket of rec, keeping the base
// name, and returns the destination path. When a same-named file exists
// the store's DuplicatePolicy applies: reject fails with
// storage.ErrDuplicateFile, overwrite replaces the file.
func (s *Store) AddMediaFile(rec *Record, bucket models.Bucket, src string) (string, error) {
	if bucket.Dir() == "" {
		return "", fmt.Errorf("%w: %q", storage.ErrUnknownBucket, bucket)
	}

	dir := rec.BucketPath(bucket)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &IOError{Op: "mkdir", Path: dir, Err: err}
	}

	dst := filepath.Join(dir, filepath.Base(src))
	if err := copyFile(src, dst, s.policy == models.DuplicateOverwrite); err != nil {
		return "", err
	}

	s.logger.Debug("media file added", "key", rec.Key, "bucket", bucket, "file", filepath.Base(dst))

	return dst, nil
}

// MediaFiles lists the files of a media bucket, newest first.
// Hidden files are skipped.
func (s *Store) MediaFiles(rec *Record, bucket models.Bucket) ([]models.MediaFile, error) {
	if bucket.Dir() == "" {
		return nil, fmt.Errorf("%w: %q", storage.ErrUnknownBucket, bucket)
	}

	dir := rec.BucketPath(bucket)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.MediaFile{}, nil
	}
	if err != nil {
		return nil, &IOError{Op: "readdir", Path: dir, Err: err}
	}

	files := make([]models.MediaFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// Файл могли удалить между ReadDir и Info
			continue
		}
		files = append(files, models.MediaFile{
			Name:    entry.Name(),
			Path:    filepath.Join(dir, entry.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.SliceStable(files, func(i, j int) bool {
		if !files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].ModTime.After(files[j].ModTime)
		}
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// copyFile copies a regular file src to dst through a temp file in dst's
// directory. Without overwrite an existing dst fails with storage.ErrDuplicateFile.
func copyFile(src, dst string, overwrite bool) error {
	in, err := os.Open(src)
	if err != nil {
		return &IOError{Op: "open", Path: src, Err: err}
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return &IOError{Op: "stat", Path: src, Err: err}
	}
	if !info.Mode().IsRegular() {
		return &IOError{Op: "copy", Path: src, Err: errors.New("not a regular file")}
	}

	if !overwrite {
		if _, err := os.Lstat(dst); err == nil {
			return fmt.Errorf("%w: %s", storage.ErrDuplicateFile, dst)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return &IOError{Op: "stat", Path: dst, Err: err}
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return &IOError{Op: "create", Path: dst, Err: err}
	}
	tmpName := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		return &IOError{Op: "copy", Path: src, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &IOError{Op: "write", Path: dst, Err: err}
	}
	if err := os.Chmod(tmpName, info.Mode().Perm()|0o600); err != nil {
		return &IOError{Op: "chmod", Path: dst, Err: err}
	}
	if err := os.Rename(tmpName, dst); err != nil {
		return &IOError{Op: "rename", Path: dst, Err: err}
	}

	committed = true
	return nil
}
