package models

import (
	"strings"
	"time"
)

// Bucket names one of the fixed media collections of a record.
type Bucket string

const (
	BucketPhotos  Bucket = "photos"
	BucketVideos  Bucket = "videos"
	BucketPrivate Bucket = "private"
)

// Buckets lists every media bucket.
var Buckets = []Bucket{BucketPhotos, BucketVideos, BucketPrivate}

// Имена каталогов на диске фиксированы.
var bucketDirs = map[Bucket]string{
	BucketPhotos:  "Photos",
	BucketVideos:  "Videos",
	BucketPrivate: "Lewd",
}

// Dir returns the directory name of the bucket inside a record directory.
func (b Bucket) Dir() string {
	return bucketDirs[b]
}

// ParseBucket resolves a bucket by name or by directory name, case-insensitively.
func ParseBucket(s string) (Bucket, bool) {
	s = strings.TrimSpace(s)
	for _, b := range Buckets {
		if strings.EqualFold(s, string(b)) || strings.EqualFold(s, b.Dir()) {
			return b, true
		}
	}
	return "", false
}

// MediaFile describes one file stored in a media bucket.
type MediaFile struct {
	ModTime time.Time
	Name    string
	Path    string
	Size    int64
}

// DuplicatePolicy decides what happens when a media file with the same name
// already exists in the target bucket.
type DuplicatePolicy string

const (
	DuplicateReject    DuplicatePolicy = "reject"
	DuplicateOverwrite DuplicatePolicy = "overwrite"
)

// Valid reports whether p is a known policy.
func (p DuplicatePolicy) Valid() bool {
	return p == DuplicateReject || p == DuplicateOverwrite
}
