// Package blob stores supplier documents and framework communications in
// object storage.
package blob

import (
	"context"
	"io"
	"path"
	"sort"
	"strings"
	"time"
)

// ACLs accepted by Put.
const (
	ACLPrivate    = "private"
	ACLPublicRead = "public-read"
)

// Info describes a stored object.
type Info struct {
	Path         string
	Filename     string
	Ext          string
	Size         int64
	ContentType  string
	LastModified time.Time
}

type PutOptions struct {
	ACL              string
	ContentType      string
	DownloadFilename string
}

// Store is the subset of object storage the front end needs.
type Store interface {
	// List returns objects under prefix ordered by last-modified ascending.
	// Folder placeholder keys are skipped.
	List(ctx context.Context, prefix string) ([]Info, error)
	Head(ctx context.Context, key string) (Info, error)
	Exists(ctx context.Context, key string) (bool, error)
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) error
	// SignedURL returns sentinel.ErrNotFound when the key does not exist.
	SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// Buckets groups the stores for each named bucket.
type Buckets struct {
	Agreements     Store
	Communications Store
	Documents      Store
	Submissions    Store
}

// DefaultSignedURLExpiry matches the lifetime of a download link on a page.
const DefaultSignedURLExpiry = 5 * time.Minute

func newInfo(key string, size int64, contentType string, lastModified time.Time) Info {
	base := path.Base(key)
	ext := strings.TrimPrefix(path.Ext(base), ".")
	return Info{
		Path:         key,
		Filename:     strings.TrimSuffix(base, path.Ext(base)),
		Ext:          ext,
		Size:         size,
		ContentType:  contentType,
		LastModified: lastModified,
	}
}

func isFolder(key string) bool {
	return strings.HasSuffix(key, "/")
}

func sortByLastModified(infos []Info) {
	sort.SliceStable(infos, func(i, j int) bool {
		if infos[i].LastModified.Equal(infos[j].LastModified) {
			return infos[i].Path < infos[j].Path
		}
		return infos[i].LastModified.Before(infos[j].LastModified)
	})
}

func contentDisposition(filename string) string {
	if filename == "" {
		return ""
	}
	return `attachment; filename="` + strings.ReplaceAll(filename, `"`, "") + `"`
}
