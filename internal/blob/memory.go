package blob

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"
	"time"

	"supplierfront/pkg/platform/sentinel"
)

type memoryObject struct {
	info Info
	data []byte
	opts PutOptions
}

// MemoryStore implements Store in process memory. Used in development
// without AWS credentials and in tests.
type MemoryStore struct {
	mu      sync.RWMutex
	bucket  string
	objects map[string]memoryObject
	now     func() time.Time
}

func NewMemory(bucket string) *MemoryStore {
	return &MemoryStore{bucket: bucket, objects: make(map[string]memoryObject), now: time.Now}
}

func (s *MemoryStore) List(_ context.Context, prefix string) ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var infos []Info
	for key, obj := range s.objects {
		if strings.HasPrefix(key, prefix) && !isFolder(key) {
			infos = append(infos, obj.info)
		}
	}
	sortByLastModified(infos)
	return infos, nil
}

func (s *MemoryStore) Head(_ context.Context, key string) (Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	if !ok {
		return Info{}, fmt.Errorf("head %s: %w", key, sentinel.ErrNotFound)
	}
	return obj.info, nil
}

func (s *MemoryStore) Exists(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok, nil
}

// Put overwrites any existing object at key.
func (s *MemoryStore) Put(_ context.Context, key string, r io.Reader, opts PutOptions) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = memoryObject{
		info: newInfo(key, int64(len(data)), opts.ContentType, s.now().UTC()),
		data: data,
		opts: opts,
	}
	return nil
}

func (s *MemoryStore) SignedURL(_ context.Context, key string, expiry time.Duration) (string, error) {
	s.mu.RLock()
	_, ok := s.objects[key]
	s.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("sign %s: %w", key, sentinel.ErrNotFound)
	}
	if expiry <= 0 {
		expiry = DefaultSignedURLExpiry
	}
	u := url.URL{
		Scheme:   "https",
		Host:     s.bucket + ".s3.amazonaws.com",
		Path:     "/" + key,
		RawQuery: "Expires=" + s.now().Add(expiry).UTC().Format("20060102T150405Z"),
	}
	return u.String(), nil
}

// PutAt stores data with a fixed last-modified time.
func (s *MemoryStore) PutAt(key string, data []byte, lastModified time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = memoryObject{info: newInfo(key, int64(len(data)), "", lastModified.UTC()), data: data}
}

// Object returns the stored bytes and put options for key.
func (s *MemoryStore) Object(key string) ([]byte, PutOptions, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	return obj.data, obj.opts, ok
}
