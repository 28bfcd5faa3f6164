// Package bills stores uploaded bill files (receipts, invoices) and
// hands back the opaque references the finance store records as a
// bill's FileURL.
package bills

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// BlobStore writes one file and returns an opaque URL for it.
type BlobStore interface {
	Save(ctx context.Context, fileName, contentType string, r io.Reader) (string, error)
}

// AllowedType reports whether a bill upload content type is accepted.
// Bills are images or PDFs only.
func AllowedType(contentType string) bool {
	return contentType == "application/pdf" || strings.HasPrefix(contentType, "image/")
}

// objectName builds a date-partitioned, collision-free object name.
func objectName(fileName string) string {
	return fmt.Sprintf("bills/%s/%s", time.Now().Format("2006/01/02"), uuid.NewString()+"-"+fileName)
}

// GCSStore stores bill files in a Google Cloud Storage bucket and
// returns gs:// URIs. It assumes Application Default Credentials.
type GCSStore struct {
	bucket string
}

// NewGCSStore creates a store writing into the given bucket.
func NewGCSStore(bucket string) *GCSStore {
	return &GCSStore{bucket: bucket}
}

// Save implements BlobStore.
func (s *GCSStore) Save(ctx context.Context, fileName, contentType string, r io.Reader) (string, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("bills: create storage client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	object := objectName(fileName)
	w := client.Bucket(s.bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("bills: write object %q: %w", object, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("bills: finalize upload of %q: %w", object, err)
	}

	return fmt.Sprintf("gs://%s/%s", s.bucket, object), nil
}

// MemoryStore keeps bill files in memory and returns mem:// references.
// It is the session-scoped default when no bucket is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

// Save implements BlobStore.
func (s *MemoryStore) Save(ctx context.Context, fileName, contentType string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("bills: read upload: %w", err)
	}

	ref := "mem://" + objectName(fileName)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[ref] = data
	return ref, nil
}

// Get returns the stored bytes for a mem:// reference.
func (s *MemoryStore) Get(ref string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[ref]
	return data, ok
}

var (
	_ BlobStore = (*GCSStore)(nil)
	_ BlobStore = (*MemoryStore)(nil)
)
