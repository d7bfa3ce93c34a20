package testutil

import (
	"context"
	"fmt"
	"sync"

	ierr "github.com/logiport/portal/internal/errors"
	"github.com/logiport/portal/internal/s3"
)

var _ s3.Service = (*InMemoryS3)(nil)

// InMemoryS3 is an object store backed by a map
type InMemoryS3 struct {
	mu        sync.RWMutex
	objects   map[string]*s3.Object
	uploadErr error
}

func NewInMemoryS3() *InMemoryS3 {
	return &InMemoryS3{
		objects: make(map[string]*s3.Object),
	}
}

// FailUploads makes every subsequent Upload return err; nil restores uploads
func (m *InMemoryS3) FailUploads(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploadErr = err
}

func (m *InMemoryS3) Upload(ctx context.Context, object *s3.Object) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.uploadErr != nil {
		return ierr.WithError(m.uploadErr).
			WithHint("Failed to upload document").
			Mark(ierr.ErrHTTPClient)
	}

	c := *object
	c.Data = append([]byte{}, object.Data...)
	m.objects[object.Key] = &c
	return nil
}

func (m *InMemoryS3) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

// Data returns a copy of the bytes stored under key, nil when absent
func (m *InMemoryS3) Data(key string) []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	if !ok {
		return nil
	}
	return append([]byte{}, obj.Data...)
}

// Has reports whether an object is stored under key
func (m *InMemoryS3) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[key]
	return ok
}

func (m *InMemoryS3) GetPresignedUrl(ctx context.Context, key string) (string, error) {
	return fmt.Sprintf("https://objects.test/%s?signature=test", key), nil
}

// Len returns the number of stored objects
func (m *InMemoryS3) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
