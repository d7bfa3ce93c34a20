package testutil

import (
	"context"
	"strings"

	"github.com/logiport/portal/internal/domain/document"
	"github.com/logiport/portal/internal/types"
	"github.com/samber/lo"
)

// InMemoryDocumentStore implements document.Repository
type InMemoryDocumentStore struct {
	*InMemoryStore[*document.Document]
}

func NewInMemoryDocumentStore() *InMemoryDocumentStore {
	return &InMemoryDocumentStore{
		InMemoryStore: NewInMemoryStore[*document.Document](),
	}
}

func copyDocument(d *document.Document) *document.Document {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

func (s *InMemoryDocumentStore) Create(ctx context.Context, d *document.Document) error {
	return s.InMemoryStore.Create(ctx, d.ID, copyDocument(d))
}

func (s *InMemoryDocumentStore) Get(ctx context.Context, id string) (*document.Document, error) {
	d, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyDocument(d), nil
}

func (s *InMemoryDocumentStore) List(ctx context.Context, filter *types.DocumentFilter) ([]*document.Document, error) {
	if filter == nil {
		filter = &types.DocumentFilter{}
	}
	order := filter.GetOrder()
	items, err := s.InMemoryStore.List(ctx, filter, documentFilterFn, func(a, b *document.Document) bool {
		if cmp := a.UploadedAt.Compare(b.UploadedAt); cmp != 0 {
			return orderedBefore(order, cmp)
		}
		return orderedBefore(order, strings.Compare(a.ID, b.ID))
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(d *document.Document, _ int) *document.Document {
		return copyDocument(d)
	}), nil
}

func (s *InMemoryDocumentStore) Count(ctx context.Context, filter *types.DocumentFilter) (int64, error) {
	if filter == nil {
		filter = &types.DocumentFilter{}
	}
	return s.InMemoryStore.Count(ctx, filter, documentFilterFn)
}

func (s *InMemoryDocumentStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}

func documentFilterFn(ctx context.Context, d *document.Document, filter interface{}) bool {
	f, ok := filter.(*types.DocumentFilter)
	if !ok {
		return false
	}
	if f.UploadedBy != "" && d.UploadedBy != f.UploadedBy {
		return false
	}
	if f.DocumentType != nil && d.DocumentType != *f.DocumentType {
		return false
	}
	return true
}
