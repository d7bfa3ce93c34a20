package document

import (
	"context"

	"github.com/logiport/portal/internal/types"
)

// Repository defines the interface for document data access
type Repository interface {
	Create(ctx context.Context, document *Document) error
	Get(ctx context.Context, id string) (*Document, error)
	// List returns documents most recently uploaded first
	List(ctx context.Context, filter *types.DocumentFilter) ([]*Document, error)
	Count(ctx context.Context, filter *types.DocumentFilter) (int64, error)
	Delete(ctx context.Context, id string) error
}
