package postgres

import (
	"context"

	"github.com/logiport/portal/internal/domain/document"
	ierr "github.com/logiport/portal/internal/errors"
	"github.com/logiport/portal/internal/logger"
	"github.com/logiport/portal/internal/postgres"
	"github.com/logiport/portal/internal/types"
)

type documentRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewDocumentRepository(db *postgres.DB, logger *logger.Logger) document.Repository {
	return &documentRepository{db: db, logger: logger}
}

func (r *documentRepository) Create(ctx context.Context, d *document.Document) error {
	query := `
		INSERT INTO documents (
			id, title, document_type, file_key, content_type, description, uploaded_by, uploaded_at
		) VALUES (
			:id, :title, :document_type, :file_key, :content_type, :description, :uploaded_by, :uploaded_at
		)`

	r.logger.Debugw("creating document",
		"document_id", d.ID,
		"uploaded_by", d.UploadedBy,
	)

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, d); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to save document").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *documentRepository) Get(ctx context.Context, id string) (*document.Document, error) {
	var d document.Document
	err := r.db.GetQuerier(ctx).GetContext(ctx, &d, `SELECT * FROM documents WHERE id = $1`, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ierr.WithError(err).
				WithHintf("Document %s not found", id).
				WithReportableDetails(map[string]any{
					"document_id": id,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get document").
			Mark(ierr.ErrDatabase)
	}
	return &d, nil
}

func (r *documentRepository) where(filter *types.DocumentFilter) *whereBuilder {
	where := &whereBuilder{}
	if filter == nil {
		return where
	}
	if filter.UploadedBy != "" {
		where.add("uploaded_by = ?", filter.UploadedBy)
	}
	if filter.DocumentType != nil {
		where.add("document_type = ?", *filter.DocumentType)
	}
	return where
}

func (r *documentRepository) List(ctx context.Context, filter *types.DocumentFilter) ([]*document.Document, error) {
	span := StartRepositorySpan(ctx, "document", "list", nil)
	defer FinishSpan(span)

	if filter == nil {
		filter = &types.DocumentFilter{QueryFilter: types.NewDefaultQueryFilter()}
	}

	where := r.where(filter)
	query, args := paginate("SELECT * FROM documents"+where.String(), where.args, filter.QueryFilter, "uploaded_at", "id")

	documents := make([]*document.Document, 0)
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &documents, query, args...); err != nil {
		SetSpanError(span, err)
		return nil, ierr.WithError(err).
			WithHint("Failed to list documents").
			Mark(ierr.ErrDatabase)
	}
	return documents, nil
}

func (r *documentRepository) Count(ctx context.Context, filter *types.DocumentFilter) (int64, error) {
	span := StartRepositorySpan(ctx, "document", "count", nil)
	defer FinishSpan(span)

	where := r.where(filter)

	var count int64
	err := r.db.GetQuerier(ctx).GetContext(ctx, &count, rebind("SELECT COUNT(*) FROM documents"+where.String()), where.args...)
	if err != nil {
		SetSpanError(span, err)
		return 0, ierr.WithError(err).
			WithHint("Failed to count documents").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *documentRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debugw("deleting document", "document_id", id)

	result, err := r.db.GetQuerier(ctx).ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete document").
			Mark(ierr.ErrDatabase)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ierr.NewError("document not found").
			WithHintf("Document %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
