package service

import (
	"context"

	"github.com/logiport/portal/internal/api/dto"
	"github.com/logiport/portal/internal/domain/document"
	ierr "github.com/logiport/portal/internal/errors"
	"github.com/logiport/portal/internal/s3"
	"github.com/logiport/portal/internal/types"
	"github.com/samber/lo"
)

type DocumentService interface {
	UploadDocument(ctx context.Context, actor types.Actor, req dto.UploadDocumentRequest) (*dto.DocumentResponse, error)
	// ListDocuments returns the actor's own documents; staff may list any
	ListDocuments(ctx context.Context, actor types.Actor, filter *types.DocumentFilter) (*dto.ListDocumentsResponse, error)
	// DeleteDocument is allowed for the uploader and for staff
	DeleteDocument(ctx context.Context, actor types.Actor, id string) error
}

type documentService struct {
	ServiceParams
}

func NewDocumentService(params ServiceParams) DocumentService {
	return &documentService{
		ServiceParams: params,
	}
}

func (s *documentService) storageEnabled() error {
	if s.S3 == nil {
		return ierr.NewError("document storage is disabled").
			WithHint("Document uploads are not enabled on this portal").
			Mark(ierr.ErrInvalidOperation)
	}
	return nil
}

func (s *documentService) UploadDocument(ctx context.Context, actor types.Actor, req dto.UploadDocumentRequest) (*dto.DocumentResponse, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.storageEnabled(); err != nil {
		return nil, err
	}

	contentType := s3.DetectContentType(req.Data)
	if !s3.IsAllowedContentType(contentType) {
		return nil, ierr.NewError("unsupported document type").
			WithHintf("Files of type %s cannot be uploaded", contentType).
			WithReportableDetails(map[string]any{
				"content_type": contentType,
				"file_name":    req.FileName,
			}).
			Mark(ierr.ErrValidation)
	}

	doc := req.ToDocument(actor, contentType)

	if err := s.S3.Upload(ctx, &s3.Object{
		Key:         doc.FileKey,
		Data:        req.Data,
		ContentType: contentType,
	}); err != nil {
		return nil, err
	}

	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		return s.DocumentRepo.Create(txCtx, doc)
	})
	if err != nil {
		if delErr := s.S3.Delete(ctx, doc.FileKey); delErr != nil {
			s.Logger.Errorw("failed to remove orphaned document object",
				"error", delErr,
				"file_key", doc.FileKey,
			)
		}
		return nil, err
	}

	s.Logger.Infow("uploaded document",
		"document_id", doc.ID,
		"content_type", contentType,
		"size", len(req.Data),
		"user_id", actor.ID,
	)

	return s.toResponse(ctx, doc), nil
}

func (s *documentService) ListDocuments(ctx context.Context, actor types.Actor, filter *types.DocumentFilter) (*dto.ListDocumentsResponse, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}
	if filter == nil {
		filter = &types.DocumentFilter{}
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		filter.UploadedBy = actor.ID
	}

	var (
		documents []*document.Document
		count     int64
	)
	err := s.DB.WithSnapshot(ctx, func(ctx context.Context) error {
		var err error
		if documents, err = s.DocumentRepo.List(ctx, filter); err != nil {
			return err
		}
		count, err = s.DocumentRepo.Count(ctx, filter)
		return err
	})
	if err != nil {
		return nil, err
	}

	items := lo.Map(documents, func(d *document.Document, _ int) *dto.DocumentResponse {
		return s.toResponse(ctx, d)
	})
	resp := types.NewListResponse(items, int(count), filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *documentService) DeleteDocument(ctx context.Context, actor types.Actor, id string) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	var doc *document.Document
	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		doc, err = s.DocumentRepo.Get(txCtx, id)
		if err != nil {
			return err
		}
		if !doc.IsOwnedBy(actor.ID) && !actor.IsAdmin() {
			return ierr.NewError("document belongs to another user").
				WithHint("You can only delete your own documents").
				WithReportableDetails(map[string]any{
					"document_id": id,
				}).
				Mark(ierr.ErrPermissionDenied)
		}
		return s.DocumentRepo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	if s.S3 != nil {
		if err := s.S3.Delete(ctx, doc.FileKey); err != nil {
			s.Logger.Errorw("failed to delete document object",
				"error", err,
				"document_id", doc.ID,
				"file_key", doc.FileKey,
			)
			s.Sentry.CaptureOperationalFailure(ctx, "document.delete_object", err, map[string]string{
				"document_id": doc.ID,
			})
		}
	}

	s.Logger.Infow("deleted document",
		"document_id", id,
		"user_id", actor.ID,
	)
	return nil
}

func (s *documentService) toResponse(ctx context.Context, doc *document.Document) *dto.DocumentResponse {
	resp := &dto.DocumentResponse{Document: doc}
	if s.S3 == nil {
		return resp
	}

	url, err := s.S3.GetPresignedUrl(ctx, doc.FileKey)
	if err != nil {
		s.Logger.Warnw("failed to presign document url",
			"error", err,
			"document_id", doc.ID,
		)
		return resp
	}
	resp.DownloadURL = url
	return resp
}
