package dto

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/logiport/portal/internal/domain/document"
	"github.com/logiport/portal/internal/types"
	"github.com/logiport/portal/internal/validator"
)

// MaxDocumentSize caps a single upload at 10 MiB
const MaxDocumentSize = 10 << 20

// UploadDocumentRequest is bound from a multipart form; Data is filled by the
// handler from the file part
type UploadDocumentRequest struct {
	Title        string             `form:"title" validate:"required,max=255"`
	DocumentType types.DocumentType `form:"document_type" validate:"required"`
	Description  string             `form:"description" validate:"omitempty,max=2000"`
	FileName     string             `form:"-" validate:"required"`
	Data         []byte             `form:"-" validate:"required,min=1,max=10485760"`
}

func (r *UploadDocumentRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.DocumentType.Validate()
}

// ToDocument builds the row for an upload; the object key is scoped by owner
func (r *UploadDocumentRequest) ToDocument(actor types.Actor, contentType string) *document.Document {
	id := types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DOCUMENT)
	return &document.Document{
		ID:           id,
		Title:        r.Title,
		DocumentType: r.DocumentType,
		FileKey:      actor.ID + "/" + id + strings.ToLower(filepath.Ext(r.FileName)),
		ContentType:  contentType,
		Description:  r.Description,
		UploadedBy:   actor.ID,
		UploadedAt:   time.Now().UTC(),
	}
}

type DocumentResponse struct {
	*document.Document
	DownloadURL string `json:"download_url,omitempty"`
}

// ListDocumentsResponse represents the response for listing documents
type ListDocumentsResponse = types.ListResponse[*DocumentResponse]
