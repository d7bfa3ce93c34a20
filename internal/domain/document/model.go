package document

import (
	"time"

	"github.com/logiport/portal/internal/types"
)

// Document is an uploaded trade or customs document. The file itself lives in
// the object store under FileKey.
type Document struct {
	ID           string             `db:"id" json:"id"`
	Title        string             `db:"title" json:"title"`
	DocumentType types.DocumentType `db:"document_type" json:"document_type"`
	FileKey      string             `db:"file_key" json:"file_key"`
	ContentType  string             `db:"content_type" json:"content_type"`
	Description  string             `db:"description" json:"description"`
	UploadedBy   string             `db:"uploaded_by" json:"uploaded_by"`
	UploadedAt   time.Time          `db:"uploaded_at" json:"uploaded_at"`
}

// IsOwnedBy reports whether userID uploaded the document
func (d *Document) IsOwnedBy(userID string) bool {
	return d.UploadedBy == userID
}
