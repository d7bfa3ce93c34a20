package s3

import (
	"github.com/h2non/filetype"
	"github.com/samber/lo"
)

const contentTypeOctetStream = "application/octet-stream"

// allowedMIMETypes lists what the portal accepts as trade or customs paperwork
var allowedMIMETypes = []string{
	"application/pdf",
	"image/jpeg",
	"image/png",
	"image/tiff",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"application/msword",
	"application/vnd.ms-excel",
	"application/zip",
}

// Object is a file stored in the document bucket
type Object struct {
	Key         string `json:"key"`
	Data        []byte `json:"-"`
	ContentType string `json:"content_type"`
}

// NewObject sniffs the content type of data from its magic bytes
func NewObject(key string, data []byte) *Object {
	return &Object{
		Key:         key,
		Data:        data,
		ContentType: DetectContentType(data),
	}
}

// DetectContentType returns the MIME type of data or application/octet-stream
// when the signature is unknown
func DetectContentType(data []byte) string {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return contentTypeOctetStream
	}
	return kind.MIME.Value
}

// IsAllowedContentType reports whether uploads of this type are accepted
func IsAllowedContentType(contentType string) bool {
	return lo.Contains(allowedMIMETypes, contentType)
}
