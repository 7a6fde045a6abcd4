package domain

import (
	"errors"
	"time"
)

var ErrImageNotFound = errors.New("image not found")
var ErrUnsupportedImageFormat = errors.New("unsupported image format")

// supportedImageTypes lists the content types accepted on upload.
var supportedImageTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/webp": {},
}

// SupportedImageType reports whether contentType may be stored.
func SupportedImageType(contentType string) bool {
	_, ok := supportedImageTypes[contentType]
	return ok
}

// Image holds uploaded binary image data. Compression is out of scope here;
// bytes are stored exactly as received.
type Image struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	ContentType string    `json:"content_type" bson:"content_type"`
	Data        []byte    `json:"-" bson:"data"`
	SizeBytes   int64     `json:"size_bytes" bson:"size_bytes"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
